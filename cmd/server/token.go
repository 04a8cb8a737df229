package main

import (
	"fmt"

	"github.com/fernet/fernet-go"
	"github.com/spf13/cobra"

	"github.com/ndewijer/portfolio-tracker/internal/api/middleware"
	"github.com/ndewijer/portfolio-tracker/internal/config"
)

func newTokenCmd() *cobra.Command {
	var userID string
	var generateKey bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for a user with the configured fernet key",
		Long: `Mint a bearer token for local development. The token is signed with the
first key in AUTH_FERNET_KEYS. Use --generate-key to print a fresh key instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if generateKey {
				var k fernet.Key
				if err := k.Generate(); err != nil {
					return fmt.Errorf("failed to generate key: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), k.Encode())
				return nil
			}

			if userID == "" {
				return fmt.Errorf("--user is required")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			keys, err := middleware.ParseKeys(cfg.Auth.Keys)
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				return fmt.Errorf("AUTH_FERNET_KEYS is not set")
			}

			token, err := middleware.IssueToken(keys[0], userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id to embed in the token")
	cmd.Flags().BoolVar(&generateKey, "generate-key", false, "print a new random fernet key and exit")
	return cmd
}
