package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndewijer/portfolio-tracker/internal/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			applied, err := database.Migrate(cmd.Context(), db)
			if err != nil {
				return err
			}
			current, err := database.SchemaVersion(cmd.Context(), db)
			if err != nil {
				return err
			}

			log.Info().Int("applied", applied).Int64("version", current).Msg("migrations complete")
			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d (%d applied)\n", current, applied)
			return nil
		},
	}
}
