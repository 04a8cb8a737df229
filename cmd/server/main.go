package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ndewijer/portfolio-tracker/internal/config"
	"github.com/ndewijer/portfolio-tracker/internal/logger"
	"github.com/ndewijer/portfolio-tracker/internal/service"
	"github.com/ndewijer/portfolio-tracker/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running without a subcommand serves HTTP.
func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:           "portfolio-tracker",
		Short:         "Portfolio valuation and analytics API",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	root.AddCommand(serve, newMigrateCmd(), newTokenCmd(), newVersionCmd())
	return root
}

// setup loads configuration and installs the process logger.
func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger.SetGlobalLogger(log)
	return cfg, log, nil
}

func anchorPolicy(anchor string) service.AnchorPolicy {
	if anchor == config.AnchorMarket {
		return service.AnchorMarketValue
	}
	return service.AnchorCostBasis
}
