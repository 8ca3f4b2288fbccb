package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"eventmanagement/config"
)

var (
	cfg    *config.Config
	logger *slog.Logger

	rootCmd = &cobra.Command{
		Use:   "eventmanagement",
		Short: "Event management API",
		Long: `Event management backend.

Serves the REST API for events, venues, performers, users and saved events,
and applies the PostgreSQL schema.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger = config.NewLogger(cfg)
			slog.SetDefault(logger)
			return nil
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
