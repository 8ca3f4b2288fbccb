package cmd

import (
	"github.com/spf13/cobra"

	"eventmanagement/internal/repository/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return err
		}
		defer db.Close()

		logger.Info("running database migrations")
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		logger.Info("database migrations completed")
		return nil
	},
}
