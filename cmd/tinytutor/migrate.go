package main

import (
	"github.com/spf13/cobra"

	"github.com/brainboyai/tiny-tutor-api/internal/config"
	"github.com/brainboyai/tiny-tutor-api/internal/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := config.Connect(ctx, settings.DatabaseDSN, settings.DBConnAttempts)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		if err := migrations.Run(db.WithContext(ctx)); err != nil {
			return err
		}
		config.WithContext(ctx).Info("Migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
