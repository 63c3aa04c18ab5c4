package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"goals-tracker-backend/internal/config"
	"goals-tracker-backend/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		database, err := db.Connect(cfg.ConnString())
		if err != nil {
			return fmt.Errorf("connect db: %w", err)
		}
		defer database.Close()

		if err := db.Migrate(cmd.Context(), database); err != nil {
			return err
		}
		log.Println("[INFO] schema is up to date")
		return nil
	},
}
