package main

import (
	"context"
	"fmt"
	"time"

	"agromap-backend/internal/infrastructure/database"

	"github.com/spf13/cobra"
)

var migrateTimeout time.Duration

// migrateCmd applies the embedded SQL migrations
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long: `Apply every embedded migration not yet recorded in schema_migrations.

Examples:
  agromapctl migrate
  agromapctl migrate --list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if list, _ := cmd.Flags().GetBool("list"); list {
			return runMigrateList(cmd)
		}
		return runMigrate(cmd)
	},
}

func init() {
	migrateCmd.Flags().DurationVar(&migrateTimeout, "timeout", 2*time.Minute, "Overall timeout")
	migrateCmd.Flags().Bool("list", false, "List the embedded migrations without applying them")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
	defer cancel()

	db, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := database.Migrate(ctx, db.Pool)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(applied) == 0 {
		fmt.Fprintln(out, "Database is up to date")
		return nil
	}
	for _, v := range applied {
		fmt.Fprintf(out, "applied %s\n", v)
	}
	return nil
}

func runMigrateList(cmd *cobra.Command) error {
	files, err := database.MigrationFiles()
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Fprintln(cmd.OutOrStdout(), f)
	}
	return nil
}
