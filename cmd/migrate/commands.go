package main

import (
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	// up/down flags
	toVersion int64
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Long: `Apply pending migrations.

Examples:
  migrate up                 # Apply everything pending
  migrate up --to 1          # Apply up to version 1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, source, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if toVersion > 0 {
			err = goose.UpTo(db, source, toVersion)
		} else {
			err = goose.Up(db, source)
		}
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		fmt.Println("Migrations applied successfully")
		return nil
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	Long: `Roll back the latest migration, or every migration above --to.

Examples:
  migrate down               # Roll back one version
  migrate down --to 0        # Roll back everything`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, source, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if cmd.Flags().Changed("to") {
			err = goose.DownTo(db, source, toVersion)
		} else {
			err = goose.Down(db, source)
		}
		if err != nil {
			return fmt.Errorf("failed to rollback migrations: %w", err)
		}
		fmt.Println("Migrations rolled back successfully")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, source, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := goose.Status(db, source); err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		version, err := goose.GetDBVersion(db)
		if err != nil {
			return fmt.Errorf("failed to get schema version: %w", err)
		}
		fmt.Printf("Schema version: %d\n", version)
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a new SQL migration file",
	Long: `Create a new timestamped SQL migration in --dir.

Examples:
  migrate create add_post_tags --dir migrations`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if dir == "" {
			return errors.New("--dir is required for create")
		}
		goose.SetBaseFS(nil)
		if err := goose.Create(nil, dir, args[0], "sql"); err != nil {
			return fmt.Errorf("failed to create migration: %w", err)
		}
		fmt.Printf("Created migration: %s\n", args[0])
		return nil
	},
}

func init() {
	upCmd.Flags().Int64Var(&toVersion, "to", 0, "Target version")
	downCmd.Flags().Int64Var(&toVersion, "to", 0, "Target version")

	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(downCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(createCmd)
}
