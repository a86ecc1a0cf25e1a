package main

import (
	"database/sql"
	"fmt"
	"os"

	"blog-api/migrations"
	"blog-api/pkg/config"
	"blog-api/pkg/database"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dsn string
	dir string
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the blog database schema",
	Long: `Apply, roll back and inspect goose migrations of the blog schema.

By default the migrations compiled into the binary are used. Pass --dir
to run the SQL files of a directory instead.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dsn, "db", "", "Database DSN (defaults to the DB_* environment)")
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "Directory with migration files (defaults to the embedded set)")
}

// openDB connects with lib/pq and points goose at the migration source.
// It returns the directory argument goose expects.
func openDB() (*sql.DB, string, error) {
	if dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		dsn = database.DSN(cfg)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		db.Close()
		return nil, "", fmt.Errorf("failed to set dialect: %w", err)
	}

	if dir != "" {
		goose.SetBaseFS(nil)
		return db, dir, nil
	}
	goose.SetBaseFS(migrations.FS)
	return db, ".", nil
}
