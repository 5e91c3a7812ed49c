package main

import (
	"fmt"
	"os"

	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"

	"github.com/kavia/notesdb/internal/config"
	"github.com/kavia/notesdb/internal/initdb"
	"github.com/kavia/notesdb/internal/logger"
	"github.com/kavia/notesdb/internal/store"
	"github.com/kavia/notesdb/internal/store/sqlite"
)

var (
	version = semver.Version{Minor: 1, Build: semver.Commit()}
)

var (
	dbPath        string
	migrationsDir string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "notesdb",
		Short:   "Notes database initializer and admin CLI",
		Version: version.String(),
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the SQLite database file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&migrationsDir, "migrations-dir", "", "directory holding migration scripts (overrides config)")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create and idempotently migrate the notes database",
		RunE:  runInit,
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Report the current state of the notes database",
		RunE:  runStatus,
	}

	rootCmd.AddCommand(initCmd, statusCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the file/env configuration and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if migrationsDir != "" {
		cfg.Migrations.Dir = migrationsDir
	}
	return cfg, nil
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sum, err := initdb.Run(cfg, sqlite.New(cfg.DB.Path), logger.Default)
	if err != nil {
		return err
	}

	fmt.Println(sum.StatusLine())
	fmt.Printf("Location: %s\n", sum.DBPath)
	fmt.Printf("Connect: sqlite3 %s\n", sum.DBName)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	exists, err := store.CheckExists(cfg.DB.Path)
	if err != nil {
		return err
	}
	if !exists {
		fmt.Printf("%s: %s\n", cfg.DB.Path, store.StateMissing)
		return nil
	}

	st := sqlite.New(cfg.DB.Path)
	if err := st.Open(); err != nil {
		return err
	}
	defer st.Close()

	state, err := st.CheckState()
	if err != nil {
		return err
	}
	stats, err := st.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s | tables=%d | app_info_records=%d\n", cfg.DB.Path, state, stats.TableCount, stats.AppInfoCount)
	return nil
}
