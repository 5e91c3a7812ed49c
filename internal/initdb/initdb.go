// Package initdb runs the one-shot initialization procedure for the notes
// database: baseline tables, seeded metadata, the gated notes migration, and
// the auxiliary connection-info outputs.
package initdb

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kavia/notesdb/internal/config"
	"github.com/kavia/notesdb/internal/logger"
	"github.com/kavia/notesdb/internal/store"
)

// Summary is the outcome of one initialization run.
type Summary struct {
	DBPath         string // absolute
	DBName         string
	DBExisted      bool
	CreatedNotes   bool
	Tables         int
	AppInfoRecords int
}

// StatusLine renders the pipe-delimited end status.
func (s Summary) StatusLine() string {
	notes := "ready"
	if s.CreatedNotes {
		notes = "created"
	}
	return fmt.Sprintf("SQLite setup complete | DB=%s | tables=%d | app_info_records=%d | notes_table=%s",
		s.DBName, s.Tables, s.AppInfoRecords, notes)
}

// Run executes the initialization procedure against cfg using st, which
// must not be opened yet; Run owns the connection lifecycle and closes it on
// every exit path. Schema and migration errors are fatal and returned;
// failures writing the auxiliary connection-info and environment files are
// logged as warnings only.
func Run(cfg *config.Config, st store.Store, log logger.Logger) (Summary, error) {
	log.Info("Starting SQLite setup...")

	if err := os.MkdirAll(cfg.Migrations.Dir, 0755); err != nil {
		return Summary{}, fmt.Errorf("failed to create migrations directory %s: %w", cfg.Migrations.Dir, err)
	}

	dbExists, err := store.CheckExists(cfg.DB.Path)
	if err != nil {
		return Summary{}, err
	}
	if dbExists {
		log.Info("SQLite database already exists at %s", cfg.DB.Path)
	} else {
		log.Info("Creating new SQLite database...")
	}

	if err := st.Open(); err != nil {
		return Summary{}, err
	}
	defer st.Close()

	createdNotes, err := st.Initialize(cfg.Seeds(), cfg.MigrationFile())
	if err != nil {
		return Summary{}, err
	}

	stats, err := st.Stats()
	if err != nil {
		return Summary{}, err
	}

	absPath, err := filepath.Abs(cfg.DB.Path)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to resolve database path: %w", err)
	}

	sum := Summary{
		DBPath:         absPath,
		DBName:         filepath.Base(cfg.DB.Path),
		DBExisted:      dbExists,
		CreatedNotes:   createdNotes,
		Tables:         stats.TableCount,
		AppInfoRecords: stats.AppInfoCount,
	}

	// Auxiliary outputs are best effort; the database is already correct.
	if err := writeConnectionInfo(cfg.Output.ConnectionInfo, absPath); err != nil {
		log.Warn("Could not save connection info: %v", err)
	} else {
		log.Info("Connection information saved to %s", cfg.Output.ConnectionInfo)
	}

	if err := writeViewerEnv(cfg.Output.VisualizerDir, cfg.EnvFile(), absPath); err != nil {
		log.Warn("Could not save environment variables: %v", err)
	} else {
		log.Info("Environment variables saved to %s", cfg.EnvFile())
	}

	return sum, nil
}

// writeConnectionInfo records how downstream tooling can reach the database:
// a driver hint, a sqlite:/// URI, and the absolute file path.
func writeConnectionInfo(path, dbPath string) error {
	content := fmt.Sprintf("# Driver: modernc.org/sqlite (sql.Open(\"sqlite\", %q))\n"+
		"# Connection string: sqlite:///%s\n"+
		"# File path: %s\n",
		dbPath, dbPath, dbPath)
	return os.WriteFile(path, []byte(content), 0644)
}

// writeViewerEnv exposes the database path to the external viewer tool.
func writeViewerEnv(dir, path, dbPath string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	content := fmt.Sprintf("export SQLITE_DB=%q\n", dbPath)
	return os.WriteFile(path, []byte(content), 0644)
}
