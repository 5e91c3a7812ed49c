package sqlite

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/kavia/notesdb/internal/store"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using modernc.org/sqlite.
type SQLiteStore struct {
	dbPath string
	db     *sql.DB
}

// New creates a new SQLiteStore for the database file at dbPath. The file is
// created on first Open if absent.
func New(dbPath string) *SQLiteStore {
	return &SQLiteStore{
		dbPath: dbPath,
	}
}

// Open opens the SQLite database with safe defaults. PRAGMA foreign_keys is
// session-scoped in SQLite and must be re-applied on every connection; it is
// never persisted in the file.
func (s *SQLiteStore) Open() error {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Pragmas bind to a single connection; the pool must not rotate them away.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	s.db = db
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Initialize creates the baseline tables and upserts the seed rows in one
// transaction, then applies the migration at migrationPath if the notes
// table is missing.
//
// The migration script runs as its own unit of work after the baseline
// commit rather than inside the surrounding transaction: multi-statement
// script execution does not nest reliably inside an open transaction across
// embedded engines, so atomicity is guaranteed per unit, not across both.
// The migration file is read while the baseline transaction is still open,
// so a missing file rolls back and commits nothing from this call.
func (s *SQLiteStore) Initialize(seeds []store.Seed, migrationPath string) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("database not opened")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(baselineSchema); err != nil {
		return false, fmt.Errorf("failed to create baseline schema: %w", err)
	}

	for _, seed := range seeds {
		if _, err := tx.Exec(upsertAppInfo, seed.Key, seed.Value); err != nil {
			return false, fmt.Errorf("failed to upsert app_info %q: %w", seed.Key, err)
		}
	}

	var count int
	err = tx.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, notesTable).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check notes table: %w", err)
	}
	notesExists := count > 0

	var migrationSQL []byte
	if !notesExists {
		migrationSQL, err = os.ReadFile(migrationPath)
		if err != nil {
			if os.IsNotExist(err) {
				return false, fmt.Errorf("%w: %s", store.ErrMigrationNotFound, migrationPath)
			}
			return false, fmt.Errorf("failed to read migration %s: %w", migrationPath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if notesExists {
		return false, nil
	}

	// Own unit of work; the script may carry multiple statements
	// (table plus indexes) and is applied verbatim.
	if _, err := s.db.Exec(string(migrationSQL)); err != nil {
		return false, fmt.Errorf("failed to apply migration %s: %w", migrationPath, err)
	}
	return true, nil
}

// TableExists reports whether a user table with the given name exists.
func (s *SQLiteStore) TableExists(name string) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("database not opened")
	}

	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check table %q: %w", name, err)
	}
	return count > 0, nil
}

// Stats returns the user table count and the app_info row count. The
// app_info count is best effort and reads as zero when the table is absent.
func (s *SQLiteStore) Stats() (store.Stats, error) {
	if s.db == nil {
		return store.Stats{}, fmt.Errorf("database not opened")
	}

	var st store.Stats
	err := s.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'`).Scan(&st.TableCount)
	if err != nil {
		return store.Stats{}, fmt.Errorf("failed to count tables: %w", err)
	}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM app_info`).Scan(&st.AppInfoCount); err != nil {
		st.AppInfoCount = 0
	}

	return st, nil
}

// CheckState returns the current state of the datastore.
func (s *SQLiteStore) CheckState() (store.StoreState, error) {
	exists, err := store.CheckExists(s.dbPath)
	if err != nil {
		return store.StateMissing, err
	}
	if !exists {
		return store.StateMissing, nil
	}

	if s.db == nil {
		return store.StateUninitialized, fmt.Errorf("database not opened")
	}

	notes, err := s.TableExists(notesTable)
	if err != nil {
		return store.StateUninitialized, err
	}
	if !notes {
		return store.StateUninitialized, nil
	}
	return store.StateReady, nil
}
