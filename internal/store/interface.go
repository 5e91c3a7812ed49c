package store

import "errors"

// ErrMigrationNotFound reports that the notes migration file is absent while
// the notes table still has to be created. Callers test for it with errors.Is.
var ErrMigrationNotFound = errors.New("migration file not found")

// StoreState represents the initialization state of the notes database.
type StoreState int

const (
	StateMissing       StoreState = iota // File doesn't exist
	StateUninitialized                   // File exists but the notes table is absent
	StateReady                           // Baseline tables and notes table present
)

func (s StoreState) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// Seed is one app_info metadata entry, upserted by key on every run.
type Seed struct {
	Key   string
	Value string
}

// Stats summarizes the database after initialization.
type Stats struct {
	// TableCount is the number of user-defined tables, excluding the
	// engine's own sqlite_* catalog tables.
	TableCount int
	// AppInfoCount is the number of rows in app_info.
	AppInfoCount int
}

// Store defines the notes datastore contract.
type Store interface {
	// Open opens the datastore connection and applies session pragmas.
	Open() error

	// Close closes the datastore connection.
	Close() error

	// Initialize creates the baseline tables, upserts the seed rows, and
	// applies the notes migration from migrationPath if the notes table is
	// missing. It reports whether the notes table was created by this call.
	// A missing migration file yields ErrMigrationNotFound and nothing from
	// the call's transaction is committed.
	Initialize(seeds []Seed, migrationPath string) (createdNotes bool, err error)

	// TableExists reports whether a user table with the given name exists.
	TableExists(name string) (bool, error)

	// Stats returns post-initialization summary counts.
	Stats() (Stats, error)

	// CheckState returns the current state of the datastore.
	CheckState() (StoreState, error)
}
