package store

import (
	"fmt"
	"os"
)

const (
	DefaultDBFile = "myapp.db"
)

// CheckExists verifies if the database file exists at the given path.
// Returns true if the file exists, false otherwise.
func CheckExists(dbPath string) (bool, error) {
	info, err := os.Stat(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check database existence: %w", err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("database path is a directory, expected file: %s", dbPath)
	}
	return true, nil
}
