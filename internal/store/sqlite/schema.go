package sqlite

// baselineSchema holds the two tables every run guarantees. The notes table
// is deliberately absent: its schema lives in the migration file and is the
// migration author's contract, applied verbatim.
const baselineSchema = `
CREATE TABLE IF NOT EXISTS app_info (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    key TEXT UNIQUE NOT NULL,
    value TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    email TEXT UNIQUE NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// upsertAppInfo is keyed on app_info.key; re-running replaces the value
// instead of accumulating rows.
const upsertAppInfo = `INSERT OR REPLACE INTO app_info (key, value) VALUES (?, ?)`

const notesTable = "notes"
