package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB holding imported glossary sources.
type DB struct {
	*sql.DB
	path string
}

// Open creates or opens a SQLite database file at path, creating parent
// directories as needed.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	return open(path, path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", 0)
}

// OpenMemory creates an in-memory SQLite database for tests.
func OpenMemory() (*DB, error) {
	// Every pooled connection to ":memory:" is a separate database.
	return open(":memory:", ":memory:?_foreign_keys=on", 1)
}

func open(path, dsn string, maxConns int) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if maxConns > 0 {
		sqlDB.SetMaxOpenConns(maxConns)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database %s: %w", path, err)
	}

	d := &DB{DB: sqlDB, path: path}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}
	return d, nil
}

// Path returns the file the database was opened from.
func (d *DB) Path() string { return d.path }

// Version returns the schema version recorded in the database.
func (d *DB) Version() (int, error) {
	var v int
	if err := d.QueryRow(`PRAGMA user_version`).Scan(&v); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}

// migrate applies the schema when the recorded version is older. A database
// written by a newer termlink is rejected.
func (d *DB) migrate() error {
	v, err := d.Version()
	if err != nil {
		return err
	}
	switch {
	case v == schemaVersion:
		return nil
	case v > schemaVersion:
		return fmt.Errorf("schema version %d is newer than supported version %d", v, schemaVersion)
	}
	if _, err := d.Exec(schema); err != nil {
		return err
	}
	_, err = d.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, schemaVersion))
	return err
}

const schemaVersion = 1

// schema is the glossary store schema at schemaVersion.
const schema = `
CREATE TABLE IF NOT EXISTS glossary_sets (
    name TEXT PRIMARY KEY,
    source TEXT NOT NULL DEFAULT '',
    imported_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS glossary_terms (
    set_name TEXT NOT NULL REFERENCES glossary_sets(name) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    term_key TEXT NOT NULL DEFAULT '',
    name TEXT NOT NULL DEFAULT '',
    alias TEXT NOT NULL DEFAULT '',
    level TEXT NOT NULL DEFAULT '',
    plain TEXT NOT NULL DEFAULT '',
    detail TEXT NOT NULL DEFAULT '',
    analogy TEXT NOT NULL DEFAULT '',
    mistake TEXT NOT NULL DEFAULT '',
    example TEXT NOT NULL DEFAULT '',
    scene TEXT NOT NULL DEFAULT '',
    code TEXT NOT NULL DEFAULT '',
    PRIMARY KEY(set_name, position)
);

CREATE INDEX IF NOT EXISTS idx_glossary_terms_set ON glossary_terms(set_name, position);
`
