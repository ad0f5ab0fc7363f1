// Package database keeps a SQLite history of discovery runs and recolours.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// memoryPath opens a private in-memory history.
const memoryPath = ":memory:"

// ErrSchemaTooNew is returned when the file was written by a newer build whose
// migrations this build does not know.
var ErrSchemaTooNew = errors.New("history schema is newer than this build")

// historyPragmas are applied to every connection. Recolors reference runs with
// ON DELETE CASCADE, so foreign keys must be on.
var historyPragmas = []string{
	"foreign_keys(1)",
	"journal_mode(WAL)",
	"busy_timeout(5000)",
}

// DB is the run history store.
type DB struct {
	conn    *sql.DB
	path    string
	version int
}

// New opens the history at dbPath, creating the file and its directory if
// needed, and brings the schema up to SchemaVersion.
func New(dbPath string) (*DB, error) {
	if dbPath != memoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time; an in-memory database also only lives as long as
	// its single connection.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn, path: dbPath}
	if err := db.upgrade(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to prepare history %s: %w", dbPath, err)
	}
	return db, nil
}

// dsn builds the modernc connection string for a path.
func dsn(dbPath string) string {
	params := make([]string, len(historyPragmas))
	for i, p := range historyPragmas {
		params[i] = "_pragma=" + p
	}
	return dbPath + "?" + strings.Join(params, "&")
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the location the history was opened from.
func (db *DB) Path() string {
	return db.path
}

// Version returns the schema version of the open history.
func (db *DB) Version() int {
	return db.version
}

// upgrade applies the migrations newer than the file's user_version, each in
// its own transaction together with the version bump.
func (db *DB) upgrade() error {
	current, err := db.userVersion()
	if err != nil {
		return err
	}
	if current > SchemaVersion {
		return fmt.Errorf("file at version %d, build knows %d: %w", current, SchemaVersion, ErrSchemaTooNew)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		tx, err := db.conn.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(m.sql); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
		}
		// PRAGMA does not take bind parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		current = m.version
	}

	db.version = current
	return nil
}

func (db *DB) userVersion() (int, error) {
	var v int
	err := db.conn.QueryRow("PRAGMA user_version").Scan(&v)
	return v, err
}
