package profile

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/avanderveen/curio/pkg/walkthrough"
)

// Cache persists the last known completion flags to a local SQLite
// file, so a fresh session can show tour state before the remote
// responds and an offline session keeps the user's place.
type Cache struct {
	db   *sql.DB
	path string
}

// OpenCache opens (or creates) the cache database at path.
func OpenCache(path string) (*Cache, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("profile cache: open %s: %w", path, err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS walkthrough_flags (
			page       TEXT PRIMARY KEY,
			completed  INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("profile cache: create schema: %w", err)
	}

	return &Cache{db: db, path: path}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Load reads the cached flags. ok is false when the cache is empty.
func (c *Cache) Load() (flags map[walkthrough.Page]bool, ok bool, err error) {
	rows, err := c.db.Query(`SELECT page, completed FROM walkthrough_flags`)
	if err != nil {
		return nil, false, fmt.Errorf("profile cache: load: %w", err)
	}
	defer rows.Close()

	flags = make(map[walkthrough.Page]bool)
	for rows.Next() {
		var name string
		var completed int
		if err := rows.Scan(&name, &completed); err != nil {
			return nil, false, fmt.Errorf("profile cache: scan: %w", err)
		}
		page, perr := walkthrough.ParsePage(name)
		if perr != nil {
			continue // stale page from an older build
		}
		flags[page] = completed != 0
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("profile cache: load: %w", err)
	}
	return flags, len(flags) > 0, nil
}

// Save replaces the cached flags with the given set.
func (c *Cache) Save(flags map[walkthrough.Page]bool) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("profile cache: save: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	stmt, err := tx.Prepare(`
		INSERT INTO walkthrough_flags (page, completed, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(page) DO UPDATE SET completed = excluded.completed, updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("profile cache: save: %w", err)
	}
	defer stmt.Close()

	for page, done := range flags {
		val := 0
		if done {
			val = 1
		}
		if _, err := stmt.Exec(string(page), val, now); err != nil {
			return fmt.Errorf("profile cache: save %s: %w", page, err)
		}
	}
	return tx.Commit()
}
