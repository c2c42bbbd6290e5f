// Package store provides SQLite-backed persistence for the chat log.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	author   TEXT NOT NULL,
	body     TEXT NOT NULL,
	created  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_created ON messages(created);
`

// Entry is a persisted chat message.
type Entry struct {
	ID      int64
	Author  string
	Body    string
	Created time.Time
}

// History is a SQLite-backed message log. A nil *History is valid and
// behaves as an always-empty store that discards writes.
type History struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates or opens a history database at the given path.
func Open(dbPath string) (*History, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	// SQLite pragmas for performance.
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	log.Debug().Str("path", dbPath).Msg("opened history")
	return &History{db: db}, nil
}

// Close closes the database.
func (h *History) Close() error {
	if h == nil {
		return nil
	}
	return h.db.Close()
}

// Append stores a message and returns its row ID. Returns 0, nil on a nil
// receiver.
func (h *History) Append(author, body string, created time.Time) (int64, error) {
	if h == nil {
		return 0, nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	res, err := h.db.Exec(
		"INSERT INTO messages (author, body, created) VALUES (?, ?, ?)",
		author, body, created.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("append message: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit of the newest messages, oldest first.
// limit <= 0 returns everything.
func (h *History) Recent(limit int) ([]Entry, error) {
	if h == nil {
		return nil, nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	query := `SELECT id, author, body, created FROM (
		SELECT id, author, body, created FROM messages ORDER BY id DESC LIMIT ?
	) ORDER BY id`
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}

	rows, err := h.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.ID, &e.Author, &e.Body, &created); err != nil {
			log.Warn().Err(err).Msg("skipping unreadable message row")
			continue
		}
		e.Created = time.Unix(created, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes every message.
func (h *History) Clear() error {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	res, err := h.db.Exec("DELETE FROM messages")
	if err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Info().Int64("deleted", n).Msg("cleared history")
	}
	return nil
}
