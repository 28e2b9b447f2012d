package database

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/thryx-chain/thryx/x/shared/events"
)

//go:embed schema.sql
var schemaFile embed.FS

// DB wraps the Postgres connection used by the event sink.
type DB struct {
	*sql.DB
}

// Config holds database connection settings.
type Config struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// New opens a Postgres connection and verifies it.
func New(cfg Config) (*DB, error) {
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &DB{db}, nil
}

// InitSchema creates the events table if it does not exist.
func (db *DB) InitSchema() error {
	schema, err := schemaFile.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// StoredEvent is an event row read back from the database.
type StoredEvent struct {
	ID         int64             `json:"id"`
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
	EmittedAt  time.Time         `json:"emitted_at"`
}

// InsertEvent stores one module event.
func (db *DB) InsertEvent(ev events.Event) error {
	attrs := make(map[string]string, len(ev.Attributes))
	for _, a := range ev.Attributes {
		attrs[a.Key] = a.Value
	}
	encoded, err := json.Marshal(attrs)
	if err != nil {
		return fmt.Errorf("encode attributes: %w", err)
	}
	_, err = db.Exec(
		`INSERT INTO events (type, attributes, emitted_at) VALUES ($1, $2, $3)`,
		ev.Type, encoded, ev.EmittedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// RecentEvents returns the newest events, optionally filtered by type.
func (db *DB) RecentEvents(eventType string, limit int) ([]StoredEvent, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	var (
		rows *sql.Rows
		err  error
	)
	if eventType == "" {
		rows, err = db.Query(
			`SELECT id, type, attributes, emitted_at FROM events ORDER BY id DESC LIMIT $1`,
			limit,
		)
	} else {
		rows, err = db.Query(
			`SELECT id, type, attributes, emitted_at FROM events WHERE type = $1 ORDER BY id DESC LIMIT $2`,
			eventType, limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []StoredEvent
	for rows.Next() {
		var (
			ev      StoredEvent
			encoded []byte
		)
		if err := rows.Scan(&ev.ID, &ev.Type, &encoded, &ev.EmittedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if err := json.Unmarshal(encoded, &ev.Attributes); err != nil {
			return nil, fmt.Errorf("decode attributes: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
