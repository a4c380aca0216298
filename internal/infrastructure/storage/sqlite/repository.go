// Package sqlite provides a SQLite implementation of the journal storage ports.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/quill/internal/domain/entities"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.SnapshotRepository and ports.AuditLog using SQLite.
type Repository struct {
	db     *sql.DB
	path   string
	logger zerolog.Logger
}

// NewRepository opens (creating if needed) the SQLite database at path.
func NewRepository(path string, logger zerolog.Logger) (*Repository, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// One connection: pragmas are per-connection and :memory: databases are
	// private to the connection that created them.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:     db,
		path:   path,
		logger: logger.With().Str("component", "sqlite").Logger(),
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Journal snapshots: one JSON array of excerpts per named slot
	CREATE TABLE IF NOT EXISTS slots (
		name TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	-- Date of the most recently written excerpt per slot
	CREATE TABLE IF NOT EXISTS slot_dates (
		slot TEXT PRIMARY KEY,
		last_date TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);

	-- Audit log (tracks all journal mutations)
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		slot TEXT NOT NULL,
		action TEXT NOT NULL,
		excerpt_id TEXT,
		details TEXT,
		created_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_audit_log_slot ON audit_log(slot);
	CREATE INDEX IF NOT EXISTS idx_audit_log_excerpt ON audit_log(excerpt_id);
	CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// LoadSnapshot returns the collection stored in slot, or an empty slice.
func (r *Repository) LoadSnapshot(ctx context.Context, slot string) ([]entities.Excerpt, error) {
	query := `SELECT data FROM slots WHERE name = ?`

	var data string
	err := r.db.QueryRowContext(ctx, query, slot).Scan(&data)
	if err == sql.ErrNoRows {
		return []entities.Excerpt{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %s: %w", slot, err)
	}

	excerpts := []entities.Excerpt{}
	if err := json.Unmarshal([]byte(data), &excerpts); err != nil {
		return nil, fmt.Errorf("decoding slot %s: %w", slot, err)
	}

	r.logger.Debug().Str("slot", slot).Int("count", len(excerpts)).Msg("snapshot loaded")
	return excerpts, nil
}

// SaveSnapshot replaces the collection stored in slot.
func (r *Repository) SaveSnapshot(ctx context.Context, slot string, excerpts []entities.Excerpt) error {
	if excerpts == nil {
		excerpts = []entities.Excerpt{}
	}

	data, err := json.Marshal(excerpts)
	if err != nil {
		return fmt.Errorf("encoding slot %s: %w", slot, err)
	}

	query := `
		INSERT INTO slots (name, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, slot, string(data), timeNow().UTC()); err != nil {
		return fmt.Errorf("writing slot %s: %w", slot, err)
	}

	r.logger.Debug().Str("slot", slot).Int("count", len(excerpts)).Int("bytes", len(data)).Msg("snapshot saved")
	return nil
}

// ListSlots returns the names of all written slots.
func (r *Repository) ListSlots(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM slots ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying slots: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning slot: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DeleteSlot removes slot and its audit history.
func (r *Repository) DeleteSlot(ctx context.Context, slot string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM slots WHERE name = ?`, slot); err != nil {
		return fmt.Errorf("deleting slot: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM audit_log WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("deleting slot audit log: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM slot_dates WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("deleting slot date: %w", err)
	}

	return tx.Commit()
}

// LastDate returns the excerpt date last written to slot, or "" if none.
func (r *Repository) LastDate(ctx context.Context, slot string) (string, error) {
	var date string
	err := r.db.QueryRowContext(ctx, `SELECT last_date FROM slot_dates WHERE slot = ?`, slot).Scan(&date)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying last date: %w", err)
	}
	return date, nil
}

// SaveLastDate records the excerpt date last written to slot.
func (r *Repository) SaveLastDate(ctx context.Context, slot, date string) error {
	query := `
		INSERT INTO slot_dates (slot, last_date, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET last_date = excluded.last_date, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, slot, date, timeNow().UTC()); err != nil {
		return fmt.Errorf("saving last date: %w", err)
	}
	return nil
}

// LogAction logs an action to the audit log.
func (r *Repository) LogAction(ctx context.Context, slot, action, excerptID string, details map[string]any) error {
	var detailsJSON sql.NullString
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	var excerptIDPtr sql.NullString
	if excerptID != "" {
		excerptIDPtr = sql.NullString{String: excerptID, Valid: true}
	}

	query := `INSERT INTO audit_log (slot, action, excerpt_id, details, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, slot, action, excerptIDPtr, detailsJSON, timeNow().UTC())
	if err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// FindAuditLog finds audit log entries for a slot, newest first.
func (r *Repository) FindAuditLog(ctx context.Context, slot string, limit int) ([]entities.AuditEntry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	query := `
		SELECT id, slot, action, excerpt_id, details, created_at
		FROM audit_log
		WHERE slot = ?
		ORDER BY id DESC
		LIMIT ?
	`
	return r.queryAuditLog(ctx, query, slot, limit)
}

// FindAuditLogByExcerpt finds audit log entries for a single excerpt, newest first.
func (r *Repository) FindAuditLogByExcerpt(ctx context.Context, excerptID string) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, slot, action, excerpt_id, details, created_at
		FROM audit_log
		WHERE excerpt_id = ?
		ORDER BY id DESC
	`
	return r.queryAuditLog(ctx, query, excerptID)
}

// queryAuditLog is a helper to execute audit log queries.
func (r *Repository) queryAuditLog(ctx context.Context, query string, args ...any) ([]entities.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var entries []entities.AuditEntry
	for rows.Next() {
		var entry entities.AuditEntry
		var excerptID, details sql.NullString

		if err := rows.Scan(
			&entry.ID,
			&entry.Slot,
			&entry.Action,
			&excerptID,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		entry.ExcerptID = excerptID.String

		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
