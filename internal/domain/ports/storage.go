// Package ports defines interfaces for external service communication.
package ports

import (
	"context"

	"github.com/ersonp/quill/internal/domain/entities"
)

// SnapshotRepository persists a whole journal collection under a named slot.
// The collection is read once at startup and rewritten on every mutation.
type SnapshotRepository interface {
	// LoadSnapshot returns the collection stored in slot, or an empty slice if
	// the slot has never been written.
	LoadSnapshot(ctx context.Context, slot string) ([]entities.Excerpt, error)

	// SaveSnapshot replaces the collection stored in slot.
	SaveSnapshot(ctx context.Context, slot string, excerpts []entities.Excerpt) error

	// ListSlots returns the names of all written slots.
	ListSlots(ctx context.Context) ([]string, error)

	// DeleteSlot removes slot and its collection.
	DeleteSlot(ctx context.Context, slot string) error

	// LastDate returns the excerpt date last written to slot, or "" if none.
	LastDate(ctx context.Context, slot string) (string, error)

	// SaveLastDate records the excerpt date last written to slot.
	SaveLastDate(ctx context.Context, slot, date string) error
}

// AuditLog records journal mutations.
type AuditLog interface {
	// LogAction logs an action to the audit log.
	LogAction(ctx context.Context, slot, action, excerptID string, details map[string]any) error

	// FindAuditLog finds audit entries for a slot, newest first.
	FindAuditLog(ctx context.Context, slot string, limit int) ([]entities.AuditEntry, error)

	// FindAuditLogByExcerpt finds audit entries for a single excerpt, newest first.
	FindAuditLogByExcerpt(ctx context.Context, excerptID string) ([]entities.AuditEntry, error)
}

// SchemaManager prepares a storage backend for first use.
type SchemaManager interface {
	EnsureSchema(ctx context.Context) error
	Close() error
}
