package entities

import "time"

// Audit actions recorded for journal mutations.
const (
	ActionAdd     = "add"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionImport  = "import"
	ActionRestore = "restore"
)

// AuditEntry represents a logged action on the journal.
type AuditEntry struct {
	ID        int64          `json:"id"`
	Slot      string         `json:"slot"`
	Action    string         `json:"action"`
	ExcerptID string         `json:"excerpt_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
