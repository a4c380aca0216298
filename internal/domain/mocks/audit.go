package mocks

import (
	"context"
	"sync"

	"github.com/ersonp/quill/internal/domain/entities"
)

// AuditLog is a mock implementation of ports.AuditLog.
type AuditLog struct {
	mu      sync.Mutex
	Entries []entities.AuditEntry
	Err     error
}

// LogAction records the action in memory.
func (m *AuditLog) LogAction(_ context.Context, slot, action, excerptID string, details map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Entries = append(m.Entries, entities.AuditEntry{
		ID:        int64(len(m.Entries) + 1),
		Slot:      slot,
		Action:    action,
		ExcerptID: excerptID,
		Details:   details,
	})
	return nil
}

// FindAuditLog returns entries for slot, newest first.
func (m *AuditLog) FindAuditLog(_ context.Context, slot string, limit int) ([]entities.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []entities.AuditEntry
	for i := len(m.Entries) - 1; i >= 0; i-- {
		if m.Entries[i].Slot == slot {
			out = append(out, m.Entries[i])
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// FindAuditLogByExcerpt returns entries for excerptID, newest first.
func (m *AuditLog) FindAuditLogByExcerpt(_ context.Context, excerptID string) ([]entities.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []entities.AuditEntry
	for i := len(m.Entries) - 1; i >= 0; i-- {
		if m.Entries[i].ExcerptID == excerptID {
			out = append(out, m.Entries[i])
		}
	}
	return out, nil
}

// Actions returns the recorded action names in order.
func (m *AuditLog) Actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		out[i] = e.Action
	}
	return out
}
