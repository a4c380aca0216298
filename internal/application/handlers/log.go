package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/quill/internal/domain/entities"
	"github.com/ersonp/quill/internal/domain/ports"
)

// LogHandler reads the journal's audit log.
type LogHandler struct {
	audit ports.AuditLog
	slot  string
}

// NewLogHandler creates a new audit log handler for slot.
func NewLogHandler(audit ports.AuditLog, slot string) *LogHandler {
	return &LogHandler{
		audit: audit,
		slot:  slot,
	}
}

// Recent returns up to limit of the newest audit entries (0 means all).
func (h *LogHandler) Recent(ctx context.Context, limit int) ([]entities.AuditEntry, error) {
	entries, err := h.audit.FindAuditLog(ctx, h.slot, limit)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	return entries, nil
}
