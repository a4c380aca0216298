// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"slices"
	"sync"

	"github.com/ersonp/quill/internal/domain/entities"
)

// SnapshotRepository is a mock implementation of ports.SnapshotRepository.
type SnapshotRepository struct {
	mu    sync.Mutex
	Slots map[string][]entities.Excerpt

	LastDates map[string]string

	LoadErr     error
	SaveErr     error
	LastDateErr error

	// Call tracking
	SaveCallCount int
	LastSaved     []entities.Excerpt
}

// NewSnapshotRepository creates a mock repository seeded with excerpts in slot.
func NewSnapshotRepository(slot string, excerpts ...entities.Excerpt) *SnapshotRepository {
	m := &SnapshotRepository{Slots: make(map[string][]entities.Excerpt)}
	if len(excerpts) > 0 {
		m.Slots[slot] = excerpts
	}
	return m
}

// LoadSnapshot returns the collection stored in slot.
func (m *SnapshotRepository) LoadSnapshot(_ context.Context, slot string) ([]entities.Excerpt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return slices.Clone(m.Slots[slot]), nil
}

// SaveSnapshot replaces the collection stored in slot.
func (m *SnapshotRepository) SaveSnapshot(_ context.Context, slot string, excerpts []entities.Excerpt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCallCount++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if m.Slots == nil {
		m.Slots = make(map[string][]entities.Excerpt)
	}
	m.Slots[slot] = slices.Clone(excerpts)
	m.LastSaved = slices.Clone(excerpts)
	return nil
}

// ListSlots returns the names of all written slots, sorted.
func (m *SnapshotRepository) ListSlots(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	slots := make([]string, 0, len(m.Slots))
	for name := range m.Slots {
		slots = append(slots, name)
	}
	slices.Sort(slots)
	return slots, nil
}

// DeleteSlot removes slot.
func (m *SnapshotRepository) DeleteSlot(_ context.Context, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Slots, slot)
	delete(m.LastDates, slot)
	return nil
}

// LastDate returns the date recorded for slot.
func (m *SnapshotRepository) LastDate(_ context.Context, slot string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LastDateErr != nil {
		return "", m.LastDateErr
	}
	return m.LastDates[slot], nil
}

// SaveLastDate records date for slot.
func (m *SnapshotRepository) SaveLastDate(_ context.Context, slot, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LastDateErr != nil {
		return m.LastDateErr
	}
	if m.LastDates == nil {
		m.LastDates = make(map[string]string)
	}
	m.LastDates[slot] = date
	return nil
}
