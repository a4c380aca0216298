// Package services contains the journal's domain logic: the record store and
// the pure query, sort, and statistics passes over its snapshots.
package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ersonp/quill/internal/domain/entities"
	"github.com/ersonp/quill/internal/domain/ports"
)

// Store errors.
var (
	ErrExcerptNotFound = errors.New("excerpt not found")
	ErrInvalidExcerpt  = errors.New("invalid excerpt")
	ErrNotLoaded       = errors.New("store not loaded")
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// newID returns a fresh excerpt id (can be mocked in tests).
var newID = func() string {
	return uuid.New().String()
}

// ExcerptStore owns the journal collection for one slot.
// Every mutation produces a new snapshot, persists it, and only then
// publishes it; readers always see a complete collection.
type ExcerptStore struct {
	repo   ports.SnapshotRepository
	audit  ports.AuditLog
	slot   string
	logger zerolog.Logger

	mu       sync.RWMutex
	excerpts []entities.Excerpt
	loaded   bool
}

// NewExcerptStore creates a store for slot. audit may be nil.
func NewExcerptStore(repo ports.SnapshotRepository, audit ports.AuditLog, slot string, logger zerolog.Logger) *ExcerptStore {
	return &ExcerptStore{
		repo:   repo,
		audit:  audit,
		slot:   slot,
		logger: logger.With().Str("component", "store").Str("slot", slot).Logger(),
	}
}

// Slot returns the storage slot this store is bound to.
func (s *ExcerptStore) Slot() string {
	return s.slot
}

// Load reads the collection from the repository.
func (s *ExcerptStore) Load(ctx context.Context) error {
	excerpts, err := s.repo.LoadSnapshot(ctx, s.slot)
	if err != nil {
		return fmt.Errorf("loading journal: %w", err)
	}
	for i := range excerpts {
		excerpts[i].Tags = entities.NormalizeTags(excerpts[i].Tags)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.excerpts = excerpts
	s.loaded = true

	s.logger.Debug().Int("count", len(excerpts)).Msg("journal loaded")
	return nil
}

// GetAll returns a copy of the collection in stored order (newest added first).
func (s *ExcerptStore) GetAll() []entities.Excerpt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneExcerpts(s.excerpts)
}

// Count returns the number of stored excerpts.
func (s *ExcerptStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.excerpts)
}

// Find returns the excerpt with the given id.
func (s *ExcerptStore) Find(id string) (entities.Excerpt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.excerpts, id)
	if i < 0 {
		return entities.Excerpt{}, fmt.Errorf("%w: %s", ErrExcerptNotFound, id)
	}
	return s.excerpts[i].Clone(), nil
}

// Add creates a new excerpt from draft and stores it first in the collection.
func (s *ExcerptStore) Add(ctx context.Context, draft entities.ExcerptDraft) (entities.Excerpt, error) {
	if err := draft.Validate(); err != nil {
		return entities.Excerpt{}, fmt.Errorf("%w: %w", ErrInvalidExcerpt, err)
	}

	now := timeNow().UTC()
	excerpt := entities.Excerpt{
		ID:        newID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	excerpt.Apply(draft)

	err := s.mutate(ctx, func(current []entities.Excerpt) ([]entities.Excerpt, error) {
		next := make([]entities.Excerpt, 0, len(current)+1)
		next = append(next, excerpt)
		return append(next, current...), nil
	})
	if err != nil {
		return entities.Excerpt{}, err
	}

	s.logAudit(ctx, entities.ActionAdd, excerpt.ID, nil)
	s.rememberDate(ctx, excerpt.Date)
	return excerpt.Clone(), nil
}

// Update replaces the editable fields of the excerpt with the given id.
func (s *ExcerptStore) Update(ctx context.Context, id string, draft entities.ExcerptDraft) (entities.Excerpt, error) {
	if err := draft.Validate(); err != nil {
		return entities.Excerpt{}, fmt.Errorf("%w: %w", ErrInvalidExcerpt, err)
	}

	var updated entities.Excerpt
	err := s.mutate(ctx, func(current []entities.Excerpt) ([]entities.Excerpt, error) {
		i := indexOf(current, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrExcerptNotFound, id)
		}
		next := slices.Clone(current)
		updated = next[i].Clone()
		updated.Apply(draft)
		updated.Touch(timeNow().UTC())
		next[i] = updated
		return next, nil
	})
	if err != nil {
		return entities.Excerpt{}, err
	}

	s.logAudit(ctx, entities.ActionUpdate, id, nil)
	s.rememberDate(ctx, updated.Date)
	return updated.Clone(), nil
}

// Delete removes the excerpt with the given id.
func (s *ExcerptStore) Delete(ctx context.Context, id string) error {
	err := s.mutate(ctx, func(current []entities.Excerpt) ([]entities.Excerpt, error) {
		i := indexOf(current, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrExcerptNotFound, id)
		}
		next := make([]entities.Excerpt, 0, len(current)-1)
		next = append(next, current[:i]...)
		return append(next, current[i+1:]...), nil
	})
	if err != nil {
		return err
	}

	s.logAudit(ctx, entities.ActionDelete, id, nil)
	return nil
}

// ReplaceAll swaps the entire collection for excerpts.
func (s *ExcerptStore) ReplaceAll(ctx context.Context, excerpts []entities.Excerpt) error {
	next := cloneExcerpts(excerpts)
	for i := range next {
		next[i].Tags = entities.NormalizeTags(next[i].Tags)
	}

	err := s.mutate(ctx, func(_ []entities.Excerpt) ([]entities.Excerpt, error) {
		return next, nil
	})
	if err != nil {
		return err
	}

	s.logAudit(ctx, entities.ActionRestore, "", map[string]any{"count": len(next)})
	return nil
}

// Merge prepends incoming excerpts whose id is not already stored.
// Existing records are never overwritten; colliding ids are skipped.
func (s *ExcerptStore) Merge(ctx context.Context, incoming []entities.Excerpt) (imported, skipped int, err error) {
	err = s.mutate(ctx, func(current []entities.Excerpt) ([]entities.Excerpt, error) {
		fresh := NewExcerpts(current, incoming)
		imported = len(fresh)
		skipped = len(incoming) - imported
		if imported == 0 {
			return current, nil
		}
		next := make([]entities.Excerpt, 0, len(current)+imported)
		next = append(next, fresh...)
		return append(next, current...), nil
	})
	if err != nil {
		return 0, 0, err
	}

	if imported > 0 {
		s.logAudit(ctx, entities.ActionImport, "", map[string]any{"imported": imported, "skipped": skipped})
	}
	return imported, skipped, nil
}

// NewExcerpts returns the records of incoming whose id is absent from current.
// Duplicate ids within incoming keep only their first occurrence.
func NewExcerpts(current, incoming []entities.Excerpt) []entities.Excerpt {
	ids := make(map[string]struct{}, len(current)+len(incoming))
	for i := range current {
		ids[current[i].ID] = struct{}{}
	}

	fresh := make([]entities.Excerpt, 0, len(incoming))
	for i := range incoming {
		if _, exists := ids[incoming[i].ID]; exists {
			continue
		}
		ids[incoming[i].ID] = struct{}{}
		e := incoming[i].Clone()
		e.Tags = entities.NormalizeTags(e.Tags)
		fresh = append(fresh, e)
	}
	return fresh
}

// mutate builds the next snapshot with fn, persists it, then publishes it.
// The published snapshot is unchanged when fn or persistence fails.
func (s *ExcerptStore) mutate(ctx context.Context, fn func([]entities.Excerpt) ([]entities.Excerpt, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return ErrNotLoaded
	}

	next, err := fn(s.excerpts)
	if err != nil {
		return err
	}

	if err := s.repo.SaveSnapshot(ctx, s.slot, next); err != nil {
		return fmt.Errorf("saving journal: %w", err)
	}

	s.excerpts = next
	s.logger.Debug().Int("count", len(next)).Msg("journal saved")
	return nil
}

// NextDate suggests a date for the next excerpt: the day after the date last
// written to this slot, or today when none is recorded.
func (s *ExcerptStore) NextDate(ctx context.Context) string {
	today := timeNow().Format(entities.DateLayout)

	last, err := s.repo.LastDate(ctx, s.slot)
	if err != nil {
		s.logger.Warn().Err(err).Msg("reading last excerpt date")
		return today
	}
	if last == "" {
		return today
	}
	t, err := time.Parse(entities.DateLayout, last)
	if err != nil {
		s.logger.Warn().Str("date", last).Msg("ignoring unreadable last excerpt date")
		return today
	}
	return t.AddDate(0, 0, 1).Format(entities.DateLayout)
}

func (s *ExcerptStore) rememberDate(ctx context.Context, date string) {
	if err := s.repo.SaveLastDate(ctx, s.slot, date); err != nil {
		s.logger.Warn().Err(err).Str("date", date).Msg("saving last excerpt date")
	}
}

func (s *ExcerptStore) logAudit(ctx context.Context, action, excerptID string, details map[string]any) {
	if s.audit == nil {
		return
	}
	if err := s.audit.LogAction(ctx, s.slot, action, excerptID, details); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("writing audit log")
	}
}

func indexOf(excerpts []entities.Excerpt, id string) int {
	return slices.IndexFunc(excerpts, func(e entities.Excerpt) bool {
		return e.ID == id
	})
}

func cloneExcerpts(excerpts []entities.Excerpt) []entities.Excerpt {
	out := make([]entities.Excerpt, len(excerpts))
	for i := range excerpts {
		out[i] = excerpts[i].Clone()
	}
	return out
}
