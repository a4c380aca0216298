package services

import (
	"context"
	"fmt"

	"github.com/ersonp/quill/internal/domain/entities"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun bool // Report what would be imported without saving
}

// ImportResult contains the result of an import or restore operation.
type ImportResult struct {
	Imported int
	Skipped  int
	Replaced int // Records dropped by a restore
}

// ImportService merges and restores already-validated excerpt collections.
type ImportService struct {
	store *ExcerptStore
}

// NewImportService creates a new import service.
func NewImportService(store *ExcerptStore) *ImportService {
	return &ImportService{
		store: store,
	}
}

// Import merges excerpts into the journal by id. Incoming records whose id is
// already stored are skipped, never overwritten; the rest are prepended.
func (s *ImportService) Import(ctx context.Context, excerpts []entities.Excerpt, opts ImportOptions) (*ImportResult, error) {
	if opts.DryRun {
		fresh := NewExcerpts(s.store.GetAll(), excerpts)
		return &ImportResult{
			Imported: len(fresh),
			Skipped:  len(excerpts) - len(fresh),
		}, nil
	}

	imported, skipped, err := s.store.Merge(ctx, excerpts)
	if err != nil {
		return nil, fmt.Errorf("merging excerpts: %w", err)
	}

	return &ImportResult{
		Imported: imported,
		Skipped:  skipped,
	}, nil
}

// Restore replaces the whole journal with excerpts.
func (s *ImportService) Restore(ctx context.Context, excerpts []entities.Excerpt) (*ImportResult, error) {
	previous := s.store.Count()

	if err := s.store.ReplaceAll(ctx, excerpts); err != nil {
		return nil, fmt.Errorf("replacing journal: %w", err)
	}

	return &ImportResult{
		Imported: len(excerpts),
		Replaced: previous,
	}, nil
}
