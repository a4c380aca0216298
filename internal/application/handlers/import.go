package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ersonp/quill/internal/domain/entities"
	"github.com/ersonp/quill/internal/domain/services"
	"github.com/ersonp/quill/internal/infrastructure/parsers"
)

var (
	// ErrRead is returned when an import or backup file cannot be read.
	ErrRead = errors.New("reading file")
	// ErrRestoreCancelled is returned when a restore is not confirmed.
	ErrRestoreCancelled = errors.New("restore cancelled")
)

// ConfirmRestoreFunc is asked before a restore replaces current excerpts
// with incoming ones. Returning false cancels the restore.
type ConfirmRestoreFunc func(current, incoming int) bool

// ImportHandler handles importing and restoring excerpts from files.
type ImportHandler struct {
	service *services.ImportService
	store   *services.ExcerptStore
}

// NewImportHandler creates a new import handler.
func NewImportHandler(service *services.ImportService, store *services.ExcerptStore) *ImportHandler {
	return &ImportHandler{
		service: service,
		store:   store,
	}
}

// Import merges the excerpts of a JSON export file into the journal.
// The file is validated as a whole; nothing is imported if any record is invalid.
func (h *ImportHandler) Import(ctx context.Context, filePath string, opts services.ImportOptions) (*services.ImportResult, error) {
	excerpts, err := readFile(filePath, parsers.ParseImport)
	if err != nil {
		return nil, err
	}

	return h.service.Import(ctx, excerpts, opts)
}

// Restore replaces the journal with the contents of a backup file.
// confirm may be nil to skip confirmation.
func (h *ImportHandler) Restore(ctx context.Context, filePath string, confirm ConfirmRestoreFunc) (*services.ImportResult, error) {
	excerpts, err := readFile(filePath, parsers.ParseRestore)
	if err != nil {
		return nil, err
	}

	if confirm != nil && !confirm(h.store.Count(), len(excerpts)) {
		return nil, ErrRestoreCancelled
	}

	return h.service.Restore(ctx, excerpts)
}

func readFile(filePath string, parse func(io.Reader) ([]entities.Excerpt, error)) ([]entities.Excerpt, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer file.Close()

	excerpts, err := parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filePath, err)
	}
	return excerpts, nil
}
