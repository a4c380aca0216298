// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ersonp/quill/internal/domain/ports"
	"github.com/ersonp/quill/internal/infrastructure/config"
)

// ErrAlreadyInitialized is returned when init runs in a directory that
// already holds a quill config.
var ErrAlreadyInitialized = errors.New("quill already initialized")

// OpenSchemaFunc opens the storage backend at path.
type OpenSchemaFunc func(path string) (ports.SchemaManager, error)

// InitHandler handles journal initialization.
type InitHandler struct {
	open OpenSchemaFunc
}

// NewInitHandler creates a new init handler.
func NewInitHandler(open OpenSchemaFunc) *InitHandler {
	return &InitHandler{
		open: open,
	}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath   string
	DatabasePath string
	Slot         string
}

// Handle writes the default config under basePath and creates the database schema.
func (h *InitHandler) Handle(ctx context.Context, basePath string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("%w in %s", ErrAlreadyInitialized, basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dbPath := cfg.DatabasePath(basePath)
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	schema, err := h.open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer schema.Close()

	if err := schema.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &InitResult{
		ConfigPath:   config.ConfigFilePath(basePath),
		DatabasePath: dbPath,
		Slot:         cfg.Storage.Slot,
	}, nil
}
