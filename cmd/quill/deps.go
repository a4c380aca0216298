package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/ersonp/quill/internal/application/handlers"
	"github.com/ersonp/quill/internal/domain/services"
	"github.com/ersonp/quill/internal/infrastructure/config"
	"github.com/ersonp/quill/internal/infrastructure/logger"
	"github.com/ersonp/quill/internal/infrastructure/storage/sqlite"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config         *config.Config
	Journals       *config.JournalsConfig
	Slot           string
	ExcerptHandler *handlers.ExcerptHandler
	QueryHandler   *handlers.QueryHandler
	ImportHandler  *handlers.ImportHandler
	ExportHandler  *handlers.ExportHandler
	LogHandler     *handlers.LogHandler
}

// storageDeps holds the configuration and open repository without a loaded journal.
type storageDeps struct {
	basePath string
	cfg      *config.Config
	journals *config.JournalsConfig
	logger   zerolog.Logger
	repo     *sqlite.Repository
}

// withDeps loads config, opens storage and loads the selected journal,
// then calls the provided function. It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	return withStorage(ctx, func(s *storageDeps) error {
		slot, err := s.journals.ResolveSlot(globalJournal, s.cfg.Storage.Slot)
		if err != nil {
			return err
		}

		store := services.NewExcerptStore(s.repo, s.repo, slot, s.logger)
		if err := store.Load(ctx); err != nil {
			return err
		}

		deps := &Deps{
			Config:         s.cfg,
			Journals:       s.journals,
			Slot:           store.Slot(),
			ExcerptHandler: handlers.NewExcerptHandler(store, s.repo),
			QueryHandler:   handlers.NewQueryHandler(store),
			ImportHandler:  handlers.NewImportHandler(services.NewImportService(store), store),
			ExportHandler:  handlers.NewExportHandler(store),
			LogHandler:     handlers.NewLogHandler(s.repo, store.Slot()),
		}

		return fn(deps)
	})
}

// withStorage loads config and opens the SQLite database.
// Used directly by commands that manage slots rather than excerpts.
func withStorage(ctx context.Context, fn func(*storageDeps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	journals, err := config.LoadJournals(cwd)
	if err != nil {
		return fmt.Errorf("loading journals: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}

	repo, err := sqlite.NewRepository(cfg.DatabasePath(cwd), log)
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer repo.Close()

	// Ensure schema exists
	if err := repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	return fn(&storageDeps{
		basePath: cwd,
		cfg:      cfg,
		journals: journals,
		logger:   log,
		repo:     repo,
	})
}

// newLogger builds the diagnostic logger on stderr; --verbose forces debug.
func newLogger(cfg config.LoggingConfig) (zerolog.Logger, error) {
	if globalVerbose {
		cfg.Level = "debug"
	}
	log, err := logger.New(cfg, os.Stderr)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("configuring logger: %w", err)
	}
	return log, nil
}
