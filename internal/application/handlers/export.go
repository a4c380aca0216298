package handlers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ersonp/quill/internal/domain/services"
	"github.com/ersonp/quill/internal/infrastructure/exporters"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// ExportHandler handles exporting and backing up the journal.
type ExportHandler struct {
	store *services.ExcerptStore
}

// NewExportHandler creates a new export handler.
func NewExportHandler(store *services.ExcerptStore) *ExportHandler {
	return &ExportHandler{
		store: store,
	}
}

// ExportResult describes a written export or backup.
type ExportResult struct {
	Path   string // empty when written to a stream
	Format string
	Count  int
}

// Export writes the whole journal to w in format.
func (h *ExportHandler) Export(w io.Writer, format string) (*ExportResult, error) {
	write := exporters.ForFormat(format)
	if write == nil {
		return nil, fmt.Errorf("invalid format %q, valid formats: %v", format, exporters.Formats)
	}

	excerpts := h.store.GetAll()
	if err := write(w, excerpts); err != nil {
		return nil, fmt.Errorf("formatting output: %w", err)
	}

	return &ExportResult{Format: format, Count: len(excerpts)}, nil
}

// Backup writes a versioned snapshot of the journal to w.
func (h *ExportHandler) Backup(w io.Writer) (*ExportResult, error) {
	excerpts := h.store.GetAll()
	if err := exporters.WriteBackup(w, excerpts, timeNow()); err != nil {
		return nil, fmt.Errorf("writing backup: %w", err)
	}
	return &ExportResult{Format: exporters.FormatJSON, Count: len(excerpts)}, nil
}

// ExportFile exports to output. An empty format is guessed from output's
// extension, falling back to json. An empty output or an existing directory
// receives the dated default file name.
func (h *ExportHandler) ExportFile(output, format string) (*ExportResult, error) {
	if format == "" {
		format = exporters.FormatForFile(output)
	}
	if format == "" {
		format = exporters.FormatJSON
	}
	if exporters.ForFormat(format) == nil {
		return nil, fmt.Errorf("invalid format %q, valid formats: %v", format, exporters.Formats)
	}

	path := resolveOutput(output, exporters.DefaultFileName(exporters.KindExport, format, timeNow()))
	result, err := writeFile(path, func(w io.Writer) (*ExportResult, error) {
		return h.Export(w, format)
	})
	if err != nil {
		return nil, err
	}
	result.Path = path
	return result, nil
}

// BackupFile writes a backup to output, using the dated default name for
// an empty output or a directory.
func (h *ExportHandler) BackupFile(output string) (*ExportResult, error) {
	path := resolveOutput(output, exporters.DefaultFileName(exporters.KindBackup, exporters.FormatJSON, timeNow()))
	result, err := writeFile(path, h.Backup)
	if err != nil {
		return nil, err
	}
	result.Path = path
	return result, nil
}

func resolveOutput(output, defaultName string) string {
	if output == "" {
		return defaultName
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, defaultName)
	}
	return output
}

func writeFile(path string, write func(io.Writer) (*ExportResult, error)) (result *ExportResult, err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing file: %w", cerr)
		}
	}()

	return write(f)
}
