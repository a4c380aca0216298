// Package exporters writes excerpt collections to export and backup files.
package exporters

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/ersonp/quill/internal/domain/entities"
)

// Supported export formats.
const (
	FormatJSON     = "json"
	FormatTXT      = "txt"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
)

// Formats lists the export formats in display order.
var Formats = []string{FormatJSON, FormatTXT, FormatCSV, FormatMarkdown}

// File name kinds used by DefaultFileName.
const (
	KindExport = "export"
	KindBackup = "backup"
)

// timestampLayout matches the millisecond ISO-8601 form used by earlier backups.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// WriteFunc writes a collection in one export format.
type WriteFunc func(w io.Writer, excerpts []entities.Excerpt) error

// ForFormat returns the writer for the given format, or nil if unknown.
func ForFormat(format string) WriteFunc {
	switch strings.ToLower(format) {
	case FormatJSON:
		return WriteJSON
	case FormatTXT:
		return WriteTXT
	case FormatCSV:
		return WriteCSV
	case FormatMarkdown, "md":
		return WriteMarkdown
	default:
		return nil
	}
}

// FormatForFile guesses the export format from a file extension.
func FormatForFile(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON
	case ".txt":
		return FormatTXT
	case ".csv":
		return FormatCSV
	case ".md":
		return FormatMarkdown
	default:
		return ""
	}
}

// Extension returns the file extension (without dot) for a format.
func Extension(format string) string {
	if format == FormatMarkdown {
		return "md"
	}
	return format
}

// DefaultFileName returns the dated download name for an export or backup.
func DefaultFileName(kind, format string, now time.Time) string {
	date := now.UTC().Format(entities.DateLayout)
	if kind == KindBackup {
		return fmt.Sprintf("摘抄备份_%s.json", date)
	}
	return fmt.Sprintf("摘抄记录_%s.%s", date, Extension(format))
}

// WriteJSON writes the collection as a pretty-printed JSON array.
func WriteJSON(w io.Writer, excerpts []entities.Excerpt) error {
	if excerpts == nil {
		excerpts = []entities.Excerpt{}
	}
	return encode(w, excerpts)
}

// WriteBackup writes a versioned snapshot of the collection taken at now.
func WriteBackup(w io.Writer, excerpts []entities.Excerpt, now time.Time) error {
	if excerpts == nil {
		excerpts = []entities.Excerpt{}
	}
	return encode(w, entities.Backup{
		Version:   entities.BackupVersion,
		Timestamp: now.UTC().Format(timestampLayout),
		Excerpts:  excerpts,
	})
}

func encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}

// WriteTXT writes one labelled block per excerpt.
func WriteTXT(w io.Writer, excerpts []entities.Excerpt) error {
	blocks := make([]string, 0, len(excerpts))
	for _, e := range excerpts {
		var b strings.Builder
		fmt.Fprintf(&b, "日期：%s\n", e.Date)
		fmt.Fprintf(&b, "作者：%s\n", e.Author)
		fmt.Fprintf(&b, "作品：%s\n", e.WorkTitle)
		fmt.Fprintf(&b, "标签：%s\n", strings.Join(e.Tags, ", "))
		fmt.Fprintf(&b, "摘抄：\n%s\n", e.Content)
		fmt.Fprintf(&b, "批注：\n%s\n", e.Annotation)
		b.WriteString("---\n")
		blocks = append(blocks, b.String())
	}

	_, err := io.WriteString(w, strings.Join(blocks, "\n"))
	return err
}

var csvHeader = []string{"日期", "作者", "作品", "标签", "摘抄内容", "批注"}

// WriteCSV writes a header row and one row per excerpt. Every field is
// quoted so spreadsheet tools keep dates and tag lists as text.
func WriteCSV(w io.Writer, excerpts []entities.Excerpt) error {
	lines := make([]string, 0, len(excerpts)+1)
	lines = append(lines, strings.Join(csvHeader, ","))

	for _, e := range excerpts {
		row := []string{
			e.Date,
			e.Author,
			e.WorkTitle,
			strings.Join(e.Tags, "; "),
			e.Content,
			e.Annotation,
		}
		for i, field := range row {
			row[i] = quoteCSV(field)
		}
		lines = append(lines, strings.Join(row, ","))
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

func quoteCSV(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// WriteMarkdown writes the collection as a markdown document of block quotes.
func WriteMarkdown(w io.Writer, excerpts []entities.Excerpt) error {
	if _, err := fmt.Fprintf(w, "# 摘抄记录\n\nTotal: %d excerpts\n", len(excerpts)); err != nil {
		return err
	}

	for _, e := range excerpts {
		heading := strings.TrimSpace(strings.Join([]string{e.Author, titleMark(e.WorkTitle)}, " "))
		if heading == "" {
			heading = e.Date
		} else {
			heading = e.Date + " · " + heading
		}

		if _, err := fmt.Fprintf(w, "\n## %s\n\n%s\n", escapeMarkdown(heading), quoteMarkdown(e.Content)); err != nil {
			return err
		}
		if e.Annotation != "" {
			if _, err := fmt.Fprintf(w, "\n%s\n", e.Annotation); err != nil {
				return err
			}
		}
		if len(e.Tags) > 0 {
			tags := make([]string, len(e.Tags))
			for i, t := range e.Tags {
				tags[i] = "`" + t + "`"
			}
			if _, err := fmt.Fprintf(w, "\n%s\n", strings.Join(tags, " ")); err != nil {
				return err
			}
		}
	}

	return nil
}

func titleMark(work string) string {
	if work == "" {
		return ""
	}
	return "《" + work + "》"
}

func quoteMarkdown(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
