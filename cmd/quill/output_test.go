package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ersonp/quill/internal/domain/entities"
)

func TestShortID(t *testing.T) {
	assert.Equal(t, "3f2c9a1e", shortID("3f2c9a1e-8d7b-4c1a-9e2f-0a1b2c3d4e5f"))
	assert.Equal(t, "abc", shortID("abc"))
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{name: "short", input: "hello", n: 10, want: "hello"},
		{name: "whitespace flattened", input: "a\n\n b\tc", n: 10, want: "a b c"},
		{name: "cjk truncated by rune", input: "希望是本无所谓有", n: 4, want: "希望是本..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, preview(tt.input, tt.n))
		})
	}
}

func TestSource(t *testing.T) {
	assert.Equal(t, "鲁迅 《故乡》", source(entities.Excerpt{Author: "鲁迅", WorkTitle: "故乡"}))
	assert.Equal(t, "《故乡》", source(entities.Excerpt{WorkTitle: "故乡"}))
	assert.Equal(t, "", source(entities.Excerpt{}))
}

func TestPrintExcerptLine(t *testing.T) {
	var buf bytes.Buffer
	printExcerptLine(&buf, entities.Excerpt{
		ID:        "3f2c9a1e-8d7b",
		Date:      "2024-03-01",
		Content:   "希望是本无所谓有，无所谓无的。",
		Author:    "鲁迅",
		WorkTitle: "故乡",
		Tags:      []string{"经典"},
	})

	assert.Equal(t,
		"3f2c9a1e  2024-03-01  希望是本无所谓有，无所谓无的。\n"+
			"          鲁迅 《故乡》  #经典\n",
		buf.String())
}

func TestPrintExcerptLine_NoSource(t *testing.T) {
	var buf bytes.Buffer
	printExcerptLine(&buf, entities.Excerpt{ID: "a1", Date: "2024-03-01", Content: "x"})

	assert.Equal(t, "a1        2024-03-01  x\n", buf.String())
}

func TestFormatAuditEntry(t *testing.T) {
	at := time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local)

	line := formatAuditEntry(entities.AuditEntry{Action: entities.ActionImport, CreatedAt: at, Details: map[string]any{"imported": 2, "skipped": 1}})
	assert.Equal(t, "2024-03-01 08:00:00  import    imported=2 skipped=1", line)

	line = formatAuditEntry(entities.AuditEntry{Action: entities.ActionDelete, ExcerptID: "3f2c9a1e-8d7b", CreatedAt: at})
	assert.Equal(t, "2024-03-01 08:00:00  delete    3f2c9a1e", line)
}
