package parsers

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImport_ValidInput(t *testing.T) {
	input := `[
		{
			"id": "1",
			"date": "2024-03-01",
			"content": "希望是本无所谓有，无所谓无的。",
			"annotation": "结尾",
			"author": "鲁迅",
			"workTitle": "故乡",
			"tags": ["经典", " 希望 ", "经典"],
			"createdAt": "2024-03-01T08:30:00Z",
			"updatedAt": "2024-03-02T09:00:00Z"
		},
		{"id": "2", "content": "Stay hungry.", "author": "Steve Jobs", "workTitle": "Stanford Speech"}
	]`

	result, err := ParseImport(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result, 2)

	first := result[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "2024-03-01", first.Date)
	assert.Equal(t, "鲁迅", first.Author)
	assert.Equal(t, "故乡", first.WorkTitle)
	assert.Equal(t, "结尾", first.Annotation)
	assert.Equal(t, []string{"经典", "希望"}, first.Tags)
	assert.Equal(t, 8, first.CreatedAt.Hour())
	assert.Equal(t, 2, first.UpdatedAt.Day())

	assert.Equal(t, []string{}, result[1].Tags)
}

func TestParseImport_BlankTimestamps(t *testing.T) {
	input := `[
		{"id": "1", "content": "x", "author": "a", "workTitle": "w", "createdAt": "", "updatedAt": ""},
		{"id": "2", "content": "y", "author": "a", "workTitle": "w", "createdAt": null},
		{"id": "3", "content": "z", "author": "a", "workTitle": "w"}
	]`

	result, err := ParseImport(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result, 3)
	for _, e := range result {
		assert.True(t, e.CreatedAt.IsZero(), e.ID)
		assert.True(t, e.UpdatedAt.IsZero(), e.ID)
	}

	restored, err := ParseRestore(strings.NewReader(`{"excerpts": ` + input + `}`))
	require.NoError(t, err)
	assert.Len(t, restored, 3)
}

func TestParseImport_EmptyArray(t *testing.T) {
	result, err := ParseImport(strings.NewReader("[]"))
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestParseImport_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantMsg string
	}{
		{
			name:    "not json",
			input:   "not json",
			wantErr: ErrMalformed,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: ErrMalformed,
		},
		{
			name:    "missing author and work",
			input:   `[{"id":"1","content":"x"}]`,
			wantErr: ErrInvalidFormat,
			wantMsg: "excerpt 1 is missing author, workTitle",
		},
		{
			name:    "one bad record rejects all",
			input:   `[{"id":"1","content":"x","author":"a","workTitle":"w"},{"id":"","content":"y","author":"a","workTitle":"w"}]`,
			wantErr: ErrInvalidFormat,
			wantMsg: "excerpt 2 is missing id",
		},
		{
			name:    "backup object rejected",
			input:   `{"version":"1.0","timestamp":"2024-01-01T00:00:00Z","excerpts":[]}`,
			wantErr: ErrInvalidFormat,
		},
		{
			name:    "element not an object",
			input:   `[1, 2]`,
			wantErr: ErrInvalidFormat,
		},
		{
			name:    "wrong field type",
			input:   `[{"id":"1","content":"x","author":"a","workTitle":"w","tags":"classic"}]`,
			wantErr: ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseImport(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Nil(t, result)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseRestore(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantIDs []string
	}{
		{
			name:    "wrapped backup",
			input:   `{"version":"1.0","timestamp":"2024-01-01T00:00:00Z","excerpts":[{"id":"a","content":"x"},{"id":"b","content":"y"}]}`,
			wantIDs: []string{"a", "b"},
		},
		{
			name:    "bare array",
			input:   `[{"id":"a","content":"x"}]`,
			wantIDs: []string{"a"},
		},
		{
			name:    "records are not validated",
			input:   `[{"content":"no id"}]`,
			wantIDs: []string{""},
		},
		{
			name:    "empty backup",
			input:   `{"excerpts":[]}`,
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseRestore(strings.NewReader(tt.input))
			require.NoError(t, err)
			ids := make([]string, 0, len(result))
			for _, e := range result {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestParseRestore_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "not json", input: "{oops", wantErr: ErrMalformed},
		{name: "object without excerpts", input: `{"version":"1.0"}`, wantErr: ErrInvalidFormat},
		{name: "excerpts not an array", input: `{"excerpts":{"id":"a"}}`, wantErr: ErrInvalidFormat},
		{name: "scalar", input: `"hello"`, wantErr: ErrInvalidFormat},
		{name: "null", input: `null`, wantErr: ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRestore(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
