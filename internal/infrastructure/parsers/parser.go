// Package parsers reads excerpt collections from import and backup files.
package parsers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ersonp/quill/internal/domain/entities"
)

var (
	// ErrMalformed is returned when the input is not valid JSON.
	ErrMalformed = errors.New("malformed JSON")
	// ErrInvalidFormat is returned when the input is JSON of the wrong shape.
	ErrInvalidFormat = errors.New("invalid file format")
)

// ParseImport reads a bare JSON array of excerpts. Every element must carry
// a non-empty id, content, author and workTitle; a single bad element
// rejects the whole file.
func ParseImport(r io.Reader) ([]entities.Excerpt, error) {
	data, err := readJSON(r)
	if err != nil {
		return nil, err
	}

	if firstByte(data) != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array of excerpts", ErrInvalidFormat)
	}

	excerpts, err := decodeArray(data)
	if err != nil {
		return nil, err
	}

	for i, e := range excerpts {
		if missing := missingFields(e); len(missing) > 0 {
			return nil, fmt.Errorf("%w: excerpt %d is missing %s", ErrInvalidFormat, i+1, strings.Join(missing, ", "))
		}
	}

	return excerpts, nil
}

// ParseRestore reads a backup file. Both the wrapped backup object and a
// bare array are accepted. Records are not validated.
func ParseRestore(r io.Reader) ([]entities.Excerpt, error) {
	data, err := readJSON(r)
	if err != nil {
		return nil, err
	}

	switch firstByte(data) {
	case '{':
		var wrapper struct {
			Excerpts json.RawMessage `json:"excerpts"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		if firstByte(wrapper.Excerpts) != '[' {
			return nil, fmt.Errorf("%w: backup has no excerpts array", ErrInvalidFormat)
		}
		return decodeArray(wrapper.Excerpts)
	case '[':
		return decodeArray(data)
	default:
		return nil, fmt.Errorf("%w: expected a backup object or an array of excerpts", ErrInvalidFormat)
	}
}

func readJSON(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if !json.Valid(data) {
		return nil, ErrMalformed
	}
	return data, nil
}

func decodeArray(data []byte) ([]entities.Excerpt, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	excerpts := make([]entities.Excerpt, 0, len(raw))
	for i, item := range raw {
		if firstByte(item) != '{' {
			return nil, fmt.Errorf("%w: excerpt %d is not an object", ErrInvalidFormat, i+1)
		}
		var e entities.Excerpt
		if err := json.Unmarshal(item, &e); err != nil {
			return nil, fmt.Errorf("%w: excerpt %d: %v", ErrInvalidFormat, i+1, err)
		}
		e.Tags = entities.NormalizeTags(e.Tags)
		excerpts = append(excerpts, e)
	}
	return excerpts, nil
}

func missingFields(e entities.Excerpt) []string {
	var missing []string
	if e.ID == "" {
		missing = append(missing, "id")
	}
	if e.Content == "" {
		missing = append(missing, "content")
	}
	if e.Author == "" {
		missing = append(missing, "author")
	}
	if e.WorkTitle == "" {
		missing = append(missing, "workTitle")
	}
	return missing
}

// firstByte returns the first non-space byte of a JSON document.
func firstByte(data []byte) byte {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
