// Package entities contains core domain data structures.
package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for Excerpt.Date and date filters.
// Lexicographic order on this layout matches chronological order.
const DateLayout = "2006-01-02"

// Excerpt is a single journal entry: a quoted passage plus its metadata.
// JSON field names match the journal's interchange files.
type Excerpt struct {
	ID         string    `json:"id"`
	Date       string    `json:"date"`
	Content    string    `json:"content"`
	Annotation string    `json:"annotation"`
	Author     string    `json:"author"`
	WorkTitle  string    `json:"workTitle"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UnmarshalJSON decodes an excerpt, reading missing, null or empty timestamps
// as the zero time. Files written by older journals carry such records.
func (e *Excerpt) UnmarshalJSON(data []byte) error {
	type plain Excerpt
	aux := struct {
		*plain
		CreatedAt *string `json:"createdAt"`
		UpdatedAt *string `json:"updatedAt"`
	}{plain: (*plain)(e)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if e.CreatedAt, err = parseTimestamp("createdAt", aux.CreatedAt); err != nil {
		return err
	}
	if e.UpdatedAt, err = parseTimestamp("updatedAt", aux.UpdatedAt); err != nil {
		return err
	}
	return nil
}

func parseTimestamp(field string, s *string) (time.Time, error) {
	if s == nil || *s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, *s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return t, nil
}

// ExcerptDraft holds the user-editable fields of an excerpt.
type ExcerptDraft struct {
	Date       string
	Content    string
	Annotation string
	Author     string
	WorkTitle  string
	Tags       []string
}

// Draft errors.
var (
	ErrEmptyContent = errors.New("content is required")
	ErrEmptyDate    = errors.New("date is required")
	ErrInvalidDate  = errors.New("date must be formatted as YYYY-MM-DD")
)

// Validate checks that the draft can be persisted.
func (d ExcerptDraft) Validate() error {
	if strings.TrimSpace(d.Content) == "" {
		return ErrEmptyContent
	}
	if strings.TrimSpace(d.Date) == "" {
		return ErrEmptyDate
	}
	if _, err := time.Parse(DateLayout, d.Date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// Draft returns the editable fields of the excerpt.
func (e *Excerpt) Draft() ExcerptDraft {
	return ExcerptDraft{
		Date:       e.Date,
		Content:    e.Content,
		Annotation: e.Annotation,
		Author:     e.Author,
		WorkTitle:  e.WorkTitle,
		Tags:       append([]string(nil), e.Tags...),
	}
}

// Apply copies the draft's fields onto the excerpt. ID and CreatedAt are untouched.
func (e *Excerpt) Apply(d ExcerptDraft) {
	e.Date = d.Date
	e.Content = d.Content
	e.Annotation = d.Annotation
	e.Author = d.Author
	e.WorkTitle = d.WorkTitle
	e.Tags = NormalizeTags(d.Tags)
}

// Touch refreshes UpdatedAt, never moving it before CreatedAt.
func (e *Excerpt) Touch(now time.Time) {
	if now.Before(e.CreatedAt) {
		now = e.CreatedAt
	}
	e.UpdatedAt = now
}

// AddTag appends tag unless it is blank or already present.
func (e *Excerpt) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || e.HasTag(tag) {
		return false
	}
	e.Tags = append(e.Tags, tag)
	return true
}

// RemoveTag removes tag if present.
func (e *Excerpt) RemoveTag(tag string) bool {
	for i, t := range e.Tags {
		if t == tag {
			e.Tags = append(e.Tags[:i:i], e.Tags[i+1:]...)
			return true
		}
	}
	return false
}

// HasTag reports whether the excerpt carries tag (exact match).
func (e *Excerpt) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the excerpt.
func (e Excerpt) Clone() Excerpt {
	e.Tags = append([]string{}, e.Tags...)
	return e
}

// NormalizeTags trims each tag, drops blanks and duplicates, and keeps first-seen order.
// The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := NewTagSet()
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen.Has(t) {
			continue
		}
		seen.Add(t)
		out = append(out, t)
	}
	return out
}
