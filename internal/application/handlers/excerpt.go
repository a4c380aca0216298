package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ersonp/quill/internal/domain/entities"
	"github.com/ersonp/quill/internal/domain/ports"
	"github.com/ersonp/quill/internal/domain/services"
)

// ErrAmbiguousID is returned when an id prefix matches more than one excerpt.
var ErrAmbiguousID = errors.New("ambiguous excerpt id")

// ExcerptHandler handles adding, editing, and removing excerpts.
type ExcerptHandler struct {
	store *services.ExcerptStore
	audit ports.AuditLog
}

// NewExcerptHandler creates a new excerpt handler. audit may be nil.
func NewExcerptHandler(store *services.ExcerptStore, audit ports.AuditLog) *ExcerptHandler {
	return &ExcerptHandler{
		store: store,
		audit: audit,
	}
}

// ExcerptPatch holds the fields to change on an excerpt. Nil fields are kept.
type ExcerptPatch struct {
	Date       *string
	Content    *string
	Annotation *string
	Author     *string
	WorkTitle  *string
	Tags       *[]string // replaces all tags
	AddTags    []string
	RemoveTags []string
}

// IsEmpty reports whether the patch changes nothing.
func (p ExcerptPatch) IsEmpty() bool {
	return p.Date == nil && p.Content == nil && p.Annotation == nil &&
		p.Author == nil && p.WorkTitle == nil && p.Tags == nil &&
		len(p.AddTags) == 0 && len(p.RemoveTags) == 0
}

// apply returns e's draft with the patch applied.
func (p ExcerptPatch) apply(e entities.Excerpt) entities.ExcerptDraft {
	if p.Tags != nil {
		e.Tags = append([]string(nil), (*p.Tags)...)
	}
	for _, tag := range p.AddTags {
		e.AddTag(tag)
	}
	for _, tag := range p.RemoveTags {
		e.RemoveTag(strings.TrimSpace(tag))
	}

	draft := e.Draft()
	if p.Date != nil {
		draft.Date = *p.Date
	}
	if p.Content != nil {
		draft.Content = *p.Content
	}
	if p.Annotation != nil {
		draft.Annotation = *p.Annotation
	}
	if p.Author != nil {
		draft.Author = *p.Author
	}
	if p.WorkTitle != nil {
		draft.WorkTitle = *p.WorkTitle
	}
	return draft
}

// Add creates a new excerpt from draft. A draft without a date gets NextDate.
func (h *ExcerptHandler) Add(ctx context.Context, draft entities.ExcerptDraft) (entities.Excerpt, error) {
	if draft.Date == "" {
		draft.Date = h.NextDate(ctx)
	}
	excerpt, err := h.store.Add(ctx, draft)
	if err != nil {
		return entities.Excerpt{}, fmt.Errorf("adding excerpt: %w", err)
	}
	return excerpt, nil
}

// NextDate returns the default date for a new excerpt: the day after the
// date last used in this journal, or today.
func (h *ExcerptHandler) NextDate(ctx context.Context) string {
	return h.store.NextDate(ctx)
}

// Edit applies patch to the excerpt identified by idOrPrefix.
func (h *ExcerptHandler) Edit(ctx context.Context, idOrPrefix string, patch ExcerptPatch) (entities.Excerpt, error) {
	current, err := h.Resolve(idOrPrefix)
	if err != nil {
		return entities.Excerpt{}, err
	}

	updated, err := h.store.Update(ctx, current.ID, patch.apply(current))
	if err != nil {
		return entities.Excerpt{}, fmt.Errorf("updating excerpt: %w", err)
	}
	return updated, nil
}

// Delete removes the excerpt identified by idOrPrefix and returns it.
func (h *ExcerptHandler) Delete(ctx context.Context, idOrPrefix string) (entities.Excerpt, error) {
	current, err := h.Resolve(idOrPrefix)
	if err != nil {
		return entities.Excerpt{}, err
	}

	if err := h.store.Delete(ctx, current.ID); err != nil {
		return entities.Excerpt{}, fmt.Errorf("deleting excerpt: %w", err)
	}
	return current, nil
}

// ShowResult contains an excerpt and its change history.
type ShowResult struct {
	Excerpt entities.Excerpt
	History []entities.AuditEntry
}

// Show returns the excerpt identified by idOrPrefix with its audit history.
func (h *ExcerptHandler) Show(ctx context.Context, idOrPrefix string) (*ShowResult, error) {
	excerpt, err := h.Resolve(idOrPrefix)
	if err != nil {
		return nil, err
	}

	result := &ShowResult{Excerpt: excerpt}
	if h.audit != nil {
		history, err := h.audit.FindAuditLogByExcerpt(ctx, excerpt.ID)
		if err != nil {
			return nil, fmt.Errorf("reading history: %w", err)
		}
		result.History = history
	}
	return result, nil
}

// Resolve finds an excerpt by full id or by a unique id prefix.
func (h *ExcerptHandler) Resolve(idOrPrefix string) (entities.Excerpt, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return entities.Excerpt{}, fmt.Errorf("%w: empty id", services.ErrExcerptNotFound)
	}

	if excerpt, err := h.store.Find(idOrPrefix); err == nil {
		return excerpt, nil
	}

	var matches []entities.Excerpt
	for _, e := range h.store.GetAll() {
		if strings.HasPrefix(e.ID, idOrPrefix) {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return entities.Excerpt{}, fmt.Errorf("%w: %s", services.ErrExcerptNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return entities.Excerpt{}, fmt.Errorf("%w: %q matches %d excerpts", ErrAmbiguousID, idOrPrefix, len(matches))
	}
}
