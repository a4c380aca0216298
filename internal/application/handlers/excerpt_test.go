package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/quill/internal/domain/entities"
	"github.com/ersonp/quill/internal/domain/services"
)

func TestExcerptHandler_Add(t *testing.T) {
	store, _, _ := newTestStore(t, seedExcerpts()...)
	handler := NewExcerptHandler(store, nil)

	added, err := handler.Add(context.Background(), entities.ExcerptDraft{
		Date:    "2024-05-01",
		Content: "人生得意须尽欢",
		Author:  "李白",
		Tags:    []string{"诗", " 诗 "},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, []string{"诗"}, added.Tags)
	assert.Equal(t, added.ID, store.GetAll()[0].ID)
}

func TestExcerptHandler_Add_DefaultsToDayAfterLastDate(t *testing.T) {
	ctx := context.Background()
	store, repo, _ := newTestStore(t)
	handler := NewExcerptHandler(store, nil)

	first, err := handler.Add(ctx, entities.ExcerptDraft{Date: "2024-02-28", Content: "第一天"})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-28", repo.LastDates[testSlot])

	second, err := handler.Add(ctx, entities.ExcerptDraft{Content: "第二天"})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", second.Date)
	assert.Equal(t, "2024-03-01", handler.NextDate(ctx))
	assert.NotEqual(t, first.ID, second.ID)
}

func TestExcerptHandler_Add_Invalid(t *testing.T) {
	store, repo, _ := newTestStore(t)
	handler := NewExcerptHandler(store, nil)

	_, err := handler.Add(context.Background(), entities.ExcerptDraft{Date: "2024-05-01"})

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrInvalidExcerpt)
	assert.ErrorIs(t, err, entities.ErrEmptyContent)
	assert.Equal(t, 0, repo.SaveCallCount)
}

func TestExcerptHandler_Edit(t *testing.T) {
	tests := []struct {
		name     string
		patch    ExcerptPatch
		validate func(t *testing.T, e entities.Excerpt)
	}{
		{
			name:  "change annotation only",
			patch: ExcerptPatch{Annotation: ptr("新批注")},
			validate: func(t *testing.T, e entities.Excerpt) {
				assert.Equal(t, "新批注", e.Annotation)
				assert.Equal(t, "鲁迅", e.Author)
				assert.Equal(t, []string{"经典", "希望"}, e.Tags)
			},
		},
		{
			name:  "replace tags",
			patch: ExcerptPatch{Tags: &[]string{"小说"}},
			validate: func(t *testing.T, e entities.Excerpt) {
				assert.Equal(t, []string{"小说"}, e.Tags)
			},
		},
		{
			name:  "add and remove tags",
			patch: ExcerptPatch{AddTags: []string{"故乡", "经典"}, RemoveTags: []string{"希望"}},
			validate: func(t *testing.T, e entities.Excerpt) {
				assert.Equal(t, []string{"经典", "故乡"}, e.Tags)
			},
		},
		{
			name:  "change date and work",
			patch: ExcerptPatch{Date: ptr("2020-02-02"), WorkTitle: ptr("呐喊")},
			validate: func(t *testing.T, e entities.Excerpt) {
				assert.Equal(t, "2020-02-02", e.Date)
				assert.Equal(t, "呐喊", e.WorkTitle)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _, audit := newTestStore(t, seedExcerpts()...)
			handler := NewExcerptHandler(store, audit)

			updated, err := handler.Edit(context.Background(), "aa11", tt.patch)
			require.NoError(t, err)

			assert.Equal(t, "aa11", updated.ID)
			assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
			tt.validate(t, updated)

			stored, err := store.Find("aa11")
			require.NoError(t, err)
			assert.Equal(t, updated, stored)
		})
	}
}

func TestExcerptHandler_Edit_RejectsEmptyContent(t *testing.T) {
	store, _, _ := newTestStore(t, seedExcerpts()...)
	handler := NewExcerptHandler(store, nil)

	_, err := handler.Edit(context.Background(), "aa11", ExcerptPatch{Content: ptr("  ")})

	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrEmptyContent)

	stored, err := store.Find("aa11")
	require.NoError(t, err)
	assert.Equal(t, "希望是本无所谓有，无所谓无的。", stored.Content)
}

func TestExcerptHandler_Delete(t *testing.T) {
	store, _, audit := newTestStore(t, seedExcerpts()...)
	handler := NewExcerptHandler(store, audit)

	removed, err := handler.Delete(context.Background(), "bb")

	require.NoError(t, err)
	assert.Equal(t, "bb33", removed.ID)
	assert.Equal(t, 2, store.Count())
	assert.Equal(t, []string{entities.ActionDelete}, audit.Actions())
}

func TestExcerptHandler_Resolve(t *testing.T) {
	store, _, _ := newTestStore(t, seedExcerpts()...)
	handler := NewExcerptHandler(store, nil)

	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr error
	}{
		{name: "exact id", input: "aa22", wantID: "aa22"},
		{name: "unique prefix", input: "b", wantID: "bb33"},
		{name: "ambiguous prefix", input: "aa", wantErr: ErrAmbiguousID},
		{name: "unknown", input: "zz", wantErr: services.ErrExcerptNotFound},
		{name: "empty", input: " ", wantErr: services.ErrExcerptNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := handler.Resolve(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestExcerptHandler_Show(t *testing.T) {
	store, _, audit := newTestStore(t, seedExcerpts()...)
	handler := NewExcerptHandler(store, audit)
	ctx := context.Background()

	_, err := handler.Edit(ctx, "aa22", ExcerptPatch{Annotation: ptr("once")})
	require.NoError(t, err)
	_, err = handler.Edit(ctx, "aa22", ExcerptPatch{Annotation: ptr("twice")})
	require.NoError(t, err)

	result, err := handler.Show(ctx, "aa22")
	require.NoError(t, err)
	assert.Equal(t, "twice", result.Excerpt.Annotation)
	require.Len(t, result.History, 2)
	assert.Equal(t, entities.ActionUpdate, result.History[0].Action)
}

func TestExcerptPatch_IsEmpty(t *testing.T) {
	assert.True(t, ExcerptPatch{}.IsEmpty())
	assert.False(t, ExcerptPatch{Author: ptr("")}.IsEmpty())
	assert.False(t, ExcerptPatch{AddTags: []string{"x"}}.IsEmpty())
}
