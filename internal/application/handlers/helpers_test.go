package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/quill/internal/domain/entities"
	"github.com/ersonp/quill/internal/domain/mocks"
	"github.com/ersonp/quill/internal/domain/services"
)

const testSlot = "book-excerpts"

func seedExcerpts() []entities.Excerpt {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []entities.Excerpt{
		{ID: "aa11", Date: "2024-03-01", Content: "希望是本无所谓有，无所谓无的。", Author: "鲁迅", WorkTitle: "故乡", Tags: []string{"经典", "希望"}, CreatedAt: created, UpdatedAt: created},
		{ID: "aa22", Date: "2023-06-15", Content: "Stay hungry, stay foolish.", Author: "Steve Jobs", WorkTitle: "Stanford Speech", Tags: []string{"演讲"}, CreatedAt: created, UpdatedAt: created},
		{ID: "bb33", Date: "2024-01-20", Content: "其实地上本没有路，走的人多了，也便成了路。", Annotation: "名句", Author: "鲁迅", WorkTitle: "故乡", Tags: []string{"经典"}, CreatedAt: created, UpdatedAt: created},
	}
}

func newTestStore(t *testing.T, seed ...entities.Excerpt) (*services.ExcerptStore, *mocks.SnapshotRepository, *mocks.AuditLog) {
	t.Helper()
	repo := mocks.NewSnapshotRepository(testSlot, seed...)
	audit := &mocks.AuditLog{}
	store := services.NewExcerptStore(repo, audit, testSlot, zerolog.Nop())
	require.NoError(t, store.Load(context.Background()))
	return store, repo, audit
}

func ptr[T any](v T) *T {
	return &v
}
