package sqlite_test

import (
	"context"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/quill/internal/domain/entities"
	"github.com/ersonp/quill/internal/domain/services"
	"github.com/ersonp/quill/internal/infrastructure/storage/sqlite"
)

func openFileRepo(t *testing.T, path string) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.NewRepository(path, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func TestStoreIntegration_PersistsAcrossReopen(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "quill.db")

	repo := openFileRepo(t, dbPath)
	store := services.NewExcerptStore(repo, repo, "book-excerpts", zerolog.Nop())
	require.NoError(t, store.Load(ctx))

	added, err := store.Add(ctx, entities.ExcerptDraft{
		Date:      "2024-03-01",
		Content:   "所有的大人都曾经是小孩",
		Author:    "圣埃克苏佩里",
		WorkTitle: "小王子",
		Tags:      []string{"童年"},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened := openFileRepo(t, dbPath)
	again := services.NewExcerptStore(reopened, reopened, "book-excerpts", zerolog.Nop())
	require.NoError(t, again.Load(ctx))

	all := again.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, added.ID, all[0].ID)
	assert.Equal(t, "小王子", all[0].WorkTitle)
	assert.Equal(t, []string{"童年"}, all[0].Tags)
	assert.Equal(t, "2024-03-02", again.NextDate(ctx))

	entries, err := reopened.FindAuditLogByExcerpt(ctx, added.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entities.ActionAdd, entries[0].Action)
}

func TestStoreIntegration_SlotsAreIsolated(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	repo := openFileRepo(t, filepath.Join(t.TempDir(), "slots.db"))

	poetry := services.NewExcerptStore(repo, repo, "poetry", zerolog.Nop())
	prose := services.NewExcerptStore(repo, repo, "prose", zerolog.Nop())
	require.NoError(t, poetry.Load(ctx))
	require.NoError(t, prose.Load(ctx))

	_, err := poetry.Add(ctx, entities.ExcerptDraft{Date: "2024-01-01", Content: "床前明月光"})
	require.NoError(t, err)

	assert.Equal(t, 1, poetry.Count())
	assert.Equal(t, 0, prose.Count())

	slots, err := repo.ListSlots(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"poetry"}, slots)
}

func TestStoreIntegration_ConcurrentReads(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	repo := openFileRepo(t, filepath.Join(t.TempDir(), "concurrent.db"))
	store := services.NewExcerptStore(repo, repo, "book-excerpts", zerolog.Nop())
	require.NoError(t, store.Load(ctx))

	for i := 0; i < 50; i++ {
		_, err := store.Add(ctx, entities.ExcerptDraft{
			Date:    "2024-02-01",
			Content: "excerpt " + strconv.Itoa(i),
		})
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			excerpts, err := repo.LoadSnapshot(ctx, "book-excerpts")
			if err != nil {
				errs <- err
				return
			}
			if len(excerpts) != 50 {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 50, store.Count())
}
