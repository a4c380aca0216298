package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/quill/internal/domain/entities"
	"github.com/ersonp/quill/internal/domain/mocks"
)

func TestLogHandler_Recent(t *testing.T) {
	store, _, audit := newTestStore(t, seedExcerpts()...)
	excerpts := NewExcerptHandler(store, audit)
	ctx := context.Background()

	_, err := excerpts.Delete(ctx, "aa22")
	require.NoError(t, err)
	_, err = excerpts.Edit(ctx, "aa11", ExcerptPatch{Annotation: ptr("x")})
	require.NoError(t, err)

	handler := NewLogHandler(audit, testSlot)

	entries, err := handler.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entities.ActionUpdate, entries[0].Action)
	assert.Equal(t, "aa11", entries[0].ExcerptID)

	entries, err = handler.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLogHandler_Recent_Error(t *testing.T) {
	handler := NewLogHandler(&mocks.AuditLog{Err: errors.New("db closed")}, testSlot)

	_, err := handler.Recent(context.Background(), 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading audit log")
}
