package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/quill/internal/domain/entities"
)

func TestListFlags_QueryOptions(t *testing.T) {
	flags := listFlags{
		query:  "希望",
		author: "鲁迅",
		work:   "故乡",
		tags:   []string{"经典", "散文"},
		from:   "2024-01-01",
		to:     "2024-12-31",
		sort:   "author",
		limit:  5,
	}

	opts, err := flags.queryOptions("date-desc")
	require.NoError(t, err)

	assert.Equal(t, entities.SearchFilters{
		Query:     "希望",
		Author:    "鲁迅",
		WorkTitle: "故乡",
		Tags:      []string{"经典", "散文"},
		DateRange: entities.DateRange{Start: "2024-01-01", End: "2024-12-31"},
	}, opts.Filters)
	assert.Equal(t, entities.SortAuthor, opts.Sort)
	assert.Equal(t, 5, opts.Limit)
}

func TestListFlags_QueryOptions_Defaults(t *testing.T) {
	opts, err := listFlags{}.queryOptions("date-asc")
	require.NoError(t, err)
	assert.Equal(t, entities.SortDateAsc, opts.Sort)
	assert.True(t, opts.Filters.IsEmpty())

	opts, err = listFlags{}.queryOptions("")
	require.NoError(t, err)
	assert.Equal(t, entities.SortDateDesc, opts.Sort)
}

func TestListFlags_QueryOptions_Errors(t *testing.T) {
	tests := []struct {
		name    string
		flags   listFlags
		wantMsg string
	}{
		{name: "bad sort", flags: listFlags{sort: "title"}, wantMsg: "invalid sort option"},
		{name: "bad from", flags: listFlags{from: "2024/01/01"}, wantMsg: "invalid --from"},
		{name: "bad to", flags: listFlags{to: "yesterday"}, wantMsg: "invalid --to"},
		{name: "negative limit", flags: listFlags{limit: -1}, wantMsg: "invalid --limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.flags.queryOptions("date-desc")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
