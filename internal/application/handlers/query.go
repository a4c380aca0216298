package handlers

import (
	"github.com/ersonp/quill/internal/domain/entities"
	"github.com/ersonp/quill/internal/domain/services"
)

// QueryHandler handles searching and listing excerpts.
type QueryHandler struct {
	store *services.ExcerptStore
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(store *services.ExcerptStore) *QueryHandler {
	return &QueryHandler{
		store: store,
	}
}

// QueryOptions controls a search.
type QueryOptions struct {
	Filters entities.SearchFilters
	Sort    entities.SortOption
	Limit   int // 0 means no limit
}

// QueryResult contains the result of a query.
type QueryResult struct {
	Excerpts []entities.Excerpt
	Matched  int // matches before Limit was applied
	Total    int // size of the journal
}

// Handle filters and sorts the journal.
func (h *QueryHandler) Handle(opts QueryOptions) *QueryResult {
	all := h.store.GetAll()

	sortBy := opts.Sort
	if sortBy == "" {
		sortBy = entities.SortDateDesc
	}

	matched := services.Sort(services.Search(all, opts.Filters), sortBy)
	result := &QueryResult{
		Excerpts: matched,
		Matched:  len(matched),
		Total:    len(all),
	}
	if opts.Limit > 0 && len(matched) > opts.Limit {
		result.Excerpts = matched[:opts.Limit]
	}
	return result
}

// Stats computes statistics over the whole journal.
func (h *QueryHandler) Stats() entities.Statistics {
	return services.CalculateStatistics(h.store.GetAll())
}

// Tags returns every distinct tag with the number of excerpts carrying it.
func (h *QueryHandler) Tags() []entities.TagCount {
	all := h.store.GetAll()
	counts := make(map[string]int)
	for _, e := range all {
		for _, tag := range e.Tags {
			counts[tag]++
		}
	}

	names := services.ExtractAllTags(all)
	out := make([]entities.TagCount, 0, len(names))
	for _, name := range names {
		out = append(out, entities.TagCount{Tag: name, Count: counts[name]})
	}
	return out
}

// Authors returns every distinct author with their excerpt count.
func (h *QueryHandler) Authors() []entities.AuthorCount {
	all := h.store.GetAll()
	counts := make(map[string]int)
	for _, e := range all {
		counts[e.Author]++
	}

	names := services.ExtractAllAuthors(all)
	out := make([]entities.AuthorCount, 0, len(names))
	for _, name := range names {
		out = append(out, entities.AuthorCount{Author: name, Count: counts[name]})
	}
	return out
}

// Works returns every distinct work title with its excerpt count.
func (h *QueryHandler) Works() []entities.WorkCount {
	all := h.store.GetAll()
	counts := make(map[string]int)
	for _, e := range all {
		counts[e.WorkTitle]++
	}

	names := services.ExtractAllWorks(all)
	out := make([]entities.WorkCount, 0, len(names))
	for _, name := range names {
		out = append(out, entities.WorkCount{Work: name, Count: counts[name]})
	}
	return out
}
