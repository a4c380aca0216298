package services

import (
	"regexp"
	"slices"
	"strings"

	"github.com/ersonp/quill/internal/domain/entities"
)

// Search returns the excerpts matching every filter in f, in input order.
// It never modifies excerpts.
func Search(excerpts []entities.Excerpt, f entities.SearchFilters) []entities.Excerpt {
	m := newMatcher(f)
	result := make([]entities.Excerpt, 0, len(excerpts))
	for i := range excerpts {
		if m.match(&excerpts[i]) {
			result = append(result, excerpts[i])
		}
	}
	return result
}

// matcher holds the lowered filter values so each record costs a single pass.
type matcher struct {
	query  string
	author string
	work   string
	tags   entities.TagSet
	start  string
	end    string
}

func newMatcher(f entities.SearchFilters) matcher {
	return matcher{
		query:  strings.ToLower(f.Query),
		author: strings.ToLower(f.Author),
		work:   strings.ToLower(f.WorkTitle),
		tags:   entities.NewTagSet(f.Tags...),
		start:  f.DateRange.Start,
		end:    f.DateRange.End,
	}
}

func (m matcher) match(e *entities.Excerpt) bool {
	return m.matchQuery(e) &&
		containsFold(e.Author, m.author) &&
		containsFold(e.WorkTitle, m.work) &&
		m.matchTags(e) &&
		m.matchDate(e)
}

func (m matcher) matchQuery(e *entities.Excerpt) bool {
	if m.query == "" {
		return true
	}
	return containsFold(e.Content, m.query) ||
		containsFold(e.Annotation, m.query) ||
		containsFold(e.Author, m.query) ||
		containsFold(e.WorkTitle, m.query)
}

// matchTags is true when the excerpt shares at least one tag with the filter.
func (m matcher) matchTags(e *entities.Excerpt) bool {
	if m.tags.Len() == 0 {
		return true
	}
	return m.tags.IntersectsAny(e.Tags)
}

// matchDate compares YYYY-MM-DD strings, whose byte order is chronological.
func (m matcher) matchDate(e *entities.Excerpt) bool {
	if m.start != "" && e.Date < m.start {
		return false
	}
	if m.end != "" && e.Date > m.end {
		return false
	}
	return true
}

// containsFold reports whether lowered needle occurs in s, ignoring case.
// An empty needle always matches.
func containsFold(s, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), needle)
}

// ExtractAllTags returns every distinct tag in the journal, sorted.
func ExtractAllTags(excerpts []entities.Excerpt) []string {
	var all []string
	for i := range excerpts {
		all = append(all, excerpts[i].Tags...)
	}
	return distinctSorted(all)
}

// ExtractAllAuthors returns every distinct author in the journal, sorted.
func ExtractAllAuthors(excerpts []entities.Excerpt) []string {
	all := make([]string, 0, len(excerpts))
	for i := range excerpts {
		all = append(all, excerpts[i].Author)
	}
	return distinctSorted(all)
}

// ExtractAllWorks returns every distinct work title in the journal, sorted.
func ExtractAllWorks(excerpts []entities.Excerpt) []string {
	all := make([]string, 0, len(excerpts))
	for i := range excerpts {
		all = append(all, excerpts[i].WorkTitle)
	}
	return distinctSorted(all)
}

func distinctSorted(values []string) []string {
	out := make([]string, 0, len(values))
	seen := entities.NewTagSet()
	for _, v := range values {
		if v == "" || seen.Has(v) {
			continue
		}
		seen.Add(v)
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Highlight wraps every case-insensitive occurrence of query in text with mark.
// Text is returned unchanged when query is empty.
func Highlight(text, query string, mark func(string) string) string {
	if query == "" {
		return text
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	return re.ReplaceAllStringFunc(text, mark)
}
