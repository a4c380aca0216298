package services

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ersonp/quill/internal/domain/entities"
)

// Statistics limits.
const (
	TopAuthorsLimit   = 10
	TopWorksLimit     = 10
	TopTagsLimit      = 15
	CreationTrendDays = 30
)

// CalculateStatistics summarizes the full journal.
// Ties in the top lists keep first-encountered order, so pass the collection
// in its stored order for reproducible output.
func CalculateStatistics(excerpts []entities.Excerpt) entities.Statistics {
	stats := entities.Statistics{
		TotalExcerpts: len(excerpts),
		TopAuthors:    []entities.AuthorCount{},
		TopWorks:      []entities.WorkCount{},
		TopTags:       []entities.TagCount{},
		CreationTrend: []entities.DayCount{},
	}

	authors := newCounter()
	works := newCounter()
	tags := newCounter()
	days := newCounter()

	for i := range excerpts {
		e := &excerpts[i]
		stats.TotalWords += CountWords(e.Content)
		stats.TotalCharacters += utf8.RuneCountInString(e.Content) + utf8.RuneCountInString(e.Annotation)

		authors.add(e.Author)
		works.add(e.WorkTitle)
		for _, tag := range e.Tags {
			tags.add(tag)
		}
		if !e.CreatedAt.IsZero() {
			days.add(creationDay(e.CreatedAt))
		}
	}

	for _, kc := range authors.top(TopAuthorsLimit) {
		stats.TopAuthors = append(stats.TopAuthors, entities.AuthorCount{Author: kc.key, Count: kc.count})
	}
	for _, kc := range works.top(TopWorksLimit) {
		stats.TopWorks = append(stats.TopWorks, entities.WorkCount{Work: kc.key, Count: kc.count})
	}
	for _, kc := range tags.top(TopTagsLimit) {
		stats.TopTags = append(stats.TopTags, entities.TagCount{Tag: kc.key, Count: kc.count})
	}
	for _, kc := range days.lastByKey(CreationTrendDays) {
		stats.CreationTrend = append(stats.CreationTrend, entities.DayCount{Date: kc.key, Count: kc.count})
	}

	return stats
}

// CountWords counts CJK ideographs (U+4E00..U+9FA5) and ASCII letters and digits.
// Punctuation and whitespace are ignored; mixed Chinese and English text has
// no meaningful word boundaries, so characters stand in for words.
func CountWords(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case r >= 0x4e00 && r <= 0x9fa5:
			n++
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			n++
		}
	}
	return n
}

// creationDay returns the calendar day of a creation timestamp in its own
// offset, the date part of the RFC 3339 text it was stored as.
func creationDay(t time.Time) string {
	return t.Format(entities.DateLayout)
}

type keyCount struct {
	key   string
	count int
}

// counter counts keys and remembers the order in which they were first seen.
type counter struct {
	index  map[string]int
	counts []keyCount
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(key string) {
	if i, ok := c.index[key]; ok {
		c.counts[i].count++
		return
	}
	c.index[key] = len(c.counts)
	c.counts = append(c.counts, keyCount{key: key, count: 1})
}

// top returns up to n entries by descending count, ties in first-seen order.
func (c *counter) top(n int) []keyCount {
	sorted := slices.Clone(c.counts)
	slices.SortStableFunc(sorted, func(a, b keyCount) int {
		return b.count - a.count
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// lastByKey returns the n greatest keys in ascending key order.
func (c *counter) lastByKey(n int) []keyCount {
	sorted := slices.Clone(c.counts)
	slices.SortFunc(sorted, func(a, b keyCount) int {
		return strings.Compare(a.key, b.key)
	})
	if len(sorted) > n {
		sorted = sorted[len(sorted)-n:]
	}
	return sorted
}
