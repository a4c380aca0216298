package services

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ersonp/quill/internal/domain/entities"
)

// CollationLanguage is the locale used to order authors and works.
// Simplified Chinese collation sorts Han by pinyin and Latin alphabetically.
var CollationLanguage = language.SimplifiedChinese

// Sort returns a new slice holding excerpts ordered by opt.
// The sort is stable and the input slice is not modified.
func Sort(excerpts []entities.Excerpt, opt entities.SortOption) []entities.Excerpt {
	sorted := slices.Clone(excerpts)
	if sorted == nil {
		sorted = []entities.Excerpt{}
	}

	switch opt {
	case entities.SortDateDesc:
		slices.SortStableFunc(sorted, func(a, b entities.Excerpt) int {
			return strings.Compare(b.Date, a.Date)
		})
	case entities.SortDateAsc:
		slices.SortStableFunc(sorted, func(a, b entities.Excerpt) int {
			return strings.Compare(a.Date, b.Date)
		})
	case entities.SortAuthor:
		c := collate.New(CollationLanguage)
		slices.SortStableFunc(sorted, func(a, b entities.Excerpt) int {
			return c.CompareString(a.Author, b.Author)
		})
	case entities.SortWork:
		c := collate.New(CollationLanguage)
		slices.SortStableFunc(sorted, func(a, b entities.Excerpt) int {
			return c.CompareString(a.WorkTitle, b.WorkTitle)
		})
	}

	return sorted
}
