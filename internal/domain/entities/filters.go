package entities

import (
	"fmt"
	"strings"
)

// DateRange bounds Excerpt.Date inclusively. Empty bounds are open.
type DateRange struct {
	Start string
	End   string
}

// SearchFilters is the combined filter specification applied to the journal.
// Zero values match everything.
type SearchFilters struct {
	Query     string
	Tags      []string
	Author    string
	WorkTitle string
	DateRange DateRange
}

// IsEmpty reports whether no filter is set.
func (f SearchFilters) IsEmpty() bool {
	return f.Query == "" && len(f.Tags) == 0 && f.Author == "" && f.WorkTitle == "" &&
		f.DateRange.Start == "" && f.DateRange.End == ""
}

// SortOption selects the ordering of a result list.
type SortOption string

// Sort options.
const (
	SortDateDesc SortOption = "date-desc"
	SortDateAsc  SortOption = "date-asc"
	SortAuthor   SortOption = "author"
	SortWork     SortOption = "work"
)

// SortOptions lists every option in display order.
var SortOptions = []SortOption{SortDateDesc, SortDateAsc, SortAuthor, SortWork}

// ParseSortOption parses s, accepting any case.
func ParseSortOption(s string) (SortOption, error) {
	opt := SortOption(strings.ToLower(strings.TrimSpace(s)))
	for _, o := range SortOptions {
		if o == opt {
			return o, nil
		}
	}
	return "", fmt.Errorf("invalid sort option %q (valid: date-desc, date-asc, author, work)", s)
}

// Next returns the option following o, wrapping around.
func (o SortOption) Next() SortOption {
	for i, opt := range SortOptions {
		if opt == o {
			return SortOptions[(i+1)%len(SortOptions)]
		}
	}
	return SortDateDesc
}

// Label returns a short human-readable description.
func (o SortOption) Label() string {
	switch o {
	case SortDateDesc:
		return "日期（新到旧）"
	case SortDateAsc:
		return "日期（旧到新）"
	case SortAuthor:
		return "作者"
	case SortWork:
		return "作品"
	default:
		return string(o)
	}
}
