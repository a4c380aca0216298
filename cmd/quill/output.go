package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ersonp/quill/internal/domain/entities"
)

const shortIDLength = 8

// shortID returns the leading part of an id, enough to address it by prefix.
func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

// preview flattens whitespace and truncates s to n runes.
func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// source formats author and work as "author 《work》".
func source(e entities.Excerpt) string {
	parts := make([]string, 0, 2)
	if e.Author != "" {
		parts = append(parts, e.Author)
	}
	if e.WorkTitle != "" {
		parts = append(parts, "《"+e.WorkTitle+"》")
	}
	return strings.Join(parts, " ")
}

// printExcerptLine writes a one-line summary of an excerpt.
func printExcerptLine(w io.Writer, e entities.Excerpt) {
	fmt.Fprintf(w, "%-8s  %s  %s\n", shortID(e.ID), e.Date, preview(e.Content, PreviewRunes))
	if s := source(e); s != "" || len(e.Tags) > 0 {
		line := s
		if len(e.Tags) > 0 {
			line = strings.TrimSpace(line + "  " + formatTags(e.Tags))
		}
		fmt.Fprintf(w, "%-8s  %s\n", "", line)
	}
}

// printExcerpt writes all fields of an excerpt.
func printExcerpt(w io.Writer, e entities.Excerpt) {
	fmt.Fprintf(w, "ID:         %s\n", e.ID)
	fmt.Fprintf(w, "Date:       %s\n", e.Date)
	if e.Author != "" {
		fmt.Fprintf(w, "Author:     %s\n", e.Author)
	}
	if e.WorkTitle != "" {
		fmt.Fprintf(w, "Work:       %s\n", e.WorkTitle)
	}
	if len(e.Tags) > 0 {
		fmt.Fprintf(w, "Tags:       %s\n", formatTags(e.Tags))
	}
	fmt.Fprintf(w, "Created:    %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Updated:    %s\n", e.UpdatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "\n%s\n", e.Content)
	if e.Annotation != "" {
		fmt.Fprintf(w, "\nNote:\n%s\n", e.Annotation)
	}
}

func formatTags(tags []string) string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = "#" + t
	}
	return strings.Join(out, " ")
}
