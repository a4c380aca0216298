package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/quill/internal/domain/entities"
)

func newStatsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show journal statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				stats := deps.QueryHandler.Stats()
				if asJSON {
					encoder := json.NewEncoder(os.Stdout)
					encoder.SetIndent("", "  ")
					return encoder.Encode(stats)
				}
				printStats(stats)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print statistics as JSON")

	return cmd
}

func printStats(s entities.Statistics) {
	fmt.Printf("Excerpts:    %d\n", s.TotalExcerpts)
	fmt.Printf("Words:       %d\n", s.TotalWords)
	fmt.Printf("Characters:  %d\n", s.TotalCharacters)

	if s.TotalExcerpts == 0 {
		return
	}

	fmt.Println("\nTop authors:")
	for i, a := range s.TopAuthors {
		fmt.Printf("  %2d. %-24s %d\n", i+1, a.Author, a.Count)
	}

	fmt.Println("\nTop works:")
	for i, w := range s.TopWorks {
		fmt.Printf("  %2d. %-24s %d\n", i+1, w.Work, w.Count)
	}

	if len(s.TopTags) > 0 {
		fmt.Println("\nTop tags:")
		tags := make([]string, len(s.TopTags))
		for i, t := range s.TopTags {
			tags[i] = fmt.Sprintf("#%s (%d)", t.Tag, t.Count)
		}
		fmt.Printf("  %s\n", strings.Join(tags, "  "))
	}

	if len(s.CreationTrend) > 0 {
		fmt.Println("\nAdded per day:")
		for _, d := range s.CreationTrend {
			fmt.Printf("  %s  %s %d\n", d.Date, strings.Repeat("*", min(d.Count, 40)), d.Count)
		}
	}
}
