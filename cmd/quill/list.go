package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/quill/internal/application/handlers"
	"github.com/ersonp/quill/internal/domain/entities"
)

type listFlags struct {
	query  string
	author string
	work   string
	tags   []string
	from   string
	to     string
	sort   string
	limit  int
}

func newListCmd() *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "search"},
		Short:   "List and search excerpts",
		Long: "Lists excerpts matching all given filters. Text filters are case-insensitive\n" +
			"substring matches; --tag matches excerpts carrying any of the given tags.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.query, "query", "q", "", "Search content, annotation, author and work")
	cmd.Flags().StringVar(&flags.author, "author", "", "Filter by author")
	cmd.Flags().StringVar(&flags.work, "work", "", "Filter by work title")
	cmd.Flags().StringSliceVarP(&flags.tags, "tag", "t", nil, "Filter by tag (repeatable, matches any)")
	cmd.Flags().StringVar(&flags.from, "from", "", "Earliest date, YYYY-MM-DD")
	cmd.Flags().StringVar(&flags.to, "to", "", "Latest date, YYYY-MM-DD")
	cmd.Flags().StringVarP(&flags.sort, "sort", "s", "", "Sort order: date-desc, date-asc, author, work (default from config)")
	cmd.Flags().IntVarP(&flags.limit, "limit", "l", DefaultListLimit, "Maximum number of excerpts to show (0 for all)")

	return cmd
}

// queryOptions validates the flags and converts them to query options.
func (f listFlags) queryOptions(defaultSort string) (handlers.QueryOptions, error) {
	sortName := f.sort
	if sortName == "" {
		sortName = defaultSort
	}
	if sortName == "" {
		sortName = string(entities.SortDateDesc)
	}
	sortBy, err := entities.ParseSortOption(sortName)
	if err != nil {
		return handlers.QueryOptions{}, err
	}

	for _, bound := range []struct{ name, value string }{{"from", f.from}, {"to", f.to}} {
		if bound.value == "" {
			continue
		}
		if _, err := time.Parse(entities.DateLayout, bound.value); err != nil {
			return handlers.QueryOptions{}, fmt.Errorf("invalid --%s %q: %w", bound.name, bound.value, entities.ErrInvalidDate)
		}
	}

	if f.limit < 0 {
		return handlers.QueryOptions{}, fmt.Errorf("invalid --limit %d", f.limit)
	}

	return handlers.QueryOptions{
		Filters: entities.SearchFilters{
			Query:     f.query,
			Author:    f.author,
			WorkTitle: f.work,
			Tags:      f.tags,
			DateRange: entities.DateRange{Start: f.from, End: f.to},
		},
		Sort:  sortBy,
		Limit: f.limit,
	}, nil
}

func runList(cmd *cobra.Command, flags listFlags) error {
	return withDeps(cmd.Context(), func(deps *Deps) error {
		opts, err := flags.queryOptions(deps.Config.Display.Sort)
		if err != nil {
			return err
		}

		result := deps.QueryHandler.Handle(opts)

		if result.Total == 0 {
			fmt.Println("No excerpts yet. Use 'quill add' to add one.")
			return nil
		}
		if result.Matched == 0 {
			fmt.Println("No matching excerpts.")
			return nil
		}

		for _, e := range result.Excerpts {
			printExcerptLine(os.Stdout, e)
		}

		fmt.Printf("\nShowing %d of %d matching excerpts (%d total)\n", len(result.Excerpts), result.Matched, result.Total)
		return nil
	})
}
