package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List all tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				tags := deps.QueryHandler.Tags()
				if len(tags) == 0 {
					fmt.Println("No tags.")
					return nil
				}
				for _, t := range tags {
					fmt.Printf("%-24s %d\n", t.Tag, t.Count)
				}
				return nil
			})
		},
	}
}

func newAuthorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "authors",
		Short: "List all authors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				authors := deps.QueryHandler.Authors()
				if len(authors) == 0 {
					fmt.Println("No authors.")
					return nil
				}
				for _, a := range authors {
					fmt.Printf("%-24s %d\n", a.Author, a.Count)
				}
				return nil
			})
		},
	}
}

func newWorksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "works",
		Short: "List all works",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				works := deps.QueryHandler.Works()
				if len(works) == 0 {
					fmt.Println("No works.")
					return nil
				}
				for _, w := range works {
					fmt.Printf("%-24s %d\n", w.Work, w.Count)
				}
				return nil
			})
		},
	}
}
