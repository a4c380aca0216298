package main

import (
	"github.com/spf13/cobra"

	"github.com/ersonp/quill/internal/domain/entities"
	"github.com/ersonp/quill/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse and search excerpts interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				sortBy, err := entities.ParseSortOption(deps.Config.Display.Sort)
				if err != nil {
					sortBy = entities.SortDateDesc
				}
				return tui.Run(cmd.Context(), deps.QueryHandler, deps.ExcerptHandler, sortBy)
			})
		},
	}
}
