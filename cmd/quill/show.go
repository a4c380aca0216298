package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	var history bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show an excerpt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], history)
		},
	}

	cmd.Flags().BoolVar(&history, "history", false, "Include change history")

	return cmd
}

func runShow(cmd *cobra.Command, id string, history bool) error {
	return withDeps(cmd.Context(), func(deps *Deps) error {
		result, err := deps.ExcerptHandler.Show(cmd.Context(), id)
		if err != nil {
			return err
		}

		printExcerpt(os.Stdout, result.Excerpt)

		if history && len(result.History) > 0 {
			fmt.Println("\nHistory:")
			for _, entry := range result.History {
				fmt.Printf("  %s  %s\n", entry.CreatedAt.Local().Format("2006-01-02 15:04:05"), entry.Action)
			}
		}
		return nil
	})
}
