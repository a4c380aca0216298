package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/quill/internal/domain/entities"
)

func newLogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent changes to the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				entries, err := deps.LogHandler.Recent(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Println("No changes recorded.")
					return nil
				}
				for _, e := range entries {
					fmt.Println(formatAuditEntry(e))
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultLogLimit, "Maximum number of entries (0 for all)")

	return cmd
}

func formatAuditEntry(e entities.AuditEntry) string {
	line := fmt.Sprintf("%s  %-8s", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Action)
	if e.ExcerptID != "" {
		line += "  " + shortID(e.ExcerptID)
	}
	switch e.Action {
	case entities.ActionImport:
		line += fmt.Sprintf("  imported=%v skipped=%v", e.Details["imported"], e.Details["skipped"])
	case entities.ActionRestore:
		line += fmt.Sprintf("  count=%v", e.Details["count"])
	}
	return line
}
