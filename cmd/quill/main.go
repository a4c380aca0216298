// Package main provides the entry point for the quill CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version       = "0.1.0-dev"
	globalJournal string
	globalVerbose bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "quill",
		Short:         "A reading journal for book excerpts",
		Long:          "Collect quoted passages with their author, work, tags and notes; search, browse and export them.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&globalJournal, "journal", "j", "", "Journal to operate on (default: the configured slot)")
	rootCmd.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newInitCmd(),
		newAddCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newShowCmd(),
		newListCmd(),
		newStatsCmd(),
		newTagsCmd(),
		newAuthorsCmd(),
		newWorksCmd(),
		newExportCmd(),
		newImportCmd(),
		newBackupCmd(),
		newRestoreCmd(),
		newJournalsCmd(),
		newLogCmd(),
		newBrowseCmd(),
	)

	return rootCmd
}

func run(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}
