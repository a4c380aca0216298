package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/quill/internal/application/handlers"
	"github.com/ersonp/quill/internal/domain/services"
)

type importFlags struct {
	dryRun bool
}

func newImportCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import excerpts from a JSON export",
		Long: "Merges excerpts from a JSON array file. Every record needs id, content, author\n" +
			"and workTitle, otherwise nothing is imported. Excerpts whose id already exists are skipped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Validate without saving")

	return cmd
}

func runImport(cmd *cobra.Command, filePath string, flags importFlags) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(deps *Deps) error {
		fmt.Printf("Importing %s...\n", filePath)

		result, err := deps.ImportHandler.Import(ctx, filePath, services.ImportOptions{DryRun: flags.dryRun})
		if err != nil {
			return fmt.Errorf("importing file: %w", err)
		}

		if flags.dryRun {
			fmt.Printf("Dry run: %d excerpts would be imported", result.Imported)
		} else {
			fmt.Printf("Imported: %d excerpts", result.Imported)
		}
		if result.Skipped > 0 {
			fmt.Printf(", %d skipped (already exist)", result.Skipped)
		}
		fmt.Println()

		return nil
	})
}

func newRestoreCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace the journal with a backup",
		Long:  "Replaces every excerpt in the journal with the contents of a backup file or JSON export. This cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(cmd, args[0], force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func runRestore(cmd *cobra.Command, filePath string, force bool) error {
	ctx := cmd.Context()

	var confirm handlers.ConfirmRestoreFunc
	if !force {
		confirm = func(current, incoming int) bool {
			return confirmAction(fmt.Sprintf("Replace all %d excerpts with %d from %s?", current, incoming, filePath))
		}
	}

	return withDeps(ctx, func(deps *Deps) error {
		result, err := deps.ImportHandler.Restore(ctx, filePath, confirm)
		if errors.Is(err, handlers.ErrRestoreCancelled) {
			fmt.Println("Cancelled.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("restoring backup: %w", err)
		}

		fmt.Printf("Restored %d excerpts (replaced %d)\n", result.Imported, result.Replaced)
		return nil
	})
}
