package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/quill/internal/application/handlers"
	"github.com/ersonp/quill/internal/infrastructure/exporters"
)

type exportFlags struct {
	format string
	output string
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export excerpts to file",
		Long: "Exports the whole journal to JSON, TXT, CSV or markdown.\n" +
			"Use --output - to write to stdout. An --output directory receives the dated default file name.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", fmt.Sprintf("Output format %v (default: from --output extension, else json)", exporters.Formats))
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file or directory (default: 摘抄记录_<date>.<ext>)")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	return withDeps(cmd.Context(), func(deps *Deps) error {
		if flags.output == "-" {
			format := flags.format
			if format == "" {
				format = exporters.FormatJSON
			}
			_, err := deps.ExportHandler.Export(os.Stdout, format)
			return err
		}

		result, err := deps.ExportHandler.ExportFile(flags.output, flags.format)
		if err != nil {
			return err
		}

		fmt.Printf("Exported %d excerpts to %s\n", result.Count, result.Path)
		return nil
	})
}

func newBackupCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a full backup of the journal",
		Long:  "Writes a versioned JSON snapshot of the journal that 'quill restore' can read back.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(deps *Deps) error {
				var (
					result *handlers.ExportResult
					err    error
				)
				if output == "-" {
					result, err = deps.ExportHandler.Backup(os.Stdout)
				} else {
					result, err = deps.ExportHandler.BackupFile(output)
				}
				if err != nil {
					return err
				}
				if result.Path != "" {
					fmt.Printf("Backed up %d excerpts to %s\n", result.Count, result.Path)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file or directory (default: 摘抄备份_<date>.json)")

	return cmd
}
