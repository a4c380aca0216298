package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/quill/internal/domain/entities"
)

type excerptFlags struct {
	date       string
	author     string
	work       string
	annotation string
	tags       []string
}

func newAddCmd() *cobra.Command {
	var flags excerptFlags

	cmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Add an excerpt",
		Long: "Adds a new excerpt to the journal. The content is taken from the argument,\n" +
			"or read from stdin when the argument is omitted or \"-\".",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.date, "date", "d", "", "Date the excerpt pertains to, YYYY-MM-DD (default: the day after the last date used, else today)")
	cmd.Flags().StringVarP(&flags.author, "author", "a", "", "Author")
	cmd.Flags().StringVarP(&flags.work, "work", "w", "", "Work title")
	cmd.Flags().StringVarP(&flags.annotation, "note", "n", "", "Personal annotation")
	cmd.Flags().StringSliceVarP(&flags.tags, "tag", "t", nil, "Tag (repeatable or comma-separated)")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string, flags excerptFlags) error {
	content, err := readContent(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	draft := entities.ExcerptDraft{
		Date:       flags.date,
		Content:    content,
		Annotation: flags.annotation,
		Author:     flags.author,
		WorkTitle:  flags.work,
		Tags:       flags.tags,
	}

	return withDeps(cmd.Context(), func(deps *Deps) error {
		excerpt, err := deps.ExcerptHandler.Add(cmd.Context(), draft)
		if err != nil {
			return err
		}

		fmt.Printf("Added excerpt %s\n", shortID(excerpt.ID))
		return nil
	})
}

// readContent returns the excerpt text from args, or from r for "" or "-".
func readContent(r io.Reader, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return args[0], nil
	}

	if f, ok := r.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			fmt.Fprintln(os.Stderr, "Enter excerpt, then Ctrl-D:")
		}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading content: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
