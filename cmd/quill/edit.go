package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/quill/internal/application/handlers"
)

type editFlags struct {
	excerptFlags
	content    string
	addTags    []string
	removeTags []string
}

func newEditCmd() *cobra.Command {
	var flags editFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an excerpt",
		Long:  "Changes fields of an excerpt. Only the given flags are changed; the id may be a unique prefix.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.content, "content", "c", "", "Excerpt content")
	cmd.Flags().StringVarP(&flags.date, "date", "d", "", "Date, YYYY-MM-DD")
	cmd.Flags().StringVarP(&flags.author, "author", "a", "", "Author")
	cmd.Flags().StringVarP(&flags.work, "work", "w", "", "Work title")
	cmd.Flags().StringVarP(&flags.annotation, "note", "n", "", "Personal annotation")
	cmd.Flags().StringSliceVarP(&flags.tags, "tags", "t", nil, "Replace all tags")
	cmd.Flags().StringSliceVar(&flags.addTags, "add-tag", nil, "Add a tag")
	cmd.Flags().StringSliceVar(&flags.removeTags, "remove-tag", nil, "Remove a tag")

	return cmd
}

// buildPatch converts the flags the user actually set into a patch.
func buildPatch(cmd *cobra.Command, flags editFlags) handlers.ExcerptPatch {
	var patch handlers.ExcerptPatch
	changed := cmd.Flags().Changed

	if changed("content") {
		patch.Content = &flags.content
	}
	if changed("date") {
		patch.Date = &flags.date
	}
	if changed("author") {
		patch.Author = &flags.author
	}
	if changed("work") {
		patch.WorkTitle = &flags.work
	}
	if changed("note") {
		patch.Annotation = &flags.annotation
	}
	if changed("tags") {
		tags := flags.tags
		patch.Tags = &tags
	}
	patch.AddTags = flags.addTags
	patch.RemoveTags = flags.removeTags

	return patch
}

func runEdit(cmd *cobra.Command, id string, flags editFlags) error {
	patch := buildPatch(cmd, flags)
	if patch.IsEmpty() {
		return errors.New("nothing to change (see quill edit --help)")
	}

	return withDeps(cmd.Context(), func(deps *Deps) error {
		excerpt, err := deps.ExcerptHandler.Edit(cmd.Context(), id, patch)
		if err != nil {
			return err
		}

		fmt.Printf("Updated excerpt %s\n", shortID(excerpt.ID))
		return nil
	})
}
