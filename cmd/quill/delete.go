package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type deleteFlags struct {
	force bool
}

func newDeleteCmd() *cobra.Command {
	var flags deleteFlags

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an excerpt",
		Long:  "Permanently removes an excerpt. The id may be a unique prefix.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

func runDelete(cmd *cobra.Command, id string, flags deleteFlags) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(deps *Deps) error {
		excerpt, err := deps.ExcerptHandler.Resolve(id)
		if err != nil {
			return err
		}

		if !flags.force {
			prompt := fmt.Sprintf("Delete excerpt %s (%s)?", shortID(excerpt.ID), preview(excerpt.Content, PreviewRunes))
			if !confirmAction(prompt) {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if _, err := deps.ExcerptHandler.Delete(ctx, excerpt.ID); err != nil {
			return err
		}

		fmt.Printf("Deleted excerpt %s\n", shortID(excerpt.ID))
		return nil
	})
}

func confirmAction(prompt string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", prompt)
	response, _ := reader.ReadString('\n') // Error ignored: EOF/error treated as "no"
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
