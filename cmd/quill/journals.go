package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/quill/internal/infrastructure/config"
)

func newJournalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journals",
		Short: "Manage journals",
		Long:  "Journals are independent excerpt collections stored side by side. Select one with --journal.",
		RunE:  runJournalsList,
	}

	cmd.AddCommand(
		newJournalsListCmd(),
		newJournalsCreateCmd(),
		newJournalsDeleteCmd(),
	)

	return cmd
}

func newJournalsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all journals",
		Args:  cobra.NoArgs,
		RunE:  runJournalsList,
	}
}

func runJournalsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withStorage(ctx, func(s *storageDeps) error {
		fmt.Printf("%-20s %-28s %-9s %s\n", "NAME", "SLOT", "EXCERPTS", "DESCRIPTION")
		fmt.Printf("%-20s %-28s %-9s %s\n", "----", "----", "--------", "-----------")

		fmt.Printf("%-20s %-28s %-9s %s\n", "(default)", s.cfg.Storage.Slot, slotCount(ctx, s, s.cfg.Storage.Slot), "")
		for _, name := range s.journals.Names() {
			entry := s.journals.Journals[name]
			fmt.Printf("%-20s %-28s %-9s %s\n", name, entry.Slot, slotCount(ctx, s, entry.Slot), entry.Description)
		}

		slots, err := s.repo.ListSlots(ctx)
		if err != nil {
			return fmt.Errorf("listing slots: %w", err)
		}
		if orphans := unregisteredSlots(slots, s.cfg.Storage.Slot, s.journals); len(orphans) > 0 {
			fmt.Println("\nSlots in the database with no journal:")
			for _, slot := range orphans {
				fmt.Printf("  %-28s %s excerpts\n", slot, slotCount(ctx, s, slot))
			}
		}
		return nil
	})
}

// unregisteredSlots returns the stored slots that neither the default journal
// nor any named journal points at.
func unregisteredSlots(slots []string, defaultSlot string, journals *config.JournalsConfig) []string {
	known := map[string]bool{defaultSlot: true}
	for _, entry := range journals.Journals {
		known[entry.Slot] = true
	}

	var orphans []string
	for _, slot := range slots {
		if !known[slot] {
			orphans = append(orphans, slot)
		}
	}
	return orphans
}

func slotCount(ctx context.Context, s *storageDeps, slot string) string {
	excerpts, err := s.repo.LoadSnapshot(ctx, slot)
	if err != nil {
		s.logger.Warn().Err(err).Str("slot", slot).Msg("counting journal")
		return "?"
	}
	return fmt.Sprintf("%d", len(excerpts))
}

func newJournalsCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalsCreate(cmd, args[0], description)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Journal description")

	return cmd
}

func runJournalsCreate(cmd *cobra.Command, name, description string) error {
	return withStorage(cmd.Context(), func(s *storageDeps) error {
		slot, err := addJournal(s.basePath, s.journals, s.cfg.Storage.Slot, name, description)
		if err != nil {
			return err
		}
		if err := s.repo.SaveSnapshot(cmd.Context(), slot, nil); err != nil {
			return fmt.Errorf("creating journal slot: %w", err)
		}

		fmt.Printf("Created journal %q with slot %q\n", name, slot)
		return nil
	})
}

// addJournal registers name in journals.yaml and returns its slot.
func addJournal(basePath string, journals *config.JournalsConfig, defaultSlot, name, description string) (string, error) {
	if journals.Exists(name) {
		return "", fmt.Errorf("journal %q already exists", name)
	}

	slot := config.GenerateSlotName(name)
	if slot == defaultSlot {
		return "", fmt.Errorf("journal %q would reuse the default slot %q", name, slot)
	}
	for _, existing := range journals.Names() {
		if journals.Journals[existing].Slot == slot {
			return "", fmt.Errorf("journal %q would share slot %q with journal %q", name, slot, existing)
		}
	}

	journals.Add(name, config.JournalEntry{Slot: slot, Description: description})
	if err := journals.Save(basePath); err != nil {
		return "", err
	}
	return slot, nil
}

func newJournalsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a journal and all of its excerpts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJournalsDelete(cmd, args[0], force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete even if the journal contains excerpts")

	return cmd
}

func runJournalsDelete(cmd *cobra.Command, name string, force bool) error {
	ctx := cmd.Context()

	return withStorage(ctx, func(s *storageDeps) error {
		entry, err := s.journals.Get(name)
		if err != nil {
			return err
		}

		if !force {
			excerpts, err := s.repo.LoadSnapshot(ctx, entry.Slot)
			if err == nil && len(excerpts) > 0 {
				return fmt.Errorf("journal %q contains %d excerpts, use --force to delete", name, len(excerpts))
			}
		}

		if err := s.repo.DeleteSlot(ctx, entry.Slot); err != nil {
			return fmt.Errorf("deleting journal slot: %w", err)
		}

		s.journals.Remove(name)
		if err := s.journals.Save(s.basePath); err != nil {
			return fmt.Errorf("removing journal from config: %w", err)
		}

		fmt.Printf("Deleted journal %q\n", name)
		return nil
	})
}
