package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/quill/internal/application/handlers"
	"github.com/ersonp/quill/internal/domain/ports"
	"github.com/ersonp/quill/internal/infrastructure/config"
	"github.com/ersonp/quill/internal/infrastructure/storage/sqlite"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new journal",
		Long:  "Creates a .quill directory with default configuration and an empty SQLite journal.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	log, err := newLogger(config.Default().Logging)
	if err != nil {
		return err
	}

	handler := handlers.NewInitHandler(func(path string) (ports.SchemaManager, error) {
		return sqlite.NewRepository(path, log)
	})

	result, err := handler.Handle(cmd.Context(), cwd)
	if err != nil {
		return err
	}

	fmt.Printf("Created %s\n", result.ConfigPath)
	fmt.Printf("Created journal database: %s (slot %q)\n", result.DatabasePath, result.Slot)
	fmt.Println("Quill initialized successfully!")

	return nil
}
