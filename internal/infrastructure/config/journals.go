package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// JournalsConfig holds named journal definitions (read/write).
type JournalsConfig struct {
	Journals map[string]JournalEntry `yaml:"journals,omitempty"`
}

// JournalEntry holds configuration for a specific journal.
type JournalEntry struct {
	Slot        string `yaml:"slot"`
	Description string `yaml:"description,omitempty"`
}

// LoadJournals loads journal configuration from the .quill directory.
func LoadJournals(basePath string) (*JournalsConfig, error) {
	data, err := os.ReadFile(JournalsFilePath(basePath))
	if os.IsNotExist(err) {
		// Return empty config if file doesn't exist
		return &JournalsConfig{
			Journals: make(map[string]JournalEntry),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading journals file: %w", err)
	}

	var cfg JournalsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing journals file: %w", err)
	}

	if cfg.Journals == nil {
		cfg.Journals = make(map[string]JournalEntry)
	}

	return &cfg, nil
}

// Save writes the journals configuration to the journals file.
func (j *JournalsConfig) Save(basePath string) error {
	if err := os.MkdirAll(ConfigDir(basePath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(j)
	if err != nil {
		return fmt.Errorf("marshaling journals config: %w", err)
	}

	if err := os.WriteFile(JournalsFilePath(basePath), data, 0600); err != nil {
		return fmt.Errorf("writing journals file: %w", err)
	}

	return nil
}

// Add adds a journal to the configuration.
func (j *JournalsConfig) Add(name string, entry JournalEntry) {
	if j.Journals == nil {
		j.Journals = make(map[string]JournalEntry)
	}
	j.Journals[name] = entry
}

// Remove removes a journal from the configuration.
func (j *JournalsConfig) Remove(name string) {
	if j.Journals != nil {
		delete(j.Journals, name)
	}
}

// Names returns the configured journal names, sorted.
func (j *JournalsConfig) Names() []string {
	names := make([]string, 0, len(j.Journals))
	for name := range j.Journals {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Get returns the configuration for a specific journal.
func (j *JournalsConfig) Get(name string) (*JournalEntry, error) {
	if len(j.Journals) == 0 {
		return nil, errors.New("no journals configured")
	}

	entry, ok := j.Journals[name]
	if !ok {
		names := j.Names()
		if len(names) > 5 {
			names = append(names[:5], "...")
		}
		return nil, fmt.Errorf("journal %q not found (available: %s)", name, strings.Join(names, ", "))
	}

	return &entry, nil
}

// Exists checks if a journal exists in the configuration.
func (j *JournalsConfig) Exists(name string) bool {
	if j.Journals == nil {
		return false
	}
	_, ok := j.Journals[name]
	return ok
}

// ResolveSlot returns the storage slot for journal, or defaultSlot when journal is empty.
func (j *JournalsConfig) ResolveSlot(journal, defaultSlot string) (string, error) {
	if journal == "" {
		return defaultSlot, nil
	}
	entry, err := j.Get(journal)
	if err != nil {
		return "", err
	}
	return entry.Slot, nil
}
