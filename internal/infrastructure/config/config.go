// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for quill configuration.
	DefaultConfigDir = ".quill"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultJournalsFile is the default journals file name.
	DefaultJournalsFile = "journals.yaml"
	// DefaultDatabaseFile is the default SQLite file name inside the config dir.
	DefaultDatabaseFile = "journal.db"
	// DefaultSlot is the storage slot holding the default journal.
	DefaultSlot = "book-excerpts"
)

var (
	// reNonAlphanumeric matches characters that aren't alphanumeric, underscore or hyphen.
	reNonAlphanumeric = regexp.MustCompile(`[^a-z0-9_-]`)
	// reMultipleHyphens matches consecutive hyphens.
	reMultipleHyphens = regexp.MustCompile(`-+`)
)

// Config holds static configuration (read-only after init).
type Config struct {
	Storage StorageConfig `yaml:"storage,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Display DisplayConfig `yaml:"display,omitempty"`
}

// StorageConfig holds configuration for the SQLite journal store.
type StorageConfig struct {
	// Path is the SQLite database file. Relative paths resolve against the
	// directory holding .quill.
	Path string `yaml:"path,omitempty"`
	// Slot names the default journal's storage slot.
	Slot string `yaml:"slot,omitempty"`
}

// LoggingConfig holds configuration for diagnostic logging.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // console or json
}

// DisplayConfig holds presentation defaults.
type DisplayConfig struct {
	Sort string `yaml:"sort,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Path: filepath.Join(DefaultConfigDir, DefaultDatabaseFile),
			Slot: DefaultSlot,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Display: DisplayConfig{
			Sort: "date-desc",
		},
	}
}

// Load loads configuration from the .quill directory in the given path.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	data, err := os.ReadFile(configFile)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s (run 'quill init' first)", configFile)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Start with defaults
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if cfg.Storage.Slot == "" {
		cfg.Storage.Slot = DefaultSlot
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("QUILL_DB_PATH"); path != "" {
		c.Storage.Path = path
	}
	if level := os.Getenv("QUILL_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// DatabasePath returns the absolute SQLite path for the config rooted at basePath.
func (c *Config) DatabasePath(basePath string) string {
	if c.Storage.Path == ":memory:" || filepath.IsAbs(c.Storage.Path) {
		return c.Storage.Path
	}
	return filepath.Join(basePath, c.Storage.Path)
}

// ConfigDir returns the path to the .quill config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// JournalsFilePath returns the path to the journals file.
func JournalsFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultJournalsFile)
}

// SanitizeJournalName converts a journal name to a valid slot suffix.
func SanitizeJournalName(name string) string {
	name = strings.ToLower(name)

	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "_", "-")

	name = reNonAlphanumeric.ReplaceAllString(name, "")
	name = reMultipleHyphens.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")

	if name == "" {
		return "default"
	}

	return name
}

// GenerateSlotName creates a storage slot name for a journal.
func GenerateSlotName(journalName string) string {
	return "excerpts-" + SanitizeJournalName(journalName)
}
