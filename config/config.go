package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the freq tool.
type Config struct {
	Count   CountConfig   `yaml:"count"`
	Report  ReportConfig  `yaml:"report"`
	Batch   BatchConfig   `yaml:"batch"`
	History HistoryConfig `yaml:"history"`
	Logging LoggingConfig `yaml:"logging"`
}

// CountConfig holds tokenizer configuration.
type CountConfig struct {
	Lowercase       bool   `yaml:"lowercase"`
	Apostrophes     bool   `yaml:"apostrophes"` // keep ' inside tokens (isn't, d'entrée)
	Normalize       bool   `yaml:"normalize"`   // NFC before tokenizing
	RemoveStopwords bool   `yaml:"remove_stopwords"`
	StopwordsLang   string `yaml:"stopwords_lang"`
}

// ReportConfig holds output configuration.
type ReportConfig struct {
	Format string `yaml:"format"` // "tsv" or "table"
}

// BatchConfig holds configuration for the batch driver.
type BatchConfig struct {
	Includes     []string `yaml:"includes"`
	Excludes     []string `yaml:"excludes"`
	Modes        []int    `yaml:"modes"`
	OutputDir    string   `yaml:"output_dir"`
	InputSuffix  string   `yaml:"input_suffix"`
	OutputSuffix string   `yaml:"output_suffix"`
	Jobs         int      `yaml:"jobs"`
	RequireGit   bool     `yaml:"require_git"`
}

// HistoryConfig holds run history configuration.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Count: CountConfig{
			Lowercase:       true,
			Apostrophes:     true,
			Normalize:       true,
			RemoveStopwords: false,
			StopwordsLang:   "english",
		},
		Report: ReportConfig{
			Format: "tsv",
		},
		Batch: BatchConfig{
			Includes:     []string{"**/*.in.txt"},
			Excludes:     []string{"**/.git/**", "**/.freq/**"},
			Modes:        []int{1, 2},
			OutputDir:    "out",
			InputSuffix:  ".in.txt",
			OutputSuffix: ".out.txt",
			Jobs:         1,
			RequireGit:   false,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for freq.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "freq.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".freq", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Validate checks values that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	switch c.Report.Format {
	case "tsv", "table":
	default:
		return fmt.Errorf("report.format must be tsv or table, got %q", c.Report.Format)
	}
	if c.Count.RemoveStopwords && !hasStopwords(c.Count.StopwordsLang) {
		return fmt.Errorf("count.stopwords_lang: no stopword list for %q", c.Count.StopwordsLang)
	}
	if len(c.Batch.Modes) == 0 {
		return fmt.Errorf("batch.modes must not be empty")
	}
	seen := make(map[int]bool, len(c.Batch.Modes))
	for _, m := range c.Batch.Modes {
		if m != 1 && m != 2 {
			return fmt.Errorf("batch.modes: invalid mode %d", m)
		}
		if seen[m] {
			return fmt.Errorf("batch.modes: mode %d listed twice", m)
		}
		seen[m] = true
	}
	if c.Batch.Jobs < 1 {
		return fmt.Errorf("batch.jobs must be at least 1, got %d", c.Batch.Jobs)
	}
	return nil
}

// hasStopwords mirrors the languages the tokenizer ships lists for.
func hasStopwords(lang string) bool {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "", "en", "english":
		return true
	}
	return false
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// HistoryDBPath returns the path to the run history database.
func HistoryDBPath(dir string) string {
	return filepath.Join(dir, ".freq", "history.db")
}

// EnsureFreqDir ensures the .freq directory exists.
func EnsureFreqDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".freq"), 0755)
}
