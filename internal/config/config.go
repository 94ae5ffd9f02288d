package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level concilia.yaml configuration.
type Config struct {
	Project  ProjectConfig  `yaml:"project"`
	Importer ImporterConfig `yaml:"importer"`
	Git      GitConfig      `yaml:"git"`
}

// ProjectConfig identifies the reconciliation project.
type ProjectConfig struct {
	Name string `yaml:"name"`
}

// ImporterConfig maps the client chart export's columns. The CNCJ and
// general chart formats are fixed; only client exports vary by accounting
// package.
type ImporterConfig struct {
	ClientNumberColumn int  `yaml:"client_number_column"`
	ClientTitleColumn  int  `yaml:"client_title_column"`
	ClientHasHeader    bool `yaml:"client_has_header"`
}

// GitConfig controls git snapshots of the project directory.
type GitConfig struct {
	AutoSnapshot bool   `yaml:"auto_snapshot"`
	AuthorName   string `yaml:"author_name"`
	AuthorEmail  string `yaml:"author_email"`
}

// Load reads a concilia.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(projectName string) *Config {
	return &Config{
		Project: ProjectConfig{
			Name: projectName,
		},
		Importer: ImporterConfig{
			ClientNumberColumn: 0,
			ClientTitleColumn:  1,
			ClientHasHeader:    true,
		},
		Git: GitConfig{
			AutoSnapshot: true,
			AuthorName:   "Concilia",
			AuthorEmail:  "robot@concilia.dev",
		},
	}
}
