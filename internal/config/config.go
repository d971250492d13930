// Package config loads tool configuration from a YAML file, falling back to
// defaults when no file exists.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all mendeleev configuration.
type Config struct {
	// HistoryPath is the SQLite database storing previous-run identities.
	HistoryPath string `yaml:"history_path"`
	LogLevel    string `yaml:"log_level"`
	// TriageSize is the number of issues kept in triage output.
	TriageSize int `yaml:"triage_size"`
	// MinClusterSize drops clusters with fewer failures from reports.
	MinClusterSize int `yaml:"min_cluster_size"`
	// Workers sets the clustering parallelism; 1 disables it.
	Workers int `yaml:"workers"`
}

// Default returns config with sensible defaults.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		HistoryPath:    filepath.Join(home, ".local", "share", "mendeleev", "history.db"),
		LogLevel:       "info",
		TriageSize:     5,
		MinClusterSize: 1,
		Workers:        1,
	}
}

// Load reads config from path, or from the first existing standard location
// when path is empty. A missing file is not an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	candidates := []string{path}
	if path == "" {
		candidates = configPaths()
	}
	for _, p := range candidates {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			if os.IsNotExist(err) && path == "" {
				continue
			}
			return cfg, fmt.Errorf("read config %s: %w", p, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", p, err)
		}
		break
	}
	return cfg, nil
}

func configPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".config", "mendeleev", "config.yaml"),
		filepath.Join(home, ".mendeleev.yaml"),
	}
}
