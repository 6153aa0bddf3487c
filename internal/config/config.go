package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// SourceDir is scanned when no directory argument is given.
	SourceDir string `yaml:"source_dir"`
	// TargetDir is the receiving side of a sync exchange.
	TargetDir string `yaml:"target_dir"`
	// OutputFile overrides the default snapshot output path.
	OutputFile string `yaml:"output_file"`
	// Exclude holds file name patterns to leave out of snapshots.
	// Empty by default: every direct-child file is included.
	Exclude []string `yaml:"exclude"`
	// Workers overrides the hash worker count when greater than zero.
	Workers int `yaml:"workers"`
}

// DefaultDirectory is the fallback scan target when neither an argument nor
// source_dir is given.
func DefaultDirectory() string {
	return filepath.Join(os.TempDir(), "dirsync")
}

func DefaultConfig() *Config {
	return &Config{
		SourceDir: DefaultDirectory(),
		Exclude:   []string{},
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	// Initialize Exclude slice if nil (for empty configs)
	if cfg.Exclude == nil {
		cfg.Exclude = []string{}
	}
	if cfg.SourceDir == "" {
		cfg.SourceDir = DefaultDirectory()
	}

	return &cfg, nil
}
