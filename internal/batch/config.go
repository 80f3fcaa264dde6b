// Package batch runs the outline pipeline over directories of PDF files
// with a bounded worker pool, per-file failure isolation, and an optional
// result cache.
package batch

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config controls a batch run.
type Config struct {
	// Workers is the number of files processed concurrently.
	Workers int `yaml:"workers"`

	// OutputDir receives one <stem>.json per input file. Empty means next
	// to each input.
	OutputDir string `yaml:"output_dir"`

	// CachePath is the SQLite result cache location. Empty disables caching.
	CachePath string `yaml:"cache_path"`

	// Indent controls pretty-printing of the JSON output.
	Indent bool `yaml:"indent"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Workers: runtime.NumCPU(),
		Indent:  true,
	}
}

// LoadConfig reads a YAML configuration file and applies defaults and
// environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// applyEnv lets OUTLINER_* variables override file values, so the same
// config file works across environments.
func (c *Config) applyEnv() {
	if v := os.Getenv("OUTLINER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Workers = n
		}
	}
	if v := os.Getenv("OUTLINER_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("OUTLINER_CACHE"); v != "" {
		c.CachePath = v
	}
}
