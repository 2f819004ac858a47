package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the funssa.yaml configuration.
type Config struct {
	// ReturnPrefix seeds the names of generated return values. The pass picks
	// the first variant of it that no name in the function or environment
	// starts with.
	ReturnPrefix string `yaml:"return_prefix,omitempty"`

	// Unroll runs the loop-unrolling pass before SSA conversion.
	Unroll bool `yaml:"unroll,omitempty"`

	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `yaml:"log_level,omitempty"`

	Cache CacheConfig `yaml:"cache,omitempty"`
	Debug DebugConfig `yaml:"debug,omitempty"`
}

// CacheConfig controls the on-disk transform cache.
type CacheConfig struct {
	// Path of the sqlite database. Relative paths are resolved against the
	// directory holding funssa.yaml.
	Path string `yaml:"path,omitempty"`

	// MaxEntries bounds the cache; the least recently used rows are pruned
	// after each store. Zero means DefaultCacheMaxEntries.
	MaxEntries int `yaml:"max_entries,omitempty"`

	Disabled bool `yaml:"disabled,omitempty"`
}

// DebugConfig mirrors the debug dumps a rewrite can record between stages.
type DebugConfig struct {
	DumpSource bool `yaml:"dump_source,omitempty"`
	DumpTree   bool `yaml:"dump_tree,omitempty"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults("")
	return cfg
}

// LoadConfig reads and parses a funssa.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses funssa.yaml content from bytes.
// The path argument is used for error messages and to resolve the cache path.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults(filepath.Dir(path))
	return &cfg, nil
}

// FindConfig searches for funssa.yaml starting from dir and walking up
// to parent directories. Returns "" and a nil error when none exists.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

var validLogLevels = map[string]bool{
	"": true, "trace": true, "debug": true, "info": true,
	"warn": true, "warning": true, "error": true, "fatal": true, "panic": true,
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	if c.ReturnPrefix != "" && !IsIdentifier(c.ReturnPrefix) {
		return fmt.Errorf("%s: return_prefix %q is not a valid identifier", path, c.ReturnPrefix)
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("%s: unknown log_level %q", path, c.LogLevel)
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("%s: cache.max_entries must not be negative", path)
	}
	return nil
}

func (c *Config) setDefaults(baseDir string) {
	if c.ReturnPrefix == "" {
		c.ReturnPrefix = DefaultReturnPrefix
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.Cache.MaxEntries == 0 {
		c.Cache.MaxEntries = DefaultCacheMaxEntries
	}
	if c.Cache.Path == "" {
		c.Cache.Path = filepath.Join(baseDir, DefaultCacheDir, DefaultCacheFile)
	} else if !filepath.IsAbs(c.Cache.Path) && baseDir != "" {
		c.Cache.Path = filepath.Join(baseDir, c.Cache.Path)
	}
}

// IsIdentifier reports whether s is a valid name in the source language.
func IsIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return s != ""
}
