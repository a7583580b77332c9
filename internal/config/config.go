// Package config loads the YAML configuration for the dump tool.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/barnettlynn/mfclassic/pkg/hexutil"
)

type Config struct {
	Reader ReaderConfig `yaml:"reader"`
	Keys   KeysConfig   `yaml:"keys"`
	Dump   DumpConfig   `yaml:"dump"`
}

type ReaderConfig struct {
	Index   *int `yaml:"index"`
	KeySlot *int `yaml:"key_slot"`
}

type KeysConfig struct {
	Known   []string `yaml:"known"`
	KeyFile string   `yaml:"key_file"`
}

type DumpConfig struct {
	OutputDir   string `yaml:"output_dir"`
	HaltOnError *bool  `yaml:"halt_on_error"`
}

func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	cfg.resolvePaths(path)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Reader.Index == nil {
		return fmt.Errorf("config.reader.index is required")
	}
	if *c.Reader.Index < 0 {
		return fmt.Errorf("config.reader.index must be >= 0")
	}
	if c.Reader.KeySlot == nil {
		return fmt.Errorf("config.reader.key_slot is required")
	}
	if *c.Reader.KeySlot < 0 || *c.Reader.KeySlot > 1 {
		return fmt.Errorf("config.reader.key_slot must be 0 or 1")
	}

	if len(c.Keys.Known) == 0 && strings.TrimSpace(c.Keys.KeyFile) == "" {
		return fmt.Errorf("config.keys needs at least one of known or key_file")
	}
	for _, k := range c.Keys.Known {
		if _, err := hexutil.ParseKey(k); err != nil {
			return fmt.Errorf("config.keys.known: %w", err)
		}
	}
	if c.Keys.KeyFile != "" {
		if err := validateReadableFile(c.Keys.KeyFile, "config.keys.key_file"); err != nil {
			return err
		}
	}

	if strings.TrimSpace(c.Dump.OutputDir) == "" {
		return fmt.Errorf("config.dump.output_dir is required")
	}
	if c.Dump.HaltOnError == nil {
		return fmt.Errorf("config.dump.halt_on_error is required")
	}

	return nil
}

// KnownKeys returns the parsed inline key list plus, when configured,
// the keys read from key_file (one 12 digit hex key per line, blank
// lines and # comments ignored). Duplicates are dropped.
func (c *Config) KnownKeys() ([]uint64, error) {
	seen := make(map[uint64]bool)
	var keys []uint64
	add := func(k uint64) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	for _, s := range c.Keys.Known {
		k, err := hexutil.ParseKey(s)
		if err != nil {
			return nil, err
		}
		add(k)
	}

	if c.Keys.KeyFile != "" {
		content, err := os.ReadFile(c.Keys.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("read key file: %w", err)
		}
		for i, line := range strings.Split(string(content), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			k, err := hexutil.ParseKey(line)
			if err != nil {
				return nil, fmt.Errorf("key file line %d: %w", i+1, err)
			}
			add(k)
		}
	}

	return keys, nil
}

func (c *Config) resolvePaths(configPath string) {
	configDir := filepath.Dir(configPath)
	c.Keys.KeyFile = resolvePath(configDir, c.Keys.KeyFile)
	c.Dump.OutputDir = resolvePath(configDir, c.Dump.OutputDir)
}

func resolvePath(baseDir, path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || filepath.IsAbs(trimmed) {
		return trimmed
	}
	return filepath.Clean(filepath.Join(baseDir, trimmed))
}

func validateReadableFile(path string, field string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s must point to a file, got directory", field)
	}
	return nil
}
