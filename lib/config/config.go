// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the variable [Load] reads the config path
// from.
const EnvironmentVariable = "EXTEVENTS_CONFIG"

// Config is the master configuration for extevents.
type Config struct {
	// Parser configures room event parsing.
	Parser ParserConfig `yaml:"parser"`

	// Extensible configures partial event interpretation.
	Extensible ExtensibleConfig `yaml:"extensible"`

	// Output configures how commands print results.
	Output OutputConfig `yaml:"output"`

	// LogLevel is one of debug, info, warn, or error.
	// Default: warn
	LogLevel string `yaml:"log_level"`
}

// ParserConfig configures room event parsing.
type ParserConfig struct {
	// UnknownOrder lists detector names in the order they are tried
	// for events of unknown type. Empty keeps the built-in order.
	UnknownOrder []string `yaml:"unknown_order"`
}

// ExtensibleConfig configures partial event interpretation.
type ExtensibleConfig struct {
	// UnknownOrder lists event type names whose interpreters are tried
	// for events of unknown type. Empty keeps the built-in order.
	UnknownOrder []string `yaml:"unknown_order"`
}

// OutputConfig configures command output.
type OutputConfig struct {
	// Format is one of text, json, or cbor.
	// Default: text
	Format string `yaml:"format"`

	// Color is one of auto, always, or never. Auto colors only when
	// standard output is a terminal.
	// Default: auto
	Color string `yaml:"color"`
}

// Valid values for the enumerated fields.
var (
	OutputFormats = []string{"text", "json", "cbor"}
	ColorModes    = []string{"auto", "always", "never"}
	LogLevels     = []string{"debug", "info", "warn", "error"}
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "text",
			Color:  "auto",
		},
		LogLevel: "warn",
	}
}

// Load loads configuration from the file named by EXTEVENTS_CONFIG.
// There is no fallback: if the variable is not set, Load fails.
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your extevents.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, on top of
// [Default].
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration on top of [Default] and validates
// the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(OutputFormats, c.Output.Format) {
		errs = append(errs, fmt.Errorf("output.format must be one of: %v", OutputFormats))
	}
	if !slices.Contains(ColorModes, c.Output.Color) {
		errs = append(errs, fmt.Errorf("output.color must be one of: %v", ColorModes))
	}
	if !slices.Contains(LogLevels, strings.ToLower(c.LogLevel)) {
		errs = append(errs, fmt.Errorf("log_level must be one of: %v", LogLevels))
	}
	for i, name := range c.Parser.UnknownOrder {
		if name == "" {
			errs = append(errs, fmt.Errorf("parser.unknown_order[%d] is empty", i))
		}
	}
	for i, name := range c.Extensible.UnknownOrder {
		if name == "" {
			errs = append(errs, fmt.Errorf("extensible.unknown_order[%d] is empty", i))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SlogLevel returns LogLevel as a slog level. Validate guarantees the
// value parses; an invalid level reads as warn.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}
