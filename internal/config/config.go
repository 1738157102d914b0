// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles dtogen project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dacolabs/dtogen/internal/generate"
	"github.com/dacolabs/dtogen/internal/paths"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// FileName is the name of the project configuration file.
const FileName = "dtogen.yaml"

// Defaults for a new project.
const (
	DefaultDefinitions = "database/dto_definitions"
	DefaultOutput      = "app/DTO"
)

// Environment variables that override file settings.
const (
	EnvNamespace   = "DTOGEN_NAMESPACE"
	EnvOutput      = "DTOGEN_OUTPUT"
	EnvDefinitions = "DTOGEN_DEFINITIONS"
	EnvModel       = "DTOGEN_MODEL"
	EnvMaxDepth    = "DTOGEN_MAX_DEPTH"
	EnvWorkers     = "DTOGEN_WORKERS"
)

// Config represents the dtogen.yaml project configuration file.
type Config struct {
	Version     int               `yaml:"version"`
	Definitions string            `yaml:"definitions"`
	Output      string            `yaml:"output"`
	Namespace   string            `yaml:"namespace"`
	Root        string            `yaml:"root,omitempty"`
	Model       string            `yaml:"model,omitempty"`
	MaxDepth    int               `yaml:"max_depth,omitempty"`
	Workers     int               `yaml:"workers,omitempty"`
	Aliases     map[string]string `yaml:"aliases,omitempty"`
	Acronyms    []string          `yaml:"acronyms,omitempty"`
}

// Default returns the configuration written by a fresh init.
func Default() Config {
	return Config{
		Version:     CurrentConfigVersion,
		Definitions: DefaultDefinitions,
		Output:      DefaultOutput,
		Namespace:   generate.DefaultNamespace,
	}
}

// Load reads a Config from a file path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// ApplyEnv overrides settings from environment variables looked up with getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvNamespace); v != "" {
		c.Namespace = v
	}
	if v := getenv(EnvOutput); v != "" {
		c.Output = v
	}
	if v := getenv(EnvDefinitions); v != "" {
		c.Definitions = v
	}
	if v := getenv(EnvModel); v != "" {
		c.Model = v
	}
	for _, e := range []struct {
		key string
		dst *int
	}{{EnvMaxDepth, &c.MaxDepth}, {EnvWorkers, &c.Workers}} {
		v := getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %q is not an integer", e.key, v)
		}
		*e.dst = n
	}
	return nil
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	if strings.TrimSpace(c.Definitions) == "" {
		return errors.New("definitions directory is required")
	}
	if strings.TrimSpace(c.Output) == "" {
		return errors.New("output directory is required")
	}
	if c.Namespace != "" && !paths.IsValidNamespace(paths.Normalize(paths.Canonical(c.Namespace))) {
		return fmt.Errorf("namespace %q is not valid", c.Namespace)
	}
	if c.Model != "" && !paths.IsValidNamespace(paths.Normalize(paths.Canonical(c.Model))) {
		return fmt.Errorf("model %q is not a valid class name", c.Model)
	}
	if c.MaxDepth < 0 {
		return errors.New("max_depth cannot be negative")
	}
	if c.Workers < 0 {
		return errors.New("workers cannot be negative")
	}
	return nil
}

// Paths returns the namespace resolver configuration.
func (c *Config) Paths() paths.Config {
	return paths.Config{
		BaseNamespace: c.Namespace,
		OutputDir:     c.Output,
		ProjectRoot:   c.Root,
		Aliases:       c.Aliases,
		Acronyms:      c.Acronyms,
	}
}

// Generator returns the generator configuration.
func (c *Config) Generator() generate.Config {
	return generate.Config{
		BaseNamespace: c.Namespace,
		DefaultModel:  c.Model,
		MaxDepth:      c.MaxDepth,
	}
}
