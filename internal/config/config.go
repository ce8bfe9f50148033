// Package config contains the loader and typed model for attrorder.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/drone/envsubst"
	"gopkg.in/yaml.v3"

	"github.com/codex-k8s/attrorder/internal/env"
)

const (
	// DefaultScene is the scene file used when none is configured.
	DefaultScene = "scene.yaml"
	// DefaultStrategy lets the engine pick the move backend.
	DefaultStrategy = "auto"
	// DefaultValidation checks only the first selected attribute.
	DefaultValidation = "first"
)

// Config is the parsed attrorder.yaml.
type Config struct {
	// Scene is the scene file path. Relative paths are resolved against the config file directory.
	Scene string `yaml:"scene,omitempty"`
	// EnvFiles lists .env files loaded before ${VAR} expansion.
	EnvFiles []string `yaml:"envFiles,omitempty"`
	// LogLevel is the default log level (debug, info, warn, error).
	LogLevel string `yaml:"logLevel,omitempty"`
	// Strategy selects the move backend (auto, shuffle, native).
	Strategy string `yaml:"strategy,omitempty"`
	// Validation selects which selected attributes are checked (first, all).
	Validation string `yaml:"validation,omitempty"`
	// Quiet suppresses host command echo while attributes move.
	Quiet *bool `yaml:"quiet,omitempty"`
}

// LoadOptions describes how the config file is located and interpolated.
type LoadOptions struct {
	// Required makes a missing config file an error.
	Required bool
	// Vars are merged over the process environment for ${VAR} expansion.
	Vars env.Vars
}

// Default returns the configuration used when no file is present.
func Default() Config {
	quiet := true
	return Config{
		Scene:      DefaultScene,
		LogLevel:   "info",
		Strategy:   DefaultStrategy,
		Validation: DefaultValidation,
		Quiet:      &quiet,
	}
}

// QuietEnabled reports the effective quiet flag.
func (c Config) QuietEnabled() bool {
	return c.Quiet == nil || *c.Quiet
}

// rawHeader extracts fields needed before interpolation.
type rawHeader struct {
	EnvFiles []string `yaml:"envFiles"`
}

// Load reads attrorder.yaml, loads its envFiles, expands ${VAR} references and
// returns the config together with the variables used for expansion.
// A missing file yields Default() unless opts.Required is set.
func Load(path string, opts LoadOptions) (*Config, env.Vars, error) {
	vars := env.Merge(env.FromOS(), opts.Vars)
	cfg := Default()

	if strings.TrimSpace(path) == "" {
		return nil, nil, fmt.Errorf("config path is empty")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve config path: %w", err)
	}

	raw, err := os.ReadFile(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !opts.Required {
			return &cfg, vars, nil
		}
		return nil, nil, fmt.Errorf("read config %q: %w", absPath, err)
	}

	var header rawHeader
	if err := yaml.Unmarshal(raw, &header); err != nil {
		return nil, nil, fmt.Errorf("parse top-level config fields: %w", err)
	}

	baseDir := filepath.Dir(absPath)
	fileVars, err := env.LoadEnvFiles(baseDir, header.EnvFiles, false)
	if err != nil {
		return nil, nil, err
	}
	vars = env.Merge(env.FromOS(), fileVars, opts.Vars)

	expanded, err := envsubst.Eval(string(raw), vars.Lookup)
	if err != nil {
		return nil, nil, fmt.Errorf("expand variables in %q: %w", absPath, err)
	}
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, nil, fmt.Errorf("parse config %q: %w", absPath, err)
	}

	if strings.TrimSpace(cfg.Scene) == "" {
		cfg.Scene = DefaultScene
	}
	if !filepath.IsAbs(cfg.Scene) {
		cfg.Scene = filepath.Join(baseDir, cfg.Scene)
	}
	return &cfg, vars, nil
}
