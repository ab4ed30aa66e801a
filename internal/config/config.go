// Package config loads the optional xmd.yaml configuration file
// (SPEC_FULL.md §5.3) and turns it into constructor arguments for the
// capability layer's default implementations, rather than letting those
// settings leak into global state (spec.md §9's "global current file
// path" redesign note).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/akaoio/xmd/eval"
)

// Config is the shape of xmd.yaml: search paths for module imports,
// a shell-command allowlist, a shell timeout, and the evaluator's
// nesting/iteration ceilings (SPEC_FULL.md §7 supplement #4 — the
// original's hardcoded constants, exposed here as overridable config).
type Config struct {
	ModuleSearchPaths []string `yaml:"module_search_paths"`
	SandboxAllow      []string `yaml:"sandbox_allow"`
	ShellTimeout      string   `yaml:"shell_timeout"`
	Limits            Limits   `yaml:"limits"`
}

// Limits mirrors eval.Limits in YAML-friendly field names; zero values
// fall back to eval.DefaultLimits() (SPEC_FULL.md §7 supplement #4).
type Limits struct {
	MaxIfDepth         int `yaml:"max_if_depth"`
	MaxLoopDepth       int `yaml:"max_loop_depth"`
	MaxWhileIterations int `yaml:"max_while_iterations"`
}

// Default returns the configuration used when no xmd.yaml is present:
// an unrestricted sandbox, no extra module search paths, and the
// original implementation's default nesting/iteration ceilings.
func Default() *Config {
	d := eval.DefaultLimits()
	return &Config{
		Limits: Limits{
			MaxIfDepth:         d.MaxIfDepth,
			MaxLoopDepth:       d.MaxLoopDepth,
			MaxWhileIterations: d.MaxWhileIterations,
		},
	}
}

// Load reads and parses path, returning Default() unchanged if the file
// does not exist (xmd.yaml is optional, per SPEC_FULL.md §5.3).
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	d := eval.DefaultLimits()
	if cfg.Limits.MaxIfDepth == 0 {
		cfg.Limits.MaxIfDepth = d.MaxIfDepth
	}
	if cfg.Limits.MaxLoopDepth == 0 {
		cfg.Limits.MaxLoopDepth = d.MaxLoopDepth
	}
	if cfg.Limits.MaxWhileIterations == 0 {
		cfg.Limits.MaxWhileIterations = d.MaxWhileIterations
	}
	return cfg, nil
}

// EvalLimits converts the config's Limits into eval.Limits.
func (c *Config) EvalLimits() eval.Limits {
	return eval.Limits{
		MaxIfDepth:         c.Limits.MaxIfDepth,
		MaxLoopDepth:       c.Limits.MaxLoopDepth,
		MaxWhileIterations: c.Limits.MaxWhileIterations,
	}
}

// ShellTimeoutDuration parses ShellTimeout, defaulting to 10 seconds on
// an empty or unparseable value rather than failing config load over a
// secondary setting.
func (c *Config) ShellTimeoutDuration() time.Duration {
	if c.ShellTimeout == "" {
		return 10 * time.Second
	}
	d, err := time.ParseDuration(c.ShellTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}
