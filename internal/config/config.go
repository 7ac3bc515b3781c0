// Package config provides unified configuration loading for jiggle.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nvandessel/jiggle/internal/constants"
	"github.com/nvandessel/jiggle/internal/pathutil"
	"gopkg.in/yaml.v3"
)

// JiggleConfig contains all jiggle configuration settings.
type JiggleConfig struct {
	// Chain contains defaults for chain runs.
	Chain ChainConfig `json:"chain" yaml:"chain"`

	// Logging contains settings for operational and decision logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// ChainConfig configures how long a chain runs and what it keeps.
type ChainConfig struct {
	// Steps is the number of transitions after initialization.
	Steps int `json:"steps" yaml:"steps"`

	// BurnIn is the number of leading transitions left out of summaries.
	BurnIn int `json:"burn_in" yaml:"burn_in"`

	// Thin keeps every n-th transition after burn-in.
	Thin int `json:"thin" yaml:"thin"`

	// Seed seeds the chain's random source. 0 picks a random seed per run.
	Seed uint64 `json:"seed" yaml:"seed"`

	// ProposalScale is the standard deviation of the random-walk step.
	ProposalScale float64 `json:"proposal_scale" yaml:"proposal_scale"`
}

// LoggingConfig configures jiggle's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables decision logging to .jiggle/decisions.jsonl.
	// "trace" additionally logs every proposal.
	Level string `json:"level" yaml:"level"`

	// Format is "text" (default) or "json".
	Format string `json:"format" yaml:"format"`
}

// Default returns a JiggleConfig with sensible defaults.
func Default() *JiggleConfig {
	return &JiggleConfig{
		Chain: ChainConfig{
			Steps:         constants.DefaultSteps,
			BurnIn:        constants.DefaultBurnIn,
			Thin:          constants.DefaultThin,
			Seed:          constants.DefaultSeed,
			ProposalScale: constants.DefaultProposalScale,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Path returns the config file location for a scope. Local config lives under
// projectRoot; global config under the user's home directory.
func Path(scope constants.Scope, projectRoot string) (string, error) {
	switch scope {
	case constants.ScopeLocal:
		return filepath.Join(projectRoot, constants.ConfigDirName, constants.ConfigFileName), nil
	case constants.ScopeGlobal:
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		return filepath.Join(homeDir, constants.ConfigDirName, constants.ConfigFileName), nil
	}
	return "", fmt.Errorf("config path needs local or global scope, got %q", scope)
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.jiggle/config.yaml -> <projectRoot>/.jiggle/config.yaml -> environment variables
func Load(projectRoot string) (*JiggleConfig, error) {
	config := Default()

	for _, scope := range []constants.Scope{constants.ScopeGlobal, constants.ScopeLocal} {
		path, err := Path(scope, projectRoot)
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		if err := loadInto(config, path); err != nil {
			return nil, fmt.Errorf("loading %s config file %s: %w", scope, pathutil.RedactPath(path), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file on top of the defaults.
func LoadFromFile(path string) (*JiggleConfig, error) {
	config := Default()
	if err := loadInto(config, path); err != nil {
		return nil, err
	}
	return config, nil
}

// loadInto overlays the YAML at path onto config. Keys absent from the file
// keep their current values.
func loadInto(config *JiggleConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), config); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// Save writes the configuration as YAML to path, creating its directory.
func Save(config *JiggleConfig, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks that the configuration is valid.
func (c *JiggleConfig) Validate() error {
	if c.Chain.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", c.Chain.Steps)
	}
	if c.Chain.BurnIn < 0 {
		return fmt.Errorf("burn_in must be non-negative, got %d", c.Chain.BurnIn)
	}
	if c.Chain.Thin < 1 {
		return fmt.Errorf("thin must be at least 1, got %d", c.Chain.Thin)
	}
	if !(c.Chain.ProposalScale > 0) || math.IsInf(c.Chain.ProposalScale, 0) {
		return fmt.Errorf("proposal_scale must be positive and finite, got %v", c.Chain.ProposalScale)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if c.Logging.Format != "" && !validFormats[c.Logging.Format] {
		return fmt.Errorf("invalid log format: %s (valid: text, json, or empty for default)", c.Logging.Format)
	}

	return nil
}

// Keys lists the dot-notation keys accepted by Get and Set.
func Keys() []string {
	return []string{
		"chain.steps",
		"chain.burn_in",
		"chain.thin",
		"chain.seed",
		"chain.proposal_scale",
		"logging.level",
		"logging.format",
	}
}

// Get retrieves a configuration value by dot-notation key.
func (c *JiggleConfig) Get(key string) (any, bool) {
	switch key {
	case "chain.steps":
		return c.Chain.Steps, true
	case "chain.burn_in":
		return c.Chain.BurnIn, true
	case "chain.thin":
		return c.Chain.Thin, true
	case "chain.seed":
		return c.Chain.Seed, true
	case "chain.proposal_scale":
		return c.Chain.ProposalScale, true
	case "logging.level":
		return c.Logging.Level, true
	case "logging.format":
		return c.Logging.Format, true
	default:
		return nil, false
	}
}

// Set sets a configuration value by dot-notation key and re-validates.
func (c *JiggleConfig) Set(key, value string) error {
	next := *c
	switch key {
	case "chain.steps", "chain.burn_in", "chain.thin":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %s", key, value)
		}
		switch key {
		case "chain.steps":
			next.Chain.Steps = n
		case "chain.burn_in":
			next.Chain.BurnIn = n
		default:
			next.Chain.Thin = n
		}
	case "chain.seed":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seed: %s", value)
		}
		next.Chain.Seed = n
	case "chain.proposal_scale":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid proposal scale: %s", value)
		}
		next.Chain.ProposalScale = f
	case "logging.level":
		next.Logging.Level = strings.ToLower(value)
	case "logging.format":
		next.Logging.Format = strings.ToLower(value)
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *JiggleConfig) {
	if v := os.Getenv("JIGGLE_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Chain.Steps = n
		}
	}
	if v := os.Getenv("JIGGLE_BURN_IN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Chain.BurnIn = n
		}
	}
	if v := os.Getenv("JIGGLE_THIN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Chain.Thin = n
		}
	}
	if v := os.Getenv("JIGGLE_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Chain.Seed = n
		}
	}
	if v := os.Getenv("JIGGLE_PROPOSAL_SCALE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Chain.ProposalScale = f
		}
	}

	if v := os.Getenv("JIGGLE_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("JIGGLE_LOG_FORMAT"); v != "" {
		config.Logging.Format = v
	}
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, os.Getenv)
}
