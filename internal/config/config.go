// Package config provides configuration management for aoutil.
// Configuration is loaded from (highest to lowest priority):
// 1. Command-line flags
// 2. Environment variables (AO_*)
// 3. Project config (.agent-orchestrator/config.yaml in cwd, or AO_CONFIG)
// 4. Home config (~/.agent-orchestrator/config.yaml)
// 5. Defaults
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all aoutil configuration.
type Config struct {
	// Output controls the default output format (table, json, yaml).
	Output string `yaml:"output" json:"output"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose" json:"verbose"`

	// Activity settings
	Activity ActivityConfig `yaml:"activity" json:"activity"`

	// Terminal settings
	Terminal TerminalConfig `yaml:"terminal" json:"terminal"`
}

// ActivityConfig holds session-log scanning settings.
type ActivityConfig struct {
	// IdleThreshold is a Go duration; logs unmodified for longer are idle.
	// Default: 5m
	IdleThreshold string `yaml:"idle_threshold" json:"idle_threshold"`

	// Concurrency is the number of logs read in parallel (0 = NumCPU).
	Concurrency int `yaml:"concurrency" json:"concurrency"`

	// LogGlob selects log files when a directory is scanned.
	// Default: *.jsonl
	LogGlob string `yaml:"log_glob" json:"log_glob"`
}

// TerminalConfig holds settings for generated terminal scripts.
type TerminalConfig struct {
	// App is the terminal application (iTerm2, Terminal).
	App string `yaml:"app" json:"app"`
}

// Default config values (used in resolution and validation).
const (
	defaultOutput        = "table"
	defaultIdleThreshold = "5m"
	defaultLogGlob       = "*.jsonl"
	defaultTerminalApp   = "iTerm2"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output:  defaultOutput,
		Verbose: false,
		Activity: ActivityConfig{
			IdleThreshold: defaultIdleThreshold,
			Concurrency:   0,
			LogGlob:       defaultLogGlob,
		},
		Terminal: TerminalConfig{
			App: defaultTerminalApp,
		},
	}
}

// IdleThreshold returns the parsed idle threshold, falling back to the
// default when the configured value does not parse.
func (c *Config) IdleThreshold() time.Duration {
	if d, err := time.ParseDuration(c.Activity.IdleThreshold); err == nil {
		return d
	}
	d, _ := time.ParseDuration(defaultIdleThreshold)
	return d
}

// Load loads configuration with proper precedence.
// Priority: flags > env > project > home > defaults
func Load(flagOverrides *Config) (*Config, error) {
	cfg := Default()

	// Load home config
	homeConfig, _ := loadFromPath(homeConfigPath())
	if homeConfig != nil {
		cfg = merge(cfg, homeConfig)
	}

	// Load project config
	projectConfig, _ := loadFromPath(projectConfigPath())
	if projectConfig != nil {
		cfg = merge(cfg, projectConfig)
	}

	// Apply environment variables
	cfg = applyEnv(cfg)

	// Apply flag overrides
	if flagOverrides != nil {
		cfg = merge(cfg, flagOverrides)
	}

	return cfg, nil
}

// HomeConfigPath returns the home config path.
func HomeConfigPath() string {
	return homeConfigPath()
}

// ProjectConfigPath returns the project config path, honoring AO_CONFIG.
func ProjectConfigPath() string {
	return projectConfigPath()
}

func homeConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".agent-orchestrator", "config.yaml")
}

func projectConfigPath() string {
	if override := strings.TrimSpace(os.Getenv("AO_CONFIG")); override != "" {
		return override
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".agent-orchestrator", "config.yaml")
}

// loadFromPath loads config from a YAML file.
func loadFromPath(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv applies environment variable overrides.
func applyEnv(cfg *Config) *Config {
	if v := os.Getenv("AO_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v, _ := getEnvBool("AO_VERBOSE"); v {
		cfg.Verbose = true
	}
	if v := os.Getenv("AO_IDLE_THRESHOLD"); v != "" {
		cfg.Activity.IdleThreshold = v
	}
	if v := os.Getenv("AO_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Activity.Concurrency = n
		}
	}
	if v := os.Getenv("AO_LOG_GLOB"); v != "" {
		cfg.Activity.LogGlob = v
	}
	if v := os.Getenv("AO_TERMINAL_APP"); v != "" {
		cfg.Terminal.App = v
	}
	return cfg
}

// mergeStr overwrites dst with src when src is non-empty.
func mergeStr(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// mergeInt overwrites dst with src when src is non-zero.
func mergeInt(dst *int, src int) {
	if src != 0 {
		*dst = src
	}
}

// merge merges src into dst, with src values taking precedence.
// Booleans only ever switch on.
func merge(dst, src *Config) *Config {
	mergeStr(&dst.Output, src.Output)
	if src.Verbose {
		dst.Verbose = true
	}

	mergeStr(&dst.Activity.IdleThreshold, src.Activity.IdleThreshold)
	mergeInt(&dst.Activity.Concurrency, src.Activity.Concurrency)
	mergeStr(&dst.Activity.LogGlob, src.Activity.LogGlob)
	mergeStr(&dst.Terminal.App, src.Terminal.App)

	return dst
}

// Source represents where a config value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceHome    Source = "~/.agent-orchestrator/config.yaml"
	SourceProject Source = ".agent-orchestrator/config.yaml"
	SourceEnv     Source = "environment"
	SourceFlag    Source = "flag"
)

// getEnvBool returns the boolean value and whether it was truthy.
func getEnvBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "true" || v == "1" {
		return true, true
	}
	return false, false
}

// resolveStringField resolves a string through the precedence chain.
// Returns the resolved value and its source.
func resolveStringField(home, project, env, flag, def string) Resolved {
	result := Resolved{Value: def, Source: SourceDefault}
	if home != "" {
		result = Resolved{Value: home, Source: SourceHome}
	}
	if project != "" {
		result = Resolved{Value: project, Source: SourceProject}
	}
	if env != "" {
		result = Resolved{Value: env, Source: SourceEnv}
	}
	if flag != "" {
		result = Resolved{Value: flag, Source: SourceFlag}
	}
	return result
}

// ResolvedConfig shows config values with their sources.
type ResolvedConfig struct {
	Output        Resolved `json:"output" yaml:"output"`
	Verbose       Resolved `json:"verbose" yaml:"verbose"`
	IdleThreshold Resolved `json:"idle_threshold" yaml:"idle_threshold"`
	Concurrency   Resolved `json:"concurrency" yaml:"concurrency"`
	LogGlob       Resolved `json:"log_glob" yaml:"log_glob"`
	TerminalApp   Resolved `json:"terminal_app" yaml:"terminal_app"`
}

// Resolved is a single config value and the layer it came from.
type Resolved struct {
	Value  any    `json:"value" yaml:"value"`
	Source Source `json:"source" yaml:"source"`
}

// Resolve returns configuration with source tracking.
// Uses precedence chain: flags > env > project > home > defaults.
func Resolve(flagOutput string, flagVerbose bool) *ResolvedConfig {
	home, _ := loadFromPath(homeConfigPath())
	project, _ := loadFromPath(projectConfigPath())
	if home == nil {
		home = &Config{}
	}
	if project == nil {
		project = &Config{}
	}

	rc := &ResolvedConfig{
		Output: resolveStringField(home.Output, project.Output,
			os.Getenv("AO_OUTPUT"), flagOutput, defaultOutput),
		Verbose: Resolved{Value: false, Source: SourceDefault},
		IdleThreshold: resolveStringField(home.Activity.IdleThreshold, project.Activity.IdleThreshold,
			os.Getenv("AO_IDLE_THRESHOLD"), "", defaultIdleThreshold),
		Concurrency: Resolved{Value: 0, Source: SourceDefault},
		LogGlob: resolveStringField(home.Activity.LogGlob, project.Activity.LogGlob,
			os.Getenv("AO_LOG_GLOB"), "", defaultLogGlob),
		TerminalApp: resolveStringField(home.Terminal.App, project.Terminal.App,
			os.Getenv("AO_TERMINAL_APP"), "", defaultTerminalApp),
	}

	// Verbose has OR semantics through the chain.
	if home.Verbose {
		rc.Verbose = Resolved{Value: true, Source: SourceHome}
	}
	if project.Verbose {
		rc.Verbose = Resolved{Value: true, Source: SourceProject}
	}
	if v, _ := getEnvBool("AO_VERBOSE"); v {
		rc.Verbose = Resolved{Value: true, Source: SourceEnv}
	}
	if flagVerbose {
		rc.Verbose = Resolved{Value: true, Source: SourceFlag}
	}

	if home.Activity.Concurrency != 0 {
		rc.Concurrency = Resolved{Value: home.Activity.Concurrency, Source: SourceHome}
	}
	if project.Activity.Concurrency != 0 {
		rc.Concurrency = Resolved{Value: project.Activity.Concurrency, Source: SourceProject}
	}
	if v := os.Getenv("AO_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			rc.Concurrency = Resolved{Value: n, Source: SourceEnv}
		}
	}

	return rc
}
