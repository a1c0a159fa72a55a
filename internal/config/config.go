// Package config loads the ragdemo YAML configuration and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no config path is given and the file exists.
const DefaultPath = "ragdemo.yaml"

// Resolver modes.
const (
	ModeLocal  = "local"
	ModeRemote = "remote"
)

// Config describes the ragdemo YAML configuration.
type Config struct {
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`
	Resolver struct {
		Mode      string `yaml:"mode"`
		Endpoint  string `yaml:"endpoint"`
		K         int    `yaml:"k"`
		DelayMS   *int   `yaml:"delay_ms"`
		TimeoutMS int    `yaml:"timeout_ms"`
	} `yaml:"resolver"`
	Content struct {
		Path  string `yaml:"path"`
		Watch *bool  `yaml:"watch"`
	} `yaml:"content"`
	Slides struct {
		Initial int `yaml:"initial"`
	} `yaml:"slides"`
}

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// envFile is loaded into the environment before overrides are applied.
var envFile = ".env"

// Load reads the config file, applies defaults and RAGDEMO_* overrides, and validates.
// An empty path reads DefaultPath when present; otherwise defaults are used.
func Load(path string) (Config, error) {
	var cfg Config

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("read env file: %w", err)
	}

	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("RAGDEMO_LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("RAGDEMO_RESOLVER_MODE"); v != "" {
		cfg.Resolver.Mode = v
	}
	if v := os.Getenv("RAGDEMO_RESOLVER_ENDPOINT"); v != "" {
		cfg.Resolver.Endpoint = v
	}
	if v := os.Getenv("RAGDEMO_CONTENT_PATH"); v != "" {
		cfg.Content.Path = v
	}
}

// Normalize fills defaults for unset fields.
func Normalize(cfg *Config) {
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8000"
	}
	cfg.Resolver.Mode = strings.ToLower(strings.TrimSpace(cfg.Resolver.Mode))
	if cfg.Resolver.Mode == "" {
		cfg.Resolver.Mode = ModeLocal
	}
	if cfg.Resolver.K == 0 {
		cfg.Resolver.K = 3
	}
	if cfg.Resolver.DelayMS == nil {
		delay := 1500
		cfg.Resolver.DelayMS = &delay
	}
	if cfg.Resolver.TimeoutMS == 0 {
		cfg.Resolver.TimeoutMS = 30000
	}
	if cfg.Content.Watch == nil {
		watch := true
		cfg.Content.Watch = &watch
	}
	if cfg.Slides.Initial == 0 {
		cfg.Slides.Initial = 1
	}
}

// Validate checks a normalized config for correctness.
func Validate(cfg *Config) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	switch cfg.Resolver.Mode {
	case ModeLocal:
	case ModeRemote:
		if strings.TrimSpace(cfg.Resolver.Endpoint) == "" {
			add("resolver.endpoint", "is required")
		}
	default:
		add("resolver.mode", fmt.Sprintf("unsupported mode %q (want local or remote)", cfg.Resolver.Mode))
	}
	if cfg.Resolver.K < 0 {
		add("resolver.k", "must be positive")
	}
	if cfg.Resolver.DelayMS != nil && *cfg.Resolver.DelayMS < 0 {
		add("resolver.delay_ms", "must not be negative")
	}
	if cfg.Resolver.TimeoutMS < 0 {
		add("resolver.timeout_ms", "must not be negative")
	}
	if cfg.Slides.Initial < 0 {
		add("slides.initial", "must be positive")
	}

	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: issues}
}

// Delay is the local resolver's artificial latency.
func (c Config) Delay() time.Duration {
	if c.Resolver.DelayMS == nil {
		return 0
	}
	return time.Duration(*c.Resolver.DelayMS) * time.Millisecond
}

// Timeout is the remote resolver's request timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Resolver.TimeoutMS) * time.Millisecond
}

// WatchContent reports whether the content file is hot reloaded.
func (c Config) WatchContent() bool {
	return c.Content.Watch == nil || *c.Content.Watch
}
