// Package config loads the settings of a scenario run from defaults, an optional YAML file and
// APITEST_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	EnvPrefix = "APITEST_"

	// DefaultFile is read if it exists and no other file was named.
	DefaultFile = "apitest.yaml"

	DefaultBaseURL        = "http://localhost:8080/api"
	DefaultTranscriptName = "result.log"
)

type Config struct {
	BaseURL      string        `koanf:"base_url"`
	Transcript   string        `koanf:"transcript"`
	Timeout      time.Duration `koanf:"timeout"`
	RateLimit    float64       `koanf:"rate_limit"`
	AwaitTimeout time.Duration `koanf:"await_timeout"`
	Trace        bool          `koanf:"trace"`
	Debug        bool          `koanf:"debug"`
}

var defaults = map[string]interface{}{
	"base_url":      DefaultBaseURL,
	"transcript":    "",
	"timeout":       "10s",
	"rate_limit":    0,
	"await_timeout": "0s",
	"trace":         false,
	"debug":         false,
}

// Load builds a Config. If path is empty, DefaultFile is used when present; a path that was
// named explicitly must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, err
		}
	}

	filePath, required := path, true
	if filePath == "" {
		filePath, required = DefaultFile, false
	}
	if err := k.Load(file.Provider(filePath), yaml.Parser()); err != nil {
		if required || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("cannot read config file %s: %w", filePath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Transcript == "" {
		cfg.Transcript = DefaultTranscriptPath()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultTranscriptPath returns result.log in the directory of the running executable, or in
// the working directory if the executable cannot be located.
func DefaultTranscriptPath() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultTranscriptName
	}
	return filepath.Join(filepath.Dir(exe), DefaultTranscriptName)
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url %q: must be an absolute http or https URL", c.BaseURL)
	}
	if c.Transcript == "" {
		return errors.New("transcript path must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.AwaitTimeout < 0 {
		return fmt.Errorf("await_timeout must not be negative, got %s", c.AwaitTimeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit must not be negative, got %v", c.RateLimit)
	}
	return nil
}
