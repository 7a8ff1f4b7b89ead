package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"launchstate/internal/launch"
)

const (
	defaultRequestTimeout  = 2 * time.Second
	defaultShutdownTimeout = 3 * time.Second

	EnvRequestTimeout  = "LAUNCHSTATE_REQUEST_TIMEOUT"
	EnvShutdownTimeout = "LAUNCHSTATE_SHUTDOWN_TIMEOUT"
	EnvLaunchOptions   = "LAUNCHSTATE_LAUNCH_OPTIONS"
)

// Config aggregates daemon tunables and the options the process was launched with.
type Config struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	// LaunchOptions is nil when the process was started without launch data.
	LaunchOptions launch.Options
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RequestTimeout:  defaultRequestTimeout,
		ShutdownTimeout: defaultShutdownTimeout,
	}
}

// Load builds a Config from an optional JSON file path plus environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		if fileCfg.RequestTimeout != 0 {
			cfg.RequestTimeout = fileCfg.RequestTimeout
		}
		if fileCfg.ShutdownTimeout != 0 {
			cfg.ShutdownTimeout = fileCfg.ShutdownTimeout
		}
		if fileCfg.LaunchOptions != nil {
			cfg.LaunchOptions = fileCfg.LaunchOptions
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

type envConfig struct {
	RequestTimeout  string `env:"LAUNCHSTATE_REQUEST_TIMEOUT"`
	ShutdownTimeout string `env:"LAUNCHSTATE_SHUTDOWN_TIMEOUT"`
	LaunchOptions   string `env:"LAUNCHSTATE_LAUNCH_OPTIONS"`
}

// applyEnvOverrides logs and skips values it cannot use.
func applyEnvOverrides(cfg *Config) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		log.Printf("parse env: %v", err)
		return
	}

	if v := raw.RequestTimeout; v != "" {
		if dur, err := parsePositiveDuration(v); err == nil {
			cfg.RequestTimeout = dur
		} else {
			log.Printf("invalid %s value %q: %v", EnvRequestTimeout, v, err)
		}
	}
	if v := raw.ShutdownTimeout; v != "" {
		if dur, err := parsePositiveDuration(v); err == nil {
			cfg.ShutdownTimeout = dur
		} else {
			log.Printf("invalid %s value %q: %v", EnvShutdownTimeout, v, err)
		}
	}
	if v := raw.LaunchOptions; v != "" {
		if opts, err := ParseOptionsJSON([]byte(v)); err == nil {
			cfg.LaunchOptions = opts
		} else {
			log.Printf("invalid %s value: %v", EnvLaunchOptions, err)
		}
	}
}

type fileConfig struct {
	RequestTimeout  string          `json:"request_timeout"`
	ShutdownTimeout string          `json:"shutdown_timeout"`
	LaunchOptions   json.RawMessage `json:"launch_options"`
}

func loadFromFile(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	var raw fileConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return cfg, err
	}

	if raw.RequestTimeout != "" {
		dur, err := parsePositiveDuration(raw.RequestTimeout)
		if err != nil {
			return cfg, fmt.Errorf("parse request_timeout: %w", err)
		}
		cfg.RequestTimeout = dur
	}
	if raw.ShutdownTimeout != "" {
		dur, err := parsePositiveDuration(raw.ShutdownTimeout)
		if err != nil {
			return cfg, fmt.Errorf("parse shutdown_timeout: %w", err)
		}
		cfg.ShutdownTimeout = dur
	}
	if len(raw.LaunchOptions) > 0 {
		opts, err := ParseOptionsJSON(raw.LaunchOptions)
		if err != nil {
			return cfg, fmt.Errorf("parse launch_options: %w", err)
		}
		cfg.LaunchOptions = opts
	}

	return cfg, nil
}

// ParseOptionsJSON decodes a JSON object into launch options. A literal null
// yields nil options; any other non-object is rejected.
func ParseOptionsJSON(data []byte) (launch.Options, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '{' {
		return nil, errors.New("launch options must be a JSON object")
	}
	var opts launch.Options
	if err := json.Unmarshal(trimmed, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

func parsePositiveDuration(v string) (time.Duration, error) {
	dur, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if dur <= 0 {
		return 0, errors.New("must be > 0")
	}
	return dur, nil
}
