package app

import (
	"log"
	"time"

	"launchstate/internal/config"
)

// Options configures the top-level controller.
type Options struct {
	// ConfigPath points to the optional daemon config file.
	ConfigPath string
}

// App exposes high-level operations that the CLI/TUI can reuse.
type App struct {
	cfgPath string
}

// New constructs the shared controller facade.
func New(opts Options) *App {
	return &App{
		cfgPath: opts.ConfigPath,
	}
}

// ConfigPath returns the configured config file path (if any).
func (a *App) ConfigPath() string {
	return a.cfgPath
}

// Config loads the daemon configuration the controller points at.
func (a *App) Config() (config.Config, error) {
	return config.Load(a.cfgPath)
}

// RequestTimeout returns the configured per-request timeout, falling back to
// the built-in default when the config cannot be loaded.
func (a *App) RequestTimeout() time.Duration {
	cfg, err := a.Config()
	if err != nil {
		log.Printf("using default request timeout: %v", err)
		return config.Default().RequestTimeout
	}
	return cfg.RequestTimeout
}
