// Package app provides the application context and dependency management
// for the fabsync CLI. It centralizes configuration, logging, and the
// fabsync client instance behind one struct that commands receive.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	fabsync "github.com/Ty9112/FabricationSample-sub002"
	"github.com/Ty9112/FabricationSample-sub002/pkg/errors"
)

// App represents the fabsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client fabsync.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Client returns the fabsync client, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Client() (fabsync.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	c, err := fabsync.New(a.buildClientOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}

	a.client = c
	return c, nil
}

// buildClientOptions constructs client options from the app configuration.
func (a *App) buildClientOptions() []fabsync.Option {
	var opts []fabsync.Option

	if a.config.Root != "" {
		opts = append(opts, fabsync.WithRoot(a.config.Root))
	} else if a.config.DataPath != "" {
		opts = append(opts, fabsync.WithDataPath(a.config.DataPath))
	}
	if a.config.Profile != "" {
		opts = append(opts, fabsync.WithProfile(a.config.Profile))
	}
	if a.config.BackupDir != "" {
		opts = append(opts, fabsync.WithBackupDir(a.config.BackupDir))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client instance (useful for testing).
func WithClient(c fabsync.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
