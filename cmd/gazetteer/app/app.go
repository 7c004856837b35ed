// Package app provides the application context and dependency management
// for the gazetteer CLI. It centralizes configuration, logging, and the
// shared gazetteer instance behind a single App type that commands draw
// their dependencies from.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/treeline/gazetteer"
	"github.com/treeline/gazetteer/cmd/gazetteer/cmd"
	"github.com/treeline/gazetteer/pkg/errors"
)

// App represents the gazetteer application with all its dependencies.
// It provides a centralized place for configuration, logging, and the
// gazetteer instance, following the dependency injection pattern.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Gazetteer instance (lazy-initialized, singleton)
	mu        sync.RWMutex
	gazetteer gazetteer.Gazetteer
}

// Ensure App satisfies the command context interface at compile time.
var _ cmd.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// The app is initialized with configuration loaded from the environment
// that can be customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	// Load configuration
	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	// Initialize logger
	logger := NewLogger(config)
	app.logger = &logger

	// Apply any custom options
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

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Gazetteer returns the gazetteer instance, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Gazetteer() (gazetteer.Gazetteer, error) {
	a.mu.RLock()
	if a.gazetteer != nil {
		g := a.gazetteer
		a.mu.RUnlock()
		return g, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.gazetteer != nil {
		return a.gazetteer, nil
	}

	g, err := gazetteer.New(a.buildGazetteerOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "gazetteer", "", err)
	}

	a.gazetteer = g
	return g, nil
}

// buildGazetteerOptions constructs gazetteer options from the app configuration.
func (a *App) buildGazetteerOptions() []gazetteer.Option {
	var opts []gazetteer.Option

	if a.config.Registry != "" {
		opts = append(opts, gazetteer.WithRegistry(a.config.Registry))
	}
	if a.config.Sources != "" {
		opts = append(opts, gazetteer.WithSources(a.config.Sources))
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

// WithGazetteer sets a custom gazetteer instance (useful for testing).
func WithGazetteer(g gazetteer.Gazetteer) Option {
	return func(a *App) error {
		a.gazetteer = g
		return nil
	}
}
