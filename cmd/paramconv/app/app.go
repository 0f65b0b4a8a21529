// Package app provides the application context and dependency management
// for the paramconv CLI. It centralizes configuration, logging, and the
// lazily built template registry.
package app

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/paramconv/cmd/application"
	"github.com/agentstation/paramconv/internal/convert"
	"github.com/agentstation/paramconv/internal/csvcodec"
	"github.com/agentstation/paramconv/internal/picker"
	"github.com/agentstation/paramconv/pkg/errors"
	"github.com/agentstation/paramconv/pkg/registry"
)

// App represents the paramconv application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
	picker picker.Picker

	// Registry instance (lazy-initialized, singleton)
	mu       sync.RWMutex
	registry *registry.Registry
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "failed to load config", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.picker == nil {
		app.picker = picker.NewPrompt(os.Stdin, os.Stderr)
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

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// OutputDir returns the default destination directory.
func (a *App) OutputDir() string {
	return a.config.OutputDir
}

// Picker returns the file picker.
func (a *App) Picker() picker.Picker {
	return a.picker
}

// Registry returns the template registry, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Registry() (*registry.Registry, error) {
	a.mu.RLock()
	if a.registry != nil {
		reg := a.registry
		a.mu.RUnlock()
		return reg, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.registry != nil {
		return a.registry, nil
	}

	reg, err := registry.New(
		csvcodec.NewDirSource(a.config.TemplateDir),
		registry.WithDefinitionsDir(a.config.DefinitionsDir),
	)
	if err != nil {
		return nil, err
	}
	a.registry = reg
	return reg, nil
}

// Converter returns a converter over the registry using the configured
// concurrency.
func (a *App) Converter(opts ...convert.Option) (*convert.Converter, error) {
	reg, err := a.Registry()
	if err != nil {
		return nil, err
	}
	all := append([]convert.Option{convert.WithConcurrency(a.config.Concurrency)}, opts...)
	return convert.New(reg, all...)
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(_ context.Context) error {
	return nil
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

// WithPicker sets the file picker (useful for testing).
func WithPicker(p picker.Picker) Option {
	return func(a *App) error {
		a.picker = p
		return nil
	}
}

// WithRegistry sets a custom registry instance (useful for testing).
func WithRegistry(reg *registry.Registry) Option {
	return func(a *App) error {
		a.registry = reg
		return nil
	}
}
