// Package application provides the application interface for paramconv commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    RegistryFunc: func() (*registry.Registry, error) {
//	        return registry.New(source)
//	    },
//	}
//	cmd := kinds.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/paramconv/internal/convert"
	"github.com/agentstation/paramconv/internal/picker"
	"github.com/agentstation/paramconv/pkg/registry"
)

// Application provides the application interface that commands need.
// The App struct from cmd/paramconv/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Registry returns the template registry, built on first use from the
	// configured template and definitions directories.
	Registry() (*registry.Registry, error)

	// Converter returns a converter over Registry. Options are applied
	// after the configured defaults.
	Converter(opts ...convert.Option) (*convert.Converter, error)

	// Picker returns the file picker used when paths are not given.
	Picker() picker.Picker

	// OutputDir returns the default destination directory.
	OutputDir() string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
