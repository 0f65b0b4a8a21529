// Package constants provides shared constants used throughout the paramconv
// codebase: file permissions, default locations, and concurrency limits.
package constants

import "time"

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Default locations, relative to the working directory unless configured.
const (
	// DefaultTemplateDir holds the authoritative template tables
	DefaultTemplateDir = "template"

	// DefaultOutputDir receives converted tables when no destination is given
	DefaultOutputDir = "output"

	// ConfigFileName is the config file searched in $HOME and the working directory
	ConfigFileName = ".paramconv"

	// EnvPrefix prefixes environment variables bound to configuration keys
	EnvPrefix = "PARAMCONV"

	// TableExtension is the extension of table files
	TableExtension = ".csv"
)

// Limit constants
const (
	// DefaultConcurrency is the number of conversion jobs run at once
	DefaultConcurrency = 4

	// MaxConcurrency caps the configured concurrency
	MaxConcurrency = 32

	// ShutdownTimeout bounds cleanup after a failed command
	ShutdownTimeout = 5 * time.Second
)
