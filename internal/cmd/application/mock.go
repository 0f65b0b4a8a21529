// Package application provides test doubles for the command application
// interface.
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/paramconv/internal/convert"
	"github.com/agentstation/paramconv/internal/picker"
	"github.com/agentstation/paramconv/pkg/constants"
	"github.com/agentstation/paramconv/pkg/registry"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	RegistryFunc     func() (*registry.Registry, error)
	ConverterFunc    func(opts ...convert.Option) (*convert.Converter, error)
	PickerFunc       func() picker.Picker
	OutputDirFunc    func() string
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Registry returns a registry using the mock function or the built-in
// definitions without a template source.
func (m *Mock) Registry() (*registry.Registry, error) {
	if m.RegistryFunc != nil {
		return m.RegistryFunc()
	}
	return registry.New(nil)
}

// Converter returns a converter using the mock function or one built over
// Registry.
func (m *Mock) Converter(opts ...convert.Option) (*convert.Converter, error) {
	if m.ConverterFunc != nil {
		return m.ConverterFunc(opts...)
	}
	reg, err := m.Registry()
	if err != nil {
		return nil, err
	}
	return convert.New(reg, opts...)
}

// Picker returns a picker using the mock function or an empty Static
// picker that always reports no selection.
func (m *Mock) Picker() picker.Picker {
	if m.PickerFunc != nil {
		return m.PickerFunc()
	}
	return picker.Static{}
}

// OutputDir returns the output directory using the mock function or the default.
func (m *Mock) OutputDir() string {
	if m.OutputDirFunc != nil {
		return m.OutputDirFunc()
	}
	return constants.DefaultOutputDir
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
