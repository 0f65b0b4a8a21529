// Package errors provides custom error types for the paramconv system.
// These errors let callers separate structural failures (bad template,
// unknown kind, unreadable table, aborted file selection) from everything
// else, using errors.Is against the sentinels below.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Join is an alias for the standard library errors.Join.
var Join = errors.Join

// As is an alias for the standard library errors.As.
var As = errors.As

// Common sentinel errors for the paramconv system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSchema indicates a malformed or empty template header
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrUnknownKind indicates a template kind missing from the registry
	ErrUnknownKind = errors.New("unknown template kind")

	// ErrTableRead indicates a table could not be read or parsed
	ErrTableRead = errors.New("table read failed")

	// ErrTableWrite indicates a table could not be written
	ErrTableWrite = errors.New("table write failed")

	// ErrNoFileSelected indicates the operator declined to choose a file
	ErrNoFileSelected = errors.New("no file selected")
)

// SchemaError reports a template whose header cannot serve as a schema.
type SchemaError struct {
	Template string
	Column   string
	Message  string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	switch {
	case e.Template != "" && e.Column != "":
		return fmt.Sprintf("schema error in template %s (column %q): %s", e.Template, e.Column, e.Message)
	case e.Template != "":
		return fmt.Sprintf("schema error in template %s: %s", e.Template, e.Message)
	case e.Column != "":
		return fmt.Sprintf("schema error (column %q): %s", e.Column, e.Message)
	}
	return fmt.Sprintf("schema error: %s", e.Message)
}

// Is implements errors.Is support
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError
func NewSchemaError(template, column, message string) *SchemaError {
	return &SchemaError{Template: template, Column: column, Message: message}
}

// UnknownTemplateKindError represents a registry miss.
type UnknownTemplateKindError struct {
	Kind  string
	Known []string
}

// Error implements the error interface
func (e *UnknownTemplateKindError) Error() string {
	if len(e.Known) > 0 {
		return fmt.Sprintf("unknown template kind %q (known: %v)", e.Kind, e.Known)
	}
	return fmt.Sprintf("unknown template kind %q", e.Kind)
}

// Is implements errors.Is support
func (e *UnknownTemplateKindError) Is(target error) bool {
	return target == ErrUnknownKind || target == ErrNotFound
}

// NewUnknownTemplateKindError creates a new UnknownTemplateKindError
func NewUnknownTemplateKindError(kind string, known []string) *UnknownTemplateKindError {
	return &UnknownTemplateKindError{Kind: kind, Known: known}
}

// TableReadError represents a failure to load a delimited table.
type TableReadError struct {
	Path string
	Line int
	Err  error
}

// Error implements the error interface
func (e *TableReadError) Error() string {
	path := e.Path
	if path == "" {
		path = "<stream>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("reading table %s at line %d: %v", path, e.Line, e.Err)
	}
	return fmt.Sprintf("reading table %s: %v", path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *TableReadError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *TableReadError) Is(target error) bool {
	return target == ErrTableRead
}

// NewTableReadError creates a new TableReadError
func NewTableReadError(path string, line int, err error) *TableReadError {
	return &TableReadError{Path: path, Line: line, Err: err}
}

// TableWriteError represents a failure to persist a table.
type TableWriteError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *TableWriteError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("writing table: %v", e.Err)
	}
	return fmt.Sprintf("writing table %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *TableWriteError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *TableWriteError) Is(target error) bool {
	return target == ErrTableWrite
}

// NewTableWriteError creates a new TableWriteError
func NewTableWriteError(path string, err error) *TableWriteError {
	return &TableWriteError{Path: path, Err: err}
}

// NoFileSelectedError reports that a file prompt returned nothing.
// It is a recoverable abort, not a crash.
type NoFileSelectedError struct {
	Purpose string // "input", "output", ...
}

// Error implements the error interface
func (e *NoFileSelectedError) Error() string {
	if e.Purpose != "" {
		return fmt.Sprintf("no file selected for %s", e.Purpose)
	}
	return "no file selected"
}

// Is implements errors.Is support
func (e *NoFileSelectedError) Is(target error) bool {
	return target == ErrNoFileSelected
}

// NewNoFileSelectedError creates a new NoFileSelectedError
func NewNoFileSelectedError(purpose string) *NoFileSelectedError {
	return &NoFileSelectedError{Purpose: purpose}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing definition files
type ParseError struct {
	Format  string // "yaml", "csv"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsSchemaError checks if an error is a schema error
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrInvalidSchema)
}

// IsUnknownKind checks if an error is a registry miss
func IsUnknownKind(err error) bool {
	return errors.Is(err, ErrUnknownKind)
}

// IsNoFileSelected checks if the operator aborted a file prompt
func IsNoFileSelected(err error) bool {
	return errors.Is(err, ErrNoFileSelected)
}

// IsTableError checks if an error came from reading or writing a table
func IsTableError(err error) bool {
	return errors.Is(err, ErrTableRead) || errors.Is(err, ErrTableWrite)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapRead wraps an error as a TableReadError
func WrapRead(path string, err error) error {
	if err == nil {
		return nil
	}
	return NewTableReadError(path, 0, err)
}

// WrapWrite wraps an error as a TableWriteError
func WrapWrite(path string, err error) error {
	if err == nil {
		return nil
	}
	return NewTableWriteError(path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
