package registry

import (
	"io/fs"
	"os"

	"github.com/agentstation/paramconv/pkg/errors"
)

type options struct {
	builtins bool
	extra    []fs.FS
}

func defaultOptions() *options {
	return &options{builtins: true}
}

// Option is a function that configures a Registry.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// WithDefinitionsDir loads additional definitions from a directory. A
// definition whose kind matches a built-in replaces it.
func WithDefinitionsDir(dir string) Option {
	return func(o *options) error {
		if dir == "" {
			return nil
		}
		info, err := os.Stat(dir)
		if err != nil {
			return errors.NewConfigError("registry", "definitions directory unavailable", err)
		}
		if !info.IsDir() {
			return errors.NewConfigError("registry", dir+" is not a directory", nil)
		}
		o.extra = append(o.extra, os.DirFS(dir))
		return nil
	}
}

// WithDefinitionsFS loads additional definitions from a filesystem root.
func WithDefinitionsFS(fsys fs.FS) Option {
	return func(o *options) error {
		if fsys == nil {
			return &errors.ValidationError{Field: "definitions", Message: "filesystem cannot be nil"}
		}
		o.extra = append(o.extra, fsys)
		return nil
	}
}

// WithoutBuiltins skips the embedded definitions.
func WithoutBuiltins() Option {
	return func(o *options) error {
		o.builtins = false
		return nil
	}
}
