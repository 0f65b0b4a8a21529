package convert

import (
	"fmt"

	"github.com/agentstation/paramconv/pkg/constants"
	"github.com/agentstation/paramconv/pkg/errors"
)

type options struct {
	overwrite   bool
	concurrency int
}

func defaultOptions() *options {
	return &options{concurrency: constants.DefaultConcurrency}
}

// Option is a function that configures a Converter.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// WithOverwrite allows replacing existing output files.
func WithOverwrite(enabled bool) Option {
	return func(o *options) error {
		o.overwrite = enabled
		return nil
	}
}

// WithConcurrency bounds how many jobs RunAll runs at once.
func WithConcurrency(n int) Option {
	return func(o *options) error {
		if n < 1 || n > constants.MaxConcurrency {
			return &errors.ValidationError{
				Field:   "concurrency",
				Value:   n,
				Message: fmt.Sprintf("must be between 1 and %d", constants.MaxConcurrency),
			}
		}
		o.concurrency = n
		return nil
	}
}
