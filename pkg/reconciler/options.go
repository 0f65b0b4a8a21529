package reconciler

import (
	"github.com/agentstation/paramconv/pkg/errors"
)

// DefaultLabelColumns are tried, in order, to name a row in log lines.
var DefaultLabelColumns = []string{"ID", "Name"}

// options configures a reconciler.
type options struct {
	labels []string
	notify func(Diagnostic)
}

func defaultOptions() *options {
	return &options{
		labels: DefaultLabelColumns,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithLabelColumns sets the columns used to label rows in diagnostics.
// The first column present in the input wins.
func WithLabelColumns(columns ...string) Option {
	return func(o *options) error {
		for _, c := range columns {
			if c == "" {
				return &errors.ValidationError{
					Field:   "labels",
					Message: "cannot contain an empty column name",
				}
			}
		}
		if len(columns) > 0 {
			o.labels = columns
		}
		return nil
	}
}

// WithDiagnostics registers a callback that receives each diagnostic as
// it is produced.
func WithDiagnostics(fn func(Diagnostic)) Option {
	return func(o *options) error {
		if fn == nil {
			return &errors.ValidationError{
				Field:   "diagnostics",
				Message: "callback cannot be nil",
			}
		}
		o.notify = fn
		return nil
	}
}
