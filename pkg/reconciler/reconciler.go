// Package reconciler aligns input tables to a template schema and applies
// a kind's override rules in a fixed order.
package reconciler

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/agentstation/paramconv/pkg/errors"
	"github.com/agentstation/paramconv/pkg/logging"
	"github.com/agentstation/paramconv/pkg/rules"
	"github.com/agentstation/paramconv/pkg/schema"
	"github.com/agentstation/paramconv/pkg/table"
)

// Reconciler produces a schema-conformant table from an input table.
type Reconciler interface {
	// Reconcile aligns every input row to the schema and applies the rule
	// set. Row i of the output corresponds to row i of the input.
	Reconcile(ctx context.Context, in *table.Table, s schema.Schema, rs *rules.RuleSet) (*Result, error)
}

// reconciler is the default implementation of Reconciler. It holds no
// state between calls.
type reconciler struct {
	labels []string
	notify func(Diagnostic)
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{
		labels: options.labels,
		notify: options.notify,
	}, nil
}

// Reconcile implements Reconciler.
func (r *reconciler) Reconcile(ctx context.Context, in *table.Table, s schema.Schema, rs *rules.RuleSet) (*Result, error) {
	if s.IsZero() {
		return nil, errors.NewSchemaError(s.Name(), "", "schema has no columns")
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if in == nil {
		in = table.New(nil, 0)
	}

	logger := logging.FromContext(ctx)
	res := NewResult()

	align := newAlignment(in.Columns(), s)
	res.Stats.Matched = align.matched
	res.Stats.Discarded = align.discarded
	res.Stats.Defaulted = align.defaulted

	out := table.New(s.Columns(), in.Len())
	for i := 0; i < in.Len(); i++ {
		align.into(out.Row(i), in.Row(i), rs.DefaultValue)
	}
	r.trace(logger, in)

	res.Table = out
	notify := func(d Diagnostic) {
		logger.Debug().
			Str("step", string(d.Step)).
			Str("column", d.Column).
			Msg(d.Message)
		if r.notify != nil {
			r.notify(d)
		}
	}
	newApplicator(out, in, rs, res, notify).run()
	res.Finalize()

	logger.Debug().
		Int("rows", res.Stats.Rows).
		Int("columns", res.Stats.Columns).
		Strs("discarded", res.Stats.Discarded).
		Dur("duration", res.Metadata.Duration).
		Msg("reconciled table")
	return res, nil
}

// trace logs one line per aligned row, named by its label.
func (r *reconciler) trace(logger *zerolog.Logger, in *table.Table) {
	if logger.GetLevel() > zerolog.DebugLevel {
		return
	}
	col := -1
	for _, c := range r.labels {
		if j, ok := in.Index(c); ok {
			col = j
			break
		}
	}
	for i := 0; i < in.Len(); i++ {
		logger.Debug().Str("row", rowLabel(in.Row(i), col, i)).Msg("aligned row")
	}
}

func rowLabel(row table.Row, col, i int) string {
	if col >= 0 && col < len(row) && !row[col].IsNull() {
		return row[col].String()
	}
	return "row " + strconv.Itoa(i)
}
