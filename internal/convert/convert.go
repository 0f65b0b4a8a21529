// Package convert runs conversion jobs: resolve the kind, read the input
// table, reconcile it, and write the result.
package convert

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/paramconv/internal/csvcodec"
	"github.com/agentstation/paramconv/pkg/constants"
	"github.com/agentstation/paramconv/pkg/errors"
	"github.com/agentstation/paramconv/pkg/logging"
	"github.com/agentstation/paramconv/pkg/reconciler"
	"github.com/agentstation/paramconv/pkg/registry"
)

// Job is one input file converted to one output file.
type Job struct {
	Kind   string `json:"kind" yaml:"kind"`
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`
}

// Report describes a finished job.
type Report struct {
	RunID    string                  `json:"run_id" yaml:"run_id"`
	Kind     registry.Kind           `json:"kind" yaml:"kind"`
	Input    string                  `json:"input" yaml:"input"`
	Output   string                  `json:"output" yaml:"output"`
	Stats    reconciler.Stats        `json:"stats" yaml:"stats"`
	Warnings []reconciler.Diagnostic `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Notice   string                  `json:"notice,omitempty" yaml:"notice,omitempty"`
	Duration time.Duration           `json:"duration" yaml:"duration"`
}

// Converter runs jobs against one registry. It is safe for concurrent use.
type Converter struct {
	registry    *registry.Registry
	overwrite   bool
	concurrency int
}

// New creates a converter.
func New(reg *registry.Registry, opts ...Option) (*Converter, error) {
	if reg == nil {
		return nil, &errors.ValidationError{Field: "registry", Message: "cannot be nil"}
	}
	options, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	return &Converter{
		registry:    reg,
		overwrite:   options.overwrite,
		concurrency: options.concurrency,
	}, nil
}

// Run converts a single job. Nothing is written when any step fails.
func (c *Converter) Run(ctx context.Context, job Job) (*Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	ctx = logging.WithKind(ctx, job.Kind)
	ctx = logging.WithFile(ctx, job.Input)
	logger := logging.FromContext(ctx)

	if err := c.checkPaths(job); err != nil {
		return nil, err
	}

	def, err := c.registry.Definition(job.Kind)
	if err != nil {
		return nil, err
	}
	s, rs, err := c.registry.Get(ctx, job.Kind)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("template", def.Template).Msg("Loading input table")
	in, err := csvcodec.ReadFile(job.Input)
	if err != nil {
		return nil, err
	}

	engine, err := reconciler.New(reconciler.WithLabelColumns(def.Labels...))
	if err != nil {
		return nil, err
	}
	res, err := engine.Reconcile(ctx, in, s, rs)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings() {
		logger.Warn().Str("step", string(w.Step)).Str("column", w.Column).Msg(w.Message)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := csvcodec.WriteFile(job.Output, res.Table); err != nil {
		return nil, err
	}
	logger.Info().
		Str("output", job.Output).
		Int("rows", res.Stats.Rows).
		Str("summary", res.Summary()).
		Msg("File saved successfully")
	if def.Notice != "" {
		logger.Warn().Msg(def.Notice)
	}

	return &Report{
		RunID:    runID,
		Kind:     def.Kind,
		Input:    job.Input,
		Output:   job.Output,
		Stats:    res.Stats,
		Warnings: res.Warnings(),
		Notice:   def.Notice,
		Duration: time.Since(start),
	}, nil
}

func (c *Converter) checkPaths(job Job) error {
	if job.Input == "" {
		return errors.NewNoFileSelectedError("input")
	}
	if job.Output == "" {
		return errors.NewNoFileSelectedError("output")
	}
	if samePath(job.Input, job.Output) {
		return errors.NewValidationError("output", job.Output, "must differ from the input file")
	}
	if !c.overwrite {
		if _, err := os.Stat(job.Output); err == nil {
			return errors.NewValidationError("output", job.Output, "file exists (use --force to overwrite)")
		}
	}
	return nil
}

// RunAll converts independent jobs in parallel. The first failure cancels
// jobs that have not started; reports of finished jobs are returned
// alongside the error, in job order, with nil for jobs that did not finish.
func (c *Converter) RunAll(ctx context.Context, jobs []Job) ([]*Report, error) {
	if err := uniqueOutputs(jobs); err != nil {
		return nil, err
	}

	reports := make([]*Report, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := c.Run(gctx, job)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	return reports, g.Wait()
}

func uniqueOutputs(jobs []Job) error {
	seen := make(map[string]string, len(jobs))
	for _, j := range jobs {
		key := cleanPath(j.Output)
		if prev, ok := seen[key]; ok {
			return errors.NewValidationError("output", j.Output, "also written by the job for "+prev)
		}
		seen[key] = j.Input
	}
	return nil
}

// OutputPath derives a destination for input inside dir, keeping the
// input's base name.
func OutputPath(dir, input string) string {
	if dir == "" {
		dir = constants.DefaultOutputDir
	}
	return filepath.Join(dir, filepath.Base(input))
}

func cleanPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

func samePath(a, b string) bool {
	return cleanPath(a) == cleanPath(b)
}
