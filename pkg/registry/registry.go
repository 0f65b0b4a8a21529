// Package registry maps template kinds to their schema and override rules.
//
// Built-in definitions ship embedded in the binary as YAML. Schemas are
// read from the template table through a TemplateSource on first use and
// cached, so one Registry may serve concurrent conversions.
package registry

import (
	"context"
	"embed"
	"io/fs"
	"maps"
	"slices"
	"sync"

	"github.com/agentstation/paramconv/pkg/errors"
	"github.com/agentstation/paramconv/pkg/logging"
	"github.com/agentstation/paramconv/pkg/rules"
	"github.com/agentstation/paramconv/pkg/schema"
	"github.com/agentstation/paramconv/pkg/table"
)

//go:embed definitions/*.yaml
var builtinFS embed.FS

// TemplateSource loads template tables by file name.
type TemplateSource interface {
	Template(ctx context.Context, name string) (*table.Table, error)
}

// TemplateSourceFunc adapts a function to TemplateSource.
type TemplateSourceFunc func(ctx context.Context, name string) (*table.Table, error)

// Template implements TemplateSource.
func (f TemplateSourceFunc) Template(ctx context.Context, name string) (*table.Table, error) {
	return f(ctx, name)
}

// Registry resolves template kinds. The set of definitions is fixed at
// construction.
type Registry struct {
	source TemplateSource
	defs   map[string]*Definition

	mu      sync.RWMutex
	schemas map[string]schema.Schema
}

// New creates a registry reading templates from source.
func New(source TemplateSource, opts ...Option) (*Registry, error) {
	options, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}

	r := &Registry{
		source:  source,
		defs:    make(map[string]*Definition),
		schemas: make(map[string]schema.Schema),
	}

	if options.builtins {
		sub, err := fs.Sub(builtinFS, "definitions")
		if err != nil {
			return nil, err
		}
		if err := r.load(sub); err != nil {
			return nil, err
		}
	}
	for _, fsys := range options.extra {
		if err := r.load(fsys); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) load(fsys fs.FS) error {
	defs, err := loadDefinitions(fsys)
	if err != nil {
		return err
	}
	for _, d := range defs {
		if prev, ok := r.defs[d.Kind.key()]; ok {
			logging.Debug().
				Str("kind", string(d.Kind)).
				Str("replaces", string(prev.Kind)).
				Msg("definition overridden")
		}
		r.defs[d.Kind.key()] = d
	}
	return nil
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.defs))
	for _, d := range r.defs {
		kinds = append(kinds, d.Kind)
	}
	slices.Sort(kinds)
	return kinds
}

// Definitions returns copies of every definition, sorted by kind.
func (r *Registry) Definitions() []*Definition {
	keys := slices.Sorted(maps.Keys(r.defs))
	out := make([]*Definition, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.defs[k].Clone())
	}
	return out
}

// Definition returns a copy of the definition for kind. Lookup ignores case.
func (r *Registry) Definition(kind string) (*Definition, error) {
	d, err := r.lookup(kind)
	if err != nil {
		return nil, err
	}
	return d.Clone(), nil
}

func (r *Registry) lookup(kind string) (*Definition, error) {
	d, ok := r.defs[Kind(kind).key()]
	if !ok {
		known := make([]string, 0, len(r.defs))
		for _, k := range r.Kinds() {
			known = append(known, string(k))
		}
		return nil, errors.NewUnknownTemplateKindError(kind, known)
	}
	return d, nil
}

// Schema returns the schema of kind, reading its template on first use.
func (r *Registry) Schema(ctx context.Context, kind string) (schema.Schema, error) {
	d, err := r.lookup(kind)
	if err != nil {
		return schema.Schema{}, err
	}
	key := d.Kind.key()

	r.mu.RLock()
	s, ok := r.schemas[key]
	r.mu.RUnlock()
	if ok {
		return s, nil
	}

	if r.source == nil {
		return schema.Schema{}, errors.NewConfigError("registry", "no template source configured", nil)
	}

	logging.FromContext(ctx).Debug().
		Str("kind", string(d.Kind)).
		Str("template", d.Template).
		Msg("loading template")
	t, err := r.source.Template(ctx, d.Template)
	if err != nil {
		return schema.Schema{}, err
	}
	s, err = schema.FromTemplate(d.Template, t)
	if err != nil {
		return schema.Schema{}, err
	}

	r.mu.Lock()
	r.schemas[key] = s
	r.mu.Unlock()
	return s, nil
}

// Get resolves kind to its schema and a private copy of its rule set.
func (r *Registry) Get(ctx context.Context, kind string) (schema.Schema, *rules.RuleSet, error) {
	s, err := r.Schema(ctx, kind)
	if err != nil {
		return schema.Schema{}, nil, err
	}
	d, _ := r.lookup(kind)
	return s, d.Rules.Clone(), nil
}
