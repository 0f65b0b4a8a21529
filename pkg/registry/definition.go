package registry

import (
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/paramconv/pkg/errors"
	"github.com/agentstation/paramconv/pkg/rules"
)

// Kind names one template kind, such as Atk or NpcThink.
type Kind string

// String returns the kind name.
func (k Kind) String() string { return string(k) }

// key is the case-insensitive lookup key of a kind.
func (k Kind) key() string { return strings.ToLower(string(k)) }

// Definition binds a template kind to its template file and rule set.
type Definition struct {
	Kind        Kind     `yaml:"kind" json:"kind"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Template    string   `yaml:"template" json:"template"`
	Labels      []string `yaml:"labels,omitempty" json:"labels,omitempty"`

	// Notice is shown to the operator after a successful conversion.
	Notice string `yaml:"notice,omitempty" json:"notice,omitempty"`

	Rules *rules.RuleSet `yaml:"rules" json:"rules"`
}

// Validate checks that the definition is complete.
func (d *Definition) Validate() error {
	if d.Kind == "" {
		return errors.NewValidationError("kind", "", "cannot be empty")
	}
	if d.Template == "" {
		return errors.NewValidationError("template", "", "cannot be empty for kind "+string(d.Kind))
	}
	if d.Rules == nil {
		return errors.NewValidationError("rules", nil, "missing for kind "+string(d.Kind))
	}
	if err := d.Rules.Validate(); err != nil {
		return errors.Join(errors.NewValidationError("rules", nil, "invalid for kind "+string(d.Kind)), err)
	}
	return nil
}

// Clone returns a deep copy.
func (d *Definition) Clone() *Definition {
	c := *d
	c.Labels = slices.Clone(d.Labels)
	if d.Rules != nil {
		c.Rules = d.Rules.Clone()
	}
	return &c
}

// parseDefinition decodes and validates one definition file.
func parseDefinition(name string, data []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, errors.WrapParse("yaml", name, err)
	}
	if err := d.Validate(); err != nil {
		return nil, errors.NewParseError("yaml", name, "invalid definition: "+err.Error(), err)
	}
	return &d, nil
}

// loadDefinitions reads every YAML file at the root of fsys.
func loadDefinitions(fsys fs.FS) ([]*Definition, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	var defs []*Definition
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch path.Ext(e.Name()) {
		case ".yaml", ".yml":
		default:
			continue
		}
		data, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, err
		}
		d, err := parseDefinition(e.Name(), data)
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return defs, nil
}
