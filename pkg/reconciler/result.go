package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/paramconv/pkg/rules"
	"github.com/agentstation/paramconv/pkg/table"
)

// Severity grades a diagnostic.
type Severity string

const (
	// SeverityInfo marks expected, informational events.
	SeverityInfo Severity = "info"
	// SeverityWarning marks rules that could not take effect.
	SeverityWarning Severity = "warning"
)

// Diagnostic is a best-effort note about a reconciliation. Diagnostics
// never change the output and never abort a run.
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Step     Step     `json:"step,omitempty" yaml:"step,omitempty"`
	Column   string   `json:"column,omitempty" yaml:"column,omitempty"`
	Message  string   `json:"message" yaml:"message"`
}

// String formats the diagnostic for logs.
func (d Diagnostic) String() string {
	switch {
	case d.Step != "" && d.Column != "":
		return fmt.Sprintf("%s: %s %q: %s", d.Severity, d.Step, d.Column, d.Message)
	case d.Column != "":
		return fmt.Sprintf("%s: %q: %s", d.Severity, d.Column, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Stats describes what a reconciliation did.
type Stats struct {
	Rows    int `json:"rows" yaml:"rows"`
	Columns int `json:"columns" yaml:"columns"`

	// Matched are schema columns found in the input.
	Matched []string `json:"matched" yaml:"matched"`
	// Discarded are input columns with no schema match.
	Discarded []string `json:"discarded,omitempty" yaml:"discarded,omitempty"`
	// Defaulted are schema columns the input never supplied.
	Defaulted []string `json:"defaulted,omitempty" yaml:"defaulted,omitempty"`

	// Cells counts cells written by each override step.
	Cells map[Step]int `json:"cells" yaml:"cells"`

	Dropped []string       `json:"dropped,omitempty" yaml:"dropped,omitempty"`
	Renamed []rules.Rename `json:"renamed,omitempty" yaml:"renamed,omitempty"`
}

// Result represents the outcome of a reconciliation.
type Result struct {
	Table       *table.Table
	Stats       Stats
	Diagnostics []Diagnostic
	Metadata    ResultMetadata
}

// ResultMetadata contains timing for the reconciliation.
type ResultMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// NewResult creates a new result with defaults.
func NewResult() *Result {
	return &Result{
		Stats:       Stats{Cells: make(map[Step]int, len(stepOrder))},
		Diagnostics: []Diagnostic{},
		Metadata: ResultMetadata{
			StartTime: time.Now(),
		},
	}
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	if r.Table != nil {
		r.Stats.Rows = r.Table.Len()
		r.Stats.Columns = r.Table.NumColumns()
	}
}

// Warnings returns only the warning diagnostics.
func (r *Result) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := fmt.Sprintf("%d rows x %d columns (%d matched, %d defaulted, %d discarded input columns)",
		r.Stats.Rows, r.Stats.Columns, len(r.Stats.Matched), len(r.Stats.Defaulted), len(r.Stats.Discarded))
	if w := len(r.Warnings()); w > 0 {
		s += fmt.Sprintf(", %d warnings", w)
	}
	return s
}
