package reconciler

import (
	"github.com/agentstation/paramconv/pkg/rules"
	"github.com/agentstation/paramconv/pkg/table"
)

// ApplyOverrides runs every override step over an aligned table, in the
// order given by Steps. Row i of out must have been aligned from row i of
// src; src is read only by the cross-transfer step.
func ApplyOverrides(out, src *table.Table, rs *rules.RuleSet) *Result {
	res := NewResult()
	res.Table = out
	newApplicator(out, src, rs, res, nil).run()
	res.Finalize()
	return res
}

// applicator carries the state of one override pass.
type applicator struct {
	out    *table.Table
	src    *table.Table
	rs     *rules.RuleSet
	res    *Result
	notify func(Diagnostic)
}

func newApplicator(out, src *table.Table, rs *rules.RuleSet, res *Result, notify func(Diagnostic)) *applicator {
	return &applicator{out: out, src: src, rs: rs, res: res, notify: notify}
}

func (a *applicator) run() {
	for _, step := range stepOrder {
		switch step {
		case StepTransfer:
			a.transfer()
		case StepFill:
			a.fill()
		case StepSentinel:
			a.sentinel()
		case StepCleanup:
			a.cleanup()
		case StepConstant:
			a.constants()
		case StepPadding:
			a.padding()
		case StepDrop:
			a.drop()
		case StepRename:
			a.rename()
		}
	}
}

func (a *applicator) diag(sev Severity, step Step, column, msg string) {
	d := Diagnostic{Severity: sev, Step: step, Column: column, Message: msg}
	a.res.Diagnostics = append(a.res.Diagnostics, d)
	if a.notify != nil {
		a.notify(d)
	}
}

// fillColumn writes v into every row of the named column.
func (a *applicator) fillColumn(step Step, column string, v table.Value) {
	j, ok := a.out.Index(column)
	if !ok {
		a.diag(SeverityWarning, step, column, "column not in output; rule skipped")
		return
	}
	for i := 0; i < a.out.Len(); i++ {
		a.out.Row(i)[j] = v
	}
	a.res.Stats.Cells[step] += a.out.Len()
}

func (a *applicator) transfer() {
	for _, t := range a.rs.Transfers {
		si, ok := a.src.Index(t.Source)
		if !ok {
			a.diag(SeverityInfo, StepTransfer, t.Source, "source column not in input; transfer skipped")
			continue
		}
		ti, ok := a.out.Index(t.Target)
		if !ok {
			a.diag(SeverityWarning, StepTransfer, t.Target, "target column not in output; transfer skipped")
			continue
		}
		for i := 0; i < a.out.Len(); i++ {
			a.out.Row(i)[ti] = a.src.Row(i)[si]
		}
		a.res.Stats.Cells[StepTransfer] += a.out.Len()
	}
}

func (a *applicator) fill() {
	def := a.rs.DefaultValue
	for i := 0; i < a.out.Len(); i++ {
		row := a.out.Row(i)
		for j := range row {
			if row[j].IsNull() {
				row[j] = def
				a.res.Stats.Cells[StepFill]++
			}
		}
	}
}

func (a *applicator) sentinel() {
	v := a.rs.SentinelValue()
	for _, c := range a.rs.SentinelColumns {
		a.fillColumn(StepSentinel, c, v)
	}
}

func (a *applicator) cleanup() {
	if a.rs.Cleanup == nil {
		return
	}
	exc := a.rs.Exceptions()
	def, repl := a.rs.DefaultValue, a.rs.Cleanup.Replacement
	for j, c := range a.out.Columns() {
		if _, skip := exc[c]; skip {
			continue
		}
		for i := 0; i < a.out.Len(); i++ {
			cell := &a.out.Row(i)[j]
			if cell.Equal(def) {
				*cell = repl
				a.res.Stats.Cells[StepCleanup]++
			}
		}
	}
}

func (a *applicator) constants() {
	for _, c := range a.rs.ConstantColumns() {
		a.fillColumn(StepConstant, c, a.rs.Constants[c])
	}
}

func (a *applicator) padding() {
	for _, c := range a.rs.PaddingColumns() {
		a.fillColumn(StepPadding, c, table.String(a.rs.Padding[c]))
	}
}

func (a *applicator) drop() {
	for _, c := range a.rs.Drop {
		if a.out.DropColumn(c) {
			a.res.Stats.Dropped = append(a.res.Stats.Dropped, c)
		}
	}
}

func (a *applicator) rename() {
	for _, r := range a.rs.Renames() {
		if !a.out.HasColumn(r.From) {
			a.diag(SeverityInfo, StepRename, r.From, "column not in output; rename skipped")
			continue
		}
		if err := a.out.RenameColumn(r.From, r.To); err != nil {
			a.diag(SeverityWarning, StepRename, r.From, err.Error())
			continue
		}
		a.res.Stats.Renamed = append(a.res.Stats.Renamed, r)
	}
}
