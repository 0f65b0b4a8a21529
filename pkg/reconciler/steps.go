package reconciler

// Step names one override pass. Passes always run in the order returned
// by Steps, for every template kind.
type Step string

const (
	// StepTransfer copies source input columns into differently named targets.
	StepTransfer Step = "cross-transfer"
	// StepFill replaces unset cells with the default value.
	StepFill Step = "missing-fill"
	// StepSentinel forces sentinel columns to the sentinel value.
	StepSentinel Step = "sentinel-fill"
	// StepCleanup turns leftover default values into the replacement value.
	StepCleanup Step = "post-fill-cleanup"
	// StepConstant forces constant override columns.
	StepConstant Step = "constant"
	// StepPadding writes padding literals.
	StepPadding Step = "padding"
	// StepDrop removes artifact columns.
	StepDrop Step = "drop"
	// StepRename renames headers.
	StepRename Step = "rename"
)

var stepOrder = []Step{
	StepTransfer,
	StepFill,
	StepSentinel,
	StepCleanup,
	StepConstant,
	StepPadding,
	StepDrop,
	StepRename,
}

// Steps returns the override passes in application order.
func Steps() []Step {
	out := make([]Step, len(stepOrder))
	copy(out, stepOrder)
	return out
}

// Description returns a one-line explanation of the step.
func (s Step) Description() string {
	switch s {
	case StepTransfer:
		return "copy input source column into output target column"
	case StepFill:
		return "set unset cells to the default value"
	case StepSentinel:
		return "force sentinel columns to the sentinel value"
	case StepCleanup:
		return "replace default values outside the exception set"
	case StepConstant:
		return "force constant override columns"
	case StepPadding:
		return "write padding literal strings"
	case StepDrop:
		return "remove artifact columns"
	case StepRename:
		return "rename headers"
	}
	return string(s)
}
