package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/agentstation/paramconv/internal/cmd/output"
)

// Writer prints alerts in the command's output format.
type Writer struct {
	w      io.Writer
	format output.Format
	color  bool
}

// NewWriter creates a Writer. Color is used only for table output on a
// terminal and only when noColor is false.
func NewWriter(w io.Writer, format output.Format, noColor bool) *Writer {
	return &Writer{w: w, format: format, color: !noColor && isTerminal(w)}
}

type alertData struct {
	Level   string   `json:"level" yaml:"level"`
	Message string   `json:"message" yaml:"message"`
	Details []string `json:"details,omitempty" yaml:"details,omitempty"`
}

// Write prints the alerts in order.
func (aw *Writer) Write(alerts ...*Alert) error {
	if aw.format != output.FormatTable {
		data := make([]alertData, 0, len(alerts))
		for _, a := range alerts {
			data = append(data, alertData{Level: a.Level.String(), Message: a.Message, Details: a.Details})
		}
		return output.NewFormatter(aw.format).Format(aw.w, data)
	}

	for _, a := range alerts {
		line := a.String()
		if aw.color {
			line = a.Level.color() + line + resetColor
		}
		if _, err := fmt.Fprintln(aw.w, line); err != nil {
			return err
		}
		for _, d := range a.Details {
			if _, err := fmt.Fprintf(aw.w, "   %s\n", d); err != nil {
				return err
			}
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
