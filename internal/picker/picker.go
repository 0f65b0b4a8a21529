// Package picker asks the operator for input and destination paths.
package picker

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/agentstation/paramconv/pkg/errors"
)

// Picker selects files. Both methods return a NoFileSelectedError when the
// operator gives no answer.
type Picker interface {
	// Open asks for an existing file to read.
	Open(ctx context.Context, title string) (string, error)
	// Save asks for a destination. ext is appended when the answer has no
	// extension.
	Save(ctx context.Context, title, ext string) (string, error)
}

// Prompt reads answers line by line from a terminal.
type Prompt struct {
	in  *bufio.Reader
	out io.Writer
	tty bool
}

// NewPrompt creates a prompt over in and out. Prompting is refused when in
// is a file that is not a terminal.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	tty := true
	if f, ok := in.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}
	return &Prompt{in: bufio.NewReader(in), out: out, tty: tty}
}

// Stdio returns a prompt on the process's standard streams.
func Stdio() *Prompt {
	return NewPrompt(os.Stdin, os.Stderr)
}

// Open implements Picker.
func (p *Prompt) Open(ctx context.Context, title string) (string, error) {
	for {
		path, err := p.ask(ctx, title, "input")
		if err != nil {
			return "", err
		}
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		fmt.Fprintf(p.out, "%s is not a readable file\n", path)
	}
}

// Save implements Picker.
func (p *Prompt) Save(ctx context.Context, title, ext string) (string, error) {
	path, err := p.ask(ctx, title, "output")
	if err != nil {
		return "", err
	}
	return WithExt(path, ext), nil
}

func (p *Prompt) ask(ctx context.Context, title, purpose string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !p.tty {
		return "", errors.NewNoFileSelectedError(purpose)
	}
	fmt.Fprintf(p.out, "%s: ", title)
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	path := strings.Trim(strings.TrimSpace(line), `"'`)
	if path == "" {
		return "", errors.NewNoFileSelectedError(purpose)
	}
	return path, nil
}

// Static answers with fixed paths. An empty path behaves like an operator
// who cancelled the prompt.
type Static struct {
	Input  string
	Output string
}

// Open implements Picker.
func (s Static) Open(_ context.Context, _ string) (string, error) {
	if s.Input == "" {
		return "", errors.NewNoFileSelectedError("input")
	}
	return s.Input, nil
}

// Save implements Picker.
func (s Static) Save(_ context.Context, _ string, ext string) (string, error) {
	if s.Output == "" {
		return "", errors.NewNoFileSelectedError("output")
	}
	return WithExt(s.Output, ext), nil
}

// WithExt appends ext to path when path has no extension.
func WithExt(path, ext string) string {
	if ext == "" || filepath.Ext(path) != "" {
		return path
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return path + ext
}
