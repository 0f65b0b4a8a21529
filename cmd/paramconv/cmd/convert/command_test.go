package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/paramconv/internal/cmd/application"
	"github.com/agentstation/paramconv/internal/csvcodec"
	"github.com/agentstation/paramconv/internal/picker"
	"github.com/agentstation/paramconv/pkg/errors"
	"github.com/agentstation/paramconv/pkg/registry"
)

type env struct {
	dir  string
	mock *application.Mock
}

func newEnv(t *testing.T, p picker.Picker) *env {
	t.Helper()
	dir := t.TempDir()
	templates := filepath.Join(dir, "template")
	require.NoError(t, os.MkdirAll(templates, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(templates, "BehaviorTemplate.csv"),
		[]byte("ID,pad1,pad2,refId\n"), 0o644))

	return &env{
		dir: dir,
		mock: &application.Mock{
			OutputFormatFunc: func() string { return "json" },
			RegistryFunc: func() (*registry.Registry, error) {
				return registry.New(csvcodec.NewDirSource(templates))
			},
			PickerFunc:    func() picker.Picker { return p },
			OutputDirFunc: func() string { return filepath.Join(dir, "output") },
		},
	}
}

func (e *env) input(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(p, []byte("ID,refId,old\n10,3,x\n11,,y\n"), 0o644))
	return p
}

func (e *env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := NewCommand(e.mock)
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

const behaviorOut = "ID,\"pad1,\",pad2,refId\n10,0,[0|0],3\n11,0,[0|0],0\n"

func TestConvertWithFlags(t *testing.T) {
	e := newEnv(t, picker.Static{})
	in := e.input(t, "Behavior.csv")
	out := filepath.Join(e.dir, "converted.csv")

	stdout, err := e.run(t, "behavior", "-i", in, "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, behaviorOut, string(data))

	var reports []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "Behavior", reports[0]["kind"])
}

func TestConvertPrompts(t *testing.T) {
	e := newEnv(t, nil)
	in := e.input(t, "Behavior.csv")
	out := filepath.Join(e.dir, "prompted")
	e.mock.PickerFunc = func() picker.Picker { return picker.Static{Input: in, Output: out} }

	_, err := e.run(t, "Behavior")
	require.NoError(t, err)
	assert.FileExists(t, out+".csv")
}

func TestConvertNoFileSelected(t *testing.T) {
	e := newEnv(t, picker.Static{})
	_, err := e.run(t, "Behavior")
	assert.True(t, errors.IsNoFileSelected(err))

	in := e.input(t, "Behavior.csv")
	_, err = e.run(t, "Behavior", "-i", in)
	assert.True(t, errors.IsNoFileSelected(err))
	assert.NoDirExists(t, filepath.Join(e.dir, "output"))
}

func TestConvertBatch(t *testing.T) {
	e := newEnv(t, picker.Static{})
	a := e.input(t, "a.csv")
	b := e.input(t, "b.csv")

	_, err := e.run(t, "Behavior", "-i", a, "-i", b)
	require.NoError(t, err)

	for _, name := range []string{"a.csv", "b.csv"} {
		data, err := os.ReadFile(filepath.Join(e.dir, "output", name))
		require.NoError(t, err)
		assert.Equal(t, behaviorOut, string(data))
	}

	_, err = e.run(t, "Behavior", "-i", a, "-i", b, "-o", filepath.Join(e.dir, "x.csv"))
	assert.True(t, errors.IsValidationError(err))
}

func TestConvertOutputDirAndForce(t *testing.T) {
	e := newEnv(t, picker.Static{})
	in := e.input(t, "Behavior.csv")
	dst := filepath.Join(e.dir, "dst")

	_, err := e.run(t, "Behavior", "-i", in, "--output-dir", dst)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dst, "Behavior.csv"))

	_, err = e.run(t, "Behavior", "-i", in, "--output-dir", dst)
	assert.True(t, errors.IsValidationError(err))

	_, err = e.run(t, "Behavior", "-i", in, "--output-dir", dst, "--force")
	require.NoError(t, err)
}

func TestConvertUnknownKind(t *testing.T) {
	e := newEnv(t, picker.Static{})
	_, err := e.run(t, "Weapon", "-i", "x.csv", "-o", "y.csv")
	assert.True(t, errors.IsUnknownKind(err))
}

func TestConvertTableSummary(t *testing.T) {
	e := newEnv(t, picker.Static{})
	e.mock.OutputFormatFunc = func() string { return "table" }
	in := e.input(t, "Behavior.csv")
	out := filepath.Join(e.dir, "converted.csv")

	var stdout, stderr bytes.Buffer
	cmd := NewCommand(e.mock)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"Behavior", "-i", in, "-o", out})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, stdout.String(), "Behavior")
	assert.Equal(t, "✓ Converted 1 Behavior table(s)\n   "+out+"\n", stderr.String())
}
