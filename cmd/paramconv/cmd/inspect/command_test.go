package inspect

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/paramconv/internal/cmd/application"
	"github.com/agentstation/paramconv/pkg/errors"
	"github.com/agentstation/paramconv/pkg/registry"
	"github.com/agentstation/paramconv/pkg/table"
)

func run(t *testing.T, mock *application.Mock, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := NewCommand(mock)
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestInspectTable(t *testing.T) {
	out, err := run(t, &application.Mock{}, "npcthink")
	require.NoError(t, err)

	assert.Contains(t, out, "NpcThinkParamTemplate.csv")
	assert.Contains(t, out, "post-fill-cleanup")
	assert.Contains(t, out, "Careful, a lot of values have been set to 0")
}

func TestInspectColumnsJSON(t *testing.T) {
	mock := &application.Mock{
		OutputFormatFunc: func() string { return "json" },
		RegistryFunc: func() (*registry.Registry, error) {
			return registry.New(registry.TemplateSourceFunc(func(context.Context, string) (*table.Table, error) {
				return table.New([]string{"ID", "pad1", "pad2", "Unnamed: 14"}, 0), nil
			}))
		},
	}

	out, err := run(t, mock, "Behavior", "--columns")
	require.NoError(t, err)

	var report struct {
		Steps   []Step   `json:"steps"`
		Columns []Column `json:"columns"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report.Steps, 8)
	require.Len(t, report.Columns, 4)
	assert.Equal(t, []string{`renamed to "pad1,"`}, report.Columns[1].Rules)
	assert.Equal(t, []string{"padding [0|0]"}, report.Columns[2].Rules)
	assert.Equal(t, []string{"dropped"}, report.Columns[3].Rules)
}

func TestInspectUnknownKind(t *testing.T) {
	_, err := run(t, &application.Mock{}, "Weapon")
	assert.True(t, errors.IsUnknownKind(err))
}
