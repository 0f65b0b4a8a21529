package convert

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/agentstation/paramconv/internal/csvcodec"
	"github.com/agentstation/paramconv/pkg/errors"
	"github.com/agentstation/paramconv/pkg/logging"
	"github.com/agentstation/paramconv/pkg/registry"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const atkDefinition = `kind: Atk
template: AtkParamNPCTemplate.csv
labels: [ID]
notice: check the sounds
rules:
  default_value: 0
  transfers:
    - source: knockbackDist_DirectHit
      target: knockbackDist
  constants:
    AppearAiSoundId: 2100
  padding:
    pad4: "[0|0|0]"
    pad7: "[0|0|0|0]"
  drop: ["Unnamed: 5"]
  rename:
    pad7: "pad7,"
`

type fixture struct {
	dir string
	reg *registry.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	templates := filepath.Join(dir, "template")
	require.NoError(t, os.MkdirAll(templates, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(templates, "AtkParamNPCTemplate.csv"),
		[]byte("ID,knockbackDist,pad4,AppearAiSoundId,pad7,\n"), 0o644))

	reg, err := registry.New(csvcodec.NewDirSource(templates),
		registry.WithoutBuiltins(),
		registry.WithDefinitionsFS(fstest.MapFS{"atk.yaml": {Data: []byte(atkDefinition)}}),
	)
	require.NoError(t, err)
	return &fixture{dir: dir, reg: reg}
}

func (f *fixture) input(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestRun(t *testing.T) {
	f := newFixture(t)
	in := f.input(t, "AtkParam.csv", "ID,knockbackDist_DirectHit,extra\n5,12,x\n6,,y\n")
	out := filepath.Join(f.dir, "output", "AtkParam.csv")

	c, err := New(f.reg)
	require.NoError(t, err)
	rep, err := c.Run(context.Background(), Job{Kind: "atk", Input: in, Output: out})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t,
		"ID,knockbackDist,pad4,AppearAiSoundId,\"pad7,\"\n"+
			"5,12,[0|0|0],2100,[0|0|0|0]\n"+
			"6,0,[0|0|0],2100,[0|0|0|0]\n",
		string(data))

	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, registry.Kind("Atk"), rep.Kind)
	assert.Equal(t, 2, rep.Stats.Rows)
	assert.Equal(t, []string{"knockbackDist_DirectHit", "extra"}, rep.Stats.Discarded)
	assert.Equal(t, "check the sounds", rep.Notice)
}

func TestRunLogsSummary(t *testing.T) {
	f := newFixture(t)
	in := f.input(t, "AtkParam.csv", "ID,knockbackDist_DirectHit,extra\n5,12,x\n6,,y\n")
	out := filepath.Join(f.dir, "output", "AtkParam.csv")

	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)
	c, err := New(f.reg)
	require.NoError(t, err)
	_, err = c.Run(ctx, Job{Kind: "Atk", Input: in, Output: out})
	require.NoError(t, err)

	entry, ok := tl.Find("File saved successfully")
	require.True(t, ok, "save line logged")
	assert.Equal(t, out, entry["output"])
	assert.Equal(t, "Atk", entry["kind"])
	assert.Contains(t, entry["summary"], "2 rows x 5 columns (1 matched, ")
	assert.Contains(t, entry["summary"], "2 discarded input columns")

	notice, ok := tl.Find("check the sounds")
	require.True(t, ok)
	assert.Equal(t, "warn", notice["level"])
}

func TestRunFailureWritesNothing(t *testing.T) {
	f := newFixture(t)
	out := filepath.Join(f.dir, "output", "bad.csv")
	c, err := New(f.reg)
	require.NoError(t, err)

	t.Run("malformed input", func(t *testing.T) {
		in := f.input(t, "bad.csv", "ID\n1,2\n")
		_, err := c.Run(context.Background(), Job{Kind: "Atk", Input: in, Output: out})
		assert.True(t, errors.IsTableError(err))
		assert.NoFileExists(t, out)
	})

	t.Run("unknown kind", func(t *testing.T) {
		in := f.input(t, "ok.csv", "ID\n1\n")
		_, err := c.Run(context.Background(), Job{Kind: "Weapon", Input: in, Output: out})
		assert.True(t, errors.IsUnknownKind(err))
		assert.NoFileExists(t, out)
	})

	t.Run("missing template", func(t *testing.T) {
		reg, err := registry.New(csvcodec.NewDirSource(filepath.Join(f.dir, "nowhere")))
		require.NoError(t, err)
		c, err := New(reg)
		require.NoError(t, err)
		in := f.input(t, "npc.csv", "ID\n1\n")
		_, err = c.Run(context.Background(), Job{Kind: "Npc", Input: in, Output: out})
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.NoFileExists(t, out)
	})
}

func TestRunPathChecks(t *testing.T) {
	f := newFixture(t)
	in := f.input(t, "AtkParam.csv", "ID\n1\n")
	existing := f.input(t, "existing.csv", "old\n")
	ctx := context.Background()

	c, err := New(f.reg)
	require.NoError(t, err)

	_, err = c.Run(ctx, Job{Kind: "Atk", Output: existing})
	assert.True(t, errors.IsNoFileSelected(err))

	_, err = c.Run(ctx, Job{Kind: "Atk", Input: in})
	assert.True(t, errors.IsNoFileSelected(err))

	_, err = c.Run(ctx, Job{Kind: "Atk", Input: in, Output: in})
	assert.True(t, errors.IsValidationError(err))

	_, err = c.Run(ctx, Job{Kind: "Atk", Input: in, Output: existing})
	assert.True(t, errors.IsValidationError(err))
	data, _ := os.ReadFile(existing)
	assert.Equal(t, "old\n", string(data))

	force, err := New(f.reg, WithOverwrite(true))
	require.NoError(t, err)
	_, err = force.Run(ctx, Job{Kind: "Atk", Input: in, Output: existing})
	require.NoError(t, err)
}

func TestRunAll(t *testing.T) {
	f := newFixture(t)
	var jobs []Job
	for _, name := range []string{"a.csv", "b.csv", "c.csv", "d.csv", "e.csv"} {
		in := f.input(t, name, "ID,knockbackDist\n1,2\n")
		jobs = append(jobs, Job{Kind: "Atk", Input: in, Output: OutputPath(filepath.Join(f.dir, "out"), in)})
	}

	c, err := New(f.reg, WithConcurrency(2))
	require.NoError(t, err)
	reports, err := c.RunAll(context.Background(), jobs)
	require.NoError(t, err)

	require.Len(t, reports, len(jobs))
	for i, r := range reports {
		require.NotNil(t, r)
		assert.Equal(t, jobs[i].Output, r.Output)
		assert.FileExists(t, r.Output)
	}
}

func TestRunAllStopsOnError(t *testing.T) {
	f := newFixture(t)
	good := f.input(t, "good.csv", "ID\n1\n")
	jobs := []Job{
		{Kind: "Weapon", Input: good, Output: filepath.Join(f.dir, "out", "x.csv")},
		{Kind: "Atk", Input: good, Output: filepath.Join(f.dir, "out", "good.csv")},
	}

	c, err := New(f.reg, WithConcurrency(1))
	require.NoError(t, err)
	reports, err := c.RunAll(context.Background(), jobs)
	assert.True(t, errors.IsUnknownKind(err))
	assert.Nil(t, reports[0])
	assert.Nil(t, reports[1])
}

func TestRunAllRejectsSharedOutput(t *testing.T) {
	f := newFixture(t)
	c, err := New(f.reg)
	require.NoError(t, err)

	out := filepath.Join(f.dir, "same.csv")
	_, err = c.RunAll(context.Background(), []Job{
		{Kind: "Atk", Input: "a.csv", Output: out},
		{Kind: "Atk", Input: "b.csv", Output: out},
	})
	assert.True(t, errors.IsValidationError(err))
}

func TestOptions(t *testing.T) {
	_, err := New(nil)
	assert.True(t, errors.IsValidationError(err))

	reg, err := registry.New(nil)
	require.NoError(t, err)
	_, err = New(reg, WithConcurrency(0))
	assert.True(t, errors.IsValidationError(err))
	_, err = New(reg, WithConcurrency(1000))
	assert.True(t, errors.IsValidationError(err))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("output", "NpcParam.csv"), OutputPath("", "/data/NpcParam.csv"))
	assert.Equal(t, filepath.Join("dst", "NpcParam.csv"), OutputPath("dst", "NpcParam.csv"))
}
