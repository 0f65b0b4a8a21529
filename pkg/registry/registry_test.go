package registry_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/paramconv/pkg/errors"
	"github.com/agentstation/paramconv/pkg/registry"
	"github.com/agentstation/paramconv/pkg/table"
)

// headerSource serves templates that contain exactly the given header.
func headerSource(calls *atomic.Int32, columns ...string) registry.TemplateSource {
	return registry.TemplateSourceFunc(func(_ context.Context, name string) (*table.Table, error) {
		if calls != nil {
			calls.Add(1)
		}
		return table.New(columns, 0), nil
	})
}

func TestBuiltinKinds(t *testing.T) {
	r, err := registry.New(nil)
	require.NoError(t, err)

	assert.Equal(t, []registry.Kind{"Atk", "Behavior", "Bullet", "Npc", "NpcThink"}, r.Kinds())
	for _, d := range r.Definitions() {
		t.Run(string(d.Kind), func(t *testing.T) {
			require.NoError(t, d.Validate())
			assert.NotEmpty(t, d.Template)
			assert.Empty(t, d.Rules.Overlaps())
			assert.NotEmpty(t, d.Rules.Drop, "every shipped kind drops its trailing artifact column")
		})
	}
}

func TestBuiltinRuleData(t *testing.T) {
	r, err := registry.New(nil)
	require.NoError(t, err)

	atk, err := r.Definition("Atk")
	require.NoError(t, err)
	assert.True(t, atk.Rules.DefaultValue.Equal(table.Int(0)))
	assert.True(t, atk.Rules.Constants["AppearAiSoundId"].Equal(table.Int(2100)))
	assert.True(t, atk.Rules.Constants["HitAiSoundId"].Equal(table.Int(2010)))
	assert.Equal(t, "[0|0|0|0|0|0|0|0|0|0]", atk.Rules.Padding["pad7"])
	assert.Equal(t, "pad7,", atk.Rules.Rename["pad7"])

	think, err := r.Definition("NpcThink")
	require.NoError(t, err)
	assert.True(t, think.Rules.DefaultValue.Equal(table.Int(-1)))
	require.NotNil(t, think.Rules.Cleanup)
	assert.True(t, think.Rules.Cleanup.Replacement.Equal(table.Int(0)))
	assert.Len(t, think.Rules.SentinelColumns, 13)
	assert.Equal(t, "[0|0|0|0|0|0|0|0|0|0|0|0|0|0|0|0]", think.Rules.Padding["pad4"])
	assert.NotEmpty(t, think.Notice)

	bullet, err := r.Definition("bullet")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "ID"}, bullet.Labels)
	assert.True(t, bullet.Rules.SentinelValue().Equal(table.Int(-1)))
}

func TestDefinitionIsACopy(t *testing.T) {
	r, err := registry.New(nil)
	require.NoError(t, err)

	d, err := r.Definition("Npc")
	require.NoError(t, err)
	d.Rules.Constants["enableAILockDmyPoly_212"] = table.Int(99)

	again, err := r.Definition("Npc")
	require.NoError(t, err)
	assert.True(t, again.Rules.Constants["enableAILockDmyPoly_212"].Equal(table.Int(1)))
}

func TestUnknownKind(t *testing.T) {
	r, err := registry.New(headerSource(nil, "ID"))
	require.NoError(t, err)

	_, _, err = r.Get(context.Background(), "Weapon")
	require.Error(t, err)
	assert.True(t, errors.IsUnknownKind(err))
	assert.Contains(t, err.Error(), "NpcThink")

	_, err = r.Definition("")
	assert.True(t, errors.IsUnknownKind(err))
}

func TestGetLoadsSchemaOnce(t *testing.T) {
	var calls atomic.Int32
	r, err := registry.New(headerSource(&calls, "ID", "pad1", "pad2", "Unnamed: 14"))
	require.NoError(t, err)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, rs, err := r.Get(ctx, "BEHAVIOR")
			assert.NoError(t, err)
			assert.Equal(t, 4, s.Len())
			assert.Equal(t, "pad1,", rs.Rename["pad1"])
		}()
	}
	wg.Wait()

	_, _, err = r.Get(ctx, "behavior")
	require.NoError(t, err)
	assert.LessOrEqual(t, calls.Load(), int32(8))
	before := calls.Load()
	_, _, err = r.Get(ctx, "Behavior")
	require.NoError(t, err)
	assert.Equal(t, before, calls.Load())
}

func TestGetWithoutSource(t *testing.T) {
	r, err := registry.New(nil)
	require.NoError(t, err)

	_, _, err = r.Get(context.Background(), "Atk")
	var cfg *errors.ConfigError
	assert.ErrorAs(t, err, &cfg)
}

func TestBadTemplate(t *testing.T) {
	r, err := registry.New(headerSource(nil))
	require.NoError(t, err)

	_, _, err = r.Get(context.Background(), "Atk")
	assert.True(t, errors.IsSchemaError(err))
}

func TestDefinitionsDir(t *testing.T) {
	dir := t.TempDir()
	custom := `kind: atk
template: AtkCustom.csv
rules:
  default_value: 0
  constants:
    AppearAiSoundId: 3000
`
	weapon := `kind: Weapon
template: EquipParamWeapon.csv
rules:
  default_value: 0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "atk.yaml"), []byte(custom), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "weapon.yml"), []byte(weapon), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("ignored"), 0o644))

	r, err := registry.New(nil, registry.WithDefinitionsDir(dir))
	require.NoError(t, err)

	assert.Contains(t, r.Kinds(), registry.Kind("Weapon"))
	atk, err := r.Definition("ATK")
	require.NoError(t, err)
	assert.Equal(t, "AtkCustom.csv", atk.Template)
	assert.True(t, atk.Rules.Constants["AppearAiSoundId"].Equal(table.Int(3000)))
}

func TestDefinitionsDirErrors(t *testing.T) {
	_, err := registry.New(nil, registry.WithDefinitionsDir(filepath.Join(t.TempDir(), "missing")))
	var cfg *errors.ConfigError
	assert.ErrorAs(t, err, &cfg)

	bad := fstest.MapFS{"bad.yaml": {Data: []byte("kind: Bad\nrules:\n  default_value: 0\n")}}
	_, err = registry.New(nil, registry.WithDefinitionsFS(bad))
	var parse *errors.ParseError
	require.ErrorAs(t, err, &parse)
	assert.Equal(t, "bad.yaml", parse.File)
	assert.True(t, errors.IsValidationError(err))

	noDefault := fstest.MapFS{"x.yaml": {Data: []byte("kind: X\ntemplate: x.csv\nrules:\n  padding:\n    p: \"[0]\"\n")}}
	_, err = registry.New(nil, registry.WithDefinitionsFS(noDefault))
	require.ErrorAs(t, err, &parse)
	assert.Equal(t, "x.yaml", parse.File)
	assert.ErrorContains(t, err, "default_value")

	broken := fstest.MapFS{"broken.yaml": {Data: []byte("kind: [")}}
	_, err = registry.New(nil, registry.WithDefinitionsFS(broken))
	assert.ErrorAs(t, err, &parse)
}

func TestWithoutBuiltins(t *testing.T) {
	fsys := fstest.MapFS{"one.yaml": {Data: []byte("kind: One\ntemplate: one.csv\nrules:\n  default_value: 0\n")}}
	r, err := registry.New(nil, registry.WithoutBuiltins(), registry.WithDefinitionsFS(fsys))
	require.NoError(t, err)
	assert.Equal(t, []registry.Kind{"One"}, r.Kinds())
}
