package csvcodec

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/paramconv/pkg/errors"
	"github.com/agentstation/paramconv/pkg/table"
)

func TestReadHeaderNormalization(t *testing.T) {
	in := "\ufeffID,pad4,,ID,ID\n1,[0|0|0],,2,3\n"

	tbl, err := Read(strings.NewReader(in), "t.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"ID", "pad4", "Unnamed: 2", "ID.1", "ID.2"}, tbl.Columns())
	require.Equal(t, 1, tbl.Len())
	row := tbl.Row(0)
	assert.Equal(t, table.KindInt, row[0].Kind())
	assert.Equal(t, table.KindString, row[1].Kind())
	assert.True(t, row[2].IsNull())
}

func TestReadShortAndLongRows(t *testing.T) {
	tbl, err := Read(strings.NewReader("a,b,c\n1\n"), "short.csv")
	require.NoError(t, err)
	assert.True(t, tbl.Row(0)[1].IsNull())
	assert.True(t, tbl.Row(0)[2].IsNull())

	_, err = Read(strings.NewReader("a,b\n1,2\n1,2,3\n"), "long.csv")
	require.Error(t, err)
	var re *errors.TableReadError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "long.csv", re.Path)
	assert.Equal(t, 3, re.Line)
}

func TestReadMalformedQuote(t *testing.T) {
	_, err := Read(strings.NewReader("a,b\n\"1,2\n"), "bad.csv")
	assert.ErrorIs(t, err, errors.ErrTableRead)
}

func TestReadEmpty(t *testing.T) {
	tbl, err := Read(strings.NewReader(""), "empty.csv")
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumColumns())
	assert.Equal(t, 0, tbl.Len())
}

func TestRoundTripIsByteStable(t *testing.T) {
	in := "ID,knockbackDist,pad7,,name\n" +
		"100,1.50,[0|0|0|0|0|0|0|0|0|0],,\"a, b\"\n" +
		"-1,-0.0,[0|0|0],,x\n"

	tbl, err := Read(strings.NewReader(in), "")
	require.NoError(t, err)
	require.NoError(t, tbl.RenameColumn("Unnamed: 3", ""))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tbl))
	assert.Equal(t, in, buf.String())
}

func TestWriteQuotesCommaHeader(t *testing.T) {
	tbl, err := table.Build([]string{"ID", "pad7,"}, []table.Value{table.Int(1), table.String("[0|0]")})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tbl))
	assert.Equal(t, "ID,\"pad7,\"\n1,[0|0]\n", buf.String())

	back, err := Read(&buf, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "pad7,"}, back.Columns())
}

func TestWriteFileIsAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.csv")
	tbl, err := table.Build([]string{"ID"}, []table.Value{table.Int(7)})
	require.NoError(t, err)

	require.NoError(t, WriteFile(path, tbl))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ID\n7\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")

	back, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "7", back.Row(0)[0].String())
}

func TestWriteFileFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := WriteFile(filepath.Join(blocker, "out.csv"), table.New([]string{"ID"}, 0))
	assert.ErrorIs(t, err, errors.ErrTableWrite)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.True(t, errors.IsTableError(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "BehaviorTemplate.csv"), []byte("ID,pad1,pad2,\n"), 0o644))

	src := NewDirSource(dir)
	tbl, err := src.Template(context.Background(), "BehaviorTemplate.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"ID", "pad1", "pad2", "Unnamed: 3"}, tbl.Columns())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.Template(ctx, "BehaviorTemplate.csv")
	assert.ErrorIs(t, err, context.Canceled)
}
