package csvcodec

import (
	"bufio"
	"context"
	"os"
	"path/filepath"

	"github.com/agentstation/paramconv/pkg/constants"
	"github.com/agentstation/paramconv/pkg/errors"
	"github.com/agentstation/paramconv/pkg/table"
)

// ReadFile loads the table stored at path.
func ReadFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapRead(path, err)
	}
	defer func() { _ = f.Close() }()

	return Read(bufio.NewReader(f), path)
}

// WriteFile stores t at path. The table is written to a temporary file in
// the same directory and renamed into place, so a failed write never
// leaves a partial file behind.
func WriteFile(path string, t *table.Table) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapWrite(path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapWrite(path, err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	bw := bufio.NewWriter(tmp)
	if err := Write(bw, t); err != nil {
		_ = tmp.Close()
		return errors.WrapWrite(path, err)
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		return errors.WrapWrite(path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapWrite(path, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		return errors.WrapWrite(path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.WrapWrite(path, err)
	}
	return nil
}

// DirSource reads templates from a directory.
type DirSource struct {
	Dir string
}

// NewDirSource returns a template source rooted at dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

// Template loads the named template file.
func (s *DirSource) Template(ctx context.Context, name string) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(filepath.Join(s.Dir, name))
}
