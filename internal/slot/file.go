package slot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// File keeps the payload in a single file. Writes go to a sibling temp file
// that is renamed over the target, so readers never see a torn payload.
type File struct {
	fs       afero.Fs
	path     string
	maxBytes int
}

// NewFile returns a slot backed by path on fsys. maxBytes of zero disables
// the size limit.
func NewFile(fsys afero.Fs, path string, maxBytes int) *File {
	return &File{fs: fsys, path: path, maxBytes: maxBytes}
}

// Path returns the file location.
func (f *File) Path() string { return f.path }

// Load reads the file; a missing file yields nil.
func (f *File) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(f.fs, f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading slot %s: %w", f.path, err)
	}
	return data, nil
}

// Store writes data atomically.
func (f *File) Store(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkQuota(data, f.maxBytes); err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := f.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating slot directory %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, "."+filepath.Base(f.path)+"."+uuid.NewString()+".tmp")
	if err := afero.WriteFile(f.fs, tmp, data, 0o600); err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("writing slot %s: %w", f.path, err)
	}
	if err := f.fs.Rename(tmp, f.path); err != nil {
		_ = f.fs.Remove(tmp)
		return fmt.Errorf("replacing slot %s: %w", f.path, err)
	}
	return nil
}
