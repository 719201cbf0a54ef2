package transfer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileTarget reads and writes a document on a filesystem.
type FileTarget struct {
	fs   afero.Fs
	path string
}

func NewFileTarget(fs afero.Fs, path string) *FileTarget {
	return &FileTarget{fs: fs, path: path}
}

func (f *FileTarget) Location() string {
	return f.path
}

// Write replaces the file through a temporary sibling and a rename, so a
// reader never sees a half-written document.
func (f *FileTarget) Write(_ context.Context, doc []byte) error {
	dir := filepath.Dir(f.path)
	if err := f.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(f.fs, dir, ".arnorgym-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = f.fs.Remove(tmpName) }()

	if _, err := tmp.Write(doc); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := f.fs.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := f.fs.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("rename to %s: %w", f.path, err)
	}
	return nil
}

func (f *FileTarget) Read(_ context.Context) ([]byte, error) {
	if !isJSONName(f.path) {
		return nil, ErrNotJSON
	}
	b, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return b, nil
}
