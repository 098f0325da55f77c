package storage

import (
	"context"
	"os"

	"github.com/spf13/afero"
)

// localStorage keeps files on a filesystem rooted wherever the configured
// upload path points. The filesystem is abstracted behind afero so tests
// run against an in-memory one.
type localStorage struct {
	fs afero.Fs
}

// NewLocal creates a Storage backed by the host filesystem.
func NewLocal() Storage {
	return &localStorage{fs: afero.NewOsFs()}
}

// NewLocalWithFs creates a Storage backed by the given filesystem.
func NewLocalWithFs(fs afero.Fs) Storage {
	return &localStorage{fs: fs}
}

func (l *localStorage) Exists(_ context.Context, path string) (bool, error) {
	return afero.Exists(l.fs, path)
}

func (l *localStorage) Read(_ context.Context, path string) ([]byte, error) {
	return afero.ReadFile(l.fs, path)
}

func (l *localStorage) Write(_ context.Context, path string, data []byte) error {
	return afero.WriteFile(l.fs, path, data, 0o644)
}

func (l *localStorage) Delete(_ context.Context, path string) error {
	err := l.fs.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (l *localStorage) EnsureDir(_ context.Context, path string) error {
	return l.fs.MkdirAll(path, 0o755)
}
