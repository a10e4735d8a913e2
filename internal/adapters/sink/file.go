package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
)

// File writes artifacts into a directory under their conventional name,
// replacing the previous file of the same format.
type File struct {
	dir string
}

func NewFile(dir string) *File {
	return &File{dir: dir}
}

func (f *File) Name() string { return "file" }

func (f *File) Save(_ context.Context, artifact *entity.Artifact) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(f.dir, artifact.FileName)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
