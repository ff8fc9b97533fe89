package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Source reads raw document bytes by content path.
type Source interface {
	Open(ctx context.Context, path string) ([]byte, error)
}

// ErrNotExist is returned by sources when a path has no document.
var ErrNotExist = errors.New("document does not exist")

// FSSource reads documents from a filesystem rooted at the content directory.
type FSSource struct {
	fsys fs.FS
}

// NewFSSource serves documents from fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// NewDirSource serves documents from a directory on disk.
func NewDirSource(root string) *FSSource {
	return NewFSSource(os.DirFS(root))
}

func (s *FSSource) Open(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !fs.ValidPath(path) {
		return nil, fmt.Errorf("invalid content path %q", path)
	}
	data, err := fs.ReadFile(s.fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotExist
	}
	return data, err
}
