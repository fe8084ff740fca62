package morphdict

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/lwch/logging"
)

// FSSource reads resources from a file system, e.g. a dictionary directory
// or an embed.FS bundled into the binary.
type FSSource struct {
	fsys        fs.FS
	compression Compression
}

// NewFSSource creates a source over fsys. Names passed to Fetch are
// slash separated and relative to the root of fsys.
func NewFSSource(fsys fs.FS, c Compression) *FSSource {
	return &FSSource{fsys: fsys, compression: c}
}

// NewDirSource creates a source reading from the host file system. Resource
// names are resolved by the loader against the location, so the location
// may be absolute or relative to the working directory.
func NewDirSource(c Compression) *FSSource {
	return &FSSource{fsys: hostFS{}, compression: c}
}

func (s *FSSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file := name + s.compression.Suffix()
	f, err := s.fsys.Open(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, file)
		}
		return nil, err
	}
	defer f.Close()
	data, err := s.compression.decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	logging.Info("read %s, %s decompressed", file, size(len(data)))
	return data, nil
}

// hostFS opens paths on the host as given, fs.FS forbids rooted names.
type hostFS struct{}

func (hostFS) Open(name string) (fs.File, error) {
	if strings.Contains(name, "\x00") {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	return os.Open(filepath.Clean(name))
}
