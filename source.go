package morphdict

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// ByteSource returns the decompressed bytes of one resolved resource name
// (see Resolve). Implementations must be safe for concurrent use, the loader
// calls Fetch from one goroutine per group.
type ByteSource interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// SourceFunc adapts a function to ByteSource.
type SourceFunc func(ctx context.Context, name string) ([]byte, error)

func (fn SourceFunc) Fetch(ctx context.Context, name string) ([]byte, error) {
	return fn(ctx, name)
}

// Compression describes how resources are stored by a source.
type Compression string

const (
	// Gzip: stored as <name>.gz, the layout of published artifact sets.
	Gzip Compression = "gzip"
	None Compression = "none"
)

// Suffix returns the suffix appended to resource names in storage.
func (c Compression) Suffix() string {
	if c == Gzip || c == "" {
		return ".gz"
	}
	return ""
}

func (c Compression) decode(r io.Reader) ([]byte, error) {
	switch c {
	case Gzip, "":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		data, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return data, nil
	case None:
		return io.ReadAll(r)
	}
	return nil, fmt.Errorf("unsupported compression %q", string(c))
}

func (c Compression) decodeBytes(data []byte) ([]byte, error) {
	if c == None {
		return data, nil
	}
	return c.decode(bytes.NewReader(data))
}

// Valid reports whether c is a known compression.
func (c Compression) Valid() bool {
	return c == "" || c == Gzip || c == None
}
