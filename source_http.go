package morphdict

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/lwch/logging"
)

const defaultHTTPTimeout = 30 * time.Second

// HTTPSource downloads resources, names passed to Fetch are urls. When a
// cache directory is set the compressed payloads are kept there and reused
// by later loads.
type HTTPSource struct {
	cli         *http.Client
	compression Compression
	cacheDir    string
}

type HTTPOption func(*HTTPSource)

// WithTimeout bounds every request, 30 seconds by default.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		if d > 0 {
			s.cli.Timeout = d
		}
	}
}

func WithCacheDir(dir string) HTTPOption {
	return func(s *HTTPSource) {
		s.cacheDir = dir
	}
}

func WithHTTPClient(cli *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if cli != nil {
			s.cli = cli
		}
	}
}

func NewHTTPSource(c Compression, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		cli:         &http.Client{Timeout: defaultHTTPTimeout},
		compression: c,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	url := name + s.compression.Suffix()
	if s.cacheDir != "" {
		if data, err := os.ReadFile(s.cachePath(url)); err == nil {
			logging.Info("cache hit for %s", url)
			return s.compression.decodeBytes(data)
		}
	}
	data, err := s.download(ctx, url)
	if err != nil {
		return nil, err
	}
	if s.cacheDir != "" {
		if err := s.store(url, data); err != nil {
			logging.Error("cache %s: %v", url, err)
		}
	}
	out, err := s.compression.decodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	return out, nil
}

func (s *HTTPSource) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.cli.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s: unexpected status %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	logging.Info("downloaded %s, %s", url, size(len(data)))
	return data, nil
}

// cachePath keys cached files by url so different dictionaries sharing
// resource names do not collide.
func (s *HTTPSource) cachePath(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(s.cacheDir, fmt.Sprintf("%x-%s", sum[:8], path.Base(url)))
}

func (s *HTTPSource) store(url string, data []byte) error {
	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		return err
	}
	dst := s.cachePath(url)
	f, err := os.CreateTemp(s.cacheDir, ".download-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
