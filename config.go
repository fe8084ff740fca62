package morphdict

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	envSource      = "MORPHDICT_SOURCE"
	envLocation    = "MORPHDICT_LOCATION"
	envCacheDir    = "MORPHDICT_CACHE_DIR"
	envHTTPTimeout = "MORPHDICT_HTTP_TIMEOUT" // seconds
)

// Config selects where a dictionary is loaded from.
type Config struct {
	// Source is one of fs, http or kv.
	Source string `yaml:"source"`
	// Location is a directory, an url prefix or a key prefix, depending on
	// Source.
	Location    string      `yaml:"location"`
	Compression Compression `yaml:"compression"`
	HTTP        struct {
		Timeout  time.Duration `yaml:"timeout"`
		CacheDir string        `yaml:"cache_dir"`
	} `yaml:"http"`
	KV struct {
		Dir string `yaml:"dir"`
	} `yaml:"kv"`
}

// DefaultConfig loads gzip compressed artifacts from the dict directory.
func DefaultConfig() Config {
	return Config{
		Source:      "fs",
		Location:    "dict",
		Compression: Gzip,
	}
}

// LoadConfig reads a yaml file over DefaultConfig and applies environment
// overrides. An empty path only applies the overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (cfg *Config) applyEnv() error {
	if v := os.Getenv(envSource); v != "" {
		cfg.Source = v
	}
	if v := os.Getenv(envLocation); v != "" {
		cfg.Location = v
	}
	if v := os.Getenv(envCacheDir); v != "" {
		cfg.HTTP.CacheDir = v
	}
	if v := os.Getenv(envHTTPTimeout); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envHTTPTimeout, err)
		}
		cfg.HTTP.Timeout = d
	}
	return nil
}

func (cfg Config) Validate() error {
	switch cfg.Source {
	case "fs", "http":
	case "kv":
		if cfg.KV.Dir == "" {
			return fmt.Errorf("kv source needs kv.dir")
		}
	default:
		return fmt.Errorf("unknown source %q", cfg.Source)
	}
	if !cfg.Compression.Valid() {
		return fmt.Errorf("unknown compression %q", string(cfg.Compression))
	}
	if cfg.Source == "http" && !strings.HasPrefix(cfg.Location, "http://") &&
		!strings.HasPrefix(cfg.Location, "https://") {
		return fmt.Errorf("http source needs an url location, got %q", cfg.Location)
	}
	return nil
}

// NewSource builds the byte source described by cfg. The returned close
// function releases the kv store, it is a no-op for other sources.
func (cfg Config) NewSource() (ByteSource, func() error, error) {
	nop := func() error { return nil }
	switch cfg.Source {
	case "fs":
		return NewDirSource(cfg.Compression), nop, nil
	case "http":
		return NewHTTPSource(cfg.Compression,
			WithTimeout(cfg.HTTP.Timeout),
			WithCacheDir(cfg.HTTP.CacheDir)), nop, nil
	case "kv":
		src, err := OpenKVSource(cfg.KV.Dir)
		if err != nil {
			return nil, nil, err
		}
		return src, src.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown source %q", cfg.Source)
}
