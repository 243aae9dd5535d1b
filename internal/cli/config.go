package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/lmgraph/pkg/cache"
	lmerrors "github.com/matzehuels/lmgraph/pkg/errors"
	"github.com/matzehuels/lmgraph/pkg/pipeline"
)

// defaultListen is the address `lmgraph serve` binds when neither flag nor
// config names one.
const defaultListen = "127.0.0.1:8080"

// Config holds user defaults from config.toml. Command-line flags take
// precedence over every field.
type Config struct {
	OutputDir string   `toml:"output_dir"`
	Formats   []string `toml:"formats"`
	Cache     string   `toml:"cache"`
	RedisAddr string   `toml:"redis_addr"`
	Listen    string   `toml:"listen"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		OutputDir: ".",
		Formats:   []string{pipeline.FormatJSON},
		Cache:     string(cache.KindFile),
		Listen:    defaultListen,
	}
}

// LoadConfig reads path on top of [DefaultConfig]. A missing file yields
// the defaults unless required is set.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return DefaultConfig(), nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, lmerrors.New(lmerrors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return cfg, lmerrors.Wrap(lmerrors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, lmerrors.New(lmerrors.ErrCodeInvalidFormat, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch cache.Kind(c.Cache) {
	case cache.KindFile, cache.KindMemory, cache.KindNone:
	case cache.KindRedis:
		if c.RedisAddr == "" {
			return lmerrors.New(lmerrors.ErrCodeInvalidInput, "cache = \"redis\" requires redis_addr")
		}
	default:
		return lmerrors.New(lmerrors.ErrCodeInvalidInput, "unknown cache %q", c.Cache)
	}
	return pipeline.ValidateFormats(c.Formats)
}
