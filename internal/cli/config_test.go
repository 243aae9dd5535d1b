package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	lmerrors "github.com/matzehuels/lmgraph/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
output_dir = "out"
formats = ["json", "svg"]
cache = "redis"
redis_addr = "localhost:6379"
listen = ":9000"
`)
	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "out")
	}
	if !slices.Equal(cfg.Formats, []string{"json", "svg"}) {
		t.Errorf("Formats = %v, want [json svg]", cfg.Formats)
	}
	if cfg.Cache != "redis" || cfg.RedisAddr != "localhost:6379" {
		t.Errorf("Cache = %q/%q, want redis/localhost:6379", cfg.Cache, cfg.RedisAddr)
	}
	if cfg.Listen != ":9000" {
		t.Errorf("Listen = %q, want %q", cfg.Listen, ":9000")
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `cache = "memory"`), true)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	def := DefaultConfig()
	if cfg.Cache != "memory" {
		t.Errorf("Cache = %q, want memory", cfg.Cache)
	}
	if cfg.Listen != def.Listen || cfg.OutputDir != def.OutputDir {
		t.Errorf("LoadConfig() = %+v, want defaults for unset keys", cfg)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")

	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("LoadConfig(optional) error: %v", err)
	}
	if cfg.Cache != DefaultConfig().Cache {
		t.Errorf("Cache = %q, want default", cfg.Cache)
	}

	_, err = LoadConfig(path, true)
	if !lmerrors.Is(err, lmerrors.ErrCodeFileNotFound) {
		t.Errorf("LoadConfig(required) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `cache = `},
		{"unknown key", `colour = "red"`},
		{"unknown cache", `cache = "disk"`},
		{"redis without addr", `cache = "redis"`},
		{"bad format", `formats = ["gif"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.content), true); err == nil {
				t.Error("LoadConfig() error = nil, want error")
			}
		})
	}
}
