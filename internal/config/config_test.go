package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAndResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rmdlconv.toml")
	contents := []byte("source_version = \"16\"\noutput_dir = \"/tmp/out\"\nworkers = 3\n")
	if err := os.WriteFile(path, contents, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SourceVersion != "16" || cfg.OutputDir != "/tmp/out" || cfg.Workers != 3 {
		t.Fatalf("loaded config = %+v", cfg)
	}

	// Flags override the file.
	cfg.Resolve(Flags{SourceVersion: "19.1", Workers: 8})
	if cfg.SourceVersion != "19.1" {
		t.Fatalf("flag did not override source version: %q", cfg.SourceVersion)
	}
	if cfg.Workers != 8 {
		t.Fatalf("flag did not override workers: %d", cfg.Workers)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Fatalf("unset flag clobbered output dir: %q", cfg.OutputDir)
	}
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	if cfg.Workers <= 0 {
		t.Fatalf("workers default = %d", cfg.Workers)
	}
	// Output dir stays empty so callers can derive it from the input path.
	if cfg.OutputDir != "" {
		t.Fatalf("output dir default = %q", cfg.OutputDir)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("missing file loaded")
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("workers = {"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("malformed file loaded")
	}
}
