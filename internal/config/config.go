package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the conversion settings a run starts from. Everything can come
// from a TOML file, from CLI flags, or from defaults; flags win.
type Config struct {
	// SourceVersion is the sub-version tag of the input models, e.g. "16"
	// or "12.1".
	SourceVersion string `toml:"source_version"`

	// OutputDir receives converted files. Empty means "<input>_rmdlconv_out"
	// next to an input folder, or an "rmdlconv_out" directory next to a
	// single input file.
	OutputDir string `toml:"output_dir"`

	Workers int `toml:"workers"`

	// Rig asks for .rrig generation alongside the model. Not implemented,
	// kept so configs naming it get a clear error instead of a parse failure.
	Rig bool `toml:"rig"`
}

// Load reads a TOML config file. Fields not set in the file keep their zero
// values until Resolve fills them in.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	SourceVersion string
	OutputDir     string
	Workers       int
	Rig           bool
}

// Resolve applies flag overrides and fills remaining empty fields with
// defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.SourceVersion != "" {
		c.SourceVersion = flags.SourceVersion
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Rig {
		c.Rig = true
	}

	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}
