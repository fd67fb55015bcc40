package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/CafeFPS/rmdlconv/internal/batch"
	"github.com/CafeFPS/rmdlconv/internal/config"
	"github.com/CafeFPS/rmdlconv/internal/studio"
)

func newRootCommand() *cobra.Command {
	var flags config.Flags
	var configPath string

	cmd := &cobra.Command{
		Use:   "rmdlconv <path>",
		Short: "Convert studio model files down to sub-version 10",
		Long: "rmdlconv converts .rmdl model files from newer sub-versions down to\n" +
			"sub-version 10, together with their .vg geometry and .phy physics\n" +
			"siblings. <path> is a single model file or a folder to convert\n" +
			"recursively.\n\nSource versions: " + supportedTags(),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], configPath, flags)
		},
	}

	cmd.Flags().StringVar(&flags.SourceVersion, "source-version", "", `sub-version of the input models, e.g. "16" or "12.1"`)
	cmd.Flags().StringVar(&flags.OutputDir, "output-dir", "", "directory for converted files (default: rmdlconv_out next to a file, <folder>_rmdlconv_out for a folder)")
	cmd.Flags().IntVar(&flags.Workers, "workers", 0, "parallel conversions in folder mode (default: CPU count)")
	cmd.Flags().BoolVar(&flags.Rig, "rig", false, "also generate a .rrig next to each model")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML configuration file")

	return cmd
}

func supportedTags() string {
	var tags []string
	for _, m := range studio.Mappings() {
		if m.BatchFlag != "" {
			tags = append(tags, m.Tag)
		}
	}
	return strings.Join(tags, ", ")
}

func run(path, configPath string, flags config.Flags) error {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.Resolve(flags)

	if cfg.Rig {
		return fmt.Errorf("rig generation is not supported in this build")
	}
	if cfg.SourceVersion == "" {
		return fmt.Errorf("missing --source-version (or source_version in the config file)")
	}

	mapping, err := studio.FindMapping(cfg.SourceVersion)
	if err != nil {
		return err
	}
	if !mapping.Supported {
		return fmt.Errorf("source version %s is recognized but has no converter", mapping.Tag)
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return runBatch(path, cfg, mapping)
	}
	return runSingle(path, cfg, mapping)
}

// singleOutputPath places a converted file in outputDir, defaulting to an
// rmdlconv_out directory next to the input so the source files survive.
func singleOutputPath(path, outputDir string) string {
	if outputDir == "" {
		outputDir = filepath.Join(filepath.Dir(path), "rmdlconv_out")
	}
	return filepath.Join(outputDir, filepath.Base(path))
}

func runSingle(path string, cfg config.Config, mapping studio.Mapping) error {
	outPath := singleOutputPath(path, cfg.OutputDir)

	fmt.Printf("converting %s (v%s)...\n", path, mapping.Tag)

	logf := func(format string, args ...any) {
		fmt.Printf(format, args...)
	}
	r := batch.ConvertFile(path, outPath, mapping, logf)
	if !r.Success {
		return fmt.Errorf("convert %s: %s", path, r.Error)
	}

	if r.Geometry != "" {
		fmt.Printf("geometry sibling: %s\n", r.Geometry)
	}
	if r.Physics {
		fmt.Printf("physics sibling: converted\n")
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func runBatch(dir string, cfg config.Config, mapping studio.Mapping) error {
	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = filepath.Clean(dir) + "_rmdlconv_out"
	}

	files, err := batch.Collect(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .rmdl files under %s", dir)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	fmt.Printf("converting %d models from %s (v%s) into %s, %d workers...\n",
		len(files), dir, mapping.Tag, outDir, cfg.Workers)

	results := batch.Run(batch.Config{
		InputDir:  dir,
		OutputDir: outDir,
		Mapping:   mapping,
		Workers:   cfg.Workers,
	}, files)

	if err := batch.WriteManifest(filepath.Join(outDir, "manifest.json"), mapping.Tag, results); err != nil {
		return err
	}

	fmt.Println(batch.Summary(results))

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d models failed", failed, len(results))
	}
	return nil
}
