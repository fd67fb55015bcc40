// Package batch drives folder conversions: a recursive walk collects model
// files, a worker pool converts them together with their geometry and
// physics siblings, and a manifest plus a summary table record the outcome.
package batch

import (
	"encoding/binary"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/CafeFPS/rmdlconv/internal/convert"
	"github.com/CafeFPS/rmdlconv/internal/phy"
	"github.com/CafeFPS/rmdlconv/internal/studio"
	"github.com/CafeFPS/rmdlconv/internal/vg"
)

// Config holds shared settings for one batch run.
type Config struct {
	InputDir  string
	OutputDir string
	Mapping   studio.Mapping
	Workers   int
}

// Result holds the outcome of converting one model and its siblings.
type Result struct {
	Path     string // input path, relative to the batch root in folder mode
	Success  bool
	Geometry string // what happened to the .vg sibling, empty if absent
	Physics  bool   // a .phy sibling was converted
	Error    string
}

// Collect walks root recursively for model files, returning paths relative
// to root. The internal folder structure is preserved on output.
func Collect(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".rmdl") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: walk %s: %w", root, err)
	}
	return files, nil
}

// Run converts all files using a worker pool. Per-file conversion logs are
// suppressed; a progress line prints every two seconds instead.
func Run(cfg Config, files []string) []Result {
	total := len(files)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f models/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	fileChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range fileChan {
				rel := files[idx]
				r := ConvertFile(filepath.Join(cfg.InputDir, rel), filepath.Join(cfg.OutputDir, rel), cfg.Mapping, nil)
				r.Path = rel
				results[idx] = r
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range files {
		fileChan <- i
	}
	close(fileChan)

	wg.Wait()
	close(done)

	return results
}

// ConvertFile converts one model plus whatever siblings sit next to it.
// Every conversion runs in memory before anything touches disk, because the
// physics size patch lands in the model image; the model file is written
// first so a failure leaves no orphaned sibling files behind. logf receives
// detailed progress lines; pass nil to convert quietly.
func ConvertFile(inPath, outPath string, m studio.Mapping, logf func(string, ...any)) Result {
	r := Result{Path: inPath}

	if !m.Supported {
		r.Error = fmt.Sprintf("source version %s has no converter", m.Tag)
		return r
	}

	src, err := os.ReadFile(inPath)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	model, err := convert.Convert(src, filepath.Base(inPath), m.Version, logf)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	geom, geomStatus, err := convertGeometrySibling(inPath, src, m, logf)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	phyOut, err := convertPhysicsSibling(inPath, model)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		r.Error = err.Error()
		return r
	}
	if err := os.WriteFile(outPath, model, 0644); err != nil {
		r.Error = err.Error()
		return r
	}
	if geom != nil {
		if err := os.WriteFile(siblingPath(outPath, ".vg"), geom, 0644); err != nil {
			r.Error = fmt.Sprintf("batch: write geometry sibling: %v", err)
			return r
		}
		r.Geometry = geomStatus
	}
	if phyOut != nil {
		if err := os.WriteFile(siblingPath(outPath, ".phy"), phyOut, 0644); err != nil {
			r.Error = fmt.Sprintf("batch: write physics sibling: %v", err)
			return r
		}
		r.Physics = true
	}

	r.Success = true
	return r
}

func siblingPath(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// convertGeometrySibling converts the .vg next to inPath in memory and
// returns the output image plus a status label. Both are empty when no
// sibling exists.
func convertGeometrySibling(inPath string, src []byte, m studio.Mapping, logf func(string, ...any)) ([]byte, string, error) {
	log := func(format string, args ...any) {
		if logf != nil {
			logf(format, args...)
		}
	}

	data, err := os.ReadFile(siblingPath(inPath, ".vg"))
	if os.IsNotExist(err) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("batch: read geometry sibling: %w", err)
	}

	kind := vg.Detect(data)

	switch kind {
	case vg.KindRev4:
		states, conf := convert.RecoverBoneStates(src, m.Version)
		log("bone states located via %s\n", conf)

		out, err := vg.ConvertRev4(data, states, logf)
		if err != nil {
			return nil, "", err
		}
		return out, "converted (rev4)", nil

	case vg.KindRev1:
		// Already in the target layout.
		return data, "copied (rev1)", nil

	default:
		log("warning: %s geometry has no converter, copying through\n", kind)
		return data, fmt.Sprintf("copied (%s)", kind), nil
	}
}

// convertPhysicsSibling converts the .phy next to inPath in memory and
// stamps the output size into the model image. Nil means no sibling exists.
func convertPhysicsSibling(inPath string, model []byte) ([]byte, error) {
	data, err := os.ReadFile(siblingPath(inPath, ".phy"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("batch: read physics sibling: %w", err)
	}

	checksum := int32(binary.LittleEndian.Uint32(model[studio.HeaderV10ChecksumOff:]))

	out, err := phy.Convert(data, checksum)
	if err != nil {
		return nil, err
	}
	if err := phy.PatchModelPhySize(model, int32(len(out))); err != nil {
		return nil, err
	}
	return out, nil
}
