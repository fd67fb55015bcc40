package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Manifest records one batch run next to its output.
type Manifest struct {
	RunID         string          `json:"run_id"`
	CreatedAt     time.Time       `json:"created_at"`
	SourceVersion string          `json:"source_version"`
	Files         []ManifestEntry `json:"files"`
}

// ManifestEntry represents one converted model in the manifest.
type ManifestEntry struct {
	File     string `json:"file"`
	Success  bool   `json:"success"`
	Geometry string `json:"geometry,omitempty"`
	Physics  bool   `json:"physics,omitempty"`
	Error    string `json:"error,omitempty"`
}

// WriteManifest writes manifest.json describing the run.
func WriteManifest(path, sourceVersion string, results []Result) error {
	m := Manifest{
		RunID:         uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		SourceVersion: sourceVersion,
		Files:         make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		m.Files[i] = ManifestEntry{
			File:     r.Path,
			Success:  r.Success,
			Geometry: r.Geometry,
			Physics:  r.Physics,
			Error:    r.Error,
		}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
