package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// New creates an empty manifest with defaults.
func New(profileName string) *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:     profileName,
		BasePath:    "./",
		Images:      make(map[string]Pixmap),
	}
}

// ComputeStats recalculates aggregate statistics from images.
func (m *Manifest) ComputeStats() {
	var s Stats
	s.TotalImages = len(m.Images)
	for _, p := range m.Images {
		s.TotalInputBytes += p.Source.Size
		s.TotalOutputBytes += p.Size
		if p.Resized {
			s.Resized++
		}
	}
	m.Stats = s
}

// WriteJSON serializes the manifest to a JSON file. Map keys are emitted
// sorted, so identical runs produce identical files apart from generated_at.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a manifest written by WriteJSON.
func ReadJSON(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}
