package pipeline

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/AnyUserName/pixmap-cli/internal/encoder"
	"github.com/AnyUserName/pixmap-cli/internal/manifest"
	"github.com/AnyUserName/pixmap-cli/internal/profile"
)

// Config holds all parameters for a convert run.
type Config struct {
	InputDir  string
	OutputDir string
	Profile   profile.Profile
	Format    string // output format, "ppm" when empty
	Quality   int    // only used by lossy formats
	Workers   int

	// Logf receives progress and per-image errors. It is called from
	// worker goroutines and must be safe for concurrent use. Nil discards.
	Logf func(format string, args ...any)
}

// Pipeline orchestrates image conversion.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Format == "" {
		cfg.Format = "ppm"
	}
	if cfg.Logf == nil {
		cfg.Logf = func(string, ...any) {}
	}
	return &Pipeline{
		cfg:      cfg,
		registry: encoder.NewRegistry(),
	}
}

// Run converts every image under InputDir and returns the manifest.
// Individual failures are logged; Run fails only when nothing converted.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	logf := p.cfg.Logf

	enc, err := p.registry.Lookup(p.cfg.Format)
	if err != nil {
		return nil, err
	}

	// Step 1: Scan for images.
	sources, err := ScanImages(p.cfg.InputDir, p.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}
	logf("found %d images", len(sources))

	// Step 2: Convert in parallel.
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			logf("processing: %s", s.Key)
			results[idx] = processImage(s, p.cfg, enc)
			if r := results[idx]; r.err == nil {
				logf("done: %s -> %s", s.Key, r.image.Path)
			}
		}(i, src)
	}
	wg.Wait()

	// Step 3: Collect results into manifest.
	m := manifest.New(p.cfg.Profile.Name)

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		m.Images[r.key] = r.image
	}

	if len(errs) > 0 {
		for _, e := range errs {
			logf("error: %v", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to convert: %w", len(errs), errs[0])
		}
		logf("warning: %d of %d images had errors", len(errs), len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{Workers: p.cfg.Workers}
	m.ComputeStats()
	return m, nil
}
