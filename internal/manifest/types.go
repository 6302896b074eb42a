package manifest

// Manifest is the top-level output of a pixmap convert run.
type Manifest struct {
	Version     int               `json:"version"`
	GeneratedAt string            `json:"generated_at"`
	Profile     string            `json:"profile"`
	BasePath    string            `json:"base_path"`
	BuildInfo   *BuildInfo        `json:"build_info,omitempty"`
	Images      map[string]Pixmap `json:"images"`
	Stats       Stats             `json:"stats"`
}

// BuildInfo captures run parameters for diagnostics.
type BuildInfo struct {
	Workers int `json:"workers"`
}

// Pixmap describes one source image and the file produced from it.
type Pixmap struct {
	Source  SourceInfo `json:"source"`
	Format  string     `json:"format"`  // "ppm" unless overridden
	Width   int        `json:"width"`
	Height  int        `json:"height"`
	Size    int64      `json:"size"`    // bytes on disk
	Hash    string     `json:"hash"`    // 16 hex chars of xxhash64
	Path    string     `json:"path"`    // relative to base_path
	Resized bool       `json:"resized,omitempty"`
}

// SourceInfo holds metadata about the input image.
type SourceInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
}

// Stats aggregates run metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalImages      int   `json:"total_images"`
	Resized          int   `json:"resized,omitempty"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// FileName is the manifest's name inside the output directory.
const FileName = "pixmap.manifest.json"
