package pipeline

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/AnyUserName/pixmap-cli/internal/encoder"
	"github.com/AnyUserName/pixmap-cli/internal/hasher"
	"github.com/AnyUserName/pixmap-cli/internal/manifest"
	_ "github.com/AnyUserName/pixmap-cli/internal/ppm"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// processResult holds the result of converting a single source image.
type processResult struct {
	key   string
	image manifest.Pixmap
	err   error
}

// processImage handles a single source image: decode, fit, encode, write.
func processImage(src Source, cfg Config, enc encoder.Encoder) processResult {
	result := processResult{key: src.Key}

	f, err := os.Open(src.AbsPath)
	if err != nil {
		result.err = fmt.Errorf("open %s: %w", src.RelPath, err)
		return result
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		result.err = fmt.Errorf("decode %s: %w", src.RelPath, err)
		return result
	}

	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()

	w, h, resize := cfg.Profile.Fit(origW, origH)
	if resize {
		img = imaging.Resize(img, w, h, cfg.Profile.ResampleFilter())
	}

	data, err := enc.Encode(img, cfg.Quality)
	if err != nil {
		result.err = fmt.Errorf("encode %s as %s: %w", src.RelPath, enc.Format(), err)
		return result
	}

	contentHash := hasher.ContentHash(data, 0)

	// Build filename: key.w.h.hash.ext
	keyDir := filepath.Dir(src.Key)
	fileName := fmt.Sprintf("%s.%d.%d.%s.%s",
		filepath.Base(src.Key), w, h, contentHash[:hasher.NameLen], enc.Extension())
	relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

	outPath := filepath.Join(cfg.OutputDir, relPath)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		result.err = fmt.Errorf("create dir for %s: %w", relPath, err)
		return result
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		result.err = fmt.Errorf("write %s: %w", relPath, err)
		return result
	}

	result.image = manifest.Pixmap{
		Source: manifest.SourceInfo{
			Width:  origW,
			Height: origH,
			Format: src.Format,
			Size:   src.Size,
		},
		Format:  enc.Format(),
		Width:   w,
		Height:  h,
		Size:    int64(len(data)),
		Hash:    contentHash,
		Path:    relPath,
		Resized: resize,
	}
	return result
}
