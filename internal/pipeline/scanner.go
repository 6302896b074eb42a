package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source represents a discovered image file.
type Source struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the input directory.
	RelPath string
	// Key is the asset key: the relpath without extension, or with it when
	// another source shares the same stem.
	Key string
	// Format is the source format (png, jpeg, gif, bmp, tiff, webp, ppm).
	Format string
	// Size is the file size in bytes.
	Size int64
}

// imageExtensions lists recognized image file extensions.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
	".ppm":  true,
	".pnm":  true,
}

// ErrDuplicateKey is returned when two sources map to the same asset key.
var ErrDuplicateKey = errors.New("duplicate asset key")

// ScanImages walks the input directory and returns all image sources.
// Paths inside skipDir (typically the output directory) are ignored.
// Both directories may be relative; they are compared in absolute form.
func ScanImages(inputDir, skipDir string) ([]Source, error) {
	inputDir, err := filepath.Abs(inputDir)
	if err != nil {
		return nil, err
	}
	if skipDir != "" {
		if skipDir, err = filepath.Abs(skipDir); err != nil {
			return nil, err
		}
	}

	var sources []Source
	err = filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if skipDir != "" && path == skipDir && path != inputDir {
				return filepath.SkipDir
			}
			// Skip hidden directories.
			if strings.HasPrefix(info.Name(), ".") && info.Name() != "." {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !imageExtensions[ext] {
			return nil
		}

		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}

		// Key: relative path without extension, using forward slashes.
		key := strings.TrimSuffix(relPath, filepath.Ext(relPath))
		key = filepath.ToSlash(key)

		// Normalize format name.
		format := strings.TrimPrefix(ext, ".")
		if format == "jpg" {
			format = "jpeg"
		}
		if format == "tif" {
			format = "tiff"
		}
		if format == "pnm" {
			format = "ppm"
		}

		sources = append(sources, Source{
			AbsPath: path,
			RelPath: filepath.ToSlash(relPath),
			Key:     key,
			Format:  format,
			Size:    info.Size(),
		})

		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := assignKeys(sources); err != nil {
		return nil, err
	}
	return sources, nil
}

// assignKeys gives every source whose stem is shared by another source its
// full relative path as key, so logo.png and logo.gif become distinct
// manifest entries.
func assignKeys(sources []Source) error {
	byKey := make(map[string][]int, len(sources))
	for i, s := range sources {
		byKey[s.Key] = append(byKey[s.Key], i)
	}
	for _, idx := range byKey {
		if len(idx) < 2 {
			continue
		}
		for _, i := range idx {
			sources[i].Key = sources[i].RelPath
		}
	}

	seen := make(map[string]string, len(sources))
	for _, s := range sources {
		if prev, ok := seen[s.Key]; ok {
			return fmt.Errorf("%w %q: %s and %s", ErrDuplicateKey, s.Key, prev, s.RelPath)
		}
		seen[s.Key] = s.RelPath
	}
	return nil
}
