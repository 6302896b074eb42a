package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/pixmap-cli/internal/hasher"
	"github.com/AnyUserName/pixmap-cli/internal/manifest"
	"github.com/AnyUserName/pixmap-cli/internal/ppm"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Validate a pixmap manifest and check referenced files",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	manifestPath := args[0]

	m, err := manifest.ReadJSON(manifestPath)
	if err != nil {
		return err
	}

	errors := validateManifest(m, filepath.Dir(manifestPath))

	if len(errors) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d images, all files present and matching\n", m.Stats.TotalImages)
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errors))
	for _, e := range errors {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errors))
}

func validateManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}

	seenPaths := map[string]string{}
	for key, p := range m.Images {
		if p.Width < 0 || p.Height < 0 {
			errs = append(errs, fmt.Sprintf("image %q: invalid dimensions %dx%d", key, p.Width, p.Height))
		}
		if p.Hash == "" {
			errs = append(errs, fmt.Sprintf("image %q: missing hash", key))
		}
		if p.Path == "" {
			errs = append(errs, fmt.Sprintf("image %q: missing path", key))
			continue
		}
		if other, dup := seenPaths[p.Path]; dup {
			errs = append(errs, fmt.Sprintf("image %q: path %q also used by %q", key, p.Path, other))
		}
		seenPaths[p.Path] = key

		fullPath := filepath.Join(baseDir, filepath.FromSlash(p.Path))
		sum, size, err := hasher.FileHash(fullPath, 0)
		if err != nil {
			errs = append(errs, fmt.Sprintf("image %q: file not readable: %s", key, p.Path))
			continue
		}
		if p.Size > 0 && size != p.Size {
			errs = append(errs, fmt.Sprintf("image %q: size mismatch: manifest=%d, disk=%d", key, p.Size, size))
		}
		if p.Hash != "" && sum != p.Hash {
			errs = append(errs, fmt.Sprintf("image %q: hash mismatch: manifest=%s, disk=%s", key, p.Hash, sum))
		}

		if p.Format == "ppm" {
			if msg := checkPPMHeader(fullPath, p); msg != "" {
				errs = append(errs, fmt.Sprintf("image %q: %s", key, msg))
			}
		}
	}

	if m.Stats.TotalImages != len(m.Images) {
		errs = append(errs, fmt.Sprintf("stats.total_images mismatch: %d != %d", m.Stats.TotalImages, len(m.Images)))
	}

	return errs
}

func checkPPMHeader(path string, p manifest.Pixmap) string {
	f, err := os.Open(path)
	if err != nil {
		return err.Error()
	}
	defer f.Close()

	cfg, err := ppm.DecodeConfig(f)
	if err != nil {
		return err.Error()
	}
	if cfg.Width != p.Width || cfg.Height != p.Height {
		return fmt.Sprintf("header says %dx%d, manifest %dx%d", cfg.Width, cfg.Height, p.Width, p.Height)
	}
	return ""
}
