package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AnyUserName/pixmap-cli/internal/manifest"
	"github.com/AnyUserName/pixmap-cli/internal/pipeline"
	"github.com/AnyUserName/pixmap-cli/internal/profile"
	"github.com/spf13/cobra"
)

var (
	convertOutDir  string
	convertProfile string
	convertFormat  string
	convertWorkers int
	convertQuality int
)

var convertCmd = &cobra.Command{
	Use:   "convert <input_dir>",
	Short: "Convert a directory of images to PPM and write a manifest",
	Long: `Scans input directory for images (png, jpg, jpeg, gif, bmp, tiff, webp,
ppm), fits each into the selected profile's bounds, encodes it as a binary
PPM (P6) file and writes a manifest file.

Output filenames are content-addressed: <key>.<w>.<h>.<hash>.ppm`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutDir, "out", "o", "./pixmap_out", "output directory")
	convertCmd.Flags().StringVarP(&convertProfile, "profile", "p", "original",
		fmt.Sprintf("processing profile %v", profile.Names()))
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "ppm", "output format: ppm, png, jpeg")
	convertCmd.Flags().IntVarP(&convertWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	convertCmd.Flags().IntVarP(&convertQuality, "quality", "q", 0, "jpeg quality 1-100 (0 = default)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	start := time.Now()

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(convertOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	prof := profile.Get(convertProfile)

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("profile: %s (max=%dx%d, filter=%s)", prof.Name, prof.MaxWidth, prof.MaxHeight, prof.Filter)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Profile:   prof,
		Format:    convertFormat,
		Quality:   convertQuality,
		Workers:   convertWorkers,
		Logf: func(format string, args ...any) {
			if verbose {
				logVerbose(format, args...)
				return
			}
			// Errors and warnings are shown even without --verbose.
			if strings.HasPrefix(format, "error") || strings.HasPrefix(format, "warning") {
				fmt.Fprintf(cmd.ErrOrStderr(), "[pixmap] "+format+"\n", args...)
			}
		},
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	manifestPath := filepath.Join(absOutput, manifest.FileName)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printConvertReport(m, time.Since(start))
	return nil
}

func printConvertReport(m *manifest.Manifest, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("  pixmap convert complete")
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Images:      %d\n", s.TotalImages)
	if s.Resized > 0 {
		fmt.Printf("  Resized:     %d\n", s.Resized)
	}
	fmt.Printf("  Input size:  %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size: %s\n", formatBytes(s.TotalOutputBytes))
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:     %d\n", m.BuildInfo.Workers)
	}
	fmt.Println()

	// Ten largest outputs.
	keys := make([]string, 0, len(m.Images))
	for k := range m.Images {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return m.Images[keys[i]].Size > m.Images[keys[j]].Size
	})
	n := min(len(keys), 10)
	if n > 0 {
		fmt.Printf("  Top %d largest:\n", n)
		for _, k := range keys[:n] {
			p := m.Images[k]
			fmt.Printf("    %-40s %5dx%-5d %8s\n", truncKey(k, 40), p.Width, p.Height, formatBytes(p.Size))
		}
		fmt.Println()
	}

	fmt.Printf("  Manifest:    %s\n", manifest.FileName)
	fmt.Println()
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
