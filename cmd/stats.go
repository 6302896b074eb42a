package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/pixmap-cli/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a converted image directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path := args[0]

	// If path is a directory, look for manifest inside.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, manifest.FileName)
	}

	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}

	printStats(m)
	return nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Profile:          %s\n", m.Profile)
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:          %d\n", m.BuildInfo.Workers)
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Total images:     %d\n", s.TotalImages)
	fmt.Printf("  Resized:          %d\n", s.Resized)
	fmt.Printf("  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	if s.TotalInputBytes > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		fmt.Printf("  Expansion:        %.1f%% of input\n", ratio)
	}
	fmt.Println()

	// Per-source-format breakdown.
	type agg struct {
		count int
		bytes int64
	}
	bySource := map[string]agg{}
	var pixels int64
	for _, p := range m.Images {
		a := bySource[p.Source.Format]
		a.count++
		a.bytes += p.Source.Size
		bySource[p.Source.Format] = a
		pixels += int64(p.Width) * int64(p.Height)
	}
	formats := make([]string, 0, len(bySource))
	for f := range bySource {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	fmt.Println("  Source formats:")
	for _, f := range formats {
		a := bySource[f]
		fmt.Printf("    %-6s  %4d files  %s\n", f, a.count, formatBytes(a.bytes))
	}
	fmt.Println()
	fmt.Printf("  Output pixels:    %d\n", pixels)

	// Warnings.
	var warnings []string
	for key, p := range m.Images {
		if p.Width == 0 || p.Height == 0 {
			warnings = append(warnings, fmt.Sprintf("image %q is empty (%dx%d)", key, p.Width, p.Height))
		}
	}
	sort.Strings(warnings)
	if len(warnings) > 0 {
		fmt.Println()
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
	}
	fmt.Println()
}
