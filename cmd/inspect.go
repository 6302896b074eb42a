package cmd

import (
	"fmt"
	"io"

	"github.com/AnyUserName/pixmap-cli/internal/hasher"
	"github.com/AnyUserName/pixmap-cli/internal/ppm"
	"github.com/spf13/cobra"
)

var inspectDump int

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.ppm>",
	Short: "Decode a P6 file and print its dimensions and digest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(args[0], inspectDump, cmd.OutOrStdout())
	},
}

func init() {
	inspectCmd.Flags().IntVarP(&inspectDump, "dump", "n", 0, "print the first N pixels")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(path string, dump int, w io.Writer) error {
	img, err := ppm.Load(path)
	if err != nil {
		return err
	}
	sum, size, err := hasher.FileHash(path, 0)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "  File:       %s\n", path)
	fmt.Fprintf(w, "  Dimensions: %dx%d\n", img.Width, img.Height)
	fmt.Fprintf(w, "  Size:       %s\n", formatBytes(size))
	if want := int64(ppm.Size(img.Width, img.Height)); size != want {
		fmt.Fprintf(w, "  Trailing:   %d bytes after pixel data\n", size-want)
	}
	fmt.Fprintf(w, "  xxhash64:   %s\n", sum)

	n := min(dump, len(img.Pix))
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "  [%d,%d] #%06x\n", i%img.Width, i/img.Width, img.Pix[i])
	}
	return nil
}
