package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/AnyUserName/pixmap-cli/internal/encoder"
	"github.com/AnyUserName/pixmap-cli/internal/hasher"
	"github.com/AnyUserName/pixmap-cli/internal/ppm"
	"github.com/AnyUserName/pixmap-cli/internal/scene"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	out       string
	width     int
	height    int
	fill      string
	scenePath string
	format    string
	quality   int
	trace     bool

	// Set when the matching flag was given explicitly.
	sizeSet bool
	fillSet bool
}

var renderOpts renderOptions

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a canvas and write it as a PPM file",
	Long: `Renders a canvas and writes it to disk.

Without --scene the built-in demo is drawn: a 64x64 white canvas whose
first ten pixels are set to fixed dark colours, written to output.ppm.
--width, --height and --fill adjust the demo canvas. A YAML scene file
replaces the demo entirely.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := cmd.Flags()
		renderOpts.sizeSet = f.Changed("width") || f.Changed("height")
		renderOpts.fillSet = f.Changed("fill")
		return runRender(renderOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderOpts.out, "out", "o", "output.ppm", "output file")
	f.IntVar(&renderOpts.width, "width", 64, "canvas width in pixels")
	f.IntVar(&renderOpts.height, "height", 64, "canvas height in pixels")
	f.StringVar(&renderOpts.fill, "fill", "#ffffff", "background colour (#rrggbb, 0xrrggbb or decimal)")
	f.StringVarP(&renderOpts.scenePath, "scene", "s", "", "YAML scene file")
	f.StringVarP(&renderOpts.format, "format", "f", "ppm", "output format: ppm, png, jpeg")
	f.IntVarP(&renderOpts.quality, "quality", "q", 0, "jpeg quality 1-100 (0 = default)")
	f.BoolVar(&renderOpts.trace, "trace", false, "print every emitted pixel to stderr (ppm only)")
	rootCmd.AddCommand(renderCmd)
}

func loadScene(o renderOptions) (*scene.Scene, error) {
	if o.scenePath != "" {
		logVerbose("scene:   %s", o.scenePath)
		return scene.Load(o.scenePath)
	}

	s := scene.Default()
	if o.sizeSet {
		s.Width, s.Height = o.width, o.height
	}
	if o.fillSet {
		c, err := scene.ParseColor(o.fill)
		if err != nil {
			return nil, fmt.Errorf("--fill: %w", err)
		}
		s.Background = c
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func runRender(o renderOptions, stdout, stderr io.Writer) error {
	s, err := loadScene(o)
	if err != nil {
		return err
	}
	c, err := s.Render()
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	logVerbose("canvas:  %dx%d, %d ops", c.Width(), c.Height(), len(s.Ops))

	enc, err := encoder.NewRegistry().Lookup(o.format)
	if err != nil {
		return err
	}

	if enc.Format() == "ppm" {
		var opts []ppm.Option
		if o.trace {
			opts = append(opts, ppm.WithTrace(func(x, y int, rgb [3]byte) {
				fmt.Fprintf(stderr, "(%d,%d) %v\n", x, y, rgb)
			}))
		}
		if err := c.Save(o.out, opts...); err != nil {
			return err
		}
	} else {
		data, err := enc.Encode(c.Image(), o.quality)
		if err != nil {
			return fmt.Errorf("encode %s: %w", enc.Format(), err)
		}
		if err := os.WriteFile(o.out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", o.out, err)
		}
	}

	sum, size, err := hasher.FileHash(o.out, 0)
	if err != nil {
		return err
	}
	logVerbose("xxhash:  %s", sum)
	fmt.Fprintf(stdout, "wrote %s (%dx%d %s, %s)\n",
		o.out, c.Width(), c.Height(), enc.Format(), formatBytes(size))
	return nil
}
