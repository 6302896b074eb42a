//go:build ignore

// gen_fixtures creates small inputs for the convert/render smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/AnyUserName/pixmap-cli/internal/ppm"
)

const demoScene = `width: 96
height: 64
background: "#ffffff"
line_algo: bresenham
ops:
  - {op: rect, x: 4, y: 4, w: 40, h: 30, color: "#0000ff"}
  - {op: flood, x: 10, y: 10, color: "#ffcc00", boundary: "#0000ff"}
  - {op: line, x1: 0, y1: 63, x2: 95, y2: 0, color: "#ff0000"}
  - {op: circle, x: 70, y: 40, r: 15, color: "#00aa00"}
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(filepath.Join(dir, "tiles"), 0o755); err != nil {
		panic(err)
	}

	writeJPEG(filepath.Join(dir, "banner.jpg"), gradient(400, 225))
	for i := 1; i <= 3; i++ {
		writePNG(filepath.Join(dir, "tiles", fmt.Sprintf("tile-%d.png", i)), checker(32, 32, uint8(i*60)))
	}

	// A non-square P6 input exercises the ppm decoder.
	raw := ppm.FromImage(gradient(7, 3))
	if err := raw.Save(filepath.Join(dir, "strip.ppm")); err != nil {
		panic(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "demo.scene.yaml"), []byte(demoScene), 0o644); err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 6 fixtures in %s\n", dir)
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func checker(w, h int, base uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: base, G: base + 40, B: base + 80, A: 255}
			if (x/4+y/4)%2 == 0 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writePNG(path string, img image.Image) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}

func writeJPEG(path string, img image.Image) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 85}); err != nil {
		panic(err)
	}
}
