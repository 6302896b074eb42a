package encoder

import (
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// PNGEncoder writes lossless previews. Pixmaps have no alpha, so the output
// uses the 8-bit RGB colour type.
type PNGEncoder struct {
	// Level defaults to png.BestCompression.
	Level png.CompressionLevel
}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }
func (e *PNGEncoder) Available() bool   { return true }

func (e *PNGEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	level := e.Level
	if level == png.DefaultCompression {
		level = png.BestCompression
	}
	return encodeWith(img, imaging.PNG, imaging.PNGCompressionLevel(level))
}
