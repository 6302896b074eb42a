package encoder

import (
	"image"

	"github.com/disintegration/imaging"
)

// DefaultQuality applies when the requested quality is outside 1-100.
const DefaultQuality = 90

// JPEGEncoder writes lossy previews. Colours will not survive a round trip
// back to PPM exactly.
type JPEGEncoder struct{}

func (e *JPEGEncoder) Format() string    { return "jpeg" }
func (e *JPEGEncoder) Extension() string { return "jpg" }
func (e *JPEGEncoder) Available() bool   { return true }

func (e *JPEGEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}
	return encodeWith(img, imaging.JPEG, imaging.JPEGQuality(quality))
}
