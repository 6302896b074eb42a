package encoder

import (
	"bytes"
	"image"

	"github.com/AnyUserName/pixmap-cli/internal/ppm"
)

// PPMEncoder writes binary P6 pixmaps. Alpha is dropped.
type PPMEncoder struct{}

func (e *PPMEncoder) Format() string    { return "ppm" }
func (e *PPMEncoder) Extension() string { return "ppm" }
func (e *PPMEncoder) Available() bool   { return true }

func (e *PPMEncoder) Encode(img image.Image, _ int) ([]byte, error) {
	m := ppm.FromImage(img)

	var buf bytes.Buffer
	buf.Grow(ppm.Size(m.Width, m.Height))

	if err := ppm.Encode(&buf, m.Pix, m.Height, m.Width); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
