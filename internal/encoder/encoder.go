// Package encoder turns decoded images into output file bytes. PPM is the
// native format; PNG and JPEG exist so a converted pixmap can be previewed
// in tools that cannot open netpbm files.
package encoder

import (
	"bytes"
	"fmt"
	"image"

	"github.com/AnyUserName/pixmap-cli/internal/ppm"
	"github.com/disintegration/imaging"
)

// Encoder produces one output format.
type Encoder interface {
	// Format is the canonical name used in manifests ("ppm", "png", "jpeg").
	Format() string

	// Encode serializes img. quality (1-100) only affects lossy formats.
	Encode(img image.Image, quality int) ([]byte, error)

	// Available reports whether Encode can run on this host.
	Available() bool

	// Extension is the output file extension without the dot.
	Extension() string
}

// flatten hands packed pixmaps to the stdlib codecs as *image.RGBA, which
// they encode without a per-pixel At call.
func flatten(img image.Image) image.Image {
	if m, ok := img.(*ppm.Image); ok {
		return m.RGBA()
	}
	return img
}

// encodeWith runs imaging.Encode into a buffer sized from the pixel count.
func encodeWith(img image.Image, format imaging.Format, opts ...imaging.EncodeOption) ([]byte, error) {
	img = flatten(img)
	b := img.Bounds()

	var buf bytes.Buffer
	buf.Grow(b.Dx() * b.Dy())
	if err := imaging.Encode(&buf, img, format, opts...); err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
