package ppm

import (
	"image"
	"image/color"
)

// Image is a width x height grid of packed 0xRRGGBB pixels.
// It implements image.Image so it can be handed to other encoders.
type Image struct {
	Width  int
	Height int
	Pix    []uint32
}

// NewImage allocates a zeroed (black) image.
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint32, width*height),
	}
}

func (m *Image) ColorModel() color.Model { return color.RGBAModel }

func (m *Image) Bounds() image.Rectangle { return image.Rect(0, 0, m.Width, m.Height) }

func (m *Image) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return color.RGBA{}
	}
	rgb := Unpack(m.Pix[y*m.Width+x])
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}
}

// Opaque reports true: P6 has no alpha channel. image/png uses this to pick
// an RGB colour type.
func (m *Image) Opaque() bool { return true }

// RGBA expands the image into an opaque *image.RGBA.
func (m *Image) RGBA() *image.RGBA {
	out := image.NewRGBA(m.Bounds())
	for i, p := range m.Pix[:m.Width*m.Height] {
		rgb := Unpack(p)
		px := out.Pix[4*i : 4*i+4]
		px[0], px[1], px[2], px[3] = rgb[0], rgb[1], rgb[2], 0xff
	}
	return out
}

// Save writes the image to path as P6.
func (m *Image) Save(path string, opts ...Option) error {
	return Save(path, m.Pix, m.Height, m.Width, opts...)
}

// FromImage flattens img into packed pixels. Alpha is dropped; colours are
// taken non-premultiplied.
func FromImage(img image.Image) *Image {
	if m, ok := img.(*Image); ok {
		return m
	}
	b := img.Bounds()
	out := NewImage(b.Dx(), b.Dy())

	// Fast path for the common decoder output.
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < out.Height; y++ {
			off := src.PixOffset(b.Min.X, b.Min.Y+y)
			for x := 0; x < out.Width; x++ {
				p := src.Pix[off+4*x : off+4*x+3]
				out.Pix[y*out.Width+x] = Pack(p[0], p[1], p[2])
			}
		}
		return out
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out.Pix[(y-b.Min.Y)*out.Width+(x-b.Min.X)] = Pack(c.R, c.G, c.B)
		}
	}
	return out
}
