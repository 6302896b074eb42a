// Package canvas provides a runtime-sized pixel buffer with simple raster
// drawing primitives. Pixels are packed 0xRRGGBB values stored row-major.
package canvas

import (
	"github.com/AnyUserName/pixmap-cli/internal/ppm"
)

// LineAlgo selects the rasterizer used by DrawLine.
type LineAlgo int

const (
	DDA LineAlgo = iota
	Bresenham
)

func (a LineAlgo) String() string {
	switch a {
	case DDA:
		return "dda"
	case Bresenham:
		return "bresenham"
	}
	return "unknown"
}

// Canvas is a width x height grid of packed pixels. The zero value is an
// empty 0x0 canvas.
type Canvas struct {
	width  int
	height int
	pix    []uint32

	// LineAlgo is used by DrawLine and DrawRect.
	LineAlgo LineAlgo
	// Transform, when set, maps the endpoints passed to DrawLine and the
	// corners passed to DrawRect before they are rasterized.
	Transform *Affine
}

// New allocates a black canvas. Negative dimensions are treated as zero.
func New(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	return &Canvas{
		width:  width,
		height: height,
		pix:    make([]uint32, width*height),
	}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Pixels returns the backing buffer. Writes to it are visible on the canvas.
func (c *Canvas) Pixels() []uint32 { return c.pix }

// Image returns a view of the canvas sharing its buffer.
func (c *Canvas) Image() *ppm.Image {
	return &ppm.Image{Width: c.width, Height: c.height, Pix: c.pix}
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

// At returns the pixel at (x, y), or 0 outside the canvas.
func (c *Canvas) At(x, y int) uint32 {
	if !c.inside(x, y) {
		return 0
	}
	return c.pix[y*c.width+x]
}

// Set writes one pixel. Coordinates outside the canvas are ignored.
func (c *Canvas) Set(x, y int, color uint32) {
	if c.inside(x, y) {
		c.pix[y*c.width+x] = color
	}
}

// SetIndex writes the pixel at a flat row-major index. Out-of-range indexes
// are ignored.
func (c *Canvas) SetIndex(i int, color uint32) {
	if i >= 0 && i < len(c.pix) {
		c.pix[i] = color
	}
}

// Fill paints the whole canvas.
func (c *Canvas) Fill(color uint32) {
	for i := range c.pix {
		c.pix[i] = color
	}
}

// FillRect paints the w x h rectangle with its top-left corner at (x, y),
// clipped to the canvas.
func (c *Canvas) FillRect(x, y, w, h int, color uint32) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, c.width), min(y+h, c.height)
	for row := y0; row < y1; row++ {
		line := c.pix[row*c.width : (row+1)*c.width]
		for col := x0; col < x1; col++ {
			line[col] = color
		}
	}
}

// DrawRect outlines the rectangle spanning (x, y) to (x+w, y+h) inclusive.
// Under a rotating Transform the outline stays a closed quadrilateral.
func (c *Canvas) DrawRect(x, y, w, h int, color uint32) {
	c.DrawLine(x, y, x+w, y, color)
	c.DrawLine(x, y, x, y+h, color)
	c.DrawLine(x, y+h, x+w, y+h, color)
	c.DrawLine(x+w, y, x+w, y+h, color)
}

// Save writes the canvas to path as a P6 image.
func (c *Canvas) Save(path string, opts ...ppm.Option) error {
	return ppm.Save(path, c.pix, c.height, c.width, opts...)
}
