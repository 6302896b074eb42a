// Package ppm reads and writes binary PPM (P6) images with 8-bit channels.
//
// Pixels are packed 0xRRGGBB values in row-major order: the pixel at
// column x of row y lives at index y*width+x. The top byte of each value
// is ignored on output.
package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// MaxValue is the only channel maximum this package writes or accepts.
const MaxValue = 255

var (
	// ErrDimensions is returned for negative widths or heights.
	ErrDimensions = errors.New("ppm: invalid dimensions")
	// ErrShortBuffer is returned when the pixel slice holds fewer than
	// width*height values.
	ErrShortBuffer = errors.New("ppm: pixel buffer shorter than width*height")
)

// Option configures Encode and Save.
type Option func(*options)

type options struct {
	trace func(x, y int, rgb [3]byte)
}

// WithTrace installs a callback invoked once per emitted pixel, in output
// order. It is meant for diagnostics and must not retain rgb.
func WithTrace(fn func(x, y int, rgb [3]byte)) Option {
	return func(o *options) { o.trace = fn }
}

// Header returns the P6 header for an image of the given size.
func Header(width, height int) []byte {
	b := make([]byte, 0, 32)
	b = append(b, "P6\n"...)
	b = strconv.AppendInt(b, int64(width), 10)
	b = append(b, ' ')
	b = strconv.AppendInt(b, int64(height), 10)
	b = append(b, " 255\n"...)
	return b
}

// Size returns the exact encoded size in bytes of a width x height image,
// or -1 if the dimensions are negative or the size overflows an int.
func Size(width, height int) int {
	if width < 0 || height < 0 {
		return -1
	}
	h := len(Header(width, height))
	if width > 0 && height > (math.MaxInt-h)/3/width {
		return -1
	}
	return h + 3*width*height
}

// Unpack splits a packed pixel into its R, G and B bytes.
// Bits above 23 are discarded.
func Unpack(p uint32) [3]byte {
	return [3]byte{byte(p >> 16), byte(p >> 8), byte(p)}
}

// Pack is the inverse of Unpack.
func Pack(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func check(pixels []uint32, height, width int) error {
	if width < 0 || height < 0 || width > math.MaxInt/3 || height > math.MaxInt/3 {
		return fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	if width > 0 && height > len(pixels)/width {
		return fmt.Errorf("%w: have %d, need %dx%d", ErrShortBuffer, len(pixels), width, height)
	}
	return nil
}

// Encode writes pixels as a P6 image to w. Rows are emitted top to bottom,
// columns left to right. Pixels beyond width*height are not read.
func Encode(w io.Writer, pixels []uint32, height, width int, opts ...Option) error {
	if err := check(pixels, height, width); err != nil {
		return err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	bw := bufio.NewWriterSize(w, 64*1024)
	if _, err := bw.Write(Header(width, height)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if width == 0 || height == 0 {
		return flush(bw)
	}

	row := make([]byte, 3*width)
	for y := 0; y < height; y++ {
		line := pixels[y*width : (y+1)*width]
		for x, p := range line {
			rgb := Unpack(p)
			copy(row[3*x:], rgb[:])
			if o.trace != nil {
				o.trace(x, y, rgb)
			}
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", y, err)
		}
	}

	return flush(bw)
}

func flush(bw *bufio.Writer) error {
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Save creates (or truncates) the file at path and writes the image to it.
// Arguments are validated before the file is touched. A failure after
// creation can leave a truncated file behind.
func Save(path string, pixels []uint32, height, width int, opts ...Option) (err error) {
	if err := check(pixels, height, width); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := Encode(f, pixels, height, width, opts...); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
