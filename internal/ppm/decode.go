package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
)

var (
	// ErrFormat is returned when the input is not a well-formed P6 stream.
	ErrFormat = errors.New("ppm: not a valid P6 image")
	// ErrMaxval is returned for P6 files whose maximum value is not 255.
	ErrMaxval = errors.New("ppm: unsupported maximum value")
)

const (
	// maxPixels bounds the dimensions a header may declare.
	maxPixels = 1 << 28
	// chunkPixels is how many pixels Decode reads per step.
	chunkPixels = 1 << 14
)

func init() {
	image.RegisterFormat("ppm", "P6", decodeImage, DecodeConfig)
}

// Decode reads a P6 image from r. Header fields may be separated by any
// whitespace and may contain '#' comments.
func Decode(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)
	width, height, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	// Pix grows with the data actually read, never with the header's claim.
	total := width * height
	img := &Image{Width: width, Height: height, Pix: make([]uint32, 0, min(total, chunkPixels))}
	if total == 0 {
		return img, nil
	}
	buf := make([]byte, 3*min(total, chunkPixels))
	for len(img.Pix) < total {
		n := min(total-len(img.Pix), chunkPixels)
		b := buf[:3*n]
		if _, err := io.ReadFull(br, b); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("read pixel %d of %d: %w", len(img.Pix), total, err)
		}
		for i := 0; i < n; i++ {
			img.Pix = append(img.Pix, Pack(b[3*i], b[3*i+1], b[3*i+2]))
		}
	}
	return img, nil
}

// DecodeConfig returns the dimensions of a P6 image without reading its
// pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	width, height, err := readHeader(bufio.NewReader(r))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: width, Height: height}, nil
}

// Load decodes the P6 file at path.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func decodeImage(r io.Reader) (image.Image, error) {
	return Decode(r)
}

func readHeader(br *bufio.Reader) (width, height int, err error) {
	magic := make([]byte, 2)
	if _, err := io.ReadFull(br, magic); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if string(magic) != "P6" {
		return 0, 0, fmt.Errorf("%w: magic %q", ErrFormat, magic)
	}

	var fields [3]int
	for i := range fields {
		if fields[i], err = readField(br); err != nil {
			return 0, 0, err
		}
	}
	width, height = fields[0], fields[1]
	if fields[2] != MaxValue {
		return 0, 0, fmt.Errorf("%w: %d", ErrMaxval, fields[2])
	}
	if width > 0 && height > maxPixels/width {
		return 0, 0, fmt.Errorf("%w: %dx%d too large", ErrFormat, width, height)
	}

	// The last header field is followed by exactly one whitespace byte.
	c, err := br.ReadByte()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if !isSpace(c) {
		return 0, 0, fmt.Errorf("%w: no separator before pixel data", ErrFormat)
	}
	return width, height, nil
}

// readField skips whitespace and comments, then parses one unsigned decimal
// number. The byte that ends the number is left unread.
func readField(br *bufio.Reader) (int, error) {
	var c byte
	var err error
	for {
		if c, err = br.ReadByte(); err != nil {
			return 0, fmt.Errorf("%w: truncated header", ErrFormat)
		}
		if c == '#' {
			if _, err := br.ReadBytes('\n'); err != nil {
				return 0, fmt.Errorf("%w: truncated header", ErrFormat)
			}
			continue
		}
		if !isSpace(c) {
			break
		}
	}

	if c < '0' || c > '9' {
		return 0, fmt.Errorf("%w: unexpected byte %q in header", ErrFormat, c)
	}
	n := 0
	for {
		n = n*10 + int(c-'0')
		if n > maxPixels {
			return 0, fmt.Errorf("%w: header value out of range", ErrFormat)
		}
		if c, err = br.ReadByte(); err != nil {
			return 0, fmt.Errorf("%w: truncated header", ErrFormat)
		}
		if c < '0' || c > '9' {
			break
		}
	}
	if !isSpace(c) && c != '#' {
		return 0, fmt.Errorf("%w: unexpected byte %q in header", ErrFormat, c)
	}
	return n, br.UnreadByte()
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
