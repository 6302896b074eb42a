// Package scene loads YAML descriptions of a canvas and the drawing
// operations to apply to it.
package scene

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/AnyUserName/pixmap-cli/internal/canvas"
	"gopkg.in/yaml.v2"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid scene")

// Color is a packed 0xRRGGBB value. In YAML it may be written as "#rrggbb",
// "0xrrggbb" or a plain integer.
type Color uint32

func (c *Color) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c Color) String() string { return fmt.Sprintf("#%06x", uint32(c)&0xFFFFFF) }

// ParseColor accepts "#rrggbb", "0xrrggbb" or a decimal integer.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	var (
		v   uint64
		err error
	)
	switch {
	case strings.HasPrefix(s, "#"):
		v, err = strconv.ParseUint(s[1:], 16, 32)
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		v, err = strconv.ParseUint(s[2:], 16, 32)
	default:
		v, err = strconv.ParseUint(s, 10, 32)
	}
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	if v > 0xFFFFFF {
		return 0, fmt.Errorf("color %q: out of range", s)
	}
	return Color(v), nil
}

// Op is one drawing operation. Which fields are used depends on Op.
type Op struct {
	Op       string `yaml:"op"` // pixel, index, line, rect, circle, flood
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	X1       int    `yaml:"x1"`
	Y1       int    `yaml:"y1"`
	X2       int    `yaml:"x2"`
	Y2       int    `yaml:"y2"`
	W        int    `yaml:"w"`
	H        int    `yaml:"h"`
	R        int    `yaml:"r"`
	Index    int    `yaml:"index"`
	Color    Color  `yaml:"color"`
	Boundary Color  `yaml:"boundary"`
	Fill     bool   `yaml:"fill"`

	// Transform applies to line and outlined rect ops, steps in order.
	Transform []Step `yaml:"transform,omitempty"`
}

// Step is one entry of an op's transform list. Exactly one field is set.
type Step struct {
	Translate []float64 `yaml:"translate,omitempty"` // [tx, ty]
	Rotate    *float64  `yaml:"rotate,omitempty"`    // degrees
	Scale     []float64 `yaml:"scale,omitempty"`     // [sx, sy]
}

func (st Step) validate() error {
	set := 0
	if st.Translate != nil {
		set++
		if len(st.Translate) != 2 {
			return errors.New("translate wants [tx, ty]")
		}
	}
	if st.Scale != nil {
		set++
		if len(st.Scale) != 2 {
			return errors.New("scale wants [sx, sy]")
		}
	}
	if st.Rotate != nil {
		set++
	}
	if set != 1 {
		return errors.New("step must set exactly one of translate, rotate, scale")
	}
	return nil
}

func (st Step) affine() canvas.Affine {
	switch {
	case st.Translate != nil:
		return canvas.Translate(st.Translate[0], st.Translate[1])
	case st.Scale != nil:
		return canvas.Scale(st.Scale[0], st.Scale[1])
	default:
		return canvas.Rotate(*st.Rotate * math.Pi / 180)
	}
}

// Matrix composes the op's transform steps, first step applied first.
// It returns nil when the op has no transform.
func (op Op) Matrix() *canvas.Affine {
	if len(op.Transform) == 0 {
		return nil
	}
	m := canvas.Identity()
	for _, st := range op.Transform {
		m = st.affine().Concat(m)
	}
	return &m
}

// Scene is a canvas size, a background and an ordered list of operations.
type Scene struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background Color  `yaml:"background"`
	LineAlgo   string `yaml:"line_algo,omitempty"`
	Ops        []Op   `yaml:"ops"`
}

// Default is the built-in scene: a 64x64 white canvas whose first ten
// pixels are overwritten with fixed colours.
func Default() *Scene {
	s := &Scene{Width: 64, Height: 64, Background: 0xFFFFFF}
	for i, c := range []Color{
		0x000010, 0x000010, 0x000010, 0x000010, 0x000010,
		0x000012, 0x100010, 0x011100, 0x000000, 0x000000,
	} {
		s.Ops = append(s.Ops, Op{Op: "index", Index: i, Color: c})
	}
	return s
}

// Parse decodes and validates a YAML scene.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.UnmarshalStrict(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s *Scene) lineAlgo() (canvas.LineAlgo, error) {
	switch strings.ToLower(s.LineAlgo) {
	case "", "dda":
		return canvas.DDA, nil
	case "bresenham":
		return canvas.Bresenham, nil
	}
	return 0, fmt.Errorf("%w: unknown line_algo %q", ErrInvalid, s.LineAlgo)
}

// Validate checks dimensions and operation names.
func (s *Scene) Validate() error {
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalid, s.Width, s.Height)
	}
	if _, err := s.lineAlgo(); err != nil {
		return err
	}
	for i, op := range s.Ops {
		switch op.Op {
		case "pixel", "index", "line", "rect", "circle", "flood":
		default:
			return fmt.Errorf("%w: ops[%d]: unknown op %q", ErrInvalid, i, op.Op)
		}
		if op.Op == "circle" && op.R < 0 {
			return fmt.Errorf("%w: ops[%d]: negative radius", ErrInvalid, i)
		}
		if len(op.Transform) == 0 {
			continue
		}
		if op.Op != "line" && (op.Op != "rect" || op.Fill) {
			return fmt.Errorf("%w: ops[%d]: transform not supported on %s", ErrInvalid, i, op.describe())
		}
		for j, st := range op.Transform {
			if err := st.validate(); err != nil {
				return fmt.Errorf("%w: ops[%d].transform[%d]: %v", ErrInvalid, i, j, err)
			}
		}
	}
	return nil
}

func (op Op) describe() string {
	if op.Op == "rect" && op.Fill {
		return "filled rect"
	}
	return op.Op
}

// Render draws the scene onto a new canvas.
func (s *Scene) Render() (*canvas.Canvas, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	algo, _ := s.lineAlgo()

	c := canvas.New(s.Width, s.Height)
	c.LineAlgo = algo
	c.Fill(uint32(s.Background))

	for _, op := range s.Ops {
		col := uint32(op.Color)
		c.Transform = op.Matrix()
		switch op.Op {
		case "pixel":
			c.Set(op.X, op.Y, col)
		case "index":
			c.SetIndex(op.Index, col)
		case "line":
			c.DrawLine(op.X1, op.Y1, op.X2, op.Y2, col)
		case "rect":
			if op.Fill {
				c.FillRect(op.X, op.Y, op.W, op.H, col)
			} else {
				c.DrawRect(op.X, op.Y, op.W, op.H, col)
			}
		case "circle":
			c.DrawCircle(op.X, op.Y, op.R, col)
		case "flood":
			c.BoundaryFill(op.X, op.Y, col, uint32(op.Boundary))
		}
	}
	c.Transform = nil
	return c, nil
}
