package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseColor(t *testing.T) {
	cases := map[string]Color{
		"#ffffff":  0xFFFFFF,
		"#000010":  0x000010,
		"0x011100": 0x011100,
		"0XABCDEF": 0xABCDEF,
		"16":       16,
		"#0000FF":  0x0000FF,
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseColor(%q) = %v, want %v", in, got, want)
		}
	}

	for _, bad := range []string{"", "#zzzzzz", "0x1000000", "red", "-1"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q): expected error", bad)
		}
	}
}

func TestDefault(t *testing.T) {
	c, err := Default().Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if c.Width() != 64 || c.Height() != 64 {
		t.Fatalf("dimensions %dx%d", c.Width(), c.Height())
	}
	want := []uint32{
		0x000010, 0x000010, 0x000010, 0x000010, 0x000010,
		0x000012, 0x100010, 0x011100, 0x000000, 0x000000,
	}
	pix := c.Pixels()
	for i, w := range want {
		if pix[i] != w {
			t.Errorf("pixel %d: got %#06x, want %#06x", i, pix[i], w)
		}
	}
	for i := len(want); i < len(pix); i++ {
		if pix[i] != 0xFFFFFF {
			t.Fatalf("pixel %d: got %#06x, want white", i, pix[i])
		}
	}
}

const sample = `
width: 20
height: 10
background: "#ffffff"
line_algo: bresenham
ops:
  - {op: pixel, x: 19, y: 9, color: "#123456"}
  - {op: line, x1: 0, y1: 0, x2: 19, y2: 0, color: 0xff0000}
  - {op: rect, x: 2, y: 2, w: 6, h: 6, color: "#0000ff"}
  - {op: flood, x: 4, y: 4, color: "#00ff00", boundary: "#0000ff"}
  - {op: rect, x: 12, y: 2, w: 2, h: 2, color: "#111111", fill: true}
  - {op: circle, x: 15, y: 6, r: 0, color: "#222222"}
`

func TestParseAndRender(t *testing.T) {
	s, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Width != 20 || s.Height != 10 || len(s.Ops) != 6 {
		t.Fatalf("parsed %+v", s)
	}
	c, err := s.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	checks := []struct {
		x, y int
		want uint32
	}{
		{19, 9, 0x123456},
		{0, 0, 0xFF0000},
		{19, 0, 0xFF0000},
		{2, 2, 0x0000FF},
		{5, 5, 0x00FF00},
		{12, 2, 0x111111},
		{13, 3, 0x111111},
		{14, 4, 0xFFFFFF},
		{15, 6, 0x222222},
		{10, 9, 0xFFFFFF},
	}
	for _, ch := range checks {
		if got := c.At(ch.x, ch.y); got != ch.want {
			t.Errorf("(%d,%d): got %#06x, want %#06x", ch.x, ch.y, got, ch.want)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown op":    "width: 2\nheight: 2\nops:\n  - {op: spiral}\n",
		"negative size": "width: -1\nheight: 2\n",
		"line algo":     "width: 2\nheight: 2\nline_algo: wu\n",
		"radius":        "width: 2\nheight: 2\nops:\n  - {op: circle, r: -3}\n",
		"empty step":    "width: 2\nheight: 2\nops:\n  - {op: line, transform: [{}]}\n",
		"two kinds":     "width: 2\nheight: 2\nops:\n  - {op: line, transform: [{rotate: 90, scale: [2, 2]}]}\n",
		"short vector":  "width: 2\nheight: 2\nops:\n  - {op: line, transform: [{translate: [1]}]}\n",
		"filled rect":   "width: 2\nheight: 2\nops:\n  - {op: rect, fill: true, transform: [{rotate: 45}]}\n",
		"circle":        "width: 2\nheight: 2\nops:\n  - {op: circle, r: 1, transform: [{scale: [2, 1]}]}\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(raw)); !errors.Is(err, ErrInvalid) {
				t.Errorf("got %v, want ErrInvalid", err)
			}
		})
	}

	if _, err := Parse([]byte("width: 2\nheight: 2\ncolour: red\n")); err == nil {
		t.Error("unknown field: expected error")
	}
	if _, err := Parse([]byte("width: 2\nbackground: \"#xyz\"\n")); err == nil {
		t.Error("bad colour: expected error")
	}
}

func TestRender_Transform(t *testing.T) {
	const raw = `
width: 10
height: 10
background: "#ffffff"
ops:
  - op: line
    x1: 0
    y1: 0
    x2: 2
    y2: 0
    color: "#ff0000"
    transform:
      - translate: [1, 1]
      - scale: [2, 2]
  - op: rect
    x: 3
    y: 3
    w: 4
    h: 4
    color: "#0000ff"
    transform:
      - translate: [-5, -5]
      - rotate: 90
      - translate: [5, 5]
  - op: pixel
    x: 0
    y: 0
    color: "#00ff00"
`
	s, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	c, err := s.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if c.Transform != nil {
		t.Error("transform left set on the rendered canvas")
	}

	// Translated first, then scaled: (0,0)-(2,0) lands on (2,2)-(6,2).
	for x := 2; x <= 6; x++ {
		if got := c.At(x, 2); got != 0xFF0000 {
			t.Errorf("(%d,2): got %#06x", x, got)
		}
	}
	if got := c.At(1, 1); got != 0xFFFFFF {
		t.Errorf("(1,1) drawn: %#06x", got)
	}
	// The rect is symmetric about its centre, so a quarter turn keeps it.
	for _, p := range [][2]int{{3, 3}, {7, 3}, {3, 7}, {7, 7}, {5, 3}, {3, 5}} {
		if got := c.At(p[0], p[1]); got != 0x0000FF {
			t.Errorf("rect corner %v: got %#06x", p, got)
		}
	}
	// Ops without a transform are untouched by earlier ones.
	if got := c.At(0, 0); got != 0x00FF00 {
		t.Errorf("(0,0): got %#06x", got)
	}
}

func TestOp_MatrixOrder(t *testing.T) {
	ninety := 90.0
	op := Op{Transform: []Step{
		{Scale: []float64{2, 2}},
		{Rotate: &ninety},
	}}
	x, y := op.Matrix().Point(1, 0)
	// Scaled to (2,0), then rotated a quarter turn to (0,2).
	if x != 0 || y != 2 {
		t.Errorf("got (%d,%d), want (0,2)", x, y)
	}
	if (Op{}).Matrix() != nil {
		t.Error("op without steps should have a nil matrix")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.LineAlgo != "bresenham" {
		t.Errorf("line_algo: %q", s.LineAlgo)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: %v", err)
	}
}
