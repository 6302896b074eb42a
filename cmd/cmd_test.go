package cmd

import (
	"bytes"
	"errors"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/pixmap-cli/internal/hasher"
	"github.com/AnyUserName/pixmap-cli/internal/manifest"
	"github.com/AnyUserName/pixmap-cli/internal/ppm"
)

func defaultRender(out string) renderOptions {
	return renderOptions{out: out, width: 64, height: 64, fill: "#ffffff", format: "ppm"}
}

func TestRender_Default(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.ppm")
	var stdout bytes.Buffer
	if err := runRender(defaultRender(path), &stdout, io.Discard); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(stdout.String(), "wrote "+path) {
		t.Errorf("stdout: %q", stdout.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	header := "P6\n64 64 255\n"
	if !bytes.HasPrefix(data, []byte(header)) {
		t.Fatalf("header: %q", data[:len(header)])
	}
	if len(data) != len(header)+3*64*64 {
		t.Fatalf("size: %d", len(data))
	}
	body := data[len(header):]
	want := [][3]byte{
		{0, 0, 0x10}, {0, 0, 0x10}, {0, 0, 0x10}, {0, 0, 0x10}, {0, 0, 0x10},
		{0, 0, 0x12}, {0x10, 0, 0x10}, {0x01, 0x11, 0}, {0, 0, 0}, {0, 0, 0},
		{0xff, 0xff, 0xff},
	}
	for i, w := range want {
		if got := [3]byte(body[3*i : 3*i+3]); got != w {
			t.Errorf("pixel %d: got %x, want %x", i, got, w)
		}
	}
	if last := [3]byte(body[len(body)-3:]); last != [3]byte{0xff, 0xff, 0xff} {
		t.Errorf("last pixel: %x", last)
	}
}

func TestRender_NonSquareAndTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.ppm")
	o := defaultRender(path)
	o.width, o.height, o.sizeSet = 3, 2, true
	o.fill, o.fillSet = "#ff0000", true
	o.trace = true

	var stderr bytes.Buffer
	if err := runRender(o, io.Discard, &stderr); err != nil {
		t.Fatalf("render: %v", err)
	}
	if lines := strings.Count(stderr.String(), "\n"); lines != 6 {
		t.Errorf("trace lines: %d\n%s", lines, stderr.String())
	}
	if !strings.HasPrefix(stderr.String(), "(0,0) ") || !strings.Contains(stderr.String(), "(2,1) ") {
		t.Errorf("trace order: %q", stderr.String())
	}

	img, err := ppm.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if img.Width != 3 || img.Height != 2 {
		t.Fatalf("dimensions: %dx%d", img.Width, img.Height)
	}
	// Six demo pixels fit; indexes 6-9 fall off the canvas.
	if img.Pix[5] != 0x000012 {
		t.Errorf("pixel 5: %#06x", img.Pix[5])
	}
}

func TestRender_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	o := defaultRender(path)
	o.format = "png"
	if err := runRender(o, io.Discard, io.Discard); err != nil {
		t.Fatalf("render: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("bounds: %v", b)
	}
}

func TestRender_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "output.ppm")
	err := runRender(defaultRender(path), io.Discard, io.Discard)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing dir: %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Errorf("error should name %s: %v", path, err)
	}

	o := defaultRender(filepath.Join(t.TempDir(), "x.ppm"))
	o.fill, o.fillSet = "chartreuse", true
	if err := runRender(o, io.Discard, io.Discard); err == nil {
		t.Error("bad fill: expected error")
	}

	o = defaultRender(filepath.Join(t.TempDir(), "x.ppm"))
	o.format = "gif"
	if err := runRender(o, io.Discard, io.Discard); err == nil {
		t.Error("unknown format: expected error")
	}

	o = defaultRender(filepath.Join(t.TempDir(), "x.ppm"))
	o.scenePath = filepath.Join(t.TempDir(), "missing.yaml")
	if err := runRender(o, io.Discard, io.Discard); err == nil {
		t.Error("missing scene: expected error")
	}
}

func TestRender_Scene(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.yaml")
	yml := "width: 4\nheight: 2\nbackground: \"#000000\"\nops:\n  - {op: pixel, x: 3, y: 1, color: \"#abcdef\"}\n"
	if err := os.WriteFile(scenePath, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	o := defaultRender(filepath.Join(dir, "scene.ppm"))
	o.scenePath = scenePath
	if err := runRender(o, io.Discard, io.Discard); err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := ppm.Load(o.out)
	if err != nil {
		t.Fatal(err)
	}
	if img.Width != 4 || img.Height != 2 || img.Pix[7] != 0xABCDEF || img.Pix[0] != 0 {
		t.Errorf("image: %dx%d %#x", img.Width, img.Height, img.Pix)
	}
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i.ppm")
	if err := ppm.Save(path, []uint32{0x010203, 0x040506}, 1, 2); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := runInspect(path, 5, &out); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	s := out.String()
	for _, want := range []string{"2x1", "[1,0] #040506", fileSum(t, path)} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}

	if err := runInspect(filepath.Join(t.TempDir(), "none.ppm"), 0, io.Discard); err == nil {
		t.Error("missing file: expected error")
	}
}

func fileSum(t *testing.T, path string) string {
	t.Helper()
	sum, _, err := hasher.FileHash(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	return sum
}

func TestValidateManifest(t *testing.T) {
	dir := t.TempDir()
	rel := "a.2.1.deadbeef.ppm"
	if err := ppm.Save(filepath.Join(dir, rel), []uint32{1, 2}, 1, 2); err != nil {
		t.Fatal(err)
	}
	sum, size, err := hasher.FileHash(filepath.Join(dir, rel), 0)
	if err != nil {
		t.Fatal(err)
	}

	m := manifest.New("original")
	m.Images["a"] = manifest.Pixmap{Format: "ppm", Width: 2, Height: 1, Size: size, Hash: sum, Path: rel}
	m.ComputeStats()

	if errs := validateManifest(m, dir); len(errs) != 0 {
		t.Fatalf("valid manifest reported errors: %v", errs)
	}

	bad := m.Images["a"]
	bad.Width = 3
	bad.Hash = "0000000000000000"
	m.Images["a"] = bad
	m.Images["b"] = manifest.Pixmap{Format: "ppm", Hash: "x", Path: "missing.ppm"}
	errs := validateManifest(m, dir)
	if len(errs) != 4 {
		t.Errorf("want 4 errors (hash, header, missing file, stats), got %d: %v", len(errs), errs)
	}
}
