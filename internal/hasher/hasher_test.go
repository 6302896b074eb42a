package hasher

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestContentHash(t *testing.T) {
	data := []byte("P6\n1 1 255\n\xff\xff\xff")

	full := ContentHash(data, 0)
	if len(full) != 16 {
		t.Fatalf("full hash length %d", len(full))
	}
	if short := ContentHash(data, NameLen); short != full[:NameLen] {
		t.Errorf("truncated hash %q is not a prefix of %q", short, full)
	}
	if ContentHash(data, 99) != full {
		t.Error("oversized hexLen should return the full hash")
	}
	if ContentHash([]byte("P6\n1 1 255\n\x00\x00\x00"), 0) == full {
		t.Error("different content, same hash")
	}

	sum, n, err := ContentHashReader(bytes.NewReader(data), 0)
	if err != nil {
		t.Fatal(err)
	}
	if sum != full || n != int64(len(data)) {
		t.Errorf("reader: %s/%d, want %s/%d", sum, n, full, len(data))
	}
}

func TestFileHash(t *testing.T) {
	data := []byte("pixels")
	path := filepath.Join(t.TempDir(), "f.ppm")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	sum, n, err := FileHash(path, NameLen)
	if err != nil {
		t.Fatal(err)
	}
	if sum != ContentHash(data, NameLen) || n != 6 {
		t.Errorf("got %s/%d", sum, n)
	}
	if _, _, err := FileHash(path+".missing", 0); !os.IsNotExist(err) {
		t.Errorf("missing file: %v", err)
	}
}
