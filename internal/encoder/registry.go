package encoder

import (
	"fmt"
	"strings"
)

// priority is the order formats are listed in.
var priority = []string{"ppm", "png", "jpeg"}

// Registry holds all available encoders keyed by format name.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry, probing all encoders for availability.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}

	all := []Encoder{
		&PPMEncoder{},
		&PNGEncoder{},
		&JPEGEncoder{},
	}

	for _, enc := range all {
		if enc.Available() {
			r.encoders[enc.Format()] = enc
		}
	}

	return r
}

// Get returns an encoder for the given format, or nil if unavailable.
// "jpg" and "pnm" are accepted as aliases.
func (r *Registry) Get(format string) Encoder {
	switch f := strings.ToLower(format); f {
	case "jpg":
		return r.encoders["jpeg"]
	case "pnm":
		return r.encoders["ppm"]
	default:
		return r.encoders[f]
	}
}

// Lookup is Get with an error naming the available formats.
func (r *Registry) Lookup(format string) (Encoder, error) {
	if enc := r.Get(format); enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("unknown format %q (%s)", format, r)
}

// Available returns all available format names.
func (r *Registry) Available() []string {
	var result []string
	for _, f := range priority {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}
