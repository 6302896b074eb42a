package profile

import (
	"sort"

	"github.com/disintegration/imaging"
)

// Profile defines how source images are prepared before PPM encoding.
type Profile struct {
	Name      string
	MaxWidth  int // 0 = unbounded
	MaxHeight int // 0 = unbounded
	Filter    string
}

// Built-in profiles.
var profiles = map[string]Profile{
	"original": {
		Name: "original",
	},
	"preview": {
		Name:      "preview",
		MaxWidth:  640,
		MaxHeight: 640,
		Filter:    "lanczos",
	},
	"thumbnail": {
		Name:      "thumbnail",
		MaxWidth:  128,
		MaxHeight: 128,
		Filter:    "lanczos",
	},
	"pixel-art": {
		Name:      "pixel-art",
		MaxWidth:  256,
		MaxHeight: 256,
		Filter:    "nearest",
	},
}

// Get returns a profile by name. Falls back to "original" if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles["original"]
	p.Name = name // preserve requested name
	return p
}

// Names lists the built-in profiles in sorted order.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ResampleFilter maps Filter to an imaging filter. Lanczos is the default.
func (p Profile) ResampleFilter() imaging.ResampleFilter {
	switch p.Filter {
	case "nearest":
		return imaging.NearestNeighbor
	case "box":
		return imaging.Box
	case "linear":
		return imaging.Linear
	default:
		return imaging.Lanczos
	}
}

// Fit returns the target size for a w x h source: scaled down to fit the
// profile bounds with the aspect ratio kept, never upscaled. ok is false
// when no resize is needed.
func (p Profile) Fit(w, h int) (tw, th int, ok bool) {
	if w <= 0 || h <= 0 {
		return w, h, false
	}
	scale := 1.0
	if p.MaxWidth > 0 && w > p.MaxWidth {
		scale = float64(p.MaxWidth) / float64(w)
	}
	if p.MaxHeight > 0 && h > p.MaxHeight {
		scale = min(scale, float64(p.MaxHeight)/float64(h))
	}
	if scale >= 1 {
		return w, h, false
	}
	tw = max(int(float64(w)*scale+0.5), 1)
	th = max(int(float64(h)*scale+0.5), 1)
	return tw, th, true
}
