package marker

import (
	"image"
	"sort"
	"strings"

	"github.com/soocke/note-bot-go/apperr"
)

// Color is an 8-bit RGB target color.
type Color struct{ R, G, B uint8 }

// ClampColor builds a Color from arbitrary ints, clamping each channel to 0..255.
func ClampColor(r, g, b int) Color {
	return Color{R: clamp8(r), G: clamp8(g), B: clamp8(b)}
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Marker is one lane: a screen position, the color to look for there and
// the key to press when it shows up. Rel is the position inside the
// capture region.
type Marker struct {
	Name  string
	Pos   image.Point
	Rel   image.Point
	Color Color
	Key   string
}

// Binding is what a screen position maps to.
type Binding struct {
	Key   string
	Color Color
}

// Tables holds the three per-marker configuration tables keyed by marker name.
type Tables struct {
	Coords map[string][]int
	Colors map[string][]int
	Keys   map[string]string
}

// Registry is the immutable marker set and its capture region. Build it once
// with NewRegistry; accessors return copies.
type Registry struct {
	markers  []Marker
	region   image.Rectangle
	bindings map[image.Point]Binding
	rel      map[image.Point]image.Point
}

// NewRegistry validates the tables and computes the padded capture region.
func NewRegistry(t Tables, padding int) (*Registry, error) {
	const op = "marker.registry"
	if len(t.Coords) == 0 {
		return nil, apperr.New(apperr.KindConfig, op, "no markers configured")
	}
	if !sameNames(t.Coords, t.Colors, t.Keys) {
		return nil, apperr.New(apperr.KindConfig, op, "config keys mismatch between coords, colors and key bindings").
			WithMetadata("coords", joinNames(t.Coords)).
			WithMetadata("colors", joinNames(t.Colors)).
			WithMetadata("keys", joinNames(t.Keys))
	}
	names := sortedNames(t.Coords)
	markers := make([]Marker, 0, len(names))
	for _, name := range names {
		xy := t.Coords[name]
		if len(xy) != 2 {
			return nil, apperr.Newf(apperr.KindConfig, op, "marker %q position needs 2 values, got %d", name, len(xy))
		}
		rgb := t.Colors[name]
		if len(rgb) != 3 {
			return nil, apperr.Newf(apperr.KindConfig, op, "marker %q color needs 3 values, got %d", name, len(rgb))
		}
		key := t.Keys[name]
		if key == "" {
			return nil, apperr.Newf(apperr.KindConfig, op, "marker %q has an empty key binding", name)
		}
		markers = append(markers, Marker{
			Name:  name,
			Pos:   image.Pt(xy[0], xy[1]),
			Color: ClampColor(rgb[0], rgb[1], rgb[2]),
			Key:   key,
		})
	}

	region := Region(positions(markers), padding)
	r := &Registry{
		markers:  markers,
		region:   region,
		bindings: make(map[image.Point]Binding, len(markers)),
		rel:      make(map[image.Point]image.Point, len(markers)),
	}
	for i := range r.markers {
		m := &r.markers[i]
		m.Rel = m.Pos.Sub(region.Min)
		r.bindings[m.Pos] = Binding{Key: m.Key, Color: m.Color}
		r.rel[m.Pos] = m.Rel
	}
	return r, nil
}

// Region returns the bounding box of pts expanded by padding on every side.
// The maximum coordinate gets one extra pixel so it lies strictly inside.
func Region(pts []image.Point, padding int) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	if padding < 0 {
		padding = 0
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return image.Rect(minX-padding, minY-padding, maxX+padding+1, maxY+padding+1)
}

// Markers returns the markers ordered by name.
func (r *Registry) Markers() []Marker {
	out := make([]Marker, len(r.markers))
	copy(out, r.markers)
	return out
}

// Region returns the capture rectangle in screen space.
func (r *Registry) Region() image.Rectangle { return r.region }

// Binding returns the key and color bound to an absolute position.
func (r *Registry) Binding(pos image.Point) (Binding, bool) {
	b, ok := r.bindings[pos]
	return b, ok
}

// Relative returns the region-relative coordinate of an absolute position.
func (r *Registry) Relative(pos image.Point) (image.Point, bool) {
	p, ok := r.rel[pos]
	return p, ok
}

// Len returns the number of markers.
func (r *Registry) Len() int { return len(r.markers) }

func positions(ms []Marker) []image.Point {
	pts := make([]image.Point, len(ms))
	for i, m := range ms {
		pts[i] = m.Pos
	}
	return pts
}

func sameNames[A, B, C any](a map[string]A, b map[string]B, c map[string]C) bool {
	if len(a) != len(b) || len(a) != len(c) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
		if _, ok := c[k]; !ok {
			return false
		}
	}
	return true
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func joinNames[V any](m map[string]V) string {
	return strings.Join(sortedNames(m), ",")
}
