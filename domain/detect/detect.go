package detect

import (
	"image"
	"sort"

	"github.com/soocke/note-bot-go/domain/marker"
)

// KeySet is the set of bound keys judged present in one frame.
type KeySet map[string]struct{}

// NewKeySet returns a set holding keys.
func NewKeySet(keys ...string) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether key is in the set.
func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Minus returns the keys in s that are not in prev, sorted. A nil prev
// yields every key in s.
func (s KeySet) Minus(prev KeySet) []string {
	var out []string
	for k := range s {
		if !prev.Has(k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Keys returns the keys sorted.
func (s KeySet) Keys() []string {
	return s.Minus(nil)
}

// neighborhood is the 3x3 search window around a marker, center first.
var neighborhood = [9]image.Point{
	{0, 0},
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Detector matches marker colors in frames. The zero value has tolerance 0
// (exact match).
type Detector struct {
	Tolerance int
}

// New returns a Detector with tolerance clamped to >= 0.
func New(tolerance int) Detector {
	if tolerance < 0 {
		tolerance = 0
	}
	return Detector{Tolerance: tolerance}
}

// Detect returns the keys whose marker color is present within the 3x3
// neighborhood of its relative coordinate. Samples outside the frame are
// skipped. Detect does not retain or mutate its inputs.
func (d Detector) Detect(frame *image.RGBA, markers []marker.Marker) KeySet {
	found := make(KeySet, len(markers))
	if frame == nil {
		return found
	}
	for _, m := range markers {
		if found.Has(m.Key) {
			continue
		}
		if d.markerPresent(frame, m) {
			found[m.Key] = struct{}{}
		}
	}
	return found
}

func (d Detector) markerPresent(frame *image.RGBA, m marker.Marker) bool {
	b := frame.Bounds()
	for _, off := range neighborhood {
		p := b.Min.Add(m.Rel).Add(off)
		if !p.In(b) {
			continue
		}
		i := frame.PixOffset(p.X, p.Y)
		px := frame.Pix[i : i+3 : i+3]
		if Matches(int(px[0]), int(px[1]), int(px[2]), m.Color, d.Tolerance) {
			return true
		}
	}
	return false
}

// Matches reports whether every channel of (r,g,b) is within tolerance of
// target. Channels outside 0..255 never match.
func Matches(r, g, b int, target marker.Color, tolerance int) bool {
	if !inRange(r) || !inRange(g) || !inRange(b) {
		return false
	}
	return absDiff(r, int(target.R)) <= tolerance &&
		absDiff(g, int(target.G)) <= tolerance &&
		absDiff(b, int(target.B)) <= tolerance
}

// Distance is the largest per-channel difference between (r,g,b) and target.
func Distance(r, g, b int, target marker.Color) int {
	return max(absDiff(r, int(target.R)), absDiff(g, int(target.G)), absDiff(b, int(target.B)))
}

// SampleAt returns the RGB value at a region-relative point and whether it
// lies inside the frame.
func SampleAt(frame *image.RGBA, rel image.Point) (r, g, b int, ok bool) {
	if frame == nil {
		return 0, 0, 0, false
	}
	bounds := frame.Bounds()
	p := bounds.Min.Add(rel)
	if !p.In(bounds) {
		return 0, 0, 0, false
	}
	i := frame.PixOffset(p.X, p.Y)
	return int(frame.Pix[i]), int(frame.Pix[i+1]), int(frame.Pix[i+2]), true
}

func inRange(v int) bool { return v >= 0 && v <= 255 }

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// BestDistance returns the smallest Distance to m's color over its 3x3
// neighborhood. ok is false when no neighbor lies inside the frame.
func BestDistance(frame *image.RGBA, m marker.Marker) (best int, ok bool) {
	if frame == nil {
		return 0, false
	}
	best = 256
	for _, off := range neighborhood {
		r, g, b, in := SampleAt(frame, m.Rel.Add(off))
		if !in {
			continue
		}
		ok = true
		best = min(best, Distance(r, g, b, m.Color))
	}
	if !ok {
		return 0, false
	}
	return best, true
}
