package detect

import (
	"image"
	"image/color"
	"reflect"
	"testing"

	"github.com/soocke/note-bot-go/domain/marker"
)

// solidFrame returns a w x h frame filled with c.
func solidFrame(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

var black = color.RGBA{0, 0, 0, 255}

func lane(key string, rel image.Point, c marker.Color) marker.Marker {
	return marker.Marker{Name: key, Rel: rel, Color: c, Key: key}
}

func TestMatches_ColorScenario(t *testing.T) {
	red := marker.Color{R: 255}
	if !Matches(250, 10, 5, red, 40) {
		t.Fatalf("(250,10,5) should match red with tolerance 40")
	}
	if Matches(250, 50, 5, red, 40) {
		t.Fatalf("(250,50,5) should not match red with tolerance 40")
	}
}

func TestMatches_ToleranceBoundary(t *testing.T) {
	target := marker.Color{R: 100, G: 100, B: 100}
	tol := 12
	if !Matches(100+tol, 100, 100, target, tol) {
		t.Fatalf("difference == tolerance must match")
	}
	if Matches(100+tol+1, 100, 100, target, tol) {
		t.Fatalf("difference == tolerance+1 must not match")
	}
	if !Matches(100, 100-tol, 100, target, tol) {
		t.Fatalf("negative difference == tolerance must match")
	}
}

func TestMatches_RejectsOutOfRange(t *testing.T) {
	target := marker.Color{R: 255, G: 255, B: 255}
	if Matches(256, 255, 255, target, 10) {
		t.Fatalf("channel above 255 must be rejected")
	}
	if Matches(0, -1, 0, marker.Color{}, 10) {
		t.Fatalf("negative channel must be rejected")
	}
}

func TestDetect_NeighborHit(t *testing.T) {
	frame := solidFrame(10, 10, black)
	frame.SetRGBA(6, 4, color.RGBA{250, 10, 5, 255}) // diagonal neighbor of (5,5)
	d := New(40)
	got := d.Detect(frame, []marker.Marker{lane("a", image.Pt(5, 5), marker.Color{R: 255})})
	if !got.Has("a") {
		t.Fatalf("expected neighbor match, got %v", got.Keys())
	}
	frame.SetRGBA(6, 4, black)
	frame.SetRGBA(7, 5, color.RGBA{255, 0, 0, 255}) // two pixels away
	if got := d.Detect(frame, []marker.Marker{lane("a", image.Pt(5, 5), marker.Color{R: 255})}); got.Has("a") {
		t.Fatalf("pixel outside 3x3 window must not match")
	}
}

func TestDetect_EdgeMarkerSkipsOutOfBounds(t *testing.T) {
	frame := solidFrame(4, 4, black)
	frame.SetRGBA(0, 0, color.RGBA{10, 200, 10, 255})
	d := New(5)
	got := d.Detect(frame, []marker.Marker{
		lane("corner", image.Pt(0, 0), marker.Color{R: 10, G: 200, B: 10}),
		lane("far", image.Pt(3, 3), marker.Color{R: 10, G: 200, B: 10}),
	})
	if !got.Has("corner") || got.Has("far") {
		t.Fatalf("unexpected result %v", got.Keys())
	}
}

func TestDetect_NonZeroFrameOrigin(t *testing.T) {
	frame := image.NewRGBA(image.Rect(100, 200, 110, 210))
	frame.SetRGBA(103, 202, color.RGBA{0, 0, 255, 255})
	got := New(0).Detect(frame, []marker.Marker{lane("b", image.Pt(3, 2), marker.Color{B: 255})})
	if !got.Has("b") {
		t.Fatalf("relative coordinate must be resolved against frame origin")
	}
}

func TestDetect_Pure(t *testing.T) {
	frame := solidFrame(8, 8, color.RGBA{200, 30, 30, 255})
	markers := []marker.Marker{
		lane("a", image.Pt(1, 1), marker.Color{R: 200, G: 30, B: 30}),
		lane("b", image.Pt(6, 6), marker.Color{G: 255}),
	}
	before := append([]byte(nil), frame.Pix...)
	d := New(10)
	first := d.Detect(frame, markers)
	second := d.Detect(frame, markers)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("detect not deterministic: %v vs %v", first.Keys(), second.Keys())
	}
	if !reflect.DeepEqual(before, frame.Pix) {
		t.Fatalf("detect mutated frame")
	}
}

func TestDetect_DuplicateKeysCoalesce(t *testing.T) {
	frame := solidFrame(8, 8, color.RGBA{50, 50, 50, 255})
	c := marker.Color{R: 50, G: 50, B: 50}
	got := New(0).Detect(frame, []marker.Marker{
		{Name: "one", Rel: image.Pt(1, 1), Color: c, Key: "space"},
		{Name: "two", Rel: image.Pt(5, 5), Color: c, Key: "space"},
	})
	if len(got) != 1 || !got.Has("space") {
		t.Fatalf("expected single coalesced key, got %v", got.Keys())
	}
}

func TestDetect_NilFrame(t *testing.T) {
	if got := New(10).Detect(nil, []marker.Marker{lane("a", image.Pt(0, 0), marker.Color{})}); len(got) != 0 {
		t.Fatalf("nil frame should detect nothing")
	}
}

func TestKeySet_Minus(t *testing.T) {
	cur := NewKeySet("a", "s", "w")
	prev := NewKeySet("s")
	if got := cur.Minus(prev); !reflect.DeepEqual(got, []string{"a", "w"}) {
		t.Fatalf("Minus = %v", got)
	}
	if got := cur.Minus(nil); len(got) != 3 {
		t.Fatalf("Minus(nil) = %v", got)
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(250, 50, 5, marker.Color{R: 255}); got != 50 {
		t.Fatalf("Distance = %d, want 50", got)
	}
}

func TestBestDistance(t *testing.T) {
	frame := solidFrame(5, 5, black)
	frame.SetRGBA(3, 2, color.RGBA{240, 0, 0, 255})
	m := lane("a", image.Pt(2, 2), marker.Color{R: 255})
	if got, ok := BestDistance(frame, m); !ok || got != 15 {
		t.Fatalf("BestDistance = %d %v, want 15", got, ok)
	}
	if _, ok := BestDistance(frame, lane("a", image.Pt(20, 20), marker.Color{})); ok {
		t.Fatalf("marker far outside the frame has no samples")
	}
}
