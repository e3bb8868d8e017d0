package probe

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soocke/note-bot-go/apperr"
	"github.com/soocke/note-bot-go/domain/detect"
	"github.com/soocke/note-bot-go/domain/marker"
)

type frameGrabber struct {
	lit map[image.Point]color.RGBA
	err error
}

func (g frameGrabber) Grab(rect image.Rectangle) (*image.RGBA, error) {
	if g.err != nil {
		return nil, g.err
	}
	img := image.NewRGBA(rect)
	for p, c := range g.lit {
		img.SetRGBA(p.X, p.Y, c)
	}
	return img, nil
}

func registry(t *testing.T) *marker.Registry {
	t.Helper()
	reg, err := marker.NewRegistry(marker.Tables{
		Coords: map[string][]int{"left": {10, 10}, "right": {20, 10}},
		Colors: map[string][]int{"left": {255, 0, 0}, "right": {0, 0, 255}},
		Keys:   map[string]string{"left": "a", "right": "d"},
	}, 2)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return reg
}

func TestRun_ReportsPerMarker(t *testing.T) {
	g := frameGrabber{lit: map[image.Point]color.RGBA{
		{10, 10}: {250, 10, 5, 255},
		{21, 11}: {0, 0, 180, 255},
	}}
	rep, err := Run(g, registry(t), detect.New(40))
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if len(rep.Results) != 2 || rep.Detected() != 1 {
		t.Fatalf("unexpected report %+v", rep.Results)
	}
	left := rep.Results[0]
	if left.Marker.Name != "left" || !left.Detected || left.BestDistance != 10 {
		t.Fatalf("left result wrong: %+v", left)
	}
	if left.Sample != (marker.Color{R: 250, G: 10, B: 5}) {
		t.Fatalf("center sample wrong: %+v", left.Sample)
	}
	right := rep.Results[1]
	if right.Detected || right.BestDistance != 75 {
		t.Fatalf("right result wrong: %+v", right)
	}

	var buf bytes.Buffer
	if err := rep.WriteText(&buf); err != nil {
		t.Fatalf("write text: %v", err)
	}
	if !strings.Contains(buf.String(), "left") || !strings.Contains(buf.String(), "(250,10,5)") {
		t.Fatalf("text report missing fields:\n%s", buf.String())
	}
}

func TestRun_CaptureError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Run(frameGrabber{err: boom}, registry(t), detect.New(0))
	if !apperr.IsKind(err, apperr.KindCapture) || !errors.Is(err, boom) {
		t.Fatalf("expected capture error, got %v", err)
	}
}

func TestWriteSnapshot(t *testing.T) {
	rep, err := Run(frameGrabber{}, registry(t), detect.New(0))
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	img := rep.Annotate()
	fb := rep.Frame.Bounds()
	if img.Bounds().Dx() != fb.Dx()*snapshotScale || img.Bounds().Dy() != fb.Dy()*snapshotScale {
		t.Fatalf("unexpected snapshot size %v", img.Bounds())
	}
	path := filepath.Join(t.TempDir(), "probe.png")
	if err := rep.WriteSnapshot(path); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if st, err := os.Stat(path); err != nil || st.Size() == 0 {
		t.Fatalf("snapshot not written: %v", err)
	}
}
