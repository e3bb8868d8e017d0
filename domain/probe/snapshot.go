package probe

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/soocke/note-bot-go/apperr"
)

const snapshotScale = 8

// Annotate renders the probed frame enlarged, with each marker's 3x3 window
// outlined in green when detected and red otherwise.
func (r *Report) Annotate() image.Image {
	b := r.Frame.Bounds()
	dc := gg.NewContext(b.Dx()*snapshotScale, b.Dy()*snapshotScale)
	dc.Scale(snapshotScale, snapshotScale)
	dc.DrawImage(r.Frame, -b.Min.X, -b.Min.Y)
	dc.Identity()
	dc.SetLineWidth(2)
	for _, res := range r.Results {
		x := float64((res.Marker.Rel.X - 1) * snapshotScale)
		y := float64((res.Marker.Rel.Y - 1) * snapshotScale)
		dc.DrawRectangle(x, y, 3*snapshotScale, 3*snapshotScale)
		if res.Detected {
			dc.SetRGB(0, 1, 0)
		} else {
			dc.SetRGB(1, 0, 0)
		}
		dc.Stroke()
	}
	return dc.Image()
}

// WriteSnapshot saves the annotated frame as a PNG at path.
func (r *Report) WriteSnapshot(path string) error {
	if r.Frame == nil {
		return apperr.New(apperr.KindDetect, "probe.snapshot", "no frame")
	}
	if err := gg.SavePNG(path, r.Annotate()); err != nil {
		return apperr.Wrap(err, apperr.KindCapture, "probe.snapshot", "save png").WithMetadata("path", path)
	}
	return nil
}
