package images

import (
	"image"

	"github.com/fogleman/gg"
)

// Lane is one tile of a lane strip.
type Lane struct {
	Frame    *image.RGBA
	Rel      image.Point
	Detected bool
}

const (
	laneTilePixels = 7 // source pixels per tile side
	laneTileScale  = 8
	laneGap        = 6
)

// LaneStrip renders one enlarged tile per lane, side by side. The 3x3
// search window is outlined green when the lane matched and red otherwise.
func LaneStrip(lanes []Lane) image.Image {
	tile := laneTilePixels * laneTileScale
	w := len(lanes)*(tile+laneGap) + laneGap
	if len(lanes) == 0 {
		w = tile
	}
	dc := gg.NewContext(w, tile+2*laneGap)
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.Clear()
	for i, l := range lanes {
		roi, err := ExtractROI(l.Frame, l.Rel, laneTilePixels)
		if err != nil {
			continue
		}
		x := laneGap + i*(tile+laneGap)
		dc.DrawImage(Upscale(roi, laneTileScale), x, laneGap)
		half := laneTilePixels / 2
		wx := float64(x + (half-1)*laneTileScale)
		wy := float64(laneGap + (half-1)*laneTileScale)
		dc.DrawRectangle(wx, wy, 3*laneTileScale, 3*laneTileScale)
		if l.Detected {
			dc.SetRGB(0, 1, 0)
		} else {
			dc.SetRGB(1, 0, 0)
		}
		dc.SetLineWidth(2)
		dc.Stroke()
	}
	return dc.Image()
}
