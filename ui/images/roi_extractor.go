package images

import (
	"errors"
	"image"
	"image/draw"
)

// ExtractROI returns a size x size tile of frame centered on the
// region-relative point rel. Pixels outside the frame stay transparent so
// markers on the region edge keep their position within the tile.
func ExtractROI(frame *image.RGBA, rel image.Point, size int) (*image.RGBA, error) {
	if frame == nil {
		return nil, errors.New("nil frame")
	}
	if size < 1 {
		size = 1
	}
	b := frame.Bounds()
	half := size / 2
	src := image.Rect(rel.X-half, rel.Y-half, rel.X-half+size, rel.Y-half+size).Add(b.Min)
	out := image.NewRGBA(image.Rect(0, 0, size, size))
	clip := src.Intersect(b)
	if clip.Empty() {
		return out, nil
	}
	draw.Draw(out, clip.Sub(src.Min), frame, clip.Min, draw.Src)
	return out, nil
}
