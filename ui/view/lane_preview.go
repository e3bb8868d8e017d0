package view

import (
	"image"

	"github.com/soocke/note-bot-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// LanePreview shows the per-lane tiles rendered by the preview presenter.
type LanePreview interface {
	Update(img image.Image)
	Reset()
}

type lanePreview struct {
	label     *LabelWidget
	prevPhoto *Img // disposed before replacement so old pixel data is released
}

// NewLanePreview creates the preview label spanning both columns of row.
func NewLanePreview(row int) LanePreview {
	photo := NewPhoto(Data(images.EncodePNG(placeholder())))
	label := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(label, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	return &lanePreview{label: label, prevPhoto: photo}
}

func (v *lanePreview) Update(img image.Image) {
	if v.label == nil || img == nil {
		return
	}
	v.replace(images.EncodePNG(img))
}

func (v *lanePreview) Reset() {
	if v.label == nil {
		return
	}
	v.replace(images.EncodePNG(placeholder()))
}

func (v *lanePreview) replace(png []byte) {
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = NewPhoto(Data(png))
	v.label.Configure(Image(v.prevPhoto))
}

func placeholder() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 200, 60))
}
