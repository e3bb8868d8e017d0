package presenter

import (
	"image"

	"github.com/soocke/note-bot-go/domain/probe"
	"github.com/soocke/note-bot-go/ui/images"
)

// PreviewView shows the lane strip image.
type PreviewView interface {
	UpdatePreview(img image.Image)
	ResetPreview()
}

// PreviewPresenter probes the scan region every N ticks and renders the
// per-lane tiles.
type PreviewPresenter struct {
	probe func() (*probe.Report, error)
	view  PreviewView
	every int
	ticks int
}

// NewPreviewPresenter refreshes the preview every `every` ticks.
func NewPreviewPresenter(probeFn func() (*probe.Report, error), view PreviewView, every int) *PreviewPresenter {
	if every < 1 {
		every = 1
	}
	return &PreviewPresenter{probe: probeFn, view: view, every: every}
}

// Tick refreshes the preview when due.
func (p *PreviewPresenter) Tick() {
	if p == nil || p.probe == nil || p.view == nil {
		return
	}
	p.ticks++
	if (p.ticks-1)%p.every != 0 {
		return
	}
	rep, err := p.probe()
	if err != nil || rep == nil {
		p.view.ResetPreview()
		return
	}
	lanes := make([]images.Lane, 0, len(rep.Results))
	for _, res := range rep.Results {
		lanes = append(lanes, images.Lane{Frame: rep.Frame, Rel: res.Marker.Rel, Detected: res.Detected})
	}
	p.view.UpdatePreview(images.LaneStrip(lanes))
}
