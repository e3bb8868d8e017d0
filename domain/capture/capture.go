// Package capture grabs screen regions for the scan loop and probe.
package capture

import (
	"image"

	"github.com/vova616/screenshot"

	"github.com/soocke/note-bot-go/apperr"
)

// Grabber captures one frame covering rect. Implementations must return a
// fresh image per call.
type Grabber interface {
	Grab(rect image.Rectangle) (*image.RGBA, error)
}

// ScreenGrabber captures from the primary display.
type ScreenGrabber struct{}

// NewScreenGrabber returns the production grabber.
func NewScreenGrabber() ScreenGrabber { return ScreenGrabber{} }

func (ScreenGrabber) Grab(rect image.Rectangle) (*image.RGBA, error) {
	if rect.Empty() {
		return nil, apperr.New(apperr.KindCapture, "capture.grab", "empty region")
	}
	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindCapture, "capture.grab", "capture rect").
			WithMetadata("rect", rect.String())
	}
	return img, nil
}

// ScreenBounds returns the primary display rectangle.
func ScreenBounds() (image.Rectangle, error) {
	r, err := screenshot.ScreenRect()
	if err != nil {
		return image.Rectangle{}, apperr.Wrap(err, apperr.KindCapture, "capture.bounds", "screen rect")
	}
	return r, nil
}
