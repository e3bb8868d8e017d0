// Package probe captures one frame of the scan region and reports, per
// marker, what the detector sees. It is a calibration aid for NOTE_COORDS
// and NOTE_COLORS.
package probe

import (
	"fmt"
	"image"
	"io"
	"text/tabwriter"

	"github.com/soocke/note-bot-go/apperr"
	"github.com/soocke/note-bot-go/domain/capture"
	"github.com/soocke/note-bot-go/domain/detect"
	"github.com/soocke/note-bot-go/domain/marker"
)

// Result describes one marker in the probed frame.
type Result struct {
	Marker       marker.Marker
	Sample       marker.Color // center pixel
	SampleOK     bool
	BestDistance int // smallest max-channel distance in the 3x3 window
	Detected     bool
}

// Report is the outcome of a probe.
type Report struct {
	Region    image.Rectangle
	Tolerance int
	Frame     *image.RGBA
	Results   []Result
}

// Run grabs the registry's region once and evaluates every marker.
func Run(grabber capture.Grabber, reg *marker.Registry, d detect.Detector) (*Report, error) {
	region := reg.Region()
	frame, err := grabber.Grab(region)
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindCapture, "probe.capture", "grab frame")
	}
	if frame == nil {
		return nil, apperr.New(apperr.KindDetect, "probe.detect", "nil frame")
	}
	markers := reg.Markers()
	rep := &Report{Region: region, Tolerance: d.Tolerance, Frame: frame, Results: make([]Result, 0, len(markers))}
	for _, m := range markers {
		res := Result{Marker: m}
		if r, g, b, ok := detect.SampleAt(frame, m.Rel); ok {
			res.Sample = marker.ClampColor(r, g, b)
			res.SampleOK = true
		}
		if best, ok := detect.BestDistance(frame, m); ok {
			res.BestDistance = best
			res.Detected = best <= d.Tolerance
		} else {
			res.BestDistance = -1
		}
		rep.Results = append(rep.Results, res)
	}
	return rep, nil
}

// Detected returns how many markers matched.
func (r *Report) Detected() int {
	n := 0
	for _, res := range r.Results {
		if res.Detected {
			n++
		}
	}
	return n
}

// WriteText prints a table of results to w.
func (r *Report) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "region %v tolerance %d\n", r.Region, r.Tolerance)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MARKER\tKEY\tPOS\tTARGET\tSAMPLE\tBEST\tDETECTED")
	for _, res := range r.Results {
		sample := "-"
		if res.SampleOK {
			sample = colorString(res.Sample)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d,%d\t%s\t%s\t%d\t%v\n",
			res.Marker.Name, res.Marker.Key, res.Marker.Pos.X, res.Marker.Pos.Y,
			colorString(res.Marker.Color), sample, res.BestDistance, res.Detected)
	}
	return tw.Flush()
}

func colorString(c marker.Color) string {
	return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B)
}
