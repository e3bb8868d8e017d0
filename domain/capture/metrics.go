package capture

import (
	"time"
)

// Stats summarises grab behaviour for instrumentation.
type Stats struct {
	Captures    uint64
	Failed      uint64
	AvgCapture  time.Duration
	LastCapture time.Time
}
