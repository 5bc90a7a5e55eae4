package perception

import (
	"github.com/depthgate/go-depthgate/pkg/perception/detection"
)

// Zone is the centered rectangular sub-region of the frame within which
// detections are considered relevant.
type Zone struct {
	WidthRatio  float64
	HeightRatio float64
}

// NewZone creates a zone from the pipeline configuration.
func NewZone(cfg Config) Zone {
	return Zone{
		WidthRatio:  cfg.ZoneWidthRatio,
		HeightRatio: cfg.ZoneHeightRatio,
	}
}

// Rect returns the zone rectangle for a frame of the given dimensions.
func (z Zone) Rect(frameWidth, frameHeight float64) detection.Rect {
	w := frameWidth * z.WidthRatio
	h := frameHeight * z.HeightRatio
	return detection.Rect{
		X: (frameWidth - w) / 2,
		Y: (frameHeight - h) / 2,
		W: w,
		H: h,
	}
}

// Filter keeps detections whose bounding box overlaps the zone rectangle.
// The intersection test is boolean with no partial-overlap weighting, and
// an edge-touching box with zero overlap area is excluded. Detections pass
// through unmodified and in order, so filtering is idempotent.
func (z Zone) Filter(dets []detection.Detection, frameWidth, frameHeight float64) []detection.Detection {
	zone := z.Rect(frameWidth, frameHeight)
	out := make([]detection.Detection, 0, len(dets))
	for _, det := range dets {
		if det.Box.Intersects(zone) {
			out = append(out, det)
		}
	}
	return out
}
