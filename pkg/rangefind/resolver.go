// Package rangefind resolves the physical distance of detected objects by
// combining depth-sensor hit tests with a size-based geometric fallback.
package rangefind

import (
	"github.com/depthgate/go-depthgate/pkg/perception/detection"
)

// HitTester queries tracked scene geometry for the depth of the nearest
// surface along the screen ray through (x, y). ok=false means no geometry
// was found there; it is never an error.
type HitTester interface {
	HitTest(x, y float64) (meters float64, ok bool)
}

// HitTesterFunc adapts a plain function to the HitTester interface.
type HitTesterFunc func(x, y float64) (float64, bool)

// HitTest implements HitTester.
func (f HitTesterFunc) HitTest(x, y float64) (float64, bool) {
	return f(x, y)
}

// Resolver fills in detection distances. The hit test is the authoritative
// signal when the tracking subsystem has built scene geometry behind the
// object; the geometric estimate is the degraded-but-always-available
// fallback. The resolver never fails outright.
type Resolver struct {
	// FocalLengthPx is the camera focal length in pixels, a fixed
	// calibration constant for the device.
	FocalLengthPx float64

	// MaxHitDistance rejects implausible hit-test results (meters).
	MaxHitDistance float64

	// HitTestEnabled disables the depth query entirely when false, forcing
	// the geometric fallback.
	HitTestEnabled bool

	// Widths maps labels to assumed real-world object widths.
	Widths WidthTable
}

// NewResolver creates a resolver with the default calibration.
func NewResolver() *Resolver {
	return &Resolver{
		FocalLengthPx:  DefaultFocalLengthPx,
		MaxHitDistance: DefaultMaxHitDistance,
		HitTestEnabled: true,
		Widths:         DefaultWidths(),
	}
}

// Default calibration for the handheld camera.
const (
	DefaultFocalLengthPx  = 800.0
	DefaultMaxHitDistance = 10.0
)

// Resolve returns the detection with DistanceMeters filled in.
//
// Priority order: an accepted hit test wins; otherwise the distance is
// estimated from the assumed real-world width of the label and the apparent
// box width. A zero or negative box width resolves to 0, never an error.
func (r *Resolver) Resolve(det detection.Detection, hits HitTester) detection.Detection {
	if r.HitTestEnabled && hits != nil {
		cx, cy := det.Box.Center()
		if d, ok := hits.HitTest(cx, cy); ok && d > 0 && d <= r.MaxHitDistance {
			det.DistanceMeters = d
			return det
		}
	}

	det.DistanceMeters = r.estimate(det.Label, det.Box.W)
	return det
}

// ResolveAll resolves every detection in order.
func (r *Resolver) ResolveAll(dets []detection.Detection, hits HitTester) []detection.Detection {
	out := make([]detection.Detection, 0, len(dets))
	for _, det := range dets {
		out = append(out, r.Resolve(det, hits))
	}
	return out
}

// estimate computes the pinhole-model distance from apparent size:
// distance = realWidth * focalLength / pixelWidth.
func (r *Resolver) estimate(label string, boxWidthPx float64) float64 {
	if boxWidthPx <= 0 {
		return 0
	}
	return r.Widths.Width(label) * r.FocalLengthPx / boxWidthPx
}

// DistanceCategory returns a human-readable distance category.
func DistanceCategory(distance float64) string {
	if distance <= 0 {
		return "unknown"
	}
	if distance < 0.5 {
		return "very close"
	}
	if distance < 1.0 {
		return "close"
	}
	if distance < 2.0 {
		return "nearby"
	}
	if distance < 5.0 {
		return "moderate"
	}
	return "far"
}
