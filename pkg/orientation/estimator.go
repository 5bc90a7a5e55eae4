// Package orientation fuses accelerometer and magnetometer readings into
// device orientation angles. Only the pitch component is consumed downstream;
// the full angle set is kept for inspection.
package orientation

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/depthgate/go-depthgate/internal/log"
)

// minVectorNorm rejects near-zero sensor vectors before fusion.
// Below this the device is in free fall or the reading is garbage.
const minVectorNorm = 1e-6

// Sample is the estimator output consumed by the tilt gate.
type Sample struct {
	PitchDegrees    float64 `json:"pitch_degrees"`
	TimestampMs     int64   `json:"timestamp_ms"`
	SourceAvailable bool    `json:"source_available"`
}

// Angles holds the full derived orientation in degrees.
type Angles struct {
	Azimuth float64 // Rotation about the vertical axis
	Pitch   float64 // Tilt about the lateral axis
	Roll    float64 // Tilt about the longitudinal axis
}

// Estimator keeps the latest reading from each sensor and recomputes the
// orientation whenever either one updates. The two sensors arrive on
// independent callbacks at unsynchronized rates.
type Estimator struct {
	mu sync.RWMutex

	available bool // Both sensors present at init; permanent
	haveAccel bool
	haveMag   bool
	accel     r3.Vec
	mag       r3.Vec

	angles Angles
	sample Sample
}

// NewEstimator creates an estimator. accelPresent and magPresent report
// whether the hardware sensors exist; absence is a permanent condition and
// disables fusion entirely rather than producing bogus angles.
func NewEstimator(accelPresent, magPresent bool) *Estimator {
	available := accelPresent && magPresent
	if !available {
		log.Warn("orientation sensing unavailable, tilt gating disabled",
			"accelerometer", accelPresent, "magnetometer", magPresent)
	}
	return &Estimator{
		available: available,
		sample:    Sample{SourceAvailable: available},
	}
}

// Available reports whether both required sensors exist.
func (e *Estimator) Available() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.available
}

// UpdateAccelerometer records a raw accelerometer vector and re-runs fusion.
func (e *Estimator) UpdateAccelerometer(x, y, z float64, timestampMs int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.available {
		return
	}
	e.accel = r3.Vec{X: x, Y: y, Z: z}
	e.haveAccel = true
	e.fuse(timestampMs)
}

// UpdateMagnetometer records a raw magnetometer vector and re-runs fusion.
func (e *Estimator) UpdateMagnetometer(x, y, z float64, timestampMs int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.available {
		return
	}
	e.mag = r3.Vec{X: x, Y: y, Z: z}
	e.haveMag = true
	e.fuse(timestampMs)
}

// Sample returns the most recent estimator output.
func (e *Estimator) Sample() Sample {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sample
}

// CurrentAngles returns the full orientation from the last successful fusion.
func (e *Estimator) CurrentAngles() Angles {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.angles
}

// fuse rebuilds the rotation matrix from the latest gravity and geomagnetic
// vectors and derives orientation angles. Requires e.mu held.
//
// Construction matches the standard mobile sensor fusion: with A the
// normalized gravity vector, H = normalize(mag × accel) points east and
// M = A × H points toward magnetic north. The rows [H M A] form the rotation
// from device coordinates to the world frame, giving
//
//	azimuth = atan2(H.y, M.y)
//	pitch   = asin(-A.y)
//	roll    = atan2(-A.x, A.z)
func (e *Estimator) fuse(timestampMs int64) {
	if !e.haveAccel || !e.haveMag {
		return
	}
	if r3.Norm(e.accel) < minVectorNorm || r3.Norm(e.mag) < minVectorNorm {
		return
	}

	h := r3.Cross(e.mag, e.accel)
	if r3.Norm(h) < minVectorNorm {
		// Magnetic field parallel to gravity: free fall or a magnetic
		// anomaly. Keep the previous sample rather than emitting noise.
		return
	}
	h = r3.Unit(h)
	a := r3.Unit(e.accel)
	m := r3.Cross(a, h)

	e.angles = Angles{
		Azimuth: Degrees(math.Atan2(h.Y, m.Y)),
		Pitch:   Degrees(math.Asin(clampUnit(-a.Y))),
		Roll:    Degrees(math.Atan2(-a.X, a.Z)),
	}
	e.sample = Sample{
		PitchDegrees:    e.angles.Pitch,
		TimestampMs:     timestampMs,
		SourceAvailable: true,
	}
}

// clampUnit guards asin against floating point drift outside [-1, 1].
func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
