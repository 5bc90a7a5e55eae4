package perception

import "math"

// GateState is the tilt gate decision for the current orientation.
type GateState int

const (
	// GateBlocked means the device is not held at the target tilt.
	GateBlocked GateState = iota
	// GateReady means detection is permitted to run this cycle.
	GateReady
)

// String implements fmt.Stringer.
func (s GateState) String() string {
	if s == GateReady {
		return "ready"
	}
	return "blocked"
}

// TiltGate decides whether detection may run based on device pitch.
// It is a pure function of its inputs, re-evaluated on every orientation
// update; there is no gate lifecycle.
type TiltGate struct {
	TargetDegrees    float64
	ToleranceDegrees float64
}

// NewTiltGate creates a gate from the pipeline configuration.
func NewTiltGate(cfg Config) TiltGate {
	return TiltGate{
		TargetDegrees:    cfg.TargetPitchDegrees,
		ToleranceDegrees: cfg.PitchToleranceDegrees,
	}
}

// Evaluate returns the gate state for a pitch reading.
//
// Devices without orientation sensors degrade to always-ready rather than
// never-ready: absence of capability must not lock detection out. With
// sensors present the band is strict; a pitch exactly at the tolerance
// boundary blocks.
func (g TiltGate) Evaluate(pitchDegrees float64, sourceAvailable bool) GateState {
	if !sourceAvailable {
		return GateReady
	}
	if math.Abs(pitchDegrees-g.TargetDegrees) < g.ToleranceDegrees {
		return GateReady
	}
	return GateBlocked
}
