// Package perception decides when object detection may run and turns raw
// detector output into distance-resolved records. The flow is: sensor
// samples feed the tilt gate, the gate plus a minimum cadence drive the
// scheduler, and each fired cycle is zone-filtered and distance-resolved
// before delivery.
package perception

import "time"

// Config holds all tunable parameters for the perception pipeline.
type Config struct {
	// Gating
	TargetPitchDegrees    float64 // Pitch at which detection is allowed
	PitchToleranceDegrees float64 // Allowed band around the target (strict)

	// Scheduling
	MinDetectionInterval time.Duration // Minimum spacing between detections

	// Zone
	ZoneWidthRatio  float64 // Zone width as a fraction of frame width
	ZoneHeightRatio float64 // Zone height as a fraction of frame height

	// Distance resolution
	FocalLengthPx  float64 // Camera focal length calibration (pixels)
	MaxHitDistance float64 // Reject hit tests beyond this (meters)
	HitTestEnabled bool    // Allow depth hit tests at all

	// Detection backend
	ConfidenceThresh float64 // Minimum detection confidence
	MaxResults       int     // Cap on detections per cycle
}

// DefaultConfig returns the recommended configuration.
//
// The source device revisions disagree on the canonical gating constants
// (±45° target, 5-20° tolerance), so both are plain configuration here
// rather than a guessed "true" default.
func DefaultConfig() Config {
	return Config{
		// Gating - hold the device tilted halfway toward the ground
		TargetPitchDegrees:    -45,
		PitchToleranceDegrees: 15,

		// Scheduling - frames arrive at >10 Hz, inference is expensive
		MinDetectionInterval: 3 * time.Second,

		// Zone - centered region of interest
		ZoneWidthRatio:  0.4,
		ZoneHeightRatio: 0.3,

		// Distance
		FocalLengthPx:  800,
		MaxHitDistance: 10,
		HitTestEnabled: true,

		// Backend
		ConfidenceThresh: 0.5,
		MaxResults:       10,
	}
}

// StrictConfig returns a configuration that demands steadier aim and gives
// the backend more recovery time.
func StrictConfig() Config {
	cfg := DefaultConfig()
	cfg.PitchToleranceDegrees = 5
	cfg.MinDetectionInterval = 5 * time.Second
	cfg.ZoneWidthRatio = 0.3
	cfg.ZoneHeightRatio = 0.25
	cfg.ConfidenceThresh = 0.6
	return cfg
}

// RelaxedConfig returns a configuration for demos: a wide tolerance band,
// faster cadence, and a bigger zone.
func RelaxedConfig() Config {
	cfg := DefaultConfig()
	cfg.PitchToleranceDegrees = 20
	cfg.MinDetectionInterval = 2 * time.Second
	cfg.ZoneWidthRatio = 0.5
	cfg.ZoneHeightRatio = 0.4
	return cfg
}
