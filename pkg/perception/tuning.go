package perception

import "time"

// TuningParams holds the pipeline parameters adjustable at runtime via the
// dashboard API, without restarting the daemon.
type TuningParams struct {
	// TargetPitchDegrees is a pointer because zero and negative targets are
	// both meaningful values.
	TargetPitchDegrees *float64 `json:"target_pitch_degrees,omitempty"`

	PitchToleranceDegrees float64 `json:"pitch_tolerance_degrees"`
	MinIntervalSeconds    float64 `json:"min_interval_seconds"`
	ZoneWidthRatio        float64 `json:"zone_width_ratio"`
	ZoneHeightRatio       float64 `json:"zone_height_ratio"`
	FocalLengthPx         float64 `json:"focal_length_px"`
	MaxHitDistance        float64 `json:"max_hit_distance"`

	HitTestEnabled *bool `json:"hit_test_enabled,omitempty"`
}

// GetTuningParams returns the current tuning parameters.
func (p *Pipeline) GetTuningParams() TuningParams {
	p.mu.RLock()
	defer p.mu.RUnlock()

	target := p.config.TargetPitchDegrees
	enabled := p.config.HitTestEnabled

	return TuningParams{
		TargetPitchDegrees:    &target,
		PitchToleranceDegrees: p.config.PitchToleranceDegrees,
		MinIntervalSeconds:    p.sched.MinInterval().Seconds(),
		ZoneWidthRatio:        p.config.ZoneWidthRatio,
		ZoneHeightRatio:       p.config.ZoneHeightRatio,
		FocalLengthPx:         p.config.FocalLengthPx,
		MaxHitDistance:        p.config.MaxHitDistance,
		HitTestEnabled:        &enabled,
	}
}

// SetTuningParams updates tuning parameters at runtime. Numeric zero values
// are treated as "leave unchanged"; the pointer fields are applied whenever
// present.
func (p *Pipeline) SetTuningParams(params TuningParams) {
	p.mu.Lock()

	if params.TargetPitchDegrees != nil {
		p.config.TargetPitchDegrees = *params.TargetPitchDegrees
	}
	if params.PitchToleranceDegrees > 0 {
		p.config.PitchToleranceDegrees = params.PitchToleranceDegrees
	}
	if params.ZoneWidthRatio > 0 {
		p.config.ZoneWidthRatio = params.ZoneWidthRatio
	}
	if params.ZoneHeightRatio > 0 {
		p.config.ZoneHeightRatio = params.ZoneHeightRatio
	}
	if params.FocalLengthPx > 0 {
		p.config.FocalLengthPx = params.FocalLengthPx
	}
	if params.MaxHitDistance > 0 {
		p.config.MaxHitDistance = params.MaxHitDistance
	}
	if params.HitTestEnabled != nil {
		p.config.HitTestEnabled = *params.HitTestEnabled
	}
	if params.MinIntervalSeconds > 0 {
		p.config.MinDetectionInterval = time.Duration(params.MinIntervalSeconds * float64(time.Second))
	}

	p.gate = NewTiltGate(p.config)
	p.zone = NewZone(p.config)
	widths := p.resolver.Widths
	p.resolver = resolverFromConfig(p.config)
	p.resolver.Widths = widths
	interval := p.config.MinDetectionInterval
	p.mu.Unlock()

	p.sched.SetMinInterval(interval)
	p.refreshGate()
}
