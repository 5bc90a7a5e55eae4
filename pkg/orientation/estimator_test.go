package orientation

import (
	"math"
	"testing"
)

func TestEstimator_Pitch(t *testing.T) {
	// Magnetic field with a downward component, not parallel to gravity.
	magX, magY, magZ := 0.0, 20.0, -40.0

	tests := []struct {
		name      string
		accel     [3]float64
		wantPitch float64
	}{
		{
			name:      "device flat face up",
			accel:     [3]float64{0, 0, 9.81},
			wantPitch: 0,
		},
		{
			name:      "device upright",
			accel:     [3]float64{0, 9.81, 0},
			wantPitch: -90,
		},
		{
			name:      "device tilted halfway down",
			accel:     [3]float64{0, 6.937, 6.937},
			wantPitch: -45,
		},
		{
			name:      "device tipped back halfway",
			accel:     [3]float64{0, -6.937, 6.937},
			wantPitch: 45,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEstimator(true, true)
			e.UpdateMagnetometer(magX, magY, magZ, 100)
			e.UpdateAccelerometer(tt.accel[0], tt.accel[1], tt.accel[2], 101)

			sample := e.Sample()
			if !sample.SourceAvailable {
				t.Fatal("expected source available")
			}
			if sample.TimestampMs != 101 {
				t.Errorf("timestamp: got %d, want 101", sample.TimestampMs)
			}
			if math.Abs(sample.PitchDegrees-tt.wantPitch) > 0.1 {
				t.Errorf("pitch: got %.2f, want %.2f", sample.PitchDegrees, tt.wantPitch)
			}
		})
	}
}

func TestEstimator_NoFusionBeforeBothSensors(t *testing.T) {
	e := NewEstimator(true, true)
	e.UpdateAccelerometer(0, 0, 9.81, 50)

	sample := e.Sample()
	if sample.TimestampMs != 0 {
		t.Errorf("expected no fusion with only one sensor, got timestamp %d", sample.TimestampMs)
	}
}

func TestEstimator_Unavailable(t *testing.T) {
	tests := []struct {
		name  string
		accel bool
		mag   bool
	}{
		{name: "no accelerometer", accel: false, mag: true},
		{name: "no magnetometer", accel: true, mag: false},
		{name: "neither sensor", accel: false, mag: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEstimator(tt.accel, tt.mag)
			if e.Available() {
				t.Fatal("expected unavailable")
			}

			// Updates on a crippled estimator are ignored entirely.
			e.UpdateAccelerometer(0, 9.81, 0, 100)
			e.UpdateMagnetometer(0, 20, -40, 101)

			sample := e.Sample()
			if sample.SourceAvailable {
				t.Error("expected SourceAvailable=false")
			}
			if sample.PitchDegrees != 0 || sample.TimestampMs != 0 {
				t.Errorf("expected zero sample, got %+v", sample)
			}
		})
	}
}

func TestEstimator_DegenerateInputKeepsPreviousSample(t *testing.T) {
	e := NewEstimator(true, true)
	e.UpdateMagnetometer(0, 20, -40, 100)
	e.UpdateAccelerometer(0, 6.937, 6.937, 101)

	before := e.Sample()

	// Magnetic field parallel to gravity: the rotation matrix is
	// undefined, so the update must be skipped.
	e.UpdateMagnetometer(0, 6.937, 6.937, 200)

	after := e.Sample()
	if after != before {
		t.Errorf("degenerate update changed sample: before %+v, after %+v", before, after)
	}
}

func TestDegreesRadians(t *testing.T) {
	if got := Degrees(math.Pi); math.Abs(got-180) > 1e-9 {
		t.Errorf("Degrees(pi) = %v, want 180", got)
	}
	if got := Radians(-45); math.Abs(got+math.Pi/4) > 1e-9 {
		t.Errorf("Radians(-45) = %v, want -pi/4", got)
	}
}
