package perception

import "testing"

func TestTiltGate_Evaluate(t *testing.T) {
	gate := TiltGate{TargetDegrees: -45, ToleranceDegrees: 20}

	tests := []struct {
		name      string
		pitch     float64
		available bool
		want      GateState
	}{
		{name: "on target", pitch: -45, available: true, want: GateReady},
		{name: "inside band high", pitch: -26, available: true, want: GateReady},
		{name: "inside band low", pitch: -64, available: true, want: GateReady},
		{name: "exactly at tolerance boundary", pitch: -25, available: true, want: GateBlocked},
		{name: "exactly at lower boundary", pitch: -65, available: true, want: GateBlocked},
		{name: "far above", pitch: 30, available: true, want: GateBlocked},
		{name: "far below", pitch: -90, available: true, want: GateBlocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gate.Evaluate(tt.pitch, tt.available)
			if got != tt.want {
				t.Errorf("Evaluate(%v, %v) = %v, want %v", tt.pitch, tt.available, got, tt.want)
			}
		})
	}
}

func TestTiltGate_UnavailableAlwaysReady(t *testing.T) {
	// Devices without orientation sensors must never be locked out.
	gate := TiltGate{TargetDegrees: -45, ToleranceDegrees: 5}

	for _, pitch := range []float64{-180, -90, -45, -25, 0, 45, 90, 180} {
		if got := gate.Evaluate(pitch, false); got != GateReady {
			t.Errorf("Evaluate(%v, false) = %v, want ready", pitch, got)
		}
	}
}

func TestGateState_String(t *testing.T) {
	if GateReady.String() != "ready" || GateBlocked.String() != "blocked" {
		t.Errorf("unexpected state strings: %q, %q", GateReady, GateBlocked)
	}
}
