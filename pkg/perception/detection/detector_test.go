package detection

import (
	"errors"
	"testing"
)

func TestRect_Center(t *testing.T) {
	tests := []struct {
		name    string
		rect    Rect
		expectX float64
		expectY float64
	}{
		{
			name:    "centered box",
			rect:    Rect{X: 100, Y: 100, W: 200, H: 100},
			expectX: 200,
			expectY: 150,
		},
		{
			name:    "origin box",
			rect:    Rect{X: 0, Y: 0, W: 50, H: 30},
			expectX: 25,
			expectY: 15,
		},
		{
			name:    "degenerate box",
			rect:    Rect{X: 10, Y: 20, W: 0, H: 0},
			expectX: 10,
			expectY: 20,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y := tc.rect.Center()
			if x != tc.expectX || y != tc.expectY {
				t.Errorf("Center: got (%.1f, %.1f), want (%.1f, %.1f)", x, y, tc.expectX, tc.expectY)
			}
		})
	}
}

func TestRect_Intersects(t *testing.T) {
	zone := Rect{X: 30, Y: 35, W: 40, H: 30}

	tests := []struct {
		name string
		box  Rect
		want bool
	}{
		{name: "fully inside", box: Rect{X: 40, Y: 40, W: 10, H: 10}, want: true},
		{name: "partial overlap", box: Rect{X: 65, Y: 60, W: 20, H: 20}, want: true},
		{name: "fully outside", box: Rect{X: 0, Y: 0, W: 10, H: 10}, want: false},
		{name: "touching right edge", box: Rect{X: 70, Y: 40, W: 10, H: 10}, want: false},
		{name: "touching bottom edge", box: Rect{X: 40, Y: 65, W: 10, H: 10}, want: false},
		{name: "touching corner", box: Rect{X: 70, Y: 65, W: 10, H: 10}, want: false},
		{name: "containing the zone", box: Rect{X: 0, Y: 0, W: 100, H: 100}, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.box.Intersects(zone); got != tc.want {
				t.Errorf("Intersects: got %v, want %v", got, tc.want)
			}
			// Intersection is symmetric.
			if got := zone.Intersects(tc.box); got != tc.want {
				t.Errorf("Intersects (reversed): got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCapResults(t *testing.T) {
	dets := []Detection{
		{Label: "a", Confidence: 0.5},
		{Label: "b", Confidence: 0.9},
		{Label: "c", Confidence: 0.7},
		{Label: "d", Confidence: 0.9},
	}

	got := CapResults(dets, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	// Highest confidence first; equal confidences keep backend order.
	if got[0].Label != "b" || got[1].Label != "d" {
		t.Errorf("got %q, %q; want b, d", got[0].Label, got[1].Label)
	}

	// Input order must not be disturbed.
	if dets[0].Label != "a" || dets[1].Label != "b" {
		t.Error("CapResults mutated its input")
	}

	if got := CapResults(dets, 0); len(got) != 4 {
		t.Errorf("non-positive limit should pass through, got %d results", len(got))
	}
	if got := CapResults(dets, 10); len(got) != 4 {
		t.Errorf("limit above length should pass through, got %d results", len(got))
	}
}

func TestMock(t *testing.T) {
	boom := errors.New("backend down")
	m := NewMock()
	m.DetectFunc = func(frame Frame) ([]Detection, error) {
		return nil, boom
	}

	_, err := m.Detect(Frame{Width: 100, Height: 100})
	if !errors.Is(err, boom) {
		t.Errorf("expected backend error, got %v", err)
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}

	calls := m.Calls()
	if len(calls) != 2 || calls[0].Method != "Detect" || calls[1].Method != "Close" {
		t.Errorf("unexpected call record: %+v", calls)
	}
}
