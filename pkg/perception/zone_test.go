package perception

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/depthgate/go-depthgate/pkg/perception/detection"
)

func TestZone_Rect(t *testing.T) {
	z := Zone{WidthRatio: 0.4, HeightRatio: 0.3}

	got := z.Rect(1000, 500)
	want := detection.Rect{X: 300, Y: 175, W: 400, H: 150}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("zone rect mismatch (-want +got):\n%s", diff)
	}
}

func TestZone_Filter(t *testing.T) {
	// Frame 100x100, zone spans x 30-70, y 35-65.
	z := Zone{WidthRatio: 0.4, HeightRatio: 0.3}

	inside := detection.Detection{
		Label: "cup", Confidence: 0.8,
		Box:            detection.Rect{X: 40, Y: 40, W: 10, H: 10},
		DistanceMeters: detection.DistanceUnresolved,
	}
	overlapping := detection.Detection{
		Label: "book", Confidence: 0.7,
		Box:            detection.Rect{X: 65, Y: 60, W: 20, H: 20},
		DistanceMeters: detection.DistanceUnresolved,
	}
	outside := detection.Detection{
		Label: "chair", Confidence: 0.9,
		Box:            detection.Rect{X: 0, Y: 0, W: 20, H: 20},
		DistanceMeters: detection.DistanceUnresolved,
	}
	// Shares the zone's right edge exactly: zero-area overlap.
	touching := detection.Detection{
		Label: "bottle", Confidence: 0.6,
		Box:            detection.Rect{X: 70, Y: 40, W: 10, H: 10},
		DistanceMeters: detection.DistanceUnresolved,
	}

	got := z.Filter([]detection.Detection{inside, outside, overlapping, touching}, 100, 100)
	want := []detection.Detection{inside, overlapping}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("filter mismatch (-want +got):\n%s", diff)
	}
}

func TestZone_FilterIdempotent(t *testing.T) {
	z := Zone{WidthRatio: 0.4, HeightRatio: 0.3}

	dets := []detection.Detection{
		{Label: "cup", Box: detection.Rect{X: 45, Y: 45, W: 10, H: 10}},
		{Label: "tv", Box: detection.Rect{X: 60, Y: 50, W: 30, H: 30}},
		{Label: "cat", Box: detection.Rect{X: 90, Y: 90, W: 5, H: 5}},
	}

	once := z.Filter(dets, 100, 100)
	twice := z.Filter(once, 100, 100)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("filter not idempotent (-once +twice):\n%s", diff)
	}
}

func TestZone_FilterPreservesOrder(t *testing.T) {
	z := Zone{WidthRatio: 1, HeightRatio: 1}

	dets := []detection.Detection{
		{Label: "first", Box: detection.Rect{X: 10, Y: 10, W: 10, H: 10}},
		{Label: "second", Box: detection.Rect{X: 30, Y: 30, W: 10, H: 10}},
		{Label: "third", Box: detection.Rect{X: 50, Y: 50, W: 10, H: 10}},
	}

	got := z.Filter(dets, 100, 100)
	if len(got) != 3 {
		t.Fatalf("expected all detections kept, got %d", len(got))
	}
	for i, det := range got {
		if det.Label != dets[i].Label {
			t.Errorf("order changed at %d: got %q, want %q", i, det.Label, dets[i].Label)
		}
	}
}
