// Package detection provides the object detection boundary for the
// perception pipeline. Backends produce labeled bounding boxes in frame
// pixel coordinates; distance is resolved downstream.
package detection

import "sort"

// DistanceUnresolved marks a detection whose distance has not been
// resolved yet. Every record leaving the pipeline has a real distance.
const DistanceUnresolved = -1.0

// Rect is an axis-aligned rectangle in frame pixel coordinates.
// Invariant: left <= right, top <= bottom (W and H non-negative).
type Rect struct {
	X float64 `json:"x"` // Left edge
	Y float64 `json:"y"` // Top edge
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (x, y float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Area returns the area of the rectangle.
func (r Rect) Area() float64 {
	return r.W * r.H
}

// Intersects reports whether the two rectangles share a positive-area
// overlap. Rectangles that merely touch along an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	overlapW := min(r.X+r.W, o.X+o.W) - max(r.X, o.X)
	overlapH := min(r.Y+r.H, o.Y+o.H) - max(r.Y, o.Y)
	return overlapW > 0 && overlapH > 0
}

// Detection is one detected object. Produced by a Detector with
// DistanceMeters set to DistanceUnresolved; the distance resolver fills it
// in. Records are never mutated after that.
type Detection struct {
	Label          string  `json:"label"`
	Confidence     float64 `json:"confidence"`
	Box            Rect    `json:"box"`
	DistanceMeters float64 `json:"distance_meters"`
}

// Frame is an opaque image handle plus its pixel dimensions. The pipeline
// only reads the dimensions; backends decode Data as they see fit.
type Frame struct {
	Data   []byte
	Width  int
	Height int
}

// Detector is the interface for object detection backends.
type Detector interface {
	// Detect finds objects in the frame. Results are pre-filtered by the
	// backend's confidence threshold and capped at its result limit.
	Detect(frame Frame) ([]Detection, error)

	// Close releases resources
	Close() error
}

// Config holds detector configuration.
type Config struct {
	ModelPath        string  // Path to ONNX model
	ConfidenceThresh float64 // Minimum confidence (default 0.5)
	MaxResults       int     // Cap on returned detections (default 10)
	NMSThresh        float64 // Non-maximum suppression threshold
	InputWidth       int     // Model input width
	InputHeight      int     // Model input height
}

// DefaultConfig returns production defaults for YOLOv8n.
func DefaultConfig() Config {
	return Config{
		ModelPath:        "models/yolov8n.onnx",
		ConfidenceThresh: 0.5,
		MaxResults:       10,
		NMSThresh:        0.45,
		InputWidth:       640,
		InputHeight:      640,
	}
}

// CapResults returns at most limit detections, highest confidence first.
// A non-positive limit returns the input unchanged. The sort is stable so
// equal-confidence detections keep their backend order.
func CapResults(dets []Detection, limit int) []Detection {
	if limit <= 0 || len(dets) <= limit {
		return dets
	}
	out := make([]Detection, len(dets))
	copy(out, dets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out[:limit]
}
