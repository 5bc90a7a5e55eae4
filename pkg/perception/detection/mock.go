package detection

import (
	"sync"
	"time"
)

// Mock implements Detector for testing and dry runs.
type Mock struct {
	// DetectFunc is called when Detect is invoked.
	DetectFunc func(frame Frame) ([]Detection, error)

	// CloseFunc is called when Close is invoked.
	CloseFunc func() error

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a method invocation.
type MockCall struct {
	Method string
	Time   time.Time
}

// NewMock creates a mock detector that finds nothing.
func NewMock() *Mock {
	return &Mock{
		DetectFunc: func(frame Frame) ([]Detection, error) {
			return nil, nil
		},
	}
}

// Detect implements Detector.
func (m *Mock) Detect(frame Frame) ([]Detection, error) {
	m.record("Detect")
	if m.DetectFunc != nil {
		return m.DetectFunc(frame)
	}
	return nil, nil
}

// Close implements Detector.
func (m *Mock) Close() error {
	m.record("Close")
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Calls returns a copy of the recorded invocations.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]MockCall, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *Mock) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Method: method, Time: time.Now()})
}
