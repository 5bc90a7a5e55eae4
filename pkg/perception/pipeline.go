package perception

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/depthgate/go-depthgate/internal/log"
	"github.com/depthgate/go-depthgate/pkg/orientation"
	"github.com/depthgate/go-depthgate/pkg/perception/detection"
	"github.com/depthgate/go-depthgate/pkg/rangefind"
)

// Results is one detection cycle's output: an ordered list of
// distance-resolved records ready for display. Records are immutable once
// delivered and live until the next cycle replaces them.
type Results struct {
	CycleID    string                `json:"cycle_id"`
	Timestamp  time.Time             `json:"timestamp"`
	Detections []detection.Detection `json:"detections"`
}

// StateUpdater receives pipeline state for a dashboard or other observer.
type StateUpdater interface {
	UpdateGate(sample orientation.Sample, state GateState)
	PublishResults(res Results)
}

// Pipeline drives the perception flow: sensor updates re-derive the tilt
// gate, each incoming frame consults the gate and scheduler, and a fired cycle
// runs detection on a single worker goroutine before zone filtering and
// distance resolution.
type Pipeline struct {
	estimator *orientation.Estimator
	sched     *Scheduler
	detector  detection.Detector
	hits      rangefind.HitTester

	// now is the clock used for scheduling decisions; injectable in tests.
	now func() time.Time

	mu         sync.RWMutex
	config     Config
	gate       TiltGate
	zone       Zone
	resolver   rangefind.Resolver
	gateState  GateState
	lastSample orientation.Sample
	generation uint64
	cycleCount uint64
	last       Results
	onResults  func(Results)
	state      StateUpdater
}

// State is a snapshot of the pipeline for inspection and the dashboard.
type State struct {
	PitchDegrees    float64        `json:"pitch_degrees"`
	SourceAvailable bool           `json:"source_available"`
	Gate            string         `json:"gate"`
	Scheduler       SchedulerState `json:"scheduler"`
	CycleCount      uint64         `json:"cycle_count"`
}

// New creates a pipeline. hits may be nil when no depth subsystem exists;
// distance resolution then always uses the geometric fallback.
func New(cfg Config, estimator *orientation.Estimator, detector detection.Detector, hits rangefind.HitTester) *Pipeline {
	p := &Pipeline{
		estimator: estimator,
		sched:     NewScheduler(cfg),
		detector:  detector,
		hits:      hits,
		now:       time.Now,
		config:    cfg,
		gate:      NewTiltGate(cfg),
		zone:      NewZone(cfg),
		resolver:  resolverFromConfig(cfg),
	}
	sample := estimator.Sample()
	p.lastSample = sample
	p.gateState = p.gate.Evaluate(sample.PitchDegrees, sample.SourceAvailable)
	return p
}

func resolverFromConfig(cfg Config) rangefind.Resolver {
	return rangefind.Resolver{
		FocalLengthPx:  cfg.FocalLengthPx,
		MaxHitDistance: cfg.MaxHitDistance,
		HitTestEnabled: cfg.HitTestEnabled,
		Widths:         rangefind.DefaultWidths(),
	}
}

// SetResultsHandler sets the callback receiving each cycle's final records.
func (p *Pipeline) SetResultsHandler(fn func(Results)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onResults = fn
}

// SetStateUpdater sets the dashboard state updater.
func (p *Pipeline) SetStateUpdater(state StateUpdater) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = state
}

// SetWidthTable overrides the assumed real-world width table used by the
// geometric distance fallback.
func (p *Pipeline) SetWidthTable(t rangefind.WidthTable) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resolver.Widths = t
}

// HandleAccelerometer feeds a raw accelerometer sample into the pipeline.
func (p *Pipeline) HandleAccelerometer(x, y, z float64, timestampMs int64) {
	p.estimator.UpdateAccelerometer(x, y, z, timestampMs)
	p.refreshGate()
}

// HandleMagnetometer feeds a raw magnetometer sample into the pipeline.
func (p *Pipeline) HandleMagnetometer(x, y, z float64, timestampMs int64) {
	p.estimator.UpdateMagnetometer(x, y, z, timestampMs)
	p.refreshGate()
}

// refreshGate re-derives the gate state from the latest orientation sample.
// A gate change mid-flight only affects the next scheduling decision.
func (p *Pipeline) refreshGate() {
	sample := p.estimator.Sample()

	p.mu.Lock()
	prev := p.gateState
	p.lastSample = sample
	p.gateState = p.gate.Evaluate(sample.PitchDegrees, sample.SourceAvailable)
	state := p.gateState
	updater := p.state
	p.mu.Unlock()

	if state != prev {
		log.Debug("gate transition", "state", state.String(), "pitch", sample.PitchDegrees)
	}
	if updater != nil {
		updater.UpdateGate(sample, state)
	}
}

// HandleFrame offers a camera frame to the pipeline. It returns true when a
// detection cycle was dispatched. Frames arrive at the camera's cadence;
// almost all of them are dropped here by the gate or the scheduler.
func (p *Pipeline) HandleFrame(frame detection.Frame) bool {
	p.mu.RLock()
	state := p.gateState
	gen := p.generation
	p.mu.RUnlock()

	if !p.sched.TryFire(p.now(), state) {
		return false
	}

	go p.runCycle(gen, frame)
	return true
}

// runCycle executes one detection cycle on the worker goroutine. The
// scheduler is released whatever happens; a failed backend call costs one
// empty cycle, never a stuck pipeline.
func (p *Pipeline) runCycle(gen uint64, frame detection.Frame) {
	defer p.sched.Done()

	started := p.now()

	dets, err := p.detector.Detect(frame)
	if err != nil {
		// Backend failures are "no result", not exceptions.
		log.Warn("detection backend failed", "error", err)
		dets = nil
	}

	p.mu.RLock()
	zone := p.zone
	resolver := p.resolver
	hits := p.hits
	p.mu.RUnlock()

	kept := zone.Filter(dets, float64(frame.Width), float64(frame.Height))
	resolved := resolver.ResolveAll(kept, hits)

	p.deliver(gen, Results{
		CycleID:    uuid.NewString(),
		Timestamp:  started,
		Detections: resolved,
	})
}

// deliver hands a cycle's results to the consumer unless the owning session
// was torn down while the detection was in flight.
func (p *Pipeline) deliver(gen uint64, res Results) {
	p.mu.Lock()
	if gen != p.generation {
		p.mu.Unlock()
		log.Debug("discarding stale detection results", "cycle_id", res.CycleID)
		return
	}
	p.last = res
	p.cycleCount++
	onResults := p.onResults
	updater := p.state
	p.mu.Unlock()

	log.Info("detection cycle complete", "cycle_id", res.CycleID, "detections", len(res.Detections))

	if onResults != nil {
		onResults(res)
	}
	if updater != nil {
		updater.PublishResults(res)
	}
}

// Reset tears down the current session. Any in-flight detection completes
// normally but its results are discarded on arrival.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	p.generation++
	p.last = Results{}
	p.mu.Unlock()
	log.Info("pipeline session reset")
}

// GateState returns the current gate decision.
func (p *Pipeline) GateState() GateState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.gateState
}

// LastResults returns the most recent delivered cycle.
func (p *Pipeline) LastResults() Results {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}

// State returns a snapshot for the dashboard.
func (p *Pipeline) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return State{
		PitchDegrees:    p.lastSample.PitchDegrees,
		SourceAvailable: p.lastSample.SourceAvailable,
		Gate:            p.gateState.String(),
		Scheduler:       p.sched.Snapshot(),
		CycleCount:      p.cycleCount,
	}
}
