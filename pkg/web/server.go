// Package web provides a live dashboard for the perception pipeline: REST
// endpoints for state and tuning plus websocket feeds of gate transitions
// and detection cycles. This is the pipeline's display consumer; frames
// themselves are never rendered here.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/depthgate/go-depthgate/internal/log"
	"github.com/depthgate/go-depthgate/pkg/hub"
	"github.com/depthgate/go-depthgate/pkg/orientation"
	"github.com/depthgate/go-depthgate/pkg/perception"
	"github.com/depthgate/go-depthgate/pkg/rangefind"
)

// Server is the dashboard server. It implements perception.StateUpdater so
// the pipeline can push gate changes and cycle results as they happen.
type Server struct {
	app      *fiber.App
	port     string
	pipeline *perception.Pipeline

	// Hubs for websocket broadcast
	statusHub  *hub.Hub
	resultsHub *hub.Hub
}

// GateEvent is pushed on every orientation update.
type GateEvent struct {
	PitchDegrees    float64 `json:"pitch_degrees"`
	TimestampMs     int64   `json:"timestamp_ms"`
	SourceAvailable bool    `json:"source_available"`
	Gate            string  `json:"gate"`
}

// Record is one displayed detection.
type Record struct {
	Label          string         `json:"label"`
	Confidence     float64        `json:"confidence"`
	Box            map[string]any `json:"box"`
	DistanceMeters float64        `json:"distance_meters"`
	Category       string         `json:"category"`
}

// CycleEvent is pushed once per completed detection cycle.
type CycleEvent struct {
	CycleID string   `json:"cycle_id"`
	Records []Record `json:"records"`
}

// NewServer creates the dashboard server for a pipeline.
func NewServer(port string, pipeline *perception.Pipeline) *Server {
	s := &Server{
		port:       port,
		pipeline:   pipeline,
		statusHub:  hub.New("status"),
		resultsHub: hub.New("detections"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "depthgate dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/detections", s.handleDetections)
	api.Get("/tuning", s.handleGetTuning)
	api.Post("/tuning", s.handleSetTuning)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/status", websocket.New(s.handleStatusWS))
	app.Get("/ws/detections", websocket.New(s.handleDetectionsWS))

	s.app = app
	return s
}

// Start starts the dashboard server.
func (s *Server) Start() error {
	log.Info("dashboard listening", "port", s.port)

	go s.statusHub.Run()
	go s.resultsHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the dashboard server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("dashboard server error", "error", err)
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// UpdateGate implements perception.StateUpdater.
func (s *Server) UpdateGate(sample orientation.Sample, state perception.GateState) {
	if err := s.statusHub.BroadcastJSON(GateEvent{
		PitchDegrees:    sample.PitchDegrees,
		TimestampMs:     sample.TimestampMs,
		SourceAvailable: sample.SourceAvailable,
		Gate:            state.String(),
	}); err != nil {
		log.Warn("gate event broadcast failed", "error", err)
	}
}

// PublishResults implements perception.StateUpdater.
func (s *Server) PublishResults(res perception.Results) {
	if err := s.resultsHub.BroadcastJSON(toCycleEvent(res)); err != nil {
		log.Warn("cycle broadcast failed", "error", err)
	}
}

func toCycleEvent(res perception.Results) CycleEvent {
	records := make([]Record, 0, len(res.Detections))
	for _, det := range res.Detections {
		records = append(records, Record{
			Label:      det.Label,
			Confidence: det.Confidence,
			Box: map[string]any{
				"x": det.Box.X, "y": det.Box.Y,
				"w": det.Box.W, "h": det.Box.H,
			},
			DistanceMeters: det.DistanceMeters,
			Category:       rangefind.DistanceCategory(det.DistanceMeters),
		})
	}
	return CycleEvent{CycleID: res.CycleID, Records: records}
}
