package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/depthgate/go-depthgate/pkg/hub"
	"github.com/depthgate/go-depthgate/pkg/perception"
)

// handleStatus returns the current pipeline snapshot plus dashboard
// watcher counts.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"pipeline": s.pipeline.State(),
		"watchers": fiber.Map{
			"status":     s.statusHub.ClientCount(),
			"detections": s.resultsHub.ClientCount(),
		},
	})
}

// handleDetections returns the most recent completed cycle.
func (s *Server) handleDetections(c *fiber.Ctx) error {
	return c.JSON(toCycleEvent(s.pipeline.LastResults()))
}

// handleGetTuning returns the current tuning parameters.
func (s *Server) handleGetTuning(c *fiber.Ctx) error {
	return c.JSON(s.pipeline.GetTuningParams())
}

// handleSetTuning applies tuning updates at runtime.
func (s *Server) handleSetTuning(c *fiber.Ctx) error {
	var params perception.TuningParams
	if err := c.BodyParser(&params); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid tuning payload")
	}
	s.pipeline.SetTuningParams(params)
	return c.JSON(s.pipeline.GetTuningParams())
}

// handleStatusWS streams gate events to a dashboard client.
func (s *Server) handleStatusWS(conn *websocket.Conn) {
	client := hub.NewClient(s.statusHub, conn)
	client.Run()
}

// handleDetectionsWS streams detection cycles to a dashboard client.
func (s *Server) handleDetectionsWS(conn *websocket.Conn) {
	client := hub.NewClient(s.resultsHub, conn)
	client.Run()
}
