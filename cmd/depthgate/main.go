// depthgate - perception gating and distance fusion daemon.
//
// Ingests a handheld device's sensor/frame stream, gates object detection on
// device tilt and cadence, resolves detection distances, and serves the
// results on a live dashboard.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/depthgate/go-depthgate/internal/config"
	"github.com/depthgate/go-depthgate/internal/log"
	"github.com/depthgate/go-depthgate/pkg/orientation"
	"github.com/depthgate/go-depthgate/pkg/perception"
	"github.com/depthgate/go-depthgate/pkg/perception/detection"
	"github.com/depthgate/go-depthgate/pkg/stream"
	"github.com/depthgate/go-depthgate/pkg/web"
)

func main() {
	config.LoadDotEnv()

	var (
		mock       = flag.Bool("mock", false, "Use the mock detector (no model required)")
		modelPath  = flag.String("model", "", "Path to the ONNX detection model (overrides MODEL_PATH)")
		port       = flag.String("port", "", "Dashboard port (overrides DEPTHGATE_PORT)")
		deviceAddr = flag.String("device", "", "Device stream URL (overrides DEVICE_ADDR)")
		preset     = flag.String("preset", "default", "Pipeline preset: default, strict, relaxed")
		logLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error")
		noAccel    = flag.Bool("no-accel", false, "Device has no accelerometer")
		noMag      = flag.Bool("no-mag", false, "Device has no magnetometer")
	)
	flag.Parse()

	lvl := *logLevel
	if lvl == "" {
		lvl = config.LogLevel()
	}
	log.Init(lvl)

	cfg := pipelineConfig(*preset)

	detector, err := buildDetector(*mock, *modelPath, cfg)
	if err != nil {
		log.Error("detector init failed", "error", err)
		os.Exit(1)
	}
	defer detector.Close()

	estimator := orientation.NewEstimator(!*noAccel, !*noMag)

	// No AR tracking subsystem is reachable from the daemon, so distance
	// resolution always uses the geometric fallback here. Embedders with a
	// depth backend pass their own HitTester.
	pipeline := perception.New(cfg, estimator, detector, nil)

	httpPort := *port
	if httpPort == "" {
		httpPort = config.HTTPPort()
	}
	server := web.NewServer(httpPort, pipeline)
	pipeline.SetStateUpdater(server)
	server.StartAsync()

	addr := *deviceAddr
	if addr == "" {
		addr = config.DeviceAddr()
	}
	client := stream.NewClient(addr, stream.Handlers{
		OnAccel: pipeline.HandleAccelerometer,
		OnMag:   pipeline.HandleMagnetometer,
		OnFrame: func(frame detection.Frame) {
			pipeline.HandleFrame(frame)
		},
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := client.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("device stream terminated", "error", err)
	}

	// Discard any in-flight cycle before the detector goes away.
	pipeline.Reset()
	server.Shutdown()
}

// pipelineConfig selects a configuration preset.
func pipelineConfig(preset string) perception.Config {
	switch preset {
	case "strict":
		return perception.StrictConfig()
	case "relaxed":
		return perception.RelaxedConfig()
	default:
		return perception.DefaultConfig()
	}
}

// buildDetector creates the detection backend.
func buildDetector(mock bool, modelPath string, cfg perception.Config) (detection.Detector, error) {
	if mock {
		log.Info("using mock detector")
		return detection.NewMock(), nil
	}

	dcfg := detection.DefaultConfig()
	dcfg.ConfidenceThresh = cfg.ConfidenceThresh
	dcfg.MaxResults = cfg.MaxResults
	if modelPath != "" {
		dcfg.ModelPath = modelPath
	} else {
		dcfg.ModelPath = config.ModelPath()
	}
	return detection.NewYOLO(dcfg)
}
