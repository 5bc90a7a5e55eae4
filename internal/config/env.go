// Package config provides configuration helpers for go-depthgate commands.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Defaults for the daemon.
const (
	DefaultHTTPPort   = "8090"
	DefaultDeviceAddr = "ws://localhost:8443/stream"
	DefaultModelPath  = "models/yolov8n.onnx"
)

// LoadDotEnv loads a .env file from the working directory if present.
// Missing files are not an error; explicit environment always wins.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// HTTPPort returns the dashboard port from DEPTHGATE_PORT or the default.
func HTTPPort() string {
	if p := os.Getenv("DEPTHGATE_PORT"); p != "" {
		return p
	}
	return DefaultHTTPPort
}

// DeviceAddr returns the device stream URL from DEVICE_ADDR or the default.
func DeviceAddr() string {
	if addr := os.Getenv("DEVICE_ADDR"); addr != "" {
		return addr
	}
	return DefaultDeviceAddr
}

// ModelPath returns the detector model path from MODEL_PATH or the default.
func ModelPath() string {
	if p := os.Getenv("MODEL_PATH"); p != "" {
		return p
	}
	return DefaultModelPath
}

// LogLevel returns the log level from LOG_LEVEL, defaulting to "info".
func LogLevel() string {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "info"
}
