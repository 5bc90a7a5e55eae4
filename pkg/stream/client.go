package stream

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/depthgate/go-depthgate/internal/log"
	"github.com/depthgate/go-depthgate/pkg/perception/detection"
)

const (
	handshakeTimeout = 10 * time.Second
	initialBackoff   = time.Second
	maxBackoff       = 30 * time.Second
)

// Handlers receives the demultiplexed device feed. Nil handlers are skipped.
type Handlers struct {
	OnAccel func(x, y, z float64, timestampMs int64)
	OnMag   func(x, y, z float64, timestampMs int64)
	OnFrame func(frame detection.Frame)
}

// Client connects to the device stream endpoint and dispatches messages to
// the pipeline. It reconnects with capped exponential backoff until its
// context is cancelled.
type Client struct {
	url       string
	sessionID string
	handlers  Handlers

	mu     sync.Mutex
	conn   *websocket.Conn
	width  int
	height int
}

// NewClient creates a stream client for the given websocket URL.
func NewClient(url string, handlers Handlers) *Client {
	return &Client{
		url:       url,
		sessionID: uuid.NewString(),
		handlers:  handlers,
	}
}

// SessionID returns the client's session identifier.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Run connects and reads until the context is cancelled. Connection loss is
// not fatal; the client backs off and redials.
func (c *Client) Run(ctx context.Context) error {
	backoff := initialBackoff

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := c.connect(ctx); err != nil {
			log.Warn("device stream connect failed", "url", c.url, "error", err, "retry_in", backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}

		log.Info("device stream connected", "url", c.url, "session", c.sessionID)
		backoff = initialBackoff

		c.readLoop(ctx)
	}
}

func (c *Client) connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.conn = conn
	// A new connection advertises its own format.
	c.width, c.height = 0, 0
	c.mu.Unlock()
	return nil
}

// readLoop reads until the connection drops or the context is cancelled.
func (c *Client) readLoop(ctx context.Context) {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				log.Warn("device stream read failed", "error", err)
			}
			return
		}

		switch msgType {
		case websocket.TextMessage:
			c.handleEnvelope(conn, data)
		case websocket.BinaryMessage:
			c.handleFrame(data)
		}
	}
}

// handleEnvelope dispatches a JSON envelope message.
func (c *Client) handleEnvelope(conn *websocket.Conn, data []byte) {
	msg, err := ParseMessage(data)
	if err != nil {
		log.Debug("ignoring malformed stream message", "error", err)
		return
	}

	switch msg.Type {
	case TypeAccel:
		var v VectorData
		if err := msg.ParseData(&v); err != nil {
			return
		}
		if c.handlers.OnAccel != nil {
			c.handlers.OnAccel(v.X, v.Y, v.Z, msg.Timestamp)
		}

	case TypeMag:
		var v VectorData
		if err := msg.ParseData(&v); err != nil {
			return
		}
		if c.handlers.OnMag != nil {
			c.handlers.OnMag(v.X, v.Y, v.Z, msg.Timestamp)
		}

	case TypeFormat:
		var f FormatData
		if err := msg.ParseData(&f); err != nil {
			return
		}
		c.mu.Lock()
		c.width, c.height = f.Width, f.Height
		c.mu.Unlock()
		log.Info("device frame format", "width", f.Width, "height", f.Height)

	case TypePing:
		if pong, err := NewMessage(TypePong, nil); err == nil {
			if data, err := pong.Bytes(); err == nil {
				conn.WriteMessage(websocket.TextMessage, data)
			}
		}
	}
}

// handleFrame dispatches a binary JPEG frame. Frames arriving before a
// format message have unknown dimensions and are dropped.
func (c *Client) handleFrame(data []byte) {
	c.mu.Lock()
	w, h := c.width, c.height
	c.mu.Unlock()

	if w <= 0 || h <= 0 {
		log.Debug("dropping frame received before format message")
		return
	}
	if c.handlers.OnFrame != nil {
		c.handlers.OnFrame(detection.Frame{Data: data, Width: w, Height: h})
	}
}
