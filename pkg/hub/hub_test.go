package hub

import (
	"encoding/json"
	"testing"
	"time"
)

// newTestClient registers a client with a given send buffer size without
// a real websocket connection.
func newTestClient(h *Hub, buf int) *Client {
	c := &Client{hub: h, send: make(chan Message, buf)}
	h.register <- c
	return c
}

func waitForClients(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if h.ClientCount() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("client count = %d, want %d", h.ClientCount(), want)
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case msg := <-c.send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
		return Message{}
	}
}

func TestNew(t *testing.T) {
	h := New("test")

	if h == nil {
		t.Fatal("New returned nil")
	}
	if h.ClientCount() != 0 {
		t.Error("ClientCount should be 0 initially")
	}
}

func TestBroadcastFanOut(t *testing.T) {
	h := New("test")
	go h.Run()

	c1 := newTestClient(h, 4)
	c2 := newTestClient(h, 4)
	waitForClients(t, h, 2)

	h.Broadcast(NewBinaryMessage([]byte{0x01, 0x02}))

	for _, c := range []*Client{c1, c2} {
		msg := receive(t, c)
		if msg.Type != BinaryMessage {
			t.Errorf("message type = %v, want BinaryMessage", msg.Type)
		}
		if len(msg.Data) != 2 {
			t.Errorf("payload length = %d, want 2", len(msg.Data))
		}
	}
}

func TestBroadcastJSON(t *testing.T) {
	h := New("test")
	go h.Run()

	c := newTestClient(h, 4)
	waitForClients(t, h, 1)

	if err := h.BroadcastJSON(map[string]int{"count": 3}); err != nil {
		t.Fatalf("BroadcastJSON returned error: %v", err)
	}

	msg := receive(t, c)
	if msg.Type != JSONMessage {
		t.Errorf("message type = %v, want JSONMessage", msg.Type)
	}

	var decoded map[string]int
	if err := json.Unmarshal(msg.Data, &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if decoded["count"] != 3 {
		t.Errorf("decoded count = %d, want 3", decoded["count"])
	}
}

func TestBroadcastJSONEncodeError(t *testing.T) {
	h := New("test")

	if err := h.BroadcastJSON(make(chan int)); err == nil {
		t.Error("BroadcastJSON should return an error for unencodable values")
	}
}

func TestSlowClientDropped(t *testing.T) {
	h := New("test")
	go h.Run()

	slow := newTestClient(h, 1)
	fast := newTestClient(h, 4)
	waitForClients(t, h, 2)

	// The slow client never drains its buffer, so the second broadcast
	// finds it full and evicts it.
	h.Broadcast(NewJSONMessage([]byte(`"one"`)))
	h.Broadcast(NewJSONMessage([]byte(`"two"`)))

	waitForClients(t, h, 1)

	receive(t, fast)
	receive(t, fast)

	// The evicted client keeps its buffered message, then sees the
	// channel closed.
	receive(t, slow)
	select {
	case _, ok := <-slow.send:
		if ok {
			t.Error("slow client received a message after eviction")
		}
	case <-time.After(time.Second):
		t.Fatal("slow client channel was not closed")
	}
}

func TestUnregister(t *testing.T) {
	h := New("test")
	go h.Run()

	c := newTestClient(h, 4)
	waitForClients(t, h, 1)

	h.unregister <- c
	waitForClients(t, h, 0)

	select {
	case _, ok := <-c.send:
		if ok {
			t.Error("unregistered client received a message")
		}
	case <-time.After(time.Second):
		t.Fatal("unregistered client channel was not closed")
	}
}
