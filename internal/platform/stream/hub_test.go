package stream

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type view struct {
	Frontier float64 `json:"frontier"`
}

func startServer(t *testing.T, h *Hub) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		if resp != nil {
			resp.Body.Close()
		}
	})
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read frame: %v", err)
	}
	var f Frame
	if err := json.Unmarshal(payload, &f); err != nil {
		t.Fatalf("invalid frame %q: %v", payload, err)
	}
	return f
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("clients = %d, expected %d", h.Clients(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubSendsLatestFrameOnJoin(t *testing.T) {
	h := NewHub("runner", nil)
	h.Publish(view{Frontier: 10})
	h.Publish(view{Frontier: 24})

	conn := dial(t, startServer(t, h))
	f := readFrame(t, conn)

	if f.Seq != 2 || f.Game != "runner" {
		t.Errorf("frame = %+v, expected seq 2 of runner", f)
	}
	world, ok := f.World.(map[string]any)
	if !ok || world["frontier"] != 24.0 {
		t.Errorf("frame world = %#v", f.World)
	}
}

func TestHubBroadcast(t *testing.T) {
	h := NewHub("runner_endless", nil)
	srv := startServer(t, h)
	a := dial(t, srv)
	b := dial(t, srv)
	waitClients(t, h, 2)

	h.Publish(view{Frontier: 3})

	for i, conn := range []*websocket.Conn{a, b} {
		if f := readFrame(t, conn); f.Seq != 1 {
			t.Errorf("client %d got seq %d, expected 1", i, f.Seq)
		}
	}
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	h := NewHub("runner", nil)
	conn := dial(t, startServer(t, h))
	waitClients(t, h, 1)

	conn.Close()
	waitClients(t, h, 0)
}

func TestHubDropsForSlowClients(t *testing.T) {
	h := NewHub("runner", nil)
	c := &client{send: make(chan []byte, 1)}
	h.clients[c] = struct{}{}

	h.Publish(view{Frontier: 1})
	h.Publish(view{Frontier: 2})
	h.Publish(view{Frontier: 3})

	if got := h.Dropped(); got != 2 {
		t.Errorf("Dropped() = %d, expected 2", got)
	}
	var f Frame
	if err := json.Unmarshal(<-c.send, &f); err != nil || f.Seq != 1 {
		t.Errorf("queued frame = %+v (%v), expected seq 1", f, err)
	}
}

func TestHubClose(t *testing.T) {
	h := NewHub("runner", nil)
	conn := dial(t, startServer(t, h))
	waitClients(t, h, 1)

	h.Close()
	h.Publish(view{Frontier: 1})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("expected normal closure, got %v", err)
	}
	if h.Clients() != 0 {
		t.Errorf("Clients() after Close = %d", h.Clients())
	}
}

func TestHubStatus(t *testing.T) {
	h := NewHub("runner", nil)
	h.Publish(view{})
	srv := startServer(t, h)

	resp, err := http.Get(srv.URL + "/status")
	if err != nil {
		t.Fatalf("GET /status failed: %v", err)
	}
	defer resp.Body.Close()

	var status struct {
		Game    string `json:"game"`
		Seq     uint64 `json:"seq"`
		Clients int    `json:"clients"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("invalid status body: %v", err)
	}
	if status.Game != "runner" || status.Seq != 1 || status.Clients != 0 {
		t.Errorf("status = %+v", status)
	}
}
