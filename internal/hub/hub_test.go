package hub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/okulov/casetrack/internal/model"
)

// startHub starts a hub with an httptest websocket endpoint and returns
// the hub plus the ws:// URL to dial.
func startHub(t *testing.T) (*Hub, string) {
	t.Helper()

	h := New(nil)
	if err := h.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		h.Stop(ctx)
	})

	server := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	t.Cleanup(server.Close)

	return h, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	return f
}

func TestPublish_Broadcast(t *testing.T) {
	h, url := startHub(t)
	conn := dial(t, url)

	// Replay: a fresh client immediately receives the retained stats.
	if f := readFrame(t, conn); f.Type != "stats" {
		t.Fatalf("replay frame type = %q, want stats", f.Type)
	}

	id := uuid.New()
	h.Publish(model.Event{Kind: model.EventStats, Stats: model.Stats{
		DropID: id, TotalSpent: 17.5, TotalDropValue: 1500, Profit: 1482.5, CasesOpened: 1,
	}})
	h.Publish(model.Event{Kind: model.EventDrop, Drop: model.Drop{
		ID: id, Name: "AK-47 | Redline", PriceRaw: "1500,00 pуб.", Price: 1500,
	}})

	if f := readFrame(t, conn); f.Type != "stats" {
		t.Errorf("frame 1 type = %q, want stats", f.Type)
	}

	f := readFrame(t, conn)
	if f.Type != "drop" {
		t.Errorf("frame 2 type = %q, want drop", f.Type)
	}
	var drop model.Drop
	raw, _ := json.Marshal(f.Data)
	json.Unmarshal(raw, &drop)
	if drop.Name != "AK-47 | Redline" || drop.Price != 1500 {
		t.Errorf("drop = %+v, want AK-47 | Redline at 1500", drop)
	}

	// First drop is also the new best.
	if f := readFrame(t, conn); f.Type != "best_drop" {
		t.Errorf("frame 3 type = %q, want best_drop", f.Type)
	}
}

func TestOverview_TracksBestDrop(t *testing.T) {
	h, _ := startHub(t)

	h.Publish(model.Event{Kind: model.EventDrop, Drop: model.Drop{Name: "first", Price: 10}})
	h.Publish(model.Event{Kind: model.EventDrop, Drop: model.Drop{Name: "big", Price: 500}})
	h.Publish(model.Event{Kind: model.EventDrop, Drop: model.Drop{Name: "small", Price: 1}})

	ov := h.Overview()
	if ov.LastDrop == nil || ov.LastDrop.Name != "small" {
		t.Errorf("LastDrop = %+v, want small", ov.LastDrop)
	}
	if ov.BestDrop == nil || ov.BestDrop.Name != "big" {
		t.Errorf("BestDrop = %+v, want big", ov.BestDrop)
	}
}

func TestReplay_LateJoiner(t *testing.T) {
	h, url := startHub(t)

	h.Publish(model.Event{Kind: model.EventStats, Stats: model.Stats{CasesOpened: 3}})
	h.Publish(model.Event{Kind: model.EventDrop, Drop: model.Drop{Name: "late-state", Price: 42}})

	conn := dial(t, url)

	// Replay order: stats, best_drop, drop.
	f := readFrame(t, conn)
	if f.Type != "stats" {
		t.Fatalf("replay 1 = %q, want stats", f.Type)
	}
	var snap model.Stats
	raw, _ := json.Marshal(f.Data)
	json.Unmarshal(raw, &snap)
	if snap.CasesOpened != 3 {
		t.Errorf("replayed CasesOpened = %d, want 3", snap.CasesOpened)
	}

	if f := readFrame(t, conn); f.Type != "best_drop" {
		t.Errorf("replay 2 = %q, want best_drop", f.Type)
	}
	if f := readFrame(t, conn); f.Type != "drop" {
		t.Errorf("replay 3 = %q, want drop", f.Type)
	}
}

func TestStop_DisconnectsClients(t *testing.T) {
	h := New(nil)
	if err := h.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	defer server.Close()
	conn := dial(t, "ws"+strings.TrimPrefix(server.URL, "http"))

	// Consume the replay frame.
	readFrame(t, conn)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := h.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return // connection closed, as expected
		}
	}
}
