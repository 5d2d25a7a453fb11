package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/okulov/casetrack/internal/model"
)

// Frame is one message pushed to overlay clients.
type Frame struct {
	Type string `json:"type"` // "stats", "drop", or "best_drop"
	Data any    `json:"data"`
}

// Overview is the hub's retained view of the run, served to HTTP
// consumers and replayed to overlay clients on connect.
type Overview struct {
	Stats    model.Stats `json:"stats"`
	LastDrop *model.Drop `json:"last_drop,omitempty"`
	BestDrop *model.Drop `json:"best_drop,omitempty"`
	Clients  int         `json:"clients"`
}

// Hub broadcasts tracker events to connected overlay clients. It retains
// the latest stats plus the last and best drops so clients attaching
// mid-run render immediately.
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan []byte

	mu       sync.RWMutex
	stats    model.Stats
	lastDrop *model.Drop
	bestDrop *model.Drop
	nClients int

	cancel context.CancelFunc
	done   chan struct{}
	wg     sync.WaitGroup
}

// New creates a Hub.
func New(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			// The overlay runs on a different origin than the tracker.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
	}
}

// Start begins the hub loop.
func (h *Hub) Start(ctx context.Context) error {
	ctx, h.cancel = context.WithCancel(ctx)

	h.wg.Add(1)
	go h.run(ctx)

	h.logger.Info("overlay hub started")
	return nil
}

// Stop disconnects all clients and shuts the hub down.
func (h *Hub) Stop(ctx context.Context) error {
	if h.cancel != nil {
		h.cancel()
	}

	stopped := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(stopped)
	}()

	select {
	case <-stopped:
		h.logger.Info("overlay hub stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Publish updates the retained state and broadcasts the event to all
// connected clients. Never blocks the caller: the broadcast channel is
// buffered and overflow drops the frame for live clients (they resync
// from retained state on reconnect).
func (h *Hub) Publish(ev model.Event) {
	switch ev.Kind {
	case model.EventStats:
		h.mu.Lock()
		h.stats = ev.Stats
		h.mu.Unlock()
		h.send(Frame{Type: "stats", Data: ev.Stats})

	case model.EventDrop:
		drop := ev.Drop
		h.mu.Lock()
		h.lastDrop = &drop
		newBest := h.bestDrop == nil || drop.Price > h.bestDrop.Price
		if newBest {
			h.bestDrop = &drop
		}
		h.mu.Unlock()

		h.send(Frame{Type: "drop", Data: drop})
		if newBest {
			h.send(Frame{Type: "best_drop", Data: drop})
		}
	}
}

// Overview returns the retained run state.
func (h *Hub) Overview() Overview {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return Overview{
		Stats:    h.stats,
		LastDrop: h.lastDrop,
		BestDrop: h.bestDrop,
		Clients:  h.nClients,
	}
}

// ServeWS upgrades an HTTP request to an overlay websocket connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, 256)}

	select {
	case h.register <- c:
		go c.writePump()
		go c.readPump()
	case <-h.done:
		conn.Close()
	}
}

func (h *Hub) run(ctx context.Context) {
	defer h.wg.Done()
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
			}
			clear(h.clients)
			h.setClientCount(0)
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.setClientCount(len(h.clients))
			h.replay(c)
			h.logger.Debug("overlay client connected", "clients", len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.setClientCount(len(h.clients))
				h.logger.Debug("overlay client disconnected", "clients", len(h.clients))
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow client: drop it rather than stall the hub.
					delete(h.clients, c)
					close(c.send)
					h.setClientCount(len(h.clients))
				}
			}
		}
	}
}

// replay queues the retained state to a freshly connected client.
func (h *Hub) replay(c *client) {
	h.mu.RLock()
	frames := []Frame{{Type: "stats", Data: h.stats}}
	if h.bestDrop != nil {
		frames = append(frames, Frame{Type: "best_drop", Data: *h.bestDrop})
	}
	if h.lastDrop != nil {
		frames = append(frames, Frame{Type: "drop", Data: *h.lastDrop})
	}
	h.mu.RUnlock()

	for _, f := range frames {
		if data, err := json.Marshal(f); err == nil {
			select {
			case c.send <- data:
			default:
			}
		}
	}
}

func (h *Hub) send(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		h.logger.Warn("marshal frame failed", "type", f.Type, "error", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn("broadcast buffer full, dropping frame", "type", f.Type)
	}
}

func (h *Hub) setClientCount(n int) {
	h.mu.Lock()
	h.nClients = n
	h.mu.Unlock()
}
