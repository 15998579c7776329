package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/diwise/iot-telemetry-alerts/internal/pkg/infrastructure/metrics"
	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/gorilla/websocket"
)

var ErrHubClosed = errors.New("websocket hub is closed")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type envelope struct {
	Type    string           `json:"type"`
	Topics  []string         `json:"topics"`
	Payload types.AlertEvent `json:"payload"`
}

type message struct {
	topics []string
	data   []byte
}

// Hub keeps the connected clients and fans alert messages out to the clients
// subscribed to any of a message's topics. All client bookkeeping happens in Run.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	count      atomic.Int32
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run(ctx context.Context) {
	log := logging.GetFromContext(ctx)

	defer func() {
		close(h.done)
		for c := range h.clients {
			delete(h.clients, c)
			close(c.send)
		}
		h.count.Store(0)
		metrics.WebsocketClients.Set(0)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.clients[c] = true
			h.count.Add(1)
			metrics.WebsocketClients.Inc()
			log.Debug("websocket client registered", "remote_addr", c.conn.RemoteAddr().String(), "topics", c.topics)

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.remove(c)
				log.Debug("websocket client unregistered", "remote_addr", c.conn.RemoteAddr().String())
			}

		case m := <-h.broadcast:
			for c := range h.clients {
				if !c.subscribes(m.topics) {
					continue
				}
				select {
				case c.send <- m.data:
				default:
					log.Warn("websocket client send buffer full, removing", "remote_addr", c.conn.RemoteAddr().String())
					h.remove(c)
				}
			}
		}
	}
}

func (h *Hub) remove(c *Client) {
	delete(h.clients, c)
	close(c.send)
	h.count.Add(-1)
	metrics.WebsocketClients.Dec()
}

func (h *Hub) Broadcast(ctx context.Context, topics []string, event types.AlertEvent) error {
	b, err := json.Marshal(envelope{Type: "alert", Topics: topics, Payload: event})
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- message{topics: topics, data: b}:
		return nil
	case <-h.done:
		return ErrHubClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ServeHTTP upgrades the request and subscribes the connection to the topics
// given as topic query parameters. Without topics the client receives everything.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logging.GetFromContext(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("websocket upgrade failed", "err", err.Error())
		return
	}

	c := newClient(h, conn, r.URL.Query()["topic"])

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

func (h *Hub) Clients() int {
	return int(h.count.Load())
}
