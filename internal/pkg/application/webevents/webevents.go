package webevents

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"sync"

	gosse "github.com/alexandrevicenzi/go-sse"
	"github.com/diwise/iot-telemetry-alerts/pkg/types"
)

// AllTopics is the channel for subscribers that did not ask for a specific topic.
const AllTopics = "alerts"

const eventAlertCreated = "alertCreated"

var ErrShutdown = errors.New("event server is shut down")

type WebEvents interface {
	Server() *gosse.Server
	Shutdown()
	Broadcast(ctx context.Context, topics []string, event types.AlertEvent) error
}

type webEvents struct {
	mu     sync.RWMutex
	closed bool
	s      *gosse.Server
}

func New() WebEvents {
	return &webEvents{
		s: gosse.NewServer(&gosse.Options{
			RetryInterval:   5000,
			ChannelNameFunc: channelName,
		}),
	}
}

func channelName(r *http.Request) string {
	if topic := r.URL.Query().Get("topic"); topic != "" {
		return topic
	}
	return AllTopics
}

func (we *webEvents) Server() *gosse.Server {
	return we.s
}

func (we *webEvents) Shutdown() {
	we.mu.Lock()
	defer we.mu.Unlock()

	if !we.closed {
		we.closed = true
		we.s.Shutdown()
	}
}

// Broadcast pushes the event to every subscribed topic channel and to the catch-all channel.
func (we *webEvents) Broadcast(ctx context.Context, topics []string, event types.AlertEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b, err := json.Marshal(event)
	if err != nil {
		return err
	}

	data := string(b)

	we.mu.RLock()
	defer we.mu.RUnlock()

	if we.closed {
		return ErrShutdown
	}

	for _, t := range slices.Concat(topics, []string{AllTopics}) {
		if we.s.HasChannel(t) {
			we.s.SendMessage(t, gosse.NewMessage(event.ID, data, eventAlertCreated))
		}
	}

	return nil
}
