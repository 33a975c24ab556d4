package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/soar/padcam/events"
	"github.com/soar/padcam/gamepad"
)

const (
	fullSyncInterval = 5 * time.Second
	deltaCountSync   = 100
)

// Broadcaster listens for gamepad state changes and channel events and
// broadcasts them to the hub.
type Broadcaster struct {
	hub     *Hub
	log     *zap.Logger
	changes <-chan gamepad.State
	events  <-chan events.Event

	mu        sync.Mutex
	lastState gamepad.State
	seq       int64
}

func NewBroadcaster(h *Hub, changes <-chan gamepad.State, evs <-chan events.Event) *Broadcaster {
	return &Broadcaster{
		hub:     h,
		log:     h.log.With(zap.String("component", "broadcaster")),
		changes: changes,
		events:  evs,
	}
}

// Run starts the broadcaster loop until ctx is done or changes is closed.
// Should be run in a goroutine.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(fullSyncInterval)
	defer ticker.Stop()

	var deltaCount int64

	for {
		select {
		case <-ctx.Done():
			return

		case state, ok := <-b.changes:
			if !ok {
				return
			}

			b.mu.Lock()
			delta := gamepad.ComputeDelta(b.lastState, state)
			b.lastState = state
			if delta.IsEmpty() {
				b.mu.Unlock()
				continue
			}

			b.seq++
			deltaCount++

			// Send full sync periodically
			var msg *WSMessage
			if deltaCount >= deltaCountSync {
				msg = NewFullMessage(b.seq, &state)
				deltaCount = 0
			} else {
				msg = NewDeltaMessage(b.seq, delta)
			}
			b.mu.Unlock()

			b.broadcast(msg)

		case ev := <-b.events:
			b.mu.Lock()
			b.seq++
			msg := NewEventMessage(b.seq, ev)
			b.mu.Unlock()

			b.broadcast(msg)

		case <-ticker.C:
			b.mu.Lock()
			if !b.lastState.Connected {
				b.mu.Unlock()
				continue
			}
			b.seq++
			state := b.lastState
			msg := NewFullMessage(b.seq, &state)
			b.mu.Unlock()

			b.broadcast(msg)
		}
	}
}

// SendInitialState queues the current full state for a new client. Call it
// before the client is registered.
func (b *Broadcaster) SendInitialState(c *Client) {
	b.mu.Lock()
	b.seq++
	state := b.lastState
	msg := NewFullMessage(b.seq, &state)
	b.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		b.log.Error("marshal initial state", zap.Error(err))
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (b *Broadcaster) broadcast(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		b.log.Error("marshal message", zap.String("type", msg.Type), zap.Error(err))
		return
	}
	b.hub.Broadcast(data)
}
