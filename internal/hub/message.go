package hub

import (
	"time"

	"github.com/soar/padcam/controls"
	"github.com/soar/padcam/events"
	"github.com/soar/padcam/gamepad"
)

// Server message types.
const (
	TypeFull          = "full"
	TypeDelta         = "delta"
	TypeEvent         = "event"
	TypeParamsApplied = "params_applied"
	TypeError         = "error"
)

// Client message types.
const (
	TypeParams = "params"
)

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type      string                `json:"type"`
	Seq       int64                 `json:"seq"`
	Timestamp int64                 `json:"timestamp"` // unix millis
	Event     *events.Event         `json:"event,omitempty"`
	Data      *gamepad.State        `json:"data,omitempty"`
	Changes   *gamepad.DeltaChanges `json:"changes,omitempty"`
	Params    *controls.Params      `json:"params,omitempty"`
	Error     string                `json:"error,omitempty"`
}

// NewFullMessage creates a "full" type message containing complete gamepad state.
func NewFullMessage(seq int64, state *gamepad.State) *WSMessage {
	return &WSMessage{
		Type:      TypeFull,
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Data:      state,
	}
}

// NewDeltaMessage creates a "delta" type message containing only changed fields.
func NewDeltaMessage(seq int64, changes *gamepad.DeltaChanges) *WSMessage {
	return &WSMessage{
		Type:      TypeDelta,
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Changes:   changes,
	}
}

// NewEventMessage creates an "event" type message for a channel transition.
func NewEventMessage(seq int64, ev events.Event) *WSMessage {
	return &WSMessage{
		Type:      TypeEvent,
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Event:     &ev,
	}
}

func NewParamsAppliedMessage(p controls.Params) *WSMessage {
	return &WSMessage{
		Type:      TypeParamsApplied,
		Timestamp: time.Now().UnixMilli(),
		Params:    &p,
	}
}

func NewErrorMessage(err error) *WSMessage {
	return &WSMessage{
		Type:      TypeError,
		Timestamp: time.Now().UnixMilli(),
		Error:     err.Error(),
	}
}

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type   string           `json:"type"`
	Params *controls.Params `json:"params,omitempty"`
}
