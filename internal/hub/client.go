package hub

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/soar/padcam/controls"
)

// Client represents a connected WebSocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	log  *zap.Logger
}

// NewClient creates a new Client attached to the hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
		log:  hub.log.With(zap.Stringer("remote", conn.RemoteAddr())),
	}
}

// WritePump sends messages from the send channel to the WebSocket connection.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for msg := range c.send {
		err := c.conn.WriteMessage(websocket.TextMessage, msg)
		if err != nil {
			break
		}
	}
}

// ReadPump reads client commands until the connection closes. Accepted
// mapping params are handed to params without blocking; a full channel
// rejects the update.
func (c *Client) ReadPump(params chan<- controls.Params) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.log.Warn("invalid client message", zap.Error(err))
			continue
		}

		switch msg.Type {
		case TypeParams:
			c.reply(c.handleParams(msg.Params, params))
		default:
			c.log.Debug("unknown client message", zap.String("type", msg.Type))
		}
	}
}

func (c *Client) handleParams(p *controls.Params, params chan<- controls.Params) *WSMessage {
	if p == nil {
		return NewErrorMessage(errors.New("params message without params"))
	}
	if err := p.Validate(); err != nil {
		return NewErrorMessage(err)
	}

	select {
	case params <- *p:
	default:
		return NewErrorMessage(errors.New("params update pending, try again"))
	}

	c.log.Info("mapping params replaced by client")
	return NewParamsAppliedMessage(*p)
}

func (c *Client) reply(msg *WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("marshal reply", zap.Error(err))
		return
	}
	c.hub.SendTo(c, data)
}
