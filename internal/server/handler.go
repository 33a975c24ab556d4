package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/soar/padcam/controls"
	"github.com/soar/padcam/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local use
	},
}

func handleWebSocket(log *zap.Logger, h *hub.Hub, b *hub.Broadcaster, params chan<- controls.Params) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		client := hub.NewClient(h, conn)

		// Queue the current state before any broadcast can reach the client
		b.SendInitialState(client)
		if !h.Register(client) {
			conn.Close()
			return
		}

		go client.WritePump()
		go client.ReadPump(params)
	}
}
