// Package server serves the viewer page and its websocket feed.
package server

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/soar/padcam/controls"
	"github.com/soar/padcam/internal/hub"
)

type Server struct {
	log         *zap.Logger
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	params      chan<- controls.Params
	addr        string
	httpServer  *http.Server
}

// New creates a server. Mapping params pushed by viewers are sent to params.
func New(log *zap.Logger, h *hub.Hub, b *hub.Broadcaster, params chan<- controls.Params, addr string) *Server {
	return &Server{
		log:         log.With(zap.String("component", "server")),
		hub:         h,
		broadcaster: b,
		params:      params,
		addr:        addr,
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() (http.Handler, error) {
	page, err := viewerPage()
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handleWebSocket(s.log, s.hub, s.broadcaster, s.params))
	mux.Handle("/", serveViewer(page))
	return mux, nil
}

func (s *Server) ListenAndServe() error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: handler,
	}

	s.log.Info("HTTP server listening", zap.String("addr", s.addr))
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		s.log.Info("shutting down HTTP server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
