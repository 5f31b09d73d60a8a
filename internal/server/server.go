package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sceneforge/internal/gen"
	"sceneforge/internal/history"
	"sceneforge/internal/store"
)

// Server exposes scene generation over HTTP and pushes progress events to
// websocket clients.
type Server struct {
	engine  *gin.Engine
	gen     *gen.Generator
	store   *store.Store
	hub     *Hub
	history *history.Log
	timeout time.Duration
}

// Config carries the server's collaborators. Zero Timeout defaults to one
// minute per generation.
type Config struct {
	Generator *gen.Generator
	Store     *store.Store
	History   *history.Log
	Timeout   time.Duration
}

// New builds a Server with its routes registered and hub running.
func New(cfg Config) *Server {
	if cfg.Store == nil {
		cfg.Store = store.New()
	}
	if cfg.History == nil {
		cfg.History = history.New("")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = time.Minute
	}
	s := &Server{
		engine:  gin.Default(),
		gen:     cfg.Generator,
		store:   cfg.Store,
		hub:     NewHub(),
		history: cfg.History,
		timeout: cfg.Timeout,
	}
	s.routes()
	return s
}

// Handler returns the root http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Close disconnects websocket clients and stops the hub.
func (s *Server) Close() {
	s.hub.Close()
}
