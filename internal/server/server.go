// Package server provides the HTTP API for the legal retrieval engine.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/omkar2816/Legal-RAG-System/internal/config"
	"github.com/omkar2816/Legal-RAG-System/internal/metrics"
	"github.com/omkar2816/Legal-RAG-System/internal/retrieval"
	"github.com/omkar2816/Legal-RAG-System/internal/vectorstore"
)

// CacheStatser reports embedding cache counters. The cached embedder
// implements it; a nil value hides cache stats from the admin endpoint.
type CacheStatser interface {
	Stats() (hits, misses int64)
}

// Server is the HTTP server for the retrieval API.
type Server struct {
	engine  *retrieval.Engine
	store   vectorstore.VectorStore
	cache   CacheStatser
	config  *config.ServerConfig
	logger  *zap.Logger
	metrics *metrics.Metrics
	server  *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	engine *retrieval.Engine,
	store vectorstore.VectorStore,
	cache CacheStatser,
	cfg *config.ServerConfig,
	logger *zap.Logger,
	m *metrics.Metrics,
) *Server {
	return &Server{
		engine:  engine,
		store:   store,
		cache:   cache,
		config:  cfg,
		logger:  logger,
		metrics: m,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(chimw.Compress(5))
	r.Use(func(next http.Handler) http.Handler { return s.metrics.Middleware(next) })
	r.Use(RateLimit(s.config.RateLimitPerMinute))

	r.Post("/api/v1/retrieve", s.handleRetrieve)
	r.Post("/api/v1/intent", s.handleIntent)
	r.Get("/api/v1/admin/stats", s.handleStats)
	r.Delete("/api/v1/admin/documents/{id}", s.handleDeleteDocument)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
