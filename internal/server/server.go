// Package server provides the HTTP REST API for the CV studio.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/cv-studio/internal/draft"
	"github.com/jonathan/cv-studio/internal/export"
	"github.com/jonathan/cv-studio/internal/server/ratelimit"
	"github.com/jonathan/cv-studio/internal/store"
	"github.com/jonathan/cv-studio/internal/types"
)

// DocumentStore is the persistence surface the handlers need.
type DocumentStore interface {
	CreateCV(ctx context.Context, doc *types.CVDocument) (uuid.UUID, error)
	GetCV(ctx context.Context, id uuid.UUID) (*types.CVDocument, error)
	GetCVByShareToken(ctx context.Context, token string) (*types.CVDocument, error)
	UpdateCV(ctx context.Context, id uuid.UUID, doc *types.CVDocument) error
	DeleteCV(ctx context.Context, id uuid.UUID) error
	SetPublic(ctx context.Context, id uuid.UUID, public bool) (string, error)
	GetSharing(ctx context.Context, id uuid.UUID) (bool, string, error)
	ListCVs(ctx context.Context, limit int) ([]store.CVSummary, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       DocumentStore
	generator   draft.Generator
	renderer    export.Renderer
	rateLimiter *ratelimit.Limiter
	baseURL     string
	locale      string

	sessionsMu sync.RWMutex
	sessions   map[uuid.UUID]*sessionState
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	APIKey      string
	BaseURL     string
	Locale      string
}

// New creates a new server instance, connecting to the database and the
// Gemini API.
func New(ctx context.Context, cfg Config) (*Server, error) {
	st, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	var generator draft.Generator
	if cfg.APIKey != "" {
		gen, err := draft.NewGeminiGenerator(ctx, cfg.APIKey)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to create draft generator: %w", err)
		}
		generator = gen
	}

	s := newWithDeps(cfg, st, generator, export.NewChromeRenderer())
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())
	return s, nil
}

// newWithDeps wires a server around explicit collaborators. Used directly by
// tests with in-memory stubs.
func newWithDeps(cfg Config, st DocumentStore, generator draft.Generator, renderer export.Renderer) *Server {
	s := &Server{
		store:     st,
		generator: generator,
		renderer:  renderer,
		baseURL:   cfg.BaseURL,
		locale:    cfg.Locale,
		sessions:  make(map[uuid.UUID]*sessionState),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Editor session endpoints
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("POST /sessions/{id}/intake", s.handleIntake)
	mux.HandleFunc("POST /sessions/{id}/next", s.handleNext)
	mux.HandleFunc("POST /sessions/{id}/back", s.handleBack)
	mux.HandleFunc("POST /sessions/{id}/reset", s.handleReset)
	mux.HandleFunc("POST /sessions/{id}/edits", s.handleEdit)
	mux.HandleFunc("POST /sessions/{id}/undo", s.handleUndo)
	mux.HandleFunc("POST /sessions/{id}/redo", s.handleRedo)
	mux.HandleFunc("PUT /sessions/{id}/template", s.handleSelectTemplate)
	mux.HandleFunc("PUT /sessions/{id}/color", s.handleSelectColor)
	mux.HandleFunc("POST /sessions/{id}/save", s.handleSave)
	mux.HandleFunc("POST /sessions/{id}/share", s.handleToggleShare)
	mux.HandleFunc("POST /sessions/{id}/export", s.handleExport)

	// Template gallery endpoints
	mux.HandleFunc("GET /templates", s.handleListTemplates)
	mux.HandleFunc("GET /palette", s.handleListPalette)

	// CRUD endpoints for persisted documents
	mux.HandleFunc("GET /cvs", s.handleListCVs)
	mux.HandleFunc("POST /cvs", s.handleCreateCV)
	mux.HandleFunc("GET /cvs/{id}", s.handleGetCV)
	mux.HandleFunc("PUT /cvs/{id}", s.handleUpdateCV)
	mux.HandleFunc("DELETE /cvs/{id}", s.handleDeleteCV)

	// Public share page
	mux.HandleFunc("GET /cv/{token}", s.handleSharedCV)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Long timeout for generation and exports
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if closer, ok := s.store.(*store.Store); ok {
		closer.Close()
	}
	if closer, ok := s.generator.(*draft.GeminiGenerator); ok {
		_ = closer.Close()
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.rateLimiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failResponse maps an error to its HTTP status and writes it
func (s *Server) failResponse(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
