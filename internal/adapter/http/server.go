package adapthttp

import (
	"context"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"kuritterweight/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	webhook *app.WebhookService
	reports *app.ReportService
	mcp     http.Handler
	page    []byte
	health  func(context.Context) error
	logger  *log.Logger
}

// Option configures optional parts of a Server.
type Option func(*Server)

// WithMCP mounts h at /mcp.
func WithMCP(h http.Handler) Option {
	return func(s *Server) { s.mcp = h }
}

// WithPage serves html at "/".
func WithPage(html []byte) Option {
	return func(s *Server) { s.page = html }
}

// WithHealthCheck makes /api/health report 503 when check fails.
func WithHealthCheck(check func(context.Context) error) Option {
	return func(s *Server) { s.health = check }
}

// WithLogger sends request logs to l instead of the standard logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates a Server wired to the given application services. A nil
// webhook service makes the webhook endpoint report a configuration error.
func New(webhook *app.WebhookService, reports *app.ReportService, opts ...Option) *Server {
	s := &Server{webhook: webhook, reports: reports, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard, "", 0)
	}
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found"})
	})

	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/webhook", s.handleWebhook).Methods(http.MethodPost)
	r.HandleFunc("/api/weight-history", s.handleWeightHistory).Methods(http.MethodGet)

	if s.mcp != nil {
		r.Handle("/mcp", s.recoverJSONRPC(s.mcp))
	}
	if s.page != nil {
		r.HandleFunc("/", s.handlePage).Methods(http.MethodGet)
	}

	return withNoCache(s.loggingMiddleware(r))
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.page)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			s.logger.Printf("health: %v", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
