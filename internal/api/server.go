// Package api provides the civic-services HTTP API: document
// simplification, official translation, voice complaints, rights
// queries, and the WhatsApp webhook.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/nyayabharat/nyaya-go/internal/services/complaint"
	"github.com/nyayabharat/nyaya-go/internal/services/legallens"
	"github.com/nyayabharat/nyaya-go/internal/services/officer"
	"github.com/nyayabharat/nyaya-go/internal/services/rights"
	"github.com/nyayabharat/nyaya-go/internal/session"
)

// Version is reported on GET /.
const Version = "1.0.0"

// Server is the civic-services HTTP API server.
type Server struct {
	port   int
	apiKey string

	legalLens  *legallens.Service
	officer    *officer.Service
	complaints *complaint.Service
	rights     *rights.Service
	sessions   session.Store

	// Load stats
	activeRequests atomic.Int64
	totalRequests  atomic.Int64
	totalLatencyMs atomic.Int64
	startTime      time.Time

	mux *http.ServeMux
	srv *http.Server
}

// ServerConfig configures the API Server.
type ServerConfig struct {
	Port   int
	APIKey string

	LegalLens  *legallens.Service
	Officer    *officer.Service
	Complaints *complaint.Service
	Rights     *rights.Service
	Sessions   session.Store
}

// NewServer creates a new HTTP API server.
func NewServer(cfg ServerConfig) *Server {
	s := &Server{
		port:       cfg.Port,
		apiKey:     cfg.APIKey,
		legalLens:  cfg.LegalLens,
		officer:    cfg.Officer,
		complaints: cfg.Complaints,
		rights:     cfg.Rights,
		sessions:   cfg.Sessions,
		startTime:  time.Now(),
		mux:        http.NewServeMux(),
	}

	// Register routes. Root and health stay open; business endpoints
	// go through the api middleware (CORS + optional auth + stats).
	s.mux.HandleFunc("/", s.handleRoot)
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/document/process", s.api(s.handleDocumentProcess))
	s.mux.HandleFunc("/api/officer/translate", s.api(s.handleOfficerTranslate))
	s.mux.HandleFunc("/api/complaint/voice", s.api(s.handleComplaintVoice))
	s.mux.HandleFunc("/api/rights/query", s.api(s.handleRightsQuery))
	s.mux.HandleFunc("/api/whatsapp/webhook", s.api(s.handleWhatsAppWebhook))

	return s
}

// Start starts the HTTP server. Blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", s.port),
		Handler: s.mux,
	}

	log.Printf("[API] listening on http://0.0.0.0:%d", s.port)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.srv.Shutdown(shutdownCtx)
	}()

	if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop stops the server gracefully.
func (s *Server) Stop() {
	if s.srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.srv.Shutdown(ctx)
	}
}

// Handler exposes the route mux (used by tests).
func (s *Server) Handler() http.Handler {
	return s.mux
}

// --- Middleware ---

// api wraps business handlers with CORS headers, optional Bearer-token
// auth, and request accounting.
func (s *Server) api(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if s.apiKey != "" {
			auth := r.Header.Get("Authorization")
			if auth != "Bearer "+s.apiKey {
				writeJSONError(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}

		s.activeRequests.Add(1)
		start := time.Now()
		defer func() {
			s.activeRequests.Add(-1)
			s.totalRequests.Add(1)
			s.totalLatencyMs.Add(time.Since(start).Milliseconds())
		}()

		handler(w, r)
	}
}

// --- Status handlers ---

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeJSONError(w, "not found", http.StatusNotFound)
		return
	}

	total := s.totalRequests.Load()
	var avgMs int64
	if total > 0 {
		avgMs = s.totalLatencyMs.Load() / total
	}

	writeJSON(w, map[string]any{
		"message": "NyayaBharat Platform API",
		"status":  "active",
		"version": Version,
		"endpoints": map[string]string{
			"health":          "/health",
			"legal_lens":      "/api/document/process",
			"officer_mode":    "/api/officer/translate",
			"voice_complaint": "/api/complaint/voice",
			"rights_chatbot":  "/api/rights/query",
			"whatsapp":        "/api/whatsapp/webhook",
		},
		"stats": map[string]any{
			"uptime":         int(time.Since(s.startTime).Seconds()),
			"activeRequests": s.activeRequests.Load(),
			"totalRequests":  total,
			"avgLatencyMs":   avgMs,
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{
		"status": "healthy",
		"services": map[string]string{
			"legal_lens":         "active",
			"officer_mode":       "active",
			"voice_complaint":    "active",
			"rights_chatbot":     "active",
			"whatsapp_interface": "active",
		},
	})
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
