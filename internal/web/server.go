// Package web serves the chat widget and the /chat endpoint.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

//go:embed index.html
var indexHTML []byte

// Submitter runs one conversational turn.
type Submitter interface {
	Submit(ctx context.Context, utterance string) (string, error)
}

// Server exposes the chat UI over HTTP. It can start before the
// backend session is ready: /chat answers 503 until SetSubmitter is
// called with a live orchestrator.
type Server struct {
	logger      *zap.Logger
	turnTimeout time.Duration
	submitter   atomic.Value // Submitter
}

// NewServer returns a server with no submitter attached yet.
func NewServer(logger *zap.Logger, turnTimeout time.Duration) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{logger: logger, turnTimeout: turnTimeout}
}

// SetSubmitter attaches the turn runner and flips the server ready.
func (s *Server) SetSubmitter(sub Submitter) {
	s.submitter.Store(&sub)
}

// Ready reports whether a submitter is attached.
func (s *Server) Ready() bool {
	return s.submitter.Load() != nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.submitter.Load().(*Submitter)
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, chatResponse{Response: "Client not initialized yet. Please wait..."})
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		writeJSON(w, http.StatusBadRequest, chatResponse{Response: "Please provide a message"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.turnTimeout)
	defer cancel()

	start := time.Now()
	answer, err := (*sub).Submit(ctx, req.Message)
	if err != nil {
		s.logger.Error("turn failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, chatResponse{Response: "Error: " + err.Error()})
		return
	}

	s.logger.Info("turn completed",
		zap.Int("utterance_len", len(req.Message)),
		zap.Duration("elapsed", time.Since(start)))
	writeJSON(w, http.StatusOK, chatResponse{Response: answer})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"ready":  s.Ready(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
