// Package server exposes the chat relay over HTTP. Inbound user messages
// arrive on the webhook; outbound agent messages are pushed to the chat
// application through the HTTPMessenger.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/curio-chat/curio/errors"
	"github.com/curio-chat/curio/internal/mylog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Conversationalist is the slice of the orchestrator the HTTP layer needs.
type Conversationalist interface {
	RegisterAgent(ctx context.Context, agentID string) error
	HearText(ctx context.Context, agentID, text string) error
}

type userMessageRequest struct {
	AgentID     string `json:"agent_id"`
	UserMessage string `json:"user_message"`
}

type initAgentRequest struct {
	AgentID string `json:"agent_id"`
}

// NewHandler builds the routed handler with CORS and panic recovery, one
// request context per inbound call.
func NewHandler(logger *mylog.Logger, conversationalist Conversationalist) http.Handler {
	router := mux.NewRouter()
	sub := router.PathPrefix("/curio_chat").Subrouter()

	sub.HandleFunc("/send_user_message", func(w http.ResponseWriter, r *http.Request) {
		var req userMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.AgentID == "" || req.UserMessage == "" {
			http.Error(w, "agent_id and user_message are required", http.StatusBadRequest)
			return
		}

		if err := conversationalist.HearText(r.Context(), req.AgentID, req.UserMessage); err != nil {
			logger.Error("failed to process user message", "agent_id", req.AgentID, "err", err)
			http.Error(w, "failed to process message", http.StatusInternalServerError)
			return
		}

		writeOK(w)
	}).Methods("POST")

	sub.HandleFunc("/init_agent", func(w http.ResponseWriter, r *http.Request) {
		var req initAgentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.AgentID == "" {
			http.Error(w, "agent_id is required", http.StatusBadRequest)
			return
		}

		if err := conversationalist.RegisterAgent(r.Context(), req.AgentID); err != nil {
			logger.Error("failed to register agent", "agent_id", req.AgentID, "err", err)
			http.Error(w, "failed to register agent", http.StatusInternalServerError)
			return
		}

		writeOK(w)
	}).Methods("POST")

	sub.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w)
	}).Methods("GET")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.PrintRecoveryStack(true),
		handlers.RecoveryLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError)),
	)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		router.ServeHTTP(w, r.WithContext(ctx))
	})

	return cors(recovery(handler))
}

func writeOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Server wraps the handler in an http.Server with graceful shutdown.
type Server struct {
	logger     *mylog.Logger
	httpServer *http.Server
}

func NewServer(logger *mylog.Logger, addr string, conversationalist Conversationalist) *Server {
	return &Server{
		logger: logger,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewHandler(logger, conversationalist),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("chat relay listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server failed")
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return errors.WithStack(s.httpServer.Shutdown(ctx))
}
