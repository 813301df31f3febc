package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mostafamoumen/contactchat/internal/config"
	"github.com/mostafamoumen/contactchat/internal/core"
	"github.com/mostafamoumen/contactchat/pkg/log"
)

type ChatService interface {
	Handle(ctx context.Context, userID, message string) (core.ChatResult, error)
}

// Server is the thin HTTP transport: one chat endpoint plus health.
type Server struct {
	cfg  *config.AppConfig
	chat ChatService
	http *http.Server
}

func New(cfg *config.AppConfig, chat ChatService) *Server {
	return &Server{
		cfg:  cfg,
		chat: chat,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Post("/chat", s.handleChat)

	return r
}

func (s *Server) Start(ctx context.Context) error {
	s.http = &http.Server{
		Addr:    s.cfg.ListenAddr,
		Handler: s.Router(),
		BaseContext: func(net.Listener) context.Context {
			// Request contexts inherit the process logger.
			return ctx
		},
	}

	log.FromCtx(ctx).Info().Str("addr", s.cfg.ListenAddr).Msg("http server listening")

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	// The parent context is already cancelled at shutdown; give in-flight
	// requests a short drain window on a detached one.
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	return s.http.Shutdown(sctx)
}

type chatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var in chatRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.Message == "" || in.UserID == "" {
		respondError(w, http.StatusBadRequest, "message and user_id are required")
		return
	}

	result, err := s.chat.Handle(r.Context(), in.UserID, in.Message)
	if err != nil {
		// Extraction failures degrade inside the policy; anything that
		// reaches here is a session or aborted-request failure.
		log.FromCtx(r.Context()).Error().Err(err).Str("user_id", in.UserID).Msg("chat request failed")
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
