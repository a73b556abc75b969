// Package gateway exposes the chat command surface over HTTP so a bot
// platform can deliver messages via webhook. One POST carries one user
// message; the reply text goes back in the response body.
package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pterm/pterm"
)

// CommandHandler is the piece of the bot the gateway needs.
type CommandHandler interface {
	Handle(ctx context.Context, userID, message string) string
}

type Server struct {
	handler CommandHandler
}

func NewServer(h CommandHandler) *Server {
	return &Server{handler: h}
}

// Router builds the webhook routes.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/message", s.handleMessage).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	return r
}

type messageRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type messageResponse struct {
	Reply string `json:"reply"`
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	reqID := uuid.NewString()
	pterm.Info.Printfln("message %s: user=%s text=%q", reqID, req.UserID, req.Message)

	reply := s.handler.Handle(r.Context(), req.UserID, req.Message)
	respondJSON(w, http.StatusOK, messageResponse{Reply: reply})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
