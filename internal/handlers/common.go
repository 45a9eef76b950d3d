package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/openmuseum/curator/internal/registry"
	"github.com/openmuseum/curator/internal/session"
	"github.com/openmuseum/curator/internal/storage"
	"github.com/openmuseum/curator/internal/synthesis"
)

// Handler serves the JSON API consumed by the museum UI. The UI only ever
// reads session snapshots and calls the session entry points; all curation
// logic stays behind the session machines.
type Handler struct {
	sessionStore *storage.SessionStore
	resolver     session.Resolver
	generator    synthesis.Generator
	presets      *registry.Registry
}

func New(resolver session.Resolver, generator synthesis.Generator, presets *registry.Registry) *Handler {
	return &Handler{
		sessionStore: storage.New(),
		resolver:     resolver,
		generator:    generator,
		presets:      presets,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Session helpers
func (h *Handler) getSessionOrError(w http.ResponseWriter, sessionID string) (*session.Machine, bool) {
	machine, exists := h.sessionStore.Get(sessionID)
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return machine, true
}
