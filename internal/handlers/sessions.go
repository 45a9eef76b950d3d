package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/openmuseum/curator/internal/session"
)

// HandleSessions serves the session collection: list on GET, create on POST.
func (h *Handler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		h.writeJSON(w, map[string]any{"sessions": h.sessionStore.IDs()})
	case "POST":
		sessionID := uuid.NewString()
		machine := session.New(h.resolver, h.generator)
		h.sessionStore.Set(sessionID, machine)
		h.writeJSON(w, map[string]any{
			"session_id": sessionID,
			"state":      machine.Snapshot(),
		})
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleSessionDetail routes /api/sessions/{id}[/action...].
func (h *Handler) HandleSessionDetail(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		h.writeError(w, "Session ID required", http.StatusBadRequest)
		return
	}

	machine, ok := h.getSessionOrError(w, parts[0])
	if !ok {
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case "GET":
			h.writeJSON(w, machine.Snapshot())
		case "DELETE":
			h.sessionStore.Delete(parts[0])
			h.writeJSON(w, map[string]any{"deleted": parts[0]})
		default:
			h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch {
	case len(parts) == 2 && parts[1] == "search":
		h.handleSearch(w, r, machine)
	case len(parts) == 2 && parts[1] == "treasures":
		h.handleTreasure(w, r, machine)
	case len(parts) == 2 && parts[1] == "back":
		h.handleBack(w, machine)
	case len(parts) == 2 && parts[1] == "clear":
		h.writeJSON(w, machine.Clear())
	case len(parts) == 4 && parts[1] == "angles" && parts[3] == "regenerate":
		h.handleRegenerate(w, r, machine, parts[2])
	default:
		h.writeError(w, "Unknown session action", http.StatusNotFound)
	}
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request, machine *session.Machine) {
	var request struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(request.Query) == "" {
		h.writeError(w, "query is required", http.StatusBadRequest)
		return
	}

	// Blocks for the narration round trip; image synthesis continues in the
	// background and shows up in later snapshots.
	h.writeJSON(w, machine.Search(r.Context(), request.Query))
}

func (h *Handler) handleTreasure(w http.ResponseWriter, r *http.Request, machine *session.Machine) {
	var request struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(request.Name) == "" {
		h.writeError(w, "name is required", http.StatusBadRequest)
		return
	}

	state, err := machine.DrillIntoTreasure(r.Context(), request.Name)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusConflict)
		return
	}
	h.writeJSON(w, state)
}

func (h *Handler) handleBack(w http.ResponseWriter, machine *session.Machine) {
	state, err := machine.GoBackToMuseum()
	if err != nil {
		h.writeError(w, err.Error(), http.StatusConflict)
		return
	}
	h.writeJSON(w, state)
}

func (h *Handler) handleRegenerate(w http.ResponseWriter, r *http.Request, machine *session.Machine, rawIndex string) {
	index, err := strconv.Atoi(rawIndex)
	if err != nil {
		h.writeError(w, "Invalid angle index: "+rawIndex, http.StatusBadRequest)
		return
	}

	state, err := machine.RegenerateAngle(r.Context(), index)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusConflict)
		return
	}
	h.writeJSON(w, state)
}
