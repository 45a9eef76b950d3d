package handlers

import "net/http"

// HandleRegistry enumerates the preset image catalogue, optionally filtered
// by category.
func (h *Handler) HandleRegistry(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if category := r.URL.Query().Get("category"); category != "" {
		h.writeJSON(w, map[string]any{
			"category": category,
			"entries":  h.presets.ByCategory(category),
		})
		return
	}

	h.writeJSON(w, map[string]any{
		"entries":    h.presets.Entries(),
		"categories": h.presets.Categories(),
	})
}
