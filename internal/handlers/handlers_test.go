package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openmuseum/curator/internal/models"
	"github.com/openmuseum/curator/internal/registry"
	"github.com/openmuseum/curator/internal/session"
)

type stubResolver struct {
	results map[string]*models.CurationResult
}

func (s *stubResolver) Resolve(_ context.Context, query string) (*models.CurationResult, error) {
	if result, ok := s.results[query]; ok {
		return result.Clone(), nil
	}
	return nil, fmt.Errorf("no record for %q", query)
}

type stubGenerator struct{}

func (stubGenerator) Generate(context.Context, string) (string, bool) { return "", false }

func testHandler() *Handler {
	resolver := &stubResolver{results: map[string]*models.CurationResult{
		"He Zun": {
			Kind: models.KindArtifact,
			Artifact: &models.ArtifactRecord{
				StandardName: "He Zun",
				ImageURL:     "https://example.org/hezun.jpg",
			},
		},
		"The Louvre": {
			Kind: models.KindMuseum,
			Museum: &models.MuseumRecord{
				Name:      "The Louvre",
				Location:  "Paris",
				Treasures: []models.MuseumTreasure{{Name: "Mona Lisa", Reason: "famous"}},
			},
		},
	}}

	presets := registry.New([]registry.Entry{
		{Name: "He Zun", ImageURL: "https://example.org/curated/hezun.jpg", Source: "Test", Category: "bronze"},
		{Name: "Mona Lisa", ImageURL: "https://example.org/curated/mona.jpg", Source: "Test", Category: "painting"},
	})

	return New(resolver, stubGenerator{}, presets)
}

func createSession(t *testing.T, h *Handler) string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.HandleSessions(rec, httptest.NewRequest("POST", "/api/sessions", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Create session returned %d: %s", rec.Code, rec.Body.String())
	}

	var response struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode create response: %v", err)
	}
	if response.SessionID == "" {
		t.Fatal("Create session returned empty session_id")
	}
	return response.SessionID
}

func TestSessionLifecycle(t *testing.T) {
	h := testHandler()
	id := createSession(t, h)

	rec := httptest.NewRecorder()
	h.HandleSessions(rec, httptest.NewRequest("GET", "/api/sessions", nil))
	if !strings.Contains(rec.Body.String(), id) {
		t.Errorf("Session list does not contain %s: %s", id, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.HandleSessionDetail(rec, httptest.NewRequest("GET", "/api/sessions/"+id, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Get session returned %d", rec.Code)
	}
	var state session.State
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("Failed to decode state: %v", err)
	}
	if state.Phase != session.PhaseIdle {
		t.Errorf("Fresh session phase = %s, want idle", state.Phase)
	}

	rec = httptest.NewRecorder()
	h.HandleSessionDetail(rec, httptest.NewRequest("DELETE", "/api/sessions/"+id, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Delete session returned %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleSessionDetail(rec, httptest.NewRequest("GET", "/api/sessions/"+id, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Get after delete returned %d, want 404", rec.Code)
	}
}

func TestSearchEndpoint(t *testing.T) {
	h := testHandler()
	id := createSession(t, h)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/sessions/"+id+"/search",
		strings.NewReader(`{"query": "He Zun"}`))
	h.HandleSessionDetail(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Search returned %d: %s", rec.Code, rec.Body.String())
	}

	var state session.State
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("Failed to decode state: %v", err)
	}
	if state.Phase != session.PhaseSuccess {
		t.Fatalf("Phase = %s, want success", state.Phase)
	}
	if state.Result == nil || state.Result.Kind != models.KindArtifact {
		t.Fatal("Expected artifact result")
	}
}

func TestSearchEndpointValidation(t *testing.T) {
	h := testHandler()
	id := createSession(t, h)

	tests := []struct {
		name string
		body string
	}{
		{"missing query", `{}`},
		{"blank query", `{"query": "   "}`},
		{"invalid json", `{"query": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/sessions/"+id+"/search", strings.NewReader(tt.body))
			h.HandleSessionDetail(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Search returned %d, want 400", rec.Code)
			}
		})
	}
}

func TestSearchFailureSurfacesErrorState(t *testing.T) {
	h := testHandler()
	id := createSession(t, h)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/sessions/"+id+"/search",
		strings.NewReader(`{"query": "unknown thing"}`))
	h.HandleSessionDetail(rec, req)

	// A failed curation is still a valid session state, not an HTTP error.
	if rec.Code != http.StatusOK {
		t.Fatalf("Search returned %d, want 200 with error phase", rec.Code)
	}
	var state session.State
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("Failed to decode state: %v", err)
	}
	if state.Phase != session.PhaseError {
		t.Errorf("Phase = %s, want error", state.Phase)
	}
	if state.ErrorMessage == "" {
		t.Error("ErrorMessage missing from error state")
	}
}

func TestTreasureAndBackEndpoints(t *testing.T) {
	h := testHandler()
	id := createSession(t, h)

	rec := httptest.NewRecorder()
	h.HandleSessionDetail(rec, httptest.NewRequest("POST", "/api/sessions/"+id+"/search",
		strings.NewReader(`{"query": "The Louvre"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("Search returned %d", rec.Code)
	}

	// Drilling before any museum is showing fails with a conflict.
	rec = httptest.NewRecorder()
	h.HandleSessionDetail(rec, httptest.NewRequest("POST", "/api/sessions/"+id+"/back", nil))
	if rec.Code != http.StatusConflict {
		t.Errorf("Back without drill returned %d, want 409", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleSessionDetail(rec, httptest.NewRequest("POST", "/api/sessions/"+id+"/treasures",
		strings.NewReader(`{"name": "He Zun"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("Treasure drill returned %d: %s", rec.Code, rec.Body.String())
	}
	var state session.State
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatal(err)
	}
	if state.NavigationContext == nil {
		t.Fatal("Drill-down state has no navigation context")
	}

	rec = httptest.NewRecorder()
	h.HandleSessionDetail(rec, httptest.NewRequest("POST", "/api/sessions/"+id+"/back", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Back returned %d: %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatal(err)
	}
	if state.Result == nil || state.Result.Kind != models.KindMuseum {
		t.Error("Back did not restore the museum result")
	}
}

func TestRegenerateEndpointValidation(t *testing.T) {
	h := testHandler()
	id := createSession(t, h)

	rec := httptest.NewRecorder()
	h.HandleSessionDetail(rec, httptest.NewRequest("POST", "/api/sessions/"+id+"/angles/abc/regenerate", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Non-numeric index returned %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleSessionDetail(rec, httptest.NewRequest("POST", "/api/sessions/"+id+"/angles/0/regenerate", nil))
	if rec.Code != http.StatusConflict {
		t.Errorf("Regenerate on idle session returned %d, want 409", rec.Code)
	}
}

func TestUnknownSessionAndAction(t *testing.T) {
	h := testHandler()
	id := createSession(t, h)

	rec := httptest.NewRecorder()
	h.HandleSessionDetail(rec, httptest.NewRequest("GET", "/api/sessions/no-such-id", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Unknown session returned %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleSessionDetail(rec, httptest.NewRequest("POST", "/api/sessions/"+id+"/frobnicate", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Unknown action returned %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.HandleSessionDetail(rec, httptest.NewRequest("PUT", "/api/sessions/"+id+"/search", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("PUT on action returned %d, want 405", rec.Code)
	}
}

func TestRegistryEndpoint(t *testing.T) {
	h := testHandler()

	rec := httptest.NewRecorder()
	h.HandleRegistry(rec, httptest.NewRequest("GET", "/api/registry", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Registry returned %d", rec.Code)
	}
	var response struct {
		Entries    []registry.Entry `json:"entries"`
		Categories []string         `json:"categories"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}
	if len(response.Entries) != 2 || len(response.Categories) != 2 {
		t.Errorf("Got %d entries, %d categories, want 2 and 2", len(response.Entries), len(response.Categories))
	}

	rec = httptest.NewRecorder()
	h.HandleRegistry(rec, httptest.NewRequest("GET", "/api/registry?category=bronze", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}
	if len(response.Entries) != 1 || response.Entries[0].Name != "He Zun" {
		t.Errorf("Category filter returned %v", response.Entries)
	}

	rec = httptest.NewRecorder()
	h.HandleRegistry(rec, httptest.NewRequest("POST", "/api/registry", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST on registry returned %d, want 405", rec.Code)
	}
}
