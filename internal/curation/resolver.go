// Package curation turns a free-text query into a validated curatorial
// record. It is the only place that parses narration output and the only
// place that decides where a record's primary image comes from.
package curation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openmuseum/curator/internal/imageproxy"
	"github.com/openmuseum/curator/internal/models"
	"github.com/openmuseum/curator/internal/narration"
	"github.com/openmuseum/curator/internal/registry"
)

// Resolver runs the curation pipeline: preset lookup, one narration round
// trip, payload extraction and repair, then the image cascade.
type Resolver struct {
	narrator narration.Service
	presets  *registry.Registry
}

// NewResolver wires a resolver to its narration service and preset registry.
func NewResolver(narrator narration.Service, presets *registry.Registry) *Resolver {
	return &Resolver{narrator: narrator, presets: presets}
}

// Resolve produces the canonical record for a query.
//
// The preset lookup runs before the narration call and its result is held:
// a curated image always overrides whatever URL the service supplies.
func (r *Resolver) Resolve(ctx context.Context, query string) (*models.CurationResult, error) {
	preset := r.presets.Resolve(query)
	if preset != nil {
		slog.Debug("Preset image matched", "query", query, "preset", preset.Name)
	}

	raw, err := r.narrator.Narrate(ctx, query)
	if err != nil {
		return nil, Classify(fmt.Errorf("narration failed: %w", err))
	}

	payload, err := extractPayload(raw)
	if err != nil {
		slog.Warn("Could not locate curation payload in narration output", "query", query, "response_length", len(raw))
		return nil, err
	}

	var result models.CurationResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	r.applyImageCascade(&result, preset)
	return &result, nil
}

// extractPayload isolates the embedded JSON object from free-text narration
// output: strip code fences, then take the span from the first '{' to the
// last '}'. Search grounding sometimes wraps the object in commentary.
func extractPayload(text string) (string, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return "", fmt.Errorf("%w: no JSON object found in narration output", ErrInvalidResponse)
	}
	return cleaned[start : end+1], nil
}

// applyImageCascade resolves the record's primary image: curated preset
// first, then the sanitized service-supplied URL, else absent so the session
// can fall back to synthesis.
func (r *Resolver) applyImageCascade(result *models.CurationResult, preset *registry.Entry) {
	switch result.Kind {
	case models.KindArtifact:
		result.Artifact.ImageURL, result.Artifact.ImageSource = resolveImage(preset, result.Artifact.ImageURL, result.Artifact.ImageSource)
	case models.KindMuseum:
		result.Museum.ImageURL, result.Museum.ImageSource = resolveImage(preset, result.Museum.ImageURL, result.Museum.ImageSource)
	}
}

func resolveImage(preset *registry.Entry, serviceURL, serviceSource string) (string, string) {
	if preset != nil {
		return preset.ImageURL, preset.Source
	}

	u := strings.TrimSpace(serviceURL)
	// The narration prompt demands https links; anything else is a broken
	// promise and is dropped rather than passed through.
	if u == "" || !strings.HasPrefix(u, "https://") {
		return "", ""
	}
	return imageproxy.Sanitize(u), serviceSource
}
