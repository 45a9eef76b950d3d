// Package synthesis generates illustrative artifact images when no real
// photograph could be resolved. Generation is best-effort: a failure leaves
// the image slot empty and never aborts the surrounding session.
package synthesis

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-2.5-flash-image"

// promptPrefix and promptSuffix wrap every caller prompt with a fixed
// quality and style preamble. The square-format directive stands in for an
// aspect-ratio option; the image models honor it in the prompt text.
const (
	promptPrefix = "Authentic museum photography, 8k resolution, highly detailed, photorealistic, macro lens,"
	promptSuffix = "sharp focus, professional archival lighting, square 1:1 composition, no watermark, no text, texture-rich, masterpiece."
)

// Generator produces one inline image for a text prompt. The returned string
// is a data URI ready for direct embedding; ok is false when no image could
// be produced for any reason.
type Generator interface {
	Generate(ctx context.Context, prompt string) (dataURI string, ok bool)
}

// Gemini is the Google Gemini implementation of Generator.
type Gemini struct {
	model string
}

// NewGemini returns a Gemini image generator. The model can be overridden
// with CURATOR_IMAGE_MODEL.
func NewGemini() *Gemini {
	model := os.Getenv("CURATOR_IMAGE_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &Gemini{model: model}
}

// ComposePrompt wraps a caller-supplied prompt with the fixed preamble.
// Exposed for the session's derived hero prompts and for tests.
func ComposePrompt(prompt string) string {
	return strings.Join([]string{promptPrefix, strings.TrimSpace(prompt) + ",", promptSuffix}, "\n")
}

// Generate requests one image and returns it as a data URI. Every failure
// path logs and reports ok=false; synthesis never surfaces an error.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, bool) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		slog.Warn("Image synthesis skipped, GEMINI_API_KEY not set")
		return "", false
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		slog.Warn("Failed to create gemini client for image synthesis", "error", err)
		return "", false
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	resp, err := model.GenerateContent(ctx, genai.Text(ComposePrompt(prompt)))
	if err != nil {
		slog.Warn("Image synthesis request failed", "model", g.model, "error", err)
		return "", false
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
				uri := fmt.Sprintf("data:%s;base64,%s", blob.MIMEType, base64.StdEncoding.EncodeToString(blob.Data))
				slog.Debug("Synthesized image", "model", g.model, "mime_type", blob.MIMEType, "bytes", len(blob.Data))
				return uri, true
			}
		}
	}

	slog.Warn("Image synthesis returned no image part", "model", g.model)
	return "", false
}
