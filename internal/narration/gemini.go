package narration

import (
	"context"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-2.5-flash"

// Gemini is the Google Gemini implementation of Service.
type Gemini struct {
	model string
}

// NewGemini returns a Gemini narration service. The model can be overridden
// with CURATOR_NARRATION_MODEL.
func NewGemini() *Gemini {
	model := os.Getenv("CURATOR_NARRATION_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &Gemini{model: model}
}

// Narrate sends the query to Gemini with the curation system prompt and
// returns the raw text response.
func (g *Gemini) Narrate(ctx context.Context, query string) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create new gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.model)
	model.SetTemperature(0.2)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(buildCurationPrompt(query))},
	}

	resp, err := model.GenerateContent(ctx, genai.Text("Please analyze: "+query))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("empty content returned from Gemini")
	}

	if txt, ok := candidate.Content.Parts[0].(genai.Text); ok {
		return string(txt), nil
	}

	return "", fmt.Errorf("unexpected response format from Gemini")
}

// buildCurationPrompt produces the system prompt describing the curation
// schema and the real-photograph sourcing rules.
func buildCurationPrompt(query string) string {
	return fmt.Sprintf(`You are the knowledge hub of a digital museum. You support two modes:
single-artifact analysis and museum highlight lookup.

CLASSIFICATION:
1. Decide whether the user input (%q) names a museum, gallery, or cultural
   institution, or a specific artifact or artwork.
2. Answer in the language of the user's query.

REAL IMAGES:
- Look for a real photograph URL of the artifact or museum.
- Prefer direct Wikimedia Commons links (.jpg/.png) because they allow
  hot-linking and are stable. Museum websites' public images come second.
- Never return a link that is actually an HTML page. Never return Base64.
- The link must start with https://.
- If you cannot find a confirmed direct image link, leave "imageUrl" as an
  empty string "" and the client will synthesize an illustration.

OUTPUT:
Respond with ONLY a JSON object matching this structure exactly (no Markdown
code fences):

{
  "resultType": "ARTIFACT" | "MUSEUM",

  // when resultType="MUSEUM":
  "museum": {
    "name": "official museum name",
    "location": "city, country",
    "intro": "short introduction (50-80 words)",
    "imageUrl": "https://upload.wikimedia.org/...",
    "imageSource": "Wikimedia Commons / [Source Name]",
    "treasures": [
      { "name": "artifact name 1", "reason": "why it is a highlight" },
      { "name": "artifact name 2", "reason": "..." }
    ]
  },

  // when resultType="ARTIFACT":
  "artifact": {
    "standardName": "standard name",
    "foreignName": "name in its original language",
    "civilization": "civilization",
    "era": "era",
    "type": "type",
    "material": "material",
    "ownerOrUser": "owner or user",
    "locationOrCollection": "holding collection",
    "museumGuideText": "docent narration (about 200 words)",
    "deepAnalysis": "in-depth analysis",
    "viewingTips": "viewing tips",
    "imageUrl": "https://upload.wikimedia.org/...",
    "imageSource": "Wikimedia Commons / [Source Name]",
    "imagePrompts": [
      { "angle": "Front", "prompt": "photorealistic..." },
      { "angle": "Left 45", "prompt": "..." }
    ],
    "technicalNote": "note"
  }
}

List at least ten treasures for a museum when you can. Provide imagePrompts
for at least the Front angle of an artifact.`, query)
}
