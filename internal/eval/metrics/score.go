// Package metrics scores curation results against labeled expectations.
package metrics

import (
	"strings"

	"github.com/openmuseum/curator/internal/models"
)

// Image tiers, in cascade order.
const (
	TierPreset = "preset"
	TierRemote = "remote"
	TierAbsent = "absent"
)

// Evaluation is the scored outcome of one query.
type Evaluation struct {
	KindCorrect  bool
	NameMatched  bool
	ResolvedName string
	Completeness float64 // fraction of required record fields present
	ImageTier    string
	OverallScore float64
}

// ScoreResult compares one curation result against its labels. The image
// tier reflects how the primary image was sourced: preset when presetURL was
// applied, remote for a service-supplied URL, absent otherwise.
func ScoreResult(expectedKind, expectedName, presetURL string, result *models.CurationResult) Evaluation {
	eval := Evaluation{
		KindCorrect:  string(result.Kind) == expectedKind,
		ImageTier:    TierAbsent,
		ResolvedName: resolvedName(result),
	}

	eval.NameMatched = namesMatch(expectedName, eval.ResolvedName) ||
		(result.Kind == models.KindArtifact && namesMatch(expectedName, result.Artifact.ForeignName))
	eval.Completeness = completeness(result)

	imageURL := primaryImageURL(result)
	switch {
	case imageURL != "" && imageURL == presetURL:
		eval.ImageTier = TierPreset
	case imageURL != "":
		eval.ImageTier = TierRemote
	}

	eval.OverallScore = 0
	if eval.KindCorrect {
		eval.OverallScore += 0.5
	}
	if eval.NameMatched {
		eval.OverallScore += 0.3
	}
	eval.OverallScore += 0.2 * eval.Completeness

	return eval
}

func resolvedName(result *models.CurationResult) string {
	switch result.Kind {
	case models.KindArtifact:
		return result.Artifact.StandardName
	case models.KindMuseum:
		return result.Museum.Name
	}
	return ""
}

func primaryImageURL(result *models.CurationResult) string {
	switch result.Kind {
	case models.KindArtifact:
		return result.Artifact.ImageURL
	case models.KindMuseum:
		return result.Museum.ImageURL
	}
	return ""
}

// namesMatch uses the same bidirectional containment heuristic the preset
// catalogue uses, so eval tolerance matches production matching.
func namesMatch(expected, actual string) bool {
	e := strings.ToLower(strings.TrimSpace(expected))
	a := strings.ToLower(strings.TrimSpace(actual))
	if e == "" || a == "" {
		return false
	}
	return e == a || strings.Contains(e, a) || strings.Contains(a, e)
}

// completeness is the fraction of required descriptive fields populated.
func completeness(result *models.CurationResult) float64 {
	var fields []string
	switch result.Kind {
	case models.KindArtifact:
		a := result.Artifact
		fields = []string{a.StandardName, a.Civilization, a.Era, a.Type, a.Material, a.MuseumGuideText, a.DeepAnalysis}
	case models.KindMuseum:
		m := result.Museum
		treasures := ""
		if len(m.Treasures) > 0 {
			treasures = "ok"
		}
		fields = []string{m.Name, m.Location, m.Intro, treasures}
	default:
		return 0
	}

	filled := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			filled++
		}
	}
	return float64(filled) / float64(len(fields))
}
