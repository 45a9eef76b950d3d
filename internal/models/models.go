package models

import "fmt"

// ResultKind discriminates what a curation query resolved to.
type ResultKind string

const (
	KindArtifact ResultKind = "ARTIFACT"
	KindMuseum   ResultKind = "MUSEUM"
)

// ImageAngle is one desired viewing angle of an artifact. The slice order in
// ArtifactRecord defines display order; each slot is patched independently
// during regeneration.
type ImageAngle struct {
	Angle      string `json:"angle"`
	Prompt     string `json:"prompt"`
	ImageURL   string `json:"imageUrl,omitempty"`
	Generating bool   `json:"isGenerating,omitempty"`
}

// ArtifactRecord is the canonical curatorial record for a single artifact.
// ImageURL is either a well-formed https URL or empty, never a placeholder.
type ArtifactRecord struct {
	StandardName         string       `json:"standardName"`
	ForeignName          string       `json:"foreignName,omitempty"`
	Civilization         string       `json:"civilization"`
	Era                  string       `json:"era"`
	Type                 string       `json:"type"`
	Material             string       `json:"material"`
	OwnerOrUser          string       `json:"ownerOrUser"`
	LocationOrCollection string       `json:"locationOrCollection"`
	MuseumGuideText      string       `json:"museumGuideText"`
	DeepAnalysis         string       `json:"deepAnalysis"`
	ViewingTips          string       `json:"viewingTips"`
	TechnicalNote        string       `json:"technicalNote"`
	ImageURL             string       `json:"imageUrl,omitempty"`
	ImageSource          string       `json:"imageSource,omitempty"`
	Angles               []ImageAngle `json:"imagePrompts"`
}

// MuseumTreasure is one catalogue entry in a museum's highlight list,
// rendered in received order.
type MuseumTreasure struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// MuseumRecord is the canonical record for a museum or gallery. The narration
// service is asked for at least ten treasures but fewer are tolerated.
type MuseumRecord struct {
	Name        string           `json:"name"`
	Location    string           `json:"location"`
	Intro       string           `json:"intro"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	ImageSource string           `json:"imageSource,omitempty"`
	Treasures   []MuseumTreasure `json:"treasures"`
}

// CurationResult is the tagged union the narration service is prompted to
// produce. Exactly one payload matching Kind must be set; Validate enforces
// this at the parse boundary rather than at render time.
type CurationResult struct {
	Kind     ResultKind      `json:"resultType"`
	Artifact *ArtifactRecord `json:"artifact,omitempty"`
	Museum   *MuseumRecord   `json:"museum,omitempty"`
}

// Validate checks that the declared kind carries its payload.
func (r *CurationResult) Validate() error {
	switch r.Kind {
	case KindArtifact:
		if r.Artifact == nil {
			return fmt.Errorf("result declares %s but artifact payload is missing", r.Kind)
		}
	case KindMuseum:
		if r.Museum == nil {
			return fmt.Errorf("result declares %s but museum payload is missing", r.Kind)
		}
		if len(r.Museum.Treasures) == 0 {
			return fmt.Errorf("museum record for %q has no treasures", r.Museum.Name)
		}
	default:
		return fmt.Errorf("unknown result type %q", r.Kind)
	}
	return nil
}

// Clone returns a deep copy. Snapshots handed to HTTP and CLI consumers must
// not share slices with the session's live record.
func (r *CurationResult) Clone() *CurationResult {
	if r == nil {
		return nil
	}
	out := &CurationResult{Kind: r.Kind}
	if r.Artifact != nil {
		out.Artifact = r.Artifact.Clone()
	}
	if r.Museum != nil {
		out.Museum = r.Museum.Clone()
	}
	return out
}

// Clone returns a deep copy of the artifact record.
func (a *ArtifactRecord) Clone() *ArtifactRecord {
	if a == nil {
		return nil
	}
	out := *a
	out.Angles = make([]ImageAngle, len(a.Angles))
	copy(out.Angles, a.Angles)
	return &out
}

// Clone returns a deep copy of the museum record.
func (m *MuseumRecord) Clone() *MuseumRecord {
	if m == nil {
		return nil
	}
	out := *m
	out.Treasures = make([]MuseumTreasure, len(m.Treasures))
	copy(out.Treasures, m.Treasures)
	return &out
}
