package dataset

import "strings"

// CuratedQuery is one labeled evaluation query: what the user would type and
// what the narration service is expected to make of it.
type CuratedQuery struct {
	Query        string `json:"query" parquet:"query"`
	ExpectedKind string `json:"expected_kind" parquet:"expected_kind"` // "ARTIFACT" or "MUSEUM"
	ExpectedName string `json:"expected_name" parquet:"expected_name"`

	// ExpectPresetImage marks queries that should hit the curated image
	// catalogue rather than rely on service-supplied URLs.
	ExpectPresetImage bool `json:"expect_preset_image" parquet:"expect_preset_image"`
}

// Normalize trims the labeled fields and upper-cases the expected kind.
func (q *CuratedQuery) Normalize() {
	q.Query = strings.TrimSpace(q.Query)
	q.ExpectedKind = strings.ToUpper(strings.TrimSpace(q.ExpectedKind))
	q.ExpectedName = strings.TrimSpace(q.ExpectedName)
}
