// Package narration talks to the service that turns a free-text museum or
// artifact query into a structured curatorial record.
package narration

import "context"

// Service produces a free-text response that embeds one structured curation
// payload. The response is treated as untrusted; parsing and repair happen
// in the curation package.
type Service interface {
	Narrate(ctx context.Context, query string) (string, error)
}
