package curation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidResponse means the narration output could not be reduced to a
// parseable curation payload, or the payload lacked the data its declared
// kind requires.
var ErrInvalidResponse = errors.New("invalid narration response")

// ErrRateLimited means the narration service refused the call because of
// rate or quota limits.
var ErrRateLimited = errors.New("narration service rate limited")

// rateLimitMarkers are substrings that identify quota failures in the raw
// error text of the underlying service.
var rateLimitMarkers = []string{
	"429",
	"rate limit",
	"quota",
	"resource_exhausted",
	"resource exhausted",
}

// Classify upgrades a raw service error to ErrRateLimited when its text
// carries a quota marker; everything else passes through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range rateLimitMarkers {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
	}
	return err
}

// UserMessage maps a resolution error to the message shown to the user. The
// raw error text stays in the logs, never in the UI.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrRateLimited):
		return "The archive service is receiving too many requests. Please wait a moment and search again."
	case errors.Is(err, ErrInvalidResponse):
		return "The archive could not interpret this entry. Try the full official name of the artifact or museum."
	default:
		return "Analysis failed. Please try again."
	}
}
