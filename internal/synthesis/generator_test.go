package synthesis

import (
	"strings"
	"testing"
)

func TestComposePrompt(t *testing.T) {
	got := ComposePrompt("  front view of the He Zun vessel  ")

	if !strings.HasPrefix(got, promptPrefix) {
		t.Errorf("Composed prompt missing quality preamble:\n%s", got)
	}
	if !strings.HasSuffix(got, promptSuffix) {
		t.Errorf("Composed prompt missing style suffix:\n%s", got)
	}
	if !strings.Contains(got, "front view of the He Zun vessel,") {
		t.Errorf("Caller prompt not trimmed and embedded:\n%s", got)
	}
	if !strings.Contains(got, "square 1:1 composition") {
		t.Errorf("Square-format directive missing:\n%s", got)
	}
}
