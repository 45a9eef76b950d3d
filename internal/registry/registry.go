// Package registry holds the curated catalogue of known-good artifact and
// museum images. Entries are declared in presets.yaml, compiled into the
// binary, and loaded once at startup; the registry is immutable afterwards.
package registry

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// Entry is one curated image record. Aliases carry alternate spellings and
// translations of the canonical name.
type Entry struct {
	Name     string   `yaml:"name" json:"name"`
	Aliases  []string `yaml:"aliases" json:"aliases"`
	ImageURL string   `yaml:"imageUrl" json:"imageUrl"`
	Source   string   `yaml:"source" json:"source"`
	Category string   `yaml:"category,omitempty" json:"category,omitempty"`
}

// Registry is an ordered, read-only collection of preset entries.
// Registration order matters: Resolve returns the first match.
type Registry struct {
	entries []Entry
}

// New builds a registry from an explicit entry list, in the given order.
func New(entries []Entry) *Registry {
	return &Registry{entries: entries}
}

// Load parses the embedded preset catalogue.
func Load() (*Registry, error) {
	var entries []Entry
	if err := yaml.Unmarshal(presetsYAML, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse embedded preset catalogue: %w", err)
	}
	return New(entries), nil
}

// Entries returns a copy of the catalogue in registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// ByCategory returns the entries tagged with the given category.
func (r *Registry) ByCategory(category string) []Entry {
	var out []Entry
	for _, e := range r.entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (r *Registry) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range r.entries {
		if e.Category == "" || seen[e.Category] {
			continue
		}
		seen[e.Category] = true
		out = append(out, e.Category)
	}
	return out
}

// Resolve matches a free-text name against the catalogue and returns the
// first matching entry, or nil.
//
// Per entry, in registration order: exact canonical-name match, then
// substring containment in either direction against the canonical name, then
// the same containment test against every alias. All comparisons are
// case-insensitive; the query is trimmed but not otherwise normalized.
//
// The bidirectional substring test means a very short canonical name can
// over-match a longer query. That recall-over-precision trade-off is
// intentional for a small curated catalogue; do not tighten it here without
// reworking the catalogue contents to compensate.
func (r *Registry) Resolve(query string) *Entry {
	name := strings.ToLower(strings.TrimSpace(query))
	if name == "" {
		return nil
	}

	for i := range r.entries {
		entry := &r.entries[i]
		canonical := strings.ToLower(entry.Name)

		if canonical == name {
			return entry
		}
		if strings.Contains(canonical, name) || strings.Contains(name, canonical) {
			return entry
		}
		for _, alias := range entry.Aliases {
			a := strings.ToLower(alias)
			if a == name || strings.Contains(a, name) || strings.Contains(name, a) {
				return entry
			}
		}
	}
	return nil
}
