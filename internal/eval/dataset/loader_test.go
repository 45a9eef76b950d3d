package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempDataset(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write dataset fixture: %v", err)
	}
	return path
}

func TestLoadJSONL(t *testing.T) {
	path := writeTempDataset(t, "queries.jsonl",
		`{"query": "  He Zun  ", "expected_kind": "artifact", "expected_name": "He Zun", "expect_preset_image": true}
{"query": "british museum", "expected_kind": "MUSEUM", "expected_name": "The British Museum"}

{"query": "mona lisa", "expected_kind": "Artifact", "expected_name": "Mona Lisa"}
`)

	records, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Loaded %d records, want 3 (blank lines skipped)", len(records))
	}

	first := records[0]
	if first.Query != "He Zun" {
		t.Errorf("Query = %q, want trimmed", first.Query)
	}
	if first.ExpectedKind != "ARTIFACT" {
		t.Errorf("ExpectedKind = %q, want normalized to upper case", first.ExpectedKind)
	}
	if !first.ExpectPresetImage {
		t.Error("ExpectPresetImage not carried through")
	}
	if records[2].ExpectedKind != "ARTIFACT" {
		t.Errorf("ExpectedKind = %q, want ARTIFACT", records[2].ExpectedKind)
	}
}

func TestLoadJSONLMalformed(t *testing.T) {
	path := writeTempDataset(t, "bad.jsonl",
		`{"query": "ok", "expected_kind": "ARTIFACT", "expected_name": "ok"}
{not json}
`)

	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Load() = nil error for malformed JSONL, want line-numbered failure")
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeTempDataset(t, "queries.csv", "query,expected_kind\n")

	if _, err := NewLoader(path).Load(); err == nil {
		t.Error("Load() = nil error for unsupported extension, want failure")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "absent.jsonl")).Load(); err == nil {
		t.Error("Load() = nil error for missing file, want failure")
	}
}
