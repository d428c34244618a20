package bundle

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_MissingFilesYieldEmptyStructures(t *testing.T) {
	dir := t.TempDir()
	b, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.Atomics) != 0 || len(b.Composeds) != 0 || len(b.Promotions) != 0 {
		t.Errorf("expected empty bundle, got %+v", b)
	}
	if b.Weights.ComposedMinChildren != 1 || b.Weights.ComposedMinScore != 0.6 {
		t.Errorf("expected default weights, got %+v", b.Weights)
	}
}

func TestLoad_FirstOccurrenceWinsOnDuplicateID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "markers_canonical.ld35.json", `{"markers":[
		{"id":"ATO_x","kind":"atomic","detects":[{"regex":"a"}]},
		{"id":"ATO_x","kind":"atomic","detects":[{"regex":"b"}]}
	]}`)

	b, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.Atomics) != 1 {
		t.Fatalf("expected 1 marker after dedup, got %d", len(b.Atomics))
	}
	if b.Atomics[0].Detects[0].Regex != "a" {
		t.Errorf("expected first occurrence to win, got %q", b.Atomics[0].Detects[0].Regex)
	}
}

func TestLoad_DropsEntryWithoutID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "markers_canonical.ld35.json", `[{"kind":"atomic"},{"id":"ATO_y","kind":"atomic"}]`)

	b, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.Atomics) != 1 || b.Atomics[0].ID != "ATO_y" {
		t.Fatalf("expected only the id-bearing entry to survive, got %+v", b.Atomics)
	}
	if len(b.Warnings) == 0 {
		t.Error("expected a warning recorded for the dropped entry")
	}
}

func TestLoad_BareArrayMarkersFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "markers_canonical.ld35.json", `[{"id":"ATO_z","kind":"atomic"}]`)

	b, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.Atomics) != 1 || b.Atomics[0].ID != "ATO_z" {
		t.Fatalf("expected bare-array form to parse, got %+v", b.Atomics)
	}
}

func TestLoad_UnparseableFileSurfacesBundleError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "markers_canonical.ld35.json", `not json`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := err.(*Error); !ok {
		t.Errorf("expected *bundle.Error, got %T", err)
	}
}

func TestLoad_ComposedMarkerDefaultsSpanPolicy(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "markers_canonical.ld35.json", `{"markers":[
		{"id":"SEM_x","kind":"composed","composed_of":[{"marker_id":"ATO_a","weight":1}]}
	]}`)

	b, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	aw, ok := b.Composeds[0].SpanPolicy.(AnchorWindow)
	if !ok {
		t.Fatalf("expected default AnchorWindow span policy, got %#v", b.Composeds[0].SpanPolicy)
	}
	if aw.WindowTokens != [2]int{-8, 8} {
		t.Errorf("expected default window [-8,8], got %v", aw.WindowTokens)
	}
}

func TestLoad_FamilyDerivedFromIDPrefix(t *testing.T) {
	if FamilyOf("ATO_foo") != "ATO" {
		t.Error("expected ATO prefix")
	}
	if FamilyOf("weird_foo") != "SEM" {
		t.Error("expected unrecognized prefix to map to SEM")
	}
}
