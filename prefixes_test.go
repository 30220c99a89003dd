package serd

import (
	"strings"
	"testing"
)

func TestLoadPrefixes(t *testing.T) {
	doc := `
ex: http://example.org/
foaf: http://xmlns.com/foaf/0.1/
`
	e := NewEnv()
	if err := LoadPrefixes(strings.NewReader(doc), e); err != nil {
		t.Fatalf("LoadPrefixes: %v", err)
	}
	for name, want := range map[string]string{
		"ex":   "http://example.org/",
		"foaf": "http://xmlns.com/foaf/0.1/",
	} {
		got, ok := e.Lookup(name)
		if !ok || got != want {
			t.Errorf("Lookup(%q) = (%q, %v), want (%q, true)", name, got, ok, want)
		}
	}
}

func TestLoadPrefixesEmptyDocument(t *testing.T) {
	e := NewEnv()
	if err := LoadPrefixes(strings.NewReader(""), e); err != nil {
		t.Fatalf("LoadPrefixes on empty input: %v", err)
	}
	if len(e.Names()) != 0 {
		t.Fatalf("expected no prefixes bound, got %v", e.Names())
	}
}

func TestDumpPrefixesRoundTrips(t *testing.T) {
	e := NewEnv()
	mustSetPrefix(t, e, "ex", "http://example.org/")
	mustSetPrefix(t, e, "foaf", "http://xmlns.com/foaf/0.1/")

	var buf strings.Builder
	if err := DumpPrefixes(&buf, e); err != nil {
		t.Fatalf("DumpPrefixes: %v", err)
	}

	roundTripped := NewEnv()
	if err := LoadPrefixes(strings.NewReader(buf.String()), roundTripped); err != nil {
		t.Fatalf("LoadPrefixes(dumped): %v", err)
	}
	for _, name := range e.SortedNames() {
		want, _ := e.Lookup(name)
		got, ok := roundTripped.Lookup(name)
		if !ok || got != want {
			t.Errorf("round-tripped Lookup(%q) = (%q, %v), want (%q, true)", name, got, ok, want)
		}
	}
}
