package serd

import (
	"strings"
	"testing"
)

func render(t *testing.T, syntax Syntax, cfg WriterConfig, events []Event) string {
	t.Helper()
	var buf strings.Builder
	w := NewWriter(&buf, syntax, cfg)
	for _, ev := range events {
		if err := w.OnEvent(ev); err != nil {
			t.Fatalf("OnEvent(%+v): %v", ev, err)
		}
	}
	if err := w.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	return buf.String()
}

func u(s string) Node { return NewURI(s) }

func TestWriteNTriplesLine(t *testing.T) {
	events := []Event{
		StatementEvent(0, u("http://example.org/s"), u("http://example.org/p"), NewPlainLiteral("hi", "")),
	}
	got := render(t, SyntaxNTriples, WriterConfig{}, events)
	want := `<http://example.org/s> <http://example.org/p> "hi" .` + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteNQuadsLineWithGraph(t *testing.T) {
	events := []Event{
		QuadEvent(0, u("http://example.org/s"), u("http://example.org/p"), u("http://example.org/o"), u("http://example.org/g")),
	}
	got := render(t, SyntaxNQuads, WriterConfig{}, events)
	want := `<http://example.org/s> <http://example.org/p> <http://example.org/o> <http://example.org/g> .` + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteTurtlePredicateAndObjectLists(t *testing.T) {
	s := u("http://example.org/s")
	p1 := u("http://example.org/p1")
	p2 := u("http://example.org/p2")
	events := []Event{
		StatementEvent(0, s, p1, NewPlainLiteral("o1", "")),
		StatementEvent(0, s, p1, NewPlainLiteral("o2", "")),
		StatementEvent(0, s, p2, NewPlainLiteral("o3", "")),
	}
	got := render(t, SyntaxTurtle, WriterConfig{}, events)
	want := `<http://example.org/s> <http://example.org/p1> "o1" ,` + "\n\t" +
		`"o2" ;` + "\n" +
		`<http://example.org/p2> "o3" .` + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteTurtleRDFTypeAbbreviatesAsA(t *testing.T) {
	events := []Event{
		StatementEvent(0, u("http://example.org/s"), NewURI(RDFType), u("http://example.org/Thing")),
	}
	got := render(t, SyntaxTurtle, WriterConfig{}, events)
	want := `<http://example.org/s> a <http://example.org/Thing> .` + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteTurtleAnonymousObject(t *testing.T) {
	s := u("http://example.org/s")
	p := u("http://example.org/p")
	blank := NewBlank("b1")
	events := []Event{
		StatementEvent(AnonO, s, p, blank),
		StatementEvent(0, blank, u("http://example.org/q"), NewPlainLiteral("v", "")),
		EndEvent(blank),
	}
	got := render(t, SyntaxTurtle, WriterConfig{}, events)
	want := `<http://example.org/s> <http://example.org/p> [ <http://example.org/q> "v" ] .` + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteTurtleAnonymousSubjectRootLevel(t *testing.T) {
	blank := NewBlank("b1")
	events := []Event{
		StatementEvent(AnonS, blank, u("http://example.org/p"), NewPlainLiteral("v", "")),
		EndEvent(blank),
		StatementEvent(0, blank, u("http://example.org/q"), NewPlainLiteral("w", "")),
	}
	got := render(t, SyntaxTurtle, WriterConfig{}, events)
	want := `[ <http://example.org/p> "v" ] <http://example.org/q> "w" .` + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteTurtleCollectionAsObject(t *testing.T) {
	s := u("http://example.org/s")
	p := u("http://example.org/p")
	head := NewBlank("c1")
	tail := NewBlank("c2")
	events := []Event{
		StatementEvent(ListO, s, p, head),
		StatementEvent(0, head, NewURI(RDFFirst), NewPlainLiteral("a", "")),
		StatementEvent(0, head, NewURI(RDFRest), tail),
		StatementEvent(0, tail, NewURI(RDFFirst), NewPlainLiteral("b", "")),
		StatementEvent(0, tail, NewURI(RDFRest), NewURI(RDFNil)),
	}
	got := render(t, SyntaxTurtle, WriterConfig{}, events)
	want := `<http://example.org/s> <http://example.org/p> ("a" "b") .` + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteTurtleCollectionAsSubject(t *testing.T) {
	head := NewBlank("c1")
	events := []Event{
		StatementEvent(ListS, head, NewURI(RDFFirst), NewPlainLiteral("1", "")),
		StatementEvent(0, head, NewURI(RDFRest), NewURI(RDFNil)),
		StatementEvent(0, head, u("http://example.org/q"), NewPlainLiteral("tag", "")),
	}
	got := render(t, SyntaxTurtle, WriterConfig{}, events)
	want := `("1") <http://example.org/q> "tag" .` + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteEmptyCollectionIsNilShorthand(t *testing.T) {
	s := u("http://example.org/s")
	p := u("http://example.org/p")
	events := []Event{
		StatementEvent(ListO, s, p, NewURI(RDFNil)),
	}
	got := render(t, SyntaxTurtle, WriterConfig{}, events)
	want := `<http://example.org/s> <http://example.org/p> () .` + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteTriGGraphBlocks(t *testing.T) {
	g := u("http://example.org/g")
	events := []Event{
		QuadEvent(0, u("http://example.org/s1"), u("http://example.org/p"), NewPlainLiteral("in-graph", ""), g),
		StatementEvent(0, u("http://example.org/s2"), u("http://example.org/p"), NewPlainLiteral("no-graph", "")),
	}
	got := render(t, SyntaxTriG, WriterConfig{}, events)
	want := `<http://example.org/g> {` + "\n" +
		`<http://example.org/s1> <http://example.org/p> "in-graph" .` + "\n" +
		`}` + "\n" +
		`<http://example.org/s2> <http://example.org/p> "no-graph" .` + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteTurtlePrefixDirectiveAndQualify(t *testing.T) {
	events := []Event{
		PrefixEvent("ex", "http://example.org/"),
		StatementEvent(0, u("http://example.org/s"), u("http://example.org/p"), NewPlainLiteral("v", "")),
	}
	got := render(t, SyntaxTurtle, WriterConfig{}, events)
	want := `@prefix ex: <http://example.org/> .` + "\n" +
		`ex:s ex:p "v" .` + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteLonghandFlagSuppressesAAbbreviation(t *testing.T) {
	events := []Event{
		StatementEvent(0, u("http://example.org/s"), NewURI(RDFType), u("http://example.org/Thing")),
	}
	got := render(t, SyntaxTurtle, WriterConfig{Flags: WriteLonghand}, events)
	want := `<http://example.org/s> <` + RDFType + `> <http://example.org/Thing> .` + "\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
