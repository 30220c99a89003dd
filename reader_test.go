package serd

import (
	"strings"
	"testing"
)

func readAll(t *testing.T, syntax Syntax, input string, cfg ReaderConfig) (*Env, []Event) {
	t.Helper()
	env := NewEnv()
	var collected CollectSink
	sink := ChainSink(env, &collected)
	rd := NewReader(strings.NewReader(input), syntax, sink, cfg)
	if err := rd.ReadDocument(); err != nil {
		t.Fatalf("ReadDocument(%s): %v", syntax, err)
	}
	return env, collected.Events
}

func statementEvents(events []Event) []Event {
	var out []Event
	for _, ev := range events {
		if ev.Type == EventStatement {
			out = append(out, ev)
		}
	}
	return out
}

func TestReadNTriples(t *testing.T) {
	input := `<http://example.org/s> <http://example.org/p> "hello"@en .
<http://example.org/s> <http://example.org/p> "1"^^<http://www.w3.org/2001/XMLSchema#integer> .
_:b1 <http://example.org/p> _:b2 .
`
	_, events := readAll(t, SyntaxNTriples, input, ReaderConfig{})
	stmts := statementEvents(events)
	if len(stmts) != 3 {
		t.Fatalf("got %d statements, want 3", len(stmts))
	}
	if stmts[0].Object.Value != "hello" {
		t.Errorf("stmt0 object = %q, want %q", stmts[0].Object.Value, "hello")
	}
	lang, ok := stmts[0].Object.Language()
	if !ok || lang != "en" {
		t.Errorf("stmt0 object language = (%q, %v), want (en, true)", lang, ok)
	}
	if !stmts[2].Subject.Equals(NewBlank("b1")) {
		t.Errorf("stmt2 subject = %v, want blank b1", stmts[2].Subject)
	}
}

func TestReadNQuadsGraph(t *testing.T) {
	input := `<http://example.org/s> <http://example.org/p> <http://example.org/o> <http://example.org/g> .
<http://example.org/s> <http://example.org/p> <http://example.org/o2> .
`
	_, events := readAll(t, SyntaxNQuads, input, ReaderConfig{})
	stmts := statementEvents(events)
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
	if !stmts[0].HasGraph || stmts[0].Graph.Value != "http://example.org/g" {
		t.Errorf("stmt0 graph = (%v, %q), want (true, http://example.org/g)", stmts[0].HasGraph, stmts[0].Graph.Value)
	}
	if stmts[1].HasGraph {
		t.Errorf("stmt1 should have no graph, got %v", stmts[1].Graph)
	}
}

func TestReadTurtlePredicateObjectLists(t *testing.T) {
	input := `@prefix foaf: <http://xmlns.com/foaf/0.1/> .

<http://example.org/s>
	a foaf:Person ;
	foaf:name "Alice", "Alicia" .
`
	env, events := readAll(t, SyntaxTurtle, input, ReaderConfig{})
	if uri, ok := env.Lookup("foaf"); !ok || uri != "http://xmlns.com/foaf/0.1/" {
		t.Fatalf("foaf prefix = (%q, %v)", uri, ok)
	}
	stmts := statementEvents(events)
	if len(stmts) != 3 {
		t.Fatalf("got %d statements, want 3", len(stmts))
	}
	if stmts[0].Predicate.Value != RDFType {
		t.Errorf("stmt0 predicate = %v, want rdf:type (via 'a')", stmts[0].Predicate)
	}
	if stmts[1].Object.Value != "Alice" || stmts[2].Object.Value != "Alicia" {
		t.Errorf("object list = [%q, %q], want [Alice, Alicia]", stmts[1].Object.Value, stmts[2].Object.Value)
	}
}

func TestReadTurtleCollection(t *testing.T) {
	input := `<http://example.org/s> <http://example.org/p> ( "a" "b" ) .`
	_, events := readAll(t, SyntaxTurtle, input, ReaderConfig{})
	stmts := statementEvents(events)
	// s p head .  head rdf:first "a" .  head rdf:rest next .  next rdf:first "b" .  next rdf:rest rdf:nil .
	if len(stmts) != 5 {
		t.Fatalf("got %d statements, want 5:\n%+v", len(stmts), stmts)
	}
	if stmts[0].Flags&ListO == 0 {
		t.Error("expected the enclosing statement to carry ListO")
	}
	head := stmts[0].Object
	if !stmts[1].Subject.Equals(head) || stmts[1].Predicate.Value != RDFFirst || stmts[1].Object.Value != "a" {
		t.Errorf("unexpected first link: %+v", stmts[1])
	}
	if stmts[2].Predicate.Value != RDFRest || stmts[2].Object.Value == RDFNil {
		t.Errorf("unexpected rest link: %+v", stmts[2])
	}
	next := stmts[2].Object
	if !stmts[3].Subject.Equals(next) || stmts[3].Object.Value != "b" {
		t.Errorf("unexpected second link: %+v", stmts[3])
	}
	if stmts[4].Object.Value != RDFNil {
		t.Errorf("expected the collection to close on rdf:nil, got %+v", stmts[4])
	}
}

func TestReadTurtleAnonymousSubject(t *testing.T) {
	input := `[ <http://example.org/p> <http://example.org/o> ] <http://example.org/q> "r" .`
	_, events := readAll(t, SyntaxTurtle, input, ReaderConfig{})
	stmts := statementEvents(events)
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
	if stmts[0].Flags&AnonS == 0 {
		t.Error("expected the first statement to carry AnonS")
	}
	if !stmts[0].Subject.Equals(stmts[1].Subject) {
		t.Errorf("expected both statements to share the anonymous subject, got %v and %v", stmts[0].Subject, stmts[1].Subject)
	}
	var sawEnd bool
	for _, ev := range events {
		if ev.Type == EventEnd {
			sawEnd = true
			if !ev.End.Equals(stmts[0].Subject) {
				t.Errorf("END event names %v, want %v", ev.End, stmts[0].Subject)
			}
		}
	}
	if !sawEnd {
		t.Error("expected an END event closing the anonymous subject")
	}
}

func TestReadTriGGraphBlocks(t *testing.T) {
	input := `@prefix ex: <http://example.org/> .
ex:g1 {
	ex:s ex:p ex:o .
}
ex:s ex:p ex:o2 .
`
	_, events := readAll(t, SyntaxTriG, input, ReaderConfig{})
	stmts := statementEvents(events)
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
	if !stmts[0].HasGraph || stmts[0].Graph.Value != "ex:g1" || stmts[0].Graph.Kind != KindCURIE {
		t.Errorf("stmt0 graph = %+v, want ex:g1", stmts[0])
	}
	if stmts[1].HasGraph {
		t.Errorf("stmt1 should be outside any graph block, got %+v", stmts[1].Graph)
	}
}

func TestReadLaxModeRecoversFromBadLine(t *testing.T) {
	input := "<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n" +
		"this line is not valid N-Triples\n" +
		"<http://example.org/s> <http://example.org/p> <http://example.org/o2> .\n"
	_, events := readAll(t, SyntaxNTriples, input, ReaderConfig{Flags: ReadLax})
	stmts := statementEvents(events)
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2 (bad line skipped)", len(stmts))
	}
}

func TestReadTurtleBaseResolution(t *testing.T) {
	input := `@base <http://example.org/a/> .
<b> <http://example.org/p> <../c> .
`
	_, events := readAll(t, SyntaxTurtle, input, ReaderConfig{})
	stmts := statementEvents(events)
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	if stmts[0].Subject.Value != "http://example.org/a/b" {
		t.Errorf("subject = %q, want %q", stmts[0].Subject.Value, "http://example.org/a/b")
	}
	if stmts[0].Object.Value != "http://example.org/c" {
		t.Errorf("object = %q, want %q", stmts[0].Object.Value, "http://example.org/c")
	}
}
