package serd

// EventType is the tag of an Event's variant.
type EventType int

const (
	EventBase EventType = iota
	EventPrefix
	EventStatement
	EventEnd
)

// StatementFlags is the bitmask carried by a STATEMENT event.
type StatementFlags uint

const (
	EmptyS StatementFlags = 1 << iota // subject is "[]" or "()"
	EmptyO                            // object is "[]" or "()"
	AnonS                             // subject opens an anonymous description, closed by a later END
	AnonO                             // object opens an anonymous description, closed by a later END
	ListS                             // subject begins a streamed-out RDF collection
	ListO                             // object begins a streamed-out RDF collection
	TerseS                            // layout hint for the subject's block; Writer renders it the same as without the flag
	TerseO                            // layout hint for the object's block; Writer renders it the same as without the flag
)

// Event is a tagged union of the four event variants the reader
// produces and the writer consumes. Only the fields
// relevant to Type are meaningful; unused fields are the zero Node.
type Event struct {
	Type EventType

	Base Node // EventBase

	PrefixName string // EventPrefix
	PrefixURI  Node   // EventPrefix

	Flags                 StatementFlags // EventStatement
	Subject, Predicate    Node           // EventStatement
	Object                Node           // EventStatement
	Graph                 Node           // EventStatement, may be the zero Node (absent)
	HasGraph              bool           // EventStatement

	End Node // EventEnd: the anonymous node whose description just closed

	Caret Caret // position the event originated at, for diagnostics
}

// BaseEvent constructs a BASE event.
func BaseEvent(uri string) Event {
	return Event{Type: EventBase, Base: NewURI(uri)}
}

// PrefixEvent constructs a PREFIX event.
func PrefixEvent(name, uri string) Event {
	return Event{Type: EventPrefix, PrefixName: name, PrefixURI: NewURI(uri)}
}

// StatementEvent constructs a STATEMENT event with no graph.
func StatementEvent(flags StatementFlags, s, p, o Node) Event {
	return Event{Type: EventStatement, Flags: flags, Subject: s, Predicate: p, Object: o}
}

// QuadEvent constructs a STATEMENT event scoped to a named graph.
func QuadEvent(flags StatementFlags, s, p, o, g Node) Event {
	return Event{Type: EventStatement, Flags: flags, Subject: s, Predicate: p, Object: o, Graph: g, HasGraph: true}
}

// EndEvent constructs an END event terminating the anonymous
// description of node.
func EndEvent(node Node) Event {
	return Event{Type: EventEnd, End: node}
}

// Sink is the consumer contract for RDF events: an environment, a
// writer, a filter, or a user-supplied collector.
// OnEvent is called once per produced event, in document order; any
// non-nil error terminates the producing reader or forwarding chain.
type Sink interface {
	OnEvent(Event) error
}

// SinkFunc adapts a plain function to the Sink interface, the way
// http.HandlerFunc adapts a function to http.Handler — convenient for
// ad-hoc collectors and tests that don't need a full struct.
type SinkFunc func(Event) error

// OnEvent implements Sink.
func (f SinkFunc) OnEvent(ev Event) error { return f(ev) }

// ChainSink forwards every event to each of sinks in order, stopping
// at the first error. This is how an Env is typically composed with a
// Writer: the Env keeps BASE/PREFIX state while the Writer renders the
// whole stream.
func ChainSink(sinks ...Sink) Sink {
	return SinkFunc(func(ev Event) error {
		for _, s := range sinks {
			if err := s.OnEvent(ev); err != nil {
				return err
			}
		}
		return nil
	})
}

// CollectSink gathers every event it receives into Events, useful in
// tests asserting on the full event stream a reader produced.
type CollectSink struct {
	Events []Event
}

// OnEvent implements Sink.
func (c *CollectSink) OnEvent(ev Event) error {
	c.Events = append(c.Events, ev)
	return nil
}
