package serd

import (
	"io"

	"github.com/pkg/errors"
)

// frameKind distinguishes a writer's three kinds of open subject
// context, each closed by a different terminator.
type frameKind int

const (
	frameTop  frameKind = iota // an ordinary top-level subject, closed with " ."
	frameAnon                  // opened by AnonS/AnonO, closed with "]" on a matching END
	frameList                  // opened by ListS/ListO, closed on rdf:rest -> rdf:nil
)

// frame is one entry on the writer's subject-nesting stack.
type frame struct {
	kind      frameKind
	subject   Node
	predicate Node
	hasPred   bool
	wroteAny  bool // at least one predicate/object pair emitted for this frame

	// frameList only: the blank node whose rdf:first/rdf:rest statements
	// are currently expected; advances as rdf:rest links arrive.
	listTail Node

	// rootLevel is true when this anon/list frame was opened directly
	// from a subject-position flag (AnonS/ListS) rather than nested
	// inside an enclosing statement's object. Such a frame has no
	// outer frame left to supply its closing terminator, so on close
	// it converts in place into a frameTop instead of popping off the
	// stack, so a predicateObjectList may still follow the bracket.
	rootLevel bool
}

// Writer is a streaming pretty-printer: it consumes Events (typically
// forwarded from a Reader, or built by hand) and renders bytes for one
// of the four syntaxes, tracking a small stack of open subject frames
// so consecutive statements sharing a subject collapse into a
// predicate-object list.
type Writer struct {
	syntax Syntax
	flags  WriterFlags
	dump   *Dumper
	env    *Env
	base   *URI
	root   *URI
	logger Logger

	frames []*frame

	openGraph    Node
	hasOpenGraph bool
}

// NewWriter returns a Writer emitting syntax-conformant output to w.
// cfg.Env is used as the writer's prefix/base table if non-nil;
// otherwise a fresh, empty Env is created.
func NewWriter(w io.Writer, syntax Syntax, cfg WriterConfig) *Writer {
	env := cfg.Env
	if env == nil {
		env = NewEnv()
	}
	wr := &Writer{
		syntax: syntax,
		flags:  cfg.Flags,
		dump:   NewDumper(w, cfg.BlockSize),
		env:    env,
		logger: cfg.Logger,
	}
	if wr.logger == nil {
		wr.logger = NewLogger(nil)
	}
	if cfg.RootURI != "" {
		root := ParseURI(cfg.RootURI)
		wr.root = &root
	}
	return wr
}

// OnEvent implements Sink: it renders ev and advances the writer's
// internal state.
func (w *Writer) OnEvent(ev Event) error {
	switch ev.Type {
	case EventBase:
		return w.writeBase(ev.Base)
	case EventPrefix:
		return w.writePrefix(ev.PrefixName, ev.PrefixURI)
	case EventStatement:
		return w.writeStatement(ev)
	case EventEnd:
		return w.writeEndEvent(ev.End)
	default:
		return errors.Wrapf(BadArg, "writer: unrecognized event type %d", ev.Type)
	}
}

// Finish closes every still-open frame (emitting their terminators),
// closes any open TriG graph block, and flushes the block dumper. It
// must be called once after the last event to avoid truncated output.
func (w *Writer) Finish() error {
	if err := w.closeOpenFrames(); err != nil {
		return err
	}
	if w.hasOpenGraph {
		if err := w.raw("}\n"); err != nil {
			return err
		}
		w.hasOpenGraph = false
		w.openGraph = Node{}
	}
	return w.dump.Flush()
}

func (w *Writer) raw(s string) error {
	if _, err := w.dump.WriteString(s); err != nil {
		return errors.Wrap(err, "writer: write")
	}
	return nil
}

func (w *Writer) writeBase(base Node) error {
	parsed := ParseURI(base.Value)
	w.base = &parsed
	if !w.syntax.supportsDirectives() || w.flags&WriteContextual != 0 {
		return nil
	}
	if err := w.closeOpenFrames(); err != nil {
		return err
	}
	return w.raw("@base <" + base.Value + "> .\n")
}

func (w *Writer) writePrefix(name string, uri Node) error {
	if err := w.env.SetPrefix(name, uri.Value); err != nil {
		return err
	}
	if !w.syntax.supportsDirectives() || w.flags&WriteContextual != 0 {
		return nil
	}
	if err := w.closeOpenFrames(); err != nil {
		return err
	}
	abs, _ := w.env.Lookup(name)
	return w.raw("@prefix " + name + ": <" + abs + "> .\n")
}

func (w *Writer) writeStatement(ev Event) error {
	if w.syntax == SyntaxTriG {
		if err := w.ensureGraph(ev.Graph, ev.HasGraph); err != nil {
			return err
		}
	}
	if w.syntax.isLineBased() {
		return w.writeLine(ev)
	}
	return w.writeBlockStatement(ev)
}

// ensureGraph opens or closes a TriG graph block so the currently open
// graph matches ev's. Any open subject frames belong to the graph
// being left and are closed first.
func (w *Writer) ensureGraph(graph Node, hasGraph bool) error {
	sameGraph := (hasGraph && w.hasOpenGraph && graph.Equals(w.openGraph)) || (!hasGraph && !w.hasOpenGraph)
	if sameGraph {
		return nil
	}
	if err := w.closeOpenFrames(); err != nil {
		return err
	}
	if w.hasOpenGraph {
		if err := w.raw("}\n"); err != nil {
			return err
		}
		w.hasOpenGraph = false
		w.openGraph = Node{}
	}
	if !hasGraph {
		return nil
	}
	if err := w.writeNode(graph); err != nil {
		return err
	}
	if err := w.raw(" {\n"); err != nil {
		return err
	}
	w.hasOpenGraph = true
	w.openGraph = graph
	return nil
}

// writeLine renders one N-Triples/N-Quads line; these syntaxes have no
// block structure, so every statement is self-contained.
func (w *Writer) writeLine(ev Event) error {
	if err := w.writeNode(ev.Subject); err != nil {
		return err
	}
	if err := w.raw(" "); err != nil {
		return err
	}
	if err := w.writeNode(ev.Predicate); err != nil {
		return err
	}
	if err := w.raw(" "); err != nil {
		return err
	}
	if err := w.writeNode(ev.Object); err != nil {
		return err
	}
	if w.syntax == SyntaxNQuads && ev.HasGraph {
		if err := w.raw(" "); err != nil {
			return err
		}
		if err := w.writeNode(ev.Graph); err != nil {
			return err
		}
	}
	return w.raw(" .\n")
}

// writeBlockStatement implements the Turtle/TriG statement-emission
// algorithm: continue the innermost open frame if its subject (or, for
// an open list, its current tail) matches, otherwise close every open
// frame and start fresh.
func (w *Writer) writeBlockStatement(ev Event) error {
	if top := w.topFrame(); top != nil {
		if top.kind == frameList {
			if top.listTail.Equals(ev.Subject) {
				return w.continueList(top, ev)
			}
		} else if top.subject.Equals(ev.Subject) {
			return w.continueFrame(top, ev)
		}
	}
	if err := w.closeOpenFrames(); err != nil {
		return err
	}
	switch {
	case ev.Flags&EmptyS != 0:
		return w.openSubjectWithText(ev, "[] ")
	case ev.Flags&AnonS != 0:
		return w.openAnonSubject(ev)
	case ev.Flags&ListS != 0:
		return w.openListSubject(ev)
	default:
		return w.openNewSubject(ev)
	}
}

func (w *Writer) openNewSubject(ev Event) error {
	if err := w.writeNode(ev.Subject); err != nil {
		return err
	}
	if err := w.raw(" "); err != nil {
		return err
	}
	f := &frame{kind: frameTop, subject: ev.Subject}
	w.frames = append(w.frames, f)
	return w.writePredicateAndObject(f, ev)
}

func (w *Writer) openSubjectWithText(ev Event, text string) error {
	if err := w.raw(text); err != nil {
		return err
	}
	f := &frame{kind: frameTop, subject: ev.Subject}
	w.frames = append(w.frames, f)
	return w.writePredicateAndObject(f, ev)
}

func (w *Writer) openAnonSubject(ev Event) error {
	if err := w.raw("[ "); err != nil {
		return err
	}
	f := &frame{kind: frameAnon, subject: ev.Subject, rootLevel: true}
	w.frames = append(w.frames, f)
	return w.writePredicateAndObject(f, ev)
}

func (w *Writer) openListSubject(ev Event) error {
	if err := w.raw("("); err != nil {
		return err
	}
	f := &frame{kind: frameList, subject: ev.Subject, listTail: ev.Subject, rootLevel: true}
	w.frames = append(w.frames, f)
	return w.continueList(f, ev)
}

func (w *Writer) continueFrame(f *frame, ev Event) error {
	if f.hasPred && f.predicate.Equals(ev.Predicate) {
		if err := w.raw(" ,\n\t"); err != nil {
			return err
		}
		return w.writeObjectForEvent(ev)
	}
	if f.wroteAny {
		if err := w.raw(" ;\n"); err != nil {
			return err
		}
	}
	return w.writePredicateAndObject(f, ev)
}

func (w *Writer) writePredicateAndObject(f *frame, ev Event) error {
	if err := w.writePredicateTerm(ev.Predicate); err != nil {
		return err
	}
	if err := w.raw(" "); err != nil {
		return err
	}
	f.predicate = ev.Predicate
	f.hasPred = true
	f.wroteAny = true
	return w.writeObjectForEvent(ev)
}

// continueList renders one link of an RDF collection: an rdf:first
// statement writes its object inline; an rdf:rest statement either
// advances the expected next list node or, when it points at rdf:nil,
// closes the list.
func (w *Writer) continueList(f *frame, ev Event) error {
	switch {
	case ev.Predicate.Kind == KindURI && ev.Predicate.Value == RDFFirst:
		if f.wroteAny {
			if err := w.raw(" "); err != nil {
				return err
			}
		}
		f.wroteAny = true
		return w.writeObjectForEvent(ev)
	case ev.Predicate.Kind == KindURI && ev.Predicate.Value == RDFRest:
		if ev.Object.Kind == KindURI && ev.Object.Value == RDFNil {
			return w.closeListFrame(f)
		}
		f.listTail = ev.Object
		return nil
	default:
		return errors.Wrap(BadArg, "writer: unexpected predicate inside list")
	}
}

// closeListFrame emits the collection's closing ")" and either pops
// the frame (nested in an enclosing object position) or converts it in
// place into a continuable frameTop (opened directly as a subject via
// ListS, where a trailing predicateObjectList may still follow).
func (w *Writer) closeListFrame(f *frame) error {
	if err := w.raw(")"); err != nil {
		return err
	}
	w.frames = w.frames[:len(w.frames)-1]
	if !f.rootLevel {
		return nil
	}
	if err := w.raw(" "); err != nil {
		return err
	}
	w.frames = append(w.frames, &frame{kind: frameTop, subject: f.subject})
	return nil
}

// writeObjectForEvent renders the object of ev, opening a nested
// anonymous/list frame instead of a literal value where the flags call
// for one.
func (w *Writer) writeObjectForEvent(ev Event) error {
	switch {
	case ev.Flags&EmptyO != 0:
		return w.raw("[]")
	case ev.Flags&AnonO != 0:
		if err := w.raw("[ "); err != nil {
			return err
		}
		w.frames = append(w.frames, &frame{kind: frameAnon, subject: ev.Object})
		return nil
	case ev.Flags&ListO != 0:
		if ev.Object.Kind == KindURI && ev.Object.Value == RDFNil {
			return w.raw("()")
		}
		if err := w.raw("("); err != nil {
			return err
		}
		w.frames = append(w.frames, &frame{kind: frameList, subject: ev.Object, listTail: ev.Object})
		return nil
	default:
		return w.writeNode(ev.Object)
	}
}

// writeEndEvent closes the innermost anonymous frame describing node,
// either popping it (nested in an enclosing object position) or
// converting it into a continuable frameTop (opened directly as a
// subject via AnonS).
func (w *Writer) writeEndEvent(node Node) error {
	top := w.topFrame()
	if top == nil || top.kind != frameAnon || !top.subject.Equals(node) {
		w.logger.LogRecord(SeverityError, map[string]interface{}{"SERD_NODE": node.Value}, "END does not match the innermost open anonymous frame")
		return errors.Wrap(BadArg, "writer: END does not match the innermost open anonymous frame")
	}
	if err := w.raw(" ]"); err != nil {
		return err
	}
	w.frames = w.frames[:len(w.frames)-1]
	if !top.rootLevel {
		return nil
	}
	if err := w.raw(" "); err != nil {
		return err
	}
	w.frames = append(w.frames, &frame{kind: frameTop, subject: top.subject})
	return nil
}

func (w *Writer) topFrame() *frame {
	if len(w.frames) == 0 {
		return nil
	}
	return w.frames[len(w.frames)-1]
}

// popFrame force-closes the innermost frame, used only when tearing
// down the whole stack (closeOpenFrames): unlike writeEndEvent/
// closeListFrame it never tries to convert a root-level anon/list
// frame into a continuation, since there is nothing left to continue.
func (w *Writer) popFrame() error {
	f := w.frames[len(w.frames)-1]
	w.frames = w.frames[:len(w.frames)-1]
	switch f.kind {
	case frameTop:
		return w.raw(" .\n")
	case frameAnon:
		return w.raw(" ]")
	case frameList:
		return w.raw(")")
	default:
		return nil
	}
}

// closeOpenFrames pops every open frame from innermost to outermost,
// emitting each one's terminator.
func (w *Writer) closeOpenFrames() error {
	for len(w.frames) > 0 {
		if err := w.popFrame(); err != nil {
			return err
		}
	}
	return nil
}
