package serd

import "github.com/pkg/errors"

// readLine parses one line of N-Triples or N-Quads: blank, a comment,
// or a single statement terminated by '.'. N-Quads
// additionally permits an optional graph label before the dot.
func (rd *Reader) readLine() error {
	if err := rd.skipLineWSAndComment(); err != nil {
		return err
	}
	if rd.atEOF() || rd.peek() == '\n' {
		return rd.consumeEOL()
	}

	subject, err := rd.readLineTerm("subject", true, false)
	if err != nil {
		return err
	}
	if !subject.IsResource() {
		return rd.errAt(BadSyntax, "subject must be a URI or blank node")
	}
	if err := rd.requireInlineWS(); err != nil {
		return err
	}

	predicate, err := rd.readLineTerm("predicate", false, false)
	if err != nil {
		return err
	}
	if predicate.Kind != KindURI {
		return rd.errAt(BadSyntax, "predicate must be a URI")
	}
	if err := rd.requireInlineWS(); err != nil {
		return err
	}

	object, err := rd.readLineTerm("object", true, true)
	if err != nil {
		return err
	}
	if err := rd.skipInlineWS(); err != nil {
		return err
	}

	var graph Node
	hasGraph := false
	if rd.syntax == SyntaxNQuads && rd.peek() != '.' {
		graph, err = rd.readLineTerm("graph", true, false)
		if err != nil {
			return err
		}
		if !graph.IsResource() {
			return rd.errAt(BadSyntax, "graph label must be a URI or blank node")
		}
		hasGraph = true
		if err := rd.skipInlineWS(); err != nil {
			return err
		}
	}

	if rd.peek() != '.' {
		return rd.errAt(BadSyntax, "expected '.' terminating statement, got %q", rd.peek())
	}
	if st := rd.advance(); st.IsError() {
		return rd.errAt(st, "statement terminator")
	}
	if err := rd.skipLineWSAndComment(); err != nil {
		return err
	}
	if !rd.atEOF() && rd.peek() != '\n' {
		return rd.errAt(BadSyntax, "unexpected content after '.'")
	}
	if err := rd.consumeEOL(); err != nil {
		return err
	}

	ev := StatementEvent(0, subject, predicate, object)
	ev.Caret = rd.src.Caret()
	if hasGraph {
		ev.Graph = graph
		ev.HasGraph = true
	}
	return rd.sink.OnEvent(ev)
}

// readLineTerm reads a single N-Triples/N-Quads term: an IRIREF, a
// blank label, or (when allowLiteral) a literal.
func (rd *Reader) readLineTerm(context string, allowBlank, allowLiteral bool) (Node, error) {
	switch rd.peek() {
	case '<':
		return rd.readIRIREF()
	case '_':
		if !allowBlank {
			return Node{}, rd.errAt(BadSyntax, "%s cannot be a blank node", context)
		}
		if st := rd.advance(); st.IsError() {
			return Node{}, rd.errAt(st, context)
		}
		if rd.peek() != ':' {
			return Node{}, rd.errAt(BadSyntax, "expected ':' after '_'")
		}
		if st := rd.advance(); st.IsError() {
			return Node{}, rd.errAt(st, context)
		}
		label, err := rd.readBlankLabel()
		if err != nil {
			return Node{}, err
		}
		return NewBlank(label), nil
	case '"':
		if !allowLiteral {
			return Node{}, rd.errAt(BadSyntax, "%s cannot be a literal", context)
		}
		return rd.readLineLiteral()
	default:
		return Node{}, rd.errAt(BadSyntax, "unexpected character %q reading %s", rd.peek(), context)
	}
}

// readLineLiteral reads an N-Triples/N-Quads literal: a short
// double-quoted string, optionally followed by a language tag or a
// datatype IRIREF (long-quoted forms are a Turtle/TriG-only
// extension, so readStringLiteral's long-form detection is harmless
// here: the long form needs three quotes in a row, which no legal
// N-Triples literal begins with; an empty "" is read as an empty
// string).
func (rd *Reader) readLineLiteral() (Node, error) {
	value, err := rd.readStringLiteral()
	if err != nil {
		return Node{}, err
	}
	switch rd.peek() {
	case '@':
		if st := rd.advance(); st.IsError() {
			return Node{}, rd.errAt(st, "literal")
		}
		lang, err := rd.readLangTag()
		if err != nil {
			return Node{}, err
		}
		return NewPlainLiteral(value, lang), nil
	case '^':
		if st := rd.advance(); st.IsError() {
			return Node{}, rd.errAt(st, "literal")
		}
		if rd.peek() != '^' {
			return Node{}, rd.errAt(BadSyntax, "invalid datatype IRI marker")
		}
		if st := rd.advance(); st.IsError() {
			return Node{}, rd.errAt(st, "literal")
		}
		if rd.peek() != '<' {
			return Node{}, rd.errAt(BadSyntax, "expected IRIREF datatype")
		}
		dt, err := rd.readIRIREF()
		if err != nil {
			return Node{}, err
		}
		return NewTypedLiteral(value, dt), nil
	default:
		return NewPlainLiteral(value, ""), nil
	}
}

func (rd *Reader) requireInlineWS() error {
	if rd.peek() != ' ' && rd.peek() != '\t' {
		return rd.errAt(BadSyntax, "expected whitespace, got %q", rd.peek())
	}
	return rd.skipInlineWS()
}

// skipLineWSAndComment consumes inline whitespace and, if a '#'
// follows, the remainder of the line (not the newline itself).
func (rd *Reader) skipLineWSAndComment() error {
	if err := rd.skipInlineWS(); err != nil {
		return err
	}
	if rd.peek() == '#' {
		for !rd.atEOF() && rd.peek() != '\n' {
			if st := rd.advance(); st.IsError() {
				return errors.Wrap(st, "skip comment")
			}
		}
	}
	return nil
}

// consumeEOL consumes a trailing '\n' (or '\r\n'), if present; at EOF
// with no trailing newline, it is a no-op.
func (rd *Reader) consumeEOL() error {
	if rd.atEOF() {
		return nil
	}
	if rd.peek() == '\r' {
		if st := rd.advance(); st.IsError() {
			return errors.Wrap(st, "consume CR")
		}
	}
	if rd.peek() == '\n' {
		if st := rd.advance(); st.IsError() {
			return errors.Wrap(st, "consume LF")
		}
	}
	return nil
}
