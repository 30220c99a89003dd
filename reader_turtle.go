package serd

// valueShape classifies how a parsed subject/object value was written,
// so callers can attach the correct StatementFlags.
type valueShape int

const (
	shapePlain valueShape = iota
	shapeEmpty
	shapeAnon
	shapeList
)

// shapeObjectFlag maps a value's shape onto the flag an enclosing
// statement carries when that value appears in object position.
func shapeObjectFlag(s valueShape) StatementFlags {
	switch s {
	case shapeEmpty:
		return EmptyO
	case shapeAnon:
		return AnonO
	case shapeList:
		return ListO
	default:
		return 0
	}
}

// readTurtleStatement parses one top-level Turtle/TriG production: a
// directive, a triples block, or (TriG only) a graph block.
func (rd *Reader) readTurtleStatement() error {
	if err := rd.skipWSCommentsAndNewlines(); err != nil {
		return err
	}
	if rd.atEOF() {
		return nil
	}

	if rd.peek() == '}' {
		if rd.syntax != SyntaxTriG || !rd.inOpenGraph {
			return rd.errAt(BadSyntax, "unexpected '}'")
		}
		if st := rd.advance(); st.IsError() {
			return rd.errAt(st, "graph block")
		}
		rd.inOpenGraph = false
		rd.openGraph = Node{}
		return nil
	}

	if rd.peek() == '@' {
		return rd.readAtDirective()
	}
	if rd.matchKeywordCI("PREFIX") {
		return rd.readPrefixDirective(false)
	}
	if rd.matchKeywordCI("BASE") {
		return rd.readBaseDirective(false)
	}

	return rd.readTriplesOrGraphBlock()
}

// matchKeywordCI reports whether the upcoming bytes case-insensitively
// spell kw, followed by whitespace or '<'/'#'/EOF, consuming them if
// so (used for SPARQL-style BASE/PREFIX, which have no leading marker
// character).
func (rd *Reader) matchKeywordCI(kw string) bool {
	consumed := make([]byte, 0, len(kw))
	for i := 0; i < len(kw); i++ {
		b := rd.peek()
		if toUpperByte(b) != toUpperByte(kw[i]) {
			rd.pushback(consumed)
			return false
		}
		consumed = append(consumed, b)
		if st := rd.advance(); st.IsError() {
			rd.pushback(consumed)
			return false
		}
	}
	next := rd.peek()
	if !rd.atEOF() && !isWhitespace(rune(next)) && next != '<' && next != '#' {
		// "PREFIXED" is not the keyword "PREFIX" followed by something
		// else; it's a single longer identifier that happens to share
		// the prefix.
		rd.pushback(consumed)
		return false
	}
	return true
}

func toUpperByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 32
	}
	return b
}

func (rd *Reader) readAtDirective() error {
	if st := rd.advance(); st.IsError() { // consume '@'
		return rd.errAt(st, "directive")
	}
	switch {
	case rd.matchKeywordCI("prefix"):
		return rd.readPrefixDirective(true)
	case rd.matchKeywordCI("base"):
		return rd.readBaseDirective(true)
	default:
		return rd.errAt(BadSyntax, "unrecognized directive")
	}
}

func (rd *Reader) readPrefixDirective(isAt bool) error {
	if err := rd.skipInlineWS(); err != nil {
		return err
	}
	name, err := rd.readPrefixLabel()
	if err != nil {
		return err
	}
	if err := rd.skipInlineWS(); err != nil {
		return err
	}
	if rd.peek() != '<' {
		return rd.errAt(BadSyntax, "expected IRIREF in prefix directive")
	}
	iri, err := rd.readIRIREF()
	if err != nil {
		return err
	}
	if isAt {
		if err := rd.skipWSCommentsAndNewlines(); err != nil {
			return err
		}
		if rd.peek() != '.' {
			return rd.errAt(BadSyntax, "expected '.' terminating @prefix")
		}
		if st := rd.advance(); st.IsError() {
			return rd.errAt(st, "prefix directive")
		}
	}
	if err := rd.env.SetPrefix(name, iri.Value); err != nil {
		return err
	}
	ev := PrefixEvent(name, iri.Value)
	ev.Caret = rd.src.Caret()
	return rd.sink.OnEvent(ev)
}

func (rd *Reader) readBaseDirective(isAt bool) error {
	if err := rd.skipInlineWS(); err != nil {
		return err
	}
	if rd.peek() != '<' {
		return rd.errAt(BadSyntax, "expected IRIREF in base directive")
	}
	iri, err := rd.readIRIREF()
	if err != nil {
		return err
	}
	if isAt {
		if err := rd.skipWSCommentsAndNewlines(); err != nil {
			return err
		}
		if rd.peek() != '.' {
			return rd.errAt(BadSyntax, "expected '.' terminating @base")
		}
		if st := rd.advance(); st.IsError() {
			return rd.errAt(st, "base directive")
		}
	}
	if err := rd.env.SetBaseURI(iri.Value); err != nil {
		return err
	}
	ev := BaseEvent(iri.Value)
	ev.Caret = rd.src.Caret()
	return rd.sink.OnEvent(ev)
}

// readPrefixLabel reads a PN_PREFIX (possibly empty) up to and
// including the terminating ':'.
func (rd *Reader) readPrefixLabel() (string, error) {
	mark := rd.stack.size()
	if rd.peek() == ':' {
		if st := rd.advance(); st.IsError() {
			return "", rd.errAt(st, "prefix label")
		}
		return "", nil
	}
	r, w := rd.decodeCurrentRune()
	if !isPnCharsBase(r) {
		return "", rd.errAt(BadSyntax, "invalid prefix label")
	}
	if err := rd.consumeRuneBytes(r, w); err != nil {
		return "", err
	}
	for {
		if rd.peek() == ':' {
			break
		}
		r, w = rd.decodeCurrentRune()
		if r == '.' {
			if err := rd.consumeRuneBytes(r, w); err != nil {
				return "", err
			}
			continue
		}
		if !isPnChars(r) {
			return "", rd.errAt(BadSyntax, "invalid prefix label")
		}
		if err := rd.consumeRuneBytes(r, w); err != nil {
			return "", err
		}
	}
	name := rd.stack.stringFrom(mark)
	if st := rd.advance(); st.IsError() { // consume ':'
		return "", rd.errAt(st, "prefix label")
	}
	return name, nil
}

// readTriplesOrGraphBlock handles the ambiguity between a TriG graph
// block ("name { ... }" or "{ ... }") and an ordinary triples block
// whose subject happens to be a name.
func (rd *Reader) readTriplesOrGraphBlock() error {
	if rd.syntax == SyntaxTriG && rd.peek() == '{' {
		return rd.readGraphBlock(Node{}, false)
	}

	subject, firstFlag, err := rd.readSubjectTerm()
	if err != nil {
		return err
	}

	if rd.syntax == SyntaxTriG {
		if err := rd.skipWSCommentsAndNewlines(); err != nil {
			return err
		}
		if rd.peek() == '{' {
			return rd.readGraphBlock(subject, true)
		}
	}

	if err := rd.skipWSCommentsAndNewlines(); err != nil {
		return err
	}
	if rd.peek() == '.' {
		// Subject with no predicate-object list at all, e.g. a bare
		// "[] ." or "( a b ) .": nothing more to emit.
		if st := rd.advance(); st.IsError() {
			return rd.errAt(st, "triples block")
		}
		return nil
	}

	if err := rd.emitPredicateObjectList(subject, firstFlag); err != nil {
		return err
	}
	if err := rd.skipWSCommentsAndNewlines(); err != nil {
		return err
	}
	if rd.peek() != '.' {
		return rd.errAt(BadSyntax, "expected '.' terminating triples block, got %q", rd.peek())
	}
	return wrapStatus(rd.advance(), rd, "triples block")
}

// buildStatementEvent constructs a STATEMENT event scoped to whatever
// TriG graph is currently open, so every
// emission site - including ones nested inside a collection or an
// inline blank-node description - stays scoped to the enclosing graph
// block without threading a graph parameter through each one.
func (rd *Reader) buildStatementEvent(flags StatementFlags, s, p, o Node) Event {
	var ev Event
	if graph, hasGraph := rd.currentGraph(); hasGraph {
		ev = QuadEvent(flags, s, p, o, graph)
	} else {
		ev = StatementEvent(flags, s, p, o)
	}
	ev.Caret = rd.src.Caret()
	return ev
}

// currentGraph reports the graph that newly emitted statements should
// be scoped to: the name of the enclosing TriG graph block, if any is
// open and named. Statements written
// inside an unnamed "{ ... }" block belong to the default graph, same
// as top-level statements.
func (rd *Reader) currentGraph() (Node, bool) {
	if rd.inOpenGraph && rd.openGraph.Value != "" {
		return rd.openGraph, true
	}
	return Node{}, false
}

// readGraphBlock parses a TriG "name? { triplesBlock* }". named is the graph's name (ignored if
// hasName is false, meaning the default graph).
func (rd *Reader) readGraphBlock(named Node, hasName bool) error {
	if st := rd.advance(); st.IsError() { // consume '{'
		return rd.errAt(st, "graph block")
	}
	rd.inOpenGraph = true
	if hasName {
		rd.openGraph = named
	} else {
		rd.openGraph = Node{}
	}
	for {
		if err := rd.skipWSCommentsAndNewlines(); err != nil {
			return err
		}
		if rd.atEOF() {
			return rd.errAt(BadSyntax, "unterminated graph block, missing '}'")
		}
		if rd.peek() == '}' {
			if st := rd.advance(); st.IsError() {
				return rd.errAt(st, "graph block")
			}
			rd.inOpenGraph = false
			rd.openGraph = Node{}
			return nil
		}
		if rd.peek() == '@' {
			if err := rd.readAtDirective(); err != nil {
				return err
			}
			continue
		}
		if rd.matchKeywordCI("PREFIX") {
			if err := rd.readPrefixDirective(false); err != nil {
				return err
			}
			continue
		}
		if rd.matchKeywordCI("BASE") {
			if err := rd.readBaseDirective(false); err != nil {
				return err
			}
			continue
		}

		subject, firstFlag, err := rd.readSubjectTerm()
		if err != nil {
			return err
		}
		if err := rd.skipWSCommentsAndNewlines(); err != nil {
			return err
		}
		if rd.peek() == '.' {
			if st := rd.advance(); st.IsError() {
				return rd.errAt(st, "triples block")
			}
			continue
		}
		if err := rd.emitPredicateObjectList(subject, firstFlag); err != nil {
			return err
		}
		if err := rd.skipWSCommentsAndNewlines(); err != nil {
			return err
		}
		if rd.peek() != '.' {
			return rd.errAt(BadSyntax, "expected '.' terminating triples block")
		}
		if st := rd.advance(); st.IsError() {
			return rd.errAt(st, "triples block")
		}
	}
}

// readSubjectTerm reads a triples block's subject: an IRI, a CURIE, a
// blank label, a variable, an inline blank-node description "[...]",
// or a collection "(...)". For the "[...]"/"(...)"
// cases, it fully parses and emits the nested description itself
// (since the relevant flag marks the first *nested* statement, there
// being no separate enclosing statement for a top-level subject); the
// returned firstFlag is non-zero only for the degenerate empty-bracket
// case, "[] p o .", where the flag belongs to the predicate-object
// list that follows, not to anything this function itself emits.
func (rd *Reader) readSubjectTerm() (Node, StatementFlags, error) {
	switch rd.peek() {
	case '<':
		n, err := rd.readIRIREF()
		return n, 0, err
	case '_':
		n, err := rd.readBlankNodeTerm()
		return n, 0, err
	case '?', '$':
		if rd.cfg.Flags&ReadVariables == 0 {
			return Node{}, 0, rd.errAt(BadSyntax, "variables not enabled")
		}
		n, err := rd.readVariableTerm()
		return n, 0, err
	case '(':
		return rd.readSubjectCollection()
	case '[':
		return rd.readSubjectAnon()
	default:
		n, err := rd.readPrefixedNameTerm()
		return n, 0, err
	}
}

func (rd *Reader) readBlankNodeTerm() (Node, error) {
	if st := rd.advance(); st.IsError() { // consume '_'
		return Node{}, rd.errAt(st, "blank node")
	}
	if rd.peek() != ':' {
		return Node{}, rd.errAt(BadSyntax, "expected ':' after '_'")
	}
	if st := rd.advance(); st.IsError() {
		return Node{}, rd.errAt(st, "blank node")
	}
	label, err := rd.readBlankLabel()
	if err != nil {
		return Node{}, err
	}
	return NewBlank(label), nil
}

func (rd *Reader) readVariableTerm() (Node, error) {
	if st := rd.advance(); st.IsError() { // consume '?' or '$'
		return Node{}, rd.errAt(st, "variable")
	}
	mark := rd.stack.size()
	r, w := rd.decodeCurrentRune()
	if !isPnCharsU(r) && !isDigit(r) {
		return Node{}, rd.errAt(BadSyntax, "invalid variable name")
	}
	for isPnChars(r) || isDigit(r) {
		if err := rd.consumeRuneBytes(r, w); err != nil {
			return Node{}, err
		}
		r, w = rd.decodeCurrentRune()
	}
	return NewVariable(rd.stack.stringFrom(mark)), nil
}

func (rd *Reader) readSubjectCollection() (Node, StatementFlags, error) {
	if st := rd.advance(); st.IsError() { // consume '('
		return Node{}, 0, rd.errAt(st, "collection")
	}
	if err := rd.skipWSCommentsAndNewlines(); err != nil {
		return Node{}, 0, err
	}
	if rd.peek() == ')' {
		if st := rd.advance(); st.IsError() {
			return Node{}, 0, rd.errAt(st, "collection")
		}
		return nodeRDFNil, 0, nil
	}
	head := NewBlank(rd.nextBlankLabel())
	if err := rd.emitCollectionElements(head, ListS); err != nil {
		return Node{}, 0, err
	}
	return head, 0, nil
}

func (rd *Reader) readSubjectAnon() (Node, StatementFlags, error) {
	if st := rd.advance(); st.IsError() { // consume '['
		return Node{}, 0, rd.errAt(st, "blank node property list")
	}
	if err := rd.skipWSCommentsAndNewlines(); err != nil {
		return Node{}, 0, err
	}
	if rd.peek() == ']' {
		if st := rd.advance(); st.IsError() {
			return Node{}, 0, rd.errAt(st, "blank node property list")
		}
		return NewBlank(rd.nextBlankLabel()), EmptyS, nil
	}
	b := NewBlank(rd.nextBlankLabel())
	if err := rd.emitPredicateObjectList(b, AnonS); err != nil {
		return Node{}, 0, err
	}
	if err := rd.skipWSCommentsAndNewlines(); err != nil {
		return Node{}, 0, err
	}
	if rd.peek() != ']' {
		return Node{}, 0, rd.errAt(BadSyntax, "expected ']' closing blank node property list")
	}
	if st := rd.advance(); st.IsError() {
		return Node{}, 0, rd.errAt(st, "blank node property list")
	}
	ev := EndEvent(b)
	ev.Caret = rd.src.Caret()
	if err := rd.sink.OnEvent(ev); err != nil {
		return Node{}, 0, err
	}
	return b, 0, nil
}

// emitPredicateObjectList parses and emits a Turtle predicateObjectList
// for subject: ';'-separated
// verb/objectList groups, each objectList being ','-separated objects.
// firstFlag is OR'd into the very first statement emitted for this
// subject only (used to carry EmptyS/AnonS/ListS from the caller).
func (rd *Reader) emitPredicateObjectList(subject Node, firstFlag StatementFlags) error {
	applied := false
	nextFlag := func() StatementFlags {
		if applied {
			return 0
		}
		applied = true
		return firstFlag
	}

	for {
		if err := rd.skipWSCommentsAndNewlines(); err != nil {
			return err
		}
		predicate, err := rd.readPredicateTerm()
		if err != nil {
			return err
		}
		if err := rd.skipWSCommentsAndNewlines(); err != nil {
			return err
		}

		for {
			if err := rd.emitLinkedValue(subject, predicate, nextFlag()); err != nil {
				return err
			}
			if err := rd.skipWSCommentsAndNewlines(); err != nil {
				return err
			}
			if rd.peek() != ',' {
				break
			}
			if st := rd.advance(); st.IsError() {
				return rd.errAt(st, "object list")
			}
			if err := rd.skipWSCommentsAndNewlines(); err != nil {
				return err
			}
		}

		if rd.peek() != ';' {
			return nil
		}
		if st := rd.advance(); st.IsError() {
			return rd.errAt(st, "predicate-object list")
		}
		if err := rd.skipWSCommentsAndNewlines(); err != nil {
			return err
		}
		switch rd.peek() {
		case '.', ']', '}', ';':
			// Trailing ';' tolerated.
			if rd.peek() == ';' {
				if st := rd.advance(); st.IsError() {
					return rd.errAt(st, "predicate-object list")
				}
				if err := rd.skipWSCommentsAndNewlines(); err != nil {
					return err
				}
				if rd.peek() == '.' || rd.peek() == ']' || rd.peek() == '}' {
					return nil
				}
				continue
			}
			return nil
		default:
			continue
		}
	}
}

// readPredicateTerm reads a predicate: an IRIREF, a CURIE, the 'a'
// keyword (rewritten to rdf:type unless it extends into a prefixed
// name), or a variable.
func (rd *Reader) readPredicateTerm() (Node, error) {
	switch rd.peek() {
	case '<':
		return rd.readIRIREF()
	case '?', '$':
		if rd.cfg.Flags&ReadVariables == 0 {
			return Node{}, rd.errAt(BadSyntax, "variables not enabled")
		}
		return rd.readVariableTerm()
	case 'a':
		mark := rd.stack.size()
		rd.stack.pushByte('a')
		if st := rd.advance(); st.IsError() {
			return Node{}, rd.errAt(st, "predicate")
		}
		next, _ := rd.decodeCurrentRune()
		if isPnLocalContinuation(next) && next != ':' {
			// "a" extends into a prefixed local name, e.g. "axiom:".
			rd.stack.popTo(mark)
			return rd.readPrefixedNameTermFrom("a")
		}
		if next == ':' {
			rd.stack.popTo(mark)
			return rd.readPrefixedNameTermFrom("a")
		}
		rd.stack.popTo(mark)
		return nodeRDFType, nil
	default:
		return rd.readPrefixedNameTerm()
	}
}

// readPrefixedNameTerm reads a CURIE (prefix:local, :local, or a bare
// numeric/boolean/literal handled by readValueNode instead) in
// subject/predicate position.
func (rd *Reader) readPrefixedNameTerm() (Node, error) {
	return rd.readPrefixedNameTermFrom("")
}

// readPrefixedNameTermFrom continues reading a prefixed name whose
// first already-consumed byte(s) are given in prefixSoFar (used by the
// 'a' keyword disambiguation).
func (rd *Reader) readPrefixedNameTermFrom(prefixSoFar string) (Node, error) {
	mark := rd.stack.size()
	if prefixSoFar != "" {
		rd.stack.push([]byte(prefixSoFar))
	}
	if rd.peek() != ':' {
		r, w := rd.decodeCurrentRune()
		if prefixSoFar == "" && !isPnCharsBase(r) {
			rd.stack.popTo(mark)
			return Node{}, rd.errAt(BadSyntax, "unexpected character %q", r)
		}
		for {
			r, w = rd.decodeCurrentRune()
			if r == ':' {
				break
			}
			if r == '.' {
				saved := rd.stack.size()
				if err := rd.consumeRuneBytes(r, w); err != nil {
					return Node{}, err
				}
				if rd.peek() == ':' {
					continue
				}
				nr, _ := rd.decodeCurrentRune()
				if isPnChars(nr) {
					continue
				}
				rd.stack.popTo(saved)
				return Node{}, rd.errAt(BadSyntax, "invalid prefix: unexpected end")
			}
			if !isPnChars(r) {
				rd.stack.popTo(mark)
				return Node{}, rd.errAt(BadSyntax, "invalid prefix label")
			}
			if err := rd.consumeRuneBytes(r, w); err != nil {
				return Node{}, err
			}
		}
	}
	prefix := rd.stack.stringFrom(mark)
	if st := rd.advance(); st.IsError() { // consume ':'
		return Node{}, rd.errAt(st, "prefixed name")
	}
	local, err := rd.readPNLocal()
	if err != nil {
		return Node{}, err
	}
	return NewCURIE(prefix + ":" + local), nil
}

// readPNLocal reads a PN_LOCAL production, which may be empty.
func (rd *Reader) readPNLocal() (string, error) {
	r, _ := rd.decodeCurrentRune()
	if !isPnLocalFirst(r) {
		return "", nil
	}
	mark := rd.stack.size()
	for {
		r, w := rd.decodeCurrentRune()
		if r == '\\' {
			rd.stack.pushByte('\\')
			if st := rd.advance(); st.IsError() {
				return "", rd.errAt(st, "PN_LOCAL escape")
			}
			esc := rd.peek()
			if !isPnLocalEscapable(esc) {
				return "", rd.errAt(BadSyntax, "invalid escape character %q in local name", esc)
			}
			rd.stack.pushByte(esc)
			if st := rd.advance(); st.IsError() {
				return "", rd.errAt(st, "PN_LOCAL escape")
			}
			continue
		}
		if r == '%' {
			rd.stack.pushByte('%')
			if st := rd.advance(); st.IsError() {
				return "", rd.errAt(st, "PN_LOCAL escape")
			}
			for i := 0; i < 2; i++ {
				if !isHexDigit(rune(rd.peek())) {
					return "", rd.errAt(BadSyntax, "invalid hex escape sequence")
				}
				rd.stack.pushByte(rd.peek())
				if st := rd.advance(); st.IsError() {
					return "", rd.errAt(st, "PN_LOCAL escape")
				}
			}
			continue
		}
		if !isPnLocalMid(r) {
			break
		}
		if err := rd.consumeRuneBytes(r, w); err != nil {
			return "", err
		}
	}
	raw := rd.stack.bytesFrom(mark)
	// Trailing unescaped '.' bytes are not part of PN_LOCAL; they are
	// returned to the input, where the last one ends the statement.
	dots := 0
	for n := len(raw); n > 0 && raw[n-1] == '.' && (n < 2 || raw[n-2] != '\\'); n-- {
		dots++
	}
	if dots > 0 {
		rd.pushback(raw[len(raw)-dots:])
		rd.stack.pop(dots)
	}
	return unescapeReserved(rd.stack.stringFrom(mark)), nil
}

// emitLinkedValue parses one object value for (subject, predicate) and
// emits the resulting STATEMENT event (plus, for anon/list shapes, the
// nested description that follows it).
func (rd *Reader) emitLinkedValue(subject, predicate Node, extraFlag StatementFlags) error {
	node, shape, after, err := rd.readValueNode(true)
	if err != nil {
		return err
	}
	flags := shapeObjectFlag(shape) | extraFlag
	ev := rd.buildStatementEvent(flags, subject, predicate, node)
	if err := rd.sink.OnEvent(ev); err != nil {
		return err
	}
	if after != nil {
		return after(0)
	}
	return nil
}

// emitCollectionElements parses a collection's ( element* ), chaining
// rdf:first/rdf:rest statements from head, and consumes the closing
// ')'. extraFirstFlag is OR'd into the very first rdf:first statement
// (ListS when head is itself a subject's collection, 0 when after
// is invoked for an object-position collection whose enclosing
// statement already carries ListO).
func (rd *Reader) emitCollectionElements(head Node, extraFirstFlag StatementFlags) error {
	cur := head
	first := true
	for {
		if err := rd.skipWSCommentsAndNewlines(); err != nil {
			return err
		}
		flag := StatementFlags(0)
		if first {
			flag = extraFirstFlag
			first = false
		}
		node, shape, after, err := rd.readValueNode(true)
		if err != nil {
			return err
		}
		ev := rd.buildStatementEvent(shapeObjectFlag(shape)|flag, cur, nodeRDFFirst, node)
		if err := rd.sink.OnEvent(ev); err != nil {
			return err
		}
		if after != nil {
			if err := after(0); err != nil {
				return err
			}
		}
		if err := rd.skipWSCommentsAndNewlines(); err != nil {
			return err
		}
		if rd.peek() == ')' {
			restEv := rd.buildStatementEvent(0, cur, nodeRDFRest, nodeRDFNil)
			if err := rd.sink.OnEvent(restEv); err != nil {
				return err
			}
			return wrapStatus(rd.advance(), rd, "collection")
		}
		next := NewBlank(rd.nextBlankLabel())
		restEv := rd.buildStatementEvent(0, cur, nodeRDFRest, next)
		if err := rd.sink.OnEvent(restEv); err != nil {
			return err
		}
		cur = next
	}
}

// readValueNode reads one object-position value: a literal (if
// allowLiteral), an IRI, a CURIE, a blank label, a numeric or boolean
// literal, a variable, an inline blank-node description, or a
// collection. For the latter two, the returned "after"
// closure emits the nested description once the caller has emitted
// the enclosing/linking statement.
func (rd *Reader) readValueNode(allowLiteral bool) (Node, valueShape, func(StatementFlags) error, error) {
	switch b := rd.peek(); {
	case b == '<':
		n, err := rd.readIRIREF()
		return n, shapePlain, nil, err
	case b == '_':
		n, err := rd.readBlankNodeTerm()
		return n, shapePlain, nil, err
	case (b == '?' || b == '$') && rd.cfg.Flags&ReadVariables != 0:
		n, err := rd.readVariableTerm()
		return n, shapePlain, nil, err
	case allowLiteral && (b == '"' || b == '\''):
		n, err := rd.readValueLiteral()
		return n, shapePlain, nil, err
	case b == '+' || b == '-':
		n, err := rd.readSignedNumber()
		return n, shapePlain, nil, err
	case isDigit(rune(b)):
		n, err := rd.readNumber("")
		return n, shapePlain, nil, err
	case b == '(':
		return rd.readObjectCollection()
	case b == '[':
		return rd.readObjectAnon()
	case b == 't':
		if rd.tryConsumeBooleanKeyword("true") {
			return NewBooleanLiteral(true), shapePlain, nil, nil
		}
		n, err := rd.readPrefixedNameTerm()
		return n, shapePlain, nil, err
	case b == 'f':
		if rd.tryConsumeBooleanKeyword("false") {
			return NewBooleanLiteral(false), shapePlain, nil, nil
		}
		n, err := rd.readPrefixedNameTerm()
		return n, shapePlain, nil, err
	default:
		n, err := rd.readPrefixedNameTerm()
		return n, shapePlain, nil, err
	}
}

// tryConsumeBooleanKeyword consumes kw ("true" or "false") if it is
// not immediately followed by a character that could continue a
// PN_LOCAL production — otherwise this is the start of a prefixed
// name like "trueX", not a boolean literal.
func (rd *Reader) tryConsumeBooleanKeyword(kw string) bool {
	consumed := make([]byte, 0, len(kw))
	for i := 0; i < len(kw); i++ {
		if rd.peek() != kw[i] {
			rd.pushback(consumed)
			return false
		}
		consumed = append(consumed, rd.peek())
		if st := rd.advance(); st.IsError() {
			rd.pushback(consumed)
			return false
		}
	}
	next, _ := rd.decodeCurrentRune()
	if isPnLocalContinuation(next) {
		rd.pushback(consumed)
		return false
	}
	return true
}

func (rd *Reader) readSignedNumber() (Node, error) {
	sign := string(rd.peek())
	if st := rd.advance(); st.IsError() {
		return Node{}, rd.errAt(st, "numeric literal")
	}
	return rd.readNumber(sign)
}

// readValueLiteral reads a Turtle/TriG literal: a short or long quoted
// string, optionally followed by a language tag or datatype IRIREF or
// CURIE.
func (rd *Reader) readValueLiteral() (Node, error) {
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
		var dt Node
		if rd.peek() == '<' {
			dt, err = rd.readIRIREF()
		} else {
			dt, err = rd.readPrefixedNameTerm()
		}
		if err != nil {
			return Node{}, err
		}
		return NewTypedLiteral(value, dt), nil
	default:
		return NewPlainLiteral(value, ""), nil
	}
}

func (rd *Reader) readObjectCollection() (Node, valueShape, func(StatementFlags) error, error) {
	if st := rd.advance(); st.IsError() { // consume '('
		return Node{}, 0, nil, rd.errAt(st, "collection")
	}
	if err := rd.skipWSCommentsAndNewlines(); err != nil {
		return Node{}, 0, nil, err
	}
	if rd.peek() == ')' {
		if st := rd.advance(); st.IsError() {
			return Node{}, 0, nil, rd.errAt(st, "collection")
		}
		return nodeRDFNil, shapePlain, nil, nil
	}
	head := NewBlank(rd.nextBlankLabel())
	after := func(extra StatementFlags) error {
		return rd.emitCollectionElements(head, extra)
	}
	return head, shapeList, after, nil
}

func (rd *Reader) readObjectAnon() (Node, valueShape, func(StatementFlags) error, error) {
	if st := rd.advance(); st.IsError() { // consume '['
		return Node{}, 0, nil, rd.errAt(st, "blank node property list")
	}
	if err := rd.skipWSCommentsAndNewlines(); err != nil {
		return Node{}, 0, nil, err
	}
	if rd.peek() == ']' {
		if st := rd.advance(); st.IsError() {
			return Node{}, 0, nil, rd.errAt(st, "blank node property list")
		}
		return NewBlank(rd.nextBlankLabel()), shapeEmpty, nil, nil
	}
	b := NewBlank(rd.nextBlankLabel())
	after := func(extra StatementFlags) error {
		if err := rd.emitPredicateObjectList(b, extra); err != nil {
			return err
		}
		if err := rd.skipWSCommentsAndNewlines(); err != nil {
			return err
		}
		if rd.peek() != ']' {
			return rd.errAt(BadSyntax, "expected ']' closing blank node property list")
		}
		if st := rd.advance(); st.IsError() {
			return rd.errAt(st, "blank node property list")
		}
		ev := EndEvent(b)
		ev.Caret = rd.src.Caret()
		return rd.sink.OnEvent(ev)
	}
	return b, shapeAnon, after, nil
}
