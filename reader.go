package serd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Reader is a hand-written recursive-descent parser unifying the four
// line/document RDF syntaxes over a shared N-Triples substrate
// (escapes, IRIs, blank labels, literals), with Turtle/TriG adding
// prefixes, CURIEs, collections, anonymous blank-node descriptions,
// numeric/boolean literals, named graphs, and SPARQL-style BASE/PREFIX
// directives.
type Reader struct {
	src    *Source
	sink   Sink
	syntax Syntax
	cfg    ReaderConfig
	stack  *growStack
	env    *Env
	logger Logger

	bnodeCounter int
	readerID     int

	// openGraph is the currently open TriG graph name, if any.
	openGraph   Node
	inOpenGraph bool

	// pending holds bytes already consumed from src that were pushed
	// back: by a speculative keyword match (matchKeywordCI,
	// tryConsumeBooleanKeyword) after a mismatch, or as a '.' that ends
	// a blank label, local name or number rather than belonging to it;
	// peek/advance/atEOF drain this before touching src,
	// giving the reader a small amount of pushback that the underlying
	// Source (single-byte Peek only) does not itself support.
	pending []byte
}

var readerInstances int

// NewReader constructs a Reader over r, targeting syntax, delivering
// events to sink. cfg.BlockSize controls the underlying Source's page
// size (a paging Source is built internally); cfg.DocumentName names
// the input for Caret diagnostics. Callers who already hold a Source
// (e.g. to share one page buffer across several readers) should use
// NewReaderFromSource instead.
func NewReader(r io.Reader, syntax Syntax, sink Sink, cfg ReaderConfig) *Reader {
	return NewReaderFromSource(NewSource(r, cfg.BlockSize, cfg.DocumentName), syntax, sink, cfg)
}

// NewReaderFromSource constructs a Reader over an already-built Source,
// for callers that need direct control over paging (L1) separately
// from parsing (M2).
func NewReaderFromSource(src *Source, syntax Syntax, sink Sink, cfg ReaderConfig) *Reader {
	readerInstances++
	rd := &Reader{
		src:      src,
		sink:     sink,
		syntax:   syntax,
		cfg:      cfg,
		stack:    newStack(256),
		env:      NewEnv(),
		logger:   cfg.Logger,
		readerID: readerInstances,
	}
	if rd.logger == nil {
		rd.logger = NewLogger(nil)
	}
	return rd
}

// Canonical node values, held in package-level variables that every
// Reader shares; a Reader has no copies of its own.
var (
	nodeRDFFirst = NewURI(RDFFirst)
	nodeRDFRest  = NewURI(RDFRest)
	nodeRDFNil   = NewURI(RDFNil)
	nodeRDFType  = NewURI(RDFType)
)

// ReadDocument drives the reader until EOF or an unrecoverable error.
func (rd *Reader) ReadDocument() error {
	if st := rd.src.Prepare(); st.IsError() {
		return errors.Wrap(st, "reader: prepare")
	}
	if st := rd.src.SkipBOM(); st.IsError() {
		return errors.Wrap(st, "reader: skip BOM")
	}

	for {
		if rd.atEOF() {
			return nil
		}
		var err error
		if rd.syntax.isLineBased() {
			err = rd.readLine()
		} else {
			err = rd.readTurtleStatement()
		}
		if err == nil {
			continue
		}
		st, isStatus := errors.Cause(err).(Status)
		if isStatus && st == Failure {
			continue
		}
		if !isStatus {
			// A sink error: never recoverable, propagate immediately.
			return err
		}
		if rd.cfg.Flags&ReadLax == 0 || st.IsFatal() {
			return err
		}
		rd.logWarning(err)
		if serr := rd.skipToNextLine(); serr != nil {
			return serr
		}
	}
}

// skipToNextLine discards input up to and including the next '\n',
// popping the stack back to wherever it was before the failed
// production started.
func (rd *Reader) skipToNextLine() error {
	rd.stack.popTo(0)
	for {
		if rd.atEOF() {
			return nil
		}
		b := rd.peek()
		if st := rd.advance(); st.IsError() {
			return errors.Wrap(st, "reader: recovery advance")
		}
		if b == '\n' {
			return nil
		}
	}
}

func (rd *Reader) logWarning(err error) {
	c := rd.src.Caret()
	rd.logger.LogRecord(SeverityWarning, caretFields(c), err.Error())
}

func (rd *Reader) errAt(st Status, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return errors.Wrapf(st, "%s: %s", rd.src.Caret(), msg)
}

// nextBlankLabel returns a fresh, reader-unique blank label for a
// generated (anonymous or collection-head) blank node.
func (rd *Reader) nextBlankLabel() string {
	rd.bnodeCounter++
	prefix := rd.cfg.BlankPrefix
	if rd.cfg.Flags&ReadGlobal == 0 {
		return fmt.Sprintf("%sg%db%d", prefix, rd.readerID, rd.bnodeCounter)
	}
	return fmt.Sprintf("%sb%d", prefix, rd.bnodeCounter)
}

// --- shared substrate: bytes, whitespace, comments ---

func (rd *Reader) peek() byte {
	if len(rd.pending) > 0 {
		return rd.pending[0]
	}
	return rd.src.Peek()
}

func (rd *Reader) advance() Status {
	if len(rd.pending) > 0 {
		rd.pending = rd.pending[1:]
		return Success
	}
	return rd.src.Advance()
}

// atEOF reports true end of input: no pushed-back bytes left to
// replay, and the underlying Source itself exhausted.
func (rd *Reader) atEOF() bool {
	return len(rd.pending) == 0 && rd.src.AtEOF()
}

// pushback returns bytes already consumed from src to the front of the
// reader's input, for speculative-match rollback and for returning a
// statement-ending '.' that a token scan had to consume to look past.
func (rd *Reader) pushback(b []byte) {
	rd.pending = append(append([]byte(nil), b...), rd.pending...)
}

// skipInlineWS consumes ' ' and '\t', not newlines.
func (rd *Reader) skipInlineWS() error {
	for rd.peek() == ' ' || rd.peek() == '\t' {
		if st := rd.advance(); st.IsError() {
			return errors.Wrap(st, "skip whitespace")
		}
	}
	return nil
}

// skipWSCommentsAndNewlines consumes whitespace, comments, and
// newlines, as Turtle/TriG allow between any two tokens.
func (rd *Reader) skipWSCommentsAndNewlines() error {
	for {
		switch rd.peek() {
		case ' ', '\t', '\r', '\n':
			if st := rd.advance(); st.IsError() {
				return errors.Wrap(st, "skip whitespace")
			}
		case '#':
			for rd.peek() != '\n' && rd.peek() != 0 && !rd.atEOF() {
				if st := rd.advance(); st.IsError() {
					return errors.Wrap(st, "skip comment")
				}
			}
		default:
			return nil
		}
	}
}

// --- IRIREF ---

// readIRIREF reads an IRIREF ('<' ... '>') already positioned at '<',
// resolving relative references against the environment's base unless
// ReadRelative is set.
func (rd *Reader) readIRIREF() (Node, error) {
	if st := rd.advance(); st.IsError() { // consume '<'
		return Node{}, rd.errAt(st, "IRIREF")
	}
	mark := rd.stack.size()
	for {
		b := rd.peek()
		if rd.atEOF() {
			rd.stack.popTo(mark)
			return Node{}, rd.errAt(BadSyntax, "unterminated IRIREF, missing '>'")
		}
		if b == '>' {
			break
		}
		r, w := rd.decodeCurrentRune()
		if isBadIRIRune(r) {
			rd.stack.popTo(mark)
			return Node{}, rd.errAt(BadSyntax, "disallowed character %q in IRIREF", r)
		}
		if b == '\\' {
			if err := rd.consumeIRIEscape(); err != nil {
				rd.stack.popTo(mark)
				return Node{}, err
			}
			continue
		}
		if err := rd.consumeRuneBytes(r, w); err != nil {
			rd.stack.popTo(mark)
			return Node{}, err
		}
	}
	if st := rd.advance(); st.IsError() { // consume '>'
		return Node{}, rd.errAt(st, "IRIREF")
	}
	raw := rd.stack.stringFrom(mark)
	unescaped := unescapeNumeric(raw)

	if rd.cfg.Flags&ReadRelative != 0 {
		return NewURI(unescaped), nil
	}
	parsed := ParseURI(unescaped)
	if parsed.IsAbsolute() {
		return NewURI(unescaped), nil
	}
	if base := rd.env.Base(); base.Value != "" {
		resolved := Resolve(parsed, ParseURI(base.Value))
		return NewURI(resolved.String()), nil
	}
	return NewURI(unescaped), nil
}

// decodeCurrentRune classifies (without consuming) the byte at the
// reader's current position. Source only exposes a single-byte Peek,
// so this does not decode multi-byte runes: for an ASCII byte it
// returns that rune with width 1; for a UTF-8 lead byte it returns the
// lead byte's own value as the rune, with the sequence length implied
// by that lead byte as the width; any other byte is returned as its
// own value with width 1. consumeRuneBytes then copies that many bytes
// onto the stack unchanged.
func (rd *Reader) decodeCurrentRune() (rune, int) {
	b := rd.peek()
	if b < 0x80 {
		return rune(b), 1
	}
	// Determine expected width from the lead byte.
	switch {
	case b&0xE0 == 0xC0:
		return rune(b), 2
	case b&0xF0 == 0xE0:
		return rune(b), 3
	case b&0xF8 == 0xF0:
		return rune(b), 4
	default:
		return rune(b), 1
	}
}

// consumeRuneBytes pushes the next w bytes (the rune starting at the
// source's current position) onto the stack and advances past them.
func (rd *Reader) consumeRuneBytes(_ rune, w int) error {
	buf := make([]byte, 0, 4)
	for i := 0; i < w; i++ {
		buf = append(buf, rd.peek())
		if st := rd.advance(); st.IsError() {
			return rd.errAt(st, "read rune")
		}
	}
	rd.stack.push(buf)
	return nil
}

// consumeIRIEscape consumes a \uXXXX or \UXXXXXXXX escape inside an
// IRIREF, pushing the raw escape text (to be unescaped after the
// IRIREF is fully read).
func (rd *Reader) consumeIRIEscape() error {
	start := rd.stack.pushByte('\\')
	_ = start
	if st := rd.advance(); st.IsError() { // consume '\\'
		return rd.errAt(st, "IRIREF escape")
	}
	marker := rd.peek()
	var width int
	switch marker {
	case 'u':
		width = 4
	case 'U':
		width = 8
	default:
		return rd.errAt(BadSyntax, "disallowed escape character %q in IRIREF", marker)
	}
	rd.stack.pushByte(marker)
	if st := rd.advance(); st.IsError() {
		return rd.errAt(st, "IRIREF escape")
	}
	hexStart := rd.stack.size()
	for i := 0; i < width; i++ {
		if !isHexDigit(rune(rd.peek())) {
			return rd.errAt(BadSyntax, "insufficient hex digits in unicode escape")
		}
		rd.stack.pushByte(rd.peek())
		if st := rd.advance(); st.IsError() {
			return rd.errAt(st, "IRIREF escape")
		}
	}
	hexBytes := rd.stack.bytesFrom(hexStart)
	v, _ := strconv.ParseInt(string(hexBytes), 16, 32)
	if isBadIRIEscapedRune(rune(v)) {
		return rd.errAt(BadSyntax, "disallowed character in unicode escape")
	}
	return nil
}

// unescapeNumeric expands \t \b \n \r \f \" \' \\ \uXXXX \UXXXXXXXX
// escapes in s.
func unescapeNumeric(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			i++
			continue
		}
		i++
		if i >= len(s) {
			b.WriteByte('\\')
			break
		}
		switch s[i] {
		case 't':
			b.WriteByte('\t')
			i++
		case 'b':
			b.WriteByte('\b')
			i++
		case 'n':
			b.WriteByte('\n')
			i++
		case 'r':
			b.WriteByte('\r')
			i++
		case 'f':
			b.WriteByte('\f')
			i++
		case '"':
			b.WriteByte('"')
			i++
		case '\'':
			b.WriteByte('\'')
			i++
		case '\\':
			b.WriteByte('\\')
			i++
		case 'u':
			v, _ := strconv.ParseInt(s[i+1:i+5], 16, 32)
			b.WriteRune(rune(v))
			i += 5
		case 'U':
			v, _ := strconv.ParseInt(s[i+1:i+9], 16, 32)
			b.WriteRune(rune(v))
			i += 9
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}

// unescapeReserved expands only PN_LOCAL's '\'-escaped reserved
// characters.
func unescapeReserved(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isPnLocalEscapable(s[i+1]) {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// --- blank node labels ---

// readBlankLabel reads a BLANK_NODE_LABEL already positioned right
// after "_:"; a trailing dot is not part of the label and is left in
// the stream.
func (rd *Reader) readBlankLabel() (string, error) {
	mark := rd.stack.size()
	r, w := rd.decodeCurrentRune()
	if !isPnCharsU(r) && !isDigit(r) {
		rd.stack.popTo(mark)
		return "", rd.errAt(BadSyntax, "invalid character %q in blank node label", r)
	}
	if err := rd.consumeRuneBytes(r, w); err != nil {
		return "", err
	}
	for {
		r, w = rd.decodeCurrentRune()
		if r == '.' {
			// A dot is part of the label only if followed by more
			// PN_CHARS; otherwise it terminates the statement.
			saved := rd.stack.size()
			if err := rd.consumeRuneBytes(r, w); err != nil {
				return "", err
			}
			nr, _ := rd.decodeCurrentRune()
			if isPnChars(nr) {
				continue
			}
			rd.stack.popTo(saved)
			rd.pushback([]byte{'.'})
			break
		}
		if !isPnChars(r) {
			break
		}
		if err := rd.consumeRuneBytes(r, w); err != nil {
			return "", err
		}
	}
	return rd.stack.stringFrom(mark), nil
}

// --- string literals ---

// readStringLiteral reads a quoted literal body, already positioned at
// the opening quote character. It detects long-quoted (triple
// delimiter) forms and handles embedded escapes, returning the
// unescaped value.
func (rd *Reader) readStringLiteral() (string, error) {
	quote := rd.peek()
	if st := rd.advance(); st.IsError() {
		return "", rd.errAt(st, "string literal")
	}
	long := false
	if rd.peek() == quote {
		if st := rd.advance(); st.IsError() {
			return "", rd.errAt(st, "string literal")
		}
		if rd.peek() == quote {
			if st := rd.advance(); st.IsError() {
				return "", rd.errAt(st, "string literal")
			}
			long = true
		} else {
			// Empty single-quoted string: "" or ''.
			return "", nil
		}
	}

	mark := rd.stack.size()
	consecutiveQuotes := 0
	for {
		if rd.atEOF() {
			rd.stack.popTo(mark)
			return "", rd.errAt(BadSyntax, "unterminated string literal, missing closing quote")
		}
		b := rd.peek()
		switch {
		case b == byte(quote):
			if !long {
				if st := rd.advance(); st.IsError() {
					return "", rd.errAt(st, "string literal")
				}
				return unescapeNumeric(rd.stack.stringFrom(mark)), nil
			}
			// Long form: up to two embedded quotes are allowed; three
			// in a row close the literal.
			consecutiveQuotes++
			rd.stack.pushByte(b)
			if st := rd.advance(); st.IsError() {
				return "", rd.errAt(st, "string literal")
			}
			if consecutiveQuotes == 3 {
				rd.stack.pop(3)
				return unescapeNumeric(rd.stack.stringFrom(mark)), nil
			}
			continue
		case b == '\n' || b == '\r':
			if !long {
				rd.stack.popTo(mark)
				return "", rd.errAt(BadSyntax, "newline not allowed in single-quoted string")
			}
			consecutiveQuotes = 0
			rd.stack.pushByte(b)
			if st := rd.advance(); st.IsError() {
				return "", rd.errAt(st, "string literal")
			}
		case b == '\\':
			consecutiveQuotes = 0
			if err := rd.consumeStringEscape(); err != nil {
				rd.stack.popTo(mark)
				return "", err
			}
		default:
			consecutiveQuotes = 0
			r, w := rd.decodeCurrentRune()
			if err := rd.consumeRuneBytes(r, w); err != nil {
				return "", err
			}
		}
	}
}

func (rd *Reader) consumeStringEscape() error {
	rd.stack.pushByte('\\')
	if st := rd.advance(); st.IsError() { // consume '\\'
		return rd.errAt(st, "string escape")
	}
	esc := rd.peek()
	switch esc {
	case 't', 'b', 'n', 'r', 'f', '"', '\'', '\\':
		rd.stack.pushByte(esc)
		return wrapStatus(rd.advance(), rd, "string escape")
	case 'u', 'U':
		width := 4
		if esc == 'U' {
			width = 8
		}
		rd.stack.pushByte(esc)
		if st := rd.advance(); st.IsError() {
			return rd.errAt(st, "string escape")
		}
		for i := 0; i < width; i++ {
			if !isHexDigit(rune(rd.peek())) {
				return rd.errAt(BadSyntax, "insufficient hex digits in unicode escape")
			}
			rd.stack.pushByte(rd.peek())
			if st := rd.advance(); st.IsError() {
				return rd.errAt(st, "string escape")
			}
		}
		return nil
	default:
		return rd.errAt(BadSyntax, "disallowed escape character %q", esc)
	}
}

func wrapStatus(st Status, rd *Reader, what string) error {
	if st.IsError() {
		return rd.errAt(st, "%s", what)
	}
	return nil
}

// --- language tags ---

// readLangTag reads a LANGTAG already positioned right after '@'.
func (rd *Reader) readLangTag() (string, error) {
	mark := rd.stack.size()
	n := 0
	for isAlpha(rune(rd.peek())) {
		rd.stack.pushByte(rd.peek())
		if st := rd.advance(); st.IsError() {
			return "", rd.errAt(st, "language tag")
		}
		n++
	}
	if n == 0 {
		rd.stack.popTo(mark)
		return "", rd.errAt(BadSyntax, "invalid language tag")
	}
	for rd.peek() == '-' {
		rd.stack.pushByte('-')
		if st := rd.advance(); st.IsError() {
			return "", rd.errAt(st, "language tag")
		}
		m := 0
		for isAlphaOrDigit(rune(rd.peek())) {
			rd.stack.pushByte(rd.peek())
			if st := rd.advance(); st.IsError() {
				return "", rd.errAt(st, "language tag")
			}
			m++
		}
		if m == 0 {
			return "", rd.errAt(BadSyntax, "invalid language tag")
		}
	}
	return strings.ToLower(rd.stack.stringFrom(mark)), nil
}

// --- numeric and boolean literals ---

// readNumber reads an integer, decimal, or double literal starting at the source's current position. sign has already been
// consumed by the caller if present, and is passed so it is included
// in the lexical form.
func (rd *Reader) readNumber(sign string) (Node, error) {
	mark := rd.stack.size()
	if sign != "" {
		rd.stack.push([]byte(sign))
	}
	gotDot := false
	gotE := false
	digitsBeforeDot := false
	for isDigit(rune(rd.peek())) {
		rd.stack.pushByte(rd.peek())
		if st := rd.advance(); st.IsError() {
			return Node{}, rd.errAt(st, "numeric literal")
		}
		digitsBeforeDot = true
	}
	if rd.peek() == '.' {
		// A dot after the integer digits belongs to the number only if
		// a digit or an exponent follows it; otherwise it is returned
		// to the input, where it ends the statement. readNumber is only
		// entered at a digit or a sign, so the leading-dot form ".5"
		// is not accepted.
		if digitsBeforeDot {
			if st := rd.advance(); st.IsError() {
				return Node{}, rd.errAt(st, "numeric literal")
			}
			if next := rd.peek(); isDigit(rune(next)) || next == 'e' || next == 'E' {
				gotDot = true
				rd.stack.pushByte('.')
			} else {
				rd.pushback([]byte{'.'})
			}
			for gotDot && isDigit(rune(rd.peek())) {
				rd.stack.pushByte(rd.peek())
				if st := rd.advance(); st.IsError() {
					return Node{}, rd.errAt(st, "numeric literal")
				}
			}
		}
	}
	if rd.peek() == 'e' || rd.peek() == 'E' {
		gotE = true
		rd.stack.pushByte(rd.peek())
		if st := rd.advance(); st.IsError() {
			return Node{}, rd.errAt(st, "numeric literal")
		}
		if rd.peek() == '+' || rd.peek() == '-' {
			rd.stack.pushByte(rd.peek())
			if st := rd.advance(); st.IsError() {
				return Node{}, rd.errAt(st, "numeric literal")
			}
		}
		expDigits := 0
		for isDigit(rune(rd.peek())) {
			rd.stack.pushByte(rd.peek())
			if st := rd.advance(); st.IsError() {
				return Node{}, rd.errAt(st, "numeric literal")
			}
			expDigits++
		}
		if expDigits == 0 {
			rd.stack.popTo(mark)
			return Node{}, rd.errAt(BadSyntax, "illegal number syntax: missing exponent")
		}
	}
	lexical := rd.stack.stringFrom(mark)
	switch {
	case gotE:
		return NewTypedLiteral(lexical, NewURI(XSDDouble)), nil
	case gotDot:
		return NewTypedLiteral(lexical, NewURI(XSDDecimal)), nil
	default:
		return NewTypedLiteral(lexical, NewURI(XSDInteger)), nil
	}
}

// isPnLocalContinuation reports whether r is a character that could
// extend a PN_LOCAL production. The "true"/"false" keywords are only
// recognized as booleans when not immediately followed by one of
// these, so they aren't mistaken for the start of a prefixed name.
func isPnLocalContinuation(r rune) bool {
	return isPnLocalMid(r)
}
