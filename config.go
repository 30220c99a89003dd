package serd

// Syntax selects which of the four grammars a Reader or Writer targets.
type Syntax int

const (
	SyntaxNTriples Syntax = iota
	SyntaxNQuads
	SyntaxTurtle
	SyntaxTriG
)

func (s Syntax) String() string {
	switch s {
	case SyntaxNTriples:
		return "N-Triples"
	case SyntaxNQuads:
		return "N-Quads"
	case SyntaxTurtle:
		return "Turtle"
	case SyntaxTriG:
		return "TriG"
	default:
		return "unknown"
	}
}

// supportsDirectives reports whether the syntax has @prefix/@base (or
// SPARQL PREFIX/BASE) directives at all.
func (s Syntax) supportsDirectives() bool {
	return s == SyntaxTurtle || s == SyntaxTriG
}

// supportsGraphs reports whether the syntax can scope statements to a
// named graph.
func (s Syntax) supportsGraphs() bool {
	return s == SyntaxNQuads || s == SyntaxTriG
}

// isLineBased reports whether the syntax is one statement per line
// (N-Triples/N-Quads) rather than block-structured (Turtle/TriG).
func (s Syntax) isLineBased() bool {
	return s == SyntaxNTriples || s == SyntaxNQuads
}

// ReaderFlags is the reader configuration bitmask.
type ReaderFlags uint

const (
	ReadLax       ReaderFlags = 1 << iota // tolerate and skip to next line on recoverable errors
	ReadVariables                         // enable ?var / $var
	ReadRelative                          // keep relative URIs as-is, don't resolve against base
	ReadGlobal                            // disable per-reader blank-label namespacing
	ReadGenerated                         // no effect: the reader always generates blank labels for anonymous forms
)

// ReaderConfig configures a Reader's behavior beyond the grammar it
// targets.
type ReaderConfig struct {
	Flags       ReaderFlags
	BlockSize   int    // byte source page size; 1 disables paging
	BlankPrefix string // prefix applied to every generated blank label
	DocumentName string
	Logger      Logger
}

// WriterFlags is the writer configuration bitmask.
type WriterFlags uint

const (
	WriteEscaped    WriterFlags = 1 << iota // escape all non-ASCII as \uXXXX/\UXXXXXXXX
	WriteExpanded                           // never abbreviate URIs as CURIEs
	WriteVerbatim                           // never resolve/relativize URIs against base
	WriteTerse                              // no effect: anonymous/list blocks render the same with or without it
	WriteLax                                // substitute U+FFFD for invalid UTF-8 instead of failing
	WriteContextual                         // don't re-emit BASE/PREFIX directives (caller already declared them)
	WriteLonghand                           // never abbreviate rdf:type as 'a'
)

// WriterConfig configures a Writer.
type WriterConfig struct {
	Flags     WriterFlags
	BlockSize int // output block size; 1 disables buffering
	RootURI   string
	Env       *Env
	Logger    Logger
}
