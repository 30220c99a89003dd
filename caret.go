package serd

import "fmt"

// Caret identifies a byte position in an input document: the document's
// name (commonly a file:// URI or a synthetic name for in-memory
// input), a 1-based line number, and a 1-based column number.
type Caret struct {
	Name   Node
	Line   int
	Column int
}

// NewCaret returns a Caret positioned at the start of a document named
// by name (an empty name is valid: in-memory sources without a
// meaningful document identity use it).
func NewCaret(name string) Caret {
	return Caret{Name: NewURI(name), Line: 1, Column: 1}
}

// advanceByte updates the caret for having just consumed b. A newline
// moves to the next line and resets the column; anything else
// (including continuation bytes of a multi-byte UTF-8 sequence) simply
// advances the column by one, since columns are measured in bytes,
// not runes.
func (c *Caret) advanceByte(b byte) {
	if b == '\n' {
		c.Line++
		c.Column = 0
		return
	}
	c.Column++
}

func (c Caret) String() string {
	name := c.Name.Value
	if name == "" {
		name = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", name, c.Line, c.Column)
}
