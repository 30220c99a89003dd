package serd

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// writeNode emits n according to its Kind, resolving/abbreviating URIs
// and choosing a literal's quoting form as described for node emission.
func (w *Writer) writeNode(n Node) error {
	switch n.Kind {
	case KindURI:
		return w.writeURI(n.Value)
	case KindCURIE:
		return w.writeCURIE(n.Value)
	case KindBlank:
		return w.writeBlank(n.Value)
	case KindLiteral:
		return w.writeLiteral(n)
	case KindVariable:
		return w.writeVariable(n.Value)
	default:
		return errors.Wrapf(BadArg, "writer: node has unknown kind %d", n.Kind)
	}
}

// writePredicateTerm emits a predicate, abbreviating rdf:type as "a"
// unless WriteLonghand is set or the target syntax has no shorthand.
func (w *Writer) writePredicateTerm(n Node) error {
	if n.Kind == KindURI && n.Value == RDFType && w.flags&WriteLonghand == 0 && w.syntax.supportsDirectives() {
		return w.raw("a")
	}
	return w.writeNode(n)
}

// writeURI resolves raw (unless WriteVerbatim) against the writer's
// current base, then picks the first applicable rendering in this
// order: a root-relative reference, a CURIE, or a bracketed absolute
// IRI. Rendering lengths are not compared.
func (w *Writer) writeURI(raw string) error {
	resolved := raw
	if w.flags&WriteVerbatim == 0 {
		parsed := ParseURI(raw)
		if !parsed.IsAbsolute() && w.base != nil {
			resolved = Resolve(parsed, *w.base).String()
		} else if parsed.IsAbsolute() {
			resolved = parsed.String()
		}
	}

	if w.flags&WriteVerbatim == 0 && w.root != nil && w.base != nil {
		rel := Relativize(ParseURI(resolved), *w.base, *w.root)
		if candidate := rel.String(); candidate != resolved {
			return w.writeBracketedURI(candidate)
		}
	}

	if w.flags&WriteExpanded == 0 {
		if prefix, suffix, ok := w.env.Qualify(resolved); ok {
			return w.raw(prefix + ":" + suffix)
		}
	}
	return w.writeBracketedURI(resolved)
}

func (w *Writer) writeBracketedURI(s string) error {
	if err := w.raw("<"); err != nil {
		return err
	}
	if err := w.writeEscapedIRI(s); err != nil {
		return err
	}
	return w.raw(">")
}

// writeEscapedIRI emits s inside IRIREF brackets, escaping space and
// the characters < " { } | ^ ` as \u escapes. Other characters,
// including '>', '\' and control characters, are written unchanged.
func (w *Writer) writeEscapedIRI(s string) error {
	var b strings.Builder
	for _, r := range s {
		if isBadIRIRune(r) {
			b.WriteString(escapeRune(r))
			continue
		}
		b.WriteRune(r)
	}
	return w.raw(b.String())
}

// writeCURIE re-expands curie through the environment and re-emits it
// as a URI when WriteExpanded is set (the environment binding the
// writer trusts may not be the one the caller ultimately wants
// visible); otherwise it is emitted as-is.
func (w *Writer) writeCURIE(curie string) error {
	if w.flags&WriteExpanded == 0 {
		return w.raw(curie)
	}
	abs, err := w.env.Expand(curie)
	if err != nil {
		return err
	}
	return w.writeURI(abs)
}

func (w *Writer) writeBlank(label string) error {
	return w.raw("_:" + label)
}

func (w *Writer) writeVariable(name string) error {
	if !w.syntax.supportsDirectives() {
		return errors.Wrapf(BadArg, "writer: variable %q not valid for syntax %s", name, w.syntax)
	}
	return w.raw("?" + name)
}

// writeLiteral picks between short- and long-quoted forms and emits
// the lexical value, its language tag, or its datatype IRI.
func (w *Writer) writeLiteral(n Node) error {
	if w.flags&WriteLax == 0 && !utf8.ValidString(n.Value) {
		return errors.Wrap(BadText, "writer: invalid UTF-8 in literal")
	}
	long := w.syntax.supportsDirectives() && n.Flags&HasQuote != 0 && n.Flags&HasNewline != 0
	if long {
		if err := w.writeLongQuoted(n.Value); err != nil {
			return err
		}
	} else {
		if err := w.writeShortQuoted(n.Value); err != nil {
			return err
		}
	}
	switch {
	case n.Flags&HasLanguage != 0:
		lang, _ := n.Language()
		return w.raw("@" + lang)
	case n.Flags&HasDatatype != 0:
		dt, _ := n.Datatype()
		if dt.Kind == KindURI && dt.Value == XSDString {
			return nil
		}
		if err := w.raw("^^"); err != nil {
			return err
		}
		return w.writeNode(dt)
	default:
		return nil
	}
}

func (w *Writer) writeShortQuoted(s string) error {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			w.writeRune(&b, r)
		}
	}
	b.WriteByte('"')
	return w.raw(b.String())
}

// writeLongQuoted emits s between triple double-quotes, escaping only
// '\\' and runs of three or more embedded quote characters (two in a
// row are left bare, matching the grammar's allowance).
func (w *Writer) writeLongQuoted(s string) error {
	var b strings.Builder
	b.WriteString(`"""`)
	run := 0
	for _, r := range s {
		if r == '"' {
			run++
			if run >= 3 {
				b.WriteString(`\"`)
				run = 0
				continue
			}
			b.WriteByte('"')
			continue
		}
		run = 0
		if r == '\\' {
			b.WriteString(`\\`)
			continue
		}
		w.writeRune(&b, r)
	}
	b.WriteString(`"""`)
	return w.raw(b.String())
}

// writeRune appends r to b, in WriteEscaped mode rendering any
// non-ASCII rune as \uXXXX (or \UXXXXXXXX above the BMP) instead of
// its literal UTF-8 bytes.
func (w *Writer) writeRune(b *strings.Builder, r rune) {
	if w.flags&WriteEscaped == 0 || r < 0x80 {
		if r == utf8.RuneError && w.flags&WriteLax != 0 {
			b.WriteRune(utf8.RuneError)
			return
		}
		b.WriteRune(r)
		return
	}
	b.WriteString(escapeRune(r))
}

func escapeRune(r rune) string {
	if r > 0xFFFF {
		return "\\U" + padHex(strconv.FormatInt(int64(r), 16), 8)
	}
	return "\\u" + padHex(strconv.FormatInt(int64(r), 16), 4)
}

func padHex(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
