package serd

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// prefixBinding is one (name, absolute-URI) entry in an Environment,
// kept in insertion order so Describe emits PREFIX events in the order
// they were declared.
type prefixBinding struct {
	name string
	uri  string
}

// Env is the base URI and prefix table shared by readers and writers.
// It also implements Sink, so a reader can write directly into an Env
// to track BASE/PREFIX directives as it forwards the same events
// downstream.
type Env struct {
	base    *URI
	baseStr string
	order   []string
	byName  map[string]string
}

// NewEnv returns an empty environment with no base URI and no
// prefixes.
func NewEnv() *Env {
	return &Env{byName: make(map[string]string)}
}

// Base returns the current base URI node, or the zero Node if none has
// been set.
func (e *Env) Base() Node {
	if e.base == nil {
		return Node{}
	}
	return NewURI(e.baseStr)
}

// SetBaseURI resolves view against the current base (if any) and
// replaces it. It fails BadArg if view is not absolute
// and there is no existing base to resolve it against.
func (e *Env) SetBaseURI(view string) error {
	parsed := ParseURI(view)
	var resolved URI
	if parsed.IsAbsolute() {
		resolved = parsed
	} else if e.base != nil {
		resolved = Resolve(parsed, *e.base)
	} else {
		return errors.Wrap(BadArg, "set base URI: relative reference with no existing base")
	}
	e.base = &resolved
	e.baseStr = resolved.String()
	return nil
}

// SetPrefix adds or updates a binding. If uri has no scheme, it is
// resolved against the current base first; BadArg results if neither
// gives an absolute URI.
func (e *Env) SetPrefix(name, uri string) error {
	parsed := ParseURI(uri)
	var resolved string
	switch {
	case parsed.IsAbsolute():
		resolved = uri
	case e.base != nil:
		resolved = Resolve(parsed, *e.base).String()
	default:
		return errors.Wrapf(BadArg, "set prefix %q: relative URI with no base", name)
	}
	if _, exists := e.byName[name]; !exists {
		e.order = append(e.order, name)
	}
	e.byName[name] = resolved
	return nil
}

// Lookup returns the absolute URI bound to name, and whether it exists.
func (e *Env) Lookup(name string) (string, bool) {
	v, ok := e.byName[name]
	return v, ok
}

// Qualify returns the longest bound prefix whose value is a byte
// prefix of absoluteURI, along with the remaining suffix, provided that
// suffix is a valid Turtle PN_LOCAL.
func (e *Env) Qualify(absoluteURI string) (prefix, suffix string, ok bool) {
	bestLen := -1
	for name, uri := range e.byName {
		if strings.HasPrefix(absoluteURI, uri) && len(uri) > bestLen {
			candidate := absoluteURI[len(uri):]
			if isValidPNLocal(candidate) {
				prefix, suffix, bestLen = name, candidate, len(uri)
			}
		}
	}
	return prefix, suffix, bestLen >= 0
}

// Expand looks up the prefix named before ':' in curie and returns its
// absolute URI plus the suffix after ':'. It fails
// BadArg if curie has no ':', BadCurie if the prefix is unbound.
func (e *Env) Expand(curie string) (string, error) {
	i := strings.IndexByte(curie, ':')
	if i < 0 {
		return "", errors.Wrapf(BadArg, "expand %q: missing ':'", curie)
	}
	name, suffix := curie[:i], curie[i+1:]
	base, ok := e.byName[name]
	if !ok {
		return "", errors.Wrapf(BadCurie, "expand %q: unbound prefix %q", curie, name)
	}
	return base + suffix, nil
}

// ExpandNode resolves n against the environment: a URI node is
// resolved against base, a CURIE node is expanded, a literal with a
// CURIE datatype has its datatype expanded. Anything else (including
// an already-absolute literal datatype) returns n unchanged.
func (e *Env) ExpandNode(n Node) (Node, error) {
	switch n.Kind {
	case KindURI:
		parsed := ParseURI(n.Value)
		if parsed.IsAbsolute() || e.base == nil {
			return n, nil
		}
		return NewURI(Resolve(parsed, *e.base).String()), nil
	case KindCURIE:
		abs, err := e.Expand(n.Value)
		if err != nil {
			return Node{}, err
		}
		return NewURI(abs), nil
	case KindLiteral:
		if dt, ok := n.Datatype(); ok && dt.Kind == KindCURIE {
			abs, err := e.Expand(dt.Value)
			if err != nil {
				return Node{}, err
			}
			out := n.Copy()
			exp := NewURI(abs)
			out.Meta = &exp
			return out, nil
		}
		return n, nil
	default:
		return n, nil
	}
}

// Describe emits a PREFIX event for every binding, in insertion order.
func (e *Env) Describe(sink Sink) error {
	for _, name := range e.order {
		if err := sink.OnEvent(PrefixEvent(name, e.byName[name])); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the bound prefix names in insertion order.
func (e *Env) Names() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// SortedNames returns the bound prefix names in lexical order, useful
// for deterministic output in tests and tools that don't care about
// declaration order.
func (e *Env) SortedNames() []string {
	out := e.Names()
	sort.Strings(out)
	return out
}

// OnEvent implements Sink: Env tracks BASE and PREFIX events as they
// pass through it, updating its own state.
func (e *Env) OnEvent(ev Event) error {
	switch ev.Type {
	case EventBase:
		return e.SetBaseURI(ev.Base.Value)
	case EventPrefix:
		return e.SetPrefix(ev.PrefixName, ev.PrefixURI.Value)
	default:
		return nil
	}
}

// isValidPNLocal reports whether s is a valid Turtle PN_LOCAL
// production, used by Qualify to decide whether a CURIE-qualified
// suffix round-trips.
func isValidPNLocal(s string) bool {
	if s == "" {
		return true
	}
	r, w := decodeRune(s)
	if !isPnLocalFirst(r) {
		return false
	}
	i := w
	for i < len(s) {
		r, w = decodeRune(s[i:])
		if !isPnLocalMid(r) {
			return false
		}
		i += w
	}
	last, _ := decodeRune(s[len(s)-lastRuneLen(s):])
	if last == '.' {
		return false
	}
	return true
}

func lastRuneLen(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if utf8StartByte(s[i]) {
			return len(s) - i
		}
	}
	return 1
}

func utf8StartByte(b byte) bool {
	return b&0xC0 != 0x80
}
