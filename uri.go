package serd

import "strings"

// URI is a parsed view over a URI reference: five substrings (scheme,
// authority, path — split into a base and a tail, query, fragment), all
// referencing the original input rather than copying it.
// A zero-value URI (all fields empty) is the "null URI".
type URI struct {
	Scheme    string
	Authority string
	PathBase  string // the base path supplied when resolving, if any
	Path      string
	Query     string
	Fragment  string

	hasAuthority bool
	hasQuery     bool
	hasFragment  bool
}

// IsEmpty reports whether u is the null URI.
func (u URI) IsEmpty() bool {
	return u.Scheme == "" && u.Authority == "" && u.Path == "" && u.Query == "" && u.Fragment == "" && !u.hasAuthority
}

// IsAbsolute reports whether u has a scheme.
func (u URI) IsAbsolute() bool { return u.Scheme != "" }

// ParseURI parses a URI reference per RFC 3986 §3, producing a view
// whose substrings alias s (no allocation beyond the returned struct).
func ParseURI(s string) URI {
	var u URI
	rest := s

	// scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ) ":"
	if i := schemeEnd(rest); i >= 0 {
		u.Scheme = rest[:i]
		rest = rest[i+1:]
	}

	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
		u.hasAuthority = true
		i := strings.IndexAny(rest, "/?#")
		if i < 0 {
			u.Authority = rest
			rest = ""
		} else {
			u.Authority = rest[:i]
			rest = rest[i:]
		}
	}

	if i := strings.IndexByte(rest, '#'); i >= 0 {
		u.hasFragment = true
		u.Fragment = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		u.hasQuery = true
		u.Query = rest[i+1:]
		rest = rest[:i]
	}
	u.Path = rest
	return u
}

// schemeEnd returns the index of the ':' terminating a valid scheme
// prefix of s, or -1 if s has no scheme.
func schemeEnd(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ':':
			if i == 0 {
				return -1
			}
			return i
		case c == '/' || c == '?' || c == '#':
			return -1
		case i == 0:
			if !isAlpha(rune(c)) {
				return -1
			}
		default:
			if !isAlphaOrDigit(rune(c)) && c != '+' && c != '-' && c != '.' {
				return -1
			}
		}
	}
	return -1
}

// String serializes u back into a URI reference string.
func (u URI) String() string {
	var b strings.Builder
	u.WriteTo(&b)
	return b.String()
}

// stringWriter is satisfied by both strings.Builder and bytes.Buffer,
// letting WriteTo avoid forcing an io.Writer (and its error return)
// on the common in-memory case; a *Dumper, which has its own
// WriteString and WriteByte, satisfies it as well.
type stringWriter interface {
	WriteString(string) (int, error)
	WriteByte(byte) error
}

// WriteTo serializes u through sw, injecting ':', '//', '?', '#'
// separators as the substring lengths dictate.
func (u URI) WriteTo(sw stringWriter) {
	if u.Scheme != "" {
		sw.WriteString(u.Scheme)
		sw.WriteByte(':')
	}
	if u.hasAuthority || u.Authority != "" {
		sw.WriteString("//")
		sw.WriteString(u.Authority)
	}
	sw.WriteString(u.PathBase)
	sw.WriteString(u.Path)
	if u.hasQuery || u.Query != "" {
		sw.WriteByte('?')
		sw.WriteString(u.Query)
	}
	if u.hasFragment || u.Fragment != "" {
		sw.WriteByte('#')
		sw.WriteString(u.Fragment)
	}
}

// Resolve computes the absolute URI reference obtained by resolving ref
// (as a reference) against base, per RFC 3986 §5.2/§5.3, without
// allocating beyond the result's substrings.
func Resolve(ref, base URI) URI {
	if ref.IsEmpty() {
		return base
	}
	var t URI
	switch {
	case ref.IsAbsolute():
		t.Scheme = ref.Scheme
		t.Authority, t.hasAuthority = ref.Authority, ref.hasAuthority
		t.Path = removeDotSegments(ref.Path)
		t.Query, t.hasQuery = ref.Query, ref.hasQuery
	case ref.hasAuthority:
		t.Scheme = base.Scheme
		t.Authority, t.hasAuthority = ref.Authority, true
		t.Path = removeDotSegments(ref.Path)
		t.Query, t.hasQuery = ref.Query, ref.hasQuery
	case ref.Path == "":
		t.Scheme = base.Scheme
		t.Authority, t.hasAuthority = base.Authority, base.hasAuthority
		t.Path = base.Path
		if ref.hasQuery {
			t.Query, t.hasQuery = ref.Query, true
		} else {
			t.Query, t.hasQuery = base.Query, base.hasQuery
		}
	default:
		t.Scheme = base.Scheme
		t.Authority, t.hasAuthority = base.Authority, base.hasAuthority
		if strings.HasPrefix(ref.Path, "/") {
			t.Path = removeDotSegments(ref.Path)
		} else {
			t.Path = removeDotSegments(mergePaths(base, ref.Path))
		}
		t.Query, t.hasQuery = ref.Query, ref.hasQuery
	}
	t.Fragment, t.hasFragment = ref.Fragment, ref.hasFragment
	return t
}

// mergePaths implements RFC 3986 §5.3's merge algorithm: if base has an
// authority and an empty path, the merged path is "/" + ref; otherwise
// it is base's path up to and including the last '/', followed by ref.
func mergePaths(base URI, ref string) string {
	if (base.hasAuthority || base.Authority != "") && base.Path == "" {
		return "/" + ref
	}
	if i := strings.LastIndexByte(base.Path, '/'); i >= 0 {
		return base.Path[:i+1] + ref
	}
	return ref
}

// removeDotSegments implements RFC 3986 §5.2.4.
func removeDotSegments(path string) string {
	var out []string
	in := path
	for in != "" {
		switch {
		case strings.HasPrefix(in, "../"):
			in = in[3:]
		case strings.HasPrefix(in, "./"):
			in = in[2:]
		case strings.HasPrefix(in, "/./"):
			in = "/" + in[3:]
		case in == "/.":
			in = "/"
		case strings.HasPrefix(in, "/../"):
			in = "/" + in[4:]
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case in == "/..":
			in = "/"
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		case in == "." || in == "..":
			in = ""
		default:
			i := strings.IndexByte(in[1:], '/')
			var seg string
			if i < 0 {
				seg = in
				in = ""
			} else {
				seg = in[:i+1]
				in = in[i+1:]
			}
			out = append(out, seg)
		}
	}
	return strings.Join(out, "")
}

// Relativize produces a relative reference for uri against base, if
// uri shares base's scheme+authority and (when root is non-empty) both
// uri and base are within root. Otherwise it returns uri unchanged,
// degrading to absolute.
func Relativize(uri, base, root URI) URI {
	if uri.Scheme != base.Scheme || uri.Authority != base.Authority || uri.Scheme == "" {
		return uri
	}
	if !root.IsEmpty() {
		rootStr := root.Scheme + "://" + root.Authority + root.Path
		uriStr := uri.Scheme + "://" + uri.Authority + uri.Path
		baseStr := base.Scheme + "://" + base.Authority + base.Path
		if !strings.HasPrefix(uriStr, rootStr) || !strings.HasPrefix(baseStr, rootStr) {
			return uri
		}
	}

	baseSegs := strings.Split(base.Path, "/")
	uriSegs := strings.Split(uri.Path, "/")

	common := 0
	for common < len(baseSegs)-1 && common < len(uriSegs)-1 && baseSegs[common] == uriSegs[common] {
		common++
	}

	var rel strings.Builder
	ups := len(baseSegs) - 1 - common
	if !root.IsEmpty() {
		// Never climb above root: cap the number of "../" segments at
		// how far base itself sits below root's own depth.
		if maxUps := len(baseSegs) - len(strings.Split(root.Path, "/")); ups > maxUps {
			ups = maxUps
		}
		if ups < 0 {
			ups = 0
		}
	}
	for i := 0; i < ups; i++ {
		rel.WriteString("../")
	}
	rel.WriteString(strings.Join(uriSegs[common:], "/"))

	var t URI
	t.Path = rel.String()
	if t.Path == "" {
		t.Path = "."
	}
	t.Query, t.hasQuery = uri.Query, uri.hasQuery
	t.Fragment, t.hasFragment = uri.Fragment, uri.hasFragment
	return t
}
