package serd

import "testing"

func TestResolveRFC3986Examples(t *testing.T) {
	base := ParseURI("http://a/b/c/d;p?q")
	tests := []struct {
		ref  string
		want string
	}{
		{"g:h", "g:h"},
		{"g", "http://a/b/c/g"},
		{"./g", "http://a/b/c/g"},
		{"g/", "http://a/b/c/g/"},
		{"/g", "http://a/g"},
		{"//g", "http://g"},
		{"?y", "http://a/b/c/d;p?y"},
		{"g?y", "http://a/b/c/g?y"},
		{"#s", "http://a/b/c/d;p?q#s"},
		{"g#s", "http://a/b/c/g#s"},
		{"", "http://a/b/c/d;p?q"},
		{".", "http://a/b/c/"},
		{"./", "http://a/b/c/"},
		{"..", "http://a/b/"},
		{"../", "http://a/b/"},
		{"../g", "http://a/b/g"},
		{"../..", "http://a/"},
		{"../../g", "http://a/g"},
		{"../../../g", "http://a/g"},
		{"/./g", "http://a/g"},
		{"/../g", "http://a/g"},
	}
	for _, tt := range tests {
		got := Resolve(ParseURI(tt.ref), base).String()
		if got != tt.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tt.ref, base.String(), got, tt.want)
		}
	}
}

func TestRelativize(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		base string
		root string
		want string
	}{
		{
			name: "sibling file",
			uri:  "http://example.org/a/b/d",
			base: "http://example.org/a/b/c",
			want: "d",
		},
		{
			name: "parent directory",
			uri:  "http://example.org/a/x",
			base: "http://example.org/a/b/c",
			want: "../x",
		},
		{
			name: "different authority stays absolute",
			uri:  "http://other.org/a/b/d",
			base: "http://example.org/a/b/c",
			want: "http://other.org/a/b/d",
		},
		{
			name: "outside root stays absolute",
			uri:  "http://example.org/z",
			base: "http://example.org/a/b/c",
			root: "http://example.org/a/",
			want: "http://example.org/z",
		},
		{
			// uri is within root but base lies outside it, so no
			// relative reference is produced: any "../" climb from base
			// would have to leave root.
			name: "base outside root stays absolute",
			uri:  "http://example.org/x/y/z/file",
			base: "http://example.org/q/w/e/r/t",
			root: "http://example.org/x/y/z/",
			want: "http://example.org/x/y/z/file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var root URI
			if tt.root != "" {
				root = ParseURI(tt.root)
			}
			got := Relativize(ParseURI(tt.uri), ParseURI(tt.base), root).String()
			if got != tt.want {
				t.Errorf("Relativize(%q, %q, %q) = %q, want %q", tt.uri, tt.base, tt.root, got, tt.want)
			}
		})
	}
}

func TestURIIsAbsoluteAndEmpty(t *testing.T) {
	if !ParseURI("http://a/b").IsAbsolute() {
		t.Error("expected http://a/b to be absolute")
	}
	if ParseURI("a/b").IsAbsolute() {
		t.Error("expected a/b to not be absolute")
	}
	if !(URI{}).IsEmpty() {
		t.Error("expected the zero URI to be empty")
	}
	if ParseURI("a").IsEmpty() {
		t.Error("expected a parsed relative path to not be empty")
	}
}
