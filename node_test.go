package serd

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewPlainLiteral(t *testing.T) {
	tests := []struct {
		name  string
		value string
		lang  string
		want  Node
	}{
		{
			name:  "no language defaults to xsd:string",
			value: "hello",
			want:  NewTypedLiteral("hello", NewURI(XSDString)),
		},
		{
			name:  "language tag lowercased",
			value: "bonjour",
			lang:  "FR",
			want: Node{
				Value: "bonjour",
				Kind:  KindLiteral,
				Flags: HasLanguage,
				Meta:  &Node{Value: "fr", Kind: KindLiteral},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPlainLiteral(tt.value, tt.lang)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NewPlainLiteral(%q, %q) mismatch (-want +got):\n%s", tt.value, tt.lang, diff)
			}
		})
	}
}

func TestNodeEquals(t *testing.T) {
	a := NewTypedLiteral("1", NewURI(XSDInteger))
	b := NewTypedLiteral("1", NewURI(XSDInteger))
	c := NewTypedLiteral("2", NewURI(XSDInteger))
	if !a.Equals(b) {
		t.Errorf("expected %v to equal %v", a, b)
	}
	if a.Equals(c) {
		t.Errorf("expected %v to not equal %v", a, c)
	}
}

func TestNewDecimalLiteral(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"1.0", false},
		{"-1.5", false},
		{"+0.001", false},
		{"1", true},     // no '.'
		{".5", false},   // bare leading dot, digits after
		{"5.", false},   // bare trailing dot, digits before
		{".", true},     // no digits at all
		{"", true},
		{"1.2.3", true},
	}
	for _, tt := range tests {
		_, err := NewDecimalLiteral(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewDecimalLiteral(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestNewFileURI(t *testing.T) {
	tests := []struct {
		path, host, want string
	}{
		{"/a/b c", "", "file:///a/b%20c"},
		{"rel/path", "", "file:///rel/path"},
		{"/a", "example.org", "file://example.org/a"},
	}
	for _, tt := range tests {
		got := NewFileURI(tt.path, tt.host)
		if got.Value != tt.want {
			t.Errorf("NewFileURI(%q, %q) = %q, want %q", tt.path, tt.host, got.Value, tt.want)
		}
	}
}

func TestNodeCopyIsDeep(t *testing.T) {
	orig := NewTypedLiteral("1", NewURI(XSDInteger))
	cp := orig.Copy()
	cp.Meta.Value = "changed"
	if orig.Meta.Value == "changed" {
		t.Fatalf("Copy shared the Meta pointer with the original")
	}
}
