package serd

import (
	"strings"
	"testing"
)

func TestSourcePeekAdvanceEOF(t *testing.T) {
	s := NewSource(strings.NewReader("ab"), 4, "doc")
	if st := s.Prepare(); st != Success {
		t.Fatalf("Prepare: %v", st)
	}
	if got := s.Peek(); got != 'a' {
		t.Fatalf("Peek = %q, want 'a'", got)
	}
	if st := s.Advance(); st.IsError() {
		t.Fatalf("Advance: %v", st)
	}
	if got := s.Peek(); got != 'b' {
		t.Fatalf("Peek after advance = %q, want 'b'", got)
	}
	if s.AtEOF() {
		t.Fatal("should not be at EOF with one byte left")
	}
	if st := s.Advance(); st.IsError() {
		t.Fatalf("Advance: %v", st)
	}
	if !s.AtEOF() {
		t.Fatal("expected EOF after consuming both bytes")
	}
}

func TestSourcePagingAcrossBlocks(t *testing.T) {
	input := "0123456789"
	s := NewSource(strings.NewReader(input), 4, "doc")
	var got []byte
	for !s.AtEOF() {
		got = append(got, s.Peek())
		if st := s.Advance(); st.IsError() {
			t.Fatalf("Advance: %v", st)
		}
	}
	if string(got) != input {
		t.Fatalf("paged read = %q, want %q", got, input)
	}
}

func TestSourceSkipBOM(t *testing.T) {
	s := NewSource(strings.NewReader("\xEF\xBB\xBFhello"), 16, "doc")
	if st := s.SkipBOM(); st.IsError() {
		t.Fatalf("SkipBOM: %v", st)
	}
	if got := s.Peek(); got != 'h' {
		t.Fatalf("Peek after SkipBOM = %q, want 'h'", got)
	}
}

func TestSourceSkipBOMNoneLeavesInputUntouched(t *testing.T) {
	s := NewSource(strings.NewReader("hello"), 16, "doc")
	if st := s.SkipBOM(); st.IsError() {
		t.Fatalf("SkipBOM: %v", st)
	}
	if got := s.Peek(); got != 'h' {
		t.Fatalf("Peek after SkipBOM with no BOM = %q, want 'h'", got)
	}
}

func TestSourceCaretTracksLinesAndColumns(t *testing.T) {
	s := NewSource(strings.NewReader("ab\ncd"), 2, "doc")
	for i := 0; i < 3; i++ { // consume "ab\n"
		if st := s.Advance(); st.IsError() {
			t.Fatalf("Advance %d: %v", i, st)
		}
	}
	c := s.Caret()
	if c.Line != 2 || c.Column != 0 {
		t.Fatalf("Caret after consuming \"ab\\n\" = (%d,%d), want (2,0)", c.Line, c.Column)
	}
}
