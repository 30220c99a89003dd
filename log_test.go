package serd

import "testing"

type recordingLogger struct {
	sev    Severity
	fields map[string]interface{}
	msg    string
	calls  int
}

func (r *recordingLogger) LogRecord(sev Severity, fields map[string]interface{}, msg string) {
	r.sev = sev
	r.fields = fields
	r.msg = msg
	r.calls++
}

func TestSeverityString(t *testing.T) {
	cases := map[Severity]string{
		SeverityEmergency: "emergency",
		SeverityWarning:   "warning",
		SeverityDebug:     "debug",
		Severity(99):      "unknown",
	}
	for sev, want := range cases {
		if got := sev.String(); got != want {
			t.Errorf("Severity(%d).String() = %q, want %q", sev, got, want)
		}
	}
}

func TestCaretFieldsCarriesPositionAndDocument(t *testing.T) {
	c := Caret{Name: NewURI("doc.ttl"), Line: 3, Column: 5}
	fields := caretFields(c)
	if fields["SERD_FILE"] != "doc.ttl" || fields["SERD_LINE"] != 3 || fields["SERD_COL"] != 5 {
		t.Errorf("caretFields = %v, want file=doc.ttl line=3 col=5", fields)
	}
}

func TestWriterLogsMismatchedEndEvent(t *testing.T) {
	rl := &recordingLogger{}
	var sink discardWriter
	w := NewWriter(&sink, SyntaxTurtle, WriterConfig{Logger: rl})

	err := w.OnEvent(EndEvent(NewBlank("stray")))
	if err == nil {
		t.Fatal("expected an error closing an END event with no matching open frame")
	}
	if rl.calls != 1 {
		t.Fatalf("expected exactly one LogRecord call, got %d", rl.calls)
	}
	if rl.sev != SeverityError {
		t.Errorf("logged severity = %v, want SeverityError", rl.sev)
	}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
