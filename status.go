package serd

import "fmt"

// Status is a closed taxonomy of outcomes returned by reader and
// writer operations. A Status value is itself an error, so callers
// can return it directly or wrap it with pkg/errors for caret context.
type Status int

// The full status taxonomy. SUCCESS and FAILURE are not errors in the
// Go sense (FAILURE is "no more data, no error"); everything above
// FAILURE is a genuine error condition.
const (
	Success Status = iota
	Failure
	NoData
	NoSpace
	BadAlloc
	BadArg
	BadCurie
	BadCursor
	BadStack
	BadStream
	BadRead
	BadWrite
	BadSyntax
	BadText
	BadLiteral
	BadPattern
	BadCall
	BadIndex
	BadData
	UnknownError
)

var statusMessages = map[Status]string{
	Success:      "success",
	Failure:      "non-fatal failure",
	NoData:      "no data available",
	NoSpace:      "insufficient space",
	BadAlloc:     "memory allocation failed",
	BadArg:       "invalid argument",
	BadCurie:     "invalid CURIE",
	BadCursor:    "invalid cursor",
	BadStack:     "stack overflow",
	BadStream:    "stream error",
	BadRead:      "read failure",
	BadWrite:     "write failure",
	BadSyntax:    "syntax error",
	BadText:      "invalid text encoding",
	BadLiteral:   "invalid literal",
	BadPattern:   "invalid pattern",
	BadCall:      "invalid call",
	BadIndex:     "invalid index",
	BadData:      "invalid data",
	UnknownError: "unknown error",
}

// Error implements the error interface, so a Status can be returned
// anywhere an error is expected and compared with errors.Is.
func (s Status) Error() string {
	if msg, ok := statusMessages[s]; ok {
		return msg
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// IsError reports whether s represents a failure worth surfacing. Both
// Success and Failure (soft EOF) are not errors.
func (s Status) IsError() bool {
	return s > Failure
}

// IsFatal reports whether s can never be recovered from in lax mode.
// BadStack is always fatal; stream/allocation failures
// are unrecoverable because the byte source itself is compromised.
func (s Status) IsFatal() bool {
	switch s {
	case BadStack, BadAlloc, BadStream, BadRead, BadWrite:
		return true
	default:
		return false
	}
}
