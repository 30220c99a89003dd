package serd

import "github.com/sirupsen/logrus"

// Severity is an eight-level syslog-style log taxonomy: emergency is
// the most severe, debug the least.
type Severity int

const (
	SeverityEmergency Severity = iota
	SeverityAlert
	SeverityCritical
	SeverityError
	SeverityWarning
	SeverityNotice
	SeverityInfo
	SeverityDebug
)

func (s Severity) String() string {
	switch s {
	case SeverityEmergency:
		return "emergency"
	case SeverityAlert:
		return "alert"
	case SeverityCritical:
		return "critical"
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNotice:
		return "notice"
	case SeverityInfo:
		return "info"
	case SeverityDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// logrusLevel maps Severity onto four logrus levels (error, warn,
// info, debug). emergency,
// alert, and critical all collapse to logrus.ErrorLevel; notice
// collapses to logrus.InfoLevel. In both cases the original severity
// name survives as the "severity" field so it is never actually lost,
// just folded into the log library's coarser level scheme.
func (s Severity) logrusLevel() logrus.Level {
	switch s {
	case SeverityEmergency, SeverityAlert, SeverityCritical, SeverityError:
		return logrus.ErrorLevel
	case SeverityWarning:
		return logrus.WarnLevel
	case SeverityNotice, SeverityInfo:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}

// Logger is the structured-logging contract the reader and writer
// report through: a level, a field set, and a message. Reader records
// carry the caret fields SERD_FILE/SERD_LINE/SERD_COL; the writer's
// record for an unmatched END carries SERD_NODE instead. NewLogger
// adapts a *logrus.Logger to this interface, and callers can supply
// their own implementation to redirect output.
type Logger interface {
	LogRecord(sev Severity, fields map[string]interface{}, msg string)
}

// logrusLogger adapts a *logrus.Logger to Logger.
type logrusLogger struct {
	l *logrus.Logger
}

// NewLogger wraps l (or, if nil, a new default logger colorized for a
// terminal) as a Logger. The default formatter force-enables ANSI
// color and writes to stderr.
func NewLogger(l *logrus.Logger) Logger {
	if l == nil {
		l = logrus.New()
		l.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true})
	}
	return logrusLogger{l: l}
}

func (lg logrusLogger) LogRecord(sev Severity, fields map[string]interface{}, msg string) {
	f := make(logrus.Fields, len(fields)+1)
	for k, v := range fields {
		f[k] = v
	}
	f["severity"] = sev.String()
	lg.l.WithFields(f).Log(sev.logrusLevel(), msg)
}

// caretFields returns the minimum required log fields for a record
// originating at c.
func caretFields(c Caret) map[string]interface{} {
	return map[string]interface{}{
		"SERD_FILE": c.Name.Value,
		"SERD_LINE": c.Line,
		"SERD_COL":  c.Column,
	}
}
