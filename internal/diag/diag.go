// Package diag carries the non-fatal messages produced while extracting a
// diagram document. Malformed content never aborts extraction; it degrades to
// "no fact extracted for that line" plus a notice collected here.
package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevNote marks a line that was skipped without extracting a fact.
	SevNote Severity = iota
	// SevWarning marks content that was recovered from but looked wrong.
	SevWarning
	// SevError marks a condition that made the document unusable (I/O).
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevNote:
		return "NOTE"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Diagnostic is one message about a document, optionally bound to a line.
type Diagnostic struct {
	Severity Severity
	Line     int // 1-based line in the source document, 0 when not line-bound
	Message  string
}

// Reporter is the sink for diagnostics emitted by a parsing phase.
type Reporter interface {
	Report(sev Severity, line int, msg string)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) Report(Severity, int, string) {}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(sev Severity, line int, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{Severity: sev, Line: line, Message: msg})
}
