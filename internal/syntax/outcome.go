package syntax

import "fmt"

// Kind identifies which variant an Outcome holds.
type Kind uint8

const (
	// KindSuccess is a settled highlight with spans and nothing to report.
	KindSuccess Kind = iota
	// KindWarning is a settled highlight with spans and a diagnostic.
	KindWarning
	// KindFailure is a rejected highlight. It carries no spans.
	KindFailure
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindWarning:
		return "warning"
	case KindFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Outcome is the settled result of one highlight request.
//
// It is one of Success(spans), SuccessWithWarning(spans, msg) or
// Failure(msg). The zero Outcome is Success with no spans.
type Outcome struct {
	kind    Kind
	spans   []Span
	message string
}

// Success returns a successful outcome.
func Success(spans []Span) Outcome {
	return Outcome{kind: KindSuccess, spans: spans}
}

// SuccessWithWarning returns a successful outcome carrying a diagnostic.
func SuccessWithWarning(spans []Span, msg string) Outcome {
	return Outcome{kind: KindWarning, spans: spans, message: msg}
}

// Failure returns a failed outcome.
func Failure(msg string) Outcome {
	return Outcome{kind: KindFailure, message: msg}
}

// Kind returns the variant of the outcome.
func (o Outcome) Kind() Kind { return o.kind }

// Spans returns the highlight spans. Failures have none.
func (o Outcome) Spans() []Span { return o.spans }

// Message returns the warning or failure message.
func (o Outcome) Message() string { return o.message }

// Succeeded reports whether the outcome is Success or SuccessWithWarning.
func (o Outcome) Succeeded() bool {
	return o.kind == KindSuccess || o.kind == KindWarning
}

func (o Outcome) String() string {
	switch o.kind {
	case KindSuccess:
		return fmt.Sprintf("success(%d spans)", len(o.spans))
	case KindWarning:
		return fmt.Sprintf("warning(%d spans, %q)", len(o.spans), o.message)
	default:
		return fmt.Sprintf("failure(%q)", o.message)
	}
}
