package codeview

import "github.com/dshills/tuikit/internal/syntax"

// applied is an outcome together with the generation it was requested for.
type applied struct {
	generation uint64
	outcome    syntax.Outcome
}

// present derives what to draw from the state, the last applied outcome
// and the streaming cache. It has no side effects; last is ignored unless
// it belongs to the current generation.
func present(st ContentState, generation uint64, last *applied, cache *spanCache) Presentation {
	if st.Content == "" {
		return Unstyled("")
	}
	if st.Language == "" {
		return Unstyled(st.Content)
	}

	if last != nil && last.generation == generation {
		return presentOutcome(st, last.outcome)
	}

	// Interim: a request for this generation is pending or about to be.
	if st.Streaming && cache != nil {
		if spans, ok := cache.lookup(st.Language, len(st.Content)); ok {
			p := Styled(st.Content, spans)
			p.Interim = true
			return p
		}
	}
	if st.DrawUnstyledBeforeReady {
		return Unstyled(st.Content)
	}
	return Blank()
}

func presentOutcome(st ContentState, out syntax.Outcome) Presentation {
	if !out.Succeeded() {
		p := Unstyled(st.Content)
		p.Diagnostic = out.Message()
		return p
	}

	text, spans := st.Content, syntax.Clamp(out.Spans(), len(st.Content))
	if st.Conceal {
		text, spans = Conceal(text, spans)
	}
	p := Styled(text, spans)
	p.Diagnostic = out.Message()
	return p
}
