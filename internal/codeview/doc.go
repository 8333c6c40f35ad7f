// Package codeview coordinates syntax highlighting for a code-view widget.
//
// A Controller owns the widget's text state (content, language and display
// flags) and keeps it in step with a slow, unreliable highlighter:
//
//   - Setters are synchronous and never block on highlighting. The text
//     store is updated immediately so line and size queries are always
//     current.
//   - Every setter that can change the highlight advances a generation
//     counter. Bursts of setters are coalesced into a single flush that
//     reads the final state when it runs.
//   - Each dispatched request is tagged with the generation it was made for.
//     When it settles, the outcome is applied only if that generation is
//     still current; anything older is dropped. A request that never settles
//     simply never matches again, so it cannot hold up newer work.
//   - Failures degrade to unstyled text. With streaming enabled, the last
//     good spans are reused, clamped to the new content, while a fresh
//     highlight is computed.
//
// Flushes and settles run on an injectable Executor. Tests drive them with a
// ManualExecutor; an application can pass its event loop.
package codeview
