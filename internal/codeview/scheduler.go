package codeview

import (
	"context"

	"github.com/dshills/tuikit/internal/syntax"
)

// scheduleLocked starts a new generation and marks a flush as needed. It
// reports whether the caller must post the flush after unlocking. With a
// debouncer every change restarts the quiet period, so it always posts.
func (c *Controller) scheduleLocked() bool {
	c.generation++
	if c.debouncer != nil {
		c.flushPending = true
		return true
	}
	if c.flushPending {
		return false
	}
	c.flushPending = true
	return true
}

func (c *Controller) post(need bool) {
	if !need {
		return
	}
	if c.debouncer != nil {
		c.debouncer.Call()
		return
	}
	c.exec.Post(c.flush)
}

// flush reads the state as it is now and, if it can be highlighted, sends
// exactly one request to the client.
func (c *Controller) flush() {
	c.mu.Lock()
	if c.destroyed || !c.flushPending {
		c.mu.Unlock()
		return
	}
	c.flushPending = false

	if !c.state.highlightable() {
		c.hasPending = false
		c.mu.Unlock()
		c.notify()
		return
	}

	req := Request{
		Generation: c.generation,
		Content:    c.state.Content,
		Language:   c.state.Language,
	}
	c.hasPending = true
	c.pendingGen = req.Generation
	c.dispatches++
	ctx := c.ctx
	c.mu.Unlock()

	c.log.Debug("dispatch generation %d (%s, %d bytes)", req.Generation, req.Language, len(req.Content))
	go c.dispatch(ctx, req)
	c.notify()
}

func (c *Controller) dispatch(ctx context.Context, req Request) {
	out := syntax.Run(ctx, c.client, req.Content, req.Language)
	c.exec.Post(func() { c.settle(req, out) })
}

// settle applies an outcome if its request is still current. Results for
// older generations are dropped without touching any state.
func (c *Controller) settle(req Request, out syntax.Outcome) {
	c.mu.Lock()
	ev := SettleEvent{Request: req, Outcome: out, Current: c.generation}
	switch {
	case c.destroyed:
		ev.Destroyed = true
	case req.Generation != c.generation:
	default:
		c.hasPending = false
		c.applyLocked(req, out)
		ev.Applied = true
	}
	hook := c.settleHook
	c.mu.Unlock()

	switch {
	case ev.Destroyed:
		c.log.Debug("discard generation %d: destroyed", req.Generation)
	case !ev.Applied:
		c.log.Debug("discard stale generation %d (current %d)", req.Generation, ev.Current)
	case out.Kind() == syntax.KindFailure:
		c.log.Warn("highlight generation %d failed: %s", req.Generation, out.Message())
	case out.Kind() == syntax.KindWarning:
		c.log.Warn("highlight generation %d: %s", req.Generation, out.Message())
	default:
		c.log.Debug("apply generation %d (%d spans)", req.Generation, len(out.Spans()))
	}

	if ev.Applied {
		c.notify()
	}
	if hook != nil {
		hook(ev)
	}
}

func (c *Controller) applyLocked(req Request, out syntax.Outcome) {
	if out.Succeeded() && c.state.Streaming {
		c.cache.store(req.Generation, req.Language, out.Spans())
	}
	c.last = &applied{generation: req.Generation, outcome: out}
}
