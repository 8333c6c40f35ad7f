package codeview

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/tuikit/internal/syntax"
	"github.com/dshills/tuikit/internal/textbuf"
)

// ErrNoClient is reported as a failure when a controller has no highlighter.
var ErrNoClient = errors.New("no highlight client")

// Logger receives the controller's diagnostic messages. Messages are
// printf-style format strings.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// SettleEvent describes a highlight request that finished, whether or not
// its outcome was used.
type SettleEvent struct {
	Request Request
	Outcome syntax.Outcome

	// Current is the controller's generation when the request settled.
	Current uint64

	// Applied is set when the outcome became the current presentation.
	Applied bool

	// Destroyed is set when the controller was destroyed before settling.
	Destroyed bool
}

// Stale reports whether the request was superseded by a newer generation.
func (e SettleEvent) Stale() bool {
	return !e.Applied && !e.Destroyed
}

// Controller coordinates a code view's text state with an asynchronous
// highlighter. All methods are safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	id     uuid.UUID
	state  ContentState
	store  TextStore
	client syntax.Client
	log    Logger

	exec      Executor
	ownedExec *SerialExecutor
	debounce  time.Duration
	debouncer *debouncer

	// Scheduling state.
	generation   uint64
	flushPending bool
	hasPending   bool   // a dispatched request has not settled
	pendingGen   uint64 // generation of the latest dispatched request
	dispatches   uint64

	last  *applied
	cache spanCache

	destroyed bool
	ctx       context.Context
	cancel    context.CancelFunc

	updates    chan struct{}
	settleHook func(SettleEvent)
}

// Option configures a Controller.
type Option func(*Controller)

// WithContent sets the initial content.
func WithContent(content string) Option {
	return func(c *Controller) { c.state.Content = content }
}

// WithLanguage sets the initial language.
func WithLanguage(language string) Option {
	return func(c *Controller) { c.state.Language = language }
}

// WithConceal sets the initial conceal flag. The default is true.
func WithConceal(v bool) Option {
	return func(c *Controller) { c.state.Conceal = v }
}

// WithDrawUnstyledBeforeReady sets whether plain text is drawn while the
// first highlight is pending. The default is true.
func WithDrawUnstyledBeforeReady(v bool) Option {
	return func(c *Controller) { c.state.DrawUnstyledBeforeReady = v }
}

// WithStreaming sets the initial streaming flag. The default is false.
func WithStreaming(v bool) Option {
	return func(c *Controller) { c.state.Streaming = v }
}

// WithExecutor sets the executor that runs flushes and settles. Without it
// the controller starts its own SerialExecutor and stops it on Destroy.
func WithExecutor(e Executor) Option {
	return func(c *Controller) { c.exec = e }
}

// WithTextStore sets the text store. The default is a textbuf.Buffer.
func WithTextStore(ts TextStore) Option {
	return func(c *Controller) { c.store = ts }
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithDebounce delays each flush until no setter has been called for d.
// Zero, the default, flushes on the executor's next turn.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

// WithSettleHook registers a function called after every request settles.
// It runs on the executor, outside the controller's lock.
func WithSettleHook(fn func(SettleEvent)) Option {
	return func(c *Controller) { c.settleHook = fn }
}

// WithContext sets the parent context for highlight calls. The controller
// cancels its derived context on Destroy.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// WithID sets the controller's identifier. The default is a random UUID.
func WithID(id uuid.UUID) Option {
	return func(c *Controller) { c.id = id }
}

// New creates a controller backed by client. If the initial content is not
// empty, the first highlight is scheduled immediately.
func New(client syntax.Client, opts ...Option) *Controller {
	c := &Controller{
		id:     uuid.New(),
		client: client,
		log:    nopLogger{},
		ctx:    context.Background(),
		state: ContentState{
			Conceal:                 true,
			DrawUnstyledBeforeReady: true,
		},
		updates: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.client == nil {
		c.client = syntax.ClientFunc(func(context.Context, string, string) (syntax.Result, error) {
			return syntax.Result{}, ErrNoClient
		})
	}
	if c.store == nil {
		c.store = textbuf.New()
	}
	if c.exec == nil {
		c.ownedExec = NewSerialExecutor()
		c.exec = c.ownedExec
	}
	if c.debounce > 0 {
		c.debouncer = newDebouncer(c.debounce, func() { c.exec.Post(c.flush) })
	}
	c.ctx, c.cancel = context.WithCancel(c.ctx)

	c.store.SetText(c.state.Content)
	if c.state.Content != "" {
		c.mu.Lock()
		post := c.scheduleLocked()
		c.mu.Unlock()
		c.post(post)
	}
	return c
}

// ID returns the controller's identifier.
func (c *Controller) ID() uuid.UUID {
	return c.id
}

// SetContent replaces the text. The text store is updated before the call
// returns. Setting the current content again does nothing.
func (c *Controller) SetContent(text string) {
	c.mu.Lock()
	if c.destroyed || text == c.state.Content {
		c.mu.Unlock()
		return
	}
	c.store.SetText(text)
	c.state.Content = text
	if text == "" {
		c.cache.clear()
	}
	post := c.scheduleLocked()
	c.mu.Unlock()

	c.post(post)
	c.notify()
}

// SetLanguage sets the highlight language; empty means none. A highlight
// is scheduled unless the content is empty, even when the language is
// unchanged.
func (c *Controller) SetLanguage(language string) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.state.Language = language
	post := false
	if c.state.Content != "" {
		post = c.scheduleLocked()
	}
	c.mu.Unlock()

	c.post(post)
	c.notify()
}

// SetConceal sets whether concealable markup is hidden. It always
// schedules a new highlight.
func (c *Controller) SetConceal(v bool) {
	c.update(func(st *ContentState) { st.Conceal = v })
}

// SetDrawUnstyledBeforeReady sets whether plain text is drawn while a
// highlight is pending. It always schedules a new highlight.
func (c *Controller) SetDrawUnstyledBeforeReady(v bool) {
	c.update(func(st *ContentState) { st.DrawUnstyledBeforeReady = v })
}

// SetStreaming sets whether the last highlight is reused while a new one is
// pending. Turning streaming off drops the cached highlight.
func (c *Controller) SetStreaming(v bool) {
	c.update(func(st *ContentState) {
		if st.Streaming && !v {
			c.cache.clear()
		}
		st.Streaming = v
	})
}

// update applies fn to the state under the lock and schedules a highlight.
func (c *Controller) update(fn func(st *ContentState)) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	fn(&c.state)
	post := c.scheduleLocked()
	c.mu.Unlock()

	c.post(post)
	c.notify()
}

// Content returns the current content.
func (c *Controller) Content() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Content
}

// Language returns the current language.
func (c *Controller) Language() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Language
}

// Conceal returns the conceal flag.
func (c *Controller) Conceal() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Conceal
}

// DrawUnstyledBeforeReady returns the draw-unstyled flag.
func (c *Controller) DrawUnstyledBeforeReady() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.DrawUnstyledBeforeReady
}

// Streaming returns the streaming flag.
func (c *Controller) Streaming() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Streaming
}

// State returns a copy of the content state.
func (c *Controller) State() ContentState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Generation returns the current generation.
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Dispatches returns how many requests have been sent to the client.
func (c *Controller) Dispatches() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatches
}

// IsHighlighting reports whether a highlight for the current generation is
// committed: either a flush that will call the client is pending, or the
// client was called and has not settled.
func (c *Controller) IsHighlighting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed || !c.state.highlightable() {
		return false
	}
	return c.flushPending || (c.hasPending && c.pendingGen == c.generation)
}

// Presentation returns what the view should draw now.
func (c *Controller) Presentation() Presentation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return present(c.state, c.generation, c.last, &c.cache)
}

// Cache returns a copy of the streaming cache entry, or nil.
func (c *Controller) Cache() *HighlightCache {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.snapshot()
}

// PlainText returns the text from the text store.
func (c *Controller) PlainText() string {
	return c.store.PlainText()
}

// LineCount returns the number of lines in the text store.
func (c *Controller) LineCount() int {
	return c.store.LineCount()
}

// LineInfo returns the line geometry from the text store.
func (c *Controller) LineInfo() textbuf.LineInfo {
	return c.store.LineInfo()
}

// Updates returns a channel that receives a value whenever the
// presentation may have changed. Signals are coalesced; a receiver should
// re-read Presentation after each one.
func (c *Controller) Updates() <-chan struct{} {
	return c.updates
}

// Destroy stops the controller. Pending flushes and in-flight requests
// become no-ops, and later setters are ignored. It is safe to call more
// than once and from any state.
func (c *Controller) Destroy() {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.destroyed = true
	c.flushPending = false
	c.hasPending = false
	c.mu.Unlock()

	c.cancel()
	if c.debouncer != nil {
		c.debouncer.Cancel()
	}
	if c.ownedExec != nil {
		c.ownedExec.Close()
	}
	c.log.Debug("destroyed at generation %d", c.Generation())
}

// Destroyed reports whether Destroy has been called.
func (c *Controller) Destroyed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed
}

func (c *Controller) notify() {
	c.mu.Lock()
	destroyed := c.destroyed
	c.mu.Unlock()
	if destroyed {
		return
	}
	select {
	case c.updates <- struct{}{}:
	default:
	}
}
