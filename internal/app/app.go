package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/dshills/tuikit/internal/codeview"
	"github.com/dshills/tuikit/internal/config"
	"github.com/dshills/tuikit/internal/renderer/backend"
	"github.com/dshills/tuikit/internal/renderer/gutter"
	"github.com/dshills/tuikit/internal/renderer/highlight"
	"github.com/dshills/tuikit/internal/renderer/view"
	"github.com/dshills/tuikit/internal/syntax"
)

// Application views one file in a terminal, highlighting it in the
// background.
type Application struct {
	mu sync.Mutex

	opts Options
	cfg  config.Config
	path string // absolute path of the viewed file, or ""

	log     *Logger
	metrics *Metrics
	backend backend.Backend
	themes  *highlight.ThemeRegistry

	client  syntax.Client
	closers []io.Closer
	loop    *loopExecutor
	ctrl    *codeview.Controller
	view    *view.View
	watcher *config.Watcher

	running  atomic.Bool
	done     chan struct{}
	doneOnce sync.Once
	closed   bool
}

// Options configures the application.
type Options struct {
	// Path is the file to view. Content is used instead when Path is empty.
	Path    string
	Content string

	// Language overrides the configured and detected language.
	Language string

	// Config is used as is when set. Otherwise the config is loaded from
	// ConfigPath.
	Config     *config.Config
	ConfigPath string

	// Overrides adjusts a config loaded from ConfigPath, on startup and on
	// every reload. Command-line flags use it.
	Overrides func(*config.Config)

	// Client overrides the highlighter the config selects.
	Client syntax.Client

	Backend backend.Backend

	// Logger defaults to one built from the [log] config section.
	Logger *Logger

	// Stderr receives the standard error of a highlight server
	// subprocess.
	Stderr io.Writer

	// Watch reloads the viewed file and the config when they change on
	// disk.
	Watch bool
}

// New creates an application. It reads the file and starts the first
// highlight, which completes once Run starts draining the event loop.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		backend: opts.Backend,
		metrics: NewMetrics(),
		themes:  highlight.NewThemeRegistry(),
		loop:    newLoopExecutor(),
		done:    make(chan struct{}),
	}

	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	if app.opts.Config != nil {
		app.cfg = *app.opts.Config
	} else {
		cfg, err := app.loadConfig()
		if err != nil {
			return NewComponentError("config", "load", err)
		}
		app.cfg = cfg
	}

	if err := app.initLogger(); err != nil {
		return err
	}

	theme, err := config.ResolveTheme(app.cfg.Theme, app.themes)
	if err != nil {
		return NewComponentError("theme", "resolve", err)
	}

	content := app.opts.Content
	if app.opts.Path != "" {
		abs, err := filepath.Abs(app.opts.Path)
		if err != nil {
			return NewOperationError("open", app.opts.Path, err)
		}
		data, err := os.ReadFile(abs)
		if err != nil {
			return NewOperationError("read", app.opts.Path, err)
		}
		app.path = abs
		content = string(data)
	}

	app.client = app.opts.Client
	if app.client == nil {
		client, closers, err := NewClient(context.Background(), app.cfg.Highlight, app.log, app.opts.Stderr)
		if err != nil {
			return err
		}
		app.client = client
		app.closers = append(app.closers, closers...)
	}

	language := DetectLanguage(app.language(), app.opts.Path)
	app.log.Info("viewing %q as %q with the %s backend", app.opts.Path, language, app.cfg.Highlight.Backend)

	hl := app.cfg.Highlight
	app.ctrl = codeview.New(app.client,
		codeview.WithContent(content),
		codeview.WithLanguage(language),
		codeview.WithConceal(hl.Conceal),
		codeview.WithDrawUnstyledBeforeReady(hl.DrawUnstyledBeforeReady),
		codeview.WithStreaming(hl.Streaming),
		codeview.WithDebounce(hl.Debounce.Std()),
		codeview.WithExecutor(app.loop),
		codeview.WithLogger(app.log.WithComponent("codeview")),
		codeview.WithSettleHook(app.metrics.RecordSettle),
	)

	name := "[scratch]"
	if app.opts.Path != "" {
		name = filepath.Base(app.opts.Path)
	}
	app.view = view.New(app.ctrl,
		view.WithTheme(theme),
		view.WithGutter(gutterConfig(app.cfg.View)),
		view.WithStatusLine(app.cfg.View.StatusLine),
		view.WithTabWidth(app.cfg.View.TabWidth),
		view.WithName(name),
	)

	if app.opts.Watch {
		if err := app.startWatcher(); err != nil {
			return NewComponentError("watcher", "start", err)
		}
	}
	return nil
}

// loadConfig reads ConfigPath and applies the overrides.
func (app *Application) loadConfig() (config.Config, error) {
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return cfg, err
	}
	if app.opts.Overrides != nil {
		app.opts.Overrides(&cfg)
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func (app *Application) initLogger() error {
	if app.opts.Logger != nil {
		app.log = app.opts.Logger
		return nil
	}

	var out io.Writer = io.Discard
	if app.opts.Stderr != nil {
		out = app.opts.Stderr
	}
	if app.cfg.Log.File != "" {
		f, err := OpenLogFile(app.cfg.Log.File)
		if err != nil {
			return NewComponentError("log", "open", err)
		}
		app.closers = append(app.closers, f)
		out = f
	}
	app.log = NewLogger(LoggerConfig{
		Level:  ParseLogLevel(app.cfg.Log.Level),
		Output: out,
		Prefix: "tuikit",
	})
	return nil
}

// language returns the language set by option or config, if any.
func (app *Application) language() string {
	if app.opts.Language != "" {
		return app.opts.Language
	}
	return app.cfg.Highlight.Language
}

func gutterConfig(vc config.ViewConfig) gutter.Config {
	gc := gutter.DefaultConfig()
	gc.ShowLineNumbers = vc.LineNumbers
	gc.RelativeLineNumbers = vc.RelativeLineNumbers
	return gc
}

// SetBackend sets the terminal backend. It must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run initializes the backend and runs the event loop until the user
// quits, ctx is cancelled or Shutdown is called.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return NewComponentError("backend", "init", err)
	}
	defer b.Shutdown()

	err := app.eventLoop(ctx, b)
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}

// Shutdown asks a running event loop to stop. It does not wait.
func (app *Application) Shutdown() error {
	if !app.running.Load() {
		return ErrNotRunning
	}
	app.doneOnce.Do(func() { close(app.done) })
	return nil
}

// Close releases the controller, the watcher and the highlighter. It is
// safe to call more than once.
func (app *Application) Close() error {
	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		return nil
	}
	app.closed = true
	app.mu.Unlock()

	var errs ErrorList
	if app.watcher != nil {
		errs.Add(app.watcher.Close())
	}
	if app.ctrl != nil {
		app.ctrl.Destroy()
	}

	if app.log != nil {
		s := app.metrics.Snapshot()
		app.log.Debug("frames=%d avg=%s max=%s settles=%d stale=%d failed=%d",
			s.Frames, s.AvgFrameTime, s.MaxFrameTime, s.Settles(), s.Stale, s.Failed)
	}

	// Closed in reverse order so the log file goes last.
	for i := len(app.closers) - 1; i >= 0; i-- {
		errs.Add(app.closers[i].Close())
	}
	return errs.AsError()
}

// IsRunning reports whether the event loop is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the active configuration.
func (app *Application) Config() config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.cfg
}

// Controller returns the code view controller.
func (app *Application) Controller() *codeview.Controller {
	return app.ctrl
}

// View returns the view.
func (app *Application) View() *view.View {
	return app.view
}

// Metrics returns the frame and highlight counters.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.log
}
