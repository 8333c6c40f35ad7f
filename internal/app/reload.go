package app

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/dshills/tuikit/internal/config"
)

// startWatcher watches the viewed file, the config file and the theme
// file. Change events are handled on the event loop.
func (app *Application) startWatcher() error {
	log := app.log.WithComponent("watcher")
	w, err := config.NewWatcher(config.WithErrorHandler(func(err error) {
		log.Warn("%v", err)
	}))
	if err != nil {
		return err
	}
	app.watcher = w

	for _, path := range app.watchedPaths() {
		if err := w.Watch(path); err != nil {
			log.Warn("cannot watch %s: %v", path, err)
		}
	}

	w.OnChange(func(ev config.Event) {
		app.loop.Post(func() { app.handleFileEvent(ev) })
	})
	return nil
}

func (app *Application) watchedPaths() []string {
	var paths []string
	if app.path != "" {
		paths = append(paths, app.path)
	}
	if p := absPath(app.opts.ConfigPath); p != "" && app.opts.Config == nil {
		paths = append(paths, p)
	}
	if p := absPath(app.cfg.Theme.File); p != "" {
		paths = append(paths, p)
	}
	return paths
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return ""
	}
	return abs
}

// handleFileEvent reacts to a change on disk. It runs on the event loop.
func (app *Application) handleFileEvent(ev config.Event) {
	app.log.Debug("%s %s", ev.Op, ev.Path)

	switch ev.Path {
	case app.path:
		app.reloadContent(ev)
	case absPath(app.opts.ConfigPath):
		app.reloadConfig()
	case absPath(app.Config().Theme.File):
		app.reloadTheme(app.Config().Theme)
	}
}

// reloadContent replaces the controller's content with the file's. A
// removed file leaves the last content on screen.
func (app *Application) reloadContent(ev config.Event) {
	if ev.Op == config.OpRemove || ev.Op == config.OpRename {
		app.log.Warn("%s was removed; keeping the last content", app.opts.Path)
		return
	}
	data, err := os.ReadFile(app.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			app.log.Warn("%v", NewOperationError("reload", app.opts.Path, err))
		}
		return
	}
	app.ctrl.SetContent(string(data))
}

// reloadConfig re-reads the config file and applies the settings that can
// change while running. An invalid file is reported and ignored.
func (app *Application) reloadConfig() {
	cfg, err := app.loadConfig()
	if err != nil {
		app.log.Warn("%v", NewComponentError("config", "reload", err))
		return
	}
	app.applyConfig(cfg)
}

// applyConfig applies cfg's highlight flags, language, theme and log
// level. The backend cannot change without a restart.
func (app *Application) applyConfig(cfg config.Config) {
	app.mu.Lock()
	old := app.cfg
	app.cfg = cfg
	app.mu.Unlock()

	if cfg.Highlight.Backend != old.Highlight.Backend {
		app.log.Warn("highlight backend change to %q needs a restart", cfg.Highlight.Backend)
	}

	// Each setter schedules a highlight, so only changed values are set.
	hl, prev := cfg.Highlight, old.Highlight
	if hl.Conceal != prev.Conceal {
		app.ctrl.SetConceal(hl.Conceal)
	}
	if hl.DrawUnstyledBeforeReady != prev.DrawUnstyledBeforeReady {
		app.ctrl.SetDrawUnstyledBeforeReady(hl.DrawUnstyledBeforeReady)
	}
	if hl.Streaming != prev.Streaming {
		app.ctrl.SetStreaming(hl.Streaming)
	}
	if app.opts.Language == "" && hl.Language != prev.Language {
		app.ctrl.SetLanguage(DetectLanguage(hl.Language, app.opts.Path))
	}

	if cfg.Theme != old.Theme {
		app.reloadTheme(cfg.Theme)
		if app.watcher != nil && cfg.Theme.File != "" {
			if err := app.watcher.Watch(cfg.Theme.File); err != nil {
				app.log.Warn("cannot watch %s: %v", cfg.Theme.File, err)
			}
		}
	}

	if app.opts.Logger == nil {
		app.log.SetLevel(ParseLogLevel(cfg.Log.Level))
	}
	app.log.Info("config reloaded")
}

func (app *Application) reloadTheme(tc config.ThemeConfig) {
	theme, err := config.ResolveTheme(tc, app.themes)
	if err != nil {
		app.log.Warn("%v", NewComponentError("theme", "reload", err))
		return
	}
	app.view.SetTheme(theme)
}
