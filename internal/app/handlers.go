package app

import (
	"github.com/dshills/tuikit/internal/renderer/backend"
)

// action is a command bound to a key.
type action func(app *Application, b backend.Backend) error

// keyActions maps special keys to actions.
var keyActions = map[backend.Key]action{
	backend.KeyEscape:   quit,
	backend.KeyCtrlC:    quit,
	backend.KeyCtrlL:    redraw,
	backend.KeyUp:       scroll(-1),
	backend.KeyDown:     scroll(1),
	backend.KeyLeft:     scrollHorizontal(-4),
	backend.KeyRight:    scrollHorizontal(4),
	backend.KeyPageUp:   pageUp,
	backend.KeyPageDown: pageDown,
	backend.KeyHome:     scrollToTop,
	backend.KeyEnd:      scrollToBottom,
}

// runeActions maps printable keys to actions.
var runeActions = map[rune]action{
	'q': quit,
	'c': toggleConceal,
	's': toggleStreaming,
	'u': toggleDrawUnstyled,
	't': nextTheme,
	'j': scroll(1),
	'k': scroll(-1),
	'h': scrollHorizontal(-4),
	'l': scrollHorizontal(4),
	' ': pageDown,
	'b': pageUp,
	'd': halfPageDown,
	'g': scrollToTop,
	'G': scrollToBottom,
}

// handleKeyEvent runs the action bound to the key, if any.
func (app *Application) handleKeyEvent(b backend.Backend, ev backend.Event) error {
	var act action
	if ev.Key == backend.KeyRune {
		act = runeActions[ev.Rune]
	} else {
		act = keyActions[ev.Key]
	}
	if act == nil {
		return nil
	}
	return act(app, b)
}

func quit(*Application, backend.Backend) error {
	return ErrQuit
}

func redraw(_ *Application, b backend.Backend) error {
	b.Clear()
	return nil
}

func toggleConceal(app *Application, _ backend.Backend) error {
	v := !app.ctrl.Conceal()
	app.ctrl.SetConceal(v)
	app.log.Debug("conceal %t", v)
	return nil
}

func toggleStreaming(app *Application, _ backend.Backend) error {
	v := !app.ctrl.Streaming()
	app.ctrl.SetStreaming(v)
	app.log.Debug("streaming %t", v)
	return nil
}

func toggleDrawUnstyled(app *Application, _ backend.Backend) error {
	v := !app.ctrl.DrawUnstyledBeforeReady()
	app.ctrl.SetDrawUnstyledBeforeReady(v)
	app.log.Debug("draw unstyled before ready %t", v)
	return nil
}

// nextTheme switches to the theme after the current one, by name.
func nextTheme(app *Application, _ backend.Backend) error {
	names := app.themes.Names()
	if len(names) == 0 {
		return nil
	}
	current := app.view.Theme().Name
	next := names[0]
	for i, name := range names {
		if name == current {
			next = names[(i+1)%len(names)]
			break
		}
	}
	if theme, ok := app.themes.Get(next); ok {
		app.view.SetTheme(theme)
		app.log.Debug("theme %q", next)
	}
	return nil
}

func scroll(lines int) action {
	return func(app *Application, _ backend.Backend) error {
		app.view.Viewport().ScrollBy(lines)
		return nil
	}
}

func scrollHorizontal(cols int) action {
	return func(app *Application, _ backend.Backend) error {
		app.view.Viewport().ScrollHorizontalBy(cols)
		return nil
	}
}

func pageUp(app *Application, _ backend.Backend) error {
	app.view.Viewport().PageUp()
	return nil
}

func pageDown(app *Application, _ backend.Backend) error {
	app.view.Viewport().PageDown()
	return nil
}

func halfPageDown(app *Application, _ backend.Backend) error {
	app.view.Viewport().HalfPageDown()
	return nil
}

func scrollToTop(app *Application, _ backend.Backend) error {
	app.view.Viewport().ScrollToTop()
	return nil
}

func scrollToBottom(app *Application, _ backend.Backend) error {
	app.view.Viewport().ScrollToBottom()
	return nil
}
