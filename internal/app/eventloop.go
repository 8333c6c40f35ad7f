package app

import (
	"context"
	"runtime/debug"
	"sync"
	"time"

	"github.com/dshills/tuikit/internal/renderer/backend"
)

// loopExecutor queues tasks for the event loop. It is the controller's
// executor, so flushes and settles run on the same goroutine that draws.
type loopExecutor struct {
	mu    sync.Mutex
	tasks []func()
	ready chan struct{}
}

func newLoopExecutor() *loopExecutor {
	return &loopExecutor{ready: make(chan struct{}, 1)}
}

// Post queues task and wakes the loop.
func (e *loopExecutor) Post(task func()) {
	e.mu.Lock()
	e.tasks = append(e.tasks, task)
	e.mu.Unlock()

	select {
	case e.ready <- struct{}{}:
	default:
	}
}

// drain runs the tasks queued so far. Tasks they post run on the next
// drain. A panicking task is reported to onPanic and the rest still run.
func (e *loopExecutor) drain(onPanic func(error)) int {
	e.mu.Lock()
	tasks := e.tasks
	e.tasks = nil
	e.mu.Unlock()

	for _, task := range tasks {
		runTask(task, onPanic)
	}
	return len(tasks)
}

func runTask(task func(), onPanic func(error)) {
	defer func() {
		if r := recover(); r != nil {
			onPanic(&RecoveredPanicError{Value: r, Stack: string(debug.Stack())})
		}
	}()
	task()
}

// eventLoop draws, then waits for input, a controller update or a queued
// task. It returns ErrQuit when the user quits.
func (app *Application) eventLoop(ctx context.Context, b backend.Backend) error {
	stop := make(chan struct{})
	events := app.startInputPolling(b, stop)
	defer func() {
		close(stop)
		// Wake the poller so it sees the loop has stopped.
		b.PostInterrupt(nil)
	}()

	onPanic := func(err error) {
		app.log.Error("task failed: %v", err)
	}

	for {
		app.draw(b)

		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			app.metrics.RecordEvent()
			if err := app.handleBackendEvent(b, ev); err != nil {
				return err
			}

		case <-app.ctrl.Updates():

		case <-app.loop.ready:
			app.loop.drain(onPanic)

		case <-ctx.Done():
			return ctx.Err()

		case <-app.done:
			return nil
		}
	}
}

func (app *Application) draw(b backend.Backend) {
	start := time.Now()
	app.view.Draw(b)
	b.Show()
	app.metrics.RecordFrame(time.Since(start))
}

// startInputPolling starts a goroutine that feeds backend events to the
// returned channel. The channel is closed when the backend shuts down or
// stop is closed.
//
// PollEvent blocks, so the loop posts an interrupt when it exits to
// unblock it.
func (app *Application) startInputPolling(b backend.Backend, stop <-chan struct{}) <-chan backend.Event {
	events := make(chan backend.Event, 100)

	go func() {
		defer close(events)

		for {
			ev := b.PollEvent()
			if ev.Type == backend.EventClosed {
				return
			}
			select {
			case <-stop:
				return
			default:
			}
			if ev.Type == backend.EventNone || ev.Type == backend.EventInterrupt {
				continue
			}

			select {
			case events <- ev:
			case <-stop:
				return
			default:
				app.log.Debug("input queue full, dropping event")
			}
		}
	}()

	return events
}

// handleBackendEvent processes one backend event. It returns ErrQuit if
// the application should exit.
func (app *Application) handleBackendEvent(b backend.Backend, ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		// The view reads the size on every draw.
		return nil
	case backend.EventKey:
		return app.handleKeyEvent(b, ev)
	default:
		return nil
	}
}
