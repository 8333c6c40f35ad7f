package codeview

import (
	"context"
	"sync"
)

// Executor runs tasks posted by a Controller.
//
// Post must not block and must not run the task before returning; the
// controller relies on tasks running after the current call stack unwinds.
// Tasks posted to one executor must run one at a time.
type Executor interface {
	Post(task func())
}

// ExecutorFunc adapts a function, such as an event loop's post method, to
// the Executor interface.
type ExecutorFunc func(task func())

// Post calls f(task).
func (f ExecutorFunc) Post(task func()) {
	f(task)
}

// ManualExecutor queues tasks until the owner runs them. It makes flush and
// settle ordering fully deterministic in tests.
type ManualExecutor struct {
	mu     sync.Mutex
	queue  []func()
	notify chan struct{}
}

// NewManualExecutor creates an empty manual executor.
func NewManualExecutor() *ManualExecutor {
	return &ManualExecutor{notify: make(chan struct{}, 1)}
}

// Post queues a task.
func (e *ManualExecutor) Post(task func()) {
	e.mu.Lock()
	e.queue = append(e.queue, task)
	e.mu.Unlock()

	select {
	case e.notify <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued tasks.
func (e *ManualExecutor) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

// RunOne runs the oldest queued task. It returns false if none was queued.
func (e *ManualExecutor) RunOne() bool {
	e.mu.Lock()
	if len(e.queue) == 0 {
		e.mu.Unlock()
		return false
	}
	task := e.queue[0]
	e.queue = e.queue[1:]
	e.mu.Unlock()

	task()
	return true
}

// Flush runs queued tasks, including ones posted while flushing, until the
// queue is empty. It returns the number of tasks run.
func (e *ManualExecutor) Flush() int {
	n := 0
	for e.RunOne() {
		n++
	}
	return n
}

// Await blocks until at least one task is queued, then flushes. It returns
// the context's error if it ends first.
func (e *ManualExecutor) Await(ctx context.Context) (int, error) {
	for {
		if e.Pending() > 0 {
			return e.Flush(), nil
		}
		select {
		case <-e.notify:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}

// SerialExecutor runs tasks one at a time on a dedicated goroutine.
type SerialExecutor struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	done   chan struct{}
	closed bool
}

// NewSerialExecutor starts a serial executor.
func NewSerialExecutor() *SerialExecutor {
	e := &SerialExecutor{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go e.loop()
	return e
}

// Post queues a task. Tasks posted after Close are dropped.
func (e *SerialExecutor) Post(task func()) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.queue = append(e.queue, task)
	e.mu.Unlock()

	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// Close stops the executor. Queued tasks that have not started are dropped;
// a task that is already running finishes on its own. Close does not wait,
// so it is safe to call from inside a task.
func (e *SerialExecutor) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.queue = nil
	e.mu.Unlock()

	close(e.done)
}

func (e *SerialExecutor) loop() {
	for {
		select {
		case <-e.done:
			return
		case <-e.wake:
		}
		for {
			e.mu.Lock()
			if e.closed || len(e.queue) == 0 {
				e.mu.Unlock()
				break
			}
			task := e.queue[0]
			e.queue = e.queue[1:]
			e.mu.Unlock()
			task()
		}
	}
}
