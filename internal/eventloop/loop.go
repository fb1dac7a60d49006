// internal/eventloop/loop.go
//
// Leadmodal – single-threaded scheduling for the modal controller.
//
// Context
//   The controller is written as if it owned the only thread: no locks, no
//   atomics.  Everything that touches it (user events, timer callbacks, and
//   webhook completions) must therefore arrive on one goroutine.  Scheduler is
//   that contract:
//
//   •  After – run fn on the loop once d has elapsed, unless cancelled.
//   •  Go    – run work off the loop (it may block on the network), then run
//              done on the loop.
//   •  Now   – the loop's clock.
//
//   Loop is the production implementation: one goroutine draining a task
//   channel.  Manual (manual.go) runs on the caller's goroutine with virtual
//   time so tests can step through timers deterministically.
//
//------------------------------------------------------------------------------

package eventloop

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrStopped is returned when posting to a stopped Loop.
var ErrStopped = errors.New("event loop stopped")

// Cancel stops a pending After callback.  It must be called on the loop and is
// safe to call more than once.
type Cancel func()

// Scheduler serialises callbacks onto one logical thread.
type Scheduler interface {
	Now() time.Time
	After(d time.Duration, fn func()) Cancel
	Go(work func(ctx context.Context), done func())
}

// Loop runs callbacks on a single goroutine.
type Loop struct {
	tasks chan func()
	quit  chan struct{}
	done  chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	stopOnce sync.Once
	log      *zap.SugaredLogger
}

var _ Scheduler = (*Loop)(nil)

// New starts a Loop.  Call Stop to release its goroutine.
func New(log *zap.SugaredLogger) *Loop {
	if log == nil {
		log = zap.S()
	}
	ctx, cancel := context.WithCancel(context.Background())
	l := &Loop{
		tasks:  make(chan func(), 64),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for {
		select {
		case fn := <-l.tasks:
			l.exec(fn)
		case <-l.quit:
			return
		}
	}
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Errorw("event loop task panicked", "panic", r)
		}
	}()
	fn()
}

// Post queues fn.  It reports false when the loop is stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.quit:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.quit:
		return false
	}
}

// Do runs fn on the loop and waits for it.  Never call Do from the loop
// itself.
func (l *Loop) Do(fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrStopped
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		// fn may have run just before the loop exited.
		select {
		case <-finished:
			return nil
		default:
			return ErrStopped
		}
	}
}

// Now implements Scheduler.
func (l *Loop) Now() time.Time { return time.Now() }

// After implements Scheduler.
func (l *Loop) After(d time.Duration, fn func()) Cancel {
	cancelled := false // only touched on the loop
	t := time.AfterFunc(d, func() {
		l.Post(func() {
			if !cancelled {
				fn()
			}
		})
	})
	return func() {
		cancelled = true
		t.Stop()
	}
}

// Go implements Scheduler.  work receives a context cancelled by Stop.
func (l *Loop) Go(work func(ctx context.Context), done func()) {
	go func() {
		work(l.ctx)
		l.Post(done)
	}()
}

// Stop ends the loop.  Queued tasks that have not started are dropped.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		l.cancel()
		close(l.quit)
		<-l.done
	})
}
