// internal/visitor/session.go
//
// Visitor session: one modal controller on its own event loop.
//
// Context
// -------
// In the browser the modal lived in one page.  Over HTTP every visitor gets
// the same shape: a Session holds a modal.Controller whose every call,
// timer, and webhook completion runs on the session's eventloop.Loop.
// Handlers reach the controller only through Do, which blocks until the
// callback has run on that loop.
//
// Notes
// -----
//   - lastSeen is UnixNano, read by the evictor without the loop.
//   - Eviction first retires the session on its own loop, so callbacks
//     queued behind the retirement never reach the controller; then Close
//     stops the loop.
package visitor

import (
	"sync/atomic"
	"time"

	"github.com/yanizio/leadmodal/internal/eventloop"
	"github.com/yanizio/leadmodal/internal/locale"
	"github.com/yanizio/leadmodal/internal/modal"
)

// Session is one visitor's modal.
type Session struct {
	ID   string
	Lang locale.Lang

	loop     *eventloop.Loop
	ctrl     *modal.Controller
	retired  bool // loop-only
	lastSeen atomic.Int64
}

// Do runs fn on the session loop and waits for it.  It returns
// eventloop.ErrStopped without running fn once the session is retired.
func (s *Session) Do(fn func(c *modal.Controller)) error {
	s.touch()
	var skipped bool
	err := s.loop.Do(func() {
		if s.retired {
			skipped = true
			return
		}
		fn(s.ctrl)
	})
	if err == nil && skipped {
		err = eventloop.ErrStopped
	}
	return err
}

// View is a convenience wrapper returning the current snapshot.
func (s *Session) View() (modal.View, error) {
	var v modal.View
	err := s.Do(func(c *modal.Controller) { v = c.View() })
	return v, err
}

// retire marks the session closed unless a webhook call is in flight.  The
// check and the mark happen in one loop callback, so no Submit can slip in
// between.  A stopped loop retires trivially.
func (s *Session) retire() bool {
	ok := true
	_ = s.loop.Do(func() {
		if s.ctrl.Submitting() {
			ok = false
			return
		}
		s.retired = true
	})
	return ok
}

func (s *Session) touch() { s.lastSeen.Store(time.Now().UnixNano()) }

func (s *Session) idleFor(now time.Time) time.Duration {
	return time.Duration(now.UnixNano() - s.lastSeen.Load())
}

// Close stops the session loop.
func (s *Session) Close() { s.loop.Stop() }
