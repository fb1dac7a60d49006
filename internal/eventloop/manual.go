package eventloop

import (
	"context"
	"sort"
	"time"
)

// Manual is a Scheduler driven by the test: time moves only on Advance and
// async work runs only on Drain.  Not safe for concurrent use.
type Manual struct {
	now     time.Time
	seq     int
	timers  []*manualTimer
	pending []manualJob
}

type manualTimer struct {
	due       time.Time
	seq       int
	fn        func()
	cancelled bool
}

type manualJob struct {
	work func(ctx context.Context)
	done func()
}

var _ Scheduler = (*Manual)(nil)

// NewManual returns a Manual clock set to start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now implements Scheduler.
func (m *Manual) Now() time.Time { return m.now }

// After implements Scheduler.
func (m *Manual) After(d time.Duration, fn func()) Cancel {
	m.seq++
	t := &manualTimer{due: m.now.Add(d), seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return func() { t.cancelled = true }
}

// Go implements Scheduler.  The job is parked until Drain.
func (m *Manual) Go(work func(ctx context.Context), done func()) {
	m.pending = append(m.pending, manualJob{work: work, done: done})
}

// Pending reports parked async jobs.
func (m *Manual) Pending() int { return len(m.pending) }

// Drain runs parked jobs in FIFO order, including any queued while draining,
// and returns how many ran.
func (m *Manual) Drain() int {
	n := 0
	for len(m.pending) > 0 {
		job := m.pending[0]
		m.pending = m.pending[1:]
		job.work(context.Background())
		job.done()
		n++
	}
	return n
}

// Advance moves the clock forward by d, firing due timers in due order.  Each
// timer sees Now equal to its due time.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		t := m.nextDue(target)
		if t == nil {
			break
		}
		m.now = t.due
		t.fn()
	}
	m.now = target
}

func (m *Manual) nextDue(limit time.Time) *manualTimer {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.timers = live
	if len(live) == 0 {
		return nil
	}

	sort.SliceStable(live, func(i, j int) bool {
		if live[i].due.Equal(live[j].due) {
			return live[i].seq < live[j].seq
		}
		return live[i].due.Before(live[j].due)
	})
	first := live[0]
	if first.due.After(limit) {
		return nil
	}
	m.timers = live[1:]
	return first
}
