package eventloop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func TestManual_AdvanceFiresInOrder(t *testing.T) {
	start := time.Unix(0, 0)
	m := NewManual(start)

	var got []string
	m.After(300*time.Millisecond, func() { got = append(got, "b") })
	m.After(100*time.Millisecond, func() { got = append(got, "a") })
	cancel := m.After(200*time.Millisecond, func() { got = append(got, "cancelled") })
	cancel()

	m.Advance(250 * time.Millisecond)
	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("after 250ms got %v", got)
	}
	if !m.Now().Equal(start.Add(250 * time.Millisecond)) {
		t.Fatalf("Now = %v", m.Now())
	}

	m.Advance(50 * time.Millisecond)
	if len(got) != 2 || got[1] != "b" {
		t.Fatalf("after 300ms got %v", got)
	}
}

func TestManual_TimerScheduledByTimer(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	fired := 0
	m.After(time.Second, func() {
		m.After(time.Second, func() { fired++ })
	})
	m.Advance(2 * time.Second)
	if fired != 1 {
		t.Fatalf("nested timer fired %d times, want 1", fired)
	}
}

func TestManual_GoParksUntilDrain(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	var order []string
	m.Go(func(context.Context) { order = append(order, "work") }, func() { order = append(order, "done") })

	if m.Pending() != 1 || len(order) != 0 {
		t.Fatalf("job ran before Drain: %v", order)
	}
	if n := m.Drain(); n != 1 {
		t.Fatalf("Drain ran %d jobs", n)
	}
	if len(order) != 2 || order[0] != "work" || order[1] != "done" {
		t.Fatalf("order = %v", order)
	}
}

func TestLoop_DoAfterGo(t *testing.T) {
	l := New(zaptest.NewLogger(t).Sugar())
	defer l.Stop()

	var n int64
	if err := l.Do(func() { n++ }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if n != 1 {
		t.Fatalf("n = %d", n)
	}

	fired := make(chan struct{})
	l.After(10*time.Millisecond, func() { close(fired) })
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("After callback never ran")
	}

	var onLoop atomic.Bool
	finished := make(chan struct{})
	l.Go(func(ctx context.Context) {}, func() {
		onLoop.Store(true)
		close(finished)
	})
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("Go done callback never ran")
	}
	if !onLoop.Load() {
		t.Fatal("done did not run")
	}
}

func TestLoop_CancelledTimerDoesNotFire(t *testing.T) {
	l := New(zaptest.NewLogger(t).Sugar())
	defer l.Stop()

	var fired atomic.Bool
	var cancel Cancel
	_ = l.Do(func() { cancel = l.After(20*time.Millisecond, func() { fired.Store(true) }) })
	_ = l.Do(func() { cancel() })

	time.Sleep(60 * time.Millisecond)
	_ = l.Do(func() {})
	if fired.Load() {
		t.Fatal("cancelled timer fired")
	}
}

func TestLoop_StopRejectsWork(t *testing.T) {
	l := New(zaptest.NewLogger(t).Sugar())
	l.Stop()
	l.Stop()
	if err := l.Do(func() {}); err != ErrStopped {
		t.Fatalf("Do after Stop = %v, want ErrStopped", err)
	}
}

func TestLoop_PanicIsContained(t *testing.T) {
	l := New(zaptest.NewLogger(t).Sugar())
	defer l.Stop()

	_ = l.Do(func() { panic("boom") })
	if err := l.Do(func() {}); err != nil {
		t.Fatalf("loop died after panic: %v", err)
	}
}

func TestLoop_DoReportsRunEvenWhenLoopStopsRightAfter(t *testing.T) {
	log := zaptest.NewLogger(t).Sugar()
	for i := 0; i < 50; i++ {
		l := New(log)
		ran := false
		err := l.Do(func() {
			ran = true
			go l.Stop()
			<-l.quit
		})
		if !ran || err != nil {
			t.Fatalf("iteration %d: ran=%v err=%v, want fn run and nil", i, ran, err)
		}
		l.Stop()
	}
}
