package poll

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPollerRunsDueJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs int32
	p := NewPoller(ctx)
	p.AddJob(&Job{
		Name:     "history",
		Interval: time.Hour, // first run only
		Run: func(ctx context.Context) error {
			atomic.AddInt32(&runs, 1)
			return nil
		},
	})

	go p.Run()
	time.Sleep(1500 * time.Millisecond)

	if got := atomic.LoadInt32(&runs); got != 1 {
		t.Errorf("runs = %d, want 1 (immediate first run, then interval)", got)
	}
}

func TestKickSchedulesJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs int32
	p := NewPoller(ctx)
	p.AddJob(&Job{
		Name:     "history",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			atomic.AddInt32(&runs, 1)
			return nil
		},
	})

	go p.Run()
	time.Sleep(1500 * time.Millisecond)

	if !p.Kick("history") {
		t.Fatal("Kick returned false for known job")
	}
	if p.Kick("unknown") {
		t.Error("Kick returned true for unknown job")
	}

	time.Sleep(1500 * time.Millisecond)
	if got := atomic.LoadInt32(&runs); got != 2 {
		t.Errorf("runs = %d, want 2 after kick", got)
	}
}

func TestJobErrorTracked(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPoller(ctx)
	p.AddJob(&Job{
		Name:     "status",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			return errors.New("backend down")
		},
	})

	go p.Run()
	time.Sleep(1500 * time.Millisecond)

	statuses := p.Statuses()
	if len(statuses) != 1 {
		t.Fatalf("statuses = %d, want 1", len(statuses))
	}
	st := statuses[0]
	if st.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", st.ErrorCount)
	}
	if st.LastError == "" {
		t.Error("LastError empty, want message")
	}
	// A failed poll retries at half the interval.
	if wait := time.Until(st.NextRun); wait > 31*time.Minute {
		t.Errorf("retry scheduled %v out, want half interval", wait)
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	p := NewPoller(ctx)
	done := make(chan struct{})
	go func() {
		p.Run()
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not stop after context cancel")
	}
}
