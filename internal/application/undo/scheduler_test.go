package undo

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduler_FiresAfterDelay(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s := NewScheduler(clock)

	var runs atomic.Int32
	s.Schedule(8*time.Second, func() { runs.Add(1) })

	clock.Advance(7 * time.Second)
	if runs.Load() != 0 {
		t.Fatalf("task ran before its delay")
	}

	clock.Advance(time.Second)
	if runs.Load() != 1 {
		t.Fatalf("expected task to run once, ran %d times", runs.Load())
	}

	clock.Advance(time.Minute)
	if runs.Load() != 1 {
		t.Errorf("task ran again: %d", runs.Load())
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestToken_CancelAtMostOnce(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s := NewScheduler(clock)

	var runs atomic.Int32
	token := s.Schedule(time.Second, func() { runs.Add(1) })

	if !token.Cancel() {
		t.Fatal("first Cancel() should succeed")
	}
	if token.Cancel() {
		t.Error("second Cancel() should fail")
	}

	clock.Advance(time.Hour)
	if runs.Load() != 0 {
		t.Errorf("cancelled task ran")
	}
	if clock.Pending() != 0 {
		t.Errorf("timer not stopped")
	}
	s.Wait()
}

func TestToken_CancelAfterFire(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s := NewScheduler(clock)

	token := s.Schedule(time.Second, func() {})
	clock.Advance(time.Second)

	if token.Cancel() {
		t.Error("Cancel() after the task ran should fail")
	}
}

func TestScheduler_Flush(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	s := NewScheduler(clock)

	var runs atomic.Int32
	for i := 0; i < 3; i++ {
		s.Schedule(time.Duration(i+1)*time.Second, func() { runs.Add(1) })
	}
	cancelled := s.Schedule(time.Second, func() { runs.Add(100) })
	cancelled.Cancel()

	s.Flush()
	if runs.Load() != 3 {
		t.Fatalf("Flush() ran %d tasks, want 3", runs.Load())
	}

	clock.Advance(time.Hour)
	if runs.Load() != 3 {
		t.Errorf("flushed tasks ran again: %d", runs.Load())
	}
}

func TestScheduler_SystemClock(t *testing.T) {
	s := NewScheduler(nil)
	done := make(chan struct{})
	s.Schedule(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not run on the system clock")
	}
	s.Wait()
}
