package quiz

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduleRepeating_RejectsDoubleSchedule(t *testing.T) {
	s := NewScheduler()
	defer s.Cancel(1)

	if _, err := s.ScheduleRepeating(1, time.Hour, time.Hour, func() {}); err != nil {
		t.Fatalf("ScheduleRepeating() error = %v", err)
	}

	_, err := s.ScheduleRepeating(1, time.Hour, time.Hour, func() {})
	if !errors.Is(err, ErrAlreadyActive) {
		t.Errorf("second ScheduleRepeating() error = %v, want ErrAlreadyActive", err)
	}
}

func TestCancel_Idempotent(t *testing.T) {
	s := NewScheduler()

	reg, err := s.ScheduleRepeating(1, time.Hour, time.Hour, func() {})
	if err != nil {
		t.Fatalf("ScheduleRepeating() error = %v", err)
	}

	s.Cancel(1)
	s.Cancel(1)
	reg.Cancel()

	if s.Scheduled(1) {
		t.Error("Scheduled() = true after Cancel()")
	}

	// Cancelling a group with no registration must not panic.
	s.Cancel(99)
}

func TestCancelledTaskStopsTicking(t *testing.T) {
	s := NewScheduler()

	var ticks atomic.Int32
	_, err := s.ScheduleRepeating(1, time.Millisecond, 5*time.Millisecond, func() {
		ticks.Add(1)
	})
	if err != nil {
		t.Fatalf("ScheduleRepeating() error = %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for ticks.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if ticks.Load() < 2 {
		t.Fatal("task never ticked")
	}

	s.Cancel(1)
	after := ticks.Load()
	time.Sleep(50 * time.Millisecond)
	// One in-flight tick may still land right as Cancel runs.
	if delta := ticks.Load() - after; delta > 1 {
		t.Errorf("task ticked %d times after Cancel()", delta)
	}
}

func TestCancelDuringInitialDelaySkipsTask(t *testing.T) {
	s := NewScheduler()

	var ticks atomic.Int32
	_, err := s.ScheduleRepeating(1, 100*time.Millisecond, time.Hour, func() {
		ticks.Add(1)
	})
	if err != nil {
		t.Fatalf("ScheduleRepeating() error = %v", err)
	}

	s.Cancel(1)
	time.Sleep(200 * time.Millisecond)

	if got := ticks.Load(); got != 0 {
		t.Errorf("task ran %d times, want 0", got)
	}
}

func TestCancelFromInsideTask(t *testing.T) {
	s := NewScheduler()

	done := make(chan struct{})
	var once atomic.Bool
	_, err := s.ScheduleRepeating(1, time.Millisecond, time.Hour, func() {
		if once.CompareAndSwap(false, true) {
			s.Cancel(1)
			close(done)
		}
	})
	if err != nil {
		t.Fatalf("ScheduleRepeating() error = %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}

	if s.Scheduled(1) {
		t.Error("Scheduled() = true after Cancel from inside the task")
	}
}

func TestRescheduleAfterCancel(t *testing.T) {
	s := NewScheduler()

	if _, err := s.ScheduleRepeating(1, time.Hour, time.Hour, func() {}); err != nil {
		t.Fatalf("ScheduleRepeating() error = %v", err)
	}
	s.Cancel(1)

	if _, err := s.ScheduleRepeating(1, time.Hour, time.Hour, func() {}); err != nil {
		t.Errorf("ScheduleRepeating() after Cancel error = %v", err)
	}
	s.Cancel(1)
}
