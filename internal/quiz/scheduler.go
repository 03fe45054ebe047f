package quiz

import (
	"sync"
	"time"
)

// Scheduler runs at most one repeating task per group. Each registration is
// keyed by the group ID so it can be cancelled without holding a reference to
// the task itself.
type Scheduler struct {
	mu   sync.Mutex
	jobs map[int64]*Registration
}

func NewScheduler() *Scheduler {
	return &Scheduler{jobs: make(map[int64]*Registration)}
}

// Registration is the cancellation token returned at schedule time.
type Registration struct {
	groupID int64
	stop    chan struct{}
	once    sync.Once
	sched   *Scheduler
}

// ScheduleRepeating starts a repeating task for the group. It fails with
// ErrAlreadyActive if a registration already exists, so a group can never be
// double-scheduled.
func (s *Scheduler) ScheduleRepeating(groupID int64, initialDelay, period time.Duration, task func()) (*Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[groupID]; exists {
		return nil, ErrAlreadyActive
	}
	reg := &Registration{
		groupID: groupID,
		stop:    make(chan struct{}),
		sched:   s,
	}
	s.jobs[groupID] = reg
	go reg.run(initialDelay, period, task)
	return reg, nil
}

// Cancel cancels a group's registration if one exists. Idempotent.
func (s *Scheduler) Cancel(groupID int64) {
	s.mu.Lock()
	reg := s.jobs[groupID]
	s.mu.Unlock()
	if reg != nil {
		reg.Cancel()
	}
}

// Scheduled reports whether the group has a live registration.
func (s *Scheduler) Scheduled(groupID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.jobs[groupID]
	return ok
}

func (r *Registration) run(initialDelay, period time.Duration, task func()) {
	timer := time.NewTimer(initialDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-r.stop:
		return
	}
	task()

	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			task()
		case <-r.stop:
			return
		}
	}
}

// Cancel stops the task. Safe to call repeatedly, including from inside the
// task's own invocation.
func (r *Registration) Cancel() {
	r.once.Do(func() {
		close(r.stop)
		r.sched.mu.Lock()
		if r.sched.jobs[r.groupID] == r {
			delete(r.sched.jobs, r.groupID)
		}
		r.sched.mu.Unlock()
	})
}
