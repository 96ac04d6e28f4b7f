package undo

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	tokenPending int32 = iota
	tokenFired
	tokenCanceled
)

// Token controls one scheduled task
type Token struct {
	s     *Scheduler
	task  func()
	timer Timer
	state atomic.Int32
}

// Cancel prevents the task from running. It succeeds at most once and only
// before the task has started.
func (t *Token) Cancel() bool {
	if t == nil || !t.state.CompareAndSwap(tokenPending, tokenCanceled) {
		return false
	}
	t.s.mu.Lock()
	timer := t.timer
	t.s.mu.Unlock()
	if timer != nil {
		timer.Stop()
	}
	t.s.settle(t)
	return true
}

// Scheduler runs cancellable deferred tasks
type Scheduler struct {
	clock Clock

	mu      sync.Mutex
	pending map[*Token]struct{}
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler on clock, or the system clock if nil
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{
		clock:   clock,
		pending: make(map[*Token]struct{}),
	}
}

// Now returns the scheduler's current time
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// Schedule runs task after delay unless the returned token is cancelled first
func (s *Scheduler) Schedule(delay time.Duration, task func()) *Token {
	t := &Token{s: s, task: task}

	s.mu.Lock()
	s.pending[t] = struct{}{}
	s.wg.Add(1)
	s.mu.Unlock()

	timer := s.clock.AfterFunc(delay, func() { s.fire(t) })

	s.mu.Lock()
	t.timer = timer
	s.mu.Unlock()
	return t
}

func (s *Scheduler) fire(t *Token) {
	if !t.state.CompareAndSwap(tokenPending, tokenFired) {
		return
	}
	defer s.settle(t)
	t.task()
}

func (s *Scheduler) settle(t *Token) {
	s.mu.Lock()
	delete(s.pending, t)
	s.mu.Unlock()
	s.wg.Done()
}

// Len returns the number of tasks that have neither run nor been cancelled
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Flush runs every pending task now and waits for all tasks to finish
func (s *Scheduler) Flush() {
	s.mu.Lock()
	tokens := make([]*Token, 0, len(s.pending))
	for t := range s.pending {
		tokens = append(tokens, t)
	}
	s.mu.Unlock()

	var wg sync.WaitGroup
	for _, t := range tokens {
		s.mu.Lock()
		timer := t.timer
		s.mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.fire(t)
		}()
	}
	wg.Wait()
	s.wg.Wait()
}

// Wait blocks until every scheduled task has run or been cancelled
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
