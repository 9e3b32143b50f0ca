package motion

import "sort"

// TimerID identifies a scheduled callback. IDs increase monotonically and are
// never reused by a Scheduler.
type TimerID uint64

type timer struct {
	id  TimerID
	due float64
	fn  func()
}

// Scheduler runs deferred callbacks on the simulation thread. Time only moves
// when Advance is called.
type Scheduler struct {
	now    float64
	nextID TimerID
	timers []timer
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler's simulated time.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After schedules fn to run once delay has elapsed.
func (s *Scheduler) After(delay float64, fn func()) TimerID {
	s.nextID++
	if delay < 0 {
		delay = 0
	}
	s.timers = append(s.timers, timer{id: s.nextID, due: s.now + delay, fn: fn})
	return s.nextID
}

// Cancel drops a pending timer. It reports whether the timer was pending.
func (s *Scheduler) Cancel(id TimerID) bool {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Pending reports whether id has yet to fire.
func (s *Scheduler) Pending(id TimerID) bool {
	for _, t := range s.timers {
		if t.id == id {
			return true
		}
	}
	return false
}

// Advance moves time forward by dt and fires every timer that came due, in
// due order. Callbacks scheduled while firing wait for the next Advance.
func (s *Scheduler) Advance(dt float64) {
	if dt > 0 {
		s.now += dt
	}
	if len(s.timers) == 0 {
		return
	}

	var due, keep []timer
	for _, t := range s.timers {
		if t.due <= s.now {
			due = append(due, t)
		} else {
			keep = append(keep, t)
		}
	}
	if len(due) == 0 {
		return
	}
	s.timers = keep

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due == due[j].due {
			return due[i].id < due[j].id
		}
		return due[i].due < due[j].due
	})
	for _, t := range due {
		if t.fn != nil {
			t.fn()
		}
	}
}
