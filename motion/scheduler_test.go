package motion

import (
	"reflect"
	"testing"
)

func TestSchedulerFiresInDueOrder(t *testing.T) {
	s := NewScheduler()
	var fired []string
	s.After(0.3, func() { fired = append(fired, "c") })
	s.After(0.1, func() { fired = append(fired, "a") })
	s.After(0.2, func() { fired = append(fired, "b") })

	s.Advance(0.15)
	if !reflect.DeepEqual(fired, []string{"a"}) {
		t.Fatalf("after 0.15 fired %v", fired)
	}
	s.Advance(0.5)
	if !reflect.DeepEqual(fired, []string{"a", "b", "c"}) {
		t.Fatalf("after 0.65 fired %v", fired)
	}
}

func TestSchedulerCancel(t *testing.T) {
	cases := []struct {
		name      string
		cancel    bool
		wantFired bool
	}{
		{"cancelled", true, false},
		{"kept", false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScheduler()
			fired := false
			id := s.After(0.1, func() { fired = true })
			if tc.cancel && !s.Cancel(id) {
				t.Fatalf("Cancel should report a pending timer")
			}
			s.Advance(1)
			if fired != tc.wantFired {
				t.Fatalf("fired = %v, want %v", fired, tc.wantFired)
			}
			if s.Cancel(id) {
				t.Fatalf("Cancel after fire/cancel should report false")
			}
		})
	}
}

func TestSchedulerIDsAreMonotonic(t *testing.T) {
	s := NewScheduler()
	a := s.After(1, nil)
	s.Cancel(a)
	b := s.After(1, nil)
	if b <= a {
		t.Fatalf("ids should never be reused: %d then %d", a, b)
	}
}

func TestSchedulerDefersTimersAddedWhileFiring(t *testing.T) {
	s := NewScheduler()
	inner := false
	s.After(0, func() {
		s.After(0, func() { inner = true })
	})
	s.Advance(0)
	if inner {
		t.Fatalf("a timer scheduled during Advance should wait for the next one")
	}
	s.Advance(0)
	if !inner {
		t.Fatalf("deferred timer should fire on the next Advance")
	}
}
