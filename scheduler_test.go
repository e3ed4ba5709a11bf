package sunline

import "testing"

func TestScheduler_After(t *testing.T) {
	var s Scheduler
	fired := 0
	s.Add(After(0.5, func() { fired++ }))

	s.Tick(0.25)
	if fired != 0 {
		t.Fatal("fired early")
	}
	s.Tick(0.25)
	if fired != 1 {
		t.Errorf("fired = %d after 0.5s, want 1", fired)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	s.Tick(1)
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}

func TestScheduler_PauseGate(t *testing.T) {
	var s Scheduler
	fired := false
	s.Add(After(0.1, func() { fired = true }))

	s.SetPaused(true)
	for range 100 {
		s.Tick(0.1)
	}
	if fired {
		t.Fatal("task advanced while paused")
	}
	if !s.Paused() {
		t.Error("Paused() = false")
	}
	s.SetPaused(false)
	s.Tick(0.1)
	if !fired {
		t.Error("task did not resume")
	}
}

func TestScheduler_SequenceAndRepeat(t *testing.T) {
	var s Scheduler
	var calls []int
	s.Add(Sequence(Wait(0.125), Repeat(3, 0.25, func(i int) { calls = append(calls, i) })))

	steps := []struct {
		dt   float64
		want int
	}{
		{0.0625, 0},
		{0.0625, 1}, // delay over; first call runs at once
		{0.125, 1},
		{0.125, 2},
		{0.25, 3},
	}
	for i, st := range steps {
		s.Tick(st.dt)
		if len(calls) != st.want {
			t.Fatalf("step %d: calls = %d, want %d", i, len(calls), st.want)
		}
	}
	for i, c := range calls {
		if c != i {
			t.Errorf("call %d index = %d", i, c)
		}
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after sequence, want 0", s.Len())
	}
}

func TestScheduler_RepeatZeroInterval(t *testing.T) {
	var s Scheduler
	n := 0
	s.Add(Repeat(4, 0, func(int) { n++ }))
	s.Tick(0.016)
	if n != 4 {
		t.Errorf("calls = %d, want 4 in one tick", n)
	}
}

func TestScheduler_AddDuringTick(t *testing.T) {
	var s Scheduler
	order := []string{}
	s.Add(Call(func() {
		order = append(order, "a")
		s.Add(Call(func() { order = append(order, "b") }))
	}))
	s.Tick(0.1)
	if len(order) != 1 {
		t.Fatalf("order = %v, want only a on the first tick", order)
	}
	s.Tick(0.1)
	if len(order) != 2 || order[1] != "b" {
		t.Errorf("order = %v, want [a b]", order)
	}
}

func TestScheduler_ClearDuringTick(t *testing.T) {
	var s Scheduler
	ran := 0
	s.Add(Call(func() {
		ran++
		s.Clear()
	}))
	s.Add(Call(func() { ran++ }))
	s.Add(Wait(10))

	s.Tick(0.1)
	if ran != 1 {
		t.Errorf("ran = %d, want 1", ran)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", s.Len())
	}
}

func TestScheduler_TaskFunc(t *testing.T) {
	var s Scheduler
	var total float64
	s.Add(TaskFunc(func(dt float64) bool {
		total += dt
		return total >= 0.3
	}))
	for range 5 {
		s.Tick(0.1)
	}
	if !approxEqual(total, 0.3, 1e-9) {
		t.Errorf("total = %v, want 0.3", total)
	}
}
