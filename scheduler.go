package sunline

// Task is a timed sequence advanced by a Scheduler. Update reports true once
// the task has finished; finished tasks are dropped.
type Task interface {
	Update(dt float64) bool
}

// TaskFunc adapts a function to Task.
type TaskFunc func(dt float64) bool

// Update implements Task.
func (f TaskFunc) Update(dt float64) bool { return f(dt) }

// Scheduler ticks tasks from the frame loop. While paused no task advances,
// so every wait inside a task is suspended with the game.
//
// There is no global scheduler. The owner calls Tick each frame.
type Scheduler struct {
	tasks   []Task
	paused  bool
	cleared bool
}

// Add queues t. It is first updated on the next Tick.
func (s *Scheduler) Add(t Task) {
	if t != nil {
		s.tasks = append(s.tasks, t)
	}
}

// Tick advances every task by dt seconds. Tasks added during the tick run
// from the next tick on.
func (s *Scheduler) Tick(dt float64) {
	if s.paused || len(s.tasks) == 0 {
		return
	}
	tasks := s.tasks
	s.tasks = nil
	s.cleared = false
	live := tasks[:0]
	for _, t := range tasks {
		if s.cleared {
			break
		}
		if !t.Update(dt) {
			live = append(live, t)
		}
	}
	if s.cleared {
		live = live[:0]
	}
	clear(tasks[len(live):])
	// Tasks queued by callbacks during this tick go last.
	s.tasks = append(live, s.tasks...)
}

// SetPaused gates Tick.
func (s *Scheduler) SetPaused(paused bool) { s.paused = paused }

// Paused reports whether the scheduler is gated.
func (s *Scheduler) Paused() bool { return s.paused }

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int { return len(s.tasks) }

// Clear abandons every pending task.
func (s *Scheduler) Clear() {
	clear(s.tasks)
	s.tasks = s.tasks[:0]
	s.cleared = true
}

type waitTask struct {
	left float64
}

func (w *waitTask) Update(dt float64) bool {
	w.left -= dt
	return w.left <= 0
}

// Wait returns a task that finishes after d seconds.
func Wait(d float64) Task { return &waitTask{left: d} }

// Call returns a task that runs fn once and finishes.
func Call(fn func()) Task {
	return TaskFunc(func(float64) bool {
		fn()
		return true
	})
}

// After runs fn once d seconds from now.
func After(d float64, fn func()) Task {
	return Sequence(Wait(d), Call(fn))
}

type sequenceTask struct {
	steps []Task
}

func (s *sequenceTask) Update(dt float64) bool {
	for len(s.steps) > 0 {
		if !s.steps[0].Update(dt) {
			return false
		}
		s.steps = s.steps[1:]
		// Zero-length steps that follow run in the same tick.
		dt = 0
	}
	return true
}

// Sequence runs steps one after another.
func Sequence(steps ...Task) Task {
	return &sequenceTask{steps: steps}
}

type repeatTask struct {
	count    int
	interval float64
	fn       func(i int)
	i        int
	wait     float64
}

func (r *repeatTask) Update(dt float64) bool {
	r.wait -= dt
	for r.i < r.count && r.wait <= 0 {
		r.fn(r.i)
		r.i++
		r.wait += r.interval
		if r.interval <= 0 {
			r.wait = 0
		}
	}
	return r.i >= r.count
}

// Repeat calls fn count times: immediately, then once every interval
// seconds. fn receives the zero-based call index.
func Repeat(count int, interval float64, fn func(i int)) Task {
	return &repeatTask{count: count, interval: interval, fn: fn}
}
