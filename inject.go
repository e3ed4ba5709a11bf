package sunline

// Synthetic input uses screen coordinates and is converted to world space
// by the router's camera, identical to real pointer input. Each queued
// sample replaces the real pointer for one frame.

// InjectPress queues a press at the given screen coordinates.
func (r *InputRouter) InjectPress(x, y float64) {
	r.injectQueue = append(r.injectQueue, PointerSample{X: x, Y: y, Pressed: true})
}

// InjectMove queues a held pointer at the given screen coordinates. Use this
// between InjectPress and InjectRelease to simulate a stroke.
func (r *InputRouter) InjectMove(x, y float64) {
	r.injectQueue = append(r.injectQueue, PointerSample{X: x, Y: y, Pressed: true})
}

// InjectRelease queues a release at the given screen coordinates.
func (r *InputRouter) InjectRelease(x, y float64) {
	r.injectQueue = append(r.injectQueue, PointerSample{X: x, Y: y})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (r *InputRouter) InjectClick(x, y float64) {
	r.InjectPress(x, y)
	r.InjectRelease(x, y)
}

// InjectDrag queues a full stroke: press at from, linearly interpolated
// moves over frames-2 intermediate frames, and release at to. Minimum
// frames is 2 (press + release). One extra frame holds the pointer at to so
// the end point is sampled before the pointer lifts.
func (r *InputRouter) InjectDrag(from, to Vec2, frames int) {
	if frames < 2 {
		frames = 2
	}
	r.InjectPress(from.X, from.Y)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		r.InjectMove(lerp(from.X, to.X, t), lerp(from.Y, to.Y, t))
	}
	r.InjectMove(to.X, to.Y)
	r.InjectRelease(to.X, to.Y)
}

// Pending returns the number of queued synthetic samples.
func (r *InputRouter) Pending() int { return len(r.injectQueue) }
