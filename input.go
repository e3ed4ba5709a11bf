package sunline

// PointerSample is the primary pointer for one frame, in screen pixels.
type PointerSample struct {
	X, Y    float64
	Pressed bool
}

// PointerSource polls the host for the primary pointer each frame.
type PointerSource interface {
	Pointer() PointerSample
}

// PointerSourceFunc adapts a function to PointerSource.
type PointerSourceFunc func() PointerSample

// Pointer implements PointerSource.
func (f PointerSourceFunc) Pointer() PointerSample { return f() }

// StrokeTarget receives pen gestures in world space.
type StrokeTarget interface {
	BeginStroke()
	Stroke(p Vec2)
	EndStroke()
	// StrokesEnabled reports whether gestures should start at all.
	StrokesEnabled() bool
}

// pointerState is the press state of the primary pointer.
type pointerState struct {
	down      bool
	start     Vec2
	last      Vec2
	button    *Button // captured at press time
	stroking  bool
	hasSample bool
}

// InputRouter runs the pointer state machine. A press on a visible button
// captures the pointer for that button, which fires on release over it.
// Any other press is a pen stroke, sampled every frame while held.
type InputRouter struct {
	controls *Controls
	camera   *Camera
	target   StrokeTarget

	ps          pointerState
	injectQueue []PointerSample
}

// NewInputRouter creates a router. camera may be nil, in which case screen
// and world coordinates are the same.
func NewInputRouter(controls *Controls, camera *Camera, target StrokeTarget) *InputRouter {
	return &InputRouter{controls: controls, camera: camera, target: target}
}

func (r *InputRouter) toWorld(sx, sy float64) Vec2 {
	if r.camera != nil {
		return r.camera.ScreenToWorld(sx, sy)
	}
	return Vec2{sx, sy}
}

// Stroking reports whether a pen stroke is in progress.
func (r *InputRouter) Stroking() bool { return r.ps.stroking }

// Process feeds one frame of pointer state. When injected samples are
// queued, the oldest is used instead of real.
func (r *InputRouter) Process(real PointerSample) {
	s := real
	if len(r.injectQueue) > 0 {
		s = r.injectQueue[0]
		copy(r.injectQueue, r.injectQueue[1:])
		r.injectQueue = r.injectQueue[:len(r.injectQueue)-1]
	}
	r.process(s)
}

func (r *InputRouter) process(s PointerSample) {
	ps := &r.ps
	w := r.toWorld(s.X, s.Y)

	switch {
	case s.Pressed && !ps.down:
		ps.down = true
		ps.start = Vec2{s.X, s.Y}
		ps.last = ps.start
		ps.button = nil
		if r.controls != nil {
			ps.button = r.controls.HitTest(s.X, s.Y)
		}
		if ps.button == nil && r.target != nil && r.target.StrokesEnabled() {
			ps.stroking = true
			r.target.BeginStroke()
			r.target.Stroke(w)
		}

	case s.Pressed && ps.down:
		ps.last = Vec2{s.X, s.Y}
		if ps.stroking {
			r.target.Stroke(w)
		}

	case !s.Pressed && ps.down:
		ps.down = false
		if ps.stroking {
			ps.stroking = false
			r.target.EndStroke()
		}
		if b := ps.button; b != nil {
			ps.button = nil
			if b.Visible && b.Bounds.Contains(s.X, s.Y) {
				b.Press()
			}
		}
	}
}

// Cancel drops the current gesture without ending the stroke.
func (r *InputRouter) Cancel() {
	r.ps = pointerState{}
}
