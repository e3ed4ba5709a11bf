package sunline

// Drawing turns pointer samples into a validated polyline, a segment arena
// and a kinematic line body, debiting ink for every closed segment.
//
// The zero value is not usable; create one with NewDrawing.
type Drawing struct {
	physics  Physics
	pen      PenConfig
	material *Material
	ink      *InkBudget
	limit    bool

	line   Polyline
	arena  SegmentArena
	body   BodyID
	origin Vec2

	canDraw bool

	// OnInk runs after every debit, before the point is appended.
	OnInk func(debit float64)
}

// NewDrawing creates an enabled drawing session over physics.
func NewDrawing(physics Physics, cfg *LevelConfig, ink *InkBudget) *Drawing {
	return &Drawing{
		physics:  physics,
		pen:      cfg.Pen,
		material: cfg.LineMaterial,
		ink:      ink,
		limit:    cfg.Ink.LimitsDrawing,
		canDraw:  true,
	}
}

// CanDraw reports whether samples are currently accepted.
func (d *Drawing) CanDraw() bool { return d.canDraw }

// Disable stops accepting samples until Reset.
func (d *Drawing) Disable() { d.canDraw = false }

// Line returns the accepted points.
func (d *Drawing) Line() *Polyline { return &d.line }

// Segments returns the collider records built so far.
func (d *Drawing) Segments() *SegmentArena { return &d.arena }

// Body returns the line body, or 0 before the first accepted point.
func (d *Drawing) Body() BodyID { return d.body }

// Origin returns the world position of the line body when it was created.
// Segment geometry is relative to it.
func (d *Drawing) Origin() Vec2 { return d.origin }

// Begin starts a gesture, discarding any points left from an earlier one.
func (d *Drawing) Begin() {
	if !d.canDraw {
		return
	}
	d.discard()
}

// Sample offers world point p to the line. It returns true when p was
// accepted.
func (d *Drawing) Sample(p Vec2) bool {
	if !d.canDraw {
		return false
	}
	n := d.line.Len()
	if n <= 1 && d.physics.Raycast(p, Vec2{}, d.pen.ProbeDistance, d.pen.BlockingLayers) {
		return false
	}
	prev, hasPrev := d.line.Last()
	if n > 1 {
		toPrev := prev.Sub(p)
		if d.physics.Raycast(p, toPrev, toPrev.Len(), d.pen.BlockingLayers) {
			return false
		}
	}
	if d.line.Contains(p) {
		return false
	}

	if hasPrev {
		dist := p.Dist(prev)
		if d.limit && d.ink.Cost(dist) > d.ink.Remaining() {
			return false
		}
		debit := d.ink.Debit(dist)
		if d.OnInk != nil {
			d.OnInk(debit)
		}
	}

	d.line.Append(p)
	if d.body == 0 {
		d.origin = p
		d.body = d.physics.CreateBody(BodyKinematic, p, LayerLine)
	}
	if hasPrev {
		seg := NewSegment(prev.Sub(d.origin), p.Sub(d.origin), d.pen.StartWidth, d.pen.EndWidth, d.material)
		idx := d.arena.Add(seg)
		d.physics.AddSegmentColliders(d.body, &d.arena, idx)
	}
	return true
}

// End finishes the gesture. It returns false for a tap: fewer than two
// accepted points are discarded and drawing stays enabled.
func (d *Drawing) End() bool {
	if !d.canDraw {
		return false
	}
	if d.line.Len() < 2 {
		d.discard()
		return false
	}
	return true
}

// Reset destroys the line and re-enables drawing.
func (d *Drawing) Reset() {
	d.discard()
	d.canDraw = true
}

func (d *Drawing) discard() {
	if d.body != 0 {
		d.physics.DestroyBody(d.body)
		d.body = 0
	}
	d.line.Reset()
	d.arena.Reset()
	d.origin = Vec2{}
}
