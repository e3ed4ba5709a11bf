package sunline

// Polyline is the ordered list of accepted pen points.
type Polyline struct {
	points []Vec2
}

// Len returns the number of accepted points.
func (p *Polyline) Len() int { return len(p.points) }

// Points returns the accepted points. The slice is only valid until the next
// Append or Reset.
func (p *Polyline) Points() []Vec2 { return p.points }

// Last returns the most recently accepted point.
func (p *Polyline) Last() (Vec2, bool) {
	if len(p.points) == 0 {
		return Vec2{}, false
	}
	return p.points[len(p.points)-1], true
}

// Contains reports whether v is bit-identical to an accepted point.
func (p *Polyline) Contains(v Vec2) bool {
	for _, q := range p.points {
		if q == v {
			return true
		}
	}
	return false
}

// Append adds v to the end of the line.
func (p *Polyline) Append(v Vec2) { p.points = append(p.points, v) }

// Length returns the summed length of all segments.
func (p *Polyline) Length() float64 {
	var l float64
	for i := 1; i < len(p.points); i++ {
		l += p.points[i].Dist(p.points[i-1])
	}
	return l
}

// Reset removes every point, keeping the backing storage.
func (p *Polyline) Reset() { p.points = p.points[:0] }
