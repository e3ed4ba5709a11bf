package sunline

import "math"

// Collider tolerances applied to every synthesized segment so adjacent boxes
// overlap at the joints.
const (
	SegmentLengthTolerance = 1.05
	SegmentWidthTolerance  = 1.2
	// MinSegmentLength is the floor applied before the length tolerance.
	MinSegmentLength = 0.1
)

// Segment is the collider record for one pair of consecutive line points.
// Geometry is in line-body local space.
type Segment struct {
	Center Vec2
	Length float64
	Width  float64
	// Angle is the box rotation in radians.
	Angle float64
	// Material overrides the line material when non-nil.
	Material *Material
}

// Corners returns the four box corners in local space, counter-clockwise in
// a y-up frame.
func (s Segment) Corners() [4]Vec2 {
	hl, hw := s.Length/2, s.Width/2
	sin, cos := math.Sincos(s.Angle)
	ax := Vec2{cos * hl, sin * hl}
	ay := Vec2{-sin * hw, cos * hw}
	return [4]Vec2{
		s.Center.Sub(ax).Sub(ay),
		s.Center.Add(ax).Sub(ay),
		s.Center.Add(ax).Add(ay),
		s.Center.Sub(ax).Add(ay),
	}
}

// NewSegment synthesizes the collider between prev and cur. The box is
// aligned with prev - cur and centered on their midpoint.
func NewSegment(prev, cur Vec2, startWidth, endWidth float64, mat *Material) Segment {
	dist := prev.Dist(cur)
	return Segment{
		Center:   Midpoint(prev, cur),
		Length:   max(dist, MinSegmentLength) * SegmentLengthTolerance,
		Width:    max(startWidth, endWidth) * SegmentWidthTolerance,
		Angle:    prev.Sub(cur).Angle(),
		Material: mat,
	}
}

// SegmentArena stores a line's segments by index. The physics substrate
// reads it to build and update colliders; the core never holds collider
// handles.
type SegmentArena struct {
	segs []Segment
}

// Add appends s and returns its index.
func (a *SegmentArena) Add(s Segment) int {
	a.segs = append(a.segs, s)
	return len(a.segs) - 1
}

// Len returns the number of segments.
func (a *SegmentArena) Len() int { return len(a.segs) }

// At returns a pointer to segment i. It panics if i is out of range.
func (a *SegmentArena) At(i int) *Segment { return &a.segs[i] }

// FillMaterial assigns mat to every segment without one and returns how
// many segments changed. Segments with their own material keep it.
func (a *SegmentArena) FillMaterial(mat *Material) int {
	if mat == nil {
		return 0
	}
	n := 0
	for i := range a.segs {
		if a.segs[i].Material == nil {
			a.segs[i].Material = mat
			n++
		}
	}
	return n
}

// Reset drops every segment.
func (a *SegmentArena) Reset() {
	clear(a.segs)
	a.segs = a.segs[:0]
}
