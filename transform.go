package sunline

import "math"

// Affine is a 2D affine transform stored column-major as
// [a, b, c, d, tx, ty]. It maps (x, y) to (a*x + c*y + tx, b*x + d*y + ty).
type Affine [6]float64

var identityTransform = Affine{1, 0, 0, 1, 0, 0}

// RigidTransform returns Translate(pos) * Rotate(angle), the placement of a
// physics body.
func RigidTransform(pos Vec2, angle float64) Affine {
	sin, cos := math.Sincos(angle)
	return Affine{cos, sin, -sin, cos, pos.X, pos.Y}
}

// multiplyAffine returns p * c.
func multiplyAffine(p, c Affine) Affine {
	return Affine{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// Then returns m * c: c applied first, then m.
func (m Affine) Then(c Affine) Affine { return multiplyAffine(m, c) }

// invertAffine returns the inverse of m, or the identity when m collapses
// the plane.
func invertAffine(m Affine) Affine {
	det := m[0]*m[3] - m[2]*m[1]
	if math.Abs(det) < 1e-12 {
		return identityTransform
	}
	a, b := m[3]/det, -m[1]/det
	c, d := -m[2]/det, m[0]/det
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms point v.
func (m Affine) Apply(v Vec2) Vec2 {
	return Vec2{m[0]*v.X + m[2]*v.Y + m[4], m[1]*v.X + m[3]*v.Y + m[5]}
}
