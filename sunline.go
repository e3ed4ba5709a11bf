package sunline

import (
	"log"
	"math"
	"math/rand/v2"
)

// epsilon is the smallest denominator used for ratios derived from
// configuration (ink fractions, percentages).
const epsilon = 0.0001

// Logf prints every warning of this module and its subpackages. Replace it
// to capture or silence them.
var Logf = log.Printf

func logf(format string, args ...any) { Logf(format, args...) }

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions.
// World space has its origin at the top-left with Y increasing downward,
// so "down" is +Y.
type Vec2 struct {
	X, Y float64
}

// Down is the world-space gravity direction.
var Down = Vec2{0, 1}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// Angle returns the direction of v in radians.
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Vec2) Vec2 { return Vec2{(a.X + b.X) / 2, (a.Y + b.Y) / 2} }

// Rect is an axis-aligned box anchored at its top-left corner (Y down).
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) is inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Range is an inclusive interval sampled uniformly by Random.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Random returns a random float64 in [Min, Max] drawn from rng, or from the
// global source when rng is nil.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	if rng == nil {
		return r.Min + rand.Float64()*(r.Max-r.Min)
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Color is straight (non-premultiplied) RGBA in [0, 1].
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the lit star tint.
var ColorWhite = Color{1, 1, 1, 1}

// ColorDimmed is the unlit star tint.
var ColorDimmed = Color{0.5, 0.5, 0.5, 1}

// LayerMask selects physics layers for queries and collider filtering.
type LayerMask uint32

const (
	LayerDefault  LayerMask = 1 << iota // unclassified bodies
	LayerBlocking                       // obstacles the pen cannot cross
	LayerLine                           // the drawn line
	LayerParticle                       // falling sunshine
	LayerTrigger                        // collection regions
	LayerDrop                           // delayed-drop bodies
)

// LayerAll matches every layer.
const LayerAll LayerMask = math.MaxUint32

// BodyID identifies a body owned by a Physics substrate. Zero is never a
// valid body.
type BodyID uint32

// BodyType selects how a body participates in the simulation.
type BodyType uint8

const (
	BodyStatic    BodyType = iota // immovable, infinite mass
	BodyKinematic                 // moved only by the caller
	BodyDynamic                   // integrated under gravity and contacts
)

func (t BodyType) String() string {
	switch t {
	case BodyStatic:
		return "static"
	case BodyKinematic:
		return "kinematic"
	case BodyDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 { return clamp(v, 0, 1) }

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
