package sunline

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// pan is an in-flight ScrollTo.
type pan struct {
	x, y         *gween.Tween
	xDone, yDone bool
}

// Camera frames the level. World units map to Zoom screen pixels, and the
// point (X, Y) sits at the center of Viewport.
type Camera struct {
	X, Y float64
	// Zoom is pixels per world unit.
	Zoom float64
	// Rotation in radians, clockwise on screen.
	Rotation float64
	// Viewport is the target rectangle in screen pixels.
	Viewport Rect

	// BoundsEnabled keeps the visible area inside Bounds (world units).
	BoundsEnabled bool
	Bounds        Rect

	view, inv Affine
	dirty     bool

	pan *pan
}

// NewCamera creates a camera looking at center. A zoom <= 0 is treated as 1.
func NewCamera(viewport Rect, center Vec2, zoom float64) *Camera {
	if zoom <= 0 {
		zoom = 1
	}
	return &Camera{X: center.X, Y: center.Y, Zoom: zoom, Viewport: viewport, dirty: true}
}

// ScrollTo pans to the world point over duration seconds.
func (c *Camera) ScrollTo(to Vec2, duration float64, fn ease.TweenFunc) {
	c.pan = &pan{
		x: gween.New(float32(c.X), float32(to.X), float32(duration), fn),
		y: gween.New(float32(c.Y), float32(to.Y), float32(duration), fn),
	}
}

// LookAt cancels any pan and centers the view on p.
func (c *Camera) LookAt(p Vec2) {
	c.pan = nil
	c.X, c.Y = p.X, p.Y
	c.dirty = true
}

// Scrolling reports whether a pan is running.
func (c *Camera) Scrolling() bool { return c.pan != nil }

// SetBounds restricts the view to bounds.
func (c *Camera) SetBounds(bounds Rect) {
	c.Bounds = bounds
	c.BoundsEnabled = true
}

// ClearBounds lifts the restriction.
func (c *Camera) ClearBounds() { c.BoundsEnabled = false }

// SetViewport moves or resizes the screen rectangle.
func (c *Camera) SetViewport(r Rect) {
	if r == c.Viewport {
		return
	}
	c.Viewport = r
	c.dirty = true
}

// Update advances a pan and applies bounds.
func (c *Camera) Update(dt float64) {
	before := [4]float64{c.X, c.Y, c.Zoom, c.Rotation}

	if p := c.pan; p != nil {
		if !p.xDone {
			v, done := p.x.Update(float32(dt))
			c.X, p.xDone = float64(v), done
		}
		if !p.yDone {
			v, done := p.y.Update(float32(dt))
			c.Y, p.yDone = float64(v), done
		}
		if p.xDone && p.yDone {
			c.pan = nil
		}
	}
	if c.BoundsEnabled {
		c.X = clampAxis(c.X, c.Bounds.X, c.Bounds.Width, c.Viewport.Width/(2*c.Zoom))
		c.Y = clampAxis(c.Y, c.Bounds.Y, c.Bounds.Height, c.Viewport.Height/(2*c.Zoom))
	}

	if before != [4]float64{c.X, c.Y, c.Zoom, c.Rotation} {
		c.dirty = true
	}
}

// clampAxis keeps a view of half-size half centered at v inside
// [lo, lo+size]. A view wider than the range is centered on it.
func clampAxis(v, lo, size, half float64) float64 {
	if size < 2*half {
		return lo + size/2
	}
	return clamp(v, lo+half, lo+size-half)
}

// ViewMatrix returns the world-to-screen transform: move (X, Y) to the
// origin, rotate by -Rotation, scale by Zoom, then move to the viewport
// center.
func (c *Camera) ViewMatrix() Affine {
	if !c.dirty {
		return c.view
	}
	center := c.Viewport.Center()
	z := c.Zoom
	rot := RigidTransform(Vec2{}, -c.Rotation)
	c.view = Affine{1, 0, 0, 1, center.X, center.Y}.
		Then(Affine{z, 0, 0, z, 0, 0}).
		Then(rot).
		Then(Affine{1, 0, 0, 1, -c.X, -c.Y})
	c.inv = invertAffine(c.view)
	c.dirty = false
	return c.view
}

// WorldToScreen projects a world point to screen pixels.
func (c *Camera) WorldToScreen(w Vec2) Vec2 {
	return c.ViewMatrix().Apply(w)
}

// ScreenToWorld unprojects screen pixels to a world point.
func (c *Camera) ScreenToWorld(sx, sy float64) Vec2 {
	c.ViewMatrix()
	return c.inv.Apply(Vec2{sx, sy})
}

// ScreenSize returns the viewport size in pixels.
func (c *Camera) ScreenSize() (w, h float64) {
	return c.Viewport.Width, c.Viewport.Height
}

// VisibleBounds returns the world-space box enclosing the viewport.
func (c *Camera) VisibleBounds() Rect {
	vp := c.Viewport
	lo := Vec2{math.Inf(1), math.Inf(1)}
	hi := Vec2{math.Inf(-1), math.Inf(-1)}
	for _, s := range [4]Vec2{
		{vp.X, vp.Y}, {vp.X + vp.Width, vp.Y},
		{vp.X + vp.Width, vp.Y + vp.Height}, {vp.X, vp.Y + vp.Height},
	} {
		w := c.ScreenToWorld(s.X, s.Y)
		lo = Vec2{math.Min(lo.X, w.X), math.Min(lo.Y, w.Y)}
		hi = Vec2{math.Max(hi.X, w.X), math.Max(hi.Y, w.Y)}
	}
	return Rect{X: lo.X, Y: lo.Y, Width: hi.X - lo.X, Height: hi.Y - lo.Y}
}

// MarkDirty forces the view matrix to be rebuilt after fields were set
// directly.
func (c *Camera) MarkDirty() { c.dirty = true }
