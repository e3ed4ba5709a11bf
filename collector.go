package sunline

import "math"

// containerDrop is how far below the tree the container center hangs.
const containerDrop = 1.5

// containerRows is the row at which slots reach the bottom width.
const containerRows = 8

// Collector is the tree's collection region. It counts each particle once,
// then freezes it into the next container slot.
type Collector struct {
	physics Physics
	cfg     ContainerConfig
	center  Vec2
	trigger BodyID

	seen      map[BodyID]struct{}
	collected []BodyID

	// OnCollect runs once per distinct particle.
	OnCollect func(id BodyID)
}

// NewCollector builds the trapezoid sensor below tree.
func NewCollector(physics Physics, tree Vec2, cfg ContainerConfig) *Collector {
	c := &Collector{
		physics: physics,
		cfg:     cfg,
		center:  tree.Add(Vec2{0, containerDrop - cfg.VerticalOffset}),
		seen:    make(map[BodyID]struct{}),
	}
	c.trigger = physics.CreateBody(BodyStatic, c.center, LayerTrigger)
	physics.AddPolygon(c.trigger, c.Outline(), true)
	return c
}

// Trigger returns the sensor body.
func (c *Collector) Trigger() BodyID { return c.trigger }

// Center returns the container center in world space.
func (c *Collector) Center() Vec2 { return c.center }

// Outline returns the trapezoid corners relative to Center: top left, top
// right, bottom right, bottom left. The wide edge is on top.
func (c *Collector) Outline() []Vec2 {
	ht, hb, hh := c.cfg.TopWidth/2, c.cfg.BottomWidth/2, c.cfg.Height/2
	return []Vec2{{-ht, -hh}, {ht, -hh}, {hb, hh}, {-hb, hh}}
}

// Collected returns the collected particles in arrival order.
func (c *Collector) Collected() []BodyID { return c.collected }

// HandleEnter is the physics trigger callback. Entries for other triggers,
// non-particles, and repeated particles are ignored.
func (c *Collector) HandleEnter(e TriggerEnter) {
	if e.Trigger != c.trigger || e.Layer&LayerParticle == 0 {
		return
	}
	if _, ok := c.seen[e.Other]; ok {
		return
	}
	c.seen[e.Other] = struct{}{}
	c.collected = append(c.collected, e.Other)
	if c.OnCollect != nil {
		c.OnCollect(e.Other)
	}
	c.physics.Freeze(e.Other, c.center.Add(c.Slot(len(c.collected)-1)))
}

// Slot returns the resting place of the i-th collected particle relative to
// Center. Rows fill from the bottom and narrow toward BottomWidth.
func (c *Collector) Slot(i int) Vec2 {
	sp := c.cfg.Spacing
	if sp <= 0 {
		return Vec2{}
	}
	perRow := max(3, int(math.Floor(c.cfg.TopWidth/sp)))
	row, col := i/perRow, i%perRow

	t := clamp01(float64(row) / containerRows)
	rowWidth := lerp(c.cfg.TopWidth, c.cfg.BottomWidth, t)
	cols := max(1, int(math.Floor(rowWidth/sp)))
	col = min(col, cols-1)

	x := -float64(cols-1)*sp/2 + float64(col)*sp
	y := c.cfg.Height/2 - float64(row)*sp - sp/2
	return Vec2{
		clamp(x, -rowWidth/2, rowWidth/2),
		clamp(y, -c.cfg.Height/2, c.cfg.Height/2),
	}
}

// Reset forgets collected particles. The trigger body is kept.
func (c *Collector) Reset() {
	clear(c.seen)
	c.collected = c.collected[:0]
}
