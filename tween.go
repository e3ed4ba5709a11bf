package sunline

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates float64 fields in place. A level ticks its groups
// through [Tweens]; a group on its own is ticked by its owner.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float64) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(float32(dt))
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

func (g *TweenGroup) finish() {
	if g.Done {
		return
	}
	for i := 0; i < g.count; i++ {
		val, _ := g.tweens[i].Set(math.MaxFloat32)
		*g.fields[i] = float64(val)
	}
	g.Done = true
}

func (g *TweenGroup) add(field *float64, to float64, duration float64, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), float32(duration), fn)
	g.fields[g.count] = field
	g.count++
}

// TweenValue animates a single field to the target value.
func TweenValue(field *float64, to, duration float64, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(field, to, duration, fn)
	return g
}

// Tweens runs a set of groups and drops finished ones.
type Tweens struct {
	groups []*TweenGroup
}

// Add starts g. A nil group is ignored.
func (t *Tweens) Add(g *TweenGroup) {
	if g != nil {
		t.groups = append(t.groups, g)
	}
}

// Len returns the number of running groups.
func (t *Tweens) Len() int { return len(t.groups) }

// Update advances every group by dt seconds.
func (t *Tweens) Update(dt float64) {
	live := t.groups[:0]
	for _, g := range t.groups {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(t.groups[len(live):])
	t.groups = live
}

// Finish jumps every group to its end values and drops it.
func (t *Tweens) Finish() {
	for _, g := range t.groups {
		g.finish()
	}
	clear(t.groups)
	t.groups = t.groups[:0]
}
