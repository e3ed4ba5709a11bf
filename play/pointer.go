package play

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sunline"
)

// pointer polls the mouse and the first touch. It implements
// sunline.PointerSource and must be polled once per tick.
type pointer struct {
	touchIDs []ebiten.TouchID
	touching bool
	last     sunline.Vec2
}

func (p *pointer) Pointer() sunline.PointerSample {
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) > 0 {
		x, y := ebiten.TouchPosition(p.touchIDs[0])
		p.touching = true
		p.last = sunline.Vec2{X: float64(x), Y: float64(y)}
		return sunline.PointerSample{X: p.last.X, Y: p.last.Y, Pressed: true}
	}
	// A lifted touch has no position; release where it was last seen.
	if p.touching {
		p.touching = false
		return sunline.PointerSample{X: p.last.X, Y: p.last.Y}
	}
	x, y := ebiten.CursorPosition()
	return sunline.PointerSample{
		X:       float64(x),
		Y:       float64(y),
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
}
