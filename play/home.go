package play

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sunline"
)

// homeScreen is the level select: one button per registered level.
type homeScreen struct {
	controls sunline.Controls
	router   *sunline.InputRouter
}

func newHomeScreen(dir *sunline.LevelDirectory, w, h float64, load func(name string)) *homeScreen {
	s := &homeScreen{}
	s.router = sunline.NewInputRouter(&s.controls, nil, nil)

	names := dir.Names()
	const bw, bh, gap = 200.0, 44.0, 14.0
	top := h/2 - (float64(len(names))*(bh+gap)-gap)/2
	bindings := make([]sunline.Binding, 0, len(names))
	for i, name := range names {
		id := sunline.ControlID("level:" + name)
		s.controls.Add(&sunline.Button{
			ID:      id,
			Label:   name,
			Bounds:  sunline.Rect{X: w/2 - bw/2, Y: top + float64(i)*(bh+gap), Width: bw, Height: bh},
			Visible: true,
		})
		bindings = append(bindings, sunline.Binding{Control: id, Handler: func() { load(name) }})
	}
	sunline.BindControls(&s.controls, bindings)
	return s
}

func (s *homeScreen) update(pointer sunline.PointerSample) {
	s.router.Process(pointer)
}

func (s *homeScreen) draw(dst *ebiten.Image, p *painter) {
	w := float64(dst.Bounds().Dx())
	drawLabel(dst, "Sunline", w/2, 60, colorLine)
	drawLabel(dst, "draw a line, guide the sunshine home", w/2, 84, colorLine)
	drawButtons(dst, p, &s.controls)
}
