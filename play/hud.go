package play

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/tanema/gween/ease"
	"golang.org/x/image/font/basicfont"

	"github.com/phanxgames/sunline"
)

// inkSteps is the resolution the ink bar displays.
const inkSteps = 10

var labelFace = text.NewGoXFace(basicfont.Face7x13)

// drawLabel draws s centered on (cx, cy).
func drawLabel(dst *ebiten.Image, s string, cx, cy float64, c sunline.Color) {
	w, h := text.Measure(s, labelFace, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(math.Round(cx-w/2), math.Round(cy-h/2))
	op.ColorScale.ScaleWithColor(toRGBA(c))
	text.Draw(dst, s, labelFace, op)
}

// drawText draws s with its top-left corner at (x, y).
func drawText(dst *ebiten.Image, s string, x, y float64, c sunline.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(toRGBA(c))
	text.Draw(dst, s, labelFace, op)
}

// InkBar shows the remaining ink. It implements sunline.ProgressIndicator.
type InkBar struct {
	Bounds   sunline.Rect
	fraction float64
}

// SetFraction sets the remaining fraction, clamped to [0, 1].
func (b *InkBar) SetFraction(f float64) { b.fraction = clampUnit(f) }

// Fraction returns the remaining fraction.
func (b *InkBar) Fraction() float64 { return b.fraction }

// Value returns the remaining ink on the 0-10 display scale.
func (b *InkBar) Value() int { return int(math.Round(b.fraction * inkSteps)) }

func (b *InkBar) draw(dst *ebiten.Image, p *painter) {
	r := b.Bounds
	p.rect(dst, r, colorPanel)
	fill := r
	fill.Width = r.Width * float64(b.Value()) / inkSteps
	p.rect(dst, fill, colorLine)
	p.strokeRect(dst, r, 2, colorButton)
	drawText(dst, fmt.Sprintf("ink %d/%d", b.Value(), inkSteps), r.X, r.Y+r.Height+4, colorLine)
}

// animator starts widget tweens on a shared runner, or on its own one.
type animator struct {
	shared *sunline.Tweens
	own    sunline.Tweens
}

func (a *animator) start(g *sunline.TweenGroup) *sunline.TweenGroup {
	if a.shared != nil {
		a.shared.Add(g)
	} else {
		a.own.Add(g)
	}
	return g
}

// stopTween freezes g where it is. Its runner drops it on the next tick.
func stopTween(g *sunline.TweenGroup) *sunline.TweenGroup {
	if g != nil {
		g.Done = true
	}
	return nil
}

// StarWidget is a star that pops when lit. It implements
// sunline.StarIndicator.
type StarWidget struct {
	Center sunline.Vec2
	Radius float64

	lit   bool
	scale float64
	pop   *sunline.TweenGroup
	anim  animator
}

// NewStarWidget creates an unlit star. Its pop runs on tweens, or on the
// widget's own Update when tweens is nil.
func NewStarWidget(center sunline.Vec2, radius float64, tweens *sunline.Tweens) *StarWidget {
	return &StarWidget{Center: center, Radius: radius, scale: 1, anim: animator{shared: tweens}}
}

// SetLit lights or dims the star. Lighting an unlit star plays a pop.
func (s *StarWidget) SetLit(lit bool) {
	if lit && !s.lit {
		s.scale = 1.5
		s.pop = s.anim.start(sunline.TweenValue(&s.scale, 1, 0.3, ease.OutBack))
	}
	if !lit {
		s.pop = stopTween(s.pop)
		s.scale = 1
	}
	s.lit = lit
}

// Lit reports whether the star is lit.
func (s *StarWidget) Lit() bool { return s.lit }

// Scale returns the current pop scale.
func (s *StarWidget) Scale() float64 { return s.scale }

// Update advances a pop that is not on a shared runner.
func (s *StarWidget) Update(dt float64) { s.anim.own.Update(dt) }

func (s *StarWidget) draw(dst *ebiten.Image, p *painter) {
	c := sunline.ColorDimmed
	if s.lit {
		c = colorSunshine
	}
	pts := starPoints(s.Center, s.Radius*s.scale)
	p.fillPolygon(dst, pts[:], c)
}

// starPoints returns a five-pointed star outline, point up.
func starPoints(center sunline.Vec2, r float64) [10]sunline.Vec2 {
	var pts [10]sunline.Vec2
	for i := range pts {
		rr := r
		if i%2 == 1 {
			rr = r * 0.45
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		pts[i] = sunline.Vec2{X: center.X + rr*math.Cos(a), Y: center.Y + rr*math.Sin(a)}
	}
	return pts
}

// Panel is the level-complete panel. It implements sunline.CompletionPanel.
type Panel struct {
	Bounds sunline.Rect

	stars   [3]*StarWidget
	visible bool
	alpha   float64
	fade    *sunline.TweenGroup
	anim    animator
}

// NewPanel creates a hidden panel with its stars laid out inside bounds.
// Animations run on tweens when it is not nil.
func NewPanel(bounds sunline.Rect, tweens *sunline.Tweens) *Panel {
	p := &Panel{Bounds: bounds, anim: animator{shared: tweens}}
	cx := bounds.X + bounds.Width/2
	cy := bounds.Y + bounds.Height*0.4
	for i := range p.stars {
		p.stars[i] = NewStarWidget(sunline.Vec2{X: cx + float64(i-1)*60, Y: cy}, 24, tweens)
	}
	return p
}

// Show fades the panel in.
func (p *Panel) Show() {
	if p.visible {
		return
	}
	p.visible = true
	p.alpha = 0
	p.fade = p.anim.start(sunline.TweenValue(&p.alpha, 1, 0.4, ease.OutQuad))
}

// Hide removes the panel at once.
func (p *Panel) Hide() {
	p.visible = false
	p.alpha = 0
	p.fade = stopTween(p.fade)
}

// Visible reports whether the panel is shown.
func (p *Panel) Visible() bool { return p.visible }

// Stars returns the panel's rating stars.
func (p *Panel) Stars() [3]sunline.StarIndicator {
	return [3]sunline.StarIndicator{p.stars[0], p.stars[1], p.stars[2]}
}

// Update advances animations that are not on a shared runner.
func (p *Panel) Update(dt float64) {
	p.anim.own.Update(dt)
	for _, s := range p.stars {
		s.Update(dt)
	}
}

func (p *Panel) draw(dst *ebiten.Image, pt *painter) {
	if !p.visible {
		return
	}
	pt.rect(dst, p.Bounds, withAlpha(colorPanel, p.alpha))
	drawLabel(dst, "Level complete", p.Bounds.X+p.Bounds.Width/2, p.Bounds.Y+24,
		withAlpha(colorButton, p.alpha))
	for _, s := range p.stars {
		s.draw(dst, pt)
	}
}

// HUD groups the widgets a level reports to.
type HUD struct {
	Ink   *InkBar
	Live  [3]*StarWidget
	Panel *Panel
	// Tweens runs every widget animation. Hand it to the level through
	// LevelOptions.Tweens so pause and restart apply to it.
	Tweens *sunline.Tweens
}

// NewHUD lays out the widgets for a w x h screen.
func NewHUD(w, h float64) *HUD {
	tw := &sunline.Tweens{}
	hud := &HUD{
		Ink:    &InkBar{Bounds: sunline.Rect{X: 16, Y: 16, Width: 200, Height: 14}},
		Panel:  NewPanel(sunline.Rect{X: w/2 - 160, Y: h/2 - 110, Width: 320, Height: 230}, tw),
		Tweens: tw,
	}
	for i := range hud.Live {
		hud.Live[i] = NewStarWidget(sunline.Vec2{X: 240 + float64(i)*28, Y: 23}, 11, tw)
	}
	return hud
}

// Stars returns the live star widgets.
func (h *HUD) Stars() [3]sunline.StarIndicator {
	return [3]sunline.StarIndicator{h.Live[0], h.Live[1], h.Live[2]}
}

func (h *HUD) draw(dst *ebiten.Image, p *painter) {
	h.Ink.draw(dst, p)
	for _, s := range h.Live {
		s.draw(dst, p)
	}
}

// drawButtons draws every visible control with its label.
func drawButtons(dst *ebiten.Image, p *painter, controls *sunline.Controls) {
	for _, b := range controls.Buttons() {
		if !b.Visible {
			continue
		}
		r := b.Bounds
		p.rect(dst, r, colorButton)
		p.strokeRect(dst, r, 2, colorLine)
		drawLabel(dst, b.Label, r.X+r.Width/2, r.Y+r.Height/2, colorText)
	}
}
