package play

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sunline"
)

// drawLevel renders the level's world: obstacles, the container and tree,
// the sun, the line, sunshine, and fireworks.
func (g *Game) drawLevel(dst *ebiten.Image) {
	l := g.level
	cam := l.Camera()
	ph := l.Physics()
	cfg := l.Config()
	p := &g.painter
	px := cam.Zoom

	var pts [4]sunline.Vec2
	for _, b := range l.Boxes() {
		pos, angle := ph.Transform(b.Body)
		m := sunline.RigidTransform(pos, angle)
		for i, c := range boxCorners(b.Def.Width, b.Def.Height) {
			pts[i] = cam.WorldToScreen(m.Apply(c))
		}
		c := colorObstacle
		if b.Drop != nil {
			c = colorDrop
		}
		p.fillPolygon(dst, pts[:], c)
	}

	col := l.Collector()
	center := col.Center()
	outline := col.Outline()
	screen := make([]sunline.Vec2, len(outline))
	for i, v := range outline {
		screen[i] = cam.WorldToScreen(center.Add(v))
	}
	p.fillPolygon(dst, screen, colorContainer)
	p.strokePolygon(dst, screen, 2, colorLine)
	p.circle(dst, cam.WorldToScreen(cfg.Collector), 0.6*px, colorTree)

	if o := cfg.Sunshine.Origin; o != nil {
		p.circle(dst, cam.WorldToScreen(*o), 0.5*px, colorSun)
	}

	d := l.Drawing()
	if segs := d.Segments(); segs.Len() > 0 {
		for i := range segs.Len() {
			corners := segs.At(i).Corners()
			for j, c := range corners {
				pts[j] = cam.WorldToScreen(ph.LocalToWorld(d.Body(), c))
			}
			p.fillPolygon(dst, pts[:], colorLine)
		}
	} else if last, ok := d.Line().Last(); ok {
		p.circle(dst, cam.WorldToScreen(last), cfg.Pen.StartWidth/2*px, colorLine)
	}

	r := cfg.Sunshine.Radius * px
	for _, id := range l.Spawn().Particles() {
		pos, _ := ph.Transform(id)
		p.circle(dst, cam.WorldToScreen(pos), r, colorSunshine)
	}

	for _, fw := range l.Fireworks().Live() {
		fw.Emitter.Each(func(pt sunline.Particle) {
			p.circle(dst, cam.WorldToScreen(pt.Pos), pt.Scale*px, withAlpha(fw.Color, pt.Alpha))
		})
	}
}
