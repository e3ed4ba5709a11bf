package play

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/sunline"
)

// Palette.
var (
	colorBackground = sunline.Color{R: 0.53, G: 0.78, B: 0.92, A: 1}
	colorObstacle   = sunline.Color{R: 0.36, G: 0.3, B: 0.26, A: 1}
	colorDrop       = sunline.Color{R: 0.62, G: 0.46, B: 0.3, A: 1}
	colorLine       = sunline.Color{R: 0.12, G: 0.12, B: 0.16, A: 1}
	colorSunshine   = sunline.Color{R: 1, G: 0.85, B: 0.2, A: 1}
	colorSun        = sunline.Color{R: 1, G: 0.65, B: 0.1, A: 1}
	colorTree       = sunline.Color{R: 0.2, G: 0.55, B: 0.25, A: 1}
	colorContainer  = sunline.Color{R: 0.9, G: 0.9, B: 0.85, A: 0.45}
	colorPanel      = sunline.Color{R: 0.1, G: 0.1, B: 0.14, A: 0.85}
	colorButton     = sunline.Color{R: 0.95, G: 0.95, B: 0.95, A: 1}
	colorText       = sunline.Color{R: 0.1, G: 0.1, B: 0.12, A: 1}
)

// toRGBA converts a non-premultiplied color to an 8-bit color.RGBA, which
// ebiten expects premultiplied.
func toRGBA(c sunline.Color) color.RGBA {
	a := clampUnit(c.A)
	return color.RGBA{
		R: uint8(clampUnit(c.R)*a*255 + 0.5),
		G: uint8(clampUnit(c.G)*a*255 + 0.5),
		B: uint8(clampUnit(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func withAlpha(c sunline.Color, a float64) sunline.Color {
	c.A *= a
	return c
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// painter draws flat shapes. The white source image is created lazily so
// the package can be loaded without a graphics context.
type painter struct {
	white    *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func (p *painter) whiteImage() *ebiten.Image {
	if p.white == nil {
		p.white = ebiten.NewImage(3, 3)
		p.white.Fill(color.White)
	}
	return p.white
}

// fillPolygon fills the closed polygon pts given in screen pixels.
func (p *painter) fillPolygon(dst *ebiten.Image, pts []sunline.Vec2, c sunline.Color) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, v := range pts[1:] {
		path.LineTo(float32(v.X), float32(v.Y))
	}
	path.Close()

	p.vertices, p.indices = path.AppendVerticesAndIndicesForFilling(p.vertices[:0], p.indices[:0])
	p.tint(c)
	dst.DrawTriangles(p.vertices, p.indices, p.whiteImage(),
		&ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// strokePolygon outlines the closed polygon pts.
func (p *painter) strokePolygon(dst *ebiten.Image, pts []sunline.Vec2, width float32, c sunline.Color) {
	if len(pts) < 2 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, v := range pts[1:] {
		path.LineTo(float32(v.X), float32(v.Y))
	}
	path.Close()

	p.vertices, p.indices = path.AppendVerticesAndIndicesForStroke(p.vertices[:0], p.indices[:0],
		&vector.StrokeOptions{Width: width, LineJoin: vector.LineJoinRound})
	p.tint(c)
	dst.DrawTriangles(p.vertices, p.indices, p.whiteImage(),
		&ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (p *painter) tint(c sunline.Color) {
	rgba := toRGBA(c)
	for i := range p.vertices {
		v := &p.vertices[i]
		v.SrcX, v.SrcY = 1, 1
		v.ColorR = float32(rgba.R) / 255
		v.ColorG = float32(rgba.G) / 255
		v.ColorB = float32(rgba.B) / 255
		v.ColorA = float32(rgba.A) / 255
	}
}

func (p *painter) circle(dst *ebiten.Image, center sunline.Vec2, r float64, c sunline.Color) {
	vector.DrawFilledCircle(dst, float32(center.X), float32(center.Y), float32(r), toRGBA(c), true)
}

func (p *painter) rect(dst *ebiten.Image, r sunline.Rect, c sunline.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), toRGBA(c), false)
}

func (p *painter) strokeRect(dst *ebiten.Image, r sunline.Rect, width float32, c sunline.Color) {
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), width, toRGBA(c), false)
}

// boxCorners returns the corners of a w x h box centered on the origin.
func boxCorners(w, h float64) [4]sunline.Vec2 {
	hw, hh := w/2, h/2
	return [4]sunline.Vec2{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}}
}
