package play

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay displays the current FPS and TPS, refreshed every ~0.5 seconds.
// It renders into its own image with ebitenutil.DebugPrint.
type fpsOverlay struct {
	img        *ebiten.Image
	lastUpdate float64
	label      string
}

func (f *fpsOverlay) update(dt float64) {
	f.lastUpdate += dt
	if f.lastUpdate < 0.5 && f.label != "" {
		return
	}
	f.lastUpdate = 0
	f.label = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	if f.img != nil {
		f.render()
	}
}

func (f *fpsOverlay) render() {
	f.img.Clear()
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, f.label)
}

func (f *fpsOverlay) draw(dst *ebiten.Image) {
	if f.img == nil {
		f.img = ebiten.NewImage(100, 32)
		f.render()
	}
	op := &ebiten.DrawImageOptions{}
	w := dst.Bounds().Dx()
	op.GeoM.Translate(float64(w-100-8), float64(dst.Bounds().Dy()-32-8))
	dst.DrawImage(f.img, op)
}
