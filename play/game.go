package play

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/sunline"
)

const (
	defaultWidth  = 960
	defaultHeight = 640
	volumeStep    = 0.1
)

// VolumeControl adjusts the background music volume. *audio.Service
// implements it.
type VolumeControl interface {
	Volume() float64
	SetVolume(v float64) error
}

// Options configures a Game.
type Options struct {
	// Levels is the level directory. Required.
	Levels *sunline.LevelDirectory
	// Events receives every level event. May be nil.
	Events sunline.EventSink
	// Audio is adjusted with the - and = keys. May be nil.
	Audio VolumeControl
	// Debug prints per-frame level stats to stderr.
	Debug bool
	// Script drives each level as it loads, so a restart step carries on
	// in the reloaded level. The game ends once it completes.
	Script *sunline.TestRunner
	// Frame runs at the end of every update, after the level has stepped.
	Frame func(dt float64)
}

// Game is an ebiten.Game that plays levels from a directory.
type Game struct {
	opts Options
	dir  *sunline.LevelDirectory

	level *sunline.Level
	hud   *HUD
	home  *homeScreen

	pointer pointer
	painter painter
	fps     fpsOverlay
	showFPS bool

	width, height int
	script        *sunline.TestRunner
}

// NewGame creates a game over opts.Levels. Call Start or Run to show
// something.
func NewGame(opts Options) *Game {
	g := &Game{
		opts:   opts,
		dir:    opts.Levels,
		width:  defaultWidth,
		height: defaultHeight,
		script: opts.Script,
	}
	g.dir.OnLoad(g.loadLevel)
	g.dir.OnHome(g.showHome)
	return g
}

// Start loads the named level, or the level select for the home name.
func (g *Game) Start(name string) error {
	return g.dir.Load(name)
}

// Level returns the level being played, or nil on the level select.
func (g *Game) Level() *sunline.Level { return g.level }

// HUD returns the widgets of the current level.
func (g *Game) HUD() *HUD { return g.hud }

func (g *Game) resize(w, h int) {
	if w == g.width && h == g.height {
		return
	}
	g.width, g.height = w, h
	if g.level != nil {
		g.level.SetViewport(sunline.Rect{Width: float64(w), Height: float64(h)})
	}
	if g.home != nil {
		g.showHome()
	}
}

func (g *Game) loadLevel(cfg sunline.LevelConfig) {
	w, h := float64(g.width), float64(g.height)
	g.home = nil
	g.hud = NewHUD(w, h)
	g.level = sunline.NewLevel(cfg, sunline.LevelOptions{
		Scenes:   g.dir,
		Events:   g.opts.Events,
		Progress: g.hud.Ink,
		Stars:    g.hud.Stars(),
		Panel:    g.hud.Panel,
		Tweens:   g.hud.Tweens,
		Pointer:  &g.pointer,
		Viewport: sunline.Rect{Width: w, Height: h},
	})
	g.level.SetDebugMode(g.opts.Debug)
	if g.script != nil {
		g.level.SetTestRunner(g.script)
	}
}

func (g *Game) showHome() {
	g.level = nil
	g.hud = nil
	g.home = newHomeScreen(g.dir, float64(g.width), float64(g.height), func(name string) {
		if err := g.dir.Load(name); err != nil {
			sunline.Logf("sunline: %v", err)
		}
	})
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	g.handleKeys()
	if g.showFPS {
		g.fps.update(dt)
	}

	switch {
	case g.level != nil:
		g.level.Update(dt)
	case g.home != nil:
		g.home.update(g.pointer.Pointer())
	}
	if g.opts.Frame != nil {
		g.opts.Frame(dt)
	}

	if g.script != nil && g.script.Done() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showFPS = !g.showFPS
	}
	if a := g.opts.Audio; a != nil {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
			g.setVolume(a.Volume() - volumeStep)
		case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
			g.setVolume(a.Volume() + volumeStep)
		}
	}
	if g.level == nil {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		if !g.level.Progress().Won() {
			g.level.SetPaused(!g.level.Paused())
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.level.Restart()
	}
}

func (g *Game) setVolume(v float64) {
	v = math.Round(v*10) / 10
	if err := g.opts.Audio.SetVolume(v); err != nil {
		sunline.Logf("sunline: save volume: %v", err)
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(toRGBA(colorBackground))

	switch {
	case g.level != nil:
		g.drawLevel(screen)
		g.hud.draw(screen, &g.painter)
		if g.level.Paused() {
			g.painter.rect(screen, sunline.Rect{Width: float64(g.width), Height: float64(g.height)},
				withAlpha(colorPanel, 0.5))
			drawLabel(screen, "Paused", float64(g.width)/2, float64(g.height)/2-60, colorButton)
		}
		g.hud.Panel.draw(screen, &g.painter)
		drawButtons(screen, &g.painter, g.level.Controls())
	case g.home != nil:
		g.home.draw(screen, &g.painter)
	}

	if g.showFPS {
		g.fps.draw(screen)
	}
}

// Layout implements ebiten.Game. The logical screen follows the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.resize(outsideWidth, outsideHeight)
	return g.width, g.height
}
