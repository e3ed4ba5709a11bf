package play

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height set the window size in pixels. Zero uses 960x640.
	Width, Height int
	// ShowFPS starts with the FPS/TPS overlay visible. F3 toggles it.
	ShowFPS bool
	// Start is the first level loaded. Empty opens the level select.
	Start string
}

// Run opens a window and blocks until it is closed or the game ends its
// script. A clean shutdown returns nil.
func Run(g *Game, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = defaultWidth, defaultHeight
	}
	g.resize(w, h)
	g.showFPS = cfg.ShowFPS

	if cfg.Start != "" {
		if err := g.Start(cfg.Start); err != nil {
			return err
		}
	} else {
		g.showHome()
	}

	title := cfg.Title
	if title == "" {
		title = "Sunline"
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
