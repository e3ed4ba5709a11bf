package sunline

import (
	"math"
	"math/rand/v2"
)

// Viewport converts screen pixels to world space. *Camera implements it.
type Viewport interface {
	ScreenSize() (w, h float64)
	ScreenToWorld(sx, sy float64) Vec2
}

// Firework is one live burst.
type Firework struct {
	Emitter *ParticleEmitter
	Color   Color
	age     float64
}

// Fireworks plays the win celebration: a series of one-shot bursts at
// random positions and colors, each removed after its duration. It has no
// effect on play.
type Fireworks struct {
	cfg      FireworksConfig
	viewport Viewport
	rng      *rand.Rand

	live []*Firework
	gen  int
}

// NewFireworks creates an idle celebration. viewport may be nil, in which
// case bursts use cfg.Area.
func NewFireworks(cfg FireworksConfig, viewport Viewport, rng *rand.Rand) *Fireworks {
	return &Fireworks{cfg: cfg, viewport: viewport, rng: rng}
}

// Play schedules cfg.Count bursts cfg.Interval apart on sched.
func (f *Fireworks) Play(sched *Scheduler) {
	if !f.cfg.Enabled || f.cfg.Count <= 0 {
		return
	}
	gen := f.gen
	sched.Add(Repeat(f.cfg.Count, f.cfg.Interval, func(int) {
		if gen == f.gen {
			f.launch()
		}
	}))
}

// Stop removes every live burst and cancels bursts not yet launched.
func (f *Fireworks) Stop() {
	f.gen++
	clear(f.live)
	f.live = f.live[:0]
}

// Live returns the bursts currently on screen.
func (f *Fireworks) Live() []*Firework { return f.live }

// Update advances every burst and drops those older than the configured
// duration.
func (f *Fireworks) Update(dt float64) {
	live := f.live[:0]
	for _, fw := range f.live {
		fw.age += dt
		if fw.age >= f.cfg.Duration {
			continue
		}
		fw.Emitter.Update(dt)
		live = append(live, fw)
	}
	clear(f.live[len(live):])
	f.live = live
}

// SpawnPosition picks a burst position.
func (f *Fireworks) SpawnPosition() Vec2 {
	if f.cfg.ScreenSpace && f.viewport != nil {
		w, h := f.viewport.ScreenSize()
		sx := Range{0.1 * w, 0.9 * w}.Random(f.rng)
		// 30-90% of the height measured from the bottom edge.
		sy := h * (1 - Range{0.3, 0.9}.Random(f.rng))
		return f.viewport.ScreenToWorld(sx, sy)
	}
	a := f.cfg.Area
	return Vec2{
		Range{a.X, a.X + a.Width}.Random(f.rng),
		Range{a.Y, a.Y + a.Height}.Random(f.rng),
	}
}

func (f *Fireworks) pickColor() Color {
	if len(f.cfg.Colors) == 0 {
		return ColorWhite
	}
	if f.rng != nil {
		return f.cfg.Colors[f.rng.IntN(len(f.cfg.Colors))]
	}
	return f.cfg.Colors[rand.IntN(len(f.cfg.Colors))]
}

func (f *Fireworks) launch() {
	c := f.pickColor()
	e := NewParticleEmitter(EmitterConfig{
		MaxParticles: f.cfg.BurstSize,
		Lifetime:     Range{1.5, 1.5},
		Speed:        Range{2.5, 5},
		Angle:        Range{0, 2 * math.Pi},
		StartScale:   Range{0.2, 0.2},
		EndScale:     Range{0.05, 0.05},
		StartAlpha:   Range{1, 1},
		EndAlpha:     Range{0, 0},
		Gravity:      Vec2{0, 2},
		Color:        c,
	}, f.rng)
	e.Pos = f.SpawnPosition()
	e.Burst(f.cfg.BurstSize)
	f.live = append(f.live, &Firework{Emitter: e, Color: c})
}
