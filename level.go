package sunline

import (
	"math/rand/v2"
	"time"

	"github.com/tanema/gween/ease"
)

// CompletionPanel is the level-complete panel with its three stars.
type CompletionPanel interface {
	Show()
	Hide()
	Stars() [3]StarIndicator
}

// LevelOptions connects a Level to its collaborators. Every field is
// optional; missing UI collaborators are logged and skipped.
type LevelOptions struct {
	// Physics is the rigid-body substrate. Nil creates a ChipmunkWorld
	// owned by the level.
	Physics Physics
	// Scenes handles restart, next level, and home. Nil restarts in place.
	Scenes   SceneTransitioner
	Events   EventSink
	Progress ProgressIndicator
	Stars    [3]StarIndicator
	Panel    CompletionPanel
	// Tweens runs the widgets' animations. The level ticks it while
	// unpaused and finishes it on restart. Nil gives the level its own.
	Tweens *Tweens
	// Pointer is polled once per Update. Nil means injected input only.
	Pointer PointerSource
	// Viewport is the screen rectangle in pixels.
	Viewport Rect
	Rand     *rand.Rand
}

// PlacedBox is an obstacle or delayed-drop body created from the level
// definition.
type PlacedBox struct {
	Body BodyID
	Def  BoxDef
	Drop *DelayedDrop
}

// Level runs one playthrough: it feeds pointer strokes to the drawing
// session, releases the line, spawns sunshine, counts collections, and
// fires the win.
type Level struct {
	cfg         LevelConfig
	opts        LevelOptions
	physics     Physics
	ownsPhysics bool

	ink        *InkBudget
	drawing    *Drawing
	activation *Activation
	spawn      *SpawnSequence
	progress   *Progress
	collector  *Collector
	fireworks  *Fireworks

	sched    Scheduler
	tweens   *Tweens
	camera   *Camera
	controls Controls
	input    *InputRouter

	boxes  []PlacedBox
	paused bool

	debug       bool
	stats       debugStats
	runner      *TestRunner
	warnedPanel bool
}

// NewLevel builds a playable level from cfg. cfg is normalized first; every
// adjustment is logged.
func NewLevel(cfg LevelConfig, opts LevelOptions) *Level {
	for _, w := range cfg.Normalize() {
		logf("sunline: level %q: %s", cfg.Name, w)
	}
	if opts.Viewport.Width <= 0 || opts.Viewport.Height <= 0 {
		opts.Viewport = Rect{Width: 960, Height: 640}
	}
	l := &Level{cfg: cfg, opts: opts, tweens: opts.Tweens}
	if l.tweens == nil {
		l.tweens = &Tweens{}
	}
	l.camera = NewCamera(opts.Viewport, cfg.Camera.Center, cfg.Camera.Zoom)
	l.input = NewInputRouter(&l.controls, l.camera, l)

	for _, id := range []ControlID{ControlPause, ControlResume, ControlRestart, ControlHome, ControlNext} {
		l.controls.Add(&Button{ID: id, Label: string(id)})
	}
	BindControls(&l.controls, []Binding{
		{ControlPause, func() { l.SetPaused(true) }},
		{ControlResume, func() { l.SetPaused(false) }},
		{ControlRestart, l.Restart},
		{ControlHome, l.GoHome},
		{ControlNext, l.NextLevel},
	})

	l.build()
	return l
}

func (l *Level) build() {
	cfg := &l.cfg
	if l.opts.Physics != nil {
		l.physics = l.opts.Physics
	} else if l.physics == nil || l.ownsPhysics {
		l.physics = NewChipmunkWorld(cfg.Gravity)
		l.ownsPhysics = true
	}
	rng := l.opts.Rand

	l.ink = NewInkBudget(cfg.Ink)
	l.drawing = NewDrawing(l.physics, cfg, l.ink)
	l.activation = NewActivation(l.physics, cfg)

	l.boxes = l.boxes[:0]
	for _, def := range cfg.Obstacles {
		id := l.placeBox(BodyStatic, LayerBlocking, def)
		l.boxes = append(l.boxes, PlacedBox{Body: id, Def: def})
	}
	for _, def := range cfg.Drops {
		id := l.placeBox(BodyKinematic, LayerDrop, def)
		drop := &DelayedDrop{Name: def.Name, Body: id, Material: def.Material}
		l.activation.Register(drop)
		l.boxes = append(l.boxes, PlacedBox{Body: id, Def: def, Drop: drop})
	}

	l.collector = NewCollector(l.physics, cfg.Collector, cfg.Container)
	l.collector.OnCollect = l.collect
	l.physics.OnTriggerEnter(l.collector.HandleEnter)

	l.spawn = NewSpawnSequence(l.physics, cfg.Sunshine, rng)
	l.spawn.OnSpawn = func(id BodyID) {
		l.publish(GameEvent{Type: EventParticleSpawned, Body: id})
	}

	l.progress = NewProgress(cfg, l.ink, l.opts.Progress, l.opts.Stars)
	l.progress.OnWin = l.onWin
	l.drawing.OnInk = func(float64) { l.progress.Refresh() }
	l.progress.Refresh()

	l.camera.LookAt(cfg.Camera.Center)
	if cfg.Camera.Bounds != nil {
		l.camera.SetBounds(*cfg.Camera.Bounds)
	} else {
		l.camera.ClearBounds()
	}

	l.fireworks = NewFireworks(cfg.Fireworks, l.camera, rng)
	if l.opts.Panel != nil {
		l.opts.Panel.Hide()
	}
	l.paused = false
	l.sched.SetPaused(false)
	l.layoutControls()
}

func (l *Level) placeBox(kind BodyType, layer LayerMask, def BoxDef) BodyID {
	id := l.physics.CreateBody(kind, def.Center, layer)
	if def.Angle != 0 {
		l.physics.SetAngle(id, def.Angle)
	}
	l.physics.AddBox(id, def.Width, def.Height, def.Material)
	return id
}

func (l *Level) teardown() {
	l.sched.Clear()
	l.fireworks.Stop()
	l.tweens.Finish()
	l.input.Cancel()
	if l.ownsPhysics {
		l.physics = nil
		return
	}
	l.drawing.Reset()
	for _, id := range l.spawn.Particles() {
		l.physics.DestroyBody(id)
	}
	for _, b := range l.boxes {
		l.physics.DestroyBody(b.Body)
	}
	l.physics.DestroyBody(l.collector.Trigger())
}

// Config returns the normalized level definition.
func (l *Level) Config() *LevelConfig { return &l.cfg }

// Physics returns the current substrate. It changes on Reset when the level
// owns it.
func (l *Level) Physics() Physics { return l.physics }

// Ink returns the ink budget.
func (l *Level) Ink() *InkBudget { return l.ink }

// Drawing returns the pen session.
func (l *Level) Drawing() *Drawing { return l.drawing }

// Activation returns the line release.
func (l *Level) Activation() *Activation { return l.activation }

// Spawn returns the sunshine sequence.
func (l *Level) Spawn() *SpawnSequence { return l.spawn }

// Progress returns the scoring state machine.
func (l *Level) Progress() *Progress { return l.progress }

// Collector returns the collection region.
func (l *Level) Collector() *Collector { return l.collector }

// Fireworks returns the win celebration.
func (l *Level) Fireworks() *Fireworks { return l.fireworks }

// Boxes returns the obstacles and delayed drops.
func (l *Level) Boxes() []PlacedBox { return l.boxes }

// Camera returns the level camera.
func (l *Level) Camera() *Camera { return l.camera }

// Controls returns the level buttons.
func (l *Level) Controls() *Controls { return &l.controls }

// Input returns the pointer router, for injecting synthetic input.
func (l *Level) Input() *InputRouter { return l.input }

// Scheduler returns the task scheduler.
func (l *Level) Scheduler() *Scheduler { return &l.sched }

// Tweens returns the runner for cosmetic tweens. It is ticked while the
// level is unpaused and finished on restart.
func (l *Level) Tweens() *Tweens { return l.tweens }

// Paused reports whether the level is paused.
func (l *Level) Paused() bool { return l.paused }

// SetViewport resizes the screen area and relays out the buttons.
func (l *Level) SetViewport(r Rect) {
	l.opts.Viewport = r
	l.camera.SetViewport(r)
	l.layoutControls()
}

// StrokesEnabled implements StrokeTarget.
func (l *Level) StrokesEnabled() bool {
	return !l.paused && l.drawing.CanDraw()
}

// BeginStroke implements StrokeTarget.
func (l *Level) BeginStroke() {
	l.drawing.Begin()
	l.progress.StrokeStarted()
	l.publish(GameEvent{Type: EventStrokeStarted})
}

// Stroke implements StrokeTarget.
func (l *Level) Stroke(p Vec2) {
	if l.paused {
		return
	}
	l.drawing.Sample(p)
}

// EndStroke implements StrokeTarget. A tap is discarded; a real line is
// released. A release while paused is ignored and the unfinished line is
// replaced by the next stroke.
func (l *Level) EndStroke() {
	if l.paused || !l.drawing.CanDraw() {
		return
	}
	if !l.drawing.End() {
		l.progress.StrokeCancelled()
		l.publish(GameEvent{Type: EventStrokeCancelled})
		return
	}
	l.activate()
}

func (l *Level) activate() {
	if !l.activation.Activate(l.drawing) {
		return
	}
	l.progress.LineDropped()
	l.publish(GameEvent{Type: EventLineDropped})
	l.spawn.Start(&l.sched)
}

// OnParticleCollected counts one collected particle. The collection region
// calls it once per distinct particle.
func (l *Level) OnParticleCollected() { l.collect(0) }

func (l *Level) collect(id BodyID) {
	l.progress.OnParticleCollected()
	l.publish(GameEvent{Type: EventParticleCollected, Body: id, Count: l.progress.Collected()})
}

func (l *Level) onWin(stars int) {
	if l.opts.Panel == nil {
		if !l.warnedPanel {
			l.warnedPanel = true
			logf("sunline: completion panel is not set")
		}
	} else {
		for i, s := range l.opts.Panel.Stars() {
			if s == nil {
				logf("sunline: completion panel star %d is not set", i+1)
				continue
			}
			s.SetLit(i < stars)
		}
		l.opts.Panel.Show()
	}
	l.layoutControls()
	l.fireworks.Play(&l.sched)
	if d := l.cfg.Camera.WinPan; d > 0 {
		l.camera.ScrollTo(l.collector.Center(), d, ease.InOutQuad)
	}
	l.publish(GameEvent{Type: EventLevelWon, Stars: stars})
}

// SetPaused gates the scheduler, the physics step, and pen input.
func (l *Level) SetPaused(paused bool) {
	if l.paused == paused {
		return
	}
	l.paused = paused
	l.sched.SetPaused(paused)
	l.layoutControls()
	if paused {
		l.publish(GameEvent{Type: EventPaused})
	} else {
		l.publish(GameEvent{Type: EventResumed})
	}
}

// Restart reloads the level through the scene transitioner, or rebuilds it
// in place when none is set. A failed reload leaves the level untouched.
func (l *Level) Restart() {
	if l.opts.Scenes != nil {
		if err := l.opts.Scenes.Reload(); err != nil {
			logf("sunline: restart: %v", err)
		}
		return
	}
	l.Reset()
}

// Reset rebuilds the playthrough in place: ink refilled, line and
// particles removed, drops restored, drawing enabled.
func (l *Level) Reset() {
	l.teardown()
	l.build()
	l.publish(GameEvent{Type: EventRestarted})
}

// NextLevel loads the configured next level.
func (l *Level) NextLevel() { l.navigate(l.cfg.Next) }

// GoHome loads the level directory.
func (l *Level) GoHome() { l.navigate(l.cfg.Home) }

func (l *Level) navigate(name string) {
	if l.opts.Scenes == nil {
		logf("sunline: no scene transitioner; cannot load %q", name)
		return
	}
	if err := l.opts.Scenes.Load(name); err != nil {
		logf("sunline: %v", err)
	}
}

// Update advances the level by dt seconds: pointer input, scheduled tasks,
// physics with trigger delivery, then cosmetic effects.
func (l *Level) Update(dt float64) {
	var start time.Time
	if l.debug {
		start = time.Now()
	}
	if l.runner != nil {
		l.runner.step(l)
	}

	var real PointerSample
	if l.opts.Pointer != nil {
		real = l.opts.Pointer.Pointer()
	}
	l.input.Process(real)

	l.sched.Tick(dt)
	var stepTime time.Duration
	if !l.paused {
		t0 := time.Now()
		l.physics.Step(dt)
		stepTime = time.Since(t0)
		l.fireworks.Update(dt)
		l.tweens.Update(dt)
	}
	l.camera.Update(dt)

	if l.debug {
		l.stats = debugStats{
			frameTime: time.Since(start),
			stepTime:  stepTime,
			tasks:     l.sched.Len(),
			particles: len(l.spawn.Particles()),
			points:    l.drawing.Line().Len(),
			inkUsed:   l.ink.UsedPercent(),
		}
		l.debugLog(l.stats)
	}
}

// layoutControls places and shows the buttons for the current mode: play,
// paused, or won.
func (l *Level) layoutControls() {
	vp := l.opts.Viewport
	cx, cy := vp.X+vp.Width/2, vp.Y+vp.Height/2
	const bw, bh = 120.0, 40.0

	for _, b := range l.controls.Buttons() {
		b.Visible = false
	}
	won := l.progress != nil && l.progress.Won()
	switch {
	case won:
		l.place(ControlRestart, Rect{cx - bw - 10, cy + 60, bw, bh})
		l.place(ControlNext, Rect{cx + 10, cy + 60, bw, bh})
	case l.paused:
		l.place(ControlResume, Rect{cx - bw/2, cy - 20, bw, bh})
		l.place(ControlRestart, Rect{cx - bw - 10, cy + 40, bw, bh})
		l.place(ControlHome, Rect{cx + 10, cy + 40, bw, bh})
	default:
		l.place(ControlPause, Rect{vp.X + vp.Width - 56, vp.Y + 16, 40, 40})
	}
}

func (l *Level) place(id ControlID, r Rect) {
	if b := l.controls.Find(id); b != nil {
		b.Bounds = r
		b.Visible = true
	}
}

func (l *Level) publish(e GameEvent) {
	if l.opts.Events == nil {
		return
	}
	e.Level = l.cfg.Name
	if l.ink != nil {
		e.InkUsedPercent = l.ink.UsedPercent()
	}
	l.opts.Events.Publish(e)
}
