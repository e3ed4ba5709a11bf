package sunline

import (
	"errors"
	"slices"
	"testing"

	"github.com/tanema/gween/ease"
)

type fakeScenes struct {
	reloads int
	loads   []string
	err     error
}

func (s *fakeScenes) Reload() error {
	s.reloads++
	return s.err
}

func (s *fakeScenes) Load(name string) error {
	s.loads = append(s.loads, name)
	return s.err
}

func newTestLevel(t *testing.T, cfg LevelConfig, opts LevelOptions) (*Level, *fakePhysics, *eventLog) {
	t.Helper()
	captureLogs(t)
	ph := newFakePhysics()
	events := &eventLog{}
	opts.Physics = ph
	opts.Events = events
	return NewLevel(cfg, opts), ph, events
}

func runFrames(l *Level, n int) {
	for range n {
		l.Update(1.0 / 64)
	}
}

// drawTestLine drags across the screen at the default zoom, from world
// (-3, -2) to (1/3, -2).
func drawTestLine(l *Level) {
	l.Input().InjectDrag(Vec2{300, 200}, Vec2{500, 200}, 5)
	for l.Input().Pending() > 0 {
		l.Update(1.0 / 64)
	}
}

func TestLevel_DragDropsLine(t *testing.T) {
	lvl, ph, events := newTestLevel(t, testConfig(), LevelOptions{})
	drawTestLine(lvl)

	if got := lvl.Drawing().Line().Len(); got != 5 {
		t.Errorf("line points = %d, want 5", got)
	}
	first := lvl.Drawing().Line().Points()[0]
	if !approxVec(first, Vec2{-3, -2}, 1e-9) {
		t.Errorf("first point = %v, want (-3, -2)", first)
	}
	if got := lvl.Ink().UsedPercent(); !approxEqual(got, 40.0/3, 1e-6) {
		t.Errorf("ink used = %v%%, want 13.33%%", got)
	}
	if lvl.Progress().State() != StateLineDropped {
		t.Errorf("state = %v, want lineDropped", lvl.Progress().State())
	}
	if b := ph.bodies[lvl.Drawing().Body()]; b == nil || b.kind != BodyDynamic {
		t.Error("line body is not dynamic after release")
	}
	if lvl.Drawing().CanDraw() {
		t.Error("drawing still enabled after release")
	}
	if events.count(EventStrokeStarted) != 1 || events.count(EventLineDropped) != 1 {
		t.Errorf("events = %v", events.events)
	}

	runFrames(lvl, 64)
	if got := len(lvl.Spawn().Particles()); got != 5 {
		t.Errorf("spawned %d particles, want 5", got)
	}
	if events.count(EventParticleSpawned) != 5 {
		t.Errorf("spawn events = %d, want 5", events.count(EventParticleSpawned))
	}

	// A second drag draws nothing.
	drawTestLine(lvl)
	if events.count(EventStrokeStarted) != 1 || events.count(EventLineDropped) != 1 {
		t.Error("second stroke after release was accepted")
	}
}

func TestLevel_TapIsCancelled(t *testing.T) {
	lvl, _, events := newTestLevel(t, testConfig(), LevelOptions{})
	lvl.Input().InjectClick(300, 200)
	runFrames(lvl, 2)

	if lvl.Progress().State() != StateIdle {
		t.Errorf("state = %v, want idle", lvl.Progress().State())
	}
	if !lvl.Drawing().CanDraw() || lvl.Drawing().Body() != 0 {
		t.Error("tap left a line behind or disabled drawing")
	}
	if lvl.Ink().Used() != 0 {
		t.Errorf("tap used %v ink", lvl.Ink().Used())
	}
	if events.count(EventStrokeCancelled) != 1 || lvl.Spawn().Started() {
		t.Error("tap was not cancelled")
	}
}

func TestLevel_PauseButtons(t *testing.T) {
	lvl, ph, events := newTestLevel(t, testConfig(), LevelOptions{})
	pause := lvl.Controls().Find(ControlPause)
	if !pause.Visible {
		t.Fatal("pause button hidden during play")
	}
	if want := (Rect{X: 904, Y: 16, Width: 40, Height: 40}); pause.Bounds != want {
		t.Errorf("pause bounds = %+v, want %+v", pause.Bounds, want)
	}

	lvl.Input().InjectClick(920, 30)
	runFrames(lvl, 2)
	if !lvl.Paused() || !lvl.Scheduler().Paused() {
		t.Fatal("click on pause did not pause")
	}
	steps := ph.steps
	runFrames(lvl, 10)
	if ph.steps != steps {
		t.Errorf("physics stepped %d times while paused", ph.steps-steps)
	}
	if pause.Visible || !lvl.Controls().Find(ControlResume).Visible {
		t.Error("paused layout not shown")
	}

	// Pen input is ignored while paused.
	drawTestLine(lvl)
	if lvl.Drawing().Line().Len() != 0 {
		t.Error("drew while paused")
	}

	lvl.Input().InjectClick(480, 320)
	runFrames(lvl, 2)
	if lvl.Paused() {
		t.Error("click on resume did not resume")
	}
	if events.count(EventPaused) != 1 || events.count(EventResumed) != 1 {
		t.Errorf("pause events = %d/%d", events.count(EventPaused), events.count(EventResumed))
	}
}

func TestLevel_ReleaseWhilePausedIgnored(t *testing.T) {
	lvl, _, events := newTestLevel(t, testConfig(), LevelOptions{})
	lvl.BeginStroke()
	lvl.Stroke(Vec2{-3, -2})
	lvl.Stroke(Vec2{-1, -2})
	lvl.SetPaused(true)
	lvl.EndStroke()

	if lvl.Progress().State() != StateDrawing {
		t.Errorf("state = %v, want drawing", lvl.Progress().State())
	}
	if !lvl.Drawing().CanDraw() || lvl.Spawn().Started() {
		t.Error("line released while paused")
	}
	if events.count(EventLineDropped) != 0 {
		t.Errorf("line dropped events = %d, want 0", events.count(EventLineDropped))
	}

	lvl.SetPaused(false)
	drawTestLine(lvl)
	if lvl.Progress().State() != StateLineDropped {
		t.Errorf("state after resume = %v, want lineDropped", lvl.Progress().State())
	}
	if got := lvl.Drawing().Line().Len(); got != 5 {
		t.Errorf("line points = %d, want 5 from the new stroke", got)
	}
}

func TestLevel_PausedSpawnHolds(t *testing.T) {
	lvl, _, _ := newTestLevel(t, testConfig(), LevelOptions{})
	drawTestLine(lvl)
	lvl.SetPaused(true)
	runFrames(lvl, 64)
	n := len(lvl.Spawn().Particles())
	if n == 5 {
		t.Fatal("spawn finished while paused")
	}
	lvl.SetPaused(false)
	runFrames(lvl, 64)
	if got := len(lvl.Spawn().Particles()); got != 5 {
		t.Errorf("spawned %d after resume, want 5", got)
	}
}

func TestLevel_Win(t *testing.T) {
	cfg := testConfig()
	cfg.WinThreshold = 3
	panel := newFakePanel()
	lvl, ph, events := newTestLevel(t, cfg, LevelOptions{Panel: panel})
	if panel.hidden != 1 {
		t.Errorf("panel hidden %d times at build, want 1", panel.hidden)
	}

	drawTestLine(lvl)
	runFrames(lvl, 64)
	for _, id := range lvl.Spawn().Particles()[:3] {
		ph.enter(lvl.Collector().Trigger(), id)
	}
	if !lvl.Progress().Won() {
		t.Fatal("level not won after reaching the threshold")
	}
	if panel.shown != 1 {
		t.Errorf("panel shown %d times, want 1", panel.shown)
	}
	// 13.3% ink is a three-star rating.
	for i, s := range panel.stars {
		if !s.lit {
			t.Errorf("panel star %d not lit", i+1)
		}
	}
	if !lvl.Controls().Find(ControlNext).Visible || lvl.Controls().Find(ControlPause).Visible {
		t.Error("won layout not shown")
	}

	// Later collections count without a second win.
	ph.enter(lvl.Collector().Trigger(), lvl.Spawn().Particles()[3])
	if events.count(EventLevelWon) != 1 || lvl.Progress().Collected() != 4 {
		t.Errorf("wins = %d, collected = %d", events.count(EventLevelWon), lvl.Progress().Collected())
	}
	for _, e := range events.events {
		if e.Type == EventLevelWon && e.Stars != 3 {
			t.Errorf("win event stars = %d, want 3", e.Stars)
		}
		if e.Level != cfg.Name {
			t.Errorf("event level = %q, want %q", e.Level, cfg.Name)
		}
	}

	runFrames(lvl, 2)
	if len(lvl.Fireworks().Live()) == 0 {
		t.Error("no fireworks after the win")
	}
}

func TestLevel_WinPansCamera(t *testing.T) {
	cfg := testConfig()
	cfg.WinThreshold = 1
	cfg.Camera.WinPan = 0.5
	lvl, _, _ := newTestLevel(t, cfg, LevelOptions{})

	lvl.OnParticleCollected()
	if !lvl.Camera().Scrolling() {
		t.Fatal("camera not panning after the win")
	}
	runFrames(lvl, 64)
	cam := lvl.Camera()
	if got := (Vec2{cam.X, cam.Y}); !approxVec(got, lvl.Collector().Center(), 1e-4) {
		t.Errorf("camera at %v, want the tree at %v", got, lvl.Collector().Center())
	}

	lvl.Reset()
	if cam.Scrolling() || cam.X != cfg.Camera.Center.X || cam.Y != cfg.Camera.Center.Y {
		t.Errorf("after Reset camera at (%v, %v), scrolling=%v", cam.X, cam.Y, cam.Scrolling())
	}
}

func TestLevel_CameraBounds(t *testing.T) {
	cfg := testConfig()
	cfg.Camera.Center = Vec2{100, 0}
	cfg.Camera.Bounds = &Rect{X: 0, Y: -10, Width: 40, Height: 20}
	lvl, _, _ := newTestLevel(t, cfg, LevelOptions{})
	runFrames(lvl, 1)

	// 960x640 at zoom 60 shows 16x10.67 units.
	cam := lvl.Camera()
	if cam.X != 32 || cam.Y != 0 {
		t.Errorf("camera at (%v, %v), want (32, 0)", cam.X, cam.Y)
	}
}

func TestLevel_TweensFollowPause(t *testing.T) {
	lvl, _, _ := newTestLevel(t, testConfig(), LevelOptions{})
	v := 0.0
	lvl.Tweens().Add(TweenValue(&v, 1, 1, ease.Linear))

	lvl.SetPaused(true)
	runFrames(lvl, 32)
	if v != 0 {
		t.Errorf("tween advanced to %v while paused", v)
	}

	lvl.SetPaused(false)
	runFrames(lvl, 32)
	if !approxEqual(v, 0.5, 1e-4) {
		t.Errorf("tween at %v after half a second, want 0.5", v)
	}

	lvl.Reset()
	if v != 1 || lvl.Tweens().Len() != 0 {
		t.Errorf("after Reset v = %v, running = %d; want 1 and 0", v, lvl.Tweens().Len())
	}
}

func TestLevel_MissingPanelWarnsOnce(t *testing.T) {
	cfg := testConfig()
	cfg.WinThreshold = 1
	lvl, _, _ := newTestLevel(t, cfg, LevelOptions{})
	logs := captureLogs(t)
	lvl.OnParticleCollected()
	lvl.Reset()
	lvl.OnParticleCollected()
	n := 0
	for _, l := range *logs {
		if l == "sunline: completion panel is not set" {
			n++
		}
	}
	if n != 1 {
		t.Errorf("panel warning logged %d times, want 1", n)
	}
}

func TestLevel_ResetInPlace(t *testing.T) {
	cfg := testConfig()
	cfg.Drops = []BoxDef{{Name: "crate", Center: Vec2{2, -3}, Width: 1, Height: 1}}
	lvl, ph, events := newTestLevel(t, cfg, LevelOptions{})
	drawTestLine(lvl)
	runFrames(lvl, 64)
	line := lvl.Drawing().Body()
	particles := slices.Clone(lvl.Spawn().Particles())

	lvl.Restart()

	if events.count(EventRestarted) != 1 {
		t.Error("no restart event")
	}
	if lvl.Ink().Used() != 0 || lvl.Progress().State() != StateIdle {
		t.Errorf("after restart ink=%v state=%v", lvl.Ink().Used(), lvl.Progress().State())
	}
	if !lvl.Drawing().CanDraw() || lvl.Drawing().Body() != 0 {
		t.Error("drawing not re-enabled")
	}
	if !slices.Contains(ph.destroyed, line) {
		t.Error("old line body not destroyed")
	}
	for _, id := range particles {
		if _, ok := ph.bodies[id]; ok {
			t.Errorf("particle %d survived the restart", id)
		}
	}
	boxes := lvl.Boxes()
	if len(boxes) != 1 || boxes[0].Drop == nil || boxes[0].Drop.Dropped() {
		t.Fatalf("drops not restored: %+v", boxes)
	}
	if b := ph.bodies[boxes[0].Body]; b == nil || b.kind != BodyKinematic {
		t.Error("restored drop is not kinematic")
	}

	// The rebuilt level plays again.
	drawTestLine(lvl)
	if lvl.Progress().State() != StateLineDropped {
		t.Errorf("state after redraw = %v", lvl.Progress().State())
	}
}

func TestLevel_SceneNavigation(t *testing.T) {
	scenes := &fakeScenes{}
	cfg := testConfig()
	lvl, _, events := newTestLevel(t, cfg, LevelOptions{Scenes: scenes})

	lvl.Restart()
	lvl.NextLevel()
	lvl.GoHome()
	if scenes.reloads != 1 {
		t.Errorf("reloads = %d, want 1", scenes.reloads)
	}
	if !slices.Equal(scenes.loads, []string{cfg.Next, cfg.Home}) {
		t.Errorf("loads = %v", scenes.loads)
	}
	if events.count(EventRestarted) != 0 {
		t.Error("restart through scenes rebuilt in place")
	}

	logs := captureLogs(t)
	scenes.err = errors.New("boom")
	lvl.Restart()
	lvl.NextLevel()
	if len(*logs) != 2 {
		t.Errorf("failed transitions logged %v", *logs)
	}
}

func TestLevel_NavigationWithoutScenes(t *testing.T) {
	lvl, _, _ := newTestLevel(t, testConfig(), LevelOptions{})
	logs := captureLogs(t)
	lvl.GoHome()
	if len(*logs) != 1 {
		t.Errorf("logs = %v, want one warning", *logs)
	}
}

func TestLevel_Pointer(t *testing.T) {
	samples := []PointerSample{
		{X: 300, Y: 200, Pressed: true},
		{X: 400, Y: 200, Pressed: true},
		{X: 400, Y: 200},
	}
	i := 0
	src := PointerSourceFunc(func() PointerSample {
		s := samples[min(i, len(samples)-1)]
		i++
		return s
	})
	lvl, _, _ := newTestLevel(t, testConfig(), LevelOptions{Pointer: src})
	runFrames(lvl, 3)
	if !lvl.Activation().Active() {
		t.Error("polled pointer stroke did not release a line")
	}
}

func TestLevel_Viewport(t *testing.T) {
	lvl, _, _ := newTestLevel(t, testConfig(), LevelOptions{})
	lvl.SetViewport(Rect{Width: 400, Height: 300})
	if got := lvl.Controls().Find(ControlPause).Bounds.X; got != 344 {
		t.Errorf("pause x = %v, want 344", got)
	}
	if w, h := lvl.Camera().ScreenSize(); w != 400 || h != 300 {
		t.Errorf("camera size = %vx%v", w, h)
	}
}
