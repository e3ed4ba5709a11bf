package sunline

import "testing"

func drawnLine(t *testing.T, ph *fakePhysics, cfg *LevelConfig) *Drawing {
	t.Helper()
	d := NewDrawing(ph, cfg, NewInkBudget(cfg.Ink))
	d.Begin()
	d.Sample(Vec2{0, 0})
	d.Sample(Vec2{1, 0})
	d.Sample(Vec2{2, 1})
	if !d.End() {
		t.Fatal("line not finished")
	}
	return d
}

func TestActivation_RunsOnce(t *testing.T) {
	cfg := DefaultLevelConfig()
	cfg.LinePhysics.Continuous = false
	ph := newFakePhysics()
	d := drawnLine(t, ph, &cfg)
	a := NewActivation(ph, &cfg)

	if !a.Activate(d) {
		t.Fatal("first Activate returned false")
	}
	if a.Activate(d) {
		t.Error("second Activate returned true")
	}
	if !a.Active() {
		t.Error("Active() = false after activation")
	}
	if d.CanDraw() {
		t.Error("drawing still enabled after activation")
	}

	body := ph.bodies[d.Body()]
	if body.kind != BodyDynamic {
		t.Errorf("line body kind = %v, want dynamic", body.kind)
	}
	if !body.params.Continuous {
		t.Error("continuous collision not forced on")
	}
	if body.params.Mass != cfg.LinePhysics.Mass || body.params.GravityScale != cfg.LinePhysics.GravityScale {
		t.Errorf("params = %+v, want line physics", body.params)
	}
	if len(body.impulses) != 1 || !approxVec(body.impulses[0], Vec2{0, cfg.InitialDownwardImpulse}, tol) {
		t.Errorf("impulses = %v, want one downward %v", body.impulses, cfg.InitialDownwardImpulse)
	}
}

func TestActivation_FillsLineMaterial(t *testing.T) {
	cfg := DefaultLevelConfig()
	ph := newFakePhysics()
	d := drawnLine(t, ph, &cfg)
	own := &Material{Name: "own"}
	d.Segments().At(0).Material = own
	d.Segments().At(1).Material = nil

	NewActivation(ph, &cfg).Activate(d)
	if d.Segments().At(0).Material != own {
		t.Error("segment material override lost")
	}
	if d.Segments().At(1).Material != cfg.LineMaterial {
		t.Error("segment without material not filled with the line material")
	}
	if ph.syncs != 1 {
		t.Errorf("SyncMaterials calls = %d, want 1", ph.syncs)
	}
}

func TestActivation_NoImpulseWhenZero(t *testing.T) {
	cfg := DefaultLevelConfig()
	cfg.InitialDownwardImpulse = 0
	ph := newFakePhysics()
	d := drawnLine(t, ph, &cfg)
	NewActivation(ph, &cfg).Activate(d)
	if n := len(ph.bodies[d.Body()].impulses); n != 0 {
		t.Errorf("impulses = %d, want 0", n)
	}
}

func TestActivation_NoLine(t *testing.T) {
	cfg := DefaultLevelConfig()
	ph := newFakePhysics()
	d := NewDrawing(ph, &cfg, NewInkBudget(cfg.Ink))
	a := NewActivation(ph, &cfg)
	if a.Activate(d) {
		t.Error("Activate without a line returned true")
	}
	if !d.CanDraw() {
		t.Error("drawing disabled without a line")
	}
}

func TestActivation_DropsOnce(t *testing.T) {
	cfg := DefaultLevelConfig()
	ph := newFakePhysics()
	d := drawnLine(t, ph, &cfg)
	a := NewActivation(ph, &cfg)

	wood := &Material{Name: "wood", Friction: 0.6}
	crate := &DelayedDrop{Name: "crate", Body: ph.CreateBody(BodyKinematic, Vec2{5, 0}, LayerDrop), Material: wood}
	plain := &DelayedDrop{Name: "plain", Body: ph.CreateBody(BodyKinematic, Vec2{6, 0}, LayerDrop)}
	a.Register(crate)
	a.Register(plain)

	a.Activate(d)
	for _, drop := range a.Drops() {
		if !drop.Dropped() {
			t.Errorf("%s not dropped", drop.Name)
		}
		if ph.Type(drop.Body) != BodyDynamic {
			t.Errorf("%s kind = %v, want dynamic", drop.Name, ph.Type(drop.Body))
		}
	}
	if ph.bodies[crate.Body].material != wood {
		t.Error("crate lost its own material")
	}
	if ph.bodies[plain.Body].material != cfg.LineMaterial {
		t.Error("plain drop did not get the line material")
	}
	if crate.Drop(ph, cfg.LinePhysics, nil) {
		t.Error("second Drop returned true")
	}
}

func TestActivation_DropsNotTriggered(t *testing.T) {
	cfg := DefaultLevelConfig()
	cfg.TriggerDelayedDrops = false
	ph := newFakePhysics()
	d := drawnLine(t, ph, &cfg)
	a := NewActivation(ph, &cfg)
	drop := &DelayedDrop{Name: "crate", Body: ph.CreateBody(BodyKinematic, Vec2{}, LayerDrop)}
	a.Register(drop)
	a.Activate(d)
	if drop.Dropped() || ph.Type(drop.Body) != BodyKinematic {
		t.Error("drop released with TriggerDelayedDrops off")
	}
}

func TestDelayedDrop_MissingBody(t *testing.T) {
	logs := captureLogs(t)
	drop := &DelayedDrop{Name: "ghost"}
	if drop.Drop(newFakePhysics(), BodyParams{}, nil) {
		t.Error("Drop without a body returned true")
	}
	if len(*logs) != 1 {
		t.Errorf("warnings = %v, want 1", *logs)
	}
}
