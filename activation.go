package sunline

// DelayedDrop is a body that waits, kinematic, until the line is released
// and then falls with it.
type DelayedDrop struct {
	Name string
	Body BodyID
	// Material overrides the line material for this body.
	Material *Material

	dropped bool
}

// Dropped reports whether the body has been released this playthrough.
func (d *DelayedDrop) Dropped() bool { return d.dropped }

// Drop releases the body with p. It does nothing after the first call.
func (d *DelayedDrop) Drop(physics Physics, p BodyParams, fallback *Material) bool {
	if d.dropped {
		return false
	}
	d.dropped = true
	if d.Body == 0 {
		logf("sunline: delayed drop %q has no body", d.Name)
		return false
	}
	mat := d.Material
	if mat == nil {
		mat = fallback
	}
	physics.SetMaterial(d.Body, mat)
	physics.SetDynamic(d.Body, p)
	return true
}

// Activation releases the finished line and every registered delayed drop.
type Activation struct {
	physics      Physics
	params       BodyParams
	material     *Material
	impulse      float64
	triggerDrops bool

	drops  []*DelayedDrop
	active bool
}

// NewActivation creates an activation using the line settings of cfg.
func NewActivation(physics Physics, cfg *LevelConfig) *Activation {
	return &Activation{
		physics:      physics,
		params:       cfg.LinePhysics,
		material:     cfg.LineMaterial,
		impulse:      cfg.InitialDownwardImpulse,
		triggerDrops: cfg.TriggerDelayedDrops,
	}
}

// Register adds a body that should fall together with the line.
func (a *Activation) Register(d *DelayedDrop) {
	a.drops = append(a.drops, d)
}

// Drops returns the registered delayed drops.
func (a *Activation) Drops() []*DelayedDrop { return a.drops }

// Active reports whether the line has been released this playthrough.
func (a *Activation) Active() bool { return a.active }

// Activate makes the line body dynamic. It runs at most once per
// playthrough and reports whether this call did the work.
func (a *Activation) Activate(d *Drawing) bool {
	if a.active || d.Body() == 0 {
		return false
	}
	a.active = true
	d.Disable()

	p := a.params
	p.Continuous = true
	arena := d.Segments()
	if arena.FillMaterial(a.material) > 0 {
		a.physics.SyncMaterials(d.Body(), arena)
	}
	a.physics.SetDynamic(d.Body(), p)
	if a.impulse > 0 {
		a.physics.ApplyImpulse(d.Body(), Down.Scale(a.impulse))
	}

	if a.triggerDrops {
		for _, drop := range a.drops {
			drop.Drop(a.physics, p, a.material)
		}
	}
	return true
}

// Reset forgets the release so the next line can activate. Bodies are
// recreated by the level.
func (a *Activation) Reset() {
	a.active = false
	a.drops = a.drops[:0]
}
