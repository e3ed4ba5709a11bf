package sunline

import (
	"math"
	"math/rand/v2"
)

// span is a value that moves from start to end over a particle's life.
type span struct{ start, end float64 }

func (s span) at(t float64) float64 { return lerp(s.start, s.end, t) }

type particle struct {
	pos, vel Vec2
	age, ttl float64
	size     span
	fade     span
}

// EmitterConfig describes a sunshine or firework emitter. Ranges are
// sampled once per particle.
type EmitterConfig struct {
	// MaxParticles caps the pool; spawns beyond it are dropped. Zero means 128.
	MaxParticles int
	// EmitRate is particles per second while the emitter runs.
	EmitRate float64

	Lifetime Range // seconds
	Speed    Range // world units per second
	Angle    Range // radians, 0 is +X

	// Size and alpha blend linearly from Start to End as a particle ages.
	StartScale, EndScale Range
	StartAlpha, EndAlpha Range

	Gravity Vec2
	Color   Color
}

// Particle is what a renderer needs to draw one live particle.
type Particle struct {
	Pos   Vec2
	Scale float64
	Alpha float64
}

// ParticleEmitter simulates a fixed pool of decorative particles. Live
// particles are packed at the front of the pool.
type ParticleEmitter struct {
	// Pos is the spawn point.
	Pos Vec2

	cfg     EmitterConfig
	pool    []particle
	n       int
	owed    float64
	running bool
	rng     *rand.Rand
}

// NewParticleEmitter allocates the pool up front. rng may be nil to use the
// global source.
func NewParticleEmitter(cfg EmitterConfig, rng *rand.Rand) *ParticleEmitter {
	size := cfg.MaxParticles
	if size <= 0 {
		size = 128
	}
	return &ParticleEmitter{cfg: cfg, pool: make([]particle, size), rng: rng}
}

// Start turns continuous emission on.
func (e *ParticleEmitter) Start() { e.running = true }

// Stop turns emission off. Live particles finish their lives.
func (e *ParticleEmitter) Stop() { e.running = false }

// Reset stops emission and clears the pool.
func (e *ParticleEmitter) Reset() {
	e.running = false
	e.n = 0
	e.owed = 0
}

// IsActive reports whether emission is on.
func (e *ParticleEmitter) IsActive() bool { return e.running }

// AliveCount is the number of live particles.
func (e *ParticleEmitter) AliveCount() int { return e.n }

// Config exposes the config for tuning at runtime.
func (e *ParticleEmitter) Config() *EmitterConfig { return &e.cfg }

// Burst spawns up to n particles now and returns how many the pool took.
func (e *ParticleEmitter) Burst(n int) int {
	k := 0
	for k < n && e.spawn() {
		k++
	}
	return k
}

// Each visits the live particles.
func (e *ParticleEmitter) Each(fn func(Particle)) {
	for _, p := range e.pool[:e.n] {
		t := p.age / p.ttl
		fn(Particle{Pos: p.pos, Scale: p.size.at(t), Alpha: p.fade.at(t)})
	}
}

// Update ages and moves particles by dt seconds, then emits whatever the
// rate owes.
func (e *ParticleEmitter) Update(dt float64) {
	dv := e.cfg.Gravity.Scale(dt)
	for i := 0; i < e.n; {
		p := &e.pool[i]
		p.age += dt
		if p.age >= p.ttl {
			e.n--
			e.pool[i] = e.pool[e.n]
			continue
		}
		p.vel = p.vel.Add(dv)
		p.pos = p.pos.Add(p.vel.Scale(dt))
		i++
	}

	if !e.running || e.cfg.EmitRate <= 0 {
		return
	}
	e.owed += e.cfg.EmitRate * dt
	for ; e.owed >= 1; e.owed-- {
		e.spawn()
	}
}

// spawn claims the next free slot. It reports false when the pool is full.
func (e *ParticleEmitter) spawn() bool {
	if e.n == len(e.pool) {
		return false
	}
	c := &e.cfg
	dir := c.Angle.Random(e.rng)
	speed := c.Speed.Random(e.rng)
	ttl := c.Lifetime.Random(e.rng)
	if ttl <= 0 {
		ttl = 1
	}
	e.pool[e.n] = particle{
		pos:  e.Pos,
		vel:  Vec2{math.Cos(dir), math.Sin(dir)}.Scale(speed),
		ttl:  ttl,
		size: span{c.StartScale.Random(e.rng), c.EndScale.Random(e.rng)},
		fade: span{c.StartAlpha.Random(e.rng), c.EndAlpha.Random(e.rng)},
	}
	e.n++
	return true
}
