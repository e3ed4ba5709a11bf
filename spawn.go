package sunline

import "math/rand/v2"

// verticalJitter bounds the horizontal component of SpawnVerticalDown
// impulses.
const verticalJitter = 0.2

// ImpulseDirection returns the unit direction of a spawn impulse. Y grows
// downward.
func ImpulseDirection(cfg *SunshineConfig, rng *rand.Rand) Vec2 {
	switch cfg.Direction {
	case SpawnDiagonalRight:
		return Vec2{cfg.HorizontalForceRatio, cfg.VerticalForceRange.Random(rng)}.Normalize()
	case SpawnDiagonalLeft:
		return Vec2{-cfg.HorizontalForceRatio, cfg.VerticalForceRange.Random(rng)}.Normalize()
	default:
		jitter := Range{-verticalJitter, verticalJitter}
		return Vec2{jitter.Random(rng), 1}.Normalize()
	}
}

// SpawnSequence emits sunshine particles from the sun once per playthrough.
type SpawnSequence struct {
	cfg     SunshineConfig
	physics Physics
	rng     *rand.Rand

	started   bool
	particles []BodyID

	// OnSpawn runs after each particle is created.
	OnSpawn func(id BodyID)
}

// NewSpawnSequence creates an idle sequence. A nil rng uses the global
// source.
func NewSpawnSequence(physics Physics, cfg SunshineConfig, rng *rand.Rand) *SpawnSequence {
	return &SpawnSequence{cfg: cfg, physics: physics, rng: rng}
}

// Started reports whether the sequence has been scheduled this playthrough.
func (s *SpawnSequence) Started() bool { return s.started }

// Particles returns every particle spawned so far.
func (s *SpawnSequence) Particles() []BodyID { return s.particles }

// Start schedules the sequence on sched. It returns false when the sequence
// already ran or no sun origin is configured.
func (s *SpawnSequence) Start(sched *Scheduler) bool {
	if s.started {
		return false
	}
	if s.cfg.Origin == nil {
		logf("sunline: sunshine origin is not set; nothing will spawn")
		return false
	}
	s.started = true
	sched.Add(Sequence(
		Wait(s.cfg.Delay),
		Repeat(s.cfg.Count, s.cfg.Interval, func(int) { s.spawn() }),
	))
	return true
}

func (s *SpawnSequence) spawn() {
	spread := Range{-s.cfg.HorizontalSpread, s.cfg.HorizontalSpread}
	pos := s.cfg.Origin.Add(Vec2{spread.Random(s.rng), 0})
	p := s.cfg.Physics
	p.Continuous = true
	id := s.physics.SpawnParticle(pos, s.cfg.Radius, p)
	if s.cfg.InitialImpulse > 0 {
		s.physics.ApplyImpulse(id, ImpulseDirection(&s.cfg, s.rng).Scale(s.cfg.InitialImpulse))
	}
	s.particles = append(s.particles, id)
	if s.OnSpawn != nil {
		s.OnSpawn(id)
	}
}

// Reset allows the sequence to run again. Spawned bodies are not destroyed.
func (s *SpawnSequence) Reset() {
	s.started = false
	s.particles = s.particles[:0]
}
