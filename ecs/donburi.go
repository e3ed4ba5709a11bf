package ecs

import (
	"github.com/phanxgames/sunline"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GameEventType is the Donburi event type for sunline level events.
var GameEventType = events.NewEventType[sunline.GameEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Level
// events are queued on GameEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) sunline.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) Publish(event sunline.GameEvent) {
	GameEventType.Publish(s.world, event)
}

// Score is a component holding a level's running totals, kept current by
// ScoreSystem.
type Score struct {
	Level     string
	Collected int
	Stars     int
	InkUsed   float64
	Won       bool
}

// ScoreComponent is the Donburi component type for Score.
var ScoreComponent = donburi.NewComponentType[Score]()

// ScoreSystem keeps one Score entity in sync with the events it receives.
type ScoreSystem struct {
	entity donburi.Entity
}

// NewScoreSystem creates the Score entity and subscribes it to
// GameEventType.
func NewScoreSystem(world donburi.World) *ScoreSystem {
	s := &ScoreSystem{entity: world.Create(ScoreComponent)}
	GameEventType.Subscribe(world, s.handle)
	return s
}

// Score returns the current totals.
func (s *ScoreSystem) Score(world donburi.World) Score {
	return *ScoreComponent.Get(world.Entry(s.entity))
}

func (s *ScoreSystem) handle(w donburi.World, e sunline.GameEvent) {
	sc := ScoreComponent.Get(w.Entry(s.entity))
	sc.Level = e.Level
	sc.InkUsed = e.InkUsedPercent
	switch e.Type {
	case sunline.EventParticleCollected:
		sc.Collected = e.Count
	case sunline.EventLevelWon:
		sc.Won = true
		sc.Stars = e.Stars
	case sunline.EventRestarted:
		*sc = Score{Level: e.Level}
	}
}
