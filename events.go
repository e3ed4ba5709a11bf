package sunline

import "fmt"

// EventType identifies a GameEvent.
type EventType uint8

const (
	EventStrokeStarted EventType = iota
	EventStrokeCancelled
	EventLineDropped
	EventParticleSpawned
	EventParticleCollected
	EventLevelWon
	EventPaused
	EventResumed
	EventRestarted
)

var eventNames = [...]string{
	"strokeStarted", "strokeCancelled", "lineDropped", "particleSpawned",
	"particleCollected", "levelWon", "paused", "resumed", "restarted",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return fmt.Sprintf("EventType(%d)", t)
}

// GameEvent is published by a Level to its EventSink.
type GameEvent struct {
	Type  EventType
	Level string
	// Body is set for particle events.
	Body BodyID
	// Count is the collected count for EventParticleCollected.
	Count int
	// Stars is set for EventLevelWon.
	Stars int
	// InkUsedPercent is the ink usage at the time of the event.
	InkUsedPercent float64
}

// EventSink receives level events synchronously on the frame goroutine.
type EventSink interface {
	Publish(e GameEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(GameEvent)

// Publish implements EventSink.
func (f EventSinkFunc) Publish(e GameEvent) { f(e) }

// MultiSink fans an event out to every sink in order.
type MultiSink []EventSink

// Publish implements EventSink.
func (m MultiSink) Publish(e GameEvent) {
	for _, s := range m {
		if s != nil {
			s.Publish(e)
		}
	}
}
