package events

import (
	"github.com/KirkDiggler/battle-arena/internal/domain/character"
)

// EventType represents the type of arena event
type EventType string

// Event type constants
const (
	EventTypeDuelStarted        EventType = "duel_started"
	EventTypeTurnResolved       EventType = "turn_resolved"
	EventTypeDuelFinished       EventType = "duel_finished"
	EventTypeTournamentFinished EventType = "tournament_finished"
)

// Priority levels for listener order; lower runs first
const (
	PriorityRecording    = 0
	PriorityPresentation = 100
	PriorityMetrics      = 200
)

// Event is the base interface for all arena events
type Event interface {
	GetType() EventType
	GetActor() *character.Character
	GetTarget() *character.Character
}

// BaseEvent provides common implementation for all events
type BaseEvent struct {
	Type   EventType
	Actor  *character.Character
	Target *character.Character
}

func (e *BaseEvent) GetType() EventType              { return e.Type }
func (e *BaseEvent) GetActor() *character.Character  { return e.Actor }
func (e *BaseEvent) GetTarget() *character.Character { return e.Target }
