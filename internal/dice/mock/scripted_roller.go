package mockdice

import (
	"sync"

	"github.com/KirkDiggler/battle-arena/internal/dice"
	arenaerr "github.com/KirkDiggler/battle-arena/internal/errors"
)

// ScriptedRoller implements dice.Roller for testing with predetermined results
type ScriptedRoller struct {
	mu         sync.Mutex
	ints       []int
	intIndex   int
	floats     []float64
	floatIndex int
}

// NewScriptedRoller creates a new scripted roller
func NewScriptedRoller() *ScriptedRoller {
	return &ScriptedRoller{}
}

// SetInts replaces the queued integer results
func (s *ScriptedRoller) SetInts(ints ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ints = ints
	s.intIndex = 0
}

// SetFloats replaces the queued float results
func (s *ScriptedRoller) SetFloats(floats ...float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.floats = floats
	s.floatIndex = 0
}

// Remaining reports how many queued ints and floats have not been drawn
func (s *ScriptedRoller) Remaining() (ints, floats int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ints) - s.intIndex, len(s.floats) - s.floatIndex
}

// IntRange implements dice.Roller.IntRange
func (s *ScriptedRoller) IntRange(low, high int) (int, error) {
	if err := dice.ValidateRange(low, high); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.intIndex >= len(s.ints) {
		return 0, arenaerr.InvalidArgumentf("no more predetermined ints available (used %d of %d)", s.intIndex, len(s.ints))
	}

	roll := s.ints[s.intIndex]
	if roll < low || roll > high {
		return 0, arenaerr.InvalidArgumentf("invalid roll %d for range [%d, %d]", roll, low, high).
			WithMeta("roll", roll)
	}
	s.intIndex++
	return roll, nil
}

// Float implements dice.Roller.Float. An exhausted queue yields 0.
func (s *ScriptedRoller) Float() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.floatIndex >= len(s.floats) {
		return 0
	}
	f := s.floats[s.floatIndex]
	s.floatIndex++
	return f
}

// MidpointRoller always lands in the middle of the requested range and never
// produces a float above zero.
type MidpointRoller struct{}

// NewMidpointRoller creates a midpoint roller
func NewMidpointRoller() *MidpointRoller {
	return &MidpointRoller{}
}

// IntRange implements dice.Roller.IntRange
func (m *MidpointRoller) IntRange(low, high int) (int, error) {
	if err := dice.ValidateRange(low, high); err != nil {
		return 0, err
	}
	return (low + high) / 2, nil
}

// Float implements dice.Roller.Float
func (m *MidpointRoller) Float() float64 {
	return 0
}
