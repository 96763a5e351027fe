package tournament

import (
	"github.com/KirkDiggler/battle-arena/internal/domain/character"
	"github.com/KirkDiggler/battle-arena/internal/domain/combat"
)

// Slot identifies an entrant's position in the bracket.
// Slots 1 and 2 are Team 1, slots 3 and 4 are Team 2.
type Slot int

const (
	SlotP1 Slot = iota
	SlotP2
	SlotP3
	SlotP4
)

// SlotCount is the number of entrants in a bracket
const SlotCount = 4

// Team returns 1 or 2
func (s Slot) Team() int {
	if s <= SlotP2 {
		return 1
	}
	return 2
}

// Pairing is a fixed cross-team matchup
type Pairing struct {
	A Slot
	B Slot
}

var (
	// SemifinalA pits the first player of each team against each other
	SemifinalA = Pairing{A: SlotP1, B: SlotP3}
	// SemifinalB pits the second player of each team against each other
	SemifinalB = Pairing{A: SlotP2, B: SlotP4}
)

// Result is a finished tournament
type Result struct {
	ID         string
	Entrants   [SlotCount]*character.Character
	SemifinalA *combat.DuelResult
	SemifinalB *combat.DuelResult
	Final      *combat.DuelResult
	Winner     *character.Character
}

// Duels returns the duels in execution order
func (r *Result) Duels() []*combat.DuelResult {
	return []*combat.DuelResult{r.SemifinalA, r.SemifinalB, r.Final}
}

// Log returns every turn of every duel in execution order
func (r *Result) Log() []*combat.TurnEvent {
	var log []*combat.TurnEvent
	for _, duel := range r.Duels() {
		if duel == nil {
			continue
		}
		log = append(log, duel.Turns...)
	}
	return log
}

// TurnCount is the total number of turns across all duels
func (r *Result) TurnCount() int {
	return len(r.Log())
}
