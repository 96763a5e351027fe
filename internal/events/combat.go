package events

// DuelStartedEvent is emitted before the first turn of a duel.
// Actor is combatant A, Target is combatant B.
type DuelStartedEvent struct {
	BaseEvent
	DuelID string
}

// TurnResolvedEvent is emitted once per turn after damage lands.
// Actor is the attacker, Target the defender.
type TurnResolvedEvent struct {
	BaseEvent
	DuelID         string
	Turn           int
	Damage         int
	Critical       bool
	DefenderHealth int
}

// DuelFinishedEvent is emitted when a defender drops to zero.
// Actor is the winner, Target the loser.
type DuelFinishedEvent struct {
	BaseEvent
	DuelID string
	Turns  int
}

// TournamentFinishedEvent is emitted after the final. Actor is the overall winner.
type TournamentFinishedEvent struct {
	BaseEvent
	TournamentID string
	TotalTurns   int
}
