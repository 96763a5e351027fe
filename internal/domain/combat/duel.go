package combat

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/KirkDiggler/battle-arena/internal/dice"
	"github.com/KirkDiggler/battle-arena/internal/domain/character"
	arenaerr "github.com/KirkDiggler/battle-arena/internal/errors"
	"github.com/KirkDiggler/battle-arena/internal/events"
	"github.com/KirkDiggler/battle-arena/internal/uuid"
)

// DefaultMaxTurns caps a duel well above anything valid stats can reach.
// Every policy deals at least 1 damage and health starts at most 30.
const DefaultMaxTurns = 1000

// TurnEvent records one attack
type TurnEvent struct {
	DuelID         string
	Turn           int
	AttackerName   string
	DefenderName   string
	Damage         int
	Critical       bool
	DefenderHealth int
}

func (t *TurnEvent) String() string {
	return fmt.Sprintf("%s attacks %s for %d damage! | %d HP left",
		t.AttackerName, t.DefenderName, t.Damage, t.DefenderHealth)
}

// DuelResult is the finished record of one duel
type DuelResult struct {
	ID     string
	A      *character.Character
	B      *character.Character
	Turns  []*TurnEvent
	Winner *character.Character
	Loser  *character.Character
}

// Engine resolves duels
type Engine struct {
	roller      dice.Roller
	bus         *events.Bus
	logger      zerolog.Logger
	idGenerator uuid.Generator
	maxTurns    int
}

// EngineConfig holds the engine's collaborators. Bus, Logger and IDGenerator
// are optional. MaxTurns of zero means DefaultMaxTurns; negative disables the cap.
type EngineConfig struct {
	Roller      dice.Roller
	Bus         *events.Bus
	Logger      *zerolog.Logger
	IDGenerator uuid.Generator
	MaxTurns    int
}

// NewEngine creates a duel engine
func NewEngine(cfg *EngineConfig) *Engine {
	if cfg == nil || cfg.Roller == nil {
		panic("roller is required")
	}

	e := &Engine{
		roller:      cfg.Roller,
		bus:         cfg.Bus,
		idGenerator: cfg.IDGenerator,
		maxTurns:    cfg.MaxTurns,
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	e.logger = logger.With().Str("component", "DuelEngine").Logger()

	if e.idGenerator == nil {
		e.idGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if e.maxTurns == 0 {
		e.maxTurns = DefaultMaxTurns
	}

	return e
}

// Fight runs a duel to the end. Combatant a attacks on odd turns, b on even
// turns. Both characters are mutated in place.
func (e *Engine) Fight(a, b *character.Character) (*DuelResult, error) {
	if a == nil || b == nil {
		return nil, arenaerr.InvalidArgumentf("duel needs two combatants")
	}
	if a == b {
		return nil, arenaerr.InvalidArgumentf("%s cannot duel themselves", a.Name)
	}
	if !a.IsAlive() || !b.IsAlive() {
		return nil, arenaerr.InvalidArgumentf("duel %s vs %s: both combatants must be alive", a.Name, b.Name)
	}

	result := &DuelResult{
		ID: e.idGenerator.New(),
		A:  a,
		B:  b,
	}
	log := e.logger.With().Str("duel_id", result.ID).Logger()
	log.Debug().Str("a", a.String()).Str("b", b.String()).Msg("Duel started")

	if err := e.emit(&events.DuelStartedEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeDuelStarted, Actor: a, Target: b},
		DuelID:    result.ID,
	}); err != nil {
		return nil, err
	}

	for turn := 1; ; turn++ {
		if e.maxTurns > 0 && turn > e.maxTurns {
			return nil, arenaerr.Internalf("duel %s vs %s exceeded %d turns", a.Name, b.Name, e.maxTurns).
				WithMeta("duel_id", result.ID)
		}

		attacker, defender := a, b
		if turn%2 == 0 {
			attacker, defender = b, a
		}

		roll, err := RollDamage(attacker, e.roller)
		if err != nil {
			return nil, arenaerr.Wrapf(err, "turn %d", turn)
		}
		if err := defender.TakeDamage(roll.Damage); err != nil {
			return nil, arenaerr.Wrapf(err, "turn %d", turn)
		}

		event := &TurnEvent{
			DuelID:         result.ID,
			Turn:           turn,
			AttackerName:   attacker.Name,
			DefenderName:   defender.Name,
			Damage:         roll.Damage,
			Critical:       roll.Critical,
			DefenderHealth: defender.Health(),
		}
		result.Turns = append(result.Turns, event)

		log.Trace().
			Int("turn", turn).
			Str("attacker", attacker.Name).
			Str("defender", defender.Name).
			Int("damage", roll.Damage).
			Bool("critical", roll.Critical).
			Int("defender_health", defender.Health()).
			Msg("Turn resolved")

		if err := e.emit(&events.TurnResolvedEvent{
			BaseEvent:      events.BaseEvent{Type: events.EventTypeTurnResolved, Actor: attacker, Target: defender},
			DuelID:         result.ID,
			Turn:           turn,
			Damage:         roll.Damage,
			Critical:       roll.Critical,
			DefenderHealth: defender.Health(),
		}); err != nil {
			return nil, err
		}

		if !defender.IsAlive() {
			result.Winner, result.Loser = attacker, defender
			break
		}
	}

	log.Debug().
		Str("winner", result.Winner.Name).
		Int("winner_health", result.Winner.Health()).
		Int("turns", len(result.Turns)).
		Msg("Duel finished")

	if err := e.emit(&events.DuelFinishedEvent{
		BaseEvent: events.BaseEvent{Type: events.EventTypeDuelFinished, Actor: result.Winner, Target: result.Loser},
		DuelID:    result.ID,
		Turns:     len(result.Turns),
	}); err != nil {
		return nil, err
	}

	return result, nil
}

func (e *Engine) emit(event events.Event) error {
	if e.bus == nil {
		return nil
	}
	if err := e.bus.Emit(event); err != nil {
		return arenaerr.Wrapf(err, "emitting %s", event.GetType())
	}
	return nil
}
