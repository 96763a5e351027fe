package combat_test

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/KirkDiggler/battle-arena/internal/dice"
	mockdice "github.com/KirkDiggler/battle-arena/internal/dice/mock"
	"github.com/KirkDiggler/battle-arena/internal/domain/character"
	"github.com/KirkDiggler/battle-arena/internal/domain/combat"
	arenaerr "github.com/KirkDiggler/battle-arena/internal/errors"
	"github.com/KirkDiggler/battle-arena/internal/events"
	"github.com/KirkDiggler/battle-arena/internal/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	events []events.Event
}

func (c *collector) HandleEvent(event events.Event) error {
	c.events = append(c.events, event)
	return nil
}

func (c *collector) Priority() int { return events.PriorityRecording }
func (c *collector) ID() string    { return "collector" }

func newEngine(roller dice.Roller, bus *events.Bus) *combat.Engine {
	return combat.NewEngine(&combat.EngineConfig{
		Roller:      roller,
		Bus:         bus,
		IDGenerator: uuid.NewSequentialGenerator("duel"),
	})
}

func TestFight_ScriptedDuel(t *testing.T) {
	roller := mockdice.NewScriptedRoller()
	// warrior str 6 rolls in [3,8]; archer str 5 rolls in [1,8]
	roller.SetInts(8, 2, 8, 8)

	warrior := mustCharacter(t, "Boromir", character.ClassWarrior, 6, 20)
	archer := mustCharacter(t, "Legolas", character.ClassArcher, 5, 16)

	result, err := newEngine(roller, nil).Fight(warrior, archer)
	require.NoError(t, err)

	require.Len(t, result.Turns, 3)
	assert.Equal(t, "duel-1", result.ID)
	assert.Equal(t, "Boromir attacks Legolas for 8 damage! | 8 HP left", result.Turns[0].String())
	assert.Equal(t, "Legolas attacks Boromir for 2 damage! | 18 HP left", result.Turns[1].String())
	assert.Equal(t, "Boromir attacks Legolas for 8 damage! | 0 HP left", result.Turns[2].String())

	assert.Same(t, warrior, result.Winner)
	assert.Same(t, archer, result.Loser)
	assert.Equal(t, 18, warrior.Health())

	ints, _ := roller.Remaining()
	assert.Equal(t, 1, ints, "no turn runs after the lethal hit")
}

func TestFight_TurnParityAndSingleSurvivor(t *testing.T) {
	roller := dice.NewSeededRoller(77)
	engine := newEngine(roller, nil)

	for i := 0; i < 300; i++ {
		classA := character.Classes()[i%3]
		classB := character.Classes()[(i/3)%3]
		a, err := character.New("A", classA, roller)
		require.NoError(t, err)
		b, err := character.New("B", classB, roller)
		require.NoError(t, err)

		result, err := engine.Fight(a, b)
		require.NoError(t, err)

		for idx, turn := range result.Turns {
			assert.Equal(t, idx+1, turn.Turn)
			if turn.Turn%2 == 1 {
				assert.Equal(t, "A", turn.AttackerName)
				assert.Equal(t, "B", turn.DefenderName)
			} else {
				assert.Equal(t, "B", turn.AttackerName)
				assert.Equal(t, "A", turn.DefenderName)
			}
			assert.GreaterOrEqual(t, turn.Damage, 1)
		}

		assert.NotEqual(t, a.IsAlive(), b.IsAlive(), "exactly one combatant survives")
		assert.True(t, result.Winner.IsAlive())
		assert.Equal(t, 0, result.Loser.Health())
		last := result.Turns[len(result.Turns)-1]
		assert.Equal(t, result.Winner.Name, last.AttackerName)
		assert.Equal(t, 0, last.DefenderHealth)
	}
}

func TestFight_MageCriticalRecorded(t *testing.T) {
	roller := mockdice.NewScriptedRoller()
	roller.SetInts(3)
	roller.SetFloats(0.95)

	mage := mustCharacter(t, "Gandalf", character.ClassMage, 5, 20)
	target := mustCharacter(t, "Orc", character.ClassWarrior, 5, 8)

	result, err := newEngine(roller, nil).Fight(mage, target)
	require.NoError(t, err)

	require.Len(t, result.Turns, 1)
	assert.Equal(t, 8, result.Turns[0].Damage)
	assert.True(t, result.Turns[0].Critical)
	assert.Same(t, mage, result.Winner)
}

func TestFight_EmitsEvents(t *testing.T) {
	bus := events.NewBus(zerolog.Nop())
	rec := &collector{}
	bus.Subscribe(rec,
		events.EventTypeDuelStarted,
		events.EventTypeTurnResolved,
		events.EventTypeDuelFinished,
	)

	roller := mockdice.NewScriptedRoller()
	roller.SetInts(5, 4, 5)

	a := mustCharacter(t, "A", character.ClassArcher, 5, 10)
	b := mustCharacter(t, "B", character.ClassArcher, 5, 10)

	result, err := newEngine(roller, bus).Fight(a, b)
	require.NoError(t, err)
	require.Len(t, result.Turns, 3)

	require.Len(t, rec.events, 5)
	assert.Equal(t, events.EventTypeDuelStarted, rec.events[0].GetType())
	for i := 1; i <= 3; i++ {
		turn, ok := rec.events[i].(*events.TurnResolvedEvent)
		require.True(t, ok)
		assert.Equal(t, i, turn.Turn)
		assert.Equal(t, result.Turns[i-1].DefenderHealth, turn.DefenderHealth)
	}
	finished, ok := rec.events[4].(*events.DuelFinishedEvent)
	require.True(t, ok)
	assert.Same(t, a, finished.GetActor())
	assert.Equal(t, 3, finished.Turns)
}

func TestFight_RejectsInvalidCombatants(t *testing.T) {
	engine := newEngine(mockdice.NewMidpointRoller(), nil)
	alive := mustCharacter(t, "alive", character.ClassWarrior, 5, 20)
	dead := mustCharacter(t, "dead", character.ClassWarrior, 5, 0)

	tests := []struct {
		name string
		a, b *character.Character
	}{
		{name: "dead defender", a: alive, b: dead},
		{name: "dead attacker", a: dead, b: alive},
		{name: "self duel", a: alive, b: alive},
		{name: "missing", a: alive, b: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Fight(tt.a, tt.b)
			require.Error(t, err)
			assert.True(t, arenaerr.IsInvalidArgument(err))
		})
	}
	assert.Equal(t, 20, alive.Health())
}

func TestFight_TurnCap(t *testing.T) {
	engine := combat.NewEngine(&combat.EngineConfig{
		Roller:   mockdice.NewMidpointRoller(),
		MaxTurns: 2,
	})

	a := mustCharacter(t, "A", character.ClassWarrior, 5, 30)
	b := mustCharacter(t, "B", character.ClassWarrior, 5, 30)

	_, err := engine.Fight(a, b)
	require.Error(t, err)
	assert.True(t, arenaerr.IsInternal(err))
}

func TestFight_RollerFailureSurfaces(t *testing.T) {
	roller := mockdice.NewScriptedRoller()

	a := mustCharacter(t, "A", character.ClassArcher, 5, 10)
	b := mustCharacter(t, "B", character.ClassArcher, 5, 10)

	_, err := newEngine(roller, nil).Fight(a, b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "turn 1")
}

func TestNewEngine_RequiresRoller(t *testing.T) {
	assert.Panics(t, func() {
		combat.NewEngine(&combat.EngineConfig{})
	})
}
