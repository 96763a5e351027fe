package combat_test

import (
	"math"
	"testing"

	"github.com/KirkDiggler/battle-arena/internal/dice"
	mockdice "github.com/KirkDiggler/battle-arena/internal/dice/mock"
	"github.com/KirkDiggler/battle-arena/internal/domain/character"
	"github.com/KirkDiggler/battle-arena/internal/domain/combat"
	arenaerr "github.com/KirkDiggler/battle-arena/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func mustCharacter(t *testing.T, name string, class character.Class, strength, health int) *character.Character {
	t.Helper()
	c, err := character.NewWithStats(name, class, strength, health)
	require.NoError(t, err)
	return c
}

func TestPolicies_RequestExpectedRanges(t *testing.T) {
	tests := []struct {
		name     string
		class    character.Class
		strength int
		low      int
		high     int
	}{
		{name: "warrior str 5", class: character.ClassWarrior, strength: 5, low: 2, high: 7},
		{name: "warrior str 10", class: character.ClassWarrior, strength: 10, low: 5, high: 12},
		{name: "archer str 5", class: character.ClassArcher, strength: 5, low: 1, high: 8},
		{name: "archer str 10", class: character.ClassArcher, strength: 10, low: 1, high: 13},
		{name: "mage str 7", class: character.ClassMage, strength: 7, low: 1, high: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			roller := mockdice.NewMockRoller(ctrl)

			roller.EXPECT().IntRange(tt.low, tt.high).Return(tt.high, nil)
			if tt.class == character.ClassMage {
				roller.EXPECT().Float().Return(0.5)
			}

			roll, err := combat.RollDamage(mustCharacter(t, "x", tt.class, tt.strength, 20), roller)
			require.NoError(t, err)
			assert.Equal(t, tt.high, roll.Damage)
			assert.False(t, roll.Critical)
		})
	}
}

func TestMagePolicy_CriticalAddsFive(t *testing.T) {
	tests := []struct {
		name         string
		float        float64
		wantDamage   int
		wantCritical bool
	}{
		{name: "above threshold", float: 0.81, wantDamage: 9, wantCritical: true},
		{name: "at threshold", float: 0.8, wantDamage: 4, wantCritical: false},
		{name: "low draw", float: 0.1, wantDamage: 4, wantCritical: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			roller := mockdice.NewMockRoller(ctrl)

			gomock.InOrder(
				roller.EXPECT().IntRange(1, 6).Return(4, nil),
				roller.EXPECT().Float().Return(tt.float).Times(1),
			)

			roll, err := combat.RollDamage(mustCharacter(t, "Gandalf", character.ClassMage, 6, 20), roller)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDamage, roll.Damage)
			assert.Equal(t, tt.wantCritical, roll.Critical)
		})
	}
}

func TestWarriorAndArcher_NeverDrawFloats(t *testing.T) {
	ctrl := gomock.NewController(t)
	roller := mockdice.NewMockRoller(ctrl)

	roller.EXPECT().IntRange(gomock.Any(), gomock.Any()).Return(3, nil).Times(2)
	roller.EXPECT().Float().Times(0)

	_, err := combat.RollDamage(mustCharacter(t, "w", character.ClassWarrior, 5, 20), roller)
	require.NoError(t, err)
	_, err = combat.RollDamage(mustCharacter(t, "a", character.ClassArcher, 5, 20), roller)
	require.NoError(t, err)
}

func TestPolicies_DamageRangesHold(t *testing.T) {
	roller := dice.NewSeededRoller(2024)

	for strength := character.MinStrength; strength <= character.MaxStrength; strength++ {
		warrior := mustCharacter(t, "w", character.ClassWarrior, strength, 20)
		archer := mustCharacter(t, "a", character.ClassArcher, strength, 20)
		mage := mustCharacter(t, "m", character.ClassMage, strength, 20)

		for i := 0; i < 500; i++ {
			roll, err := combat.RollDamage(warrior, roller)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, roll.Damage, strength/2)
			assert.LessOrEqual(t, roll.Damage, strength+2)

			roll, err = combat.RollDamage(archer, roller)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, roll.Damage, 1)
			assert.LessOrEqual(t, roll.Damage, strength+3)

			roll, err = combat.RollDamage(mage, roller)
			require.NoError(t, err)
			base := roll.Damage
			if roll.Critical {
				base -= combat.MageCriticalBonus
			}
			assert.GreaterOrEqual(t, base, 1)
			assert.LessOrEqual(t, base, strength)
		}
	}
}

func TestMagePolicy_CriticalRateConvergesToOneFifth(t *testing.T) {
	roller := dice.NewSeededRoller(1)
	mage := mustCharacter(t, "Merlin", character.ClassMage, 8, 20)

	const trials = 10000
	crits := 0
	for i := 0; i < trials; i++ {
		roll, err := combat.RollDamage(mage, roller)
		require.NoError(t, err)
		if roll.Critical {
			crits++
		}
	}

	rate := float64(crits) / trials
	assert.LessOrEqual(t, math.Abs(rate-0.2), 0.02, "critical rate was %.4f", rate)
}

func TestWarriorPolicy_MinimumStrengthBoundary(t *testing.T) {
	ctrl := gomock.NewController(t)
	roller := mockdice.NewMockRoller(ctrl)
	roller.EXPECT().IntRange(2, 7).DoAndReturn(func(low, high int) (int, error) {
		require.NoError(t, dice.ValidateRange(low, high))
		return low, nil
	})

	roll, err := combat.RollDamage(mustCharacter(t, "w", character.ClassWarrior, 5, 20), roller)
	require.NoError(t, err)
	assert.Equal(t, 2, roll.Damage)
}

func TestPolicies_CorruptedStrengthIsFatal(t *testing.T) {
	roller := dice.NewSeededRoller(3)

	for _, class := range character.Classes() {
		t.Run(class.String(), func(t *testing.T) {
			_, err := combat.RollDamage(mustCharacter(t, "broken", class, -10, 20), roller)
			require.Error(t, err)
			assert.True(t, arenaerr.IsConfiguration(err))
			assert.True(t, arenaerr.IsFatal(err))
			assert.Equal(t, -10, arenaerr.GetMeta(err)["strength"])
		})
	}
}

func TestPolicyFor_EveryClassCovered(t *testing.T) {
	for _, class := range character.Classes() {
		policy, err := combat.PolicyFor(class)
		require.NoError(t, err)
		assert.NotNil(t, policy)
	}

	_, err := combat.PolicyFor(character.Class("Bard"))
	assert.True(t, arenaerr.IsConfiguration(err))
}
