package combat

import (
	"github.com/KirkDiggler/battle-arena/internal/dice"
	"github.com/KirkDiggler/battle-arena/internal/domain/character"
	arenaerr "github.com/KirkDiggler/battle-arena/internal/errors"
)

const (
	// MageCriticalBonus is the flat damage added on a Mage critical
	MageCriticalBonus = 5

	// MageCriticalThreshold is the float draw a Mage must exceed to crit
	MageCriticalThreshold = 0.8
)

// Roll is the outcome of a single attack roll
type Roll struct {
	Damage   int
	Critical bool
}

// Policy turns an attacker's strength into damage. Policies are pure apart
// from the draws they take from the roller.
type Policy func(c *character.Character, roller dice.Roller) (*Roll, error)

var policies = map[character.Class]Policy{
	character.ClassWarrior: warriorPolicy,
	character.ClassArcher:  archerPolicy,
	character.ClassMage:    magePolicy,
}

// PolicyFor returns the attack policy for a class
func PolicyFor(class character.Class) (Policy, error) {
	policy, ok := policies[class]
	if !ok {
		return nil, arenaerr.Configurationf("no attack policy for class %q", string(class))
	}
	return policy, nil
}

// RollDamage rolls one attack for c using its class policy
func RollDamage(c *character.Character, roller dice.Roller) (*Roll, error) {
	policy, err := PolicyFor(c.Class)
	if err != nil {
		return nil, err
	}
	return policy(c, roller)
}

// warriorPolicy hits hard and consistently: [strength/2, strength+2]
func warriorPolicy(c *character.Character, roller dice.Roller) (*Roll, error) {
	low, high := c.Strength()/2, c.Strength()+2
	damage, err := roller.IntRange(low, high)
	if err != nil {
		// only a corrupted strength can produce an empty range
		return nil, arenaerr.WrapWithCode(err, arenaerr.CodeConfiguration, "warrior roll for "+c.Name).
			WithMeta("strength", c.Strength())
	}
	return &Roll{Damage: damage}, nil
}

// archerPolicy is swingy: [1, strength+3]
func archerPolicy(c *character.Character, roller dice.Roller) (*Roll, error) {
	damage, err := roller.IntRange(1, c.Strength()+3)
	if err != nil {
		return nil, arenaerr.WrapWithCode(err, arenaerr.CodeConfiguration, "archer roll for "+c.Name).
			WithMeta("strength", c.Strength())
	}
	return &Roll{Damage: damage}, nil
}

// magePolicy rolls [1, strength] then draws exactly one float for the critical
func magePolicy(c *character.Character, roller dice.Roller) (*Roll, error) {
	base, err := roller.IntRange(1, c.Strength())
	if err != nil {
		return nil, arenaerr.WrapWithCode(err, arenaerr.CodeConfiguration, "mage roll for "+c.Name).
			WithMeta("strength", c.Strength())
	}

	if roller.Float() > MageCriticalThreshold {
		return &Roll{Damage: base + MageCriticalBonus, Critical: true}, nil
	}
	return &Roll{Damage: base}, nil
}
