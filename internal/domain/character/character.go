package character

import (
	"fmt"

	"github.com/KirkDiggler/battle-arena/internal/dice"
	arenaerr "github.com/KirkDiggler/battle-arena/internal/errors"
)

// Stat ranges rolled once at creation
const (
	MinStrength = 5
	MaxStrength = 10
	MinHealth   = 20
	MaxHealth   = 30
)

// Character is a tournament entrant. Name, class and strength never change
// after creation; health only goes down.
type Character struct {
	// ID is assigned by the tournament service when the bracket is built.
	// Characters made directly with New or NewWithStats leave it empty.
	ID    string
	Name  string
	Class Class

	strength int
	health   int
}

// New rolls strength then health for a fresh character.
// The name is validated by the caller.
func New(name string, class Class, roller dice.Roller) (*Character, error) {
	if !class.Valid() {
		return nil, arenaerr.Configurationf("unknown class %q", string(class))
	}
	if roller == nil {
		return nil, arenaerr.InvalidArgumentf("roller is required")
	}

	strength, err := roller.IntRange(MinStrength, MaxStrength)
	if err != nil {
		return nil, arenaerr.Wrapf(err, "rolling strength for %s", name)
	}

	health, err := roller.IntRange(MinHealth, MaxHealth)
	if err != nil {
		return nil, arenaerr.Wrapf(err, "rolling health for %s", name)
	}

	return &Character{
		Name:     name,
		Class:    class,
		strength: strength,
		health:   health,
	}, nil
}

// NewWithStats builds a character with fixed stats
func NewWithStats(name string, class Class, strength, health int) (*Character, error) {
	if !class.Valid() {
		return nil, arenaerr.Configurationf("unknown class %q", string(class))
	}
	if health < 0 {
		return nil, arenaerr.InvalidArgumentf("health must not be negative, got %d", health)
	}

	return &Character{
		Name:     name,
		Class:    class,
		strength: strength,
		health:   health,
	}, nil
}

// Strength returns the strength rolled at creation
func (c *Character) Strength() int {
	return c.strength
}

// Health returns the current health
func (c *Character) Health() int {
	return c.health
}

// TakeDamage lowers health by amount, clamping at zero
func (c *Character) TakeDamage(amount int) error {
	if amount < 0 {
		return arenaerr.InvalidArgumentf("damage must not be negative, got %d", amount).
			WithMeta("character", c.Name)
	}

	c.health -= amount
	if c.health < 0 {
		c.health = 0
	}
	return nil
}

// IsAlive reports whether the character has health left
func (c *Character) IsAlive() bool {
	return c.health > 0
}

func (c *Character) String() string {
	return fmt.Sprintf("%s | %s | STR: %d | HP: %d", c.Name, c.Class, c.strength, c.health)
}
