package dice

import (
	"math/rand/v2"

	arenaerr "github.com/KirkDiggler/battle-arena/internal/errors"
)

// randomRoller implements Roller on top of a PCG source.
// It is not safe for concurrent use; give each tournament its own.
type randomRoller struct {
	rng *rand.Rand
}

// NewRandomRoller creates a roller seeded from the runtime's entropy
func NewRandomRoller() Roller {
	return NewSeededRoller(rand.Uint64())
}

// NewSeededRoller creates a roller that replays the same sequence for the same seed
func NewSeededRoller(seed uint64) Roller {
	return &randomRoller{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// IntRange implements Roller.IntRange
func (r *randomRoller) IntRange(low, high int) (int, error) {
	if err := ValidateRange(low, high); err != nil {
		return 0, err
	}
	return low + r.rng.IntN(high-low+1), nil
}

// Float implements Roller.Float
func (r *randomRoller) Float() float64 {
	return r.rng.Float64()
}

// ValidateRange rejects a range whose lower bound exceeds its upper bound
func ValidateRange(low, high int) error {
	if low > high {
		return arenaerr.InvalidArgumentf("invalid roll range [%d, %d]", low, high).
			WithMeta("low", low).
			WithMeta("high", high)
	}
	return nil
}
