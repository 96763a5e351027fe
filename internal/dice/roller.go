package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller provides the random draws used by the arena.
// This allows us to inject deterministic implementations for testing.
type Roller interface {
	// IntRange returns a uniform integer in [low, high], inclusive on both
	// ends. It fails when low > high.
	IntRange(low, high int) (int, error)

	// Float returns a uniform float in [0, 1)
	Float() float64
}
