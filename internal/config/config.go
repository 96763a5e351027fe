package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/battle-arena/internal/domain/tournament"
	arenaerr "github.com/KirkDiggler/battle-arena/internal/errors"
	tournamentService "github.com/KirkDiggler/battle-arena/internal/services/tournament"
)

// Config holds all configuration for the application
type Config struct {
	Arena      ArenaConfig
	Simulation SimulationConfig
}

// ArenaConfig holds tournament configuration
type ArenaConfig struct {
	// Seed of 0 picks a random seed per run
	Seed     uint64   `env:"ARENA_SEED" envDefault:"0"`
	MaxTurns int      `env:"ARENA_MAX_TURNS" envDefault:"1000"`
	Color    bool     `env:"ARENA_COLOR" envDefault:"true"`
	LogLevel string   `env:"ARENA_LOG_LEVEL" envDefault:"info"`
	Players  []string `env:"ARENA_PLAYERS" envSeparator:"," envDefault:"Aragorn:Warrior,Legolas:Archer,Gandalf:Mage,Gimli:Warrior"`
}

// SimulationConfig holds batch simulation configuration
type SimulationConfig struct {
	Concurrency int `env:"ARENA_SIMULATION_CONCURRENCY" envDefault:"4"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, arenaerr.WrapWithCode(err, arenaerr.CodeConfiguration, "parse env")
	}

	if _, err := cfg.Arena.Level(); err != nil {
		return nil, err
	}
	if cfg.Simulation.Concurrency < 1 {
		return nil, arenaerr.Configurationf("ARENA_SIMULATION_CONCURRENCY must be positive, got %d", cfg.Simulation.Concurrency)
	}

	return cfg, nil
}

// Level parses the configured log level
func (c ArenaConfig) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(c.LogLevel)))
	if err != nil {
		return zerolog.NoLevel, arenaerr.WrapWithCode(err, arenaerr.CodeConfiguration, "ARENA_LOG_LEVEL")
	}
	return level, nil
}

// ParsePlayers turns exactly four "name:Class" entries into tournament input.
// Class tags are not checked here; the tournament service does that.
func ParsePlayers(entries []string) ([tournament.SlotCount]tournamentService.PlayerInput, error) {
	var players [tournament.SlotCount]tournamentService.PlayerInput

	if len(entries) != tournament.SlotCount {
		return players, arenaerr.Validationf("expected %d players, got %d", tournament.SlotCount, len(entries))
	}

	for i, entry := range entries {
		idx := strings.LastIndex(entry, ":")
		if idx < 0 {
			return players, arenaerr.Validationf("player %d: %q is not name:Class", i+1, entry).WithMeta("slot", i+1)
		}
		players[i] = tournamentService.PlayerInput{
			Name:  strings.TrimSpace(entry[:idx]),
			Class: strings.TrimSpace(entry[idx+1:]),
		}
	}

	return players, nil
}

// String renders the roster for logs
func (c ArenaConfig) String() string {
	return fmt.Sprintf("seed=%d max_turns=%d color=%t players=%s",
		c.Seed, c.MaxTurns, c.Color, strings.Join(c.Players, ","))
}
