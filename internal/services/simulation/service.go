package simulation

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/battle-arena/internal/dice"
	"github.com/KirkDiggler/battle-arena/internal/domain/character"
	"github.com/KirkDiggler/battle-arena/internal/domain/tournament"
	arenaerr "github.com/KirkDiggler/battle-arena/internal/errors"
	tournamentService "github.com/KirkDiggler/battle-arena/internal/services/tournament"
)

// DefaultConcurrency is used when RunInput.Concurrency is not positive
const DefaultConcurrency = 4

// Service plays many independent tournaments and tallies the winners
type Service interface {
	Run(ctx context.Context, input *RunInput) (*Report, error)
}

// RunInput describes a batch of tournaments. Run i is seeded with Seed+i so a
// batch is reproducible regardless of Concurrency.
type RunInput struct {
	Players     [tournament.SlotCount]tournamentService.PlayerInput
	Runs        int
	Seed        uint64
	Concurrency int
}

// Report aggregates a batch
type Report struct {
	Runs        int
	WinsByClass map[character.Class]int
	WinsByName  map[string]int
	TotalTurns  int
}

// AverageTurns is the mean number of turns per tournament
func (r *Report) AverageTurns() float64 {
	if r.Runs == 0 {
		return 0
	}
	return float64(r.TotalTurns) / float64(r.Runs)
}

// Names returns the winners ordered by wins, then name
func (r *Report) Names() []string {
	names := make([]string, 0, len(r.WinsByName))
	for name := range r.WinsByName {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if r.WinsByName[names[i]] != r.WinsByName[names[j]] {
			return r.WinsByName[names[i]] > r.WinsByName[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

type service struct {
	logger   zerolog.Logger
	maxTurns int
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Logger   *zerolog.Logger
	MaxTurns int
}

// NewService creates a new simulation service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		cfg = &ServiceConfig{}
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &service{
		logger:   logger.With().Str("component", "SimulationService").Logger(),
		maxTurns: cfg.MaxTurns,
	}
}

type outcome struct {
	name  string
	class character.Class
	turns int
}

// Run implements Service.Run
func (s *service) Run(ctx context.Context, input *RunInput) (*Report, error) {
	if input == nil {
		return nil, arenaerr.InvalidArgumentf("input is required")
	}
	if input.Runs < 1 {
		return nil, arenaerr.Validationf("runs must be at least 1, got %d", input.Runs)
	}
	tournamentInput := &tournamentService.RunTournamentInput{Players: input.Players}
	if _, err := tournamentService.ValidateInput(tournamentInput); err != nil {
		return nil, err
	}

	concurrency := input.Concurrency
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}

	s.logger.Info().
		Int("runs", input.Runs).
		Uint64("seed", input.Seed).
		Int("concurrency", concurrency).
		Msg("Simulation started")

	outcomes := make([]outcome, input.Runs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := 0; i < input.Runs; i++ {
		g.Go(func() error {
			svc := tournamentService.NewService(&tournamentService.ServiceConfig{
				Roller:   dice.NewSeededRoller(input.Seed + uint64(i)),
				MaxTurns: s.maxTurns,
			})

			result, err := svc.RunTournament(gctx, tournamentInput)
			if err != nil {
				return arenaerr.Wrapf(err, "run %d", i)
			}

			outcomes[i] = outcome{
				name:  result.Winner.Name,
				class: result.Winner.Class,
				turns: result.TurnCount(),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Runs:        input.Runs,
		WinsByClass: make(map[character.Class]int),
		WinsByName:  make(map[string]int),
	}
	for _, o := range outcomes {
		report.WinsByClass[o.class]++
		report.WinsByName[o.name]++
		report.TotalTurns += o.turns
	}

	s.logger.Info().
		Int("runs", report.Runs).
		Float64("average_turns", report.AverageTurns()).
		Msg("Simulation finished")

	return report, nil
}
