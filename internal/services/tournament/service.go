package tournament

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/KirkDiggler/battle-arena/internal/dice"
	"github.com/KirkDiggler/battle-arena/internal/domain/character"
	"github.com/KirkDiggler/battle-arena/internal/domain/combat"
	"github.com/KirkDiggler/battle-arena/internal/domain/tournament"
	arenaerr "github.com/KirkDiggler/battle-arena/internal/errors"
	"github.com/KirkDiggler/battle-arena/internal/events"
	"github.com/KirkDiggler/battle-arena/internal/uuid"
)

// Service defines the tournament service interface
type Service interface {
	// RunTournament builds the four entrants and plays the bracket to a winner
	RunTournament(ctx context.Context, input *RunTournamentInput) (*tournament.Result, error)
}

// PlayerInput is one entrant as supplied by the caller
type PlayerInput struct {
	Name  string
	Class string
}

// RunTournamentInput contains the entrants in slot order P1..P4
type RunTournamentInput struct {
	Players [tournament.SlotCount]PlayerInput
}

type service struct {
	roller        dice.Roller
	bus           *events.Bus
	logger        zerolog.Logger
	uuidGenerator uuid.Generator
	engine        *combat.Engine
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Roller        dice.Roller
	Bus           *events.Bus
	Logger        *zerolog.Logger
	UUIDGenerator uuid.Generator
	MaxTurns      int
}

// NewService creates a new tournament service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil || cfg.Roller == nil {
		panic("roller is required")
	}

	svc := &service{
		roller:        cfg.Roller,
		bus:           cfg.Bus,
		uuidGenerator: cfg.UUIDGenerator,
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	svc.logger = logger.With().Str("component", "TournamentService").Logger()

	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	svc.engine = combat.NewEngine(&combat.EngineConfig{
		Roller:      cfg.Roller,
		Bus:         cfg.Bus,
		Logger:      &logger,
		IDGenerator: svc.uuidGenerator,
		MaxTurns:    cfg.MaxTurns,
	})

	return svc
}

// ValidateInput checks every slot before anything is built. Blank names are
// validation errors; unknown classes are configuration errors.
func ValidateInput(input *RunTournamentInput) ([tournament.SlotCount]character.Class, error) {
	var classes [tournament.SlotCount]character.Class

	if input == nil {
		return classes, arenaerr.InvalidArgumentf("input is required")
	}

	for i, player := range input.Players {
		if strings.TrimSpace(player.Name) == "" {
			return classes, arenaerr.Validationf("player %d name is required", i+1).WithMeta("slot", i+1)
		}
	}

	for i, player := range input.Players {
		class, err := character.ParseClass(player.Class)
		if err != nil {
			return classes, arenaerr.Wrapf(err, "player %d", i+1).WithMeta("slot", i+1)
		}
		classes[i] = class
	}

	return classes, nil
}

// RunTournament implements Service.RunTournament
func (s *service) RunTournament(ctx context.Context, input *RunTournamentInput) (*tournament.Result, error) {
	classes, err := ValidateInput(input)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &tournament.Result{ID: s.uuidGenerator.New()}
	log := s.logger.With().Str("tournament_id", result.ID).Logger()

	for i, player := range input.Players {
		entrant, err := character.New(strings.TrimSpace(player.Name), classes[i], s.roller)
		if err != nil {
			return nil, arenaerr.Wrapf(err, "creating player %d", i+1)
		}
		entrant.ID = s.uuidGenerator.New()
		result.Entrants[i] = entrant

		log.Debug().
			Int("slot", i+1).
			Int("team", tournament.Slot(i).Team()).
			Str("entrant", entrant.String()).
			Msg("Entrant created")
	}

	if result.SemifinalA, err = s.playPairing(ctx, result, tournament.SemifinalA); err != nil {
		return nil, arenaerr.Wrap(err, "semifinal A")
	}
	if result.SemifinalB, err = s.playPairing(ctx, result, tournament.SemifinalB); err != nil {
		return nil, arenaerr.Wrap(err, "semifinal B")
	}

	// semifinal winners carry their damage into the final
	if result.Final, err = s.fight(ctx, result.SemifinalA.Winner, result.SemifinalB.Winner); err != nil {
		return nil, arenaerr.Wrap(err, "final")
	}
	result.Winner = result.Final.Winner

	log.Info().
		Str("winner", result.Winner.Name).
		Str("class", result.Winner.Class.String()).
		Int("winner_health", result.Winner.Health()).
		Int("turns", result.TurnCount()).
		Msg("Tournament finished")

	if s.bus != nil {
		if err := s.bus.Emit(&events.TournamentFinishedEvent{
			BaseEvent:    events.BaseEvent{Type: events.EventTypeTournamentFinished, Actor: result.Winner},
			TournamentID: result.ID,
			TotalTurns:   result.TurnCount(),
		}); err != nil {
			return nil, arenaerr.Wrap(err, "emitting tournament result")
		}
	}

	return result, nil
}

func (s *service) playPairing(ctx context.Context, result *tournament.Result, pairing tournament.Pairing) (*combat.DuelResult, error) {
	return s.fight(ctx, result.Entrants[pairing.A], result.Entrants[pairing.B])
}

// fight checks for cancellation only between duels; a started duel always finishes
func (s *service) fight(ctx context.Context, a, b *character.Character) (*combat.DuelResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.engine.Fight(a, b)
}
