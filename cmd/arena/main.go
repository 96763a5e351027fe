package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/battle-arena/internal/config"
	"github.com/KirkDiggler/battle-arena/internal/dice"
	"github.com/KirkDiggler/battle-arena/internal/domain/character"
	"github.com/KirkDiggler/battle-arena/internal/domain/tournament"
	arenaerr "github.com/KirkDiggler/battle-arena/internal/errors"
	"github.com/KirkDiggler/battle-arena/internal/events"
	"github.com/KirkDiggler/battle-arena/internal/handlers/console"
	"github.com/KirkDiggler/battle-arena/internal/services/simulation"
	tournamentService "github.com/KirkDiggler/battle-arena/internal/services/tournament"
)

func main() {
	os.Exit(run())
}

func run() int {
	simulate := flag.Int("simulate", 0, "play N seeded tournaments and print win rates instead of a single combat log")
	concurrency := flag.Int("concurrency", 0, "parallel tournaments in simulation mode (defaults to ARENA_SIMULATION_CONCURRENCY)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: arena [flags] [name:Class name:Class name:Class name:Class]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found")
	} else {
		logger.Debug().Msg("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load config")
		return 2
	}

	level, err := cfg.Arena.Level()
	if err != nil {
		logger.Error().Err(err).Msg("Invalid log level")
		return 2
	}
	logger = logger.Level(level)

	entries := cfg.Arena.Players
	if flag.NArg() > 0 {
		entries = flag.Args()
	}
	players, err := config.ParsePlayers(entries)
	if err != nil {
		logger.Error().Err(err).Msg("Invalid roster")
		return 2
	}

	seed := cfg.Arena.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Debug().Uint64("seed", seed).Str("config", cfg.Arena.String()).Msg("Arena configured")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *simulate > 0 {
		workers := cfg.Simulation.Concurrency
		if *concurrency > 0 {
			workers = *concurrency
		}
		err = runSimulation(ctx, &logger, cfg, players, *simulate, seed, workers)
	} else {
		err = runTournament(ctx, &logger, cfg, players, seed)
	}

	if err != nil {
		logger.Error().Err(err).Str("code", string(arenaerr.GetCode(err))).Msg("Arena failed")
		if arenaerr.IsValidation(err) || arenaerr.IsConfiguration(err) {
			return 2
		}
		return 1
	}
	return 0
}

func runTournament(ctx context.Context, logger *zerolog.Logger, cfg *config.Config,
	players [tournament.SlotCount]tournamentService.PlayerInput, seed uint64) error {
	bus := events.NewBus(*logger)
	combatLog := console.NewCombatLog(&console.CombatLogConfig{
		Out:   os.Stdout,
		Color: cfg.Arena.Color,
	})
	bus.Subscribe(combatLog, combatLog.EventTypes()...)

	svc := tournamentService.NewService(&tournamentService.ServiceConfig{
		Roller:   dice.NewSeededRoller(seed),
		Bus:      bus,
		Logger:   logger,
		MaxTurns: cfg.Arena.MaxTurns,
	})

	input := &tournamentService.RunTournamentInput{Players: players}
	// reject bad input before the banner is printed
	if _, err := tournamentService.ValidateInput(input); err != nil {
		return err
	}
	if err := combatLog.Begin(); err != nil {
		return err
	}

	_, err := svc.RunTournament(ctx, input)
	return err
}

func runSimulation(ctx context.Context, logger *zerolog.Logger, cfg *config.Config,
	players [tournament.SlotCount]tournamentService.PlayerInput, runs int, seed uint64, workers int) error {
	svc := simulation.NewService(&simulation.ServiceConfig{
		Logger:   logger,
		MaxTurns: cfg.Arena.MaxTurns,
	})

	report, err := svc.Run(ctx, &simulation.RunInput{
		Players:     players,
		Runs:        runs,
		Seed:        seed,
		Concurrency: workers,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Tournaments: %d (seed %d)\n", report.Runs, seed)
	fmt.Printf("Average turns: %.2f\n\n", report.AverageTurns())
	fmt.Println("Wins by player:")
	for _, name := range report.Names() {
		wins := report.WinsByName[name]
		fmt.Printf("  %-20s %6d  %5.1f%%\n", name, wins, 100*float64(wins)/float64(report.Runs))
	}
	fmt.Println("Wins by class:")
	for _, class := range character.Classes() {
		wins := report.WinsByClass[class]
		fmt.Printf("  %-20s %6d  %5.1f%%\n", class, wins, 100*float64(wins)/float64(report.Runs))
	}
	return nil
}
