package console

import (
	"fmt"
	"io"

	"github.com/KirkDiggler/battle-arena/internal/events"
)

// ANSI colors per line kind
const (
	colorReset  = "\x1b[0m"
	colorStart  = "\x1b[1;36m"
	colorTitle  = "\x1b[1;33m"
	colorAttack = "\x1b[37m"
	colorCrit   = "\x1b[1;35m"
	colorWinner = "\x1b[1;32m"
	colorFinal  = "\x1b[1;31m"
)

// CombatLog renders arena events as the scrolling combat log
type CombatLog struct {
	out   io.Writer
	color bool
}

// CombatLogConfig holds configuration for the combat log
type CombatLogConfig struct {
	Out   io.Writer
	Color bool
}

// NewCombatLog creates a combat log writer
func NewCombatLog(cfg *CombatLogConfig) *CombatLog {
	if cfg == nil || cfg.Out == nil {
		panic("output writer is required")
	}
	return &CombatLog{
		out:   cfg.Out,
		color: cfg.Color,
	}
}

// EventTypes lists what the combat log should be subscribed to
func (l *CombatLog) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventTypeDuelStarted,
		events.EventTypeTurnResolved,
		events.EventTypeDuelFinished,
		events.EventTypeTournamentFinished,
	}
}

// Begin writes the opening banner
func (l *CombatLog) Begin() error {
	return l.write(colorStart, "The Battle Begins!")
}

// HandleEvent implements events.EventListener
func (l *CombatLog) HandleEvent(event events.Event) error {
	switch e := event.(type) {
	case *events.DuelStartedEvent:
		if err := l.blank(); err != nil {
			return err
		}
		return l.write(colorTitle, fmt.Sprintf("--- Duel: %s vs %s ---", e.Actor.Name, e.Target.Name))
	case *events.TurnResolvedEvent:
		color := colorAttack
		if e.Critical {
			color = colorCrit
		}
		return l.write(color, fmt.Sprintf("%s attacks %s for %d damage! | %d HP left",
			e.Actor.Name, e.Target.Name, e.Damage, e.DefenderHealth))
	case *events.DuelFinishedEvent:
		return l.write(colorWinner, fmt.Sprintf("%s wins the duel!", e.Actor.Name))
	case *events.TournamentFinishedEvent:
		if err := l.blank(); err != nil {
			return err
		}
		return l.write(colorFinal, fmt.Sprintf("The ultimate winner is %s the %s!", e.Actor.Name, e.Actor.Class))
	}
	return nil
}

// Priority implements events.EventListener
func (l *CombatLog) Priority() int {
	return events.PriorityPresentation
}

// ID implements events.EventListener
func (l *CombatLog) ID() string {
	return "console-combat-log"
}

func (l *CombatLog) write(color, line string) error {
	var err error
	if l.color {
		_, err = fmt.Fprintf(l.out, "%s%s%s\n", color, line, colorReset)
	} else {
		_, err = fmt.Fprintln(l.out, line)
	}
	return err
}

func (l *CombatLog) blank() error {
	_, err := fmt.Fprintln(l.out)
	return err
}
