package cpu

import (
	"fmt"
	"strings"

	"briscola-game/internal/shared"
)

// Difficulty is a CPU decision strategy. ChooseCard returns a card from
// ctx.Hand, or an error wrapping shared.ErrDecisionFailure.
type Difficulty interface {
	ChooseCard(ctx Context, memory *Memory) (shared.Card, error)
}

// Level selects one of the built-in strategies.
type Level int

const (
	LevelEasy Level = iota
	LevelMedium
	LevelHard
)

// Levels lists the built-in levels from weakest to strongest.
var Levels = []Level{LevelEasy, LevelMedium, LevelHard}

func (l Level) String() string {
	switch l {
	case LevelEasy:
		return "easy"
	case LevelMedium:
		return "medium"
	case LevelHard:
		return "hard"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel reads a level name such as "medium".
func ParseLevel(name string) (Level, error) {
	for _, l := range Levels {
		if strings.EqualFold(strings.TrimSpace(name), l.String()) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q", name)
}

// NewDifficulty creates the strategy for the given level.
func NewDifficulty(level Level) (Difficulty, error) {
	switch level {
	case LevelEasy:
		return EasyDifficulty{}, nil
	case LevelMedium:
		return MediumDifficulty{}, nil
	case LevelHard:
		return HardDifficulty{}, nil
	default:
		return nil, fmt.Errorf("unknown difficulty level: %d", level)
	}
}

func errEmptyHand(name string) error {
	return fmt.Errorf("%s strategy asked to choose from an empty hand: %w", name, shared.ErrDecisionFailure)
}

func errNoLedCard(name string) error {
	return fmt.Errorf("%s strategy following with no led card on the table: %w", name, shared.ErrDecisionFailure)
}
