package cpu

import (
	"fmt"

	"briscola-game/internal/shared"
)

// Bot is a CPU seat: a strategy plus the memory only this seat may use.
type Bot struct {
	difficulty Difficulty
	memory     *Memory
}

// NewBot creates a bot playing at the given level.
func NewBot(level Level) (*Bot, error) {
	d, err := NewDifficulty(level)
	if err != nil {
		return nil, err
	}
	return NewBotWith(d), nil
}

// NewBotWith creates a bot around any strategy.
func NewBotWith(difficulty Difficulty) *Bot {
	return &Bot{difficulty: difficulty, memory: NewMemory()}
}

// Begin prepares the memory for a new game.
func (b *Bot) Begin(fullDeck []shared.Card, hand []shared.Card) {
	b.memory.Initialize(fullDeck, hand)
}

// ChooseCard asks the strategy for a card and checks it is really in the hand.
func (b *Bot) ChooseCard(ctx Context) (shared.Card, error) {
	card, err := b.difficulty.ChooseCard(ctx, b.memory)
	if err != nil {
		return shared.Card{}, err
	}
	if !holds(ctx.Hand, card) {
		return shared.Card{}, fmt.Errorf("strategy chose %s which is not in hand %v: %w", card, ctx.Hand, shared.ErrDecisionFailure)
	}
	return card, nil
}

// ObserveTrick records the outcome of a trick.
func (b *Bot) ObserveTrick(points int, playedCards []shared.Card, won bool) {
	b.memory.UpdateAfterTrick(points, playedCards, won)
}

// Memory exposes the bot's belief state for inspection.
func (b *Bot) Memory() *Memory {
	return b.memory
}
