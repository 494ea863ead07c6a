package cpu

import "briscola-game/internal/shared"

// EasyDifficulty ignores the table: it throws its best trump when it has one,
// otherwise its cheapest card.
type EasyDifficulty struct{}

func (EasyDifficulty) ChooseCard(ctx Context, _ *Memory) (shared.Card, error) {
	if len(ctx.Hand) == 0 {
		return shared.Card{}, errEmptyHand("easy")
	}
	if c, ok := highest(filter(ctx.Hand, isTrump(ctx.TrumpSuit()))); ok {
		return c, nil
	}
	c, _ := lowest(ctx.Hand)
	return c, nil
}
