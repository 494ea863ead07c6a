package cpu

import "briscola-game/internal/shared"

// MediumDifficulty plays by role without card counting. Leading, it gives
// away its least valuable card; following, it takes the trick when that is
// cheap and protects against carichi with a low trump.
type MediumDifficulty struct{}

func (MediumDifficulty) ChooseCard(ctx Context, _ *Memory) (shared.Card, error) {
	if len(ctx.Hand) == 0 {
		return shared.Card{}, errEmptyHand("medium")
	}
	trump := ctx.TrumpSuit()
	if ctx.Leading {
		return leastValuable(ctx.Hand, trump), nil
	}

	led, ok := ctx.LedCard()
	if !ok {
		return shared.Card{}, errNoLedCard("medium")
	}

	if !led.IsTrump(trump) {
		if c, ok := highest(filter(ctx.Hand, beatsInSuit(led))); ok {
			return c, nil
		}
		if !led.IsCarico() {
			return leastValuable(ctx.Hand, trump), nil
		}
		// A carico is not worth a trump carico.
		nonCaricoTrump := func(c shared.Card) bool { return c.IsTrump(trump) && !c.IsCarico() }
		if c, ok := lowest(filter(ctx.Hand, nonCaricoTrump)); ok {
			return c, nil
		}
		return leastValuable(ctx.Hand, trump), nil
	}

	// The trump Three is only taken by the trump Ace.
	if led.Rank == shared.Three {
		ace := shared.Card{Suit: trump, Rank: shared.Ace}
		if holds(ctx.Hand, ace) {
			return ace, nil
		}
	}
	return leastValuable(ctx.Hand, trump), nil
}

// leastValuable prefers a low plain card, then a low non-carico trump, then
// whatever is cheapest.
func leastValuable(hand []shared.Card, trump shared.Suit) shared.Card {
	if c, ok := lowest(filter(hand, isPlain(trump))); ok {
		return c
	}
	nonCaricoTrump := func(c shared.Card) bool { return c.IsTrump(trump) && !c.IsCarico() }
	if c, ok := lowest(filter(hand, nonCaricoTrump)); ok {
		return c
	}
	c, _ := lowest(hand)
	return c
}
