package cpu

import (
	"fmt"

	"briscola-game/internal/rules"
	"briscola-game/internal/shared"
)

// anyCarichi disables the carichi-played filter of the plain-card pickers.
const anyCarichi = -1

// concedeThreshold is the trick value above which the follower spends a trump
// rather than hand the points over.
const concedeThreshold = 5

// HardDifficulty counts cards. It tracks which carichi are gone to decide
// which plain cards are safe to lead, watches both scores around the 60
// point line and fights for a carico trump on the last draw.
type HardDifficulty struct{}

func (h HardDifficulty) ChooseCard(ctx Context, memory *Memory) (shared.Card, error) {
	if len(ctx.Hand) == 0 {
		return shared.Card{}, errEmptyHand("hard")
	}
	if memory == nil {
		return shared.Card{}, fmt.Errorf("hard strategy needs a memory: %w", shared.ErrDecisionFailure)
	}
	memory.ObserveContextCards(ctx.Table, ctx.Hand)

	if ctx.Leading {
		return h.lead(ctx, memory), nil
	}

	led, ok := ctx.LedCard()
	if !ok {
		return shared.Card{}, errNoLedCard("hard")
	}
	trump := ctx.TrumpSuit()
	chosen := h.follow(ctx, led, memory)

	// Last look: if this reply hands the opponent more than 60 points, try
	// anything that might take the trick instead.
	if opponentCrossesHalf(chosen, led, trump, memory.OpponentPoints()) {
		if rescue, ok := rescueCard(ctx.Hand, led, trump); ok {
			return rescue, nil
		}
	}
	return chosen, nil
}

func (h HardDifficulty) lead(ctx Context, memory *Memory) shared.Card {
	cards := ctx.Hand
	trump := ctx.TrumpSuit()

	if ctx.LastDraw && ctx.TrumpCard.IsCarico() {
		return cardToLose(cards, trump, memory)
	}

	for _, out := range []int{2, 1, anyCarichi} {
		if c, ok := highestPlain(cards, trump, memory, out); ok {
			return c
		}
	}

	// Keep the trump Three while the trump Ace is still unseen.
	aceUnseen := memory.IsUnseen(shared.Card{Suit: trump, Rank: shared.Ace})
	leadableTrump := func(c shared.Card) bool {
		return c.IsTrump(trump) && !(c.Rank == shared.Three && aceUnseen)
	}
	if c, ok := lowest(filter(cards, leadableTrump)); ok {
		return c
	}

	if c, ok := caricoToLead(cards, trump, memory); ok {
		return c
	}

	// Normally only the trump Three is left by now.
	c, _ := lowest(cards)
	return c
}

func (h HardDifficulty) follow(ctx Context, led shared.Card, memory *Memory) shared.Card {
	cards := ctx.Hand
	trump := ctx.TrumpSuit()

	winsGame := func(c shared.Card) bool {
		return rules.FollowerTakes(led, c, trump) &&
			memory.MyPoints()+rules.ScoreTrick(led, c) > rules.HalfPoints
	}
	if c, ok := lowest(filter(cards, winsGame)); ok {
		return c
	}

	// Losing this trick means drawing the carico trump afterwards.
	if ctx.LastDraw && ctx.TrumpCard.IsCarico() {
		return worstCard(cards, trump, memory)
	}

	trumpAce := shared.Card{Suit: trump, Rank: shared.Ace}
	if led.IsTrump(trump) {
		if led.Rank == shared.Three && holds(cards, trumpAce) {
			return trumpAce
		}
		return worstCard(cards, trump, memory)
	}

	if c, ok := highest(filter(cards, beatsInSuit(led))); ok {
		return c
	}

	nonAceTrump := func(c shared.Card) bool { return c.IsTrump(trump) && c.Rank != shared.Ace }
	if led.IsCarico() {
		if c, ok := highest(filter(cards, nonAceTrump)); ok {
			return c
		}
		if holds(cards, trumpAce) {
			return trumpAce
		}
		return worstCard(cards, trump, memory)
	}

	worst := worstCard(cards, trump, memory)
	trumps := len(filter(cards, isTrump(trump)))
	if rules.ScoreTrick(led, worst) > concedeThreshold && trumps >= 2 {
		if c, ok := highest(filter(cards, nonAceTrump)); ok {
			return c
		}
	}
	return worst
}

// worstCard picks the card to throw away: a low plain card from a suit whose
// carichi are gone, then any low plain card, then a low non-carico trump,
// then the cheapest card.
func worstCard(cards []shared.Card, trump shared.Suit, memory *Memory) shared.Card {
	for _, out := range []int{2, 1, anyCarichi} {
		if c, ok := lowestPlain(cards, trump, memory, out); ok {
			return c
		}
	}
	if c, ok := lowest(filter(cards, func(c shared.Card) bool { return !c.IsCarico() })); ok {
		return c
	}
	c, _ := lowest(cards)
	return c
}

// cardToLose gives the opponent as many points as possible so that it takes
// the trick and the CPU draws the trump afterwards.
func cardToLose(cards []shared.Card, trump shared.Suit, memory *Memory) shared.Card {
	if c, ok := caricoToLead(cards, trump, memory); ok {
		return c
	}
	for _, out := range []int{2, 1, anyCarichi} {
		if c, ok := highestPlain(cards, trump, memory, out); ok {
			return c
		}
	}
	if c, ok := lowest(filter(cards, isTrump(trump))); ok {
		return c
	}
	c, _ := lowest(cards)
	return c
}

// caricoToLead picks a non-trump carico: a Three whose Ace is gone, then an
// Ace, then any Three.
func caricoToLead(cards []shared.Card, trump shared.Suit, memory *Memory) (shared.Card, bool) {
	carichi := filter(cards, func(c shared.Card) bool { return c.IsCarico() && !c.IsTrump(trump) })
	safeThree := func(c shared.Card) bool {
		return c.Rank == shared.Three && !memory.IsUnseen(shared.Card{Suit: c.Suit, Rank: shared.Ace})
	}
	if c, ok := lowest(filter(carichi, safeThree)); ok {
		return c, true
	}
	if c, ok := lowest(filter(carichi, func(c shared.Card) bool { return c.Rank == shared.Ace })); ok {
		return c, true
	}
	return lowest(filter(carichi, func(c shared.Card) bool { return c.Rank == shared.Three }))
}

func plainWithCarichiOut(cards []shared.Card, trump shared.Suit, memory *Memory, out int) []shared.Card {
	plain := isPlain(trump)
	return filter(cards, func(c shared.Card) bool {
		return plain(c) && (out == anyCarichi || memory.CarichiPlayedForSuit(c.Suit) == out)
	})
}

func highestPlain(cards []shared.Card, trump shared.Suit, memory *Memory, out int) (shared.Card, bool) {
	return highest(plainWithCarichiOut(cards, trump, memory, out))
}

func lowestPlain(cards []shared.Card, trump shared.Suit, memory *Memory, out int) (shared.Card, bool) {
	return lowest(plainWithCarichiOut(cards, trump, memory, out))
}

// opponentCrossesHalf reports whether replying with reply loses the trick and
// lifts the opponent above 60 points.
func opponentCrossesHalf(reply, led shared.Card, trump shared.Suit, opponentPoints int) bool {
	return !rules.FollowerTakes(led, reply, trump) &&
		opponentPoints+rules.ScoreTrick(led, reply) > rules.HalfPoints
}

// rescueCard looks for a higher card of the led suit, then the highest trump.
func rescueCard(cards []shared.Card, led shared.Card, trump shared.Suit) (shared.Card, bool) {
	if c, ok := highest(filter(cards, beatsInSuit(led))); ok {
		return c, true
	}
	return highest(filter(cards, isTrump(trump)))
}
