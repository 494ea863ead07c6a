package cpu

import (
	"slices"

	"briscola-game/internal/shared"
)

func filter(cards []shared.Card, keep func(shared.Card) bool) []shared.Card {
	var out []shared.Card
	for _, c := range cards {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// lowest returns the card with the fewest points, then the lowest rank.
func lowest(cards []shared.Card) (shared.Card, bool) {
	if len(cards) == 0 {
		return shared.Card{}, false
	}
	return slices.MinFunc(cards, shared.Card.Compare), true
}

// highest returns the card with the most points, then the highest rank.
func highest(cards []shared.Card) (shared.Card, bool) {
	if len(cards) == 0 {
		return shared.Card{}, false
	}
	return slices.MaxFunc(cards, shared.Card.Compare), true
}

func isTrump(trump shared.Suit) func(shared.Card) bool {
	return func(c shared.Card) bool { return c.IsTrump(trump) }
}

// isPlain matches cards that are neither trump nor carico.
func isPlain(trump shared.Suit) func(shared.Card) bool {
	return func(c shared.Card) bool { return !c.IsCarico() && !c.IsTrump(trump) }
}

// beatsInSuit matches cards of the led suit ranked above the led card.
func beatsInSuit(led shared.Card) func(shared.Card) bool {
	return func(c shared.Card) bool { return c.Suit == led.Suit && c.Rank > led.Rank }
}

func holds(cards []shared.Card, want shared.Card) bool {
	return slices.Contains(cards, want)
}
