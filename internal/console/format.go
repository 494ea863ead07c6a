package console

import (
	"fmt"
	"strings"

	"briscola-game/internal/shared"
)

var rankLabels = map[shared.Rank]string{
	shared.Two:    "2",
	shared.Four:   "4",
	shared.Five:   "5",
	shared.Six:    "6",
	shared.Seven:  "7",
	shared.Jack:   "J",
	shared.Knight: "C",
	shared.King:   "K",
	shared.Three:  "3",
	shared.Ace:    "A",
}

func suitEmoji(suit shared.Suit) string {
	switch suit {
	case shared.Denari:
		return "💰"
	case shared.Coppe:
		return "🍷"
	case shared.Spade:
		return "🔪"
	case shared.Bastoni:
		return "🌿"
	default:
		return "❓"
	}
}

func cardLabel(card shared.Card) string {
	return fmt.Sprintf("[%s%s]", rankLabels[card.Rank], suitEmoji(card.Suit))
}

// cardsLabel joins card labels, numbering them from 1 when numbered is set.
func cardsLabel(cards []shared.Card, numbered bool) string {
	var cs []string
	for i, card := range cards {
		if numbered {
			cs = append(cs, fmt.Sprintf("%d. %s", i+1, cardLabel(card)))
		} else {
			cs = append(cs, cardLabel(card))
		}
	}
	return strings.Join(cs, "  ")
}

// pickCard maps a pressed digit to a card of the hand.
func pickCard(hand []shared.Card, key rune) (shared.Card, bool) {
	i := int(key - '1')
	if key < '1' || i >= len(hand) {
		return shared.Card{}, false
	}
	return hand[i], true
}
