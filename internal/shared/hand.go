package shared

import (
	"fmt"
	"slices"
	"strings"
)

// MaxCardsInHand is the most cards a Briscola player ever holds.
const MaxCardsInHand = 3

// Hand holds the cards of one player, at most MaxCardsInHand of them.
type Hand struct {
	cards []Card
}

// NewHand creates an empty hand.
func NewHand() *Hand {
	return &Hand{cards: make([]Card, 0, MaxCardsInHand)}
}

// Add puts a card in the hand. A full hand is left untouched and ErrInvalidState returned.
func (h *Hand) Add(card Card) error {
	if len(h.cards) >= MaxCardsInHand {
		return fmt.Errorf("hand already holds %d cards, cannot add %s: %w", len(h.cards), card, ErrInvalidState)
	}
	h.cards = append(h.cards, card)
	return nil
}

// Remove takes a card out of the hand.
func (h *Hand) Remove(card Card) error {
	for i, c := range h.cards {
		if c == card {
			h.cards = slices.Delete(h.cards, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("card %s is not in the hand: %w", card, ErrInvalidMove)
}

// Contains reports whether the card is in the hand.
func (h *Hand) Contains(card Card) bool {
	return slices.Contains(h.cards, card)
}

// Cards returns a copy of the cards in the hand.
func (h *Hand) Cards() []Card {
	return slices.Clone(h.cards)
}

// Len returns the number of cards held.
func (h *Hand) Len() int {
	return len(h.cards)
}

// IsEmpty reports whether the hand holds no cards.
func (h *Hand) IsEmpty() bool {
	return len(h.cards) == 0
}

// IsFull reports whether another card can be added.
func (h *Hand) IsFull() bool {
	return len(h.cards) >= MaxCardsInHand
}

// Clear drops every card.
func (h *Hand) Clear() {
	h.cards = h.cards[:0]
}

func (h *Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
