package shared

import (
	"fmt"
	"math/rand/v2"
)

// DeckSize is the number of cards in a Briscola deck.
const DeckSize = 40

// Deck represents the ordered pool of cards still to be drawn. The top of the
// deck is Cards[0].
type Deck struct {
	Cards []Card
}

// NewDeck creates the standard 40-card deck, ordered suit by suit and rank by rank.
func NewDeck() *Deck {
	return &Deck{Cards: FullDeck()}
}

// FullDeck returns the 40 distinct cards in deck order.
func FullDeck() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// Shuffle randomizes the order of cards in the deck.
func (d *Deck) Shuffle() {
	rand.Shuffle(len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// Len returns the number of cards left in the deck.
func (d *Deck) Len() int {
	return len(d.Cards)
}

// IsEmpty reports whether the deck has no cards left.
func (d *Deck) IsEmpty() bool {
	return len(d.Cards) == 0
}

// Draw pops the top card. The boolean is false when the deck is empty.
func (d *Deck) Draw() (Card, bool) {
	if len(d.Cards) == 0 {
		return Card{}, false
	}
	card := d.Cards[0]
	d.Cards = d.Cards[1:]
	return card, true
}

// Deal distributes cards one at a time to each player in turn, repeating
// cardsPerPlayer times. Dealt cards leave the deck.
func (d *Deck) Deal(numPlayers, cardsPerPlayer int) ([][]Card, error) {
	totalCardsNeeded := numPlayers * cardsPerPlayer
	if len(d.Cards) < totalCardsNeeded {
		return nil, fmt.Errorf("not enough cards in deck (%d) to deal %d cards to %d players: %w",
			len(d.Cards), cardsPerPlayer, numPlayers, ErrInvalidState)
	}

	dealt := make([][]Card, numPlayers)
	for i := range dealt {
		dealt[i] = make([]Card, 0, cardsPerPlayer)
	}
	for round := 0; round < cardsPerPlayer; round++ {
		for p := 0; p < numPlayers; p++ {
			card, _ := d.Draw()
			dealt[p] = append(dealt[p], card)
		}
	}
	return dealt, nil
}

// Clear empties the deck.
func (d *Deck) Clear() {
	d.Cards = []Card{}
}
