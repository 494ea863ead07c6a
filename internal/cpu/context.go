package cpu

import "briscola-game/internal/shared"

// Context is everything a CPU may look at when choosing a card.
type Context struct {
	Hand      []shared.Card // own hand
	Table     []shared.Card // cards on the table this trick, the led card first
	TrumpCard shared.Card   // face-up trump, drawn or not
	Leading   bool          // true when this CPU opens the trick
	LastDraw  bool          // the coming draw phase takes the last deck card and the trump
}

// NewContext builds a decision context from the live hand and trick.
func NewContext(hand *shared.Hand, trick *shared.Trick, trumpCard shared.Card, leading, lastDraw bool) Context {
	return Context{
		Hand:      hand.Cards(),
		Table:     trick.Cards(),
		TrumpCard: trumpCard,
		Leading:   leading,
		LastDraw:  lastDraw,
	}
}

// TrumpSuit returns the trump suit of the game.
func (c Context) TrumpSuit() shared.Suit {
	return c.TrumpCard.Suit
}

// LedCard returns the card the opponent led, when following.
func (c Context) LedCard() (shared.Card, bool) {
	if c.Leading || len(c.Table) == 0 {
		return shared.Card{}, false
	}
	return c.Table[0], true
}
