package cpu

import "briscola-game/internal/shared"

// carichiPerSuit is the number of carichi (Ace and Three) in every suit.
const carichiPerSuit = 2

// Memory is the private belief state of one CPU: the running scores and the
// cards it has not seen yet. A card it has seen never comes back.
type Memory struct {
	myPoints       int
	opponentPoints int
	remaining      map[shared.Card]struct{}
}

// NewMemory creates an empty memory. Call Initialize at the start of a game.
func NewMemory() *Memory {
	return &Memory{remaining: make(map[shared.Card]struct{})}
}

// Initialize resets the scores and marks every card of the deck as unseen,
// except the starting hand.
func (m *Memory) Initialize(fullDeck []shared.Card, ownHand []shared.Card) {
	m.myPoints = 0
	m.opponentPoints = 0
	m.remaining = make(map[shared.Card]struct{}, len(fullDeck))
	for _, c := range fullDeck {
		m.remaining[c] = struct{}{}
	}
	m.removeSeen(ownHand)
}

// UpdateAfterTrick credits the trick points to the side that won them and
// forgets the cards that were played.
func (m *Memory) UpdateAfterTrick(points int, playedCards []shared.Card, won bool) {
	if won {
		m.myPoints += points
	} else {
		m.opponentPoints += points
	}
	m.removeSeen(playedCards)
}

// ObserveContextCards removes the cards currently in view from the unseen set.
func (m *Memory) ObserveContextCards(tableCards []shared.Card, ownHand []shared.Card) {
	m.removeSeen(tableCards)
	m.removeSeen(ownHand)
}

// CarichiPlayedForSuit returns how many of the suit's two carichi are no longer unseen.
func (m *Memory) CarichiPlayedForSuit(suit shared.Suit) int {
	unseen := 0
	for _, rank := range []shared.Rank{shared.Ace, shared.Three} {
		if m.IsUnseen(shared.Card{Suit: suit, Rank: rank}) {
			unseen++
		}
	}
	return carichiPerSuit - unseen
}

// IsUnseen reports whether the card has not been seen yet.
func (m *Memory) IsUnseen(card shared.Card) bool {
	_, ok := m.remaining[card]
	return ok
}

// MyPoints returns the points this CPU has won.
func (m *Memory) MyPoints() int {
	return m.myPoints
}

// OpponentPoints returns the points the opponent has won.
func (m *Memory) OpponentPoints() int {
	return m.opponentPoints
}

func (m *Memory) removeSeen(cards []shared.Card) {
	for _, c := range cards {
		delete(m.remaining, c)
	}
}
