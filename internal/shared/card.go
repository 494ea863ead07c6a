package shared

import "fmt"

// Suit represents the suit of a card (Denari, Coppe, Spade, Bastoni).
type Suit string

const (
	Denari  Suit = "Denari"  // Coins
	Coppe   Suit = "Coppe"   // Cups
	Spade   Suit = "Spade"   // Swords
	Bastoni Suit = "Bastoni" // Batons
)

// Suits lists every suit in deck order.
var Suits = []Suit{Denari, Coppe, Spade, Bastoni}

// Rank is the rank of a card. The numeric value is the trick-taking order,
// which is not the same as the point order.
type Rank int

const (
	Two Rank = iota
	Four
	Five
	Six
	Seven
	Jack
	Knight
	King
	Three
	Ace
)

// Ranks lists every rank from weakest to strongest.
var Ranks = []Rank{Two, Four, Five, Six, Seven, Jack, Knight, King, Three, Ace}

// Define card values for scoring
var rankPoints = map[Rank]int{
	Two:    0,
	Four:   0,
	Five:   0,
	Six:    0,
	Seven:  0,
	Jack:   2,
	Knight: 3,
	King:   4,
	Three:  10,
	Ace:    11,
}

var rankNames = map[Rank]string{
	Two:    "2",
	Four:   "4",
	Five:   "5",
	Six:    "6",
	Seven:  "7",
	Jack:   "Fante",
	Knight: "Cavallo",
	King:   "Re",
	Three:  "3",
	Ace:    "Asso",
}

// Points returns the point value of the rank.
func (r Rank) Points() int {
	return rankPoints[r]
}

// IsCarico reports whether the rank is one of the two high-value "carichi" (Ace, Three).
func (r Rank) IsCarico() bool {
	return r == Ace || r == Three
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rank(%d)", int(r))
}

// Valid reports whether r is one of the ten ranks of the deck.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Card represents a single card in the Briscola game. Cards are values and
// compare equal by suit and rank.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// NewCard builds a card from its suit and rank.
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// Points returns the point value of the card.
func (c Card) Points() int {
	return c.Rank.Points()
}

// IsCarico reports whether the card is an Ace or a Three.
func (c Card) IsCarico() bool {
	return c.Rank.IsCarico()
}

// IsTrump reports whether the card belongs to the trump suit.
func (c Card) IsTrump(trump Suit) bool {
	return c.Suit == trump
}

func (c Card) String() string {
	return fmt.Sprintf("%s di %s", c.Rank, c.Suit)
}

// Less orders cards by points, then rank, then suit. Every card choice made by
// the CPU uses this order so ties always break the same way.
func (c Card) Less(other Card) bool {
	if c.Points() != other.Points() {
		return c.Points() < other.Points()
	}
	if c.Rank != other.Rank {
		return c.Rank < other.Rank
	}
	return suitIndex(c.Suit) < suitIndex(other.Suit)
}

// Compare is the three-way form of Less, usable with slices.SortFunc and friends.
func (c Card) Compare(other Card) int {
	switch {
	case c.Less(other):
		return -1
	case other.Less(c):
		return 1
	default:
		return 0
	}
}

func suitIndex(s Suit) int {
	for i, suit := range Suits {
		if suit == s {
			return i
		}
	}
	return len(Suits)
}
