package shared

import "fmt"

// TrickResult records the outcome of an evaluated trick. It stays readable on
// the Trick until the next evaluation.
type TrickResult struct {
	Winner       *Player
	Loser        *Player
	LeaderCard   Card
	FollowerCard Card
	Points       int
}

// Cards returns the two cards of the evaluated trick, leader's first.
func (r TrickResult) Cards() []Card {
	return []Card{r.LeaderCard, r.FollowerCard}
}

// Trick represents the table during one trick. Leader and follower persist
// across tricks; the played-card slots are nil until filled.
type Trick struct {
	Leader       *Player
	Follower     *Player
	LeaderCard   *Card
	FollowerCard *Card
	Result       *TrickResult
}

// NewTrick creates an empty table with no player order.
func NewTrick() *Trick {
	return &Trick{}
}

// SetOrder sets who leads and who follows the next trick.
func (t *Trick) SetOrder(leader, follower *Player) {
	t.Leader = leader
	t.Follower = follower
}

// Play puts the card in the slot of the given player. The leader must play
// first and no slot can be filled twice.
func (t *Trick) Play(player *Player, card Card) error {
	switch player {
	case nil:
		return fmt.Errorf("no player given: %w", ErrInvalidMove)
	case t.Leader:
		if t.LeaderCard != nil {
			return fmt.Errorf("%s already played %s this trick: %w", player.Name, *t.LeaderCard, ErrInvalidMove)
		}
		t.LeaderCard = &card
	case t.Follower:
		if t.LeaderCard == nil {
			return fmt.Errorf("%s cannot play before the leader: %w", player.Name, ErrInvalidMove)
		}
		if t.FollowerCard != nil {
			return fmt.Errorf("%s already played %s this trick: %w", player.Name, *t.FollowerCard, ErrInvalidMove)
		}
		t.FollowerCard = &card
	default:
		return fmt.Errorf("%s is neither leader nor follower: %w", player.Name, ErrInvalidMove)
	}
	return nil
}

// IsComplete reports whether both slots are filled.
func (t *Trick) IsComplete() bool {
	return t.LeaderCard != nil && t.FollowerCard != nil
}

// Cards returns the cards currently on the table, leader's first.
func (t *Trick) Cards() []Card {
	cards := make([]Card, 0, 2)
	if t.LeaderCard != nil {
		cards = append(cards, *t.LeaderCard)
	}
	if t.FollowerCard != nil {
		cards = append(cards, *t.FollowerCard)
	}
	return cards
}

// Clear empties the played-card slots, keeping player order and the last result.
func (t *Trick) Clear() {
	t.LeaderCard = nil
	t.FollowerCard = nil
}

// Reset forgets everything, including player order and the last result.
func (t *Trick) Reset() {
	*t = Trick{}
}
