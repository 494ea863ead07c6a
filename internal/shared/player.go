package shared

import "github.com/google/uuid"

// Player represents a seat at the table, human or CPU.
type Player struct {
	ID     string // Unique identifier for the player
	Name   string // Player's display name
	Hand   *Hand  // Cards currently held by the player
	Points int    // Points won so far in the current game
}

// NewPlayer creates a new player with a random ID and the given name.
func NewPlayer(name string) *Player {
	return &Player{
		ID:   uuid.NewString(),
		Name: name,
		Hand: NewHand(),
	}
}

// AddPoints adds trick points to the player's total.
func (p *Player) AddPoints(points int) {
	p.Points += points
}

// Reset empties the hand and zeroes the points.
func (p *Player) Reset() {
	p.Hand.Clear()
	p.Points = 0
}

func (p *Player) String() string {
	return p.Name
}
