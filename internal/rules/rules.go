// Package rules holds the pure Briscola rules: who takes a trick and what it is worth.
package rules

import "briscola-game/internal/shared"

const (
	// TotalPoints is the sum of the point values of the whole deck.
	TotalPoints = 120
	// HalfPoints is the score to beat to win a game outright.
	HalfPoints = TotalPoints / 2
	// TricksPerGame is the number of tricks in a two-player game.
	TricksPerGame = shared.DeckSize / 2
)

// Outcome tells which side of a trick took it.
type Outcome int

const (
	LeaderWins Outcome = iota
	FollowerWins
)

func (o Outcome) String() string {
	if o == LeaderWins {
		return "leader"
	}
	return "follower"
}

// CompareTrick decides the trick between the leader's and the follower's card.
// A trump beats any non-trump; within one suit the higher rank wins; with two
// different non-trump suits the leader wins. There is never a tie.
func CompareTrick(leader, follower shared.Card, trump shared.Suit) Outcome {
	leaderTrump := leader.IsTrump(trump)
	followerTrump := follower.IsTrump(trump)

	switch {
	case leaderTrump && !followerTrump:
		return LeaderWins
	case !leaderTrump && followerTrump:
		return FollowerWins
	case leader.Suit == follower.Suit:
		if leader.Rank > follower.Rank {
			return LeaderWins
		}
		return FollowerWins
	default:
		// Following suit is not required, an off-suit card never takes the trick.
		return LeaderWins
	}
}

// ScoreTrick returns the points captured by taking both cards.
func ScoreTrick(a, b shared.Card) int {
	return a.Points() + b.Points()
}

// FollowerTakes reports whether the follower's card would take the led card.
func FollowerTakes(led, reply shared.Card, trump shared.Suit) bool {
	return CompareTrick(led, reply, trump) == FollowerWins
}
