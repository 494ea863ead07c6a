package shared

import "errors"

var (
	// ErrInvalidMove is returned when a player acts out of turn or plays a card it does not hold.
	ErrInvalidMove = errors.New("invalid move")
	// ErrInvalidState is returned when an operation does not fit the current game state.
	ErrInvalidState = errors.New("invalid state")
	// ErrDecisionFailure means a CPU strategy could not pick a card from its hand.
	ErrDecisionFailure = errors.New("decision failure")
)
