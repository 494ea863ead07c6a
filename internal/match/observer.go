package match

import (
	"briscola-game/internal/game"
	"briscola-game/internal/shared"
)

// Observer is told about everything that happens at the table. Front ends
// implement it to render the game.
type Observer interface {
	GameStarted(g *game.Game)
	CardPlayed(player *shared.Player, card shared.Card)
	TrickEnded(result shared.TrickResult)
	CardDrawn(player *shared.Player, card shared.Card)
	LastDraw()
	GameOver(result Result)
}

// NopObserver ignores every event. Embed it to implement only some methods.
type NopObserver struct{}

func (NopObserver) GameStarted(*game.Game)                {}
func (NopObserver) CardPlayed(*shared.Player, shared.Card) {}
func (NopObserver) TrickEnded(shared.TrickResult)          {}
func (NopObserver) CardDrawn(*shared.Player, shared.Card)  {}
func (NopObserver) LastDraw()                              {}
func (NopObserver) GameOver(Result)                        {}
