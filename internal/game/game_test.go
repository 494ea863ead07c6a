package game

import (
	"slices"
	"testing"

	"briscola-game/internal/rules"
	"briscola-game/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func c(s shared.Suit, r shared.Rank) shared.Card { return shared.NewCard(s, r) }

// unshuffled keeps the deck in FullDeck order.
func unshuffled(cards []shared.Card) {}

// stacked puts the given cards on top of the deck, in order, and leaves the
// rest in FullDeck order. The first six are dealt alternately, the seventh
// is the trump.
func stacked(top ...shared.Card) Option {
	return WithShuffle(func(cards []shared.Card) {
		rest := slices.DeleteFunc(shared.FullDeck(), func(c shared.Card) bool {
			return slices.Contains(top, c)
		})
		copy(cards, append(slices.Clone(top), rest...))
	})
}

func newGame(t *testing.T, opts ...Option) (*Game, *shared.Player, *shared.Player) {
	t.Helper()
	p1, p2 := shared.NewPlayer("Anna"), shared.NewPlayer("Bruno")
	return New(p1, p2, opts...), p1, p2
}

func TestSetupGameUnshuffled(t *testing.T) {
	g, p1, p2 := newGame(t, WithShuffle(unshuffled))
	require.NoError(t, g.SetupGame())

	assert.Equal(t, []shared.Card{c(shared.Denari, shared.Two), c(shared.Denari, shared.Five), c(shared.Denari, shared.Seven)}, p1.Hand.Cards())
	assert.Equal(t, []shared.Card{c(shared.Denari, shared.Four), c(shared.Denari, shared.Six), c(shared.Denari, shared.Jack)}, p2.Hand.Cards())

	trump, ok := g.Trump()
	require.True(t, ok)
	assert.Equal(t, c(shared.Denari, shared.Knight), trump)
	assert.Equal(t, shared.Denari, g.TrumpSuit())
	assert.False(t, g.TrumpClaimed())

	assert.Equal(t, 33, g.DeckSize())
	assert.Equal(t, c(shared.Denari, shared.King), g.Deck.Cards[0])
	assert.Equal(t, Dealt, g.State())
	assert.Same(t, p1, g.Trick.Leader)
	assert.Same(t, p2, g.Trick.Follower)
}

func TestSetupGameTwiceFails(t *testing.T) {
	g, _, _ := newGame(t)
	require.NoError(t, g.SetupGame())
	assert.ErrorIs(t, g.SetupGame(), shared.ErrInvalidState)
}

func TestSetupGameShuffledDealsEveryCardOnce(t *testing.T) {
	g, p1, p2 := newGame(t)
	require.NoError(t, g.SetupGame())

	trump, _ := g.Trump()
	all := append(append(p1.Hand.Cards(), p2.Hand.Cards()...), trump)
	all = append(all, g.Deck.Cards...)
	assert.ElementsMatch(t, shared.FullDeck(), all)
}

func TestPlayCardErrors(t *testing.T) {
	t.Run("before setup", func(t *testing.T) {
		g, p1, _ := newGame(t)
		assert.ErrorIs(t, g.PlayCard(p1, c(shared.Denari, shared.Two)), shared.ErrInvalidState)
	})

	tests := []struct {
		name string
		play func(g *Game, p1, p2 *shared.Player) error
	}{
		{"stranger", func(g *Game, p1, p2 *shared.Player) error {
			return g.PlayCard(shared.NewPlayer("Carla"), c(shared.Denari, shared.Two))
		}},
		{"card not in hand", func(g *Game, p1, p2 *shared.Player) error {
			return g.PlayCard(p1, c(shared.Bastoni, shared.Ace))
		}},
		{"follower before leader", func(g *Game, p1, p2 *shared.Player) error {
			return g.PlayCard(p2, c(shared.Denari, shared.Four))
		}},
		{"leader twice", func(g *Game, p1, p2 *shared.Player) error {
			require.NoError(t, g.PlayCard(p1, c(shared.Denari, shared.Two)))
			return g.PlayCard(p1, c(shared.Denari, shared.Five))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, p1, p2 := newGame(t, WithShuffle(unshuffled))
			require.NoError(t, g.SetupGame())
			before := p1.Hand.Len() + p2.Hand.Len()

			err := tt.play(g, p1, p2)
			assert.ErrorIs(t, err, shared.ErrInvalidMove)
			assert.LessOrEqual(t, before-(p1.Hand.Len()+p2.Hand.Len()), 1)
		})
	}
}

func TestPlayCardMovesCardToTable(t *testing.T) {
	g, p1, p2 := newGame(t, WithShuffle(unshuffled))
	require.NoError(t, g.SetupGame())

	require.NoError(t, g.PlayCard(p1, c(shared.Denari, shared.Seven)))
	assert.Equal(t, FollowerToPlay, g.State())
	assert.False(t, p1.Hand.Contains(c(shared.Denari, shared.Seven)))
	assert.Equal(t, []shared.Card{c(shared.Denari, shared.Seven)}, g.Trick.Cards())

	require.NoError(t, g.PlayCard(p2, c(shared.Denari, shared.Jack)))
	assert.Equal(t, TrickComplete, g.State())
	assert.Equal(t, []shared.Card{c(shared.Denari, shared.Seven), c(shared.Denari, shared.Jack)}, g.PlayedCards())
}

func TestEvaluateHandIncomplete(t *testing.T) {
	g, p1, _ := newGame(t, WithShuffle(unshuffled))
	require.NoError(t, g.SetupGame())

	_, err := g.EvaluateHand()
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	require.NoError(t, g.PlayCard(p1, c(shared.Denari, shared.Two)))
	_, err = g.EvaluateHand()
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestEvaluateHand(t *testing.T) {
	tests := []struct {
		name       string
		deck       []shared.Card
		lead       shared.Card
		reply      shared.Card
		leaderWins bool
		points     int
	}{
		{
			name: "higher rank of same non-trump suit",
			deck: []shared.Card{
				c(shared.Bastoni, shared.Ace), c(shared.Bastoni, shared.King),
				c(shared.Spade, shared.Two), c(shared.Spade, shared.Four),
				c(shared.Coppe, shared.Two), c(shared.Coppe, shared.Four),
				c(shared.Denari, shared.Two),
			},
			lead:       c(shared.Bastoni, shared.Ace),
			reply:      c(shared.Bastoni, shared.King),
			leaderWins: true,
			points:     15,
		},
		{
			name: "trump takes regardless of suit",
			deck: []shared.Card{
				c(shared.Coppe, shared.Two), c(shared.Denari, shared.Three),
				c(shared.Spade, shared.Two), c(shared.Spade, shared.Four),
				c(shared.Coppe, shared.Five), c(shared.Coppe, shared.Four),
				c(shared.Denari, shared.Two),
			},
			lead:   c(shared.Coppe, shared.Two),
			reply:  c(shared.Denari, shared.Three),
			points: 10,
		},
		{
			name: "off-suit reply never takes",
			deck: []shared.Card{
				c(shared.Coppe, shared.Two), c(shared.Spade, shared.Ace),
				c(shared.Spade, shared.Two), c(shared.Spade, shared.Four),
				c(shared.Coppe, shared.Five), c(shared.Coppe, shared.Four),
				c(shared.Denari, shared.Two),
			},
			lead:       c(shared.Coppe, shared.Two),
			reply:      c(shared.Spade, shared.Ace),
			leaderWins: true,
			points:     11,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, p1, p2 := newGame(t, stacked(tt.deck...))
			require.NoError(t, g.SetupGame())
			require.Equal(t, shared.Denari, g.TrumpSuit())

			require.NoError(t, g.PlayCard(p1, tt.lead))
			require.NoError(t, g.PlayCard(p2, tt.reply))
			result, err := g.EvaluateHand()
			require.NoError(t, err)

			winner, loser := p2, p1
			if tt.leaderWins {
				winner, loser = p1, p2
			}
			assert.Same(t, winner, result.Winner)
			assert.Same(t, loser, result.Loser)
			assert.Equal(t, tt.points, result.Points)
			assert.Equal(t, tt.points, winner.Points)
			assert.Zero(t, loser.Points)

			assert.Same(t, winner, g.Trick.Leader)
			assert.Same(t, loser, g.Trick.Follower)
			assert.Empty(t, g.Trick.Cards())
			assert.Equal(t, TrickEvaluated, g.State())

			last, ok := g.LastResult()
			require.True(t, ok)
			assert.Equal(t, result, last)
		})
	}
}

func TestDrawCard(t *testing.T) {
	g, p1, p2 := newGame(t, WithShuffle(unshuffled))

	_, _, err := g.DrawCard(p1)
	assert.ErrorIs(t, err, shared.ErrInvalidState, "before setup")

	require.NoError(t, g.SetupGame())
	_, _, err = g.DrawCard(p1)
	assert.ErrorIs(t, err, shared.ErrInvalidState, "right after the deal")

	require.NoError(t, g.PlayCard(p1, c(shared.Denari, shared.Seven)))
	require.NoError(t, g.PlayCard(p2, c(shared.Denari, shared.Jack)))
	_, err = g.EvaluateHand()
	require.NoError(t, err)

	_, _, err = g.DrawCard(shared.NewPlayer("Carla"))
	assert.ErrorIs(t, err, shared.ErrInvalidMove)

	card, ok, err := g.DrawCard(p2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, c(shared.Denari, shared.King), card)
	assert.Equal(t, Drawing, g.State())

	_, _, err = g.DrawCard(p2)
	assert.ErrorIs(t, err, shared.ErrInvalidState, "full hand")
	assert.Equal(t, 32, g.DeckSize(), "a rejected draw keeps the deck")

	card, ok, err = g.DrawCard(p1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, c(shared.Denari, shared.Three), card)
	assert.Equal(t, LeaderToPlay, g.State())
	assert.Equal(t, 31, g.DeckSize())
}

func TestPhaseOrder(t *testing.T) {
	// Unshuffled: p1 holds Denari 2,5,7 and leads, p2 holds Denari 4,6,J.
	tests := []struct {
		name  string
		setup func(t *testing.T, g *Game, p1, p2 *shared.Player)
		act   func(g *Game, p1, p2 *shared.Player) error
		state GameState
	}{
		{
			name: "draw while the follower has to play",
			setup: func(t *testing.T, g *Game, p1, p2 *shared.Player) {
				require.NoError(t, g.PlayCard(p1, c(shared.Denari, shared.Seven)))
			},
			act: func(g *Game, p1, p2 *shared.Player) error {
				_, _, err := g.DrawCard(p2)
				return err
			},
			state: FollowerToPlay,
		},
		{
			name: "draw while the leader has to play",
			setup: func(t *testing.T, g *Game, p1, p2 *shared.Player) {
				playTrick(t, g)
				for _, p := range []*shared.Player{g.Trick.Leader, g.Trick.Follower} {
					_, _, err := g.DrawCard(p)
					require.NoError(t, err)
				}
			},
			act: func(g *Game, p1, p2 *shared.Player) error {
				_, _, err := g.DrawCard(g.Trick.Leader)
				return err
			},
			state: LeaderToPlay,
		},
		{
			name: "draw with both cards on the table",
			setup: func(t *testing.T, g *Game, p1, p2 *shared.Player) {
				require.NoError(t, g.PlayCard(p1, c(shared.Denari, shared.Seven)))
				require.NoError(t, g.PlayCard(p2, c(shared.Denari, shared.Jack)))
			},
			act: func(g *Game, p1, p2 *shared.Player) error {
				_, _, err := g.DrawCard(p1)
				return err
			},
			state: TrickComplete,
		},
		{
			name: "lead before drawing",
			setup: func(t *testing.T, g *Game, p1, p2 *shared.Player) {
				playTrick(t, g)
			},
			act: func(g *Game, p1, p2 *shared.Player) error {
				leader := g.Trick.Leader
				return g.PlayCard(leader, leader.Hand.Cards()[0])
			},
			state: TrickEvaluated,
		},
		{
			name: "lead before the loser draws",
			setup: func(t *testing.T, g *Game, p1, p2 *shared.Player) {
				playTrick(t, g)
				_, _, err := g.DrawCard(g.Trick.Leader)
				require.NoError(t, err)
			},
			act: func(g *Game, p1, p2 *shared.Player) error {
				leader := g.Trick.Leader
				return g.PlayCard(leader, leader.Hand.Cards()[0])
			},
			state: Drawing,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, p1, p2 := newGame(t, WithShuffle(unshuffled))
			require.NoError(t, g.SetupGame())
			tt.setup(t, g, p1, p2)
			hands := [2]int{p1.Hand.Len(), p2.Hand.Len()}
			deck := g.DeckSize()

			assert.ErrorIs(t, tt.act(g, p1, p2), shared.ErrInvalidState)
			assert.Equal(t, tt.state, g.State(), "a rejected call keeps the phase")
			assert.Equal(t, hands, [2]int{p1.Hand.Len(), p2.Hand.Len()})
			assert.Equal(t, deck, g.DeckSize())
		})
	}
}

func TestPlayAfterEverythingDrawn(t *testing.T) {
	g, _, _ := newGame(t, WithShuffle(unshuffled))
	require.NoError(t, g.SetupGame())
	for g.DeckSize() > 0 || !g.TrumpClaimed() {
		result := playTrick(t, g)
		for _, p := range []*shared.Player{result.Winner, result.Loser} {
			_, _, err := g.DrawCard(p)
			require.NoError(t, err)
		}
	}

	playTrick(t, g)
	require.Equal(t, TrickEvaluated, g.State())
	leader := g.Trick.Leader
	assert.NoError(t, g.PlayCard(leader, leader.Hand.Cards()[0]), "nothing left to draw")
	assert.Equal(t, FollowerToPlay, g.State())
}

// playTrick plays one trick, each side throwing its first card, and evaluates it.
func playTrick(t *testing.T, g *Game) shared.TrickResult {
	t.Helper()
	for _, p := range []*shared.Player{g.Trick.Leader, g.Trick.Follower} {
		require.NoError(t, g.PlayCard(p, p.Hand.Cards()[0]))
	}
	result, err := g.EvaluateHand()
	require.NoError(t, err)
	return result
}

// playOut plays the game to the end, each side throwing its first card.
// It returns every card drawn after the deal.
func playOut(t *testing.T, g *Game) []shared.Card {
	t.Helper()
	var drawn []shared.Card
	for tricks := 0; !g.IsGameOver(); tricks++ {
		require.Less(t, tricks, rules.TricksPerGame, "game did not end")
		for _, p := range []*shared.Player{g.Trick.Leader, g.Trick.Follower} {
			require.NoError(t, g.PlayCard(p, p.Hand.Cards()[0]))
		}
		result, err := g.EvaluateHand()
		require.NoError(t, err)
		if g.IsGameOver() {
			break
		}
		for _, p := range []*shared.Player{result.Winner, result.Loser} {
			card, ok, err := g.DrawCard(p)
			require.NoError(t, err)
			if ok {
				drawn = append(drawn, card)
			}
		}

		trump, _ := g.Trump()
		inPlay := g.DeckSize() + g.Players[0].Hand.Len() + g.Players[1].Hand.Len() + len(g.PlayedCards())
		if !g.TrumpClaimed() {
			inPlay++
		}
		require.Equal(t, shared.DeckSize, inPlay, "cards lost around trump %s", trump)
	}
	return drawn
}

func TestFullGame(t *testing.T) {
	for _, name := range []string{"unshuffled", "shuffled"} {
		t.Run(name, func(t *testing.T) {
			var opts []Option
			if name == "unshuffled" {
				opts = append(opts, WithShuffle(unshuffled))
			}
			g, p1, p2 := newGame(t, opts...)
			require.NoError(t, g.SetupGame())
			trump, _ := g.Trump()

			drawn := playOut(t, g)

			assert.Len(t, drawn, 34)
			assert.Equal(t, trump, drawn[len(drawn)-1], "the trump is the last card drawn")
			assert.Equal(t, 1, countOf(drawn, trump), "the trump is drawn once")
			assert.True(t, g.TrumpClaimed())

			assert.Equal(t, Finished, g.State())
			assert.True(t, p1.Hand.IsEmpty())
			assert.True(t, p2.Hand.IsEmpty())
			assert.Equal(t, rules.TotalPoints, p1.Points+p2.Points)
			assert.ElementsMatch(t, shared.FullDeck(), g.PlayedCards())

			_, _, err := g.DrawCard(p1)
			assert.ErrorIs(t, err, shared.ErrInvalidState)
			assert.ErrorIs(t, g.PlayCard(p1, trump), shared.ErrInvalidState)
		})
	}
}

func TestDrawAfterTrumpClaimedIsEmpty(t *testing.T) {
	g, _, _ := newGame(t, WithShuffle(unshuffled))
	require.NoError(t, g.SetupGame())

	for g.DeckSize() > 0 || !g.TrumpClaimed() {
		for _, p := range []*shared.Player{g.Trick.Leader, g.Trick.Follower} {
			require.NoError(t, g.PlayCard(p, p.Hand.Cards()[0]))
		}
		result, err := g.EvaluateHand()
		require.NoError(t, err)
		for _, p := range []*shared.Player{result.Winner, result.Loser} {
			_, _, err := g.DrawCard(p)
			require.NoError(t, err)
		}
	}

	for _, p := range []*shared.Player{g.Trick.Leader, g.Trick.Follower} {
		require.NoError(t, g.PlayCard(p, p.Hand.Cards()[0]))
	}
	result, err := g.EvaluateHand()
	require.NoError(t, err)
	require.False(t, g.IsGameOver())

	card, ok, err := g.DrawCard(result.Winner)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, shared.Card{}, card)
	assert.Equal(t, 2, result.Winner.Hand.Len())
}

func TestIsLastDraw(t *testing.T) {
	g, _, _ := newGame(t, WithShuffle(unshuffled))
	assert.False(t, g.IsGameOver(), "not started")
	require.NoError(t, g.SetupGame())
	assert.False(t, g.IsLastDraw())

	for g.DeckSize() > 1 {
		for _, p := range []*shared.Player{g.Trick.Leader, g.Trick.Follower} {
			require.NoError(t, g.PlayCard(p, p.Hand.Cards()[0]))
		}
		result, err := g.EvaluateHand()
		require.NoError(t, err)
		for _, p := range []*shared.Player{result.Winner, result.Loser} {
			_, _, err := g.DrawCard(p)
			require.NoError(t, err)
		}
	}
	assert.True(t, g.IsLastDraw())
}

func TestGetWinner(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 int
		want   int // index of the winner, -1 for a draw
	}{
		{"first wins", 61, 59, 0},
		{"second wins", 40, 80, 1},
		{"draw at sixty", 60, 60, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, p1, p2 := newGame(t)
			p1.Points, p2.Points = tt.p1, tt.p2

			winner, ok := g.GetWinner()
			if tt.want < 0 {
				assert.False(t, ok)
				assert.Nil(t, winner)
				return
			}
			require.True(t, ok)
			assert.Same(t, g.Players[tt.want], winner)
		})
	}
}

func TestResetGame(t *testing.T) {
	g, p1, p2 := newGame(t, WithShuffle(unshuffled))
	require.NoError(t, g.SetupGame())
	require.NoError(t, g.PlayCard(p1, c(shared.Denari, shared.Seven)))
	require.NoError(t, g.PlayCard(p2, c(shared.Denari, shared.Jack)))
	_, err := g.EvaluateHand()
	require.NoError(t, err)

	g.ResetGame()
	assert.Equal(t, NotStarted, g.State())
	assert.True(t, p1.Hand.IsEmpty())
	assert.True(t, p2.Hand.IsEmpty())
	assert.Zero(t, p2.Points)
	assert.Zero(t, g.DeckSize())
	assert.Empty(t, g.PlayedCards())
	_, ok := g.Trump()
	assert.False(t, ok)
	assert.False(t, g.TrumpClaimed())
	_, ok = g.LastResult()
	assert.False(t, ok)

	require.NoError(t, g.SetupGame())
	assert.Same(t, p1, g.Trick.Leader)
}

func TestPlayerLookup(t *testing.T) {
	g, p1, p2 := newGame(t, WithID("table-1"))
	assert.Equal(t, "table-1", g.ID)
	assert.Same(t, p2, g.Opponent(p1))
	assert.Same(t, p1, g.Opponent(p2))
	assert.Nil(t, g.Opponent(shared.NewPlayer("Carla")))
}

func countOf(cards []shared.Card, want shared.Card) int {
	n := 0
	for _, c := range cards {
		if c == want {
			n++
		}
	}
	return n
}
