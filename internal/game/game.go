package game

import (
	"fmt"
	"io"
	"slices"

	"briscola-game/internal/rules"
	"briscola-game/internal/shared"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// GameState represents the current phase of the game.
type GameState string

const (
	NotStarted     GameState = "NotStarted"     // Waiting for SetupGame
	Dealt          GameState = "Dealt"          // Hands dealt and trump turned, first trick not started
	LeaderToPlay   GameState = "LeaderToPlay"   // Draw phase over, leader to open the trick
	FollowerToPlay GameState = "FollowerToPlay" // Leader has played
	TrickComplete  GameState = "TrickComplete"  // Both cards down, waiting for EvaluateHand
	TrickEvaluated GameState = "TrickEvaluated" // Points awarded, draw phase may start
	Drawing        GameState = "Drawing"        // At least one player has drawn
	Finished       GameState = "Finished"       // Deck and hands exhausted
)

// cardsPerHand is how many cards each player is dealt at setup.
const cardsPerHand = shared.MaxCardsInHand

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger used by the game.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(g *Game) {
		g.baseLog = logger
	}
}

// WithShuffle replaces the deck shuffle. Passing a function that does nothing
// keeps the deck in its unshuffled order.
func WithShuffle(shuffle func(cards []shared.Card)) Option {
	return func(g *Game) {
		g.shuffle = shuffle
	}
}

// WithID sets the game ID instead of generating one.
func WithID(id string) Option {
	return func(g *Game) {
		g.ID = id
	}
}

// Game is the Briscola engine for two players. It is not safe for concurrent use.
type Game struct {
	ID      string
	Players [2]*shared.Player
	Deck    *shared.Deck
	Trick   *shared.Trick

	state        GameState
	trump        shared.Card
	hasTrump     bool
	trumpClaimed bool
	played       []shared.Card
	shuffle      func(cards []shared.Card)
	baseLog      logrus.FieldLogger
	log          logrus.FieldLogger
}

// New creates a game between two players. Call SetupGame to deal.
func New(player1, player2 *shared.Player, opts ...Option) *Game {
	g := &Game{
		ID:      uuid.NewString(),
		Players: [2]*shared.Player{player1, player2},
		Deck:    &shared.Deck{Cards: []shared.Card{}},
		Trick:   shared.NewTrick(),
		state:   NotStarted,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.baseLog == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		g.baseLog = logger
	}
	g.log = g.baseLog.WithField("game", g.ID)
	return g
}

// SetupGame shuffles a fresh deck, deals three cards to each player one at a
// time, turns the next card as trump and lets player one lead.
func (g *Game) SetupGame() error {
	if g.state != NotStarted {
		return fmt.Errorf("setup in state %s, reset the game first: %w", g.state, shared.ErrInvalidState)
	}
	for _, p := range g.Players {
		if p == nil {
			return fmt.Errorf("game needs two players: %w", shared.ErrInvalidState)
		}
		if !p.Hand.IsEmpty() {
			return fmt.Errorf("%s still holds cards: %w", p.Name, shared.ErrInvalidState)
		}
	}

	g.Deck = shared.NewDeck()
	if g.shuffle != nil {
		g.shuffle(g.Deck.Cards)
	} else {
		g.Deck.Shuffle()
	}

	hands, err := g.Deck.Deal(len(g.Players), cardsPerHand)
	if err != nil {
		return fmt.Errorf("dealing: %w", err)
	}
	for i, hand := range hands {
		for _, card := range hand {
			if err := g.Players[i].Hand.Add(card); err != nil {
				return fmt.Errorf("dealing to %s: %w", g.Players[i].Name, err)
			}
		}
	}

	trump, ok := g.Deck.Draw()
	if !ok {
		return fmt.Errorf("no card left for the trump: %w", shared.ErrInvalidState)
	}
	g.trump = trump
	g.hasTrump = true
	g.trumpClaimed = false
	g.played = g.played[:0]

	g.Trick.Reset()
	g.Trick.SetOrder(g.Players[0], g.Players[1])
	g.state = Dealt

	g.log.WithFields(logrus.Fields{
		"trump":  trump.String(),
		"leader": g.Players[0].Name,
	}).Info("Game set up")
	return nil
}

// PlayCard puts a card from the player's hand into the player's slot of the current trick.
func (g *Game) PlayCard(player *shared.Player, card shared.Card) error {
	if g.state == NotStarted || g.state == Finished {
		return fmt.Errorf("cannot play in state %s: %w", g.state, shared.ErrInvalidState)
	}
	if (g.state == TrickEvaluated || g.state == Drawing) && g.canDraw() {
		return fmt.Errorf("cannot play before the draw phase ends (state %s): %w", g.state, shared.ErrInvalidState)
	}
	if player == nil || (player != g.Trick.Leader && player != g.Trick.Follower) {
		return fmt.Errorf("player is not at this table: %w", shared.ErrInvalidMove)
	}
	if !player.Hand.Contains(card) {
		g.log.WithFields(logrus.Fields{"player": player.Name, "card": card.String()}).Warn("Card not in hand")
		return fmt.Errorf("%s does not hold %s: %w", player.Name, card, shared.ErrInvalidMove)
	}
	if err := g.Trick.Play(player, card); err != nil {
		g.log.WithFields(logrus.Fields{"player": player.Name, "card": card.String()}).Warn("Rejected play")
		return err
	}
	if err := player.Hand.Remove(card); err != nil {
		return fmt.Errorf("removing played card: %w", err)
	}
	g.played = append(g.played, card)

	if g.Trick.IsComplete() {
		g.state = TrickComplete
	} else {
		g.state = FollowerToPlay
	}
	g.log.WithFields(logrus.Fields{"player": player.Name, "card": card.String()}).Debug("Card played")
	return nil
}

// EvaluateHand resolves the complete trick: the winner takes the points and
// leads the next trick. The played-card slots are cleared; the result stays
// available through LastResult.
func (g *Game) EvaluateHand() (shared.TrickResult, error) {
	if !g.Trick.IsComplete() {
		return shared.TrickResult{}, fmt.Errorf("trick has %d of 2 cards: %w", len(g.Trick.Cards()), shared.ErrInvalidState)
	}

	leaderCard, followerCard := *g.Trick.LeaderCard, *g.Trick.FollowerCard
	winner, loser := g.Trick.Leader, g.Trick.Follower
	if rules.CompareTrick(leaderCard, followerCard, g.trump.Suit) == rules.FollowerWins {
		winner, loser = loser, winner
	}
	points := rules.ScoreTrick(leaderCard, followerCard)
	winner.AddPoints(points)

	result := shared.TrickResult{
		Winner:       winner,
		Loser:        loser,
		LeaderCard:   leaderCard,
		FollowerCard: followerCard,
		Points:       points,
	}
	g.Trick.Result = &result
	g.Trick.SetOrder(winner, loser)
	g.Trick.Clear()

	g.log.WithFields(logrus.Fields{
		"winner": winner.Name,
		"points": points,
		"cards":  fmt.Sprintf("%s / %s", leaderCard, followerCard),
	}).Info("Trick evaluated")

	if g.IsGameOver() {
		g.state = Finished
		g.logGameOver()
	} else {
		g.state = TrickEvaluated
	}
	return result, nil
}

// DrawCard gives the player the top card of the deck. Draws are only allowed
// between EvaluateHand and the next lead. Once the deck is empty the face-up
// trump is handed out, exactly once. After that there is nothing left to draw
// and the boolean is false.
func (g *Game) DrawCard(player *shared.Player) (shared.Card, bool, error) {
	if g.state != TrickEvaluated && g.state != Drawing {
		return shared.Card{}, false, fmt.Errorf("cannot draw in state %s: %w", g.state, shared.ErrInvalidState)
	}
	if !g.isPlayer(player) {
		return shared.Card{}, false, fmt.Errorf("player is not at this table: %w", shared.ErrInvalidMove)
	}
	if player.Hand.IsFull() {
		return shared.Card{}, false, fmt.Errorf("%s already holds %d cards: %w", player.Name, player.Hand.Len(), shared.ErrInvalidState)
	}

	card, ok := g.Deck.Draw()
	if !ok {
		if !g.hasTrump || g.trumpClaimed {
			return shared.Card{}, false, nil
		}
		g.trumpClaimed = true
		card = g.trump
		g.log.WithFields(logrus.Fields{"player": player.Name, "card": card.String()}).Info("Trump card drawn")
	}
	if err := player.Hand.Add(card); err != nil {
		return shared.Card{}, false, err
	}

	g.state = Drawing
	if g.Players[0].Hand.Len() == g.Players[1].Hand.Len() {
		g.state = LeaderToPlay
	}
	g.log.WithFields(logrus.Fields{"player": player.Name, "deck": g.Deck.Len()}).Debug("Card drawn")
	return card, true, nil
}

// IsGameOver reports whether every card has been played: the deck is empty
// and both hands are empty.
func (g *Game) IsGameOver() bool {
	if g.state == NotStarted {
		return false
	}
	if !g.Deck.IsEmpty() || len(g.Trick.Cards()) > 0 {
		return false
	}
	for _, p := range g.Players {
		if !p.Hand.IsEmpty() {
			return false
		}
	}
	return true
}

// GetWinner returns the player with strictly more points. The boolean is false
// on a 60-60 draw.
func (g *Game) GetWinner() (*shared.Player, bool) {
	p1, p2 := g.Players[0], g.Players[1]
	switch {
	case p1.Points > p2.Points:
		return p1, true
	case p2.Points > p1.Points:
		return p2, true
	default:
		return nil, false
	}
}

// ResetGame clears trick, hands, points, deck and trump, ready for SetupGame.
func (g *Game) ResetGame() {
	g.Trick.Reset()
	for _, p := range g.Players {
		if p != nil {
			p.Reset()
		}
	}
	g.Deck.Clear()
	g.trump = shared.Card{}
	g.hasTrump = false
	g.trumpClaimed = false
	g.played = g.played[:0]
	g.state = NotStarted
	g.log.Debug("Game reset")
}

// State returns the current phase.
func (g *Game) State() GameState {
	return g.state
}

// Trump returns the trump card. The boolean is false before setup.
func (g *Game) Trump() (shared.Card, bool) {
	return g.trump, g.hasTrump
}

// TrumpSuit returns the suit of the trump card.
func (g *Game) TrumpSuit() shared.Suit {
	return g.trump.Suit
}

// TrumpClaimed reports whether the face-up trump has been drawn into a hand.
func (g *Game) TrumpClaimed() bool {
	return g.trumpClaimed
}

// DeckSize returns the number of cards still in the deck, trump excluded.
func (g *Game) DeckSize() int {
	return g.Deck.Len()
}

// IsLastDraw reports whether the coming draw phase takes the last deck card
// and the trump card.
func (g *Game) IsLastDraw() bool {
	return g.Deck.Len() == 1 && g.hasTrump && !g.trumpClaimed
}

// Opponent returns the other player at the table, or nil for a stranger.
func (g *Game) Opponent(player *shared.Player) *shared.Player {
	switch player {
	case g.Players[0]:
		return g.Players[1]
	case g.Players[1]:
		return g.Players[0]
	default:
		return nil
	}
}

// Logger returns the logger the game was built with, without the game field.
func (g *Game) Logger() logrus.FieldLogger {
	return g.baseLog
}

// PlayedCards returns every card played this game, in play order.
func (g *Game) PlayedCards() []shared.Card {
	return slices.Clone(g.played)
}

// LastResult returns the result of the most recent trick.
func (g *Game) LastResult() (shared.TrickResult, bool) {
	if g.Trick.Result == nil {
		return shared.TrickResult{}, false
	}
	return *g.Trick.Result, true
}

// canDraw reports whether the deck or the face-up trump still has a card to give.
func (g *Game) canDraw() bool {
	return !g.Deck.IsEmpty() || (g.hasTrump && !g.trumpClaimed)
}

func (g *Game) isPlayer(player *shared.Player) bool {
	return player != nil && (player == g.Players[0] || player == g.Players[1])
}

func (g *Game) logGameOver() {
	entry := g.log.WithFields(logrus.Fields{
		"player1_points": g.Players[0].Points,
		"player2_points": g.Players[1].Points,
	})
	if winner, ok := g.GetWinner(); ok {
		entry.WithField("winner", winner.Name).Info("Game over")
		return
	}
	entry.Info("Game over, draw")
}
