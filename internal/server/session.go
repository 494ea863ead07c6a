package server

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"briscola-game/internal/cpu"
	"briscola-game/internal/game"
	"briscola-game/internal/match"
	"briscola-game/internal/protocol"
	"briscola-game/internal/shared"

	"github.com/sirupsen/logrus"
)

// errNotYourTurn is returned by Submit when no card is being waited for.
var errNotYourTurn = errors.New("not your turn")

// MessageSender delivers an encoded message to the session's client.
type MessageSender func(message []byte)

// SessionStatus is the public summary of a session.
type SessionStatus struct {
	ID         string         `json:"id"`
	Human      string         `json:"human"`
	Difficulty string         `json:"difficulty"`
	State      string         `json:"state"`
	Scores     map[string]int `json:"scores"`
	Played     int            `json:"played"`
	Finished   bool           `json:"finished"`
}

// Session is one game between a websocket client and a CPU.
type Session struct {
	ID         string
	difficulty cpu.Level
	game       *game.Game
	human      *shared.Player
	computer   *shared.Player
	moves      chan shared.Card
	send       MessageSender
	log        logrus.FieldLogger
	cancel     context.CancelFunc

	turnMu   sync.Mutex
	awaiting bool

	mu     sync.Mutex
	status SessionStatus
}

// NewSession seats a human named name against a CPU of the given level.
func NewSession(name string, level cpu.Level, send MessageSender, logger logrus.FieldLogger, opts ...game.Option) *Session {
	human := shared.NewPlayer(name)
	computer := shared.NewPlayer("CPU")
	g := game.New(human, computer, append([]game.Option{game.WithLogger(logger)}, opts...)...)

	s := &Session{
		ID:         g.ID,
		difficulty: level,
		game:       g,
		human:      human,
		computer:   computer,
		moves:      make(chan shared.Card, 1),
		send:       send,
		log:        logger.WithField("session", g.ID),
	}
	s.status = SessionStatus{
		ID:         g.ID,
		Human:      name,
		Difficulty: level.String(),
		State:      string(game.NotStarted),
		Scores:     map[string]int{human.ID: 0, computer.ID: 0},
	}
	return s
}

// Start runs the game in its own goroutine until it ends or ctx is cancelled.
func (s *Session) Start(ctx context.Context) error {
	opponent, err := match.NewCPU(s.difficulty)
	if err != nil {
		return err
	}
	ctx, s.cancel = context.WithCancel(ctx)
	m := match.New(s.game, &humanSeat{session: s}, opponent,
		match.WithObserver(s),
		match.WithLogger(s.log),
	)

	go func() {
		defer s.cancel()
		result, err := m.Run(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				s.log.Info("Session stopped")
				return
			}
			s.log.WithError(err).Error("Game aborted")
			s.sendError("Internal error: " + err.Error())
			return
		}
		s.log.WithField("scores", result.Scores).Info("Session finished")
	}()
	return nil
}

// Stop cancels the running game.
func (s *Session) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Submit hands the human's chosen card to the waiting game. Only one card is
// accepted per prompt.
func (s *Session) Submit(card shared.Card) error {
	s.turnMu.Lock()
	defer s.turnMu.Unlock()
	if !s.awaiting {
		return errNotYourTurn
	}
	s.awaiting = false
	s.moves <- card
	return nil
}

func (s *Session) expectMove(awaiting bool) {
	s.turnMu.Lock()
	s.awaiting = awaiting
	s.turnMu.Unlock()
}

// Status returns a snapshot of the session.
func (s *Session) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.status
	st.Scores = make(map[string]int, len(s.status.Scores))
	for k, v := range s.status.Scores {
		st.Scores[k] = v
	}
	return st
}

func (s *Session) updateStatus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.State = string(s.game.State())
	s.status.Scores[s.human.ID] = s.human.Points
	s.status.Scores[s.computer.ID] = s.computer.Points
	s.status.Played = len(s.game.PlayedCards())
	s.status.Finished = s.game.State() == game.Finished
}

// --- match.Observer ---

func (s *Session) GameStarted(g *game.Game) {
	s.updateStatus()
	trump, _ := g.Trump()
	s.sendMessage(protocol.TypeGameStart, protocol.GameStartPayload{
		GameID: g.ID,
		Players: []protocol.PlayerInfo{
			{ID: s.human.ID, Name: s.human.Name},
			{ID: s.computer.ID, Name: s.computer.Name, CPU: true},
		},
		Trump:      trump,
		DeckSize:   g.DeckSize(),
		Difficulty: s.difficulty.String(),
	})
	s.sendHand()
}

func (s *Session) CardPlayed(player *shared.Player, card shared.Card) {
	s.updateStatus()
	s.sendMessage(protocol.TypeCardPlayed, protocol.CardPlayedPayload{PlayerID: player.ID, Card: card})
}

func (s *Session) TrickEnded(result shared.TrickResult) {
	s.updateStatus()
	s.sendMessage(protocol.TypeTrickEnd, protocol.TrickEndPayload{
		WinnerID: result.Winner.ID,
		Cards:    result.Cards(),
		Points:   result.Points,
		Scores:   s.scores(),
	})
}

func (s *Session) CardDrawn(player *shared.Player, card shared.Card) {
	s.updateStatus()
	payload := protocol.CardDrawnPayload{PlayerID: player.ID, DeckSize: s.game.DeckSize()}
	trump, _ := s.game.Trump()
	if player == s.human || card == trump {
		payload.Card = &card
	}
	s.sendMessage(protocol.TypeCardDrawn, payload)
	if player == s.human {
		s.sendHand()
	}
}

func (s *Session) LastDraw() {
	trump, _ := s.game.Trump()
	s.sendMessage(protocol.TypeLastDraw, protocol.LastDrawPayload{Trump: trump})
}

func (s *Session) GameOver(result match.Result) {
	s.updateStatus()
	payload := protocol.GameOverPayload{Draw: result.Draw, Scores: s.scores()}
	if result.Winner != nil {
		payload.WinnerID = result.Winner.ID
	}
	s.sendMessage(protocol.TypeGameOver, payload)
}

// --- Messaging helpers ---

func (s *Session) scores() map[string]int {
	return map[string]int{s.human.ID: s.human.Points, s.computer.ID: s.computer.Points}
}

func (s *Session) sendHand() {
	s.sendMessage(protocol.TypeHand, protocol.HandPayload{Hand: s.human.Hand.Cards()})
}

func (s *Session) sendError(message string) {
	s.sendMessage(protocol.TypeError, protocol.ErrorPayload{Message: message})
}

func (s *Session) sendMessage(msgType string, payload interface{}) {
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		s.log.WithError(err).WithField("type", msgType).Error("Encoding message")
		return
	}
	s.send(msg)
}

// humanSeat is the match.Agent of the websocket player: it announces the turn
// and waits for a play_card message.
type humanSeat struct {
	session *Session
}

func (h *humanSeat) Begin(*shared.Player, []shared.Card) {}

func (h *humanSeat) ChooseCard(ctx context.Context, turn match.Turn) (shared.Card, error) {
	s := h.session
	s.expectMove(true)
	s.sendMessage(protocol.TypeYourTurn, protocol.YourTurnPayload{
		PlayerID:   turn.Player.ID,
		Leading:    turn.Leading,
		Table:      turn.Table,
		ValidMoves: turn.Hand,
	})
	for {
		select {
		case <-ctx.Done():
			s.expectMove(false)
			return shared.Card{}, ctx.Err()
		case card := <-s.moves:
			if slices.Contains(turn.Hand, card) {
				return card, nil
			}
			s.expectMove(true)
			s.log.WithField("card", card.String()).Warn("Human played a card not in hand")
			s.sendError(fmt.Sprintf("%s is not in your hand.", card))
		}
	}
}

func (h *humanSeat) TrickDone(*shared.Player, shared.TrickResult) {}
