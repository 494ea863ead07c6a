// Package console plays Briscola against the CPU in a terminal.
package console

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"briscola-game/internal/game"
	"briscola-game/internal/match"
	"briscola-game/internal/shared"

	"github.com/nsf/termbox-go"
)

// ErrQuit is returned once the player presses q, Esc or Ctrl-C.
var ErrQuit = errors.New("player quit")

// UI draws the table and reads the human's moves. It is both the human's
// match.Agent and the match.Observer.
type UI struct {
	wantKeyPressCh chan struct{}
	sendKeyPressCh chan rune
	quit           chan struct{}
	quitOnce       sync.Once

	human  *shared.Player
	game   *game.Game
	status string
}

// NewUI takes over the terminal.
func NewUI(human *shared.Player) (*UI, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("initialising terminal: %w", err)
	}
	u := &UI{
		wantKeyPressCh: make(chan struct{}),
		sendKeyPressCh: make(chan rune),
		quit:           make(chan struct{}),
		human:          human,
	}
	u.startKeyEventLoop()
	return u, nil
}

// Close gives the terminal back.
func (u *UI) Close() {
	termbox.Close()
}

// --- match.Agent ---

func (u *UI) Begin(*shared.Player, []shared.Card) {}

func (u *UI) ChooseCard(ctx context.Context, turn match.Turn) (shared.Card, error) {
	for {
		u.render(turn.Hand, "Your turn: press the number of a card")
		key, err := u.pressKey(ctx)
		if err != nil {
			return shared.Card{}, err
		}
		if card, ok := pickCard(turn.Hand, key); ok {
			return card, nil
		}
	}
}

func (u *UI) TrickDone(*shared.Player, shared.TrickResult) {}

// --- match.Observer ---

func (u *UI) GameStarted(g *game.Game) {
	u.game = g
	trump, _ := g.Trump()
	u.status = fmt.Sprintf("New game, trump is %s", cardLabel(trump))
}

func (u *UI) CardPlayed(player *shared.Player, card shared.Card) {
	if player == u.human {
		u.status = fmt.Sprintf("You played %s", cardLabel(card))
		return
	}
	u.status = fmt.Sprintf("CPU played %s", cardLabel(card))
}

func (u *UI) TrickEnded(result shared.TrickResult) {
	who := "CPU takes"
	if result.Winner == u.human {
		who = "You take"
	}
	u.status = fmt.Sprintf("%s %s for %d points", who, cardsLabel(result.Cards(), false), result.Points)
	u.render(u.human.Hand.Cards(), "Press any key to continue...")
	u.pressAnyKey()
}

func (u *UI) CardDrawn(player *shared.Player, card shared.Card) {
	if player == u.human {
		u.status = fmt.Sprintf("You drew %s", cardLabel(card))
	}
}

func (u *UI) LastDraw() {
	trump, _ := u.game.Trump()
	u.status = fmt.Sprintf("Last draw: one card left and the trump %s", cardLabel(trump))
}

func (u *UI) GameOver(result match.Result) {
	switch {
	case result.Draw:
		u.status = "60 to 60, it's a draw"
	case result.Winner == u.human:
		u.status = fmt.Sprintf("You win %d to %d!", u.human.Points, u.game.Opponent(u.human).Points)
	default:
		u.status = fmt.Sprintf("CPU wins %d to %d", u.game.Opponent(u.human).Points, u.human.Points)
	}
}

// PlayAgain shows the final score and asks for another game.
func (u *UI) PlayAgain(ctx context.Context) bool {
	u.render(nil, "Play again? (y/n)")
	for {
		key, err := u.pressKey(ctx)
		if err != nil {
			return false
		}
		switch key {
		case 'y', 'Y':
			return true
		case 'n', 'N':
			return false
		}
	}
}

// --- Drawing ---

func (u *UI) render(hand []shared.Card, prompt string) {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	mx, my := termbox.Size()

	if g := u.game; g != nil {
		opponent := g.Opponent(u.human)
		printAt(0, 0, "CPU: "+strings.Repeat("[] ", opponent.Hand.Len()))

		trump, _ := g.Trump()
		trumpLine := fmt.Sprintf("Trump %s  Deck %d", cardLabel(trump), g.DeckSize())
		if g.TrumpClaimed() {
			trumpLine = fmt.Sprintf("Trump suit %s  Deck empty", suitEmoji(trump.Suit))
		}
		printUpToAt(mx-1, 0, trumpLine)
		printUpToAt(mx-1, 1, fmt.Sprintf("You: %d points", u.human.Points))
		printUpToAt(mx-1, 2, fmt.Sprintf("CPU: %d points", opponent.Points))

		if last, ok := g.LastResult(); ok {
			printAt(0, my/2-2, "Last trick: "+cardsLabel(last.Cards(), false))
		}
		printAt(0, my/2-1, "Table: "+cardsLabel(g.Trick.Cards(), false))
	}
	printAt(0, my/2, u.status)

	if len(hand) > 0 {
		printAt(0, my-4, "Your hand: "+cardsLabel(hand, true))
	}
	printAt(0, my-2, prompt)
	termbox.Flush()
}

func printAt(x, y int, s string) {
	for i, r := range []rune(s) {
		termbox.SetCell(x+i, y, r, termbox.ColorDefault, termbox.ColorDefault)
	}
}

// printUpToAt writes s so that it ends at x, y.
func printUpToAt(x, y int, s string) {
	runes := []rune(s)
	for i, r := range runes {
		termbox.SetCell(x-len(runes)+i, y, r, termbox.ColorDefault, termbox.ColorDefault)
	}
}

// --- Keyboard ---

func (u *UI) startKeyEventLoop() {
	keyPressesCh := make(chan termbox.Event)
	go func() {
		for {
			event := termbox.PollEvent()
			if event.Type == termbox.EventInterrupt {
				return
			}
			if event.Type != termbox.EventKey {
				continue
			}
			if event.Key == termbox.KeyEsc || event.Key == termbox.KeyCtrlC || event.Key == termbox.KeyCtrlD || event.Ch == 'q' {
				u.quitOnce.Do(func() { close(u.quit) })
				continue
			}
			keyPressesCh <- event
		}
	}()

	go func() {
		for {
			select {
			case <-keyPressesCh:
			case <-u.wantKeyPressCh:
				event := <-keyPressesCh
				u.sendKeyPressCh <- event.Ch
			}
		}
	}()
}

func (u *UI) pressKey(ctx context.Context) (rune, error) {
	select {
	case u.wantKeyPressCh <- struct{}{}:
	case <-u.quit:
		return 0, ErrQuit
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	select {
	case r := <-u.sendKeyPressCh:
		return r, nil
	case <-u.quit:
		return 0, ErrQuit
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (u *UI) pressAnyKey() {
	_, _ = u.pressKey(context.Background())
}
