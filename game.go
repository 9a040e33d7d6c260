package klondike

import (
	"math/rand"
	"sync"
	"time"

	"github.com/macanangkasa/klondike/deck"
)

// pointsPerFoundationCard is the flat score for each card sent to a
// foundation. Nothing else scores.
const pointsPerFoundationCard = 10

// Game is a single solitaire session: one board, the ordering it was
// dealt from, and the bookkeeping around it. Methods are safe for
// concurrent use; operations are serialized, each completing before
// the next begins. Once the game is won, mutating operations report
// false and change nothing until Restart.
type Game struct {
	mu        sync.Mutex
	id        string
	dealt     deck.Deck
	board     *Board
	moves     int
	score     int
	won       bool
	startedAt time.Time
	wonAt     time.Time
}

// GameOpts configures a new game. A Board takes precedence over a
// Deck, and a Deck over Rng; with none set the deal is shuffled from
// the clock.
type GameOpts struct {
	// ID is a caller-assigned session identifier
	ID string
	// Deck fixes the ordering to deal from
	Deck deck.Deck
	// Rng shuffles a fresh deck when no Deck is given
	Rng *rand.Rand
	// Board adopts an existing position instead of dealing. Restart
	// cannot reproduce an adopted position; it deals a fresh shuffle.
	Board *Board
}

// NewGame deals a fresh game
func NewGame(opts GameOpts) *Game {
	g := &Game{
		id:        opts.ID,
		startedAt: time.Now(),
	}

	if opts.Board != nil {
		g.board = opts.Board
		return g
	}

	d := opts.Deck
	if d == nil {
		d = deck.NewShuffled(opts.Rng)
	}
	g.dealt = make(deck.Deck, len(d))
	copy(g.dealt, d)
	g.board = Deal(g.dealt)

	return g
}

// ID returns the session identifier
func (g *Game) ID() string {
	return g.id
}

// Restart re-deals the game and zeroes the counters, the clock and the
// win latch. A game dealt from a deck gets the identical layout back;
// a game adopted from a board starts over from a fresh shuffle.
func (g *Game) Restart() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.dealt == nil {
		g.dealt = deck.NewShuffled(nil)
	}
	g.board = Deal(g.dealt)
	g.moves = 0
	g.score = 0
	g.won = false
	g.startedAt = time.Now()
	g.wonAt = time.Time{}
}

// Draw turns the next stock card face-up onto the waste, one card per
// call. With an empty stock it recycles the waste instead: reversed
// wholesale, all face-down, so a full pass repeats the same draw
// order. Draws and recycles each count one move. With stock and waste
// both empty nothing happens and Draw reports false.
func (g *Game) Draw() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.won {
		return false
	}

	switch {
	case len(g.board.Stock) > 0:
		g.board.drawOne()
	case len(g.board.Waste) > 0:
		g.board.recycleWaste()
	default:
		return false
	}

	g.moves++
	return true
}

// AutoMoveToFoundation sends card to the first foundation slot that
// accepts it, scanning slots in order. The card must be the top of a
// tableau column or the top of the waste; a tableau card exposed by
// the move turns face-up. A successful placement counts one move and
// scores 10 points. A card that cannot be placed, including one the
// board does not hold, leaves the game unchanged.
func (g *Game) AutoMoveToFoundation(card deck.Card) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.won {
		return false
	}

	b := g.board
	loc, ok := b.locations[card]
	if !ok {
		return false
	}

	switch loc.Zone {
	case ZoneTableau:
		if loc.Index != len(b.Tableau[loc.Pile])-1 {
			return false
		}
	case ZoneWaste:
		if loc.Index != len(b.Waste)-1 {
			return false
		}
	default:
		return false
	}

	slot := -1
	for i, pile := range b.Foundations {
		if CanMoveToFoundation(card, b.faceUp[card], pile) {
			slot = i
			break
		}
	}
	if slot < 0 {
		return false
	}

	if loc.Zone == ZoneTableau {
		b.liftTableau(loc.Pile, 1)
	} else {
		b.liftWaste()
	}
	b.place(card, Location{Zone: ZoneFoundation, Pile: slot}, true)

	g.moves++
	g.score += pointsPerFoundationCard

	if b.Won() {
		g.won = true
		g.wonAt = time.Now()
	}

	return true
}

// MoveToTableau moves card onto tableau column col. The waste top
// moves as a single card; a face-up tableau card moves together with
// every card stacked on it, as one run. An empty column takes any
// rank; otherwise the destination top must be face-up, the opposite
// color, and exactly one rank above the moving card. Successful moves
// count one move and score nothing. Anything else, including a move
// within the same column, leaves the game unchanged.
func (g *Game) MoveToTableau(card deck.Card, col int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.won || col < 0 || col >= NumColumns {
		return false
	}

	b := g.board
	loc, ok := b.locations[card]
	if !ok {
		return false
	}

	dest := b.Tableau[col]
	destTopFaceUp := len(dest) > 0 && b.faceUp[dest[len(dest)-1]]
	if !CanMoveToTableau(card, b.faceUp[card], dest, destTopFaceUp) {
		return false
	}

	switch loc.Zone {
	case ZoneWaste:
		if loc.Index != len(b.Waste)-1 {
			return false
		}
		b.liftWaste()
		b.place(card, Location{Zone: ZoneTableau, Pile: col}, true)

	case ZoneTableau:
		if loc.Pile == col {
			return false
		}
		// The face-up check above covers the whole run: face-up cards
		// form a contiguous top segment, so everything stacked on this
		// card is face-up too.
		run := b.liftTableau(loc.Pile, len(b.Tableau[loc.Pile])-loc.Index)
		for _, c := range run {
			b.place(c, Location{Zone: ZoneTableau, Pile: col}, true)
		}

	default:
		return false
	}

	g.moves++
	return true
}

// Moves returns the number of accepted operations so far
func (g *Game) Moves() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.moves
}

// Score returns the current score
func (g *Game) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.score
}

// Won reports whether all four foundations are complete
func (g *Game) Won() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.won
}

// Elapsed returns how long the game has been running, frozen at the
// winning move once the game is won
func (g *Game) Elapsed() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.won {
		return g.wonAt.Sub(g.startedAt)
	}
	return time.Since(g.startedAt)
}

// StockSize returns the number of cards left in the stock
func (g *Game) StockSize() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.board.Stock)
}

// WasteSize returns the number of cards in the waste
func (g *Game) WasteSize() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.board.Waste)
}

// WasteTop returns up to n waste cards, most recent first, as the
// classic fanned display shows them
func (g *Game) WasteTop(n int) []deck.Card {
	g.mu.Lock()
	defer g.mu.Unlock()

	w := g.board.Waste
	if n > len(w) {
		n = len(w)
	}
	if n < 0 {
		n = 0
	}

	top := make([]deck.Card, 0, n)
	for i := len(w) - 1; i >= len(w)-n; i-- {
		top = append(top, w[i])
	}
	return top
}

// FoundationTop returns the top card of a foundation slot, if any
func (g *Game) FoundationTop(slot int) (deck.Card, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if slot < 0 || slot >= NumFoundations {
		return deck.Card{}, false
	}
	pile := g.board.Foundations[slot]
	if len(pile) == 0 {
		return deck.Card{}, false
	}
	return pile[len(pile)-1], true
}

// FoundationSize returns the number of cards on a foundation slot
func (g *Game) FoundationSize(slot int) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	if slot < 0 || slot >= NumFoundations {
		return 0
	}
	return len(g.board.Foundations[slot])
}

// TableauColumn returns a copy of tableau column col, bottom to top
func (g *Game) TableauColumn(col int) []deck.Card {
	g.mu.Lock()
	defer g.mu.Unlock()

	if col < 0 || col >= NumColumns {
		return nil
	}
	pile := g.board.Tableau[col]
	out := make([]deck.Card, len(pile))
	copy(out, pile)
	return out
}

// FaceUp reports whether card is face-up on the board
func (g *Game) FaceUp(card deck.Card) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.faceUp[card]
}
