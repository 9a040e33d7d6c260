package klondike

import (
	"fmt"

	"github.com/macanangkasa/klondike/deck"
)

const (
	// NumFoundations is the number of foundation slots
	NumFoundations = 4
	// NumColumns is the number of tableau columns
	NumColumns = 7

	stockSize = 24
)

// Zone identifies the part of the board holding a card
type Zone int

const (
	ZoneStock Zone = iota
	ZoneWaste
	ZoneFoundation
	ZoneTableau
)

var zoneNames = []string{"Stock", "Waste", "Foundation", "Tableau"}

func (z Zone) String() string {
	return zoneNames[z]
}

// Location is a card's position on the board: the zone, the pile index
// within the zone (foundation slot or tableau column), and the card's
// index within that pile, counted from the bottom.
type Location struct {
	Zone  Zone
	Pile  int
	Index int
}

// Board is the authoritative game state: the stock, the waste, four
// foundation slots and seven tableau columns. Piles are ordered bottom
// to top, so the top of a pile is its last element. Face state and
// positions are tracked centrally, letting any card resolve to its
// containing pile without scanning.
type Board struct {
	Stock       []deck.Card
	Waste       []deck.Card
	Foundations [NumFoundations][]deck.Card
	Tableau     [NumColumns][]deck.Card

	faceUp    map[deck.Card]bool
	locations map[deck.Card]Location
}

// BoardOpts sets up a board in an arbitrary position, mostly for tests
// and replays. Zones left nil stay empty. Face state defaults to the
// steady-state rules (stock face-down, waste and foundations face-up,
// tableau tops face-up and the rest face-down); FaceUp overrides the
// default for the cards it names.
type BoardOpts struct {
	Stock       []deck.Card
	Waste       []deck.Card
	Foundations [NumFoundations][]deck.Card
	Tableau     [NumColumns][]deck.Card
	FaceUp      map[deck.Card]bool
}

// NewBoard constructs a board from opts
func NewBoard(opts BoardOpts) *Board {
	b := &Board{
		faceUp:    map[deck.Card]bool{},
		locations: map[deck.Card]Location{},
	}

	for _, c := range opts.Stock {
		b.place(c, Location{Zone: ZoneStock}, false)
	}
	for _, c := range opts.Waste {
		b.place(c, Location{Zone: ZoneWaste}, true)
	}
	for slot, pile := range opts.Foundations {
		for _, c := range pile {
			b.place(c, Location{Zone: ZoneFoundation, Pile: slot}, true)
		}
	}
	for col, pile := range opts.Tableau {
		for i, c := range pile {
			b.place(c, Location{Zone: ZoneTableau, Pile: col}, i == len(pile)-1)
		}
	}

	for c, up := range opts.FaceUp {
		if _, ok := b.locations[c]; ok {
			b.faceUp[c] = up
		}
	}

	return b
}

// Deal lays out a fresh game from d. The first 24 cards form the stock
// (the first card drawn is d[23]), and the remaining 28 fill the
// tableau in a triangle: column i receives 7-i cards in deck order,
// with only the last card of each column turned face-up. The layout
// arithmetic only works for a full deck, so any other size panics.
func Deal(d deck.Deck) *Board {
	if len(d) != 52 {
		panic(fmt.Sprintf("cannot deal a %d-card deck", len(d)))
	}

	b := &Board{
		faceUp:    map[deck.Card]bool{},
		locations: map[deck.Card]Location{},
	}

	for _, c := range d[:stockSize] {
		b.place(c, Location{Zone: ZoneStock}, false)
	}

	next := stockSize
	for col := 0; col < NumColumns; col++ {
		for n := 0; n < NumColumns-col; n++ {
			b.place(d[next], Location{Zone: ZoneTableau, Pile: col}, false)
			next++
		}
		b.faceUp[d[next-1]] = true
	}

	return b
}

// FaceUp reports whether c is face-up. Cards the board does not hold
// are face-down.
func (b *Board) FaceUp(c deck.Card) bool {
	return b.faceUp[c]
}

// Location returns c's position on the board
func (b *Board) Location(c deck.Card) (Location, bool) {
	loc, ok := b.locations[c]
	return loc, ok
}

// Won reports whether every foundation holds a complete suit
func (b *Board) Won() bool {
	for _, pile := range b.Foundations {
		if len(pile) != 13 {
			return false
		}
	}
	return true
}

// place appends c to the pile at loc and records its face state and
// position. The Index field of loc is ignored; the pile decides it.
func (b *Board) place(c deck.Card, loc Location, up bool) {
	switch loc.Zone {
	case ZoneStock:
		b.Stock = append(b.Stock, c)
		loc.Index = len(b.Stock) - 1
	case ZoneWaste:
		b.Waste = append(b.Waste, c)
		loc.Index = len(b.Waste) - 1
	case ZoneFoundation:
		b.Foundations[loc.Pile] = append(b.Foundations[loc.Pile], c)
		loc.Index = len(b.Foundations[loc.Pile]) - 1
	case ZoneTableau:
		b.Tableau[loc.Pile] = append(b.Tableau[loc.Pile], c)
		loc.Index = len(b.Tableau[loc.Pile]) - 1
	}
	b.locations[c] = loc
	b.faceUp[c] = up
}

// drawOne moves the top of the stock onto the waste, face-up
func (b *Board) drawOne() deck.Card {
	c := b.Stock[len(b.Stock)-1]
	b.Stock = b.Stock[:len(b.Stock)-1]
	b.place(c, Location{Zone: ZoneWaste}, true)
	return c
}

// recycleWaste rebuilds the stock from the waste, reversed wholesale
// and all face-down, leaving the waste empty. Over a full pass this
// preserves the original draw order.
func (b *Board) recycleWaste() {
	waste := b.Waste
	b.Waste = nil
	for i := len(waste) - 1; i >= 0; i-- {
		b.place(waste[i], Location{Zone: ZoneStock}, false)
	}
}

// liftWaste removes and returns the top of the waste. The caller must
// place the card somewhere.
func (b *Board) liftWaste() deck.Card {
	c := b.Waste[len(b.Waste)-1]
	b.Waste = b.Waste[:len(b.Waste)-1]
	delete(b.locations, c)
	delete(b.faceUp, c)
	return c
}

// liftTableau removes the top n cards from column col, returning them
// in pile order. The newly exposed card, if any, turns face-up. The
// caller must place the lifted cards somewhere.
func (b *Board) liftTableau(col, n int) []deck.Card {
	pile := b.Tableau[col]
	run := make([]deck.Card, n)
	copy(run, pile[len(pile)-n:])
	b.Tableau[col] = pile[:len(pile)-n]

	for _, c := range run {
		delete(b.locations, c)
		delete(b.faceUp, c)
	}

	if remaining := b.Tableau[col]; len(remaining) > 0 {
		b.faceUp[remaining[len(remaining)-1]] = true
	}

	return run
}
