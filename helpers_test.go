package klondike

import (
	"testing"

	"github.com/macanangkasa/klondike/deck"
)

// suitRun builds the ascending pile for one suit, Ace up to and
// including upTo
func suitRun(suit deck.Suit, upTo deck.Rank) []deck.Card {
	pile := make([]deck.Card, 0, upTo.Value())
	for r := deck.Ace; r <= upTo; r++ {
		pile = append(pile, deck.NewCard(r, suit))
	}
	return pile
}

// fullSuit builds the complete Ace-to-King pile for one suit
func fullSuit(suit deck.Suit) []deck.Card {
	return suitRun(suit, deck.King)
}

// nearWinGame builds a game one move from winning: three complete
// foundations, Hearts built up to the Queen, and the King of Hearts
// waiting on a tableau column.
func nearWinGame(id string) *Game {
	return NewGame(GameOpts{
		ID: id,
		Board: NewBoard(BoardOpts{
			Foundations: [NumFoundations][]deck.Card{
				fullSuit(deck.Clubs),
				fullSuit(deck.Diamonds),
				suitRun(deck.Hearts, deck.Queen),
				fullSuit(deck.Spades),
			},
			Tableau: [NumColumns][]deck.Card{
				0: {deck.NewCard(deck.King, deck.Hearts)},
			},
		}),
	})
}

// assertPartition checks that the board holds each of the 52 cards
// exactly once across all zones
func assertPartition(t *testing.T, b *Board) {
	t.Helper()

	counts := map[deck.Card]int{}
	total := 0
	add := func(pile []deck.Card) {
		for _, c := range pile {
			counts[c]++
			total++
		}
	}

	add(b.Stock)
	add(b.Waste)
	for _, pile := range b.Foundations {
		add(pile)
	}
	for _, pile := range b.Tableau {
		add(pile)
	}

	if total != 52 {
		t.Fatalf("board holds %d cards, want 52", total)
	}
	for _, c := range deck.New() {
		if counts[c] != 1 {
			t.Errorf("%s appears %d times", c, counts[c])
		}
	}
}

// assertFaceStates checks the face-up invariant: stock face-down,
// waste and foundations face-up, and each tableau column face-down
// below a contiguous face-up segment ending at a face-up top
func assertFaceStates(t *testing.T, b *Board) {
	t.Helper()

	for _, c := range b.Stock {
		if b.faceUp[c] {
			t.Errorf("stock card %s is face-up", c)
		}
	}
	for _, c := range b.Waste {
		if !b.faceUp[c] {
			t.Errorf("waste card %s is face-down", c)
		}
	}
	for _, pile := range b.Foundations {
		for _, c := range pile {
			if !b.faceUp[c] {
				t.Errorf("foundation card %s is face-down", c)
			}
		}
	}
	for col, pile := range b.Tableau {
		seenFaceUp := false
		for _, c := range pile {
			if seenFaceUp && !b.faceUp[c] {
				t.Errorf("face-down %s above a face-up card in column %d", c, col)
			}
			if b.faceUp[c] {
				seenFaceUp = true
			}
		}
		if len(pile) > 0 && !b.faceUp[pile[len(pile)-1]] {
			t.Errorf("top of column %d (%s) is face-down", col, pile[len(pile)-1])
		}
	}
}

// assertLocations checks that the location index agrees with the piles
func assertLocations(t *testing.T, b *Board) {
	t.Helper()

	recorded := 0
	check := func(pile []deck.Card, zone Zone, pileIdx int) {
		for i, c := range pile {
			recorded++
			loc, ok := b.locations[c]
			if !ok {
				t.Errorf("%s has no recorded location", c)
				continue
			}
			want := Location{Zone: zone, Pile: pileIdx, Index: i}
			if loc != want {
				t.Errorf("%s recorded at %+v, want %+v", c, loc, want)
			}
		}
	}

	check(b.Stock, ZoneStock, 0)
	check(b.Waste, ZoneWaste, 0)
	for i, pile := range b.Foundations {
		check(pile, ZoneFoundation, i)
	}
	for i, pile := range b.Tableau {
		check(pile, ZoneTableau, i)
	}

	if len(b.locations) != recorded {
		t.Errorf("location index has %d entries, board holds %d cards", len(b.locations), recorded)
	}
}

// assertBoardInvariants runs every board-level invariant check
func assertBoardInvariants(t *testing.T, b *Board) {
	t.Helper()
	assertPartition(t, b)
	assertFaceStates(t, b)
	assertLocations(t, b)
}
