package klondike

import (
	"testing"

	"github.com/macanangkasa/klondike/deck"
	utils "github.com/macanangkasa/klondike/internal"
)

func TestDeal(t *testing.T) {
	d := deck.New()
	b := Deal(d)

	t.Run("stock takes the first 24 cards", func(t *testing.T) {
		utils.AssertDeepEqual(t, b.Stock, []deck.Card(d[:stockSize]))
	})

	t.Run("columns get the triangular layout in deck order", func(t *testing.T) {
		next := stockSize
		for col := 0; col < NumColumns; col++ {
			if len(b.Tableau[col]) != NumColumns-col {
				t.Fatalf("column %d has %d cards, want %d", col, len(b.Tableau[col]), NumColumns-col)
			}
			for _, c := range b.Tableau[col] {
				utils.AssertEqual(t, c, d[next])
				next++
			}
		}
		utils.AssertEqual(t, next, 52)
	})

	t.Run("exactly each column's last card is face-up", func(t *testing.T) {
		for col, pile := range b.Tableau {
			for i, c := range pile {
				wantUp := i == len(pile)-1
				if b.FaceUp(c) != wantUp {
					t.Errorf("column %d card %s: face-up %v, want %v", col, c, b.FaceUp(c), wantUp)
				}
			}
		}
	})

	t.Run("stock is face-down with the 24th card on top", func(t *testing.T) {
		for _, c := range b.Stock {
			utils.AssertFalse(t, b.FaceUp(c))
		}
		utils.AssertEqual(t, b.Stock[len(b.Stock)-1], deck.NewCard(deck.Jack, deck.Diamonds))
	})

	t.Run("waste and foundations start empty", func(t *testing.T) {
		utils.AssertEqual(t, len(b.Waste), 0)
		for slot, pile := range b.Foundations {
			if len(pile) != 0 {
				t.Errorf("foundation %d holds %d cards, want 0", slot, len(pile))
			}
		}
	})

	t.Run("reference deal spot checks", func(t *testing.T) {
		utils.AssertDeepEqual(t, b.Tableau[0], []deck.Card{
			deck.NewCard(deck.Queen, deck.Diamonds),
			deck.NewCard(deck.King, deck.Diamonds),
			deck.NewCard(deck.Ace, deck.Hearts),
			deck.NewCard(deck.Two, deck.Hearts),
			deck.NewCard(deck.Three, deck.Hearts),
			deck.NewCard(deck.Four, deck.Hearts),
			deck.NewCard(deck.Five, deck.Hearts),
		})
		utils.AssertDeepEqual(t, b.Tableau[5], []deck.Card{
			deck.NewCard(deck.Jack, deck.Spades),
			deck.NewCard(deck.Queen, deck.Spades),
		})
		utils.AssertDeepEqual(t, b.Tableau[6], []deck.Card{
			deck.NewCard(deck.King, deck.Spades),
		})
	})

	t.Run("board invariants hold after the deal", func(t *testing.T) {
		assertBoardInvariants(t, b)
	})
}

func TestDealRejectsWrongDeckSize(t *testing.T) {
	for _, size := range []int{0, 51} {
		func() {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("Expected a %d-card deal to panic, but it didn't", size)
				}
			}()
			Deal(deck.New()[:size])
		}()
	}
}

func TestNewBoard(t *testing.T) {
	aceSpades := deck.NewCard(deck.Ace, deck.Spades)
	twoHearts := deck.NewCard(deck.Two, deck.Hearts)
	fiveClubs := deck.NewCard(deck.Five, deck.Clubs)
	nineDiamonds := deck.NewCard(deck.Nine, deck.Diamonds)

	t.Run("face state defaults by zone", func(t *testing.T) {
		b := NewBoard(BoardOpts{
			Stock: []deck.Card{fiveClubs},
			Waste: []deck.Card{nineDiamonds},
			Foundations: [NumFoundations][]deck.Card{
				0: {deck.NewCard(deck.Ace, deck.Hearts)},
			},
			Tableau: [NumColumns][]deck.Card{
				2: {twoHearts, aceSpades},
			},
		})

		utils.AssertFalse(t, b.FaceUp(fiveClubs))
		utils.AssertTrue(t, b.FaceUp(nineDiamonds))
		utils.AssertTrue(t, b.FaceUp(deck.NewCard(deck.Ace, deck.Hearts)))
		utils.AssertFalse(t, b.FaceUp(twoHearts))
		utils.AssertTrue(t, b.FaceUp(aceSpades))
	})

	t.Run("face-up overrides apply to held cards only", func(t *testing.T) {
		missing := deck.NewCard(deck.King, deck.Clubs)
		b := NewBoard(BoardOpts{
			Tableau: [NumColumns][]deck.Card{
				0: {twoHearts, aceSpades},
			},
			FaceUp: map[deck.Card]bool{
				twoHearts: true,
				missing:   true,
			},
		})

		utils.AssertTrue(t, b.FaceUp(twoHearts))
		utils.AssertFalse(t, b.FaceUp(missing))
		if _, ok := b.Location(missing); ok {
			t.Errorf("%s should not be on the board", missing)
		}
	})

	t.Run("locations are recorded", func(t *testing.T) {
		b := NewBoard(BoardOpts{
			Waste: []deck.Card{nineDiamonds, fiveClubs},
			Tableau: [NumColumns][]deck.Card{
				3: {twoHearts},
			},
		})

		loc, ok := b.Location(fiveClubs)
		utils.AssertTrue(t, ok)
		utils.AssertEqual(t, loc, Location{Zone: ZoneWaste, Pile: 0, Index: 1})

		loc, ok = b.Location(twoHearts)
		utils.AssertTrue(t, ok)
		utils.AssertEqual(t, loc, Location{Zone: ZoneTableau, Pile: 3, Index: 0})
	})
}

func TestBoardWon(t *testing.T) {
	t.Run("complete foundations win", func(t *testing.T) {
		b := NewBoard(BoardOpts{
			Foundations: [NumFoundations][]deck.Card{
				fullSuit(deck.Clubs),
				fullSuit(deck.Diamonds),
				fullSuit(deck.Hearts),
				fullSuit(deck.Spades),
			},
		})

		utils.AssertTrue(t, b.Won())
		assertBoardInvariants(t, b)
	})

	t.Run("a single missing card does not", func(t *testing.T) {
		b := NewBoard(BoardOpts{
			Foundations: [NumFoundations][]deck.Card{
				fullSuit(deck.Clubs),
				fullSuit(deck.Diamonds),
				suitRun(deck.Hearts, deck.Queen),
				fullSuit(deck.Spades),
			},
			Tableau: [NumColumns][]deck.Card{
				0: {deck.NewCard(deck.King, deck.Hearts)},
			},
		})

		utils.AssertFalse(t, b.Won())
	})

	t.Run("a fresh deal is not won", func(t *testing.T) {
		utils.AssertFalse(t, Deal(deck.New()).Won())
	})
}

func TestZoneString(t *testing.T) {
	utils.AssertEqual(t, ZoneStock.String(), "Stock")
	utils.AssertEqual(t, ZoneWaste.String(), "Waste")
	utils.AssertEqual(t, ZoneFoundation.String(), "Foundation")
	utils.AssertEqual(t, ZoneTableau.String(), "Tableau")
}
