package protocol

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/macanangkasa/klondike"
	"github.com/macanangkasa/klondike/deck"
	utils "github.com/macanangkasa/klondike/internal"
)

func TestCmdNames(t *testing.T) {
	for cmd, name := range CmdNames {
		utils.AssertEqual(t, NameToCmd[name], cmd)
		utils.AssertEqual(t, cmd.String(), name)
	}
}

func TestInboundMessage(t *testing.T) {
	t.Run("decodes a foundation move", func(t *testing.T) {
		body := `{"game_id":"abc","command":4,"rank":"Ace","suit":"Spades"}`

		var msg InboundMessage
		utils.AssertNoError(t, json.Unmarshal([]byte(body), &msg))
		utils.AssertEqual(t, msg.GameID, "abc")
		utils.AssertEqual(t, msg.Command, Foundation)

		card, ok := msg.Card()
		utils.AssertTrue(t, ok)
		utils.AssertEqual(t, card, deck.NewCard(deck.Ace, deck.Spades))
	})

	t.Run("rejects unknown card names", func(t *testing.T) {
		for _, msg := range []InboundMessage{
			{Rank: "Elevenses", Suit: "Spades"},
			{Rank: "Ace", Suit: "Cups"},
			{},
		} {
			if _, ok := msg.Card(); ok {
				t.Errorf("%q of %q resolved to a card", msg.Rank, msg.Suit)
			}
		}
	})
}

func TestSnapshot(t *testing.T) {
	g := klondike.NewGame(klondike.GameOpts{ID: "snap", Deck: deck.New()})
	g.Draw()

	msg := Snapshot(g)

	utils.AssertEqual(t, msg.GameID, "snap")
	utils.AssertEqual(t, msg.Command, State)
	utils.AssertEqual(t, msg.StockCount, 23)
	utils.AssertEqual(t, msg.Moves, 1)
	utils.AssertEqual(t, msg.Score, 0)
	utils.AssertFalse(t, msg.Won)

	utils.AssertDeepEqual(t, msg.Waste, []CardState{
		{Rank: "Jack", Suit: "Diamonds", FaceUp: true},
	})

	utils.AssertEqual(t, len(msg.Foundations), klondike.NumFoundations)
	for slot, cs := range msg.Foundations {
		if cs != nil {
			t.Errorf("foundation %d should be empty, got %+v", slot, *cs)
		}
	}

	utils.AssertEqual(t, len(msg.Tableau), klondike.NumColumns)
	utils.AssertDeepEqual(t, msg.Tableau[6], []CardState{
		{Rank: "King", Suit: "Spades", FaceUp: true},
	})

	col0 := msg.Tableau[0]
	utils.AssertEqual(t, len(col0), 7)
	utils.AssertEqual(t, col0[0], CardState{Rank: "Queen", Suit: "Diamonds", FaceUp: false})
	utils.AssertEqual(t, col0[6], CardState{Rank: "Five", Suit: "Hearts", FaceUp: true})
}

func TestSnapshotWonGame(t *testing.T) {
	g := klondike.NewGame(klondike.GameOpts{
		ID: "finished",
		Board: klondike.NewBoard(klondike.BoardOpts{
			Foundations: [klondike.NumFoundations][]deck.Card{
				fullSuit(deck.Clubs),
				fullSuit(deck.Diamonds),
				fullSuit(deck.Hearts)[:12],
				fullSuit(deck.Spades),
			},
			Tableau: [klondike.NumColumns][]deck.Card{
				0: {deck.NewCard(deck.King, deck.Hearts)},
			},
		}),
	})
	utils.AssertTrue(t, g.AutoMoveToFoundation(deck.NewCard(deck.King, deck.Hearts)))

	msg := Snapshot(g)

	utils.AssertEqual(t, msg.Command, Won)
	utils.AssertTrue(t, msg.Won)
	utils.AssertEqual(t, *msg.Foundations[2], CardState{Rank: "King", Suit: "Hearts", FaceUp: true})
}

func TestSnapshotWireFormat(t *testing.T) {
	g := klondike.NewGame(klondike.GameOpts{ID: "wire", Deck: deck.New()})

	data, err := json.Marshal(Snapshot(g))
	utils.AssertNoError(t, err)

	// Empty foundation slots stay visible as nulls; an empty waste is
	// a list, not a null.
	if !strings.Contains(string(data), `"foundations":[null,null,null,null]`) {
		t.Errorf("unexpected foundations encoding: %s", data)
	}
	if !strings.Contains(string(data), `"waste":[]`) {
		t.Errorf("unexpected waste encoding: %s", data)
	}
}

func fullSuit(s deck.Suit) []deck.Card {
	cards := make([]deck.Card, 0, 13)
	for r := deck.Ace; r <= deck.King; r++ {
		cards = append(cards, deck.NewCard(r, s))
	}
	return cards
}
