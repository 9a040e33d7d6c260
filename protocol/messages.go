package protocol

import (
	"github.com/macanangkasa/klondike"
	"github.com/macanangkasa/klondike/deck"
)

// wasteFanSize is how many waste cards clients see, matching the
// classic three-card fan
const wasteFanSize = 3

// CardState is a card as clients see it
type CardState struct {
	Rank   string `json:"rank"`
	Suit   string `json:"suit"`
	FaceUp bool   `json:"faceUp"`
}

// InboundMessage is a message from a client to a game session. Rank,
// Suit and Column only apply to the commands that move cards.
type InboundMessage struct {
	GameID  string `json:"game_id"`
	Command Cmd    `json:"command"`
	Rank    string `json:"rank,omitempty"`
	Suit    string `json:"suit,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// Card resolves the named card, reporting whether the names are known
func (m InboundMessage) Card() (deck.Card, bool) {
	rank, ok := deck.NameToRank[m.Rank]
	if !ok {
		return deck.Card{}, false
	}
	suit, ok := deck.NameToSuit[m.Suit]
	if !ok {
		return deck.Card{}, false
	}
	return deck.NewCard(rank, suit), true
}

// OutboundMessage is a message from a game session to a client. Most
// messages carry a full snapshot of the visible board; Moved reports
// whether the command that prompted the message changed anything.
type OutboundMessage struct {
	GameID      string        `json:"game_id"`
	Command     Cmd           `json:"command"`
	StockCount  int           `json:"stockCount"`
	Waste       []CardState   `json:"waste"`
	Foundations []*CardState  `json:"foundations"`
	Tableau     [][]CardState `json:"tableau"`
	Moves       int           `json:"moves"`
	Score       int           `json:"score"`
	Won         bool          `json:"won"`
	Elapsed     int64         `json:"elapsed"`
	Moved       bool          `json:"moved,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// Snapshot captures the visible state of a game: the stock count, the
// waste fan, each foundation's top card (null while empty) and every
// tableau column with face state. The command is State, or Won once
// the game is over. Elapsed is in seconds.
func Snapshot(g *klondike.Game) OutboundMessage {
	msg := OutboundMessage{
		GameID:     g.ID(),
		Command:    State,
		StockCount: g.StockSize(),
		Moves:      g.Moves(),
		Score:      g.Score(),
		Won:        g.Won(),
		Elapsed:    int64(g.Elapsed().Seconds()),
	}
	if msg.Won {
		msg.Command = Won
	}

	msg.Waste = []CardState{}
	for _, c := range g.WasteTop(wasteFanSize) {
		msg.Waste = append(msg.Waste, newCardState(c, true))
	}

	msg.Foundations = make([]*CardState, klondike.NumFoundations)
	for slot := 0; slot < klondike.NumFoundations; slot++ {
		if top, ok := g.FoundationTop(slot); ok {
			cs := newCardState(top, true)
			msg.Foundations[slot] = &cs
		}
	}

	msg.Tableau = make([][]CardState, klondike.NumColumns)
	for col := 0; col < klondike.NumColumns; col++ {
		pile := g.TableauColumn(col)
		msg.Tableau[col] = make([]CardState, 0, len(pile))
		for _, c := range pile {
			msg.Tableau[col] = append(msg.Tableau[col], newCardState(c, g.FaceUp(c)))
		}
	}

	return msg
}

func newCardState(c deck.Card, faceUp bool) CardState {
	return CardState{
		Rank:   c.Rank.String(),
		Suit:   c.Suit.String(),
		FaceUp: faceUp,
	}
}
