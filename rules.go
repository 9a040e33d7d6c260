package klondike

import (
	"github.com/macanangkasa/klondike/deck"
)

// CanMoveToFoundation reports whether a card may be placed on the
// given foundation pile. Face-down cards never move. An empty pile
// takes an Ace of any suit; a non-empty pile takes only the same-suit
// card exactly one rank above its top.
func CanMoveToFoundation(card deck.Card, faceUp bool, foundation []deck.Card) bool {
	if !faceUp {
		return false
	}
	if len(foundation) == 0 {
		return card.Rank == deck.Ace
	}

	top := foundation[len(foundation)-1]
	return card.Suit == top.Suit && card.Value() == top.Value()+1
}

// CanMoveToTableau reports whether a card may be placed on the given
// tableau column. Face-down cards never move. An empty column takes a
// card of any rank; otherwise the column's top must be face-up, the
// opposite color, and exactly one rank above the moving card.
func CanMoveToTableau(card deck.Card, faceUp bool, column []deck.Card, topFaceUp bool) bool {
	if !faceUp {
		return false
	}
	if len(column) == 0 {
		return true
	}

	top := column[len(column)-1]
	return topFaceUp && top.Color() != card.Color() && top.Value() == card.Value()+1
}
