package deck

import (
	"math/rand"
	"time"
)

// Deck represents an ordered deck of cards
type Deck []Card

// New creates the full 52-card deck in its reference order: suits
// Clubs to Spades, ranks Ace to King within each suit.
func New() Deck {
	cards := make(Deck, 0, len(suitNames)*len(rankNames))
	for suit := range suitNames {
		for rank := range rankNames {
			cards = append(cards, NewCard(Rank(rank), Suit(suit)))
		}
	}
	return cards
}

// Shuffle permutes the deck in place using the supplied randomness
// source. A nil source falls back to the clock; anything that needs a
// repeatable ordering must inject its own.
func (d Deck) Shuffle(rng *rand.Rand) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// NewShuffled creates a full deck already shuffled by rng
func NewShuffled(rng *rand.Rand) Deck {
	d := New()
	d.Shuffle(rng)
	return d
}
