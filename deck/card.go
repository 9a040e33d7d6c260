package deck

import (
	"fmt"
	"strings"
)

// Rank represents a rank in a deck of cards
type Rank int

var rankNames = []string{"Ace", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King"}

var rankCodes = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

func (r Rank) String() string {
	return rankNames[r]
}

// Value returns the rank's numeric value, Ace = 1 up to King = 13
func (r Rank) Value() int {
	return int(r) + 1
}

// Code returns the rank's short form, e.g. "A" for Ace
func (r Rank) Code() string {
	return rankCodes[r]
}

// NameToRank maps rank names to ranks, for card references off the wire
var NameToRank = map[string]Rank{
	"Ace":   Ace,
	"Two":   Two,
	"Three": Three,
	"Four":  Four,
	"Five":  Five,
	"Six":   Six,
	"Seven": Seven,
	"Eight": Eight,
	"Nine":  Nine,
	"Ten":   Ten,
	"Jack":  Jack,
	"Queen": Queen,
	"King":  King,
}

// Suit represents a suit in a deck of cards
type Suit int

var suitNames = []string{"Clubs", "Diamonds", "Hearts", "Spades"}

var suitCodes = []string{"C", "D", "H", "S"}

var suitSymbols = []string{"♣", "♦", "♥", "♠"}

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

func (s Suit) String() string {
	return suitNames[s]
}

// Symbol returns the suit's glyph
func (s Suit) Symbol() string {
	return suitSymbols[s]
}

// Color returns the suit's color
func (s Suit) Color() Color {
	if s == Diamonds || s == Hearts {
		return Red
	}
	return Black
}

// NameToSuit maps suit names to suits, for card references off the wire
var NameToSuit = map[string]Suit{
	"Clubs":    Clubs,
	"Diamonds": Diamonds,
	"Hearts":   Hearts,
	"Spades":   Spades,
}

// Color represents a card's color
type Color int

const (
	Black Color = iota
	Red
)

var colorNames = []string{"Black", "Red"}

func (c Color) String() string {
	return colorNames[c]
}

// Card represents a playing card. It is a pure identity: rank and suit
// only, comparable and usable as a map key. Face state belongs to the
// board holding the card, not the card itself.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard constructs a card
func NewCard(rank Rank, suit Suit) Card {
	if rank < Ace || rank > King || suit < Clubs || suit > Spades {
		panic(fmt.Sprintf("card out of range: rank %d, suit %d", rank, suit))
	}
	return Card{Rank: rank, Suit: suit}
}

// Value returns the card's numeric rank value, Ace = 1 up to King = 13
func (c Card) Value() int {
	return c.Rank.Value()
}

// Color returns the card's color
func (c Card) Color() Color {
	return c.Suit.Color()
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Code returns the card's short form, e.g. "AS" for the Ace of Spades
func (c Card) Code() string {
	return c.Rank.Code() + suitCodes[c.Suit]
}

// ParseCard parses a card's short form, e.g. "AS", "10h" or "qd".
// Parsing is case-insensitive and ignores surrounding whitespace.
func ParseCard(s string) (Card, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if len(trimmed) < 2 {
		return Card{}, fmt.Errorf("cannot parse card %q", s)
	}

	var suit Suit
	switch trimmed[len(trimmed)-1] {
	case 'C':
		suit = Clubs
	case 'D':
		suit = Diamonds
	case 'H':
		suit = Hearts
	case 'S':
		suit = Spades
	default:
		return Card{}, fmt.Errorf("unknown suit in %q", s)
	}

	code := trimmed[:len(trimmed)-1]
	for r, rc := range rankCodes {
		if rc == code {
			return Card{Rank: Rank(r), Suit: suit}, nil
		}
	}

	return Card{}, fmt.Errorf("unknown rank in %q", s)
}
