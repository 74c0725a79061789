package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Clubs Suit = iota
	Spades
	Hearts
	Diamonds
)

func (s Suit) String() string {
	return [...]string{"clubs", "spades", "hearts", "diamonds"}[s]
}

// AllSuits returns all suits in order
func AllSuits() []Suit {
	return []Suit{Clubs, Spades, Hearts, Diamonds}
}

// Rank represents a card rank. Sjaus plays with a short pack: 7 up to Ace.
type Rank int

const (
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

func (r Rank) String() string {
	switch r {
	case Jack:
		return "jack"
	case Queen:
		return "queen"
	case King:
		return "king"
	case Ace:
		return "ace"
	default:
		return fmt.Sprintf("%d", r)
	}
}

// AllRanks returns the ranks of the short pack in ascending order
func AllRanks() []Rank {
	return []Rank{Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}
}

// Points returns the card-point value used for trick scoring.
// A=11, 10=10, K=4, Q=3, J=2, the rest 0. The full pack totals 120.
func (r Rank) Points() int {
	switch r {
	case Ace:
		return 11
	case Ten:
		return 10
	case King:
		return 4
	case Queen:
		return 3
	case Jack:
		return 2
	default:
		return 0
	}
}

// Card represents a playing card
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// NewCard creates a card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Suit: suit, Rank: rank}
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Points returns the card's point value
func (c Card) Points() int {
	return c.Rank.Points()
}
