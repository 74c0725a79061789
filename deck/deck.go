package deck

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"errors"
	"math/rand"
)

// ErrNoEntropy is returned when the system RNG cannot be read. Dealing from
// a predictable shuffle is worse than not dealing at all, so this is fatal
// to the command that triggered it.
var ErrNoEntropy = errors.New("deck: system entropy source unavailable")

// Size is the number of cards in a Sjaus pack
const Size = 32

// Deck represents a deck of cards
type Deck []Card

// New creates the 32-card Sjaus pack, unshuffled
func New() Deck {
	cards := make(Deck, 0, Size)
	for _, suit := range AllSuits() {
		for _, rank := range AllRanks() {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// Shuffle permutes the deck uniformly at random (Fisher-Yates), seeded from
// the system entropy source.
func (d Deck) Shuffle() error {
	var seed int64
	if err := binary.Read(cryptorand.Reader, binary.LittleEndian, &seed); err != nil {
		return ErrNoEntropy
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
	return nil
}

// Deal removes and returns n cards from the top of the deck. The returned
// slice is a copy, so later deals cannot alias it.
func (d *Deck) Deal(n int) []Card {
	if n < 0 {
		return []Card{}
	}
	if n > len(*d) {
		n = len(*d)
	}
	dealt := make([]Card, n)
	copy(dealt, (*d)[:n])
	*d = (*d)[n:]
	return dealt
}

// Remaining returns how many cards are left
func (d Deck) Remaining() int {
	return len(d)
}
