package deck

// The six permanent trumps, highest first. These outrank every other card
// in every hand, whatever suit was declared.
var permanentTrumps = []Card{
	{Suit: Clubs, Rank: Queen},
	{Suit: Spades, Rank: Queen},
	{Suit: Clubs, Rank: Jack},
	{Suit: Spades, Rank: Jack},
	{Suit: Hearts, Rank: Jack},
	{Suit: Diamonds, Rank: Jack},
}

// IsPermanentTrump reports whether the card is one of the six permanent
// trumps (both black queens and all four jacks).
func (c Card) IsPermanentTrump() bool {
	return c.Rank == Jack || (c.Rank == Queen && (c.Suit == Clubs || c.Suit == Spades))
}

// permanentOrder returns 0 for the highest permanent trump down to 5 for the
// lowest, or -1 for a card that is not a permanent trump.
func (c Card) permanentOrder() int {
	for i, p := range permanentTrumps {
		if c == p {
			return i
		}
	}
	return -1
}

// IsTrump reports whether the card counts as trump for the given declared
// suit. Permanent trumps belong to the trump suit, not their printed suit.
func (c Card) IsTrump(trump Suit) bool {
	return c.IsPermanentTrump() || c.Suit == trump
}

// EffectiveSuit returns the suit a card counts as for follow-suit purposes:
// the declared trump suit for any trump card (permanent trumps included),
// otherwise the printed suit.
func (c Card) EffectiveSuit(trump Suit) Suit {
	if c.IsTrump(trump) {
		return trump
	}
	return c.Suit
}

// Beats reports whether c wins over other in a trick, given the declared
// trump suit and the suit that was led. It is not a total order over the
// pack: a card of a plain suit that was neither led nor trumped can beat
// nothing.
//
// Ranking, highest first:
//   - the six permanent trumps in their fixed order
//   - remaining cards of the trump suit: A > K > (Q) > 10 > 9 > 8 > 7
//     (the suit's own Q only appears here for a red trump; for clubs or
//     spades it is already a permanent trump)
//   - cards of the led suit: A > K > Q > J > 10 > 9 > 8 > 7
func (c Card) Beats(other Card, trump, led Suit) bool {
	cOrd, oOrd := c.permanentOrder(), other.permanentOrder()
	if cOrd >= 0 && oOrd >= 0 {
		return cOrd < oOrd
	}
	if cOrd >= 0 {
		return true
	}
	if oOrd >= 0 {
		return false
	}

	cTrump, oTrump := c.Suit == trump, other.Suit == trump
	if cTrump && oTrump {
		return c.Rank > other.Rank
	}
	if cTrump {
		return true
	}
	if oTrump {
		return false
	}

	if c.Suit == other.Suit {
		return c.Rank > other.Rank
	}
	return c.Suit == led
}
