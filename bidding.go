package sjaus

import "github.com/skansin/sjaus/deck"

// minBidLength is the shortest trump length that opens the auction
const minBidLength = 5

// winningBid returns the auction's current best bid, or nil if everybody
// has passed so far. Bid validity keeps the log monotone, so the last
// non-pass entry is always the best.
func (g *Game) winningBid() *Bid {
	for i := len(g.Bids) - 1; i >= 0; i-- {
		if !g.Bids[i].Pass {
			return &g.Bids[i]
		}
	}
	return nil
}

// beatsBid reports whether a new bid outranks the current best. A longer
// trump always wins; at equal length only clubs beats a non-clubs suit
// ("clubs privilege").
func beatsBid(best *Bid, suit deck.Suit, length int) bool {
	if best == nil {
		return length >= minBidLength
	}
	if length > best.Length {
		return true
	}
	return length == best.Length && suit == deck.Clubs && best.Suit != deck.Clubs
}

// DeclareTrump enters a bid of the given suit and trump length for the
// player. Valid only on their turn, and only if the bid outranks the
// current best.
func (g *Game) DeclareTrump(playerID string, suit deck.Suit, length int) error {
	p, ok := g.FindPlayer(playerID)
	if !ok {
		return ErrPlayerNotFound
	}
	if g.State != Bidding {
		return ErrWrongPhase
	}
	if p.HasLeft || p.Seat != g.Turn {
		return ErrNotYourTurn
	}
	if length < minBidLength || !beatsBid(g.winningBid(), suit, length) {
		return ErrInvalidBid
	}

	g.Bids = append(g.Bids, Bid{Seat: p.Seat, Suit: suit, Length: length})
	g.PassStreak = 0
	g.Turn = g.nextActiveSeat(p.Seat)
	return nil
}

// PassTrump records a pass. When every seat has passed with no bid on the
// table the hand is thrown in and redealt; when everyone but the best
// bidder has passed since the last raise, trump is declared and play
// begins with the declarer leading.
func (g *Game) PassTrump(playerID string) error {
	p, ok := g.FindPlayer(playerID)
	if !ok {
		return ErrPlayerNotFound
	}
	if g.State != Bidding {
		return ErrWrongPhase
	}
	if p.HasLeft || p.Seat != g.Turn {
		return ErrNotYourTurn
	}

	g.Bids = append(g.Bids, Bid{Seat: p.Seat, Pass: true})
	g.PassStreak++
	g.Turn = g.nextActiveSeat(p.Seat)
	return g.checkAuctionEnd()
}

// checkAuctionEnd applies the auction termination rules against the current
// pass streak and live player count.
func (g *Game) checkAuctionEnd() error {
	best := g.winningBid()
	active := g.activeCount()

	if best == nil {
		if g.PassStreak >= active {
			return g.redeal()
		}
		return nil
	}

	if g.PassStreak >= active-1 {
		g.declareWinner(*best)
	}
	return nil
}

// declareWinner fixes trump for the hand and hands the first lead to the
// declarer. In the three-player game the declarer may still exchange with
// the table before leading.
func (g *Game) declareWinner(best Bid) {
	g.Declaration = &Declaration{Seat: best.Seat, Suit: best.Suit, Length: best.Length}
	g.State = Playing
	g.Turn = best.Seat
	g.CurrentTrick = nil
}
