package sjaus

import "github.com/skansin/sjaus/deck"

// ExchangeTable lets the three-player declarer swap up to two cards of
// their hand for the face-down table cards, before the first lead. The
// given cards go face-down to the table; the first len(give) table cards
// join the hand (the table cards are face down, so which ones come up is
// not the declarer's to choose). Exchanging zero cards simply closes the
// exchange window.
func (g *Game) ExchangeTable(playerID string, give []deck.Card) error {
	p, ok := g.FindPlayer(playerID)
	if !ok {
		return ErrPlayerNotFound
	}
	if g.Variant != ThreePlayer || g.State != Playing {
		return ErrWrongPhase
	}
	if g.Declaration == nil || p.Seat != g.Declaration.Seat || p.HasLeft {
		return ErrNotYourTurn
	}
	if g.TableExchanged || g.CurrentTrick != nil || len(g.CompletedTricks) > 0 {
		return ErrWrongPhase
	}
	if len(give) > len(g.Table) {
		return ErrIllegalCard
	}
	// validate against a shrinking copy of the hand, so a card listed
	// twice cannot pass on the strength of its single copy
	remaining := append([]deck.Card(nil), p.Hand...)
	for _, c := range give {
		found := false
		for i, h := range remaining {
			if h == c {
				remaining = append(remaining[:i], remaining[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return ErrIllegalCard
		}
	}

	take := make([]deck.Card, len(give))
	copy(take, g.Table[:len(give)])
	for _, c := range give {
		p.removeCard(c)
	}
	p.Hand = append(p.Hand, take...)
	copy(g.Table, give)
	g.TableExchanged = true
	return nil
}

func inHand(hand []deck.Card, card deck.Card) bool {
	for _, c := range hand {
		if c == card {
			return true
		}
	}
	return false
}

// PlayCard plays one card into the current trick. The card must be
// reachable (in hand, or face-up on the stock in the two-player game) and
// must follow the led suit if the player can. Trump counts as a suit of its
// own: a permanent trump follows trump, not its printed suit.
func (g *Game) PlayCard(playerID string, card deck.Card) error {
	p, ok := g.FindPlayer(playerID)
	if !ok {
		return ErrPlayerNotFound
	}
	if g.State != Playing || g.Declaration == nil {
		return ErrWrongPhase
	}
	if p.HasLeft || p.Seat != g.Turn {
		return ErrNotYourTurn
	}

	available := p.availableCards()
	if !inHand(available, card) {
		return ErrIllegalCard
	}

	trump := g.Declaration.Suit
	if g.CurrentTrick != nil && len(g.CurrentTrick.Cards) > 0 {
		led := g.CurrentTrick.Cards[0].Card.EffectiveSuit(trump)
		if card.EffectiveSuit(trump) != led && holdsSuit(available, led, trump) {
			return ErrIllegalCard
		}
	}

	if g.CurrentTrick == nil {
		g.CurrentTrick = &Trick{Leader: p.Seat, Winner: -1}
		g.TableExchanged = true // the lead closes the exchange window
	}
	p.removeCard(card)
	g.CurrentTrick.Cards = append(g.CurrentTrick.Cards, PlayedCard{Seat: p.Seat, Card: card})

	if g.trickComplete() {
		return g.resolveTrick()
	}
	g.Turn = g.nextActiveSeat(p.Seat)
	return nil
}

// holdsSuit reports whether any of the cards follows the given effective
// suit under the declared trump.
func holdsSuit(cards []deck.Card, suit, trump deck.Suit) bool {
	for _, c := range cards {
		if c.EffectiveSuit(trump) == suit {
			return true
		}
	}
	return false
}

// trickComplete reports whether every active seat has played into the
// current trick. Seats that left mid-hand are not waited for; a card played
// by a since-departed player still counts.
func (g *Game) trickComplete() bool {
	if g.CurrentTrick == nil {
		return false
	}
	for _, p := range g.Players {
		if p.HasLeft {
			continue
		}
		played := false
		for _, pc := range g.CurrentTrick.Cards {
			if pc.Seat == p.Seat {
				played = true
				break
			}
		}
		if !played {
			return false
		}
	}
	return true
}

// resolveTrick seals the current trick: the best card under the ranking
// table wins, the trick's points go to the winner's side and the winner
// leads next. A departed seat cannot win a trick. Ends the hand when no
// active player has a card left.
func (g *Game) resolveTrick() error {
	trick := g.CurrentTrick
	trump := g.Declaration.Suit
	led := trick.Cards[0].Card.EffectiveSuit(trump)

	winner := -1
	var winning deck.Card
	points := 0
	for _, pc := range trick.Cards {
		points += pc.Card.Points()
		if g.Players[pc.Seat].HasLeft {
			continue
		}
		if winner == -1 || pc.Card.Beats(winning, trump, led) {
			winner = pc.Seat
			winning = pc.Card
		}
	}
	if winner == -1 {
		// every player in the trick has since left; nobody takes it
		g.CurrentTrick = nil
		return nil
	}

	trick.Winner = winner
	trick.Points = points
	g.CompletedTricks = append(g.CompletedTricks, *trick)
	g.CurrentTrick = nil
	g.flipStock()

	if g.handOver() {
		return g.scoreHand()
	}
	g.Turn = winner
	return nil
}

// handOver reports whether every active player has played out their cards
func (g *Game) handOver() bool {
	for _, p := range g.Players {
		if !p.HasLeft && !p.outOfCards() {
			return false
		}
	}
	return true
}
