package sjaus

import "github.com/skansin/sjaus/deck"

// handPoints is the card-point total of the full pack
const handPoints = 120

// declarerPoints sums the trick points taken by the declarer's side, plus
// the face-down table cards in the three-player game, which count for the
// declarer.
func (g *Game) declarerPoints() int {
	total := 0
	for _, t := range g.CompletedTricks {
		if g.onDeclarerSide(t.Winner) {
			total += t.Points
		}
	}
	for _, c := range g.Table {
		total += c.Points()
	}
	return total
}

// payout returns the rubber deduction for a hand where the declarer's side
// took the given points. onDeclarer is true when the deduction lands on the
// declarer's own side (a failed contract); tie means a dead 60-60 hand with
// no deduction and a doubled next hand. A clubs contract doubles the
// deduction, except the clean sweep, which pays 16 rather than 24.
func payout(points int, clubs bool) (delta int, onDeclarer, tie bool) {
	switch {
	case points == handPoints:
		if clubs {
			return 16, false, false
		}
		return 12, false, false
	case points >= 90:
		delta = 4
	case points >= 61:
		delta = 2
	case points == 60:
		return 0, false, true
	case points >= 31:
		delta, onDeclarer = 4, true
	default:
		delta, onDeclarer = 8, true
	}
	if clubs {
		delta *= 2
	}
	return delta, onDeclarer, false
}

// HandResult is the outcome of one scored hand
type HandResult struct {
	DeclarerSeat   int       `json:"declarerSeat"`
	Trump          deck.Suit `json:"trump"`
	DeclarerPoints int       `json:"declarerPoints"`
	OpponentPoints int       `json:"opponentPoints"`
	Delta          int       `json:"delta"`
	OnDeclarer     bool      `json:"onDeclarer"`
	Tie            bool      `json:"tie"`
}

// scoreHand converts the finished hand's trick points into rubber score
// deductions, ends the rubber if a side has reached zero, and otherwise
// deals the next hand.
func (g *Game) scoreHand() error {
	points := g.declarerPoints()
	clubs := g.Declaration.Suit == deck.Clubs
	declTeam := g.TeamOf(g.Declaration.Seat)

	awarded := 0
	for _, t := range g.CompletedTricks {
		awarded += t.Points
	}
	for _, c := range g.Table {
		awarded += c.Points()
	}

	delta, onDeclarer, tie := payout(points, clubs)
	delta *= g.Multiplier

	g.LastHand = &HandResult{
		DeclarerSeat:   g.Declaration.Seat,
		Trump:          g.Declaration.Suit,
		DeclarerPoints: points,
		OpponentPoints: awarded - points,
		Delta:          delta,
		OnDeclarer:     onDeclarer,
		Tie:            tie,
	}

	switch {
	case tie:
		g.Multiplier = 2
	case onDeclarer:
		g.Scores[declTeam] -= delta
		g.Multiplier = 1
	default:
		for team := 0; team < g.TeamCount(); team++ {
			if team != declTeam {
				g.Scores[team] -= delta
			}
		}
		g.Multiplier = 1
	}

	g.HandsPlayed++

	if loser, done := g.rubberLoser(); done {
		g.Loser = loser
		g.State = Complete
		g.Declaration = nil
		return nil
	}

	return g.redeal()
}

// rubberLoser returns the side that has lost the rubber: the first tally at
// or below zero, lowest first if several crossed in the same hand.
func (g *Game) rubberLoser() (int, bool) {
	loser, lowest := -1, 1
	for team, score := range g.Scores {
		if score <= 0 && score < lowest {
			loser, lowest = team, score
		}
	}
	return loser, loser >= 0
}
