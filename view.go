package sjaus

import "github.com/skansin/sjaus/deck"

// The view types are what leaves the server: a game as one player is
// allowed to see it. Hidden information (other hands, face-down stock and
// table cards) is reduced to counts.

// StockSlotView shows a stock slot with the face-down card hidden
type StockSlotView struct {
	Up      *deck.Card `json:"up,omitempty"`
	HasDown bool       `json:"hasDown"`
}

// PlayerView is a seat as seen by one viewer
type PlayerView struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Seat      int             `json:"seat"`
	HasLeft   bool            `json:"hasLeft"`
	HandCount int             `json:"handCount"`
	Hand      []deck.Card     `json:"hand,omitempty"`
	Stock     []StockSlotView `json:"stock,omitempty"`
}

// GameView is the redacted game state broadcast to one subscriber
type GameView struct {
	ID           string       `json:"id"`
	Variant      Variant      `json:"variant"`
	State        State        `json:"state"`
	Dealer       int          `json:"dealer"`
	Turn         int          `json:"turn"`
	Players      []PlayerView `json:"players"`
	Bids         []Bid        `json:"bids"`
	Declaration  *Declaration `json:"declaration,omitempty"`
	TableCount   int          `json:"tableCount"`
	CurrentTrick *Trick       `json:"currentTrick,omitempty"`
	LastTrick    *Trick       `json:"lastTrick,omitempty"`
	TricksTaken  []int        `json:"tricksTaken"`
	Scores       []int        `json:"scores"`
	Multiplier   int          `json:"multiplier"`
	HandsPlayed  int          `json:"handsPlayed"`
	LastHand     *HandResult  `json:"lastHand,omitempty"`
	Loser        int          `json:"loser"`
}

// View renders the game for one viewer. Only the viewer's own hand is
// included; everyone's face-up stock is public, face-down cards never are.
func (g *Game) View(viewerID string) GameView {
	v := GameView{
		ID:           g.ID,
		Variant:      g.Variant,
		State:        g.State,
		Dealer:       g.Dealer,
		Turn:         g.Turn,
		Bids:         g.Bids,
		Declaration:  g.Declaration,
		TableCount:   len(g.Table),
		CurrentTrick: g.CurrentTrick,
		Scores:       g.Scores,
		Multiplier:   g.Multiplier,
		HandsPlayed:  g.HandsPlayed,
		LastHand:     g.LastHand,
		Loser:        g.Loser,
	}

	if n := len(g.CompletedTricks); n > 0 {
		last := g.CompletedTricks[n-1]
		v.LastTrick = &last
	}

	v.TricksTaken = make([]int, g.TeamCount())
	for _, t := range g.CompletedTricks {
		v.TricksTaken[g.TeamOf(t.Winner)]++
	}

	for _, p := range g.Players {
		pv := PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			Seat:      p.Seat,
			HasLeft:   p.HasLeft,
			HandCount: len(p.Hand),
		}
		if p.ID == viewerID {
			pv.Hand = append([]deck.Card(nil), p.Hand...)
		}
		for _, s := range p.Stock {
			pv.Stock = append(pv.Stock, StockSlotView{Up: s.Up, HasDown: s.Down != nil})
		}
		v.Players = append(v.Players, pv)
	}
	return v
}
