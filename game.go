package sjaus

import (
	"time"

	"github.com/skansin/sjaus/deck"
)

// Variant fixes the player count and deal shape for the game's lifetime.
type Variant int

const (
	TwoPlayer   Variant = 2
	ThreePlayer Variant = 3
	FourPlayer  Variant = 4
)

func (v Variant) String() string {
	switch v {
	case TwoPlayer:
		return "two-player"
	case ThreePlayer:
		return "three-player"
	case FourPlayer:
		return "four-player"
	}
	return "unknown"
}

// Valid reports whether v is a playable variant
func (v Variant) Valid() bool {
	return v == TwoPlayer || v == ThreePlayer || v == FourPlayer
}

// NumPlayers returns the seat count for the variant
func (v Variant) NumPlayers() int {
	return int(v)
}

// HandSize returns the cards dealt to each hand (stock and table excluded)
func (v Variant) HandSize() int {
	if v == ThreePlayer {
		return 10
	}
	return 8
}

// State is the top-level lifecycle of a game
type State int

const (
	Waiting State = iota
	Bidding
	Playing
	Complete
)

func (s State) String() string {
	return [...]string{"waiting", "bidding", "playing", "complete"}[s]
}

// startingScore is the rubber tally each side counts down from
const startingScore = 24

// StockSlot is one of a two-player layout's four stock positions: a
// face-down card covered by a face-up one. The face-up card is playable as
// if held in hand; when it is played, the face-down card flips at the end
// of the trick.
type StockSlot struct {
	Up   *deck.Card `json:"up,omitempty"`
	Down *deck.Card `json:"down,omitempty"`
}

// Player is a seated participant. Seat positions are fixed at join order.
type Player struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Seat    int         `json:"seat"`
	Hand    []deck.Card `json:"hand"`
	Stock   []StockSlot `json:"stock,omitempty"`
	HasLeft bool        `json:"hasLeft"`
}

// Bid is one entry in the auction log: a trump declaration or a pass
type Bid struct {
	Seat   int       `json:"seat"`
	Pass   bool      `json:"pass"`
	Suit   deck.Suit `json:"suit"`
	Length int       `json:"length"`
}

// Declaration is the winning bid, fixed for the hand once bidding ends
type Declaration struct {
	Seat   int       `json:"seat"`
	Suit   deck.Suit `json:"suit"`
	Length int       `json:"length"`
}

// PlayedCard pairs a card with the seat that played it
type PlayedCard struct {
	Seat int       `json:"seat"`
	Card deck.Card `json:"card"`
}

// Trick is one round of play. Winner is -1 until the trick is sealed.
type Trick struct {
	Leader int          `json:"leader"`
	Cards  []PlayedCard `json:"cards"`
	Winner int          `json:"winner"`
	Points int          `json:"points"`
}

// Message is one chat entry. Chat never touches the rules; it is persisted
// and broadcast alongside the game.
type Message struct {
	ID         string    `json:"id"`
	GameID     string    `json:"gameId"`
	PlayerID   string    `json:"playerId"`
	PlayerName string    `json:"playerName"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sentAt"`
}

// Game is the complete authoritative state of one game. All mutations repair
// nothing and roll back nothing: every method validates fully before
// touching any field, so a returned error guarantees an unchanged Game.
type Game struct {
	ID        string    `json:"id"`
	CreatorID string    `json:"creatorId"`
	Variant   Variant   `json:"variant"`
	State     State     `json:"state"`
	Players   []*Player `json:"players"`

	Dealer int `json:"dealer"`
	Turn   int `json:"turn"`

	Bids        []Bid        `json:"bids"`
	PassStreak  int          `json:"passStreak"`
	Declaration *Declaration `json:"declaration,omitempty"`

	// Three-player only: the two face-down table cards the declarer may
	// exchange with before leading the first trick. Their points count for
	// the declarer at hand end.
	Table          []deck.Card `json:"table,omitempty"`
	TableExchanged bool        `json:"tableExchanged"`

	CurrentTrick    *Trick  `json:"currentTrick,omitempty"`
	CompletedTricks []Trick `json:"completedTricks"`

	// Rubber tallies, one per scoring side, counting down from 24. The
	// first side at zero or below loses the rubber. Two sides for the
	// two- and four-player variants; three in the three-player game, where
	// each player keeps their own tally and the declarer stands alone
	// against the other two each hand.
	Scores []int `json:"scores"`

	// Multiplier applies to the hand currently being played: 2 after a
	// 60-60 hand, otherwise 1. Reset after the next scored hand.
	Multiplier int `json:"multiplier"`

	HandsPlayed int `json:"handsPlayed"`

	// LastHand summarizes the most recently scored hand for display
	LastHand *HandResult `json:"lastHand,omitempty"`

	// Loser is the side whose tally reached zero, -1 while undecided
	Loser int `json:"loser"`

	// Version is the persistence layer's optimistic concurrency token
	Version int64 `json:"version"`
}

// NewGame constructs a game in the Waiting state with the creator seated
// alone at seat 0.
func NewGame(id string, variant Variant, creatorID, creatorName string) *Game {
	g := &Game{
		ID:         id,
		CreatorID:  creatorID,
		Variant:    variant,
		State:      Waiting,
		Multiplier: 1,
		Loser:      -1,
	}
	g.Players = []*Player{{ID: creatorID, Name: creatorName, Seat: 0}}
	g.Scores = make([]int, g.TeamCount())
	for i := range g.Scores {
		g.Scores[i] = startingScore
	}
	return g
}

// TeamCount returns the number of scoring sides
func (g *Game) TeamCount() int {
	if g.Variant == FourPlayer {
		return 2
	}
	return g.Variant.NumPlayers()
}

// TeamOf maps a seat to its scoring side. In the four-player game seats
// 0 and 2 face seats 1 and 3; in the other variants every seat scores for
// itself.
func (g *Game) TeamOf(seat int) int {
	if g.Variant == FourPlayer {
		return seat % 2
	}
	return seat
}

// onDeclarerSide reports whether a seat scores with the trump declarer for
// the current hand. Meaningless before trump is declared.
func (g *Game) onDeclarerSide(seat int) bool {
	return g.Declaration != nil && g.TeamOf(seat) == g.TeamOf(g.Declaration.Seat)
}

// FindPlayer returns the seated player with the given ID
func (g *Game) FindPlayer(playerID string) (*Player, bool) {
	for _, p := range g.Players {
		if p.ID == playerID {
			return p, true
		}
	}
	return nil, false
}

func (g *Game) activeCount() int {
	n := 0
	for _, p := range g.Players {
		if !p.HasLeft {
			n++
		}
	}
	return n
}

// nextActiveSeat returns the first seat clockwise of the given one whose
// player is still in the game. Returns -1 if nobody is.
func (g *Game) nextActiveSeat(seat int) int {
	n := len(g.Players)
	for i := 1; i <= n; i++ {
		s := (seat + i) % n
		if !g.Players[s].HasLeft {
			return s
		}
	}
	return -1
}

// Join seats a player at the next open position
func (g *Game) Join(playerID, name string) error {
	if g.State != Waiting {
		return ErrGameNotWaiting
	}
	if _, ok := g.FindPlayer(playerID); ok {
		return ErrAlreadyInGame
	}
	if len(g.Players) >= g.Variant.NumPlayers() {
		return ErrGameFull
	}
	g.Players = append(g.Players, &Player{ID: playerID, Name: name, Seat: len(g.Players)})
	return nil
}

// Start moves the game from Waiting to Bidding. Only the creator may start,
// and every seat must be filled: Sjaus deals the whole pack, so the variant
// fixed at creation is also the required head count.
func (g *Game) Start(playerID string) error {
	if g.State != Waiting {
		return ErrGameNotWaiting
	}
	if playerID != g.CreatorID {
		return ErrNotCreator
	}
	if len(g.Players) < g.Variant.NumPlayers() {
		return ErrTooFewPlayers
	}
	g.Dealer = 0
	return g.startHand()
}

// Leave marks a player as departed. Leaving a Waiting game frees the seat;
// later than that the seat stays occupied and is skipped in turn order. A
// departing declarer abandons the hand, which is redealt.
func (g *Game) Leave(playerID string) error {
	p, ok := g.FindPlayer(playerID)
	if !ok {
		return ErrPlayerNotFound
	}
	if p.HasLeft {
		return nil
	}

	if g.State == Waiting {
		g.removeWaitingPlayer(p)
		return nil
	}

	p.HasLeft = true

	if g.activeCount() < 2 || g.State == Complete {
		// no further progress possible; the game blocks pending cleanup
		return nil
	}

	switch g.State {
	case Bidding:
		if best := g.winningBid(); best != nil && best.Seat == p.Seat {
			// the would-be declarer has gone
			return g.redeal()
		}
		if g.Turn == p.Seat {
			g.Turn = g.nextActiveSeat(p.Seat)
		}
		return g.checkAuctionEnd()
	case Playing:
		if g.onDeclarerSide(p.Seat) && g.Variant != FourPlayer {
			// the declarer stands alone in these variants; abandon the hand
			return g.redeal()
		}
		if g.Declaration != nil && g.Declaration.Seat == p.Seat {
			return g.redeal()
		}
		if g.Turn == p.Seat {
			g.Turn = g.nextActiveSeat(p.Seat)
		}
		if g.CurrentTrick != nil && g.trickComplete() {
			return g.resolveTrick()
		}
	}
	return nil
}

func (g *Game) removeWaitingPlayer(p *Player) {
	ps := make([]*Player, 0, len(g.Players)-1)
	for _, q := range g.Players {
		if q.ID != p.ID {
			ps = append(ps, q)
		}
	}
	for i, q := range ps {
		q.Seat = i
	}
	g.Players = ps
}

// startHand shuffles, deals for the variant and opens the auction with the
// seat left of the dealer.
func (g *Game) startHand() error {
	d := deck.New()
	if err := d.Shuffle(); err != nil {
		return err
	}

	for _, p := range g.Players {
		p.Hand = nil
		p.Stock = nil
	}
	g.Table = nil

	switch g.Variant {
	case FourPlayer:
		for _, p := range g.Players {
			p.Hand = d.Deal(8)
		}
	case ThreePlayer:
		for _, p := range g.Players {
			p.Hand = d.Deal(10)
		}
		g.Table = d.Deal(2)
	case TwoPlayer:
		for _, p := range g.Players {
			p.Hand = d.Deal(8)
		}
		for _, p := range g.Players {
			p.Stock = make([]StockSlot, 4)
			for i := range p.Stock {
				down := d.Deal(1)[0]
				up := d.Deal(1)[0]
				p.Stock[i] = StockSlot{Up: &up, Down: &down}
			}
		}
	}

	g.State = Bidding
	g.Bids = nil
	g.PassStreak = 0
	g.Declaration = nil
	g.TableExchanged = false
	g.CurrentTrick = nil
	g.CompletedTricks = nil
	g.Turn = g.nextActiveSeat(g.Dealer)
	return nil
}

// redeal abandons the current hand: dealer rotates and the pack goes round
// again. A valid outcome, not an error.
func (g *Game) redeal() error {
	g.Dealer = g.nextActiveSeat(g.Dealer)
	return g.startHand()
}

// availableCards returns the cards a player can currently reach: the hand,
// plus any face-up stock cards in the two-player game.
func (p *Player) availableCards() []deck.Card {
	cards := make([]deck.Card, 0, len(p.Hand)+len(p.Stock))
	cards = append(cards, p.Hand...)
	for _, s := range p.Stock {
		if s.Up != nil {
			cards = append(cards, *s.Up)
		}
	}
	return cards
}

func (p *Player) outOfCards() bool {
	if len(p.Hand) > 0 {
		return false
	}
	for _, s := range p.Stock {
		if s.Up != nil || s.Down != nil {
			return false
		}
	}
	return true
}

// removeCard takes the card out of the player's hand, or clears the face-up
// stock slot holding it. Reports whether the card was found.
func (p *Player) removeCard(card deck.Card) bool {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	for i := range p.Stock {
		if p.Stock[i].Up != nil && *p.Stock[i].Up == card {
			p.Stock[i].Up = nil
			return true
		}
	}
	return false
}

// flipStock reveals any face-down stock card whose cover has been played.
// Called at trick end, never mid-trick.
func (g *Game) flipStock() {
	for _, p := range g.Players {
		for i := range p.Stock {
			if p.Stock[i].Up == nil && p.Stock[i].Down != nil {
				p.Stock[i].Up, p.Stock[i].Down = p.Stock[i].Down, nil
			}
		}
	}
}
