package sjaus

import (
	"fmt"

	"github.com/skansin/sjaus/deck"
)

// Test fixtures shared across the package tests.

func testGame(variant Variant) *Game {
	g := NewGame("TESTID", variant, "p0", "Player 0")
	for i := 1; i < variant.NumPlayers(); i++ {
		if err := g.Join(fmt.Sprintf("p%d", i), fmt.Sprintf("Player %d", i)); err != nil {
			panic(err)
		}
	}
	return g
}

// testBiddingGame returns a started game in the Bidding state. Hands come
// from a real shuffle; bidding validity does not inspect them.
func testBiddingGame(variant Variant) *Game {
	g := testGame(variant)
	if err := g.Start("p0"); err != nil {
		panic(err)
	}
	return g
}

// testPlayingGame returns a game in the Playing state with fixed hands and
// a fixed declaration, bypassing the auction.
func testPlayingGame(variant Variant, trump deck.Suit, declarer int, hands [][]deck.Card) *Game {
	g := testGame(variant)
	g.State = Playing
	g.Declaration = &Declaration{Seat: declarer, Suit: trump, Length: 5}
	g.TableExchanged = true
	g.Turn = declarer
	for i, h := range hands {
		g.Players[i].Hand = append([]deck.Card(nil), h...)
	}
	return g
}

// stubSubscriber records pushes for engine tests
type stubSubscriber struct {
	playerID string
	views    chan GameView
	chats    chan Message
}

func newStubSubscriber(playerID string) *stubSubscriber {
	return &stubSubscriber{
		playerID: playerID,
		views:    make(chan GameView, 16),
		chats:    make(chan Message, 16),
	}
}

func (s *stubSubscriber) PlayerID() string { return s.playerID }

func (s *stubSubscriber) Notify(v GameView) { s.views <- v }

func (s *stubSubscriber) NotifyChat(m Message) { s.chats <- m }
