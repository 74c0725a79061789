package sjaus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skansin/sjaus/deck"
)

func TestBiddingTurnOrder(t *testing.T) {
	g := testBiddingGame(FourPlayer)

	require.Equal(t, Bidding, g.State)
	assert.Equal(t, 0, g.Dealer)
	assert.Equal(t, 1, g.Turn, "bidding starts left of the dealer")

	err := g.DeclareTrump("p0", deck.Hearts, 5)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	err = g.PassTrump("p2")
	assert.ErrorIs(t, err, ErrNotYourTurn)

	require.NoError(t, g.PassTrump("p1"))
	assert.Equal(t, 2, g.Turn)
}

func TestBidValidity(t *testing.T) {
	t.Run("opening bid must be at least five", func(t *testing.T) {
		g := testBiddingGame(FourPlayer)

		err := g.DeclareTrump("p1", deck.Hearts, 4)
		assert.ErrorIs(t, err, ErrInvalidBid)
		assert.Empty(t, g.Bids, "rejected bid must not be recorded")

		assert.NoError(t, g.DeclareTrump("p1", deck.Hearts, 5))
	})

	t.Run("raises must be strictly longer", func(t *testing.T) {
		g := testBiddingGame(FourPlayer)
		require.NoError(t, g.DeclareTrump("p1", deck.Hearts, 6))

		err := g.DeclareTrump("p2", deck.Spades, 6)
		assert.ErrorIs(t, err, ErrInvalidBid)
		err = g.DeclareTrump("p2", deck.Spades, 5)
		assert.ErrorIs(t, err, ErrInvalidBid)

		assert.NoError(t, g.DeclareTrump("p2", deck.Spades, 7))
	})

	t.Run("clubs wins at equal length", func(t *testing.T) {
		g := testBiddingGame(FourPlayer)
		require.NoError(t, g.DeclareTrump("p1", deck.Hearts, 6))

		assert.NoError(t, g.DeclareTrump("p2", deck.Clubs, 6))
	})

	t.Run("equal length clubs over clubs is rejected", func(t *testing.T) {
		g := testBiddingGame(FourPlayer)
		require.NoError(t, g.DeclareTrump("p1", deck.Clubs, 6))

		err := g.DeclareTrump("p2", deck.Clubs, 6)
		assert.ErrorIs(t, err, ErrInvalidBid)
	})

	t.Run("non-clubs cannot match clubs", func(t *testing.T) {
		g := testBiddingGame(FourPlayer)
		require.NoError(t, g.DeclareTrump("p1", deck.Clubs, 6))

		err := g.DeclareTrump("p2", deck.Hearts, 6)
		assert.ErrorIs(t, err, ErrInvalidBid)
	})
}

func TestBidMonotonicity(t *testing.T) {
	g := testBiddingGame(FourPlayer)

	require.NoError(t, g.DeclareTrump("p1", deck.Diamonds, 5))
	require.NoError(t, g.DeclareTrump("p2", deck.Clubs, 5))
	require.NoError(t, g.DeclareTrump("p3", deck.Spades, 6))
	require.NoError(t, g.DeclareTrump("p0", deck.Clubs, 6))

	var prev *Bid
	for i := range g.Bids {
		b := &g.Bids[i]
		if b.Pass {
			continue
		}
		if prev != nil {
			longer := b.Length > prev.Length
			clubsPrivilege := b.Length == prev.Length && b.Suit == deck.Clubs && prev.Suit != deck.Clubs
			assert.True(t, longer || clubsPrivilege, "bid %d does not outrank its predecessor", i)
		}
		prev = b
	}
}

func TestAuctionTermination(t *testing.T) {
	t.Run("ends when all others pass after a bid", func(t *testing.T) {
		g := testBiddingGame(FourPlayer)

		require.NoError(t, g.DeclareTrump("p1", deck.Hearts, 6))
		require.NoError(t, g.PassTrump("p2"))
		require.NoError(t, g.PassTrump("p3"))
		assert.Equal(t, Bidding, g.State)
		require.NoError(t, g.PassTrump("p0"))

		require.Equal(t, Playing, g.State)
		require.NotNil(t, g.Declaration)
		assert.Equal(t, 1, g.Declaration.Seat)
		assert.Equal(t, deck.Hearts, g.Declaration.Suit)
		assert.Equal(t, 6, g.Declaration.Length)
		assert.Equal(t, 1, g.Turn, "declarer leads the first trick")
	})

	t.Run("a raise reopens the auction", func(t *testing.T) {
		g := testBiddingGame(FourPlayer)

		require.NoError(t, g.DeclareTrump("p1", deck.Hearts, 5))
		require.NoError(t, g.PassTrump("p2"))
		require.NoError(t, g.DeclareTrump("p3", deck.Spades, 6))
		require.NoError(t, g.PassTrump("p0"))
		require.NoError(t, g.PassTrump("p1"))
		assert.Equal(t, Bidding, g.State)
		require.NoError(t, g.PassTrump("p2"))

		require.Equal(t, Playing, g.State)
		assert.Equal(t, 3, g.Declaration.Seat)
	})

	t.Run("all passes redeal with the next dealer", func(t *testing.T) {
		g := testBiddingGame(FourPlayer)

		require.NoError(t, g.PassTrump("p1"))
		require.NoError(t, g.PassTrump("p2"))
		require.NoError(t, g.PassTrump("p3"))
		require.NoError(t, g.PassTrump("p0"))

		assert.Equal(t, Bidding, g.State, "redeal restarts the auction")
		assert.Equal(t, 1, g.Dealer, "dealer advances on redeal")
		assert.Equal(t, 2, g.Turn)
		assert.Empty(t, g.Bids)
		for i, p := range g.Players {
			assert.Len(t, p.Hand, 8, "player %d should be redealt a full hand", i)
		}
	})

	t.Run("two player auction", func(t *testing.T) {
		g := testBiddingGame(TwoPlayer)

		require.NoError(t, g.DeclareTrump("p1", deck.Diamonds, 5))
		require.NoError(t, g.PassTrump("p0"))

		require.Equal(t, Playing, g.State)
		assert.Equal(t, 1, g.Declaration.Seat)
	})
}

func TestBiddingWrongPhase(t *testing.T) {
	g := testGame(FourPlayer)

	err := g.DeclareTrump("p1", deck.Hearts, 5)
	assert.ErrorIs(t, err, ErrWrongPhase)

	err = g.PassTrump("p1")
	assert.ErrorIs(t, err, ErrWrongPhase)

	err = g.DeclareTrump("nobody", deck.Hearts, 5)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}
