package deck

import "testing"

func TestPermanentTrumps(t *testing.T) {
	permanents := []Card{
		NewCard(Queen, Clubs),
		NewCard(Queen, Spades),
		NewCard(Jack, Clubs),
		NewCard(Jack, Spades),
		NewCard(Jack, Hearts),
		NewCard(Jack, Diamonds),
	}

	count := 0
	for _, c := range New() {
		if c.IsPermanentTrump() {
			count++
		}
	}
	if count != 6 {
		t.Fatalf("expected 6 permanent trumps in the pack, got %d", count)
	}

	// fixed order, regardless of declared suit
	for _, trump := range AllSuits() {
		for i := 0; i < len(permanents); i++ {
			for j := i + 1; j < len(permanents); j++ {
				hi, lo := permanents[i], permanents[j]
				if !hi.Beats(lo, trump, Hearts) {
					t.Errorf("trump %s: %s should beat %s", trump, hi, lo)
				}
				if lo.Beats(hi, trump, Hearts) {
					t.Errorf("trump %s: %s should not beat %s", trump, lo, hi)
				}
			}
		}
	}

	if NewCard(Queen, Hearts).IsPermanentTrump() {
		t.Error("red queens are not permanent trumps")
	}
}

func TestBeats(t *testing.T) {
	tt := []struct {
		name       string
		a, b       Card
		trump, led Suit
		want       bool
	}{
		{
			name: "lowest trump beats non-trump ace",
			a:    NewCard(Seven, Clubs), b: NewCard(Ace, Hearts),
			trump: Clubs, led: Hearts,
			want: true,
		},
		{
			name: "permanent trump beats trump suit ace",
			a:    NewCard(Jack, Diamonds), b: NewCard(Ace, Clubs),
			trump: Clubs, led: Clubs,
			want: true,
		},
		{
			name: "trump suit ace loses to permanent trump",
			a:    NewCard(Ace, Hearts), b: NewCard(Jack, Diamonds),
			trump: Hearts, led: Hearts,
			want: false,
		},
		{
			name: "within trump suit by rank",
			a:    NewCard(Ace, Hearts), b: NewCard(King, Hearts),
			trump: Hearts, led: Hearts,
			want: true,
		},
		{
			name: "red queen ranks inside its own trump suit",
			a:    NewCard(Queen, Hearts), b: NewCard(Ten, Hearts),
			trump: Hearts, led: Hearts,
			want: true,
		},
		{
			name: "red queen of trump loses to ace of trump",
			a:    NewCard(Queen, Hearts), b: NewCard(Ace, Hearts),
			trump: Hearts, led: Hearts,
			want: false,
		},
		{
			name: "led suit beats off-suit",
			a:    NewCard(Nine, Spades), b: NewCard(Ace, Diamonds),
			trump: Clubs, led: Spades,
			want: true,
		},
		{
			name: "off-suit cannot beat anything",
			a:    NewCard(Ace, Diamonds), b: NewCard(Nine, Spades),
			trump: Clubs, led: Spades,
			want: false,
		},
		{
			name: "within led suit by rank",
			a:    NewCard(King, Spades), b: NewCard(Queen, Spades),
			trump: Clubs, led: Spades,
			want: true,
		},
		{
			name: "a lone low trump beats a plain ace",
			a:    NewCard(Seven, Clubs), b: NewCard(Ace, Hearts),
			trump: Clubs, led: Hearts,
			want: true,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Beats(tc.b, tc.trump, tc.led); got != tc.want {
				t.Errorf("%s vs %s (trump %s, led %s): got %v, want %v",
					tc.a, tc.b, tc.trump, tc.led, got, tc.want)
			}
		})
	}
}

func TestEffectiveSuit(t *testing.T) {
	tt := []struct {
		card  Card
		trump Suit
		want  Suit
	}{
		{NewCard(Jack, Diamonds), Clubs, Clubs},
		{NewCard(Queen, Spades), Hearts, Hearts},
		{NewCard(Queen, Hearts), Clubs, Hearts},
		{NewCard(Ace, Hearts), Hearts, Hearts},
		{NewCard(Nine, Diamonds), Clubs, Diamonds},
	}

	for _, tc := range tt {
		if got := tc.card.EffectiveSuit(tc.trump); got != tc.want {
			t.Errorf("%s with trump %s: got %s, want %s", tc.card, tc.trump, got, tc.want)
		}
	}
}
