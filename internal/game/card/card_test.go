package card

import (
	"testing"

	apperrors "github.com/louisbranch/staredown/internal/platform/errors"
)

func TestBaseValues(t *testing.T) {
	want := map[Rank]int{
		Rank3: 3, Rank4: 4, Rank5: 5, Rank6: 6, Rank7: 7, Rank8: 8, Rank9: 9, Rank10: 10,
		RankJack: 10, RankQueen: 10, RankKing: 10, RankAce: 15, Rank2: 20, RankJoker: 25,
	}
	for rank, value := range want {
		if got := rank.BaseValue(); got != value {
			t.Fatalf("%s base = %d, want %d", rank, got, value)
		}
	}
}

func TestPointValueEveryCard(t *testing.T) {
	for _, suit := range Suits {
		for _, rank := range Ranks {
			c := MustNew(suit, rank)
			base := rank.BaseValue()
			var want int
			switch suit {
			case SuitSpades:
				want = base * 2
			case SuitHearts:
				want = base + 2
			case SuitDiamonds:
				want = base - 1
			case SuitClubs:
				want = base
			}
			if got := c.PointValue(); got != want {
				t.Fatalf("%s point value = %d, want %d", c, got, want)
			}
		}
	}
	if got := Joker().PointValue(); got != 25 {
		t.Fatalf("joker point value = %d, want 25", got)
	}
}

func TestPointValueFloorsAtZero(t *testing.T) {
	low := Card{suit: SuitDiamonds, rank: Rank3, base: 0}
	if got := low.PointValue(); got != 0 {
		t.Fatalf("diamond with base 0 = %d, want 0", got)
	}
	negative := Card{suit: SuitDiamonds, rank: Rank3, base: -4}
	if got := negative.PointValue(); got != 0 {
		t.Fatalf("diamond with base -4 = %d, want 0", got)
	}
}

func TestNewRejectsMixedJoker(t *testing.T) {
	tests := []struct {
		name string
		suit Suit
		rank Rank
	}{
		{"joker rank on hearts", SuitHearts, RankJoker},
		{"joker suit with ace", SuitJoker, RankAce},
		{"out of range suit", Suit(9), Rank3},
		{"out of range rank", SuitClubs, Rank(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.suit, tt.rank)
			if !apperrors.HasCode(err, apperrors.CodeInvalidCard) {
				t.Fatalf("err = %v, want INVALID_CARD", err)
			}
		})
	}
}

func TestStringAndShort(t *testing.T) {
	tests := []struct {
		card  Card
		long  string
		short string
	}{
		{MustNew(SuitSpades, RankQueen), "Q of Spades", "Q♠"},
		{MustNew(SuitHearts, Rank10), "10 of Hearts", "10♥"},
		{Joker(), "Joker", "JK"},
	}
	for _, tt := range tests {
		if got := tt.card.String(); got != tt.long {
			t.Fatalf("String = %q, want %q", got, tt.long)
		}
		if got := tt.card.Short(); got != tt.short {
			t.Fatalf("Short = %q, want %q", got, tt.short)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Card
	}{
		{"3C", MustNew(SuitClubs, Rank3)},
		{"10h", MustNew(SuitHearts, Rank10)},
		{"q♠", MustNew(SuitSpades, RankQueen)},
		{" 2D ", MustNew(SuitDiamonds, Rank2)},
		{"JK", Joker()},
		{"joker", Joker()},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "1C", "11H", "KX", "JKS"} {
		if _, err := Parse(bad); !apperrors.HasCode(err, apperrors.CodeInvalidCard) {
			t.Fatalf("Parse(%q) err = %v, want INVALID_CARD", bad, err)
		}
	}
}

func TestParseList(t *testing.T) {
	cards, err := ParseList("3C, 4C JK")
	if err != nil {
		t.Fatalf("parse list: %v", err)
	}
	if got := Shorts(cards); got != "3♣ 4♣ JK" {
		t.Fatalf("shorts = %q", got)
	}
	if _, err := ParseList("3C ZZ"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestIsZero(t *testing.T) {
	if !(Card{}).IsZero() {
		t.Fatal("expected zero card")
	}
	if MustNew(SuitHearts, Rank3).IsZero() {
		t.Fatal("3 of hearts is not zero")
	}
}
