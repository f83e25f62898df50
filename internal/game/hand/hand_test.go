package hand

import (
	"slices"
	"testing"

	"github.com/louisbranch/staredown/internal/game/card"
	"github.com/louisbranch/staredown/internal/game/deck"
	apperrors "github.com/louisbranch/staredown/internal/platform/errors"
)

func handOf(s string) *Hand {
	return New(card.MustParseList(s)...)
}

func TestAddDrawnFromEmptyDeck(t *testing.T) {
	h := handOf("3C")
	d := deck.NewStacked(nil)

	h.AddDrawn(d.Draw())
	if h.Len() != 1 {
		t.Fatalf("len = %d, want 1", h.Len())
	}

	d = deck.NewStacked(card.MustParseList("4C"))
	h.AddDrawn(d.Draw())
	if got := card.Shorts(h.Cards()); got != "3♣ 4♣" {
		t.Fatalf("hand = %q", got)
	}
}

func TestRemove(t *testing.T) {
	h := handOf("JK 3C JK")
	if !h.Remove(card.Joker()) {
		t.Fatal("expected joker removed")
	}
	if got := card.Shorts(h.Cards()); got != "3♣ JK" {
		t.Fatalf("hand = %q, want one joker left", got)
	}
	if h.Remove(card.MustNew(card.SuitSpades, card.RankAce)) {
		t.Fatal("expected missing card to report false")
	}
	if h.Len() != 2 {
		t.Fatalf("len = %d, want 2", h.Len())
	}
}

func TestCardsAt(t *testing.T) {
	h := handOf("3C 4C 5C")

	got, err := h.CardsAt([]int{2, 0})
	if err != nil {
		t.Fatalf("cards at: %v", err)
	}
	if card.Shorts(got) != "5♣ 3♣" {
		t.Fatalf("cards = %q, want caller order", card.Shorts(got))
	}

	got, err = h.CardsAt([]int{1, 1, 0, 1})
	if err != nil {
		t.Fatalf("cards at duplicates: %v", err)
	}
	if card.Shorts(got) != "4♣ 3♣" {
		t.Fatalf("cards = %q, want duplicates collapsed", card.Shorts(got))
	}
}

func TestCardsAtRejects(t *testing.T) {
	h := handOf("3C 4C")
	tests := []struct {
		name    string
		indexes []int
	}{
		{"empty", nil},
		{"negative", []int{-1}},
		{"past end", []int{0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.CardsAt(tt.indexes)
			if !apperrors.HasCode(err, apperrors.CodeInvalidSelection) {
				t.Fatalf("err = %v, want INVALID_SELECTION", err)
			}
		})
	}
	if h.Len() != 2 {
		t.Fatal("rejection changed the hand")
	}
}

func TestValidMoves(t *testing.T) {
	h := handOf("3C 7C 2S")
	pile := card.MustParseList("5H")

	if got := card.Shorts(h.ValidMoves(pile, false)); got != "7♣ 2♠" {
		t.Fatalf("valid = %q", got)
	}
	if got := h.ValidMoves(pile, true); len(got) != 3 {
		t.Fatalf("free play valid = %d, want 3", len(got))
	}
	if got := h.ValidMoves(nil, false); len(got) != 3 {
		t.Fatalf("empty pile valid = %d, want 3", len(got))
	}
}

func TestPairsAndBombs(t *testing.T) {
	h := handOf("9C 5C 9D 9H 9S 5D 3C")
	nine := card.MustNew(card.SuitSpades, card.Rank9)
	five := card.MustNew(card.SuitHearts, card.Rank5)
	three := card.MustNew(card.SuitHearts, card.Rank3)

	if !h.HasPairFor(nine) || !h.HasBombFor(nine) {
		t.Fatal("expected pair and bomb of nines")
	}
	if got := card.Shorts(h.PairFor(nine)); got != "9♣ 9♦" {
		t.Fatalf("pair = %q, want first two in hand order", got)
	}
	if got := card.Shorts(h.BombFor(nine)); got != "9♣ 9♦ 9♥ 9♠" {
		t.Fatalf("bomb = %q", got)
	}
	if !h.HasPairFor(five) || h.HasBombFor(five) {
		t.Fatal("expected a pair but no bomb of fives")
	}
	if h.HasPairFor(three) || h.PairFor(three) != nil {
		t.Fatal("expected no pair of threes")
	}
	if !slices.Equal(h.IndexesOfRank(card.Rank5), []int{1, 5}) {
		t.Fatalf("indexes = %v", h.IndexesOfRank(card.Rank5))
	}
}

func TestTotalValueAndClone(t *testing.T) {
	h := handOf("3C 5H JK")
	if got := h.TotalValue(); got != 3+7+25 {
		t.Fatalf("total = %d, want 35", got)
	}

	clone := h.Clone()
	clone.Remove(card.Joker())
	if h.Len() != 3 || clone.Len() != 2 {
		t.Fatalf("clone shares storage: %d %d", h.Len(), clone.Len())
	}
	if New().IsEmpty() != true || h.IsEmpty() {
		t.Fatal("IsEmpty mismatch")
	}
}
