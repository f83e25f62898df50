// Package hand manages the cards a player holds.
package hand

import (
	"fmt"
	"strconv"

	"github.com/louisbranch/staredown/internal/game/card"
	"github.com/louisbranch/staredown/internal/game/rules"
	apperrors "github.com/louisbranch/staredown/internal/platform/errors"
)

// Hand is an ordered bag of cards. Indexes refer to the current contents
// and shift when cards are removed.
type Hand struct {
	cards []card.Card
}

// New returns a hand holding cards in order.
func New(cards ...card.Card) *Hand {
	return &Hand{cards: append([]card.Card(nil), cards...)}
}

// Add appends c.
func (h *Hand) Add(c card.Card) {
	h.cards = append(h.cards, c)
}

// AddDrawn appends c when ok is set. It accepts the result of deck.Draw
// directly so an empty draw leaves the hand unchanged.
func (h *Hand) AddDrawn(c card.Card, ok bool) {
	if ok {
		h.Add(c)
	}
}

// Remove removes the first instance of c and reports whether it was held.
func (h *Hand) Remove(c card.Card) bool {
	for i, held := range h.cards {
		if held == c {
			h.cards = append(h.cards[:i], h.cards[i+1:]...)
			return true
		}
	}
	return false
}

// CardsAt returns the cards at indexes in the given order. Repeated indexes
// select the card once. It fails with INVALID_SELECTION when indexes is
// empty or any index is out of range.
func (h *Hand) CardsAt(indexes []int) ([]card.Card, error) {
	if len(indexes) == 0 {
		return nil, h.InvalidSelection("no card selected", nil)
	}
	seen := make(map[int]bool, len(indexes))
	out := make([]card.Card, 0, len(indexes))
	for _, index := range indexes {
		if index < 0 || index >= len(h.cards) {
			return nil, h.InvalidSelection(fmt.Sprintf("index %d out of range [0, %d)", index, len(h.cards)), nil)
		}
		if seen[index] {
			continue
		}
		seen[index] = true
		out = append(out, h.cards[index])
	}
	return out, nil
}

// InvalidSelection returns an INVALID_SELECTION error carrying the hand's
// selectable range.
func (h *Hand) InvalidSelection(message string, cause error) error {
	return apperrors.WrapWithMetadata(apperrors.CodeInvalidSelection, message, map[string]string{
		"Size": strconv.Itoa(max(len(h.cards), 1)),
		"Max":  strconv.Itoa(max(len(h.cards)-1, 0)),
	}, cause)
}

// ValidMoves returns every card when freePlay is set, otherwise the cards
// playable as a single on pile.
func (h *Hand) ValidMoves(pile []card.Card, freePlay bool) []card.Card {
	if freePlay {
		return h.Cards()
	}
	var out []card.Card
	for _, c := range h.cards {
		if rules.IsValidSingle(c, pile) {
			out = append(out, c)
		}
	}
	return out
}

// IndexesOfRank returns the indexes of every held card of rank r.
func (h *Hand) IndexesOfRank(r card.Rank) []int {
	var out []int
	for i, c := range h.cards {
		if c.Rank() == r {
			out = append(out, i)
		}
	}
	return out
}

// HasPairFor reports whether at least two cards share c's rank.
func (h *Hand) HasPairFor(c card.Card) bool {
	return len(h.IndexesOfRank(c.Rank())) >= 2
}

// PairFor returns the first two cards of c's rank in hand order.
func (h *Hand) PairFor(c card.Card) []card.Card {
	indexes := h.IndexesOfRank(c.Rank())
	if len(indexes) < 2 {
		return nil
	}
	return h.at(indexes[:2])
}

// HasBombFor reports whether exactly four cards share c's rank.
func (h *Hand) HasBombFor(c card.Card) bool {
	return len(h.IndexesOfRank(c.Rank())) == 4
}

// BombFor returns every card of c's rank.
func (h *Hand) BombFor(c card.Card) []card.Card {
	return h.at(h.IndexesOfRank(c.Rank()))
}

func (h *Hand) at(indexes []int) []card.Card {
	out := make([]card.Card, len(indexes))
	for i, index := range indexes {
		out[i] = h.cards[index]
	}
	return out
}

func (h *Hand) IsEmpty() bool { return len(h.cards) == 0 }
func (h *Hand) Len() int      { return len(h.cards) }

// TotalValue sums the point values of every held card.
func (h *Hand) TotalValue() int {
	total := 0
	for _, c := range h.cards {
		total += c.PointValue()
	}
	return total
}

// Cards returns a copy of the held cards in index order.
func (h *Hand) Cards() []card.Card {
	return append([]card.Card(nil), h.cards...)
}

// Clone returns an independent copy of h.
func (h *Hand) Clone() *Hand {
	return New(h.cards...)
}
