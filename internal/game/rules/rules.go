// Package rules decides whether a group of cards may be played on the pile.
//
// Every predicate compares the first card of the played group with the first
// card of the pile's trailing group of the same size. Singles may tie the
// pile; pairs and bombs must beat it.
package rules

import "github.com/louisbranch/staredown/internal/game/card"

// Combination classifies a played group.
type Combination int

const (
	CombinationInvalid Combination = iota
	CombinationSingle
	CombinationPair
	CombinationBomb
)

func (c Combination) String() string {
	switch c {
	case CombinationSingle:
		return "single"
	case CombinationPair:
		return "pair"
	case CombinationBomb:
		return "bomb"
	default:
		return "invalid"
	}
}

// Classify returns the combination formed by cards, ignoring the pile.
func Classify(cards []card.Card) Combination {
	switch {
	case len(cards) == 1:
		return CombinationSingle
	case len(cards) == 2 && sameRank(cards):
		return CombinationPair
	case len(cards) == 4 && sameRank(cards):
		return CombinationBomb
	default:
		return CombinationInvalid
	}
}

// IsValidSingle reports whether c opens an empty pile or matches or beats
// the last card played.
func IsValidSingle(c card.Card, pile []card.Card) bool {
	if len(pile) == 0 {
		return true
	}
	return c.PointValue() >= pile[len(pile)-1].PointValue()
}

// IsValidPair reports whether cards form a pair that opens a pile shorter
// than two cards or strictly beats the pile's trailing two.
func IsValidPair(cards []card.Card, pile []card.Card) bool {
	return isValidGroup(cards, pile, 2)
}

// IsValidBomb reports whether cards form four of a kind that opens a pile
// shorter than four cards or strictly beats the pile's trailing four.
func IsValidBomb(cards []card.Card, pile []card.Card) bool {
	return isValidGroup(cards, pile, 4)
}

// IsLegal reports whether cards may be played. Free play accepts any
// non-empty group; otherwise the group must be a legal single, pair or bomb.
func IsLegal(cards []card.Card, pile []card.Card, freePlay bool) bool {
	if len(cards) == 0 {
		return false
	}
	if freePlay {
		return true
	}
	switch len(cards) {
	case 1:
		return IsValidSingle(cards[0], pile)
	case 2:
		return IsValidPair(cards, pile)
	case 4:
		return IsValidBomb(cards, pile)
	default:
		return false
	}
}

func isValidGroup(cards []card.Card, pile []card.Card, size int) bool {
	if len(cards) != size || !sameRank(cards) {
		return false
	}
	if len(pile) < size {
		return true
	}
	return cards[0].PointValue() > pile[len(pile)-size].PointValue()
}

func sameRank(cards []card.Card) bool {
	for _, c := range cards[1:] {
		if c.Rank() != cards[0].Rank() {
			return false
		}
	}
	return true
}
