// Package card defines the immutable playing card and its scoring rules.
package card

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/staredown/internal/platform/errors"
)

//go:generate stringer -type=Suit,Rank -linecomment

// Suit is one of the four standard suits or the Joker marker.
type Suit int

const (
	SuitHearts   Suit = iota // Hearts
	SuitDiamonds             // Diamonds
	SuitClubs                // Clubs
	SuitSpades               // Spades
	SuitJoker                // Joker
)

// Suits lists the four standard suits in deck construction order.
var Suits = []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Rank orders the ranks from lowest to highest base value.
type Rank int

const (
	Rank3     Rank = iota // 3
	Rank4                 // 4
	Rank5                 // 5
	Rank6                 // 6
	Rank7                 // 7
	Rank8                 // 8
	Rank9                 // 9
	Rank10                // 10
	RankJack              // J
	RankQueen             // Q
	RankKing              // K
	RankAce               // A
	Rank2                 // 2
	RankJoker             // Joker
)

// Ranks lists the thirteen standard ranks in deck construction order.
var Ranks = []Rank{Rank3, Rank4, Rank5, Rank6, Rank7, Rank8, Rank9, Rank10, RankJack, RankQueen, RankKing, RankAce, Rank2}

// BaseValue is the rank's value before any suit transform.
func (r Rank) BaseValue() int {
	switch {
	case r >= Rank3 && r <= Rank10:
		return int(r-Rank3) + 3
	case r == RankJack, r == RankQueen, r == RankKing:
		return 10
	case r == RankAce:
		return 15
	case r == Rank2:
		return 20
	case r == RankJoker:
		return 25
	default:
		return 0
	}
}

// Symbol is the short suit glyph used in compact notation.
func (s Suit) Symbol() string {
	switch s {
	case SuitHearts:
		return "♥"
	case SuitDiamonds:
		return "♦"
	case SuitClubs:
		return "♣"
	case SuitSpades:
		return "♠"
	default:
		return ""
	}
}

// Card is a single playing card. The zero value is not a valid card.
type Card struct {
	suit Suit
	rank Rank
	base int
}

// New returns the card for suit and rank. Jokers must use SuitJoker with
// RankJoker and standard ranks must use a standard suit.
func New(suit Suit, rank Rank) (Card, error) {
	if (suit == SuitJoker) != (rank == RankJoker) || suit < SuitHearts || suit > SuitJoker || rank < Rank3 || rank > RankJoker {
		return Card{}, apperrors.WithMetadata(apperrors.CodeInvalidCard,
			fmt.Sprintf("invalid card suit %d rank %d", suit, rank),
			map[string]string{"Card": fmt.Sprintf("%v/%v", suit, rank)})
	}
	return Card{suit: suit, rank: rank, base: rank.BaseValue()}, nil
}

// MustNew is New for known-good suit and rank pairs.
func MustNew(suit Suit, rank Rank) Card {
	c, err := New(suit, rank)
	if err != nil {
		panic(err)
	}
	return c
}

// Joker returns a joker card.
func Joker() Card {
	return MustNew(SuitJoker, RankJoker)
}

func (c Card) Suit() Suit     { return c.suit }
func (c Card) Rank() Rank     { return c.rank }
func (c Card) BaseValue() int { return c.base }

// IsZero reports whether c is the zero value rather than a dealt card.
func (c Card) IsZero() bool {
	return c == Card{}
}

// PointValue is the card's effective value: spades double, hearts add two,
// diamonds lose one, clubs and jokers are unchanged. It is never negative.
func (c Card) PointValue() int {
	value := c.base
	switch c.suit {
	case SuitSpades:
		value *= 2
	case SuitHearts:
		value += 2
	case SuitDiamonds:
		value--
	}
	return max(value, 0)
}

// String returns the long description, e.g. "Q of Spades" or "Joker".
func (c Card) String() string {
	if c.suit == SuitJoker {
		return RankJoker.String()
	}
	return fmt.Sprintf("%s of %s", c.rank, c.suit)
}

// Short returns the compact notation, e.g. "Q♠" or "JK".
func (c Card) Short() string {
	if c.suit == SuitJoker {
		return "JK"
	}
	return c.rank.String() + c.suit.Symbol()
}

// Shorts renders cards in compact notation separated by spaces.
func Shorts(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.Short()
	}
	return strings.Join(parts, " ")
}
