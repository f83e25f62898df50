package card

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/staredown/internal/platform/errors"
)

var suitCodes = map[string]Suit{
	"H": SuitHearts, "♥": SuitHearts,
	"D": SuitDiamonds, "♦": SuitDiamonds,
	"C": SuitClubs, "♣": SuitClubs,
	"S": SuitSpades, "♠": SuitSpades,
}

var rankCodes = map[string]Rank{
	"3": Rank3, "4": Rank4, "5": Rank5, "6": Rank6, "7": Rank7, "8": Rank8,
	"9": Rank9, "10": Rank10, "J": RankJack, "Q": RankQueen, "K": RankKing,
	"A": RankAce, "2": Rank2,
}

// Parse reads compact notation: a rank (3-10, J, Q, K, A, 2) followed by a
// suit letter or glyph, as in "10H", "q♠" or "2c". "JK" and "Joker" parse
// as a joker.
func Parse(s string) (Card, error) {
	text := strings.ToUpper(strings.TrimSpace(s))
	if text == "JK" || text == "JOKER" {
		return Joker(), nil
	}
	for code, suit := range suitCodes {
		rankText, ok := strings.CutSuffix(text, code)
		if !ok {
			continue
		}
		if rank, ok := rankCodes[rankText]; ok {
			return New(suit, rank)
		}
	}
	return Card{}, apperrors.WithMetadata(apperrors.CodeInvalidCard,
		fmt.Sprintf("parse card %q", s),
		map[string]string{"Card": s})
}

// ParseList parses space- or comma-separated compact notation.
func ParseList(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	cards := make([]Card, 0, len(fields))
	for _, field := range fields {
		c, err := Parse(field)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseList is ParseList for literal fixtures.
func MustParseList(s string) []Card {
	cards, err := ParseList(s)
	if err != nil {
		panic(err)
	}
	return cards
}
