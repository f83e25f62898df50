// Package deck holds the draw pile for one game.
package deck

import (
	"math/rand"
	"time"

	"github.com/louisbranch/staredown/internal/game/card"
	"github.com/louisbranch/staredown/internal/random"
)

// Size is the number of cards in a full deck.
const Size = 54

// Deck is a stack of cards drawn from the top. The top is the last element.
type Deck struct {
	cards []card.Card
	rng   *rand.Rand
}

// Canonical returns the full composition in insertion order: every rank of
// hearts, diamonds, clubs and spades, then two jokers.
func Canonical() []card.Card {
	cards := make([]card.Card, 0, Size)
	for _, suit := range card.Suits {
		for _, rank := range card.Ranks {
			cards = append(cards, card.MustNew(suit, rank))
		}
	}
	return append(cards, card.Joker(), card.Joker())
}

// New builds a full deck and shuffles it with rng.
// A nil rng is replaced by a time-seeded source.
func New(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = random.New(time.Now().UnixNano())
	}
	d := &Deck{cards: Canonical(), rng: rng}
	d.Shuffle()
	return d
}

// NewSeeded builds a full deck shuffled by a source seeded with seed.
func NewSeeded(seed int64) *Deck {
	return New(random.New(seed))
}

// NewStacked returns a deck holding cards in the given order without
// shuffling. The last card is drawn first.
func NewStacked(cards []card.Card) *Deck {
	return &Deck{
		cards: append([]card.Card(nil), cards...),
		rng:   random.New(int64(len(cards))),
	}
}

// Shuffle permutes the remaining cards uniformly (Fisher-Yates).
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card. It reports false when the deck
// is exhausted; an empty deck is a normal state.
func (d *Deck) Draw() (card.Card, bool) {
	if len(d.cards) == 0 {
		return card.Card{}, false
	}
	top := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return top, true
}

func (d *Deck) HasCards() bool { return len(d.cards) > 0 }
func (d *Deck) Len() int       { return len(d.cards) }

// Cards returns a copy of the remaining cards, bottom first.
func (d *Deck) Cards() []card.Card {
	return append([]card.Card(nil), d.cards...)
}
