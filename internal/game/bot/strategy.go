// Package bot implements the automated opponent.
package bot

import (
	"context"

	"github.com/louisbranch/staredown/internal/game/card"
	"github.com/louisbranch/staredown/internal/game/hand"
	"github.com/louisbranch/staredown/internal/game/player"
	"github.com/louisbranch/staredown/internal/game/rules"
)

// Strategy plays the highest-valued legal card, upgraded to a bomb or a
// pair of the same rank when the hand holds one. It draws when no single
// card is playable. Decisions are deterministic.
type Strategy struct{}

// New returns the default strategy.
func New() Strategy {
	return Strategy{}
}

var _ player.Decider = Strategy{}

// Decide implements player.Decider.
func (Strategy) Decide(_ context.Context, s player.Situation) (player.Action, error) {
	return Choose(s.Hand, s.Pile, s.FreePlay), nil
}

// Choose returns the action for h on pile.
func Choose(h *hand.Hand, pile []card.Card, freePlay bool) player.Action {
	cards := h.Cards()
	best := -1
	for i, c := range cards {
		if !freePlay && !rules.IsValidSingle(c, pile) {
			continue
		}
		if best < 0 || c.PointValue() > cards[best].PointValue() {
			best = i
		}
	}
	if best < 0 {
		return player.Draw()
	}

	sameRank := h.IndexesOfRank(cards[best].Rank())
	var indexes []int
	switch {
	case len(sameRank) == 4:
		indexes = sameRank
	case len(sameRank) >= 2:
		indexes = sameRank[:2]
	default:
		indexes = []int{best}
	}
	action := player.Play(indexes...)
	action.Trusted = true
	return action
}
