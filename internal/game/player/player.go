// Package player resolves one player's turn: drawing, validating and
// playing cards, scoring and rank side effects.
package player

import (
	"fmt"

	"github.com/louisbranch/staredown/internal/game/card"
	"github.com/louisbranch/staredown/internal/game/deck"
	"github.com/louisbranch/staredown/internal/game/hand"
	"github.com/louisbranch/staredown/internal/game/rules"
	apperrors "github.com/louisbranch/staredown/internal/platform/errors"
)

// Controller says who makes a player's decisions.
type Controller int

const (
	ControllerHuman Controller = iota
	ControllerAI
)

func (c Controller) String() string {
	if c == ControllerAI {
		return "ai"
	}
	return "human"
}

// Player is one seat at the table.
type Player struct {
	Name         string
	Controller   Controller
	Decider      Decider
	Score        int
	SkipNextTurn bool
	Hand         *hand.Hand
}

// New returns a player with an empty hand.
func New(name string, controller Controller, decider Decider) *Player {
	return &Player{
		Name:       name,
		Controller: controller,
		Decider:    decider,
		Hand:       hand.New(),
	}
}

// Turn is the engine state a resolution reads. Pile is not modified.
type Turn struct {
	Pile     []card.Card
	FreePlay bool
}

// Outcome is the result of a resolved action.
type Outcome struct {
	Drew    bool
	Drawn   card.Card
	DrawnOK bool

	Played  []card.Card
	Points  int
	Effects []Effect
	// Missing lists played cards that were not found in the hand when
	// removed. It is always empty when the selection came from CardsAt.
	Missing []card.Card

	// Pile is the play pile after the action.
	Pile []card.Card
}

// Situation returns what the player's decider sees for turn.
func (p *Player) Situation(turn Turn) Situation {
	return Situation{
		Player:   p.Name,
		Hand:     p.Hand.Clone(),
		Pile:     append([]card.Card(nil), turn.Pile...),
		FreePlay: turn.FreePlay,
	}
}

// Resolve applies action. A draw takes the top card of d when there is one.
// A play must select cards in the hand and be legal for turn; rejections
// return INVALID_SELECTION or ILLEGAL_MOVE and change nothing.
func (p *Player) Resolve(action Action, turn Turn, d *deck.Deck) (Outcome, error) {
	switch action.Kind {
	case ActionDraw:
		drawn, ok := d.Draw()
		p.Hand.AddDrawn(drawn, ok)
		return Outcome{Drew: true, Drawn: drawn, DrawnOK: ok, Pile: turn.Pile}, nil
	case ActionPlay:
		selected, err := p.Hand.CardsAt(action.Indexes)
		if err != nil {
			return Outcome{}, err
		}
		if !action.Trusted && !rules.IsLegal(selected, turn.Pile, turn.FreePlay) {
			return Outcome{}, apperrors.WithMetadata(apperrors.CodeIllegalMove,
				fmt.Sprintf("%s cannot be played on %d card pile", card.Shorts(selected), len(turn.Pile)),
				map[string]string{"Cards": card.Shorts(selected)})
		}
		return p.play(selected, turn.Pile), nil
	default:
		return Outcome{}, apperrors.New(apperrors.CodeInvalidSelection, fmt.Sprintf("unknown action kind %d", action.Kind))
	}
}

func (p *Player) play(selected []card.Card, pile []card.Card) Outcome {
	out := Outcome{
		Played: selected,
		Pile:   make([]card.Card, 0, len(pile)+len(selected)),
	}
	out.Pile = append(out.Pile, pile...)
	for _, c := range selected {
		out.Pile = append(out.Pile, c)
		if !p.Hand.Remove(c) {
			out.Missing = append(out.Missing, c)
		}
		p.Score += c.PointValue()
		out.Points += c.PointValue()
	}
	for _, c := range selected {
		if effect, ok := EffectFor(c); ok {
			p.apply(effect)
			out.Effects = append(out.Effects, effect)
		}
	}
	return out
}
