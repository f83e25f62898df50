package player

import "github.com/louisbranch/staredown/internal/game/card"

// EffectKind names a rank side effect.
type EffectKind int

// Jack, queen and king change the player's state. Ace and joker effects
// are announced only.
const (
	EffectBonus EffectKind = iota + 1
	EffectPenalty
	EffectSkip
	EffectOpponentDraw
	EffectRemoveHighest
)

func (k EffectKind) String() string {
	switch k {
	case EffectBonus:
		return "bonus"
	case EffectPenalty:
		return "penalty"
	case EffectSkip:
		return "skip"
	case EffectOpponentDraw:
		return "opponent_draw"
	case EffectRemoveHighest:
		return "remove_highest"
	default:
		return "none"
	}
}

// Effect is the side effect triggered by one played card.
type Effect struct {
	Card       card.Card
	Kind       EffectKind
	ScoreDelta int
}

// Informational reports whether the effect is announced without changing
// any state.
func (e Effect) Informational() bool {
	return e.Kind == EffectOpponentDraw || e.Kind == EffectRemoveHighest
}

// EffectFor returns the side effect of playing c, if its rank has one.
func EffectFor(c card.Card) (Effect, bool) {
	switch c.Rank() {
	case card.RankJack:
		return Effect{Card: c, Kind: EffectBonus, ScoreDelta: 5}, true
	case card.RankQueen:
		return Effect{Card: c, Kind: EffectPenalty, ScoreDelta: -5}, true
	case card.RankKing:
		return Effect{Card: c, Kind: EffectSkip, ScoreDelta: 10}, true
	case card.RankAce:
		return Effect{Card: c, Kind: EffectOpponentDraw}, true
	case card.RankJoker:
		return Effect{Card: c, Kind: EffectRemoveHighest}, true
	default:
		return Effect{}, false
	}
}

func (p *Player) apply(e Effect) {
	p.Score += e.ScoreDelta
	if e.Kind == EffectSkip {
		p.SkipNextTurn = true
	}
}
