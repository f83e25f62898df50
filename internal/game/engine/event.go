package engine

import (
	"github.com/louisbranch/staredown/internal/game/card"
	"github.com/louisbranch/staredown/internal/game/player"
)

// EventKind names something that happened during a turn.
type EventKind int

const (
	EventPlayed EventKind = iota + 1
	EventDrew
	EventEffect
	EventExtraTurn
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventPlayed:
		return "played"
	case EventDrew:
		return "drew"
	case EventEffect:
		return "effect"
	case EventExtraTurn:
		return "extra_turn"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is one narratable fact. Only the fields relevant to Kind are set.
type Event struct {
	Kind   EventKind
	Seat   int
	Player string

	// Played
	Cards  []card.Card
	Points int

	// Drew: DeckEmpty is set when there was nothing to draw.
	DeckEmpty bool

	// Effect
	Effect player.Effect

	// GameOver
	Result Result
}

// TurnReport describes one applied turn.
type TurnReport struct {
	Turn    int
	Seat    int
	Player  string
	Action  player.Action
	Outcome player.Outcome
	Events  []Event
	// Next is the seat that acts next. It equals Seat after a king.
	Next int
	Over bool
}

func turnEvents(seat int, name string, out player.Outcome) []Event {
	if out.Drew {
		return []Event{{Kind: EventDrew, Seat: seat, Player: name, DeckEmpty: !out.DrawnOK}}
	}
	events := make([]Event, 0, 1+len(out.Effects))
	events = append(events, Event{Kind: EventPlayed, Seat: seat, Player: name, Cards: out.Played, Points: out.Points})
	for _, effect := range out.Effects {
		events = append(events, Event{Kind: EventEffect, Seat: seat, Player: name, Effect: effect})
	}
	return events
}
