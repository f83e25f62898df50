package engine

import (
	"github.com/louisbranch/staredown/internal/game/card"
	"github.com/louisbranch/staredown/internal/game/player"
)

// HandEntry is one selectable card of the active hand.
type HandEntry struct {
	Index       int
	Card        card.Card
	Description string
	PointValue  int
}

// View is the state shown to the shell after each action. Active is the
// seat that acts next.
type View struct {
	GameID           string
	Phase            Phase
	Turn             int
	Active           int
	ActiveName       string
	ActiveController player.Controller
	Hand             []HandEntry
	Standings        [2]Standing
	PileSize         int
	PileTop          card.Card
	DeckSize         int
	FreePlay         bool
	Result           Result
}

// HasPileTop reports whether any card has been played.
func (v View) HasPileTop() bool {
	return v.PileSize > 0
}

// Over reports whether the game has finished.
func (v View) Over() bool {
	return v.Phase == PhaseOver
}

// SeatState is a read-only copy of one seat.
type SeatState struct {
	Name         string
	Controller   player.Controller
	Score        int
	SkipNextTurn bool
	Hand         []card.Card
}

// View returns the current view.
func (g *Game) View() View {
	active := g.players[g.active]
	cards := active.Hand.Cards()
	entries := make([]HandEntry, len(cards))
	for i, c := range cards {
		entries[i] = HandEntry{Index: i, Card: c, Description: c.String(), PointValue: c.PointValue()}
	}
	v := View{
		GameID:           g.id,
		Phase:            g.phase,
		Turn:             g.turns,
		Active:           g.active,
		ActiveName:       active.Name,
		ActiveController: active.Controller,
		Hand:             entries,
		Standings:        g.standings(),
		PileSize:         len(g.pile),
		DeckSize:         g.deck.Len(),
		FreePlay:         g.freePlay,
		Result:           g.result,
	}
	if len(g.pile) > 0 {
		v.PileTop = g.pile[len(g.pile)-1]
	}
	return v
}

// Seat returns a copy of seat's state. Seat panics on an index other than
// 0 or 1.
func (g *Game) Seat(seat int) SeatState {
	p := g.players[seat]
	return SeatState{
		Name:         p.Name,
		Controller:   p.Controller,
		Score:        p.Score,
		SkipNextTurn: p.SkipNextTurn,
		Hand:         p.Hand.Cards(),
	}
}

func (g *Game) standings() [2]Standing {
	var out [2]Standing
	for i, p := range g.players {
		out[i] = Standing{Name: p.Name, Score: p.Score, Cards: p.Hand.Len()}
	}
	return out
}
