// Package engine runs a game of Stare Down: dealing, turn alternation,
// free play after a draw, the extra turn after a king and the final result.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/louisbranch/staredown/internal/game/card"
	"github.com/louisbranch/staredown/internal/game/deck"
	"github.com/louisbranch/staredown/internal/game/hand"
	"github.com/louisbranch/staredown/internal/game/player"
	apperrors "github.com/louisbranch/staredown/internal/platform/errors"
	"github.com/louisbranch/staredown/internal/platform/id"
	"github.com/louisbranch/staredown/internal/platform/logging"
	"github.com/louisbranch/staredown/internal/platform/otel"
	"github.com/louisbranch/staredown/internal/random"
)

// DefaultHandSize is the number of cards dealt to each player.
const DefaultHandSize = 5

// Phase is the engine's lifecycle state.
type Phase int

const (
	PhaseSetup Phase = iota
	PhasePlaying
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseOver:
		return "over"
	default:
		return "setup"
	}
}

// Seat configures one player.
type Seat struct {
	Name       string
	Controller player.Controller
	// Decider is required for Step and Run. Human seats driven only
	// through Submit may leave it nil.
	Decider player.Decider
}

// Config configures a game. Only Players is required.
type Config struct {
	ID      string
	Players [2]Seat

	// Deck replaces the shuffled deck. Otherwise Rand shuffles a new deck,
	// or a source seeded with Seed when Rand is nil. A zero Seed is
	// replaced by a random one. With Rand, Seed is only reported by
	// Game.Seed and should name the seed Rand was built from.
	Deck *deck.Deck
	Rand *rand.Rand
	Seed int64

	HandSize int
	// MaxTurns ends the game by score after that many applied turns.
	// Zero means no limit.
	MaxTurns int

	Logger *zap.Logger
	Tracer trace.Tracer
}

// Layout is an arranged position used instead of dealing.
type Layout struct {
	Hands    [2][]card.Card
	Scores   [2]int
	Skip     [2]bool
	Pile     []card.Card
	Deck     []card.Card // bottom first, last card drawn first
	Active   int
	FreePlay bool
}

// Observer receives progress from Run.
type Observer interface {
	TurnResolved(report TurnReport, view View)
	MoveRejected(seat int, err error, view View)
}

// Game is one game in progress. It is not safe for concurrent use.
type Game struct {
	id       string
	seed     int64
	phase    Phase
	players  [2]*player.Player
	active   int
	deck     *deck.Deck
	pile     []card.Card
	freePlay bool
	turns    int
	maxTurns int
	result   Result

	logger *zap.Logger
	tracer trace.Tracer
}

// New deals a fresh game. Player A (seat 0) acts first.
func New(cfg Config) (*Game, error) {
	g, err := newGame(cfg)
	if err != nil {
		return nil, err
	}

	switch {
	case cfg.Deck != nil:
		g.deck = cfg.Deck
	case cfg.Rand != nil:
		g.seed = cfg.Seed
		g.deck = deck.New(cfg.Rand)
	default:
		seed := cfg.Seed
		if seed == 0 {
			if seed, err = random.NewSeed(); err != nil {
				return nil, apperrors.Wrap(apperrors.CodeInvalidSetup, "seed deck", err)
			}
		}
		g.seed = seed
		g.deck = deck.NewSeeded(seed)
	}

	handSize := cfg.HandSize
	if handSize <= 0 {
		handSize = DefaultHandSize
	}
	if g.deck.Len() < 2*handSize {
		return nil, setupError(fmt.Sprintf("deck has %d cards, %d needed to deal", g.deck.Len(), 2*handSize))
	}
	for _, p := range g.players {
		for range handSize {
			p.Hand.AddDrawn(g.deck.Draw())
		}
	}

	g.phase = PhasePlaying
	g.logger.Info("game dealt",
		zap.Int64("seed", g.seed),
		zap.Int("hand_size", handSize),
		zap.Int("deck", g.deck.Len()),
	)
	return g, nil
}

// NewWithLayout starts a game from an arranged position.
func NewWithLayout(cfg Config, layout Layout) (*Game, error) {
	g, err := newGame(cfg)
	if err != nil {
		return nil, err
	}
	if layout.Active != 0 && layout.Active != 1 {
		return nil, setupError(fmt.Sprintf("active seat %d", layout.Active))
	}
	if err := checkComposition(layout); err != nil {
		return nil, err
	}

	for i, p := range g.players {
		p.Hand = hand.New(layout.Hands[i]...)
		p.Score = layout.Scores[i]
		p.SkipNextTurn = layout.Skip[i]
	}
	g.deck = deck.NewStacked(layout.Deck)
	g.pile = append([]card.Card(nil), layout.Pile...)
	g.active = layout.Active
	g.freePlay = layout.FreePlay
	g.phase = PhasePlaying
	g.logger.Info("game arranged",
		zap.Int("deck", g.deck.Len()),
		zap.Int("pile", len(g.pile)),
	)
	return g, nil
}

func newGame(cfg Config) (*Game, error) {
	gameID := cfg.ID
	if gameID == "" {
		var err error
		if gameID, err = id.NewID(); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInvalidSetup, "game id", err)
		}
	}
	g := &Game{
		id:       gameID,
		maxTurns: cfg.MaxTurns,
		logger:   logging.OrNop(cfg.Logger).With(zap.String("game_id", gameID)),
		tracer:   cfg.Tracer,
		result:   Result{Winner: -1},
	}
	if g.tracer == nil {
		g.tracer = otel.Tracer()
	}
	defaults := [2]string{"Player 1", "Player 2"}
	for i, seat := range cfg.Players {
		name := strings.TrimSpace(seat.Name)
		if name == "" {
			name = defaults[i]
		}
		g.players[i] = player.New(name, seat.Controller, seat.Decider)
	}
	if g.players[0].Name == g.players[1].Name {
		return nil, setupError(fmt.Sprintf("both players are named %q", g.players[0].Name))
	}
	return g, nil
}

func checkComposition(layout Layout) error {
	limit := map[card.Card]int{}
	for _, c := range deck.Canonical() {
		limit[c]++
	}
	groups := [][]card.Card{layout.Hands[0], layout.Hands[1], layout.Pile, layout.Deck}
	for _, group := range groups {
		for _, c := range group {
			if c.IsZero() {
				return setupError("layout holds an empty card")
			}
			limit[c]--
			if limit[c] < 0 {
				return setupError(fmt.Sprintf("%s appears more often than the deck allows", c))
			}
		}
	}
	return nil
}

func setupError(reason string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidSetup, "invalid setup: "+reason, map[string]string{"Reason": reason})
}

func (g *Game) ID() string        { return g.id }
func (g *Game) Seed() int64       { return g.seed }
func (g *Game) Phase() Phase      { return g.phase }
func (g *Game) Active() int       { return g.active }
func (g *Game) FreePlay() bool    { return g.freePlay }
func (g *Game) Turns() int        { return g.turns }
func (g *Game) DeckSize() int     { return g.deck.Len() }
func (g *Game) Pile() []card.Card { return append([]card.Card(nil), g.pile...) }

// Result returns the result once the game is over.
func (g *Game) Result() (Result, bool) {
	return g.result, g.phase == PhaseOver
}

// Step asks the active player's decider for an action and applies it.
// Recoverable rejections leave the game unchanged with the same player
// to act.
func (g *Game) Step(ctx context.Context) (TurnReport, error) {
	if err := g.ensurePlaying(); err != nil {
		return TurnReport{}, err
	}
	actor := g.players[g.active]
	if actor.Decider == nil {
		return TurnReport{}, setupError(fmt.Sprintf("%s has no decider", actor.Name))
	}
	action, err := actor.Decider.Decide(ctx, actor.Situation(g.turnState()))
	if err != nil {
		return TurnReport{}, err
	}
	if actor.Controller == player.ControllerHuman {
		action.Trusted = false
	}
	return g.apply(ctx, action)
}

// Submit applies an action chosen outside the engine for the active human
// player.
func (g *Game) Submit(ctx context.Context, action player.Action) (TurnReport, error) {
	if err := g.ensurePlaying(); err != nil {
		return TurnReport{}, err
	}
	if actor := g.players[g.active]; actor.Controller != player.ControllerHuman {
		return TurnReport{}, apperrors.New(apperrors.CodeNotHumanTurn, fmt.Sprintf("%s is not a human player", actor.Name))
	}
	action.Trusted = false
	return g.apply(ctx, action)
}

// SubmitSelection plays the cards at indexes for the active human player.
func (g *Game) SubmitSelection(ctx context.Context, indexes ...int) (TurnReport, error) {
	return g.Submit(ctx, player.Play(indexes...))
}

// SubmitDraw draws a card for the active human player.
func (g *Game) SubmitDraw(ctx context.Context) (TurnReport, error) {
	return g.Submit(ctx, player.Draw())
}

// Run plays until the game is over, asking each player's decider in turn.
// Recoverable rejections are passed to obs and the same player is asked
// again. obs may be nil.
func (g *Game) Run(ctx context.Context, obs Observer) (Result, error) {
	ctx, span := g.tracer.Start(ctx, "staredown.game", trace.WithAttributes(
		attribute.String("game.id", g.id),
		attribute.String("player.a", g.players[0].Name),
		attribute.String("player.b", g.players[1].Name),
	))
	defer span.End()

	for g.phase == PhasePlaying {
		if err := ctx.Err(); err != nil {
			return g.result, err
		}
		seat := g.active
		report, err := g.Step(ctx)
		if err != nil {
			if apperrors.IsRecoverable(err) {
				if obs != nil {
					obs.MoveRejected(seat, err, g.View())
				}
				continue
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return g.result, err
		}
		if obs != nil {
			obs.TurnResolved(report, g.View())
		}
	}

	span.SetAttributes(
		attribute.Int("game.turns", g.turns),
		attribute.String("game.reason", g.result.Reason.String()),
		attribute.String("game.winner", g.result.WinnerName()),
	)
	return g.result, nil
}

func (g *Game) ensurePlaying() error {
	if g.phase != PhasePlaying {
		return apperrors.New(apperrors.CodeGameOver, fmt.Sprintf("game %s is %s", g.id, g.phase))
	}
	return nil
}

func (g *Game) turnState() player.Turn {
	return player.Turn{Pile: g.pile, FreePlay: g.freePlay}
}

func (g *Game) apply(ctx context.Context, action player.Action) (TurnReport, error) {
	seat := g.active
	actor := g.players[seat]
	_, span := g.tracer.Start(ctx, "staredown.turn", trace.WithAttributes(
		attribute.Int("turn", g.turns+1),
		attribute.String("player", actor.Name),
		attribute.String("action", action.String()),
		attribute.Bool("free_play", g.freePlay),
	))
	defer span.End()

	out, err := actor.Resolve(action, g.turnState(), g.deck)
	if err != nil {
		span.AddEvent("rejected", trace.WithAttributes(attribute.String("code", string(apperrors.CodeOf(err)))))
		g.logger.Debug("move rejected",
			zap.String("player", actor.Name),
			zap.Stringer("action", action),
			zap.Error(err),
		)
		return TurnReport{}, err
	}
	if len(out.Missing) > 0 {
		g.logger.Warn("played cards missing from hand",
			zap.String("player", actor.Name),
			zap.String("cards", card.Shorts(out.Missing)),
		)
	}

	g.pile = out.Pile
	g.turns++
	report := TurnReport{
		Turn:    g.turns,
		Seat:    seat,
		Player:  actor.Name,
		Action:  action,
		Outcome: out,
		Events:  turnEvents(seat, actor.Name, out),
	}
	g.logger.Debug("turn resolved",
		zap.Int("turn", g.turns),
		zap.String("player", actor.Name),
		zap.Bool("drew", out.Drew),
		zap.String("played", card.Shorts(out.Played)),
		zap.Int("score", actor.Score),
		zap.Int("hand", actor.Hand.Len()),
		zap.Int("deck", g.deck.Len()),
	)

	g.freePlay = out.Drew
	if actor.Hand.IsEmpty() {
		g.finish(&report, Result{Winner: seat, Reason: ReasonEmptyHand, Standings: g.standings()})
		span.SetAttributes(attribute.Bool("game.over", true))
		return report, nil
	}

	if actor.SkipNextTurn {
		actor.SkipNextTurn = false
		report.Events = append(report.Events, Event{Kind: EventExtraTurn, Seat: seat, Player: actor.Name})
	} else {
		g.active = 1 - seat
	}
	report.Next = g.active

	exhausted := !g.deck.HasCards() && g.players[g.active].Hand.IsEmpty()
	if exhausted || (g.maxTurns > 0 && g.turns >= g.maxTurns) {
		standings := g.standings()
		g.finish(&report, DecideByScore(standings[0], standings[1]))
		span.SetAttributes(attribute.Bool("game.over", true))
	}
	return report, nil
}

func (g *Game) finish(report *TurnReport, result Result) {
	g.phase = PhaseOver
	g.result = result
	report.Over = true
	report.Next = g.active
	report.Events = append(report.Events, Event{Kind: EventGameOver, Seat: result.Winner, Player: result.WinnerName(), Result: result})
	g.logger.Info("game over",
		zap.String("reason", result.Reason.String()),
		zap.String("winner", result.WinnerName()),
		zap.Int("turns", g.turns),
		zap.Int("score_a", result.Standings[0].Score),
		zap.Int("score_b", result.Standings[1].Score),
	)
}
