package scenario

import (
	"context"
	"fmt"
	"sort"

	"github.com/louisbranch/staredown/internal/game/bot"
	"github.com/louisbranch/staredown/internal/game/card"
	"github.com/louisbranch/staredown/internal/game/deck"
	"github.com/louisbranch/staredown/internal/game/engine"
	"github.com/louisbranch/staredown/internal/game/player"
	apperrors "github.com/louisbranch/staredown/internal/platform/errors"
)

var seatKeys = [2]string{"a", "b"}

func (r *Runner) runStep(ctx context.Context, state *scenarioState, step Step) error {
	if step.Kind != "setup" && state.game == nil {
		return r.failf("%s before setup", step.Kind)
	}
	if step.Kind != "expect" && state.rejected != nil {
		rejected := state.rejected
		state.rejected = nil
		if err := r.assertf("move was rejected without an expectation: %v", rejected); err != nil {
			return err
		}
	}

	switch step.Kind {
	case "setup":
		return r.runSetupStep(state, step)
	case "play":
		return r.runPlayStep(ctx, state, step)
	case "draw":
		report, err := state.game.SubmitDraw(ctx)
		return r.recordMove(state, report, err)
	case "ai":
		return r.runAIStep(ctx, state, step)
	case "run":
		return r.runRunStep(ctx, state)
	case "expect":
		return r.runExpectStep(state, step)
	default:
		return fmt.Errorf("unknown step kind %q", step.Kind)
	}
}

func (r *Runner) runSetupStep(state *scenarioState, step Step) error {
	if state.game != nil {
		return r.failf("setup may run only once")
	}
	args := step.Args

	var layout engine.Layout
	cfg := engine.Config{
		ID:       optionalString(args, "id", "scenario"),
		MaxTurns: optionalInt(args, "max_turns", 0),
		HandSize: optionalInt(args, "hand_size", 0),
		Logger:   r.gameLogger,
		Tracer:   r.tracer,
	}
	for i, key := range seatKeys {
		seatArgs, _ := args[key].(map[string]any)
		seat := engine.Seat{
			Name:       optionalString(seatArgs, "name", fmt.Sprintf("Player %s", key)),
			Controller: player.ControllerHuman,
		}
		if optionalBool(seatArgs, "ai", false) {
			seat.Controller = player.ControllerAI
			seat.Decider = bot.New()
		}
		cfg.Players[i] = seat

		cards, err := readCards(seatArgs, "hand")
		if err != nil {
			return r.failf("seat %s hand: %w", key, err)
		}
		layout.Hands[i] = cards
		layout.Scores[i] = optionalInt(seatArgs, "score", 0)
		layout.Skip[i] = optionalBool(seatArgs, "skip", false)
	}

	drawOrder, err := readCards(args, "deck")
	if err != nil {
		return r.failf("deck: %w", err)
	}

	var g *engine.Game
	seed, seeded := readInt(args, "seed")
	if seeded || optionalBool(args, "deal", false) {
		if seeded {
			cfg.Seed = int64(seed)
		} else {
			cfg.Deck = deck.NewStacked(reversed(drawOrder))
		}
		g, err = engine.New(cfg)
	} else {
		layout.Deck = reversed(drawOrder)
		if layout.Pile, err = readCards(args, "pile"); err != nil {
			return r.failf("pile: %w", err)
		}
		if layout.Active, err = seatIndex(optionalString(args, "active", "a")); err != nil {
			return r.failf("active: %w", err)
		}
		layout.FreePlay = optionalBool(args, "free_play", false)
		g, err = engine.NewWithLayout(cfg, layout)
	}
	if err != nil {
		return r.failf("setup: %w", err)
	}
	state.game = g
	r.logf("setup: deck %d, pile %d, %s to act", g.DeckSize(), len(g.Pile()), g.View().ActiveName)
	return nil
}

func (r *Runner) runPlayStep(ctx context.Context, state *scenarioState, step Step) error {
	indexes, ok := readIntList(step.Args, "indexes")
	if !ok {
		return r.failf("play indexes must be integers")
	}
	report, err := state.game.SubmitSelection(ctx, indexes...)
	return r.recordMove(state, report, err)
}

func (r *Runner) runAIStep(ctx context.Context, state *scenarioState, step Step) error {
	turns := optionalInt(step.Args, "turns", 1)
	for range turns {
		report, err := state.game.Step(ctx)
		if err := r.recordMove(state, report, err); err != nil || state.rejected != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runRunStep(ctx context.Context, state *scenarioState) error {
	result, err := state.game.Run(ctx, nil)
	if err != nil {
		return r.recordMove(state, engine.TurnReport{}, err)
	}
	r.logf("run: %s after %d turns (%s)", winnerLabel(result), state.game.Turns(), result.Reason)
	return nil
}

// recordMove keeps coded game errors for the next expect step and fails on
// anything else.
func (r *Runner) recordMove(state *scenarioState, report engine.TurnReport, err error) error {
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.CodeUnknown {
			return r.failf("move failed: %w", err)
		}
		r.logf("move rejected: %v", err)
		state.rejected = err
		return nil
	}
	state.last = report
	r.logf("turn %d: %s %s, next %s", report.Turn, report.Player, report.Action, seatKeys[report.Next])
	return nil
}

func (r *Runner) runExpectStep(state *scenarioState, step Step) error {
	keys := make([]string, 0, len(step.Args))
	for key := range step.Args {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	if _, ok := step.Args["rejected"]; !ok && state.rejected != nil {
		rejected := state.rejected
		state.rejected = nil
		if err := r.assertf("move was rejected without an expectation: %v", rejected); err != nil {
			return err
		}
	}

	for _, key := range keys {
		check, ok := expectations[key]
		if !ok {
			return r.failf("unknown expectation %q", key)
		}
		if problem := check(state, step.Args[key]); problem != "" {
			if err := r.assertf("%s: %s", key, problem); err != nil {
				return err
			}
		}
	}
	return nil
}

// expectation returns a description of the mismatch, or "" when the state
// matches want.
type expectation func(state *scenarioState, want any) string

var expectations = map[string]expectation{
	"rejected":   expectRejected,
	"score_a":    expectSeat(0, func(s engine.SeatState) any { return s.Score }),
	"score_b":    expectSeat(1, func(s engine.SeatState) any { return s.Score }),
	"skip_a":     expectSeat(0, func(s engine.SeatState) any { return s.SkipNextTurn }),
	"skip_b":     expectSeat(1, func(s engine.SeatState) any { return s.SkipNextTurn }),
	"hand_a":     expectHand(0),
	"hand_b":     expectHand(1),
	"pile":       expectPile,
	"pile_size":  expectView(func(v engine.View) any { return v.PileSize }),
	"deck":       expectView(func(v engine.View) any { return v.DeckSize }),
	"turns":      expectView(func(v engine.View) any { return v.Turn }),
	"free_play":  expectView(func(v engine.View) any { return v.FreePlay }),
	"phase":      expectView(func(v engine.View) any { return v.Phase.String() }),
	"active":     expectView(func(v engine.View) any { return seatKeys[v.Active] }),
	"winner":     expectWinner,
	"reason":     expectReason,
	"points":     expectLast(func(t engine.TurnReport) any { return t.Outcome.Points }),
	"extra_turn": expectLast(func(t engine.TurnReport) any { return hasEvent(t, engine.EventExtraTurn) }),
}

func expectRejected(state *scenarioState, want any) string {
	code, _ := want.(string)
	rejected := state.rejected
	state.rejected = nil
	if rejected == nil {
		return fmt.Sprintf("want %s, move was accepted", code)
	}
	if got := apperrors.CodeOf(rejected); string(got) != code {
		return fmt.Sprintf("got %s (%v), want %s", got, rejected, code)
	}
	return ""
}

func expectSeat(seat int, field func(engine.SeatState) any) expectation {
	return func(state *scenarioState, want any) string {
		return mismatch(field(state.game.Seat(seat)), want)
	}
}

func expectView(field func(engine.View) any) expectation {
	return func(state *scenarioState, want any) string {
		return mismatch(field(state.game.View()), want)
	}
}

func expectLast(field func(engine.TurnReport) any) expectation {
	return func(state *scenarioState, want any) string {
		return mismatch(field(state.last), want)
	}
}

// expectHand accepts a card count or the exact cards in order.
func expectHand(seat int) expectation {
	return func(state *scenarioState, want any) string {
		held := state.game.Seat(seat).Hand
		if text, ok := want.(string); ok {
			return cardsMismatch(held, text)
		}
		return mismatch(len(held), want)
	}
}

func expectPile(state *scenarioState, want any) string {
	text, ok := want.(string)
	if !ok {
		return fmt.Sprintf("want cards as a string, got %v", want)
	}
	return cardsMismatch(state.game.Pile(), text)
}

func expectWinner(state *scenarioState, want any) string {
	result, over := state.game.Result()
	if !over {
		return "game is not over"
	}
	return mismatch(winnerLabel(result), want)
}

func expectReason(state *scenarioState, want any) string {
	result, over := state.game.Result()
	if !over {
		return "game is not over"
	}
	return mismatch(result.Reason.String(), want)
}

func mismatch(got, want any) string {
	if got == want {
		return ""
	}
	return fmt.Sprintf("got %v, want %v", got, want)
}

func cardsMismatch(got []card.Card, want string) string {
	expected, err := card.ParseList(want)
	if err != nil {
		return err.Error()
	}
	if card.Shorts(got) != card.Shorts(expected) {
		return fmt.Sprintf("got [%s], want [%s]", card.Shorts(got), card.Shorts(expected))
	}
	return ""
}

func hasEvent(report engine.TurnReport, kind engine.EventKind) bool {
	for _, e := range report.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func winnerLabel(result engine.Result) string {
	if result.Tie() {
		return "tie"
	}
	return seatKeys[result.Winner]
}
