// Package simulation plays batches of bot-versus-bot games.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/louisbranch/staredown/internal/game/bot"
	"github.com/louisbranch/staredown/internal/game/engine"
	"github.com/louisbranch/staredown/internal/game/player"
	"github.com/louisbranch/staredown/internal/platform/logging"
	"github.com/louisbranch/staredown/internal/platform/otel"
	"github.com/louisbranch/staredown/internal/random"
)

// DefaultMaxTurns bounds a simulated game.
const DefaultMaxTurns = 500

// ErrNoGames is returned when a batch asks for no games.
var ErrNoGames = errors.New("simulation needs at least one game")

// Config configures a batch.
type Config struct {
	Games int
	// Seed derives every game's deck. Zero picks a random seed.
	Seed int64
	// Workers bounds concurrent games. Zero uses GOMAXPROCS.
	Workers int
	// MaxTurns ends a game by score. Zero uses DefaultMaxTurns.
	MaxTurns int

	Logger *zap.Logger
	Tracer trace.Tracer
}

// GameResult is the summary of one simulated game.
type GameResult struct {
	Index  int
	Seed   int64
	Result engine.Result
	Turns  int
}

// Stats aggregates a batch.
type Stats struct {
	Seed       int64
	Games      int
	Wins       [2]int
	Ties       int
	ByReason   map[engine.Reason]int
	TotalTurns int
	TotalScore [2]int
	Results    []GameResult
}

// MeanTurns is the average number of applied turns per game.
func (s Stats) MeanTurns() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.Games)
}

// MeanScore is the average final score of seat.
func (s Stats) MeanScore(seat int) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalScore[seat]) / float64(s.Games)
}

// Seeds derives n game seeds from seed.
func Seeds(seed int64, n int) []int64 {
	rng := random.New(seed)
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}
	return seeds
}

// Run plays cfg.Games games. Results do not depend on the number of
// workers.
func Run(ctx context.Context, cfg Config) (Stats, error) {
	if cfg.Games <= 0 {
		return Stats{}, ErrNoGames
	}
	seed := cfg.Seed
	if seed == 0 {
		var err error
		if seed, err = random.NewSeed(); err != nil {
			return Stats{}, fmt.Errorf("batch seed: %w", err)
		}
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	maxTurns := cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	logger := logging.OrNop(cfg.Logger)
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer()
	}

	ctx, span := tracer.Start(ctx, "staredown.simulate", trace.WithAttributes(
		attribute.Int("sim.games", cfg.Games),
		attribute.Int64("sim.seed", seed),
		attribute.Int("sim.workers", workers),
	))
	defer span.End()

	seeds := Seeds(seed, cfg.Games)
	results := make([]GameResult, cfg.Games)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, gameSeed := range seeds {
		group.Go(func() error {
			result, err := playOne(ctx, i, gameSeed, maxTurns, logger, tracer)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, gameSeed, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Stats{}, err
	}

	stats := aggregate(seed, results)
	span.SetAttributes(
		attribute.Int("sim.wins.a", stats.Wins[0]),
		attribute.Int("sim.wins.b", stats.Wins[1]),
		attribute.Int("sim.ties", stats.Ties),
	)
	logger.Info("simulation finished",
		zap.Int64("seed", seed),
		zap.Int("games", stats.Games),
		zap.Int("wins_a", stats.Wins[0]),
		zap.Int("wins_b", stats.Wins[1]),
		zap.Int("ties", stats.Ties),
		zap.Float64("mean_turns", stats.MeanTurns()),
	)
	return stats, nil
}

func playOne(ctx context.Context, index int, seed int64, maxTurns int, logger *zap.Logger, tracer trace.Tracer) (GameResult, error) {
	g, err := engine.New(engine.Config{
		ID: fmt.Sprintf("sim-%d", index),
		Players: [2]engine.Seat{
			{Name: "Player A", Controller: player.ControllerAI, Decider: bot.New()},
			{Name: "Player B", Controller: player.ControllerAI, Decider: bot.New()},
		},
		Rand:     random.New(seed),
		Seed:     seed,
		MaxTurns: maxTurns,
		Logger:   logger,
		Tracer:   tracer,
	})
	if err != nil {
		return GameResult{}, err
	}
	result, err := g.Run(ctx, nil)
	if err != nil {
		return GameResult{}, err
	}
	return GameResult{Index: index, Seed: seed, Result: result, Turns: g.Turns()}, nil
}

func aggregate(seed int64, results []GameResult) Stats {
	stats := Stats{
		Seed:     seed,
		Games:    len(results),
		ByReason: map[engine.Reason]int{},
		Results:  results,
	}
	for _, r := range results {
		if r.Result.Tie() {
			stats.Ties++
		} else {
			stats.Wins[r.Result.Winner]++
		}
		stats.ByReason[r.Result.Reason]++
		stats.TotalTurns += r.Turns
		for seat := range stats.TotalScore {
			stats.TotalScore[seat] += r.Result.Standings[seat].Score
		}
	}
	return stats
}
