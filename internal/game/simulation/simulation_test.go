package simulation

import (
	"context"
	"errors"
	"reflect"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/louisbranch/staredown/internal/game/engine"
)

func TestRunIsDeterministicAcrossWorkers(t *testing.T) {
	serial, err := Run(context.Background(), Config{Games: 24, Seed: 42, Workers: 1})
	if err != nil {
		t.Fatalf("serial: %v", err)
	}
	parallel, err := Run(context.Background(), Config{Games: 24, Seed: 42, Workers: 6})
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}
	if !reflect.DeepEqual(serial, parallel) {
		t.Fatalf("stats differ:\n%+v\n%+v", serial, parallel)
	}
}

func TestRunAggregates(t *testing.T) {
	stats, err := Run(context.Background(), Config{Games: 30, Seed: 7, Workers: 3})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.Games != 30 || stats.Seed != 7 || len(stats.Results) != 30 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.Wins[0]+stats.Wins[1]+stats.Ties != stats.Games {
		t.Fatalf("wins %v ties %d do not add up", stats.Wins, stats.Ties)
	}

	reasons, turns := 0, 0
	for _, n := range stats.ByReason {
		reasons += n
	}
	for i, r := range stats.Results {
		if r.Index != i {
			t.Fatalf("result %d has index %d", i, r.Index)
		}
		if r.Result.Reason == engine.ReasonNone {
			t.Fatalf("game %d has no reason", i)
		}
		turns += r.Turns
	}
	if reasons != stats.Games || turns != stats.TotalTurns {
		t.Fatalf("reasons %d turns %d total %d", reasons, turns, stats.TotalTurns)
	}
	if stats.MeanTurns() <= 0 {
		t.Fatalf("mean turns = %v", stats.MeanTurns())
	}
}

func TestRunRespectsMaxTurns(t *testing.T) {
	stats, err := Run(context.Background(), Config{Games: 10, Seed: 3, MaxTurns: 1})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// Five cards cannot be emptied in a single play.
	if stats.TotalTurns != stats.Games {
		t.Fatalf("total turns = %d, want %d", stats.TotalTurns, stats.Games)
	}
	if stats.ByReason[engine.ReasonEmptyHand] != 0 {
		t.Fatalf("by reason = %v", stats.ByReason)
	}
}

func TestSeeds(t *testing.T) {
	a := Seeds(9, 5)
	b := Seeds(9, 5)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("seeds differ: %v %v", a, b)
	}
	if reflect.DeepEqual(a, Seeds(10, 5)) {
		t.Fatal("expected different batch seeds to differ")
	}
	if got := Seeds(9, 3); !reflect.DeepEqual(got, a[:3]) {
		t.Fatalf("prefix = %v, want %v", got, a[:3])
	}
}

func TestRunErrors(t *testing.T) {
	if _, err := Run(context.Background(), Config{}); !errors.Is(err, ErrNoGames) {
		t.Fatalf("err = %v, want ErrNoGames", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, Config{Games: 4, Seed: 1}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want canceled", err)
	}
}

func TestRunRandomSeed(t *testing.T) {
	stats, err := Run(context.Background(), Config{Games: 2})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if stats.Seed == 0 {
		t.Fatal("expected a generated seed")
	}
}

func TestRunTracesAndLogs(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	core, logs := observer.New(zap.InfoLevel)

	if _, err := Run(context.Background(), Config{
		Games:  3,
		Seed:   11,
		Logger: zap.New(core),
		Tracer: tp.Tracer("test"),
	}); err != nil {
		t.Fatalf("run: %v", err)
	}

	var batch sdktrace.ReadOnlySpan
	games := 0
	for _, span := range sr.Ended() {
		switch span.Name() {
		case "staredown.simulate":
			batch = span
		case "staredown.game":
			games++
		}
	}
	if batch == nil || games != 3 {
		t.Fatalf("batch span %v, %d game spans", batch, games)
	}
	for _, span := range sr.Ended() {
		if span.Name() == "staredown.game" && span.Parent().SpanID() != batch.SpanContext().SpanID() {
			t.Fatal("game span is not a child of the batch span")
		}
	}

	if logs.FilterMessage("simulation finished").Len() != 1 {
		t.Fatal("expected one summary entry")
	}
	if logs.FilterMessage("game over").Len() != 3 {
		t.Fatalf("game over entries = %d", logs.FilterMessage("game over").Len())
	}
}
