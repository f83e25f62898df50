package scenario

import (
	"bytes"
	"context"
	"log"
	"path/filepath"
	"strings"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.Logger = log.New(&bytes.Buffer{}, "", 0)
	return cfg
}

func TestScenarioFiles(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.lua"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(paths) < 5 {
		t.Fatalf("found %d scenario files", len(paths))
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			if err := RunFile(context.Background(), quietConfig(), path); err != nil {
				t.Fatalf("run %s: %v", path, err)
			}
		})
	}
}

const wrongScore = `local scene = Scenario.new("wrong_score")
scene:setup({a = {hand = "3C 4C"}, b = {hand = "5D"}})
scene:play(0)
scene:expect({score_a = 99})
scene:expect({active = "b"})
return scene
`

func TestStrictModeStopsAtFailedExpectation(t *testing.T) {
	path := writeScenarioFixture(t, wrongScore)
	err := RunFile(context.Background(), quietConfig(), path)
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(err.Error(), "step 3 (expect)") || !strings.Contains(err.Error(), "score_a: got 3, want 99") {
		t.Fatalf("err = %v", err)
	}
}

func TestLogOnlyModeKeepsGoing(t *testing.T) {
	var logs bytes.Buffer
	cfg := quietConfig()
	cfg.Assertions = AssertionLogOnly
	cfg.Logger = log.New(&logs, "", 0)

	scenario, err := LoadScenarioFromFile(writeScenarioFixture(t, wrongScore))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	runner := NewRunner(cfg)
	if err := runner.RunScenario(context.Background(), scenario); err != nil {
		t.Fatalf("run: %v", err)
	}
	if runner.Failures() != 1 {
		t.Fatalf("failures = %d, want 1", runner.Failures())
	}
	if !strings.Contains(logs.String(), "expectation failed: score_a: got 3, want 99") {
		t.Fatalf("logs = %q", logs.String())
	}
}

func TestUnexpectedRejectionFails(t *testing.T) {
	path := writeScenarioFixture(t, `local scene = Scenario.new("unexpected")
scene:setup({a = {hand = "3C"}, b = {hand = "5D"}, pile = "9C"})
scene:play(0)
scene:draw()
return scene
`)
	err := RunFile(context.Background(), quietConfig(), path)
	if err == nil || !strings.Contains(err.Error(), "rejected without an expectation") {
		t.Fatalf("err = %v", err)
	}
}

func TestTrailingRejectionFails(t *testing.T) {
	path := writeScenarioFixture(t, `local scene = Scenario.new("trailing")
scene:setup({a = {hand = "3C"}, b = {hand = "5D"}, pile = "9C"})
scene:play(0)
return scene
`)
	if err := RunFile(context.Background(), quietConfig(), path); err == nil {
		t.Fatal("expected failure for an unchecked rejection")
	}
}

func TestExpectedRejectionThatDidNotHappen(t *testing.T) {
	path := writeScenarioFixture(t, `local scene = Scenario.new("accepted")
scene:setup({a = {hand = "3C 4C"}, b = {hand = "5D"}})
scene:play(0)
scene:expect({rejected = "ILLEGAL_MOVE"})
return scene
`)
	err := RunFile(context.Background(), quietConfig(), path)
	if err == nil || !strings.Contains(err.Error(), "move was accepted") {
		t.Fatalf("err = %v", err)
	}
}

func TestSetupErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"bad card", `scene:setup({a = {hand = "1Z"}})`, "seat a hand"},
		{"duplicate card", `scene:setup({a = {hand = "3C"}, b = {hand = "3C"}})`, "invalid setup"},
		{"bad active", `scene:setup({active = "c"})`, "active"},
		{"unknown expectation", `scene:setup({}) scene:expect({mood = "calm"})`, "unknown expectation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenarioFixture(t, "local scene = Scenario.new()\n"+tt.script+"\nreturn scene\n")
			cfg := quietConfig()
			cfg.Assertions = AssertionLogOnly
			err := RunFile(context.Background(), cfg, path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestMoveBeforeSetupFails(t *testing.T) {
	runner := NewRunner(quietConfig())
	err := runner.RunScenario(context.Background(), &Scenario{Name: "no_setup", Steps: []Step{{Kind: "draw"}}})
	if err == nil || !strings.Contains(err.Error(), "draw before setup") {
		t.Fatalf("err = %v", err)
	}
	if err := runner.RunScenario(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil scenario")
	}
}

func TestVerboseLogsSteps(t *testing.T) {
	var logs bytes.Buffer
	cfg := quietConfig()
	cfg.Verbose = true
	cfg.Logger = log.New(&logs, "", 0)

	if err := RunFile(context.Background(), cfg, filepath.Join("testdata", "opening_single.lua")); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{"scenario start: opening_single (4 steps)", "turn 1: Ana play 0, next b", "scenario done: opening_single"} {
		if !strings.Contains(logs.String(), want) {
			t.Fatalf("missing %q in:\n%s", want, logs.String())
		}
	}
}

func TestGamesUseConfiguredTracer(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	cfg := quietConfig()
	cfg.Tracer = sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)).Tracer("test")

	if err := RunFile(context.Background(), cfg, filepath.Join("testdata", "bot_game.lua")); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, span := range sr.Ended() {
		if span.Name() == "staredown.game" {
			return
		}
	}
	t.Fatal("expected a game span")
}
