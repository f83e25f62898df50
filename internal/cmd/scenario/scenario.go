// Package scenario parses scenario command flags and runs a Lua scenario.
package scenario

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"time"

	"go.uber.org/zap"

	entrypoint "github.com/louisbranch/staredown/internal/platform/cmd"
	"github.com/louisbranch/staredown/internal/platform/logging"
	"github.com/louisbranch/staredown/internal/tools/scenario"
)

// Config holds scenario command configuration.
type Config struct {
	Scenario   string        `env:"STAREDOWN_SCENARIO_FILE"`
	Assertions bool          `env:"STAREDOWN_SCENARIO_ASSERT"   envDefault:"true"`
	Verbose    bool          `env:"STAREDOWN_SCENARIO_VERBOSE"`
	Timeout    time.Duration `env:"STAREDOWN_SCENARIO_TIMEOUT"  envDefault:"10s"`
	LogLevel   string        `env:"STAREDOWN_LOG_LEVEL"         envDefault:"off"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
	fs.BoolVar(&cfg.Assertions, "assert", cfg.Assertions, "enable assertions (disable to log expectations)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout per step")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "game log level written to stderr (off to disable)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the scenario command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if cfg.Scenario == "" {
		return errors.New("scenario path is required")
	}

	mode := scenario.AssertionStrict
	if !cfg.Assertions {
		mode = scenario.AssertionLogOnly
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceScenario, func(ctx context.Context) error {
		gameLogger, err := logging.New(cfg.LogLevel, errOut)
		if err != nil {
			return err
		}
		defer func() { _ = gameLogger.Sync() }()

		loaded, err := scenario.LoadScenarioFromFile(cfg.Scenario)
		if err != nil {
			return err
		}
		runner := scenario.NewRunner(scenario.Config{
			Timeout:    cfg.Timeout,
			Assertions: mode,
			Verbose:    cfg.Verbose,
			Logger:     log.New(errOut, "", 0),
			GameLogger: gameLogger.With(zap.String("service", entrypoint.ServiceScenario)),
		})
		if err := runner.RunScenario(ctx, loaded); err != nil {
			return fmt.Errorf("scenario %s: %w", loaded.Name, err)
		}
		if failures := runner.Failures(); failures > 0 {
			fmt.Fprintf(out, "%s: %d expectation(s) failed\n", loaded.Name, failures)
			return nil
		}
		fmt.Fprintf(out, "%s: ok\n", loaded.Name)
		return nil
	})
}
