// Package simulate parses simulate command flags and prints batch results.
package simulate

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"go.uber.org/zap"

	"github.com/louisbranch/staredown/internal/game/engine"
	"github.com/louisbranch/staredown/internal/game/simulation"
	entrypoint "github.com/louisbranch/staredown/internal/platform/cmd"
	"github.com/louisbranch/staredown/internal/platform/i18n/catalog"
	"github.com/louisbranch/staredown/internal/platform/logging"
)

// Config holds simulate command configuration.
type Config struct {
	Games    int    `env:"STAREDOWN_SIM_GAMES"     envDefault:"1000"`
	Seed     int64  `env:"STAREDOWN_SIM_SEED"`
	Workers  int    `env:"STAREDOWN_SIM_WORKERS"`
	MaxTurns int    `env:"STAREDOWN_SIM_MAX_TURNS" envDefault:"500"`
	Locale   string `env:"STAREDOWN_LOCALE"        envDefault:"en-US"`
	LogLevel string `env:"STAREDOWN_LOG_LEVEL"     envDefault:"warn"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Games, "games", cfg.Games, "number of games to simulate")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "batch seed (0 picks one at random)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "concurrent games (0 uses every CPU)")
	fs.IntVar(&cfg.MaxTurns, "max-turns", cfg.MaxTurns, "turn limit per game before scoring")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "message locale")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level written to stderr (off to disable)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run simulates the batch and prints a summary table.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSimulate, func(ctx context.Context) error {
		logger, err := logging.New(cfg.LogLevel, errOut)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		stats, err := simulation.Run(ctx, simulation.Config{
			Games:    cfg.Games,
			Seed:     cfg.Seed,
			Workers:  cfg.Workers,
			MaxTurns: cfg.MaxTurns,
			Logger:   logger.With(zap.String("service", entrypoint.ServiceSimulate)),
		})
		if err != nil {
			return err
		}
		Render(out, cfg.Locale, stats)
		return nil
	})
}

// Render writes stats as a table.
func Render(out io.Writer, locale string, stats simulation.Stats) {
	p := catalog.Default().Printer(locale)

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Title.Format = text.FormatDefault
	t.SetTitle(p.Sprintf("core.sim.title", stats.Games, stats.Seed))
	t.Style().Title.Align = text.AlignCenter
	t.AppendHeader(table.Row{
		p.Sprintf("core.table.player"),
		p.Sprintf("core.sim.wins"),
		p.Sprintf("core.sim.mean_score"),
	})
	names := [2]string{"Player A", "Player B"}
	for seat, name := range names {
		t.AppendRow(table.Row{name, stats.Wins[seat], fmt.Sprintf("%.1f", stats.MeanScore(seat))})
	}
	t.AppendSeparator()
	t.AppendRow(table.Row{p.Sprintf("core.sim.ties"), stats.Ties, ""})
	t.AppendRow(table.Row{p.Sprintf("core.sim.by_emptied_hand"), stats.ByReason[engine.ReasonEmptyHand], ""})
	t.AppendRow(table.Row{p.Sprintf("core.sim.turns"), fmt.Sprintf("%.1f", stats.MeanTurns()), ""})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
}
