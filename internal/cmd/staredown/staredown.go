// Package staredown parses the play command configuration and runs a game
// in the console.
package staredown

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/louisbranch/staredown/internal/game/bot"
	"github.com/louisbranch/staredown/internal/game/engine"
	"github.com/louisbranch/staredown/internal/game/player"
	entrypoint "github.com/louisbranch/staredown/internal/platform/cmd"
	"github.com/louisbranch/staredown/internal/platform/logging"
)

// Game modes.
const (
	ModePvE = "pve"
	ModePvP = "pvp"
)

// ErrInvalidMode is returned for a mode other than pve or pvp.
var ErrInvalidMode = errors.New("mode must be pve or pvp")

// Config holds play command configuration.
type Config struct {
	Mode     string        `env:"STAREDOWN_MODE"      envDefault:"pve"`
	PlayerA  string        `env:"STAREDOWN_PLAYER_A"  envDefault:"Player 1"`
	PlayerB  string        `env:"STAREDOWN_PLAYER_B"`
	Seed     int64         `env:"STAREDOWN_SEED"`
	Locale   string        `env:"STAREDOWN_LOCALE"    envDefault:"en-US"`
	Color    bool          `env:"STAREDOWN_COLOR"     envDefault:"true"`
	LogLevel string        `env:"STAREDOWN_LOG_LEVEL" envDefault:"warn"`
	AIDelay  time.Duration `env:"STAREDOWN_AI_DELAY"  envDefault:"600ms"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "pve against the computer or pvp for two players")
	fs.StringVar(&cfg.PlayerA, "player-a", cfg.PlayerA, "name of the first player")
	fs.StringVar(&cfg.PlayerB, "player-b", cfg.PlayerB, "name of the second player")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "deck seed (0 picks one at random)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "message locale")
	fs.BoolVar(&cfg.Color, "color", cfg.Color, "color suits and prompts")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level written to stderr (off to disable)")
	fs.DurationVar(&cfg.AIDelay, "ai-delay", cfg.AIDelay, "pause before each computer move")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))
	if cfg.Mode != ModePvE && cfg.Mode != ModePvP {
		return Config{}, fmt.Errorf("%w: %q", ErrInvalidMode, cfg.Mode)
	}
	return cfg, nil
}

// Run plays one game on the terminal.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePlay, func(ctx context.Context) error {
		logger, err := logging.New(cfg.LogLevel, errOut)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		line := liner.NewLiner()
		defer line.Close()
		line.SetCtrlCAborts(true)

		return Play(ctx, cfg, line, out, logger)
	})
}

// Play runs a game reading human input from prompter and writing the table
// to out. Quitting is not an error.
func Play(ctx context.Context, cfg Config, prompter Prompter, out io.Writer, logger *zap.Logger) error {
	r := NewRenderer(out, cfg.Locale, cfg.Color)
	reader := &Console{Prompter: prompter, Renderer: r}
	human := player.HumanInput{Lines: reader}

	nameB := cfg.PlayerB
	seats := [2]engine.Seat{{Name: cfg.PlayerA, Controller: player.ControllerHuman, Decider: human}}
	if cfg.Mode == ModePvP {
		if nameB == "" {
			nameB = "Player 2"
		}
		seats[1] = engine.Seat{Name: nameB, Controller: player.ControllerHuman, Decider: human}
	} else {
		if nameB == "" {
			nameB = "Computer"
		}
		seats[1] = engine.Seat{
			Name:       nameB,
			Controller: player.ControllerAI,
			Decider:    Paced{Decider: bot.New(), Delay: cfg.AIDelay, Renderer: r},
		}
	}

	g, err := engine.New(engine.Config{
		Players: seats,
		Seed:    cfg.Seed,
		Logger:  logger,
	})
	if err != nil {
		return errors.New(r.Error(err))
	}

	view := g.View()
	r.Banner(cfg.Mode, view.Standings[0].Name, view.Standings[1].Name)
	r.Turn(view)

	result, err := g.Run(ctx, &Narrator{Renderer: r})
	if errors.Is(err, ErrQuit) {
		r.Quit()
		return nil
	}
	if err != nil {
		return err
	}
	r.Result(result)
	return nil
}
