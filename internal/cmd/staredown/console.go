package staredown

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/louisbranch/staredown/internal/game/player"
)

// ErrQuit is returned by the console when the player leaves the game.
var ErrQuit = errors.New("quit")

// Prompter reads one line after printing prompt. *liner.State satisfies it.
type Prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

var _ Prompter = (*liner.State)(nil)

// Console reads human moves. It handles help and quit itself and hands
// every other line to the game.
type Console struct {
	Prompter Prompter
	Renderer *Renderer
}

// ReadLine implements player.LineReader.
func (c *Console) ReadLine(ctx context.Context, s player.Situation) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		input, err := c.Prompter.Prompt(c.Renderer.Prompt(s.Player))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return "", ErrQuit
			}
			return "", err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		c.Prompter.AppendHistory(input)

		switch strings.ToLower(input) {
		case "help", "h", "?":
			c.Renderer.Help()
		case "quit", "exit", "q":
			return "", ErrQuit
		default:
			return input, nil
		}
	}
}

// Paced wraps an automated decider with an announcement and a pause, so
// computer moves can be followed on screen.
type Paced struct {
	Decider  player.Decider
	Delay    time.Duration
	Renderer *Renderer
}

// Decide implements player.Decider.
func (p Paced) Decide(ctx context.Context, s player.Situation) (player.Action, error) {
	p.Renderer.Thinking(s.Player)
	if p.Delay > 0 {
		timer := time.NewTimer(p.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return player.Action{}, ctx.Err()
		case <-timer.C:
		}
	}
	return p.Decider.Decide(ctx, s)
}
