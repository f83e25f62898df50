package player

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/louisbranch/staredown/internal/game/card"
	"github.com/louisbranch/staredown/internal/game/hand"
	apperrors "github.com/louisbranch/staredown/internal/platform/errors"
)

// ActionKind tags an Action.
type ActionKind int

const (
	ActionDraw ActionKind = iota
	ActionPlay
)

// Action is a turn decision: draw a card or play the cards at Indexes.
type Action struct {
	Kind    ActionKind
	Indexes []int
	// Trusted plays skip the pair and bomb ordering checks. Automated
	// strategies set it when the group was built around a legal single.
	Trusted bool
}

// Draw returns the draw action.
func Draw() Action {
	return Action{Kind: ActionDraw}
}

// Play returns a play of the cards at indexes.
func Play(indexes ...int) Action {
	return Action{Kind: ActionPlay, Indexes: indexes}
}

func (a Action) String() string {
	if a.Kind == ActionDraw {
		return "draw"
	}
	parts := make([]string, len(a.Indexes))
	for i, index := range a.Indexes {
		parts[i] = strconv.Itoa(index)
	}
	return "play " + strings.Join(parts, " ")
}

// ParseAction reads a console answer: "draw" in any case, or card indexes
// separated by spaces.
func ParseAction(line string) (Action, error) {
	text := strings.TrimSpace(line)
	if strings.EqualFold(text, "draw") {
		return Draw(), nil
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Action{}, apperrors.WithMetadata(apperrors.CodeInvalidSelection, "empty selection", nil)
	}
	indexes := make([]int, 0, len(fields))
	for _, field := range fields {
		index, err := strconv.Atoi(field)
		if err != nil {
			return Action{}, apperrors.WrapWithMetadata(apperrors.CodeInvalidSelection,
				fmt.Sprintf("selection %q is not an index", field), nil, err)
		}
		indexes = append(indexes, index)
	}
	return Play(indexes...), nil
}

// Situation is what a Decider sees on its turn. Hand is a copy.
type Situation struct {
	Player   string
	Hand     *hand.Hand
	Pile     []card.Card
	FreePlay bool
}

// Decider chooses the action for a player's turn.
type Decider interface {
	Decide(ctx context.Context, s Situation) (Action, error)
}

// DeciderFunc adapts a function to Decider.
type DeciderFunc func(ctx context.Context, s Situation) (Action, error)

func (f DeciderFunc) Decide(ctx context.Context, s Situation) (Action, error) {
	return f(ctx, s)
}

// LineReader supplies one line of human input per call.
type LineReader interface {
	ReadLine(ctx context.Context, s Situation) (string, error)
}

// HumanInput decides by parsing lines typed by a person. Unparseable lines
// come back as INVALID_SELECTION so the caller can ask again.
type HumanInput struct {
	Lines LineReader
}

func (h HumanInput) Decide(ctx context.Context, s Situation) (Action, error) {
	line, err := h.Lines.ReadLine(ctx, s)
	if err != nil {
		return Action{}, err
	}
	action, err := ParseAction(line)
	if err != nil && s.Hand != nil {
		return Action{}, s.Hand.InvalidSelection(fmt.Sprintf("cannot read %q", line), err)
	}
	return action, err
}
