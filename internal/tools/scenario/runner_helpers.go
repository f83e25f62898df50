package scenario

import (
	"fmt"
	"slices"
	"strings"

	"github.com/louisbranch/staredown/internal/game/card"
)

func readInt(args map[string]any, key string) (int, bool) {
	value, ok := args[key]
	if !ok {
		return 0, false
	}
	switch typed := value.(type) {
	case int:
		return typed, true
	case float64:
		return int(typed), true
	default:
		return 0, false
	}
}

func readIntList(args map[string]any, key string) ([]int, bool) {
	list, ok := args[key].([]any)
	if !ok || len(list) == 0 {
		return nil, false
	}
	out := make([]int, 0, len(list))
	for _, value := range list {
		n, ok := readInt(map[string]any{key: value}, key)
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

func optionalString(args map[string]any, key, fallback string) string {
	value, ok := args[key]
	if !ok {
		return fallback
	}
	text, ok := value.(string)
	if ok && text != "" {
		return text
	}
	return fallback
}

func optionalInt(args map[string]any, key string, fallback int) int {
	value, ok := args[key]
	if !ok {
		return fallback
	}
	switch typed := value.(type) {
	case int:
		return typed
	case float64:
		return int(typed)
	default:
		return fallback
	}
}

func optionalBool(args map[string]any, key string, fallback bool) bool {
	value, ok := args[key]
	if !ok {
		return fallback
	}
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		lower := strings.ToLower(strings.TrimSpace(typed))
		if lower == "true" || lower == "yes" || lower == "1" {
			return true
		}
		if lower == "false" || lower == "no" || lower == "0" {
			return false
		}
	}
	return fallback
}

// readCards parses a card list written as "3C 4C" or as a Lua list of card
// names. A missing key is an empty list.
func readCards(args map[string]any, key string) ([]card.Card, error) {
	switch value := args[key].(type) {
	case nil:
		return nil, nil
	case string:
		return card.ParseList(value)
	case []any:
		out := make([]card.Card, 0, len(value))
		for _, item := range value {
			text, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("card %v is not a string", item)
			}
			c, err := card.Parse(text)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be a string or a list", key)
	}
}

// reversed turns a draw-order list into the bottom-first order decks use.
func reversed(cards []card.Card) []card.Card {
	out := slices.Clone(cards)
	slices.Reverse(out)
	return out
}

func seatIndex(name string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "a":
		return 0, nil
	case "b":
		return 1, nil
	default:
		return 0, fmt.Errorf("seat %q must be a or b", name)
	}
}
