package engine

// Reason says how a game ended.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonEmptyHand
	ReasonScore
	ReasonFewerCards
	ReasonTie
)

func (r Reason) String() string {
	switch r {
	case ReasonEmptyHand:
		return "empty_hand"
	case ReasonScore:
		return "score"
	case ReasonFewerCards:
		return "fewer_cards"
	case ReasonTie:
		return "tie"
	default:
		return "none"
	}
}

// Standing is one player's score line.
type Standing struct {
	Name  string
	Score int
	Cards int
}

// Result is the outcome of a finished game. Winner is the winning seat, or
// -1 for a tie.
type Result struct {
	Winner    int
	Reason    Reason
	Standings [2]Standing
}

// Tie reports whether nobody won.
func (r Result) Tie() bool {
	return r.Winner < 0
}

// WinnerName returns the winner's name, or "" for a tie.
func (r Result) WinnerName() string {
	if r.Tie() {
		return ""
	}
	return r.Standings[r.Winner].Name
}

// LoserName returns the losing player's name, or "" for a tie.
func (r Result) LoserName() string {
	if r.Tie() {
		return ""
	}
	return r.Standings[1-r.Winner].Name
}

// DecideByScore ranks two standings when play runs out. The higher score
// wins. On equal scores the player holding strictly fewer cards loses; equal
// card counts tie.
func DecideByScore(a, b Standing) Result {
	result := Result{Standings: [2]Standing{a, b}}
	switch {
	case a.Score > b.Score:
		result.Winner, result.Reason = 0, ReasonScore
	case b.Score > a.Score:
		result.Winner, result.Reason = 1, ReasonScore
	case a.Cards < b.Cards:
		result.Winner, result.Reason = 1, ReasonFewerCards
	case b.Cards < a.Cards:
		result.Winner, result.Reason = 0, ReasonFewerCards
	default:
		result.Winner, result.Reason = -1, ReasonTie
	}
	return result
}
