package staredown

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/message"

	"github.com/louisbranch/staredown/internal/game/card"
	"github.com/louisbranch/staredown/internal/game/engine"
	"github.com/louisbranch/staredown/internal/game/player"
	apperrors "github.com/louisbranch/staredown/internal/platform/errors"
	"github.com/louisbranch/staredown/internal/platform/i18n/catalog"
)

type palette struct {
	Red, Black, Joker  *color.Color
	Header, Info, Warn *color.Color
	Win                *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		Red:    color.New(color.FgRed),
		Black:  color.New(color.FgHiWhite),
		Joker:  color.New(color.FgMagenta, color.Bold),
		Header: color.New(color.FgWhite, color.Bold),
		Info:   color.New(color.FgCyan),
		Warn:   color.New(color.FgHiYellow),
		Win:    color.New(color.FgGreen, color.Bold),
	}
	if !enabled {
		for _, c := range []*color.Color{p.Red, p.Black, p.Joker, p.Header, p.Info, p.Warn, p.Win} {
			c.DisableColor()
		}
	}
	return p
}

// Renderer writes localized game text to the console.
type Renderer struct {
	out    io.Writer
	locale string
	p      *message.Printer
	c      palette
}

// NewRenderer returns a renderer for locale. Unknown locales fall back to
// en-US.
func NewRenderer(out io.Writer, locale string, colors bool) *Renderer {
	bundle := catalog.Default()
	return &Renderer{
		out:    out,
		locale: bundle.ResolveLocale(locale),
		p:      bundle.Printer(locale),
		c:      newPalette(colors),
	}
}

// CardName is the localized long name of c, e.g. "Queen of Spades".
func (r *Renderer) CardName(c card.Card) string {
	if c.Rank() == card.RankJoker {
		return r.p.Sprintf("core.rank.joker")
	}
	return r.p.Sprintf("core.card.of", r.rankName(c.Rank()), r.suitName(c.Suit()))
}

func (r *Renderer) rankName(rank card.Rank) string {
	switch rank {
	case card.RankJack:
		return r.p.Sprintf("core.rank.jack")
	case card.RankQueen:
		return r.p.Sprintf("core.rank.queen")
	case card.RankKing:
		return r.p.Sprintf("core.rank.king")
	case card.RankAce:
		return r.p.Sprintf("core.rank.ace")
	default:
		return rank.String()
	}
}

func (r *Renderer) suitName(suit card.Suit) string {
	switch suit {
	case card.SuitHearts:
		return r.p.Sprintf("core.suit.hearts")
	case card.SuitDiamonds:
		return r.p.Sprintf("core.suit.diamonds")
	case card.SuitClubs:
		return r.p.Sprintf("core.suit.clubs")
	default:
		return r.p.Sprintf("core.suit.spades")
	}
}

func (r *Renderer) paint(c card.Card, s string) string {
	switch c.Suit() {
	case card.SuitHearts, card.SuitDiamonds:
		return r.c.Red.Sprint(s)
	case card.SuitJoker:
		return r.c.Joker.Sprint(s)
	default:
		return r.c.Black.Sprint(s)
	}
}

func (r *Renderer) cardList(cards []card.Card) string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = r.paint(c, r.CardName(c))
	}
	return strings.Join(names, ", ")
}

func (r *Renderer) table() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Title.Format = text.FormatDefault
	return t
}

// Banner prints the title and the match-up.
func (r *Renderer) Banner(mode, nameA, nameB string) {
	r.c.Header.Fprintln(r.out, r.p.Sprintf("core.title"))
	key := "core.mode.pvp"
	if mode == ModePvE {
		key = "core.mode.pve"
	}
	fmt.Fprintln(r.out, r.p.Sprintf(key, nameA, nameB))
	r.Help()
}

// Help prints the input help.
func (r *Renderer) Help() {
	r.c.Info.Fprintln(r.out, r.p.Sprintf("core.help"))
}

// Prompt is the prompt shown to name.
func (r *Renderer) Prompt(name string) string {
	return r.p.Sprintf("core.prompt", name)
}

// Turn prints the table state before the next action. The hand is shown
// only to human players.
func (r *Renderer) Turn(v engine.View) {
	if v.Over() {
		return
	}
	fmt.Fprintln(r.out)
	r.c.Header.Fprintln(r.out, r.p.Sprintf("core.turn.header", v.ActiveName))
	r.Standings(v.Standings, "")

	if v.HasPileTop() {
		fmt.Fprintln(r.out, r.p.Sprintf("core.status.pile.top", r.paint(v.PileTop, r.CardName(v.PileTop)), v.PileTop.PointValue(), v.PileSize))
	} else {
		fmt.Fprintln(r.out, r.p.Sprintf("core.status.pile.empty"))
	}
	fmt.Fprintln(r.out, r.p.Sprintf("core.status.deck", v.DeckSize))
	if v.FreePlay {
		r.c.Info.Fprintln(r.out, r.p.Sprintf("core.status.free_play"))
	}
	if v.ActiveController == player.ControllerHuman {
		r.Hand(v.Hand)
	}
}

// Hand prints the numbered hand.
func (r *Renderer) Hand(entries []engine.HandEntry) {
	t := r.table()
	t.AppendHeader(table.Row{r.p.Sprintf("core.table.index"), r.p.Sprintf("core.table.card"), r.p.Sprintf("core.table.value")})
	for _, e := range entries {
		t.AppendRow(table.Row{e.Index, r.paint(e.Card, e.Card.Short()+"  "+r.CardName(e.Card)), e.PointValue})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
}

// Standings prints both players' scores and card counts.
func (r *Renderer) Standings(standings [2]engine.Standing, title string) {
	t := r.table()
	if title != "" {
		t.SetTitle(title)
		t.Style().Title.Align = text.AlignCenter
	}
	t.AppendHeader(table.Row{r.p.Sprintf("core.table.player"), r.p.Sprintf("core.table.score"), r.p.Sprintf("core.table.cards")})
	for _, s := range standings {
		t.AppendRow(table.Row{s.Name, s.Score, s.Cards})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
}

// Event prints one turn event. Game over is printed by Result.
func (r *Renderer) Event(e engine.Event) {
	switch e.Kind {
	case engine.EventPlayed:
		fmt.Fprintln(r.out, r.p.Sprintf("core.event.played", e.Player, r.cardList(e.Cards), e.Points))
	case engine.EventDrew:
		if e.DeckEmpty {
			r.c.Warn.Fprintln(r.out, r.p.Sprintf("core.event.drew_empty", e.Player))
		} else {
			fmt.Fprintln(r.out, r.p.Sprintf("core.event.drew", e.Player))
		}
	case engine.EventEffect:
		r.c.Info.Fprintln(r.out, r.effect(e))
	case engine.EventExtraTurn:
		r.c.Info.Fprintln(r.out, r.p.Sprintf("core.event.extra_turn", e.Player))
	}
}

func (r *Renderer) effect(e engine.Event) string {
	switch e.Effect.Kind {
	case player.EffectBonus:
		return r.p.Sprintf("core.effect.jack", e.Player)
	case player.EffectPenalty:
		return r.p.Sprintf("core.effect.queen", e.Player)
	case player.EffectSkip:
		return r.p.Sprintf("core.effect.king", e.Player)
	case player.EffectOpponentDraw:
		return r.p.Sprintf("core.effect.ace")
	default:
		return r.p.Sprintf("core.effect.joker")
	}
}

// Error is the localized text of err.
func (r *Renderer) Error(err error) string {
	return apperrors.Localize(err, r.locale)
}

// Rejection prints a refused move and the hand to choose from again.
func (r *Renderer) Rejection(err error, v engine.View) {
	r.c.Warn.Fprintln(r.out, r.Error(err))
	if v.ActiveController == player.ControllerHuman {
		r.Hand(v.Hand)
	}
}

// Thinking announces a computer move.
func (r *Renderer) Thinking(name string) {
	fmt.Fprintln(r.out, r.p.Sprintf("core.ai.thinking", name))
}

// Result prints how the game ended and the final scores.
func (r *Renderer) Result(result engine.Result) {
	fmt.Fprintln(r.out)
	var line string
	switch result.Reason {
	case engine.ReasonEmptyHand:
		line = r.p.Sprintf("core.result.empty_hand", result.WinnerName())
	case engine.ReasonScore:
		line = r.p.Sprintf("core.result.score", result.WinnerName())
	case engine.ReasonFewerCards:
		line = r.p.Sprintf("core.result.tiebreak", result.LoserName(), result.WinnerName())
	default:
		line = r.p.Sprintf("core.result.tie")
	}
	r.c.Win.Fprintln(r.out, line)
	r.Standings(result.Standings, r.p.Sprintf("core.result.final"))
}

// Quit prints the abandon message.
func (r *Renderer) Quit() {
	fmt.Fprintln(r.out, r.p.Sprintf("core.quit"))
}

// Narrator prints the events of each turn as Run resolves them.
type Narrator struct {
	Renderer *Renderer
}

var _ engine.Observer = (*Narrator)(nil)

// TurnResolved implements engine.Observer.
func (n *Narrator) TurnResolved(report engine.TurnReport, v engine.View) {
	for _, e := range report.Events {
		n.Renderer.Event(e)
	}
	n.Renderer.Turn(v)
}

// MoveRejected implements engine.Observer.
func (n *Narrator) MoveRejected(_ int, err error, v engine.View) {
	n.Renderer.Rejection(err, v)
}
