package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/castello/castello-go/internal/client"
	"github.com/castello/castello-go/internal/model"
	"github.com/castello/castello-go/internal/session"
	"github.com/castello/castello-go/internal/view"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
		return
	}

	switch v := data.(type) {
	case client.AuthResult:
		fmt.Printf("User: %s (%s)\n", v.Username, v.UserID)
		fmt.Printf("Token: %s\n", v.AuthToken)
	case client.HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	case client.WipeResult:
		fmt.Printf("%s: %s\n", v.Status, v.Message)
	default:
		o.printJSON(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]any{
			"error": map[string]string{"message": err.Error()},
		})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

// PrintGameList prints a one-line summary per game
func (o *Output) PrintGameList(games []model.Game) {
	if o.format == "json" {
		o.printJSON(games)
		return
	}

	if len(games) == 0 {
		fmt.Println("No games")
		return
	}
	for _, g := range games {
		fmt.Printf("%s  %-8s  raid %d  %d player(s)\n",
			g.ID, g.Status, g.Raid, len(g.Players))
	}
}

// PrintGame prints a full game snapshot from the given identity's point of
// view
func (o *Output) PrintGame(g model.Game, id session.Identity) {
	if o.format == "json" {
		o.printJSON(g)
		return
	}
	o.renderGame(g, id, time.Now())
}

// renderGame writes the text view of one snapshot. Everything shown is
// derived through the view package so the CLI and any future surface agree
// on what the player may see and do.
func (o *Output) renderGame(g model.Game, id session.Identity, now time.Time) {
	fmt.Printf("Game %s  [%s]", g.ID, g.Status)
	if g.Status == model.GameStatusActive {
		fmt.Printf("  raid %d  %s", g.Raid, g.Phase.Label())
	}
	fmt.Println()

	if view.IsSpectator(&g, id) {
		fmt.Println("(spectating)")
	}

	if g.WeatherActive() {
		fmt.Printf("Weather: %s (rolled %d)\n", g.WeatherStatus, *g.WeatherRoll)
	}

	// Players
	for i := range g.Players {
		p := &g.Players[i]
		marker := " "
		if p.ID == id.PlayerID() {
			marker = "*"
		}
		role := string(p.Role)
		if role == "" {
			role = "-"
		}
		fmt.Printf("%s %-12s %-8s HP %-3d", marker, p.DisplayName(), role, p.HP)
		if mods := view.VisibleMods(&g, p.Mods); len(mods) > 0 {
			parts := make([]string, len(mods))
			for j, m := range mods {
				parts[j] = fmt.Sprintf("%+d %s (%s)", m.Amount, m.Stat, m.Source)
			}
			fmt.Printf("  %s", strings.Join(parts, ", "))
		}
		fmt.Println()
	}

	// Center plays
	if len(g.Center) > 0 {
		fmt.Println("Center:")
		for _, cp := range g.Center {
			p := g.PlayerByID(cp.PlayerID)
			name := string(cp.PlayerID)
			if p != nil {
				name = p.DisplayName()
			}
			if cp.FaceUp {
				fmt.Printf("  %s: %s\n", name, model.LocationLabel(cp.Card))
			} else if cp.Card != "" {
				fmt.Printf("  %s: %s (face down)\n", name, model.LocationLabel(cp.Card))
			} else {
				fmt.Printf("  %s: face down\n", name)
			}
		}
	}

	// Countdown for the preparation window
	if secs := view.CountdownSeconds(&g, now); secs > 0 {
		fmt.Printf("Preparation window: %ds remaining\n", secs)
	}

	// Current duel
	if c := g.CurrentCombat; c != nil {
		atk := g.PlayerByID(c.AttackerID)
		def := g.PlayerByID(c.DefenderID)
		if atk != nil && def != nil {
			fmt.Printf("Duel at the %s: %s attacks %s\n",
				model.LocationLabel(c.Location), atk.DisplayName(), def.DisplayName())
			if c.AttackerRoll != nil {
				fmt.Printf("  %s rolled %d\n", atk.DisplayName(), *c.AttackerRoll)
			}
			if c.DefenderRoll != nil {
				fmt.Printf("  %s rolled %d\n", def.DisplayName(), *c.DefenderRoll)
			}
			if text, ok := view.CombatOutcome(&g); ok {
				fmt.Printf("  %s\n", text)
			}
		}
	}

	// The local player's hand and affordances
	if me := view.MyPlayer(&g, id); me != nil {
		if len(me.Hand) > 0 {
			labels := make([]string, len(me.Hand))
			for i, card := range me.Hand {
				labels[i] = model.LocationLabel(card)
			}
			fmt.Printf("Your hand: %s\n", strings.Join(labels, ", "))
		}

		var actions []string
		if g.Phase == model.PhaseWeather && g.WeatherRoll == nil && g.Status == model.GameStatusActive {
			actions = append(actions, "roll-weather")
		}
		if view.CanSelectLocation(&g, id) {
			actions = append(actions, "play <card>")
		}
		if view.CanUsePotion(&g, id) {
			actions = append(actions, "use-potion")
		}
		if g.Phase == model.PhasePreCombat && !g.IsReadyForCombat(me.ID) {
			actions = append(actions, "skip")
		}
		if view.CanRollDice(&g, id) {
			actions = append(actions, "roll")
		}
		if len(actions) > 0 {
			fmt.Printf("Actions: %s\n", strings.Join(actions, " | "))
		}
	}

	for _, msg := range g.Messages {
		fmt.Printf("> %s\n", msg)
	}
}

// PrintHistory prints the grouped raid history
func (o *Output) PrintHistory(g model.Game) {
	if o.format == "json" {
		o.printJSON(g.History)
		return
	}

	for _, group := range view.GroupHistory(g.History) {
		fmt.Println(group.Label())
		for _, line := range group.Lines {
			fmt.Printf("  %s\n", line)
		}
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}
