// Package view derives presentation facts from a game snapshot and the local
// identity. Every function is pure: the same (snapshot, identity, flags,
// now) always yields the same answer, and nothing here mutates authoritative
// state. Gating here is a UX guard only; the server re-validates every
// action.
package view

import (
	"fmt"
	"time"

	"github.com/castello/castello-go/internal/model"
	"github.com/castello/castello-go/internal/session"
)

// Flags are the only client-local mutable affordances: the card the user has
// highlighted and whether they acknowledged the skip button this window.
type Flags struct {
	SelectedCard     string
	SkipAcknowledged bool
}

// MyPlayer resolves the local identity against the snapshot's player list.
// A nil result means every identity-dependent view degrades to spectator
// mode.
func MyPlayer(g *model.Game, id session.Identity) *model.Player {
	return g.PlayerByID(id.PlayerID())
}

// IsSpectator reports whether the identity is not a participant
func IsSpectator(g *model.Game, id session.Identity) bool {
	return MyPlayer(g, id) == nil
}

// CanSelectLocation reports whether playing a location card is permitted:
// the game is active, the player's role matches the phase that role acts in
// (hunters in PHASE1, the vampire in PHASE2), and they have not already
// played this raid.
func CanSelectLocation(g *model.Game, id session.Identity) bool {
	p := MyPlayer(g, id)
	if p == nil || g.Status != model.GameStatusActive {
		return false
	}
	if g.HasPlayed(p.ID) {
		return false
	}
	switch g.Phase {
	case model.PhaseHunters:
		return p.Role == model.RoleHunter
	case model.PhaseVampire:
		return p.Role == model.RoleVampire
	default:
		return false
	}
}

// CanRollDice reports whether the identity owes a roll in the current duel
func CanRollDice(g *model.Game, id session.Identity) bool {
	c := g.CurrentCombat
	if g.Status != model.GameStatusActive || g.Phase != model.PhaseCombat || c == nil {
		return false
	}
	pid := id.PlayerID()
	if c.AttackerID == pid && c.AttackerRoll == nil {
		return true
	}
	if c.DefenderID == pid && c.DefenderRoll == nil {
		return true
	}
	return false
}

// CountdownSeconds derives the remaining seconds of the preparation window:
// max(0, ceil((deadline - now) / 1000)). Zero whenever the phase is not the
// deadline-bearing one.
func CountdownSeconds(g *model.Game, now time.Time) int {
	if g.Phase != model.PhasePreCombat || g.PrePhaseDeadlineMillis == 0 {
		return 0
	}
	remainingMs := g.PrePhaseDeadlineMillis - now.UnixMilli()
	if remainingMs <= 0 {
		return 0
	}
	return int((remainingMs + 999) / 1000)
}

// NextFlags recomputes the UI flags for a fresh snapshot: the skip
// acknowledgement is cleared whenever the phase leaves the preparation
// window.
func NextFlags(g *model.Game, f Flags) Flags {
	if g.Phase != model.PhasePreCombat {
		f.SkipAcknowledged = false
	}
	return f
}

// CombatOutcome renders the predicted result of the current duel. The text
// is only defined once both rolls are present; until then ok is false. The
// damage mirrors the server's authoritative formula through the shared model
// function, so this is a rendering of what the server already decided, never
// an independent resolution.
func CombatOutcome(g *model.Game) (text string, ok bool) {
	c := g.CurrentCombat
	if c == nil || !c.BothRolled() {
		return "", false
	}

	attacker := g.PlayerByID(c.AttackerID)
	defender := g.PlayerByID(c.DefenderID)
	if attacker == nil || defender == nil {
		return "", false
	}

	dmg := model.ResolveDamage(c, attacker.Mods, defender.Mods)
	if dmg > 0 {
		return fmt.Sprintf("%s deals %d damage to %s", attacker.DisplayName(), dmg, defender.DisplayName()), true
	}
	return fmt.Sprintf("%s parries %s's attack", defender.DisplayName(), attacker.DisplayName()), true
}

// CanUsePotion reports whether the identity may drink a potion: only during
// the preparation window, and only when their revealed play shares a
// location with the revealed play of an opposite-role participant, meaning a
// duel is imminent there.
func CanUsePotion(g *model.Game, id session.Identity) bool {
	p := MyPlayer(g, id)
	if p == nil || g.Status != model.GameStatusActive || g.Phase != model.PhasePreCombat {
		return false
	}

	mine := g.CenterPlayOf(p.ID)
	if mine == nil || !mine.FaceUp {
		return false
	}

	// Locations where revealed plays of the two roles co-occur
	return g.ContestedLocations()[mine.Card]
}

// VisibleMods filters a player's modifier list for display: weather-sourced
// modifiers appear only while a weather outcome is active (roll and status
// both present); all other sources always appear.
func VisibleMods(g *model.Game, mods []model.StatMod) []model.StatMod {
	out := make([]model.StatMod, 0, len(mods))
	for _, m := range mods {
		if m.Source == model.ModSourceWeather && !g.WeatherActive() {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Modal identifies which overlay the game view should show
type Modal string

const (
	ModalNone    Modal = ""
	ModalWeather Modal = "weather" // weather reveal in progress
	ModalPotion  Modal = "potion"  // preparation window for an eligible player
	ModalCombat  Modal = "combat"  // duel in progress
)

// ActiveModal selects the visible overlay for the current snapshot. The
// weather reveal is driven by the synchronizer's reveal timer, passed in as
// revealShowing since it is client-local state rather than snapshot state.
func ActiveModal(g *model.Game, id session.Identity, revealShowing bool) Modal {
	if revealShowing {
		return ModalWeather
	}
	if g.Phase == model.PhaseCombat && g.CurrentCombat != nil {
		return ModalCombat
	}
	if g.Phase == model.PhasePreCombat && CanUsePotion(g, id) {
		return ModalPotion
	}
	return ModalNone
}
