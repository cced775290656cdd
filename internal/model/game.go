package model

// GameID uniquely identifies a game
type GameID string

// GameStatus represents the lifecycle state of a game
type GameStatus string

const (
	GameStatusCreated  GameStatus = "CREATED"  // Waiting for players to join
	GameStatusActive   GameStatus = "ACTIVE"   // Raid in progress
	GameStatusFinished GameStatus = "FINISHED" // A side has won
)

// Phase represents the step of the current raid
type Phase string

const (
	PhaseWeather     Phase = "PHASE0"    // Weather is rolled for the raid
	PhaseHunters     Phase = "PHASE1"    // Hunters select their location cards
	PhaseVampire     Phase = "PHASE2"    // The vampire selects a location card
	PhasePreCombat   Phase = "PREPHASE3" // Timed window for potions before duels
	PhaseCombat      Phase = "PHASE3"    // Duels resolve one at a time
	PhaseMaintenance Phase = "PHASE4"    // Cards return to hands, next raid begins
)

// Label returns a human-readable tag for the phase
func (p Phase) Label() string {
	switch p {
	case PhaseWeather:
		return "Weather"
	case PhaseHunters:
		return "Hunters"
	case PhaseVampire:
		return "Vampire"
	case PhasePreCombat:
		return "Preparation"
	case PhaseCombat:
		return "Combat"
	case PhaseMaintenance:
		return "Maintenance"
	default:
		return string(p)
	}
}

// CenterPlay is a card played to the center of the table. The card identity
// is hidden from other participants until FaceUp is set.
type CenterPlay struct {
	PlayerID PlayerID `json:"player_id"`
	Card     string   `json:"card"`
	FaceUp   bool     `json:"face_up"`
}

// HistoryEntry is one line of the append-only raid history
type HistoryEntry struct {
	Raid  int    `json:"raid"`
	Phase Phase  `json:"phase"`
	Text  string `json:"text"`
}

// Game is the full authoritative game state as sent by the server. Clients
// receive it wholesale on each poll and never partially mutate it.
type Game struct {
	ID     GameID     `json:"id"`
	Status GameStatus `json:"status"`
	Phase  Phase      `json:"phase"`
	Raid   int        `json:"raid"`

	Players []Player     `json:"players"`
	Center  []CenterPlay `json:"center"`

	// Resource counters
	VampActionsLeft    int `json:"vamp_actions_left"`
	VampActionsDiscard int `json:"vamp_actions_discard"`
	HunterActionsLeft  int `json:"hunter_actions_left"`
	HunterActionsDiscard int `json:"hunter_actions_discard"`
	PotionsLeft        int `json:"potions_left"`
	PotionsDiscard     int `json:"potions_discard"`

	// Combat state, present only while a duel is being resolved
	CurrentCombat *Combat `json:"current_combat,omitempty"`

	// Weather state, present only once rolled for the current raid
	WeatherRoll   *int   `json:"weather_roll,omitempty"`
	WeatherStatus string `json:"weather_status,omitempty"`

	Messages []string       `json:"messages"`
	History  []HistoryEntry `json:"history"`

	// Deadline timestamps (ms epoch); zero when not applicable
	PrePhaseDeadlineMillis int64 `json:"pre_phase_deadline_millis"`
	PhaseStartMillis       int64 `json:"phase_start_millis"`
	FinishedAtMillis       int64 `json:"finished_at_millis,omitempty"`

	// Server-side pacing state, echoed in the snapshot. Clients ignore it.
	PendingNextPhase          Phase      `json:"pending_next_phase,omitempty"`
	NextAutoAdvanceAtMillis   int64      `json:"next_auto_advance_at_millis,omitempty"`
	ReadyForCombat            []PlayerID `json:"ready_for_combat,omitempty"`
	CombatsQueue              []Combat   `json:"combats_queue,omitempty"`
	CurrentCombatIndex        *int       `json:"current_combat_index,omitempty"`
	CombatNextAdvanceAtMillis int64      `json:"combat_next_advance_at_millis,omitempty"`
}

// PlayerByID returns the player with the given id, or nil
func (g *Game) PlayerByID(id PlayerID) *Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

// Vampire returns the single vampire-role player, or nil
func (g *Game) Vampire() *Player {
	for i := range g.Players {
		if g.Players[i].Role == RoleVampire {
			return &g.Players[i]
		}
	}
	return nil
}

// Hunters returns all hunter-role players
func (g *Game) Hunters() []*Player {
	var out []*Player
	for i := range g.Players {
		if g.Players[i].Role == RoleHunter {
			out = append(out, &g.Players[i])
		}
	}
	return out
}

// HasPlayed reports whether the player already has a card in the center
func (g *Game) HasPlayed(id PlayerID) bool {
	for _, cp := range g.Center {
		if cp.PlayerID == id {
			return true
		}
	}
	return false
}

// CenterPlayOf returns the player's center play, or nil
func (g *Game) CenterPlayOf(id PlayerID) *CenterPlay {
	for i := range g.Center {
		if g.Center[i].PlayerID == id {
			return &g.Center[i]
		}
	}
	return nil
}

// WeatherActive reports whether a weather outcome is currently in effect:
// both a roll value and a status must be present.
func (g *Game) WeatherActive() bool {
	return g.WeatherRoll != nil && g.WeatherStatus != ""
}

// ContestedLocations returns the set of locations where the vampire's
// revealed play co-occurs with a revealed hunter play, i.e. where a duel is
// imminent. Only face-up center plays count.
func (g *Game) ContestedLocations() map[string]bool {
	out := map[string]bool{}
	vamp := g.Vampire()
	if vamp == nil {
		return out
	}

	vampPlay := g.CenterPlayOf(vamp.ID)
	if vampPlay == nil || !vampPlay.FaceUp {
		return out
	}

	for _, cp := range g.Center {
		if !cp.FaceUp || cp.PlayerID == vamp.ID {
			continue
		}
		hunter := g.PlayerByID(cp.PlayerID)
		if hunter == nil || hunter.Role != RoleHunter {
			continue
		}
		if cp.Card == vampPlay.Card {
			out[cp.Card] = true
		}
	}
	return out
}

// IsReadyForCombat reports whether the player has declared readiness to end
// the preparation window
func (g *Game) IsReadyForCombat(id PlayerID) bool {
	for _, r := range g.ReadyForCombat {
		if r == id {
			return true
		}
	}
	return false
}
