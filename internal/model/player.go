package model

// PlayerID uniquely identifies a player. It is the same value as the user id
// issued at signup; role assignment within a game is server-authoritative.
type PlayerID string

// Role is one of the two mutually exclusive sides of a raid
type Role string

const (
	RoleVampire Role = "VAMPIRE"
	RoleHunter  Role = "HUNTER"
)

// Opposite returns the opposing role
func (r Role) Opposite() Role {
	if r == RoleVampire {
		return RoleHunter
	}
	return RoleVampire
}

// Location cards dealt to every player at game start
const (
	LocationForest = "forest"
	LocationQuarry = "quarry"
	LocationLake   = "lake"
	LocationManor  = "manor"
)

// StartingHand returns a fresh hand of the four location cards
func StartingHand() []string {
	return []string{LocationForest, LocationQuarry, LocationLake, LocationManor}
}

// LocationLabel returns a display name for a location card
func LocationLabel(card string) string {
	switch card {
	case LocationForest:
		return "Forest"
	case LocationQuarry:
		return "Quarry"
	case LocationLake:
		return "Lake"
	case LocationManor:
		return "Manor"
	default:
		return card
	}
}

// Player is one participant's in-game state
type Player struct {
	ID       PlayerID  `json:"id"`
	Username string    `json:"username"`
	Role     Role      `json:"role,omitempty"`
	Hand     []string  `json:"hand"`
	HP       int       `json:"hp"`
	AttackDice  string `json:"attack_dice,omitempty"`
	DefenseDice string `json:"defense_dice,omitempty"`
	Mods     []StatMod `json:"mods,omitempty"`
}

// DisplayName returns the username, falling back to the id
func (p *Player) DisplayName() string {
	if p.Username != "" {
		return p.Username
	}
	return string(p.ID)
}

// HasCard reports whether the card is in the player's hand
func (p *Player) HasCard(card string) bool {
	for _, c := range p.Hand {
		if c == card {
			return true
		}
	}
	return false
}
