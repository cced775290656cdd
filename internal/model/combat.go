package model

// CombatID uniquely identifies a duel within a raid
type CombatID string

// Combat is a single duel between the vampire and one hunter at a location.
// It exists from combat initiation until both rolls resolve, after which the
// next snapshot may replace or null it out.
type Combat struct {
	ID         CombatID `json:"id"`
	Location   string   `json:"location"`
	AttackerID PlayerID `json:"attacker_id"`
	DefenderID PlayerID `json:"defender_id"`

	// Rolls are nil until the corresponding player has thrown
	AttackerRoll *int `json:"attacker_roll,omitempty"`
	DefenderRoll *int `json:"defender_roll,omitempty"`

	// ResolvedAtMillis is set once damage has been applied
	ResolvedAtMillis int64 `json:"resolved_at_millis,omitempty"`
}

// BothRolled reports whether both sides have thrown their die
func (c *Combat) BothRolled() bool {
	return c.AttackerRoll != nil && c.DefenderRoll != nil
}

// Stat names a modifiable combat statistic
type Stat string

const (
	StatAttack  Stat = "attack"
	StatDefense Stat = "defense"
)

// Modifier sources
const (
	ModSourceWeather = "weather"
	ModSourcePotion  = "potion"
	ModSourceAction  = "action"
)

// StatMod is an additive adjustment to a stat, tagged by its originating
// cause. Multiple modifiers for the same stat accumulate by summation.
type StatMod struct {
	Stat        Stat   `json:"stat"`
	Amount      int    `json:"amount"`
	Source      string `json:"source"`
	Description string `json:"description,omitempty"`
}

// SumMods returns the summed amount of all modifiers affecting the stat
func SumMods(mods []StatMod, stat Stat) int {
	total := 0
	for _, m := range mods {
		if m.Stat == stat {
			total += m.Amount
		}
	}
	return total
}

// Damage computes the damage dealt by an attack. The same function backs the
// server's authoritative resolution and the client's rendered prediction, so
// the two can never diverge.
func Damage(effectiveAttack, effectiveDefense int) int {
	dmg := effectiveAttack - effectiveDefense
	if dmg < 0 {
		return 0
	}
	return dmg
}

// ResolveDamage applies the full formula for a completed duel: each raw roll
// plus the sum of that side's matching stat modifiers.
func ResolveDamage(c *Combat, attackerMods, defenderMods []StatMod) int {
	if !c.BothRolled() {
		return 0
	}
	atk := *c.AttackerRoll + SumMods(attackerMods, StatAttack)
	def := *c.DefenderRoll + SumMods(defenderMods, StatDefense)
	return Damage(atk, def)
}

// DiceSides maps a die name to its number of sides, defaulting to 6
func DiceSides(d string) int {
	switch d {
	case "D4":
		return 4
	case "D6":
		return 6
	case "D8":
		return 8
	case "D10":
		return 10
	case "D12":
		return 12
	case "D20":
		return 20
	default:
		return 6
	}
}
