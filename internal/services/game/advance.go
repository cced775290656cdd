package game

import (
	"fmt"
	"log/slog"

	"github.com/castello/castello-go/internal/dependencies/clock"
	"github.com/castello/castello-go/internal/model"
)

// planNextPhase schedules a transition for delayMs from now. The transition
// itself happens in maybeAutoAdvance on a later tick.
func (c *Controller) planNextPhase(g *model.Game, next model.Phase, delayMs int64) {
	g.PendingNextPhase = next
	g.NextAutoAdvanceAtMillis = clock.NowMillis(c.clock) + delayMs
}

// maybeAutoAdvance applies every time-driven transition that is due: planned
// phase changes, the preparation deadline, forced picks, and combat chain
// progression. It may cascade, e.g. a forced vampire pick immediately plans
// the next phase.
func (c *Controller) maybeAutoAdvance(g *model.Game) {
	if g.Status != model.GameStatusActive {
		return
	}
	now := clock.NowMillis(c.clock)

	// A planned transition that has come due
	if g.PendingNextPhase != "" && now >= g.NextAutoAdvanceAtMillis {
		next := g.PendingNextPhase
		g.PendingNextPhase = ""
		g.NextAutoAdvanceAtMillis = 0
		c.enterPhase(g, next, now)
	}

	// Preparation window deadline
	if g.Phase == model.PhasePreCombat && g.PrePhaseDeadlineMillis > 0 && now >= g.PrePhaseDeadlineMillis {
		g.PrePhaseDeadlineMillis = 0
		c.enterPhase(g, model.PhaseCombat, now)
	}

	// Force overdue picks so one absent player cannot stall the raid
	if g.PhaseStartMillis > 0 && now >= g.PhaseStartMillis+phaseForceMs {
		c.forceOverduePicks(g, now)
	}

	// Combat chain: resolve the current duel once both rolls are in, then
	// step to the next after the chain delay
	if g.Phase == model.PhaseCombat {
		c.advanceCombat(g, now)
	}
}

// enterPhase performs the entry actions of a phase
func (c *Controller) enterPhase(g *model.Game, next model.Phase, now int64) {
	g.Phase = next
	g.PhaseStartMillis = now

	switch next {
	case model.PhaseWeather:
		// Fresh raid, nothing else to set up

	case model.PhaseHunters, model.PhaseVampire:
		// Selection phases carry no entry actions

	case model.PhasePreCombat:
		c.revealCenter(g)
		g.ReadyForCombat = nil
		g.PrePhaseDeadlineMillis = now + prePhaseWindowMs

	case model.PhaseCombat:
		g.PrePhaseDeadlineMillis = 0
		c.buildCombatsQueue(g, now)

	case model.PhaseMaintenance:
		c.maintain(g)
		c.planNextPhase(g, model.PhaseWeather, phaseDelayMs)
	}
}

// revealCenter flips every center play face up and announces the matchups
func (c *Controller) revealCenter(g *model.Game) {
	for i := range g.Center {
		g.Center[i].FaceUp = true
	}

	g.Messages = nil
	contested := g.ContestedLocations()
	if len(contested) == 0 {
		g.Messages = append(g.Messages, "The vampire slips away unseen this raid")
		c.addHistory(g, "No hunter found the vampire")
		return
	}
	for loc := range contested {
		msg := fmt.Sprintf("Blades drawn at the %s", model.LocationLabel(loc))
		g.Messages = append(g.Messages, msg)
		c.addHistory(g, msg)
	}
}

// buildCombatsQueue pairs the vampire against each co-located hunter. The
// hunter ambushes first; if both survive, the vampire's counterattack
// follows as a second duel with the roles swapped.
func (c *Controller) buildCombatsQueue(g *model.Game, now int64) {
	g.CombatsQueue = nil
	g.CurrentCombat = nil
	g.CurrentCombatIndex = nil
	g.CombatNextAdvanceAtMillis = 0

	vamp := g.Vampire()
	if vamp == nil {
		c.enterPhase(g, model.PhaseMaintenance, now)
		return
	}
	vampPlay := g.CenterPlayOf(vamp.ID)
	contested := g.ContestedLocations()
	if vampPlay == nil || len(contested) == 0 {
		c.enterPhase(g, model.PhaseMaintenance, now)
		return
	}

	for _, cp := range g.Center {
		if cp.PlayerID == vamp.ID || !contested[cp.Card] || cp.Card != vampPlay.Card {
			continue
		}
		hunter := g.PlayerByID(cp.PlayerID)
		if hunter == nil || hunter.Role != model.RoleHunter {
			continue
		}
		g.CombatsQueue = append(g.CombatsQueue,
			model.Combat{
				ID:         model.CombatID(c.ids.New()),
				Location:   cp.Card,
				AttackerID: hunter.ID,
				DefenderID: vamp.ID,
			},
			model.Combat{
				ID:         model.CombatID(c.ids.New()),
				Location:   cp.Card,
				AttackerID: vamp.ID,
				DefenderID: hunter.ID,
			},
		)
	}

	if len(g.CombatsQueue) == 0 {
		c.enterPhase(g, model.PhaseMaintenance, now)
		return
	}

	idx := 0
	g.CurrentCombatIndex = &idx
	g.CurrentCombat = &g.CombatsQueue[0]
	c.logger.Info("combat phase begins",
		slog.String("game", string(g.ID)),
		slog.Int("duels", len(g.CombatsQueue)))
}

// advanceCombat resolves the current duel when both rolls are in, and moves
// to the next duel after the chain delay
func (c *Controller) advanceCombat(g *model.Game, now int64) {
	r := g.CurrentCombat
	if r == nil {
		return
	}

	if r.BothRolled() && r.ResolvedAtMillis == 0 {
		c.resolveCombat(g, r, now)
		if g.Status == model.GameStatusFinished {
			return
		}
		g.CombatNextAdvanceAtMillis = now + combatChainMs
	}

	if r.ResolvedAtMillis > 0 && g.CombatNextAdvanceAtMillis > 0 && now >= g.CombatNextAdvanceAtMillis {
		c.stepCombatQueue(g, now)
	}
}

// resolveCombat applies damage for a completed duel and checks for victory
func (c *Controller) resolveCombat(g *model.Game, r *model.Combat, now int64) {
	attacker := g.PlayerByID(r.AttackerID)
	defender := g.PlayerByID(r.DefenderID)
	if attacker == nil || defender == nil {
		r.ResolvedAtMillis = now
		return
	}

	dmg := model.ResolveDamage(r, attacker.Mods, defender.Mods)
	r.ResolvedAtMillis = now

	if dmg > 0 {
		defender.HP -= dmg
		if defender.HP < 0 {
			defender.HP = 0
		}
		c.addHistory(g, fmt.Sprintf("%s deals %d damage to %s at the %s",
			attacker.DisplayName(), dmg, defender.DisplayName(), model.LocationLabel(r.Location)))
	} else {
		c.addHistory(g, fmt.Sprintf("%s parries %s's attack at the %s",
			defender.DisplayName(), attacker.DisplayName(), model.LocationLabel(r.Location)))
	}

	c.checkVictory(g)
}

// stepCombatQueue moves to the next unresolved duel, skipping duels whose
// participants have already fallen, and enters maintenance when the queue is
// exhausted
func (c *Controller) stepCombatQueue(g *model.Game, now int64) {
	g.CombatNextAdvanceAtMillis = 0

	idx := 0
	if g.CurrentCombatIndex != nil {
		idx = *g.CurrentCombatIndex
	}
	for idx++; idx < len(g.CombatsQueue); idx++ {
		next := &g.CombatsQueue[idx]
		atk := g.PlayerByID(next.AttackerID)
		def := g.PlayerByID(next.DefenderID)
		if atk == nil || def == nil || atk.HP <= 0 || def.HP <= 0 {
			continue
		}
		g.CurrentCombatIndex = &idx
		g.CurrentCombat = next
		return
	}

	g.CurrentCombat = nil
	g.CurrentCombatIndex = nil
	g.CombatsQueue = nil
	c.enterPhase(g, model.PhaseMaintenance, now)
}

// checkVictory ends the game when either the vampire or every hunter has
// fallen
func (c *Controller) checkVictory(g *model.Game) {
	vamp := g.Vampire()
	if vamp != nil && vamp.HP <= 0 {
		c.finish(g, "The hunters prevail: the vampire has been slain")
		return
	}

	anyHunterAlive := false
	for _, h := range g.Hunters() {
		if h.HP > 0 {
			anyHunterAlive = true
			break
		}
	}
	if !anyHunterAlive {
		c.finish(g, "Darkness falls: the last hunter is dead")
	}
}

func (c *Controller) finish(g *model.Game, text string) {
	g.Status = model.GameStatusFinished
	g.FinishedAtMillis = clock.NowMillis(c.clock)
	g.CurrentCombat = nil
	g.CurrentCombatIndex = nil
	g.CombatsQueue = nil
	g.PendingNextPhase = ""
	g.NextAutoAdvanceAtMillis = 0
	g.PrePhaseDeadlineMillis = 0
	g.Messages = append(g.Messages, text)
	c.addHistory(g, text)
	c.logger.Info("game finished", slog.String("game", string(g.ID)))
}

// maintain performs the end-of-raid reset: cards return to hands, the center
// clears, modifiers and weather expire, and the raid counter advances
func (c *Controller) maintain(g *model.Game) {
	for _, cp := range g.Center {
		if p := g.PlayerByID(cp.PlayerID); p != nil {
			p.Hand = append(p.Hand, cp.Card)
		}
	}
	g.Center = []model.CenterPlay{}

	for i := range g.Players {
		g.Players[i].Mods = nil
	}
	g.WeatherRoll = nil
	g.WeatherStatus = ""
	g.Messages = nil
	g.ReadyForCombat = nil

	g.Raid++
	c.addHistory(g, fmt.Sprintf("Raid %d begins", g.Raid))
}

// forceOverduePicks makes any mandatory choice a player has stalled on: the
// weather roll in the weather phase, or a random location card in the
// selection phases
func (c *Controller) forceOverduePicks(g *model.Game, now int64) {
	switch g.Phase {
	case model.PhaseWeather:
		if g.WeatherRoll == nil {
			c.rollWeather(g)
			c.addHistory(g, "The weather turns on its own")
		}

	case model.PhaseHunters:
		for _, h := range g.Hunters() {
			if !g.HasPlayed(h.ID) && len(h.Hand) > 0 {
				c.forcePick(g, h)
			}
		}
		if c.allHuntersSelected(g) && g.PendingNextPhase == "" {
			c.planNextPhase(g, model.PhaseVampire, phaseDelayMs)
		}

	case model.PhaseVampire:
		v := g.Vampire()
		if v != nil && !g.HasPlayed(v.ID) && len(v.Hand) > 0 {
			c.forcePick(g, v)
		}
		if c.vampireSelected(g) && g.PendingNextPhase == "" {
			c.planNextPhase(g, model.PhasePreCombat, phaseDelayMs)
		}
	}
}

func (c *Controller) forcePick(g *model.Game, p *model.Player) {
	card := p.Hand[c.random.Intn(len(p.Hand))]
	removeCard(p, card)
	g.Center = append(g.Center, model.CenterPlay{PlayerID: p.ID, Card: card, FaceUp: false})
	c.addHistory(g, p.DisplayName()+" hesitated; fate chose for them")
}

// rollWeather throws the weather die and applies the raid-wide modifiers its
// outcome carries. 1-2 clear, 3 rain, 4 wind, 5 blizzard, 6 blood moon.
func (c *Controller) rollWeather(g *model.Game) {
	roll := c.random.Roll(6)
	g.WeatherRoll = &roll

	var mods []model.StatMod
	switch roll {
	case 1, 2:
		g.WeatherStatus = "clear"
	case 3:
		g.WeatherStatus = "rain"
		mods = append(mods, model.StatMod{Stat: model.StatAttack, Amount: -1, Source: model.ModSourceWeather, Description: "Rain"})
	case 4:
		g.WeatherStatus = "wind"
		mods = append(mods, model.StatMod{Stat: model.StatDefense, Amount: -1, Source: model.ModSourceWeather, Description: "Wind"})
	case 5:
		g.WeatherStatus = "blizzard"
		mods = append(mods,
			model.StatMod{Stat: model.StatAttack, Amount: -1, Source: model.ModSourceWeather, Description: "Blizzard"},
			model.StatMod{Stat: model.StatDefense, Amount: -1, Source: model.ModSourceWeather, Description: "Blizzard"})
	case 6:
		g.WeatherStatus = "blood_moon"
	}

	for i := range g.Players {
		p := &g.Players[i]
		p.Mods = append(p.Mods, mods...)
		if roll == 6 && p.Role == model.RoleVampire {
			p.Mods = append(p.Mods, model.StatMod{Stat: model.StatAttack, Amount: 1, Source: model.ModSourceWeather, Description: "Blood moon"})
		}
	}

	c.addHistory(g, fmt.Sprintf("Weather rolled %d: %s", roll, g.WeatherStatus))
	c.planNextPhase(g, model.PhaseHunters, phaseDelayMs)
}
