package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/castello/castello-go/internal/model"
	"github.com/castello/castello-go/internal/session"
)

type ViewSuite struct {
	suite.Suite
}

func TestViewSuite(t *testing.T) {
	suite.Run(t, new(ViewSuite))
}

func identityFor(id string) session.Identity {
	return session.Identity{UserID: id, Username: id, AuthToken: "sess_" + id}
}

func intPtr(v int) *int {
	return &v
}

// activeGame builds a two-player ACTIVE game: alice the vampire, bob a hunter
func (s *ViewSuite) activeGame(phase model.Phase) *model.Game {
	return &model.Game{
		ID:     "g-1",
		Status: model.GameStatusActive,
		Phase:  phase,
		Raid:   1,
		Players: []model.Player{
			{ID: "alice", Username: "alice", Role: model.RoleVampire, Hand: model.StartingHand(), HP: 30},
			{ID: "bob", Username: "bob", Role: model.RoleHunter, Hand: model.StartingHand(), HP: 20},
		},
	}
}

// Spectator resolution

func (s *ViewSuite) TestMyPlayerAndSpectator() {
	g := s.activeGame(model.PhaseHunters)

	p := MyPlayer(g, identityFor("alice"))
	s.Require().NotNil(p)
	s.Equal(model.RoleVampire, p.Role)

	s.False(IsSpectator(g, identityFor("bob")))
	s.True(IsSpectator(g, identityFor("carol")))
	s.True(IsSpectator(g, session.Identity{}))
}

// Location selection gating

func (s *ViewSuite) TestCanSelectLocationByRoleAndPhase() {
	cases := []struct {
		phase model.Phase
		who   string
		want  bool
	}{
		{model.PhaseHunters, "bob", true},
		{model.PhaseHunters, "alice", false},
		{model.PhaseVampire, "alice", true},
		{model.PhaseVampire, "bob", false},
		{model.PhaseWeather, "bob", false},
		{model.PhasePreCombat, "alice", false},
		{model.PhaseCombat, "bob", false},
		{model.PhaseMaintenance, "alice", false},
	}
	for _, tc := range cases {
		g := s.activeGame(tc.phase)
		s.Equal(tc.want, CanSelectLocation(g, identityFor(tc.who)),
			"phase %s player %s", tc.phase, tc.who)
	}
}

func (s *ViewSuite) TestCanSelectLocationBlockedAfterPlaying() {
	g := s.activeGame(model.PhaseHunters)
	g.Center = []model.CenterPlay{{PlayerID: "bob", Card: model.LocationForest}}

	s.False(CanSelectLocation(g, identityFor("bob")))
}

func (s *ViewSuite) TestCanSelectLocationRequiresActiveGame() {
	g := s.activeGame(model.PhaseHunters)
	g.Status = model.GameStatusFinished

	s.False(CanSelectLocation(g, identityFor("bob")))
	s.False(CanSelectLocation(g, identityFor("carol")))
}

// Dice gating

func (s *ViewSuite) TestCanRollDice() {
	g := s.activeGame(model.PhaseCombat)
	g.CurrentCombat = &model.Combat{
		ID:         "c-1",
		Location:   model.LocationForest,
		AttackerID: "bob",
		DefenderID: "alice",
	}

	s.True(CanRollDice(g, identityFor("bob")))
	s.True(CanRollDice(g, identityFor("alice")))
	s.False(CanRollDice(g, identityFor("carol")))

	g.CurrentCombat.AttackerRoll = intPtr(4)
	s.False(CanRollDice(g, identityFor("bob")))
	s.True(CanRollDice(g, identityFor("alice")))

	g.CurrentCombat.DefenderRoll = intPtr(2)
	s.False(CanRollDice(g, identityFor("alice")))
}

func (s *ViewSuite) TestCanRollDiceOutsideCombat() {
	g := s.activeGame(model.PhasePreCombat)
	g.CurrentCombat = &model.Combat{AttackerID: "bob", DefenderID: "alice"}
	s.False(CanRollDice(g, identityFor("bob")))

	g = s.activeGame(model.PhaseCombat)
	s.Nil(g.CurrentCombat)
	s.False(CanRollDice(g, identityFor("bob")))
}

// Countdown

func (s *ViewSuite) TestCountdownSeconds() {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	g := s.activeGame(model.PhasePreCombat)
	g.PrePhaseDeadlineMillis = now.UnixMilli() + 20_000

	s.Equal(20, CountdownSeconds(g, now))
	// Partial seconds round up
	s.Equal(20, CountdownSeconds(g, now.Add(1*time.Millisecond)))
	s.Equal(19, CountdownSeconds(g, now.Add(1001*time.Millisecond)))
	s.Equal(1, CountdownSeconds(g, now.Add(19500*time.Millisecond)))
	// Never negative
	s.Equal(0, CountdownSeconds(g, now.Add(20*time.Second)))
	s.Equal(0, CountdownSeconds(g, now.Add(time.Hour)))
}

func (s *ViewSuite) TestCountdownOnlyDuringPreparation() {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	g := s.activeGame(model.PhaseHunters)
	g.PrePhaseDeadlineMillis = now.UnixMilli() + 20_000
	s.Equal(0, CountdownSeconds(g, now))

	g = s.activeGame(model.PhasePreCombat)
	s.Zero(g.PrePhaseDeadlineMillis)
	s.Equal(0, CountdownSeconds(g, now))
}

// Flags

func (s *ViewSuite) TestNextFlagsClearsSkipOutsidePreparation() {
	f := Flags{SelectedCard: model.LocationLake, SkipAcknowledged: true}

	kept := NextFlags(s.activeGame(model.PhasePreCombat), f)
	s.True(kept.SkipAcknowledged)
	s.Equal(model.LocationLake, kept.SelectedCard)

	cleared := NextFlags(s.activeGame(model.PhaseCombat), f)
	s.False(cleared.SkipAcknowledged)
	s.Equal(model.LocationLake, cleared.SelectedCard)
}

// Combat outcome rendering

func (s *ViewSuite) TestCombatOutcomeDamage() {
	g := s.activeGame(model.PhaseCombat)
	g.CurrentCombat = &model.Combat{
		AttackerID:   "bob",
		DefenderID:   "alice",
		AttackerRoll: intPtr(5),
		DefenderRoll: intPtr(3),
	}

	text, ok := CombatOutcome(g)
	s.Require().True(ok)
	s.Equal("bob deals 2 damage to alice", text)
}

func (s *ViewSuite) TestCombatOutcomeParry() {
	g := s.activeGame(model.PhaseCombat)
	g.CurrentCombat = &model.Combat{
		AttackerID:   "bob",
		DefenderID:   "alice",
		AttackerRoll: intPtr(2),
		DefenderRoll: intPtr(6),
	}

	text, ok := CombatOutcome(g)
	s.Require().True(ok)
	s.Equal("alice parries bob's attack", text)
}

func (s *ViewSuite) TestCombatOutcomeAppliesMods() {
	g := s.activeGame(model.PhaseCombat)
	g.Players[1].Mods = []model.StatMod{
		{Stat: model.StatAttack, Amount: 1, Source: model.ModSourcePotion},
	}
	g.CurrentCombat = &model.Combat{
		AttackerID:   "bob",
		DefenderID:   "alice",
		AttackerRoll: intPtr(3),
		DefenderRoll: intPtr(3),
	}

	text, ok := CombatOutcome(g)
	s.Require().True(ok)
	s.Equal("bob deals 1 damage to alice", text)
}

func (s *ViewSuite) TestCombatOutcomeUndefinedUntilBothRolled() {
	g := s.activeGame(model.PhaseCombat)
	g.CurrentCombat = &model.Combat{
		AttackerID:   "bob",
		DefenderID:   "alice",
		AttackerRoll: intPtr(5),
	}

	_, ok := CombatOutcome(g)
	s.False(ok)

	g.CurrentCombat = nil
	_, ok = CombatOutcome(g)
	s.False(ok)
}

// Potion gating

func (s *ViewSuite) TestCanUsePotionRequiresContestedRevealedPlay() {
	g := s.activeGame(model.PhasePreCombat)
	g.Center = []model.CenterPlay{
		{PlayerID: "alice", Card: model.LocationForest, FaceUp: true},
		{PlayerID: "bob", Card: model.LocationForest, FaceUp: true},
	}

	s.True(CanUsePotion(g, identityFor("alice")))
	s.True(CanUsePotion(g, identityFor("bob")))
	s.False(CanUsePotion(g, identityFor("carol")))
}

func (s *ViewSuite) TestCanUsePotionFalseWhenNotContested() {
	g := s.activeGame(model.PhasePreCombat)
	g.Center = []model.CenterPlay{
		{PlayerID: "alice", Card: model.LocationManor, FaceUp: true},
		{PlayerID: "bob", Card: model.LocationForest, FaceUp: true},
	}

	s.False(CanUsePotion(g, identityFor("alice")))
	s.False(CanUsePotion(g, identityFor("bob")))
}

func (s *ViewSuite) TestCanUsePotionFalseWhileFaceDown() {
	g := s.activeGame(model.PhasePreCombat)
	g.Center = []model.CenterPlay{
		{PlayerID: "alice", Card: model.LocationForest},
		{PlayerID: "bob", Card: model.LocationForest},
	}

	s.False(CanUsePotion(g, identityFor("alice")))
}

func (s *ViewSuite) TestCanUsePotionOnlyDuringPreparation() {
	g := s.activeGame(model.PhaseCombat)
	g.Center = []model.CenterPlay{
		{PlayerID: "alice", Card: model.LocationForest, FaceUp: true},
		{PlayerID: "bob", Card: model.LocationForest, FaceUp: true},
	}

	s.False(CanUsePotion(g, identityFor("alice")))
}

// Modifier visibility

func (s *ViewSuite) TestVisibleModsHidesWeatherWhenInactive() {
	g := s.activeGame(model.PhaseHunters)
	mods := []model.StatMod{
		{Stat: model.StatAttack, Amount: -1, Source: model.ModSourceWeather},
		{Stat: model.StatAttack, Amount: 1, Source: model.ModSourcePotion},
	}

	// No weather in effect: only the potion modifier shows
	visible := VisibleMods(g, mods)
	s.Require().Len(visible, 1)
	s.Equal(model.ModSourcePotion, visible[0].Source)

	g.WeatherRoll = intPtr(3)
	g.WeatherStatus = "rain"
	visible = VisibleMods(g, mods)
	s.Len(visible, 2)
}

// Modal selection

func (s *ViewSuite) TestActiveModalPrecedence() {
	g := s.activeGame(model.PhasePreCombat)
	g.Center = []model.CenterPlay{
		{PlayerID: "alice", Card: model.LocationForest, FaceUp: true},
		{PlayerID: "bob", Card: model.LocationForest, FaceUp: true},
	}

	// The reveal overlay wins over everything else
	s.Equal(ModalWeather, ActiveModal(g, identityFor("alice"), true))
	s.Equal(ModalPotion, ActiveModal(g, identityFor("alice"), false))
	// Spectators see no potion prompt
	s.Equal(ModalNone, ActiveModal(g, identityFor("carol"), false))

	combat := s.activeGame(model.PhaseCombat)
	combat.CurrentCombat = &model.Combat{AttackerID: "bob", DefenderID: "alice"}
	s.Equal(ModalCombat, ActiveModal(combat, identityFor("alice"), false))
	s.Equal(ModalWeather, ActiveModal(combat, identityFor("alice"), true))

	idle := s.activeGame(model.PhaseHunters)
	s.Equal(ModalNone, ActiveModal(idle, identityFor("alice"), false))
}
