package view

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/castello/castello-go/internal/model"
)

type HistorySuite struct {
	suite.Suite
}

func TestHistorySuite(t *testing.T) {
	suite.Run(t, new(HistorySuite))
}

func (s *HistorySuite) TestGroupHistoryEmpty() {
	s.Empty(GroupHistory(nil))
	s.Empty(GroupHistory([]model.HistoryEntry{}))
}

func (s *HistorySuite) TestGroupHistorySegmentsByRaidAndPhase() {
	entries := []model.HistoryEntry{
		{Raid: 1, Phase: model.PhaseWeather, Text: "Rain sets in"},
		{Raid: 1, Phase: model.PhaseCombat, Text: "bob deals 2 damage to alice at the Forest"},
		{Raid: 1, Phase: model.PhaseCombat, Text: "alice parries bob's attack at the Forest"},
		{Raid: 2, Phase: model.PhaseCombat, Text: "alice deals 4 damage to bob at the Lake"},
	}

	groups := GroupHistory(entries)
	s.Require().Len(groups, 3)

	s.Equal(1, groups[0].Raid)
	s.Equal(model.PhaseWeather, groups[0].Phase)
	s.Equal([]string{"Rain sets in"}, groups[0].Lines)

	s.Equal(model.PhaseCombat, groups[1].Phase)
	s.Len(groups[1].Lines, 2)

	// Same phase in a later raid starts a new group
	s.Equal(2, groups[2].Raid)
	s.Len(groups[2].Lines, 1)
}

func (s *HistorySuite) TestGroupHistoryIdempotent() {
	entries := []model.HistoryEntry{
		{Raid: 1, Phase: model.PhaseCombat, Text: "a"},
		{Raid: 1, Phase: model.PhaseCombat, Text: "b"},
	}

	first := GroupHistory(entries)
	second := GroupHistory(entries)
	s.Equal(first, second)
}

func (s *HistorySuite) TestGroupHistoryExtendsLastGroup() {
	entries := []model.HistoryEntry{
		{Raid: 1, Phase: model.PhaseCombat, Text: "a"},
	}
	before := GroupHistory(entries)
	s.Require().Len(before, 1)

	entries = append(entries, model.HistoryEntry{Raid: 1, Phase: model.PhaseCombat, Text: "b"})
	after := GroupHistory(entries)
	s.Require().Len(after, 1)
	s.Equal([]string{"a", "b"}, after[0].Lines)
}

func (s *HistorySuite) TestLabel() {
	g := HistoryGroup{Raid: 3, Phase: model.PhaseCombat}
	s.Equal("Raid 3 - Combat", g.Label())

	g = HistoryGroup{Raid: 1, Phase: model.PhaseWeather}
	s.Equal("Raid 1 - Weather", g.Label())
}
