package view

import (
	"fmt"

	"github.com/castello/castello-go/internal/model"
)

// HistoryGroup is a contiguous run of history entries sharing the same
// (raid, phase) pair, in arrival order.
type HistoryGroup struct {
	Raid  int
	Phase model.Phase
	Lines []string
}

// Label returns the group heading: raid number plus a human phase tag
func (g HistoryGroup) Label() string {
	return fmt.Sprintf("Raid %d - %s", g.Raid, g.Phase.Label())
}

// GroupHistory segments the append-only log into contiguous (raid, phase)
// runs. Grouping is order-preserving and idempotent: an unchanged log always
// yields identical groups, and a new entry matching the last group's pair
// extends that group rather than starting a new one.
func GroupHistory(entries []model.HistoryEntry) []HistoryGroup {
	var groups []HistoryGroup
	for _, e := range entries {
		n := len(groups)
		if n > 0 && groups[n-1].Raid == e.Raid && groups[n-1].Phase == e.Phase {
			groups[n-1].Lines = append(groups[n-1].Lines, e.Text)
			continue
		}
		groups = append(groups, HistoryGroup{
			Raid:  e.Raid,
			Phase: e.Phase,
			Lines: []string{e.Text},
		})
	}
	return groups
}
