package poll

import "github.com/castello/castello-go/internal/model"

// EventType identifies a synchronizer event
type EventType string

const (
	// EventSnapshot fires after each successful poll, once the local
	// snapshot has been replaced.
	EventSnapshot EventType = "snapshot"

	// EventNavigate fires exactly once when the watched game transitions
	// CREATED to ACTIVE and the local identity is among its players.
	EventNavigate EventType = "navigate"

	// EventNotice carries a transient, auto-expiring error notice. The
	// polling loop keeps running and the last-good snapshot is retained.
	EventNotice EventType = "notice"

	// EventHistoryGrew fires once per growth of the append-only history
	// log, so views can scroll to bottom without reacting to re-renders.
	EventHistoryGrew EventType = "history_grew"

	// EventWeatherRevealShow fires after the reveal pre-delay once a new
	// weather roll appears; EventWeatherRevealHide after the hold elapses.
	EventWeatherRevealShow EventType = "weather_reveal_show"
	EventWeatherRevealHide EventType = "weather_reveal_hide"
)

// Event is a one-shot signal from the synchronizer to the consuming view
type Event struct {
	Type   EventType
	GameID model.GameID
	Err    error
}
