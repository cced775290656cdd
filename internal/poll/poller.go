// Package poll implements the client-side game-state synchronizer: a fixed
// cadence fetch of the authoritative snapshot, whole-value replacement of the
// local copy, and edge-triggered one-shot events derived by comparing the
// previous and new snapshots.
package poll

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/castello/castello-go/internal/model"
)

// Fetcher fetches the current snapshot for a game. *client.Client satisfies
// this; tests inject fakes.
type Fetcher interface {
	GetGame(id model.GameID) (model.Game, error)
}

// Config holds the synchronizer's timing knobs
type Config struct {
	// Interval is the poll cadence
	Interval time.Duration

	// RevealDelay is the pause between a weather roll first appearing in a
	// snapshot and the reveal being shown; RevealHold is how long the
	// reveal stays up. Both are independent of the poll cadence.
	RevealDelay time.Duration
	RevealHold  time.Duration
}

// DefaultConfig returns the standard timings
func DefaultConfig() Config {
	return Config{
		Interval:    2 * time.Second,
		RevealDelay: 1 * time.Second,
		RevealHold:  3 * time.Second,
	}
}

// Poller synchronizes one game's snapshot for one identity
type Poller struct {
	fetcher  Fetcher
	gameID   model.GameID
	playerID model.PlayerID
	cfg      Config
	logger   *slog.Logger

	events chan Event

	mu          sync.Mutex
	snapshot    *model.Game
	lastStatus  model.GameStatus
	navigated   bool
	historyLen  int
	weatherSeen bool
	revealShown bool
	revealTimer *time.Timer
	holdTimer   *time.Timer
}

// New creates a Poller for the given game and local identity
func New(fetcher Fetcher, gameID model.GameID, playerID model.PlayerID, cfg Config, logger *slog.Logger) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	return &Poller{
		fetcher:  fetcher,
		gameID:   gameID,
		playerID: playerID,
		cfg:      cfg,
		logger:   logger.With(slog.String("game", string(gameID))),
		events:   make(chan Event, 32),
	}
}

// Events returns the synchronizer's event stream
func (p *Poller) Events() <-chan Event {
	return p.events
}

// Snapshot returns the last-good snapshot, or false if none received yet
func (p *Poller) Snapshot() (model.Game, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.snapshot == nil {
		return model.Game{}, false
	}
	return *p.snapshot, true
}

// Run polls until the context is cancelled. It performs one immediate fetch
// and then one per interval tick. All timers are released on return.
func (p *Poller) Run(ctx context.Context) {
	p.poll()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()
	defer p.cancelRevealTimers()

	for {
		select {
		case <-ctx.Done():
			p.logger.Debug("poller stopped")
			return
		case <-ticker.C:
			p.poll()
		}
	}
}

// poll fetches the snapshot and applies replacement + edge detection
func (p *Poller) poll() {
	g, err := p.fetcher.GetGame(p.gameID)
	if err != nil {
		// Transient: surface a notice, keep the loop and the last-good
		// snapshot.
		p.logger.Warn("poll failed", slog.String("error", err.Error()))
		p.emit(Event{Type: EventNotice, GameID: p.gameID, Err: err})
		return
	}
	p.Apply(g)
}

// Apply replaces the local snapshot with a freshly fetched one and emits any
// edge-triggered events. Replacement is unconditional: a late-arriving
// response simply overwrites with its own embedded server state, never
// merging partial updates.
func (p *Poller) Apply(g model.Game) {
	p.mu.Lock()

	prevStatus := p.lastStatus
	prevHistoryLen := p.historyLen
	hadSnapshot := p.snapshot != nil

	snap := g
	p.snapshot = &snap
	p.lastStatus = g.Status
	p.historyLen = len(g.History)

	// CREATED -> ACTIVE, observed once, only for participants
	navigate := false
	if !p.navigated &&
		hadSnapshot && prevStatus == model.GameStatusCreated &&
		g.Status == model.GameStatusActive &&
		g.PlayerByID(p.playerID) != nil {
		p.navigated = true
		navigate = true
	}

	// Append-only history growth
	historyGrew := hadSnapshot && len(g.History) > prevHistoryLen

	// Weather roll appearing where none existed starts the reveal timers;
	// the roll reverting to absent resets them.
	weatherNow := g.WeatherRoll != nil
	startReveal := weatherNow && !p.weatherSeen
	resetReveal := !weatherNow && p.weatherSeen
	p.weatherSeen = weatherNow

	p.mu.Unlock()

	if navigate {
		p.emit(Event{Type: EventNavigate, GameID: p.gameID})
	}
	if historyGrew {
		p.emit(Event{Type: EventHistoryGrew, GameID: p.gameID})
	}
	if startReveal {
		p.startRevealTimers()
	}
	if resetReveal {
		p.cancelRevealTimers()
	}

	p.emit(Event{Type: EventSnapshot, GameID: p.gameID})
}

// startRevealTimers arms the two-stage reveal: show after the pre-delay,
// hide after the hold
func (p *Poller) startRevealTimers() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopTimersLocked()

	p.revealTimer = time.AfterFunc(p.cfg.RevealDelay, func() {
		p.mu.Lock()
		p.revealShown = true
		p.mu.Unlock()
		p.emit(Event{Type: EventWeatherRevealShow, GameID: p.gameID})
	})
	p.holdTimer = time.AfterFunc(p.cfg.RevealDelay+p.cfg.RevealHold, func() {
		p.mu.Lock()
		p.revealShown = false
		p.mu.Unlock()
		p.emit(Event{Type: EventWeatherRevealHide, GameID: p.gameID})
	})
}

// cancelRevealTimers stops any armed reveal timers. A show that went out
// without its hide still owes the consumer one, or its reveal state would
// stick forever.
func (p *Poller) cancelRevealTimers() {
	p.mu.Lock()
	p.stopTimersLocked()
	owed := p.revealShown
	p.revealShown = false
	p.mu.Unlock()

	if owed {
		p.emit(Event{Type: EventWeatherRevealHide, GameID: p.gameID})
	}
}

func (p *Poller) stopTimersLocked() {
	if p.revealTimer != nil {
		p.revealTimer.Stop()
		p.revealTimer = nil
	}
	if p.holdTimer != nil {
		p.holdTimer.Stop()
		p.holdTimer = nil
	}
}

// emit delivers an event without ever blocking a timer goroutine
func (p *Poller) emit(ev Event) {
	select {
	case p.events <- ev:
	default:
		p.logger.Warn("event dropped - consumer buffer full",
			slog.String("type", string(ev.Type)))
	}
}
