// Package game implements the authoritative raid engine used by the dev
// server. All pacing is driven by tick-on-read: every snapshot fetch first
// applies any phase advance, force pick, or combat resolution whose time has
// come.
package game

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"github.com/castello/castello-go/internal/dependencies/clock"
	"github.com/castello/castello-go/internal/dependencies/ids"
	"github.com/castello/castello-go/internal/dependencies/random"
	"github.com/castello/castello-go/internal/model"
	"github.com/castello/castello-go/internal/storage"
)

// Pacing constants (milliseconds)
const (
	phaseDelayMs     = 5_000  // pause once everyone has played before the next phase
	phaseForceMs     = 30_000 // beyond this, missing picks are forced at random
	prePhaseWindowMs = 20_000 // length of the preparation window
	combatChainMs    = 4_000  // pause between resolved duels

	finishedRetentionMs = 3_600_000 // finished games stay listed this long
)

// Controller owns game state transitions
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	ids     ids.Generator
	logger  *slog.Logger
}

// NewController creates a game Controller
func NewController(storage storage.Storage, clock clock.Clock, random random.Random, ids ids.Generator, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		ids:     ids,
		logger:  logger,
	}
}

// Create creates an empty game in CREATED status
func (c *Controller) Create(ctx context.Context) (*model.Game, error) {
	g := &model.Game{
		ID:     model.GameID(c.ids.New()),
		Status: model.GameStatusCreated,
		Raid:   0,
	}
	if err := c.storage.SaveGame(ctx, g); err != nil {
		return nil, err
	}
	c.logger.Info("game created", slog.String("game", string(g.ID)))
	return g, nil
}

// List returns all games, deleting finished ones whose retention has lapsed
func (c *Controller) List(ctx context.Context) ([]*model.Game, error) {
	games, err := c.storage.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	now := clock.NowMillis(c.clock)
	out := games[:0]
	for _, g := range games {
		if g.Status == model.GameStatusFinished && g.FinishedAtMillis > 0 &&
			now >= g.FinishedAtMillis+finishedRetentionMs {
			if err := c.storage.DeleteGame(ctx, g.ID); err != nil {
				return nil, err
			}
			c.logger.Info("finished game expired", slog.String("game", string(g.ID)))
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

// TickAndGet fetches a game, applying any due auto-advance first
func (c *Controller) TickAndGet(ctx context.Context, id model.GameID) (*model.Game, error) {
	g, err := c.storage.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	before, _ := json.Marshal(g)
	c.maybeAutoAdvance(g)
	after, _ := json.Marshal(g)

	if !bytes.Equal(before, after) {
		if err := c.storage.SaveGame(ctx, g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Join adds a player to a CREATED game, or updates their username if they
// already joined
func (c *Controller) Join(ctx context.Context, gameID model.GameID, playerID model.PlayerID, username string) (*model.Game, error) {
	g, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.Status != model.GameStatusCreated {
		return nil, model.ErrGameAlreadyBegun
	}

	if p := g.PlayerByID(playerID); p != nil {
		p.Username = username
	} else {
		g.Players = append(g.Players, model.Player{ID: playerID, Username: username})
		c.addHistory(g, username+" joined the game")
	}

	if err := c.storage.SaveGame(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Start transitions CREATED to ACTIVE: assigns roles, deals hands, sets hit
// points and dice, initializes counters, and opens the first raid with the
// weather phase.
func (c *Controller) Start(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	g, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.Status != model.GameStatusCreated {
		return nil, model.ErrGameAlreadyBegun
	}
	if len(g.Players) < 2 {
		return nil, model.ErrNotEnoughPlayers
	}

	g.Status = model.GameStatusActive
	g.Raid = 1
	g.Phase = model.PhaseWeather
	g.PhaseStartMillis = clock.NowMillis(c.clock)

	// One random vampire, everyone else hunts
	vampIdx := c.random.Intn(len(g.Players))
	for i := range g.Players {
		p := &g.Players[i]
		if i == vampIdx {
			p.Role = model.RoleVampire
		} else {
			p.Role = model.RoleHunter
		}
		p.Hand = model.StartingHand()
		p.AttackDice = "D6"
		p.DefenseDice = "D6"
	}

	// The vampire's pool scales with the number of hunters
	hunters := len(g.Players) - 1
	for i := range g.Players {
		if g.Players[i].Role == model.RoleVampire {
			g.Players[i].HP = 20 + hunters*10
		} else {
			g.Players[i].HP = 20
		}
	}

	g.VampActionsLeft = 20
	g.VampActionsDiscard = 0
	g.HunterActionsLeft = 35
	g.HunterActionsDiscard = 0
	g.PotionsLeft = 22
	g.PotionsDiscard = 0
	g.Center = []model.CenterPlay{}

	g.PendingNextPhase = ""
	g.NextAutoAdvanceAtMillis = 0

	c.addHistory(g, "The raid begins")

	if err := c.storage.SaveGame(ctx, g); err != nil {
		return nil, err
	}
	c.logger.Info("game started",
		slog.String("game", string(g.ID)),
		slog.Int("players", len(g.Players)))
	return g, nil
}

// RollWeather rolls the raid's weather during the weather phase. Any
// participant may roll; the first roll wins.
func (c *Controller) RollWeather(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	g, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	c.maybeAutoAdvance(g)

	if g.Status != model.GameStatusActive {
		return nil, model.ErrGameNotActive
	}
	if g.Phase != model.PhaseWeather {
		return nil, model.ErrNotWeatherPhase
	}
	if g.PlayerByID(playerID) == nil {
		return nil, model.ErrNotAPlayer
	}
	if g.WeatherRoll != nil {
		return nil, model.ErrWeatherRolled
	}

	c.rollWeather(g)

	if err := c.storage.SaveGame(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// SelectLocation plays a location card from the player's hand during their
// role's selection phase
func (c *Controller) SelectLocation(ctx context.Context, gameID model.GameID, playerID model.PlayerID, card string) (*model.Game, error) {
	g, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	c.maybeAutoAdvance(g) // a planned advance may land right now

	if g.Status != model.GameStatusActive {
		return nil, model.ErrGameNotActive
	}

	p := g.PlayerByID(playerID)
	if p == nil {
		return nil, model.ErrNotAPlayer
	}

	switch g.Phase {
	case model.PhaseWeather:
		return nil, model.ErrNotWeatherPhase
	case model.PhaseHunters:
		if p.Role != model.RoleHunter {
			return nil, model.ErrWrongRoleForPhase
		}
	case model.PhaseVampire:
		if p.Role != model.RoleVampire {
			return nil, model.ErrWrongRoleForPhase
		}
	default:
		return nil, model.ErrNotSelectionPhase
	}

	if g.HasPlayed(playerID) {
		return nil, model.ErrAlreadySelected
	}
	if !removeCard(p, card) {
		return nil, model.ErrCardNotInHand
	}

	g.Center = append(g.Center, model.CenterPlay{PlayerID: playerID, Card: card, FaceUp: false})
	c.addHistory(g, p.DisplayName()+" committed to a location")

	// Action window: once everyone due has played, plan the next phase
	if g.Phase == model.PhaseHunters && c.allHuntersSelected(g) && g.PendingNextPhase == "" {
		c.planNextPhase(g, model.PhaseVampire, phaseDelayMs)
	} else if g.Phase == model.PhaseVampire && c.vampireSelected(g) && g.PendingNextPhase == "" {
		c.planNextPhase(g, model.PhasePreCombat, phaseDelayMs)
	}

	if err := c.storage.SaveGame(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Skip declares the player ready to end the preparation window. When every
// participant is ready the combat phase begins immediately.
func (c *Controller) Skip(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	g, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	c.maybeAutoAdvance(g)

	if g.Phase != model.PhasePreCombat {
		return nil, model.ErrNotPreCombat
	}
	if g.PlayerByID(playerID) == nil {
		return nil, model.ErrNotAPlayer
	}

	if !g.IsReadyForCombat(playerID) {
		g.ReadyForCombat = append(g.ReadyForCombat, playerID)
	}

	if c.allReadyForCombat(g) {
		g.PendingNextPhase = model.PhaseCombat
		g.NextAutoAdvanceAtMillis = clock.NowMillis(c.clock)
		c.maybeAutoAdvance(g)
	}

	if err := c.storage.SaveGame(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// UsePotion consumes a potion during the preparation window. Only players
// about to enter a duel may drink, and only once per raid.
func (c *Controller) UsePotion(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	g, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	c.maybeAutoAdvance(g)

	if g.Status != model.GameStatusActive {
		return nil, model.ErrGameNotActive
	}
	if g.Phase != model.PhasePreCombat {
		return nil, model.ErrNotPreCombat
	}

	p := g.PlayerByID(playerID)
	if p == nil {
		return nil, model.ErrNotAPlayer
	}
	if g.PotionsLeft <= 0 {
		return nil, model.ErrNoPotionsLeft
	}
	for _, m := range p.Mods {
		if m.Source == model.ModSourcePotion {
			return nil, model.ErrPotionAlreadyUsed
		}
	}

	mine := g.CenterPlayOf(playerID)
	if mine == nil || !mine.FaceUp || !g.ContestedLocations()[mine.Card] {
		return nil, model.ErrPotionNotEligible
	}

	p.Mods = append(p.Mods,
		model.StatMod{Stat: model.StatAttack, Amount: 1, Source: model.ModSourcePotion, Description: "Potion of vigor"},
		model.StatMod{Stat: model.StatDefense, Amount: 1, Source: model.ModSourcePotion, Description: "Potion of vigor"},
	)
	g.PotionsLeft--
	g.PotionsDiscard++

	g.Messages = append(g.Messages, p.DisplayName()+" drinks a potion")
	c.addHistory(g, p.DisplayName()+" drinks a potion")

	if err := c.storage.SaveGame(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// RollDice throws the calling player's die in the current duel
func (c *Controller) RollDice(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	g, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	c.maybeAutoAdvance(g)

	if g.Status != model.GameStatusActive || g.Phase != model.PhaseCombat || g.CurrentCombat == nil {
		return nil, model.ErrNotInCombat
	}

	r := g.CurrentCombat
	p := g.PlayerByID(playerID)
	if p == nil {
		return nil, model.ErrNotAPlayer
	}

	switch {
	case playerID == r.AttackerID && r.AttackerRoll == nil:
		roll := c.random.Roll(model.DiceSides(p.AttackDice))
		r.AttackerRoll = &roll
	case playerID == r.DefenderID && r.DefenderRoll == nil:
		roll := c.random.Roll(model.DiceSides(p.DefenseDice))
		r.DefenderRoll = &roll
	default:
		return nil, model.ErrNoRollExpected
	}

	if err := c.storage.SaveGame(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// removeCard removes one instance of card from the player's hand
func removeCard(p *model.Player, card string) bool {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Controller) allHuntersSelected(g *model.Game) bool {
	hunters := g.Hunters()
	if len(hunters) == 0 {
		return false
	}
	for _, h := range hunters {
		if !g.HasPlayed(h.ID) {
			return false
		}
	}
	return true
}

func (c *Controller) vampireSelected(g *model.Game) bool {
	v := g.Vampire()
	return v != nil && g.HasPlayed(v.ID)
}

func (c *Controller) allReadyForCombat(g *model.Game) bool {
	for _, p := range g.Players {
		if !g.IsReadyForCombat(p.ID) {
			return false
		}
	}
	return true
}

// addHistory appends one line to the append-only history, tagged with the
// current raid and phase
func (c *Controller) addHistory(g *model.Game, text string) {
	g.History = append(g.History, model.HistoryEntry{
		Raid:  g.Raid,
		Phase: g.Phase,
		Text:  text,
	})
}
