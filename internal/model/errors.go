package model

import "errors"

// Common errors used across the application
var (
	// Game errors
	ErrGameNotFound      = errors.New("game not found")
	ErrGameNotActive     = errors.New("game not active")
	ErrGameAlreadyBegun  = errors.New("game already started or ended")
	ErrNotEnoughPlayers  = errors.New("need at least 2 players")
	ErrNotAPlayer        = errors.New("not a player of this game")
	ErrNotSelectionPhase = errors.New("not a selection phase")
	ErrWrongRoleForPhase = errors.New("wrong role for this phase")
	ErrAlreadySelected   = errors.New("already selected this raid")
	ErrCardNotInHand     = errors.New("card not in hand")
	ErrNotPreCombat      = errors.New("not in the preparation window")
	ErrNotInCombat       = errors.New("not in combat")
	ErrNoRollExpected    = errors.New("no roll expected from you now")
	ErrWeatherRolled     = errors.New("weather already rolled this raid")
	ErrNotWeatherPhase   = errors.New("weather selection not in progress")
	ErrPotionNotEligible = errors.New("not about to enter a duel")
	ErrNoPotionsLeft     = errors.New("no potions left")
	ErrPotionAlreadyUsed = errors.New("potion already used this raid")

	// User errors
	ErrUserNotFound = errors.New("user not found")
)
