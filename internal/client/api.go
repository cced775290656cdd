package client

import (
	"fmt"

	"github.com/castello/castello-go/internal/model"
)

// HealthResult is the liveness probe response
type HealthResult struct {
	Status string `json:"status"`
}

// AuthResult is the signup/login response
type AuthResult struct {
	AuthToken string `json:"auth_token"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
}

// JoinResult is the join response: the snapshot plus the assigned player id
type JoinResult struct {
	Game     model.Game `json:"game"`
	PlayerID string     `json:"player_id"`
}

// WipeResult is the dev-only database wipe response
type WipeResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Each method below is a single request/response round trip: no retries and
// no client-side queuing. By convention callers follow every mutation with a
// GetGame refresh rather than trusting the mutation's own response to be
// current relative to other participants' concurrent actions.

// Health checks server liveness
func (c *Client) Health() (HealthResult, error) {
	var out HealthResult
	err := c.Get("/api/health", &out)
	return out, err
}

// Signup creates an account and returns a credential
func (c *Client) Signup(username, password string) (AuthResult, error) {
	var out AuthResult
	err := c.Post("/api/auth/signup", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	return out, err
}

// Login authenticates and returns a credential
func (c *Client) Login(username, password string) (AuthResult, error) {
	var out AuthResult
	err := c.Post("/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	return out, err
}

// ListGames fetches all games
func (c *Client) ListGames() ([]model.Game, error) {
	var out []model.Game
	err := c.Get("/api/games", &out)
	return out, err
}

// CreateGame creates a new game
func (c *Client) CreateGame() (model.Game, error) {
	var out model.Game
	err := c.Post("/api/games", struct{}{}, &out)
	return out, err
}

// GetGame fetches the current snapshot of one game
func (c *Client) GetGame(id model.GameID) (model.Game, error) {
	var out model.Game
	err := c.Get(fmt.Sprintf("/api/games/%s", id), &out)
	return out, err
}

// JoinGame joins a game, returning the snapshot and assigned player id
func (c *Client) JoinGame(id model.GameID) (JoinResult, error) {
	var out JoinResult
	err := c.Post(fmt.Sprintf("/api/games/%s/join", id), struct{}{}, &out)
	return out, err
}

// StartGame transitions a game from CREATED to ACTIVE
func (c *Client) StartGame(id model.GameID) (model.Game, error) {
	var out model.Game
	err := c.Post(fmt.Sprintf("/api/games/%s/start", id), struct{}{}, &out)
	return out, err
}

// SelectLocation plays a location card from the hand
func (c *Client) SelectLocation(id model.GameID, card string) (model.Game, error) {
	var out model.Game
	err := c.Post(fmt.Sprintf("/api/games/%s/select-location", id), map[string]string{
		"card": card,
	}, &out)
	return out, err
}

// Skip declares readiness to end the preparation window early
func (c *Client) Skip(id model.GameID) (model.Game, error) {
	var out model.Game
	err := c.Post(fmt.Sprintf("/api/games/%s/skip", id), struct{}{}, &out)
	return out, err
}

// RollDice throws this player's die in the current duel
func (c *Client) RollDice(id model.GameID) (model.Game, error) {
	var out model.Game
	err := c.Post(fmt.Sprintf("/api/games/%s/roll", id), struct{}{}, &out)
	return out, err
}

// RollWeather rolls the weather for the current raid
func (c *Client) RollWeather(id model.GameID) (model.Game, error) {
	var out model.Game
	err := c.Post(fmt.Sprintf("/api/games/%s/roll-weather", id), struct{}{}, &out)
	return out, err
}

// UsePotion consumes a potion during the preparation window
func (c *Client) UsePotion(id model.GameID) (model.Game, error) {
	var out model.Game
	err := c.Post(fmt.Sprintf("/api/games/%s/use-potion", id), struct{}{}, &out)
	return out, err
}

// Wipe clears the entire server database. Development servers only; the
// confirm value must be "YES".
func (c *Client) Wipe(confirm string) (WipeResult, error) {
	var out WipeResult
	err := c.Post("/api/dev/wipe?confirm="+confirm, nil, &out)
	return out, err
}
