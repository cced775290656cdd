package response

import (
	"github.com/castello/castello-go/internal/model"
	"github.com/castello/castello-go/internal/services/auth"
)

// HealthResponse is the liveness probe response
type HealthResponse struct {
	Status string `json:"status"`
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	AuthToken string `json:"auth_token"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		AuthToken: s.Token,
		UserID:    string(s.UserID),
		Username:  s.User.Username,
	}
}

// JoinResponse is the response for joining a game
type JoinResponse struct {
	Game     model.Game `json:"game"`
	PlayerID string     `json:"player_id"`
}

// WipeResponse is the response for the dev database wipe
type WipeResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// GameForViewer returns a copy of the game with information the viewer must
// not see removed: the identity of face-down center cards belonging to other
// players, and other players' hands while the game is active.
func GameForViewer(g *model.Game, viewer model.PlayerID) model.Game {
	out := *g

	out.Center = make([]model.CenterPlay, len(g.Center))
	copy(out.Center, g.Center)
	for i := range out.Center {
		if !out.Center[i].FaceUp && out.Center[i].PlayerID != viewer {
			out.Center[i].Card = ""
		}
	}

	if g.Status == model.GameStatusActive {
		out.Players = make([]model.Player, len(g.Players))
		copy(out.Players, g.Players)
		for i := range out.Players {
			if out.Players[i].ID != viewer {
				out.Players[i].Hand = nil
			}
		}
	}

	return out
}
