package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/castello/castello-go/internal/api/middleware"
	"github.com/castello/castello-go/internal/api/request"
	"github.com/castello/castello-go/internal/api/response"
	"github.com/castello/castello-go/internal/model"
	"github.com/castello/castello-go/internal/services/game"
)

// GameHandler handles game endpoints
type GameHandler struct {
	gameController *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller) *GameHandler {
	return &GameHandler{
		gameController: gameController,
	}
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

func playerID(r *http.Request) model.PlayerID {
	return model.PlayerID(middleware.MustGetSession(r.Context()).UserID)
}

// List handles GET /api/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameController.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	viewer := playerID(r)
	out := make([]model.Game, len(games))
	for i, g := range games {
		out[i] = response.GameForViewer(g, viewer)
	}
	response.JSON(w, http.StatusOK, out)
}

// Create handles POST /api/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.Create(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.GameForViewer(g, playerID(r)))
}

// Get handles GET /api/games/{id}. Fetching is what drives the raid's
// pacing: overdue transitions apply before the snapshot is returned.
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.TickAndGet(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameForViewer(g, playerID(r)))
}

// Join handles POST /api/games/{id}/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	pid := model.PlayerID(session.UserID)

	g, err := h.gameController.Join(r.Context(), gameID(r), pid, session.User.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.JoinResponse{
		Game:     response.GameForViewer(g, pid),
		PlayerID: string(pid),
	})
}

// Start handles POST /api/games/{id}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.Start(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameForViewer(g, playerID(r)))
}

// SelectLocation handles POST /api/games/{id}/select-location
func (h *GameHandler) SelectLocation(w http.ResponseWriter, r *http.Request) {
	var req request.SelectLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Card == "" {
		WriteError(w, NewInvalidRequestError("card is required"))
		return
	}

	pid := playerID(r)
	g, err := h.gameController.SelectLocation(r.Context(), gameID(r), pid, req.Card)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameForViewer(g, pid))
}

// Skip handles POST /api/games/{id}/skip
func (h *GameHandler) Skip(w http.ResponseWriter, r *http.Request) {
	pid := playerID(r)
	g, err := h.gameController.Skip(r.Context(), gameID(r), pid)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameForViewer(g, pid))
}

// RollDice handles POST /api/games/{id}/roll
func (h *GameHandler) RollDice(w http.ResponseWriter, r *http.Request) {
	pid := playerID(r)
	g, err := h.gameController.RollDice(r.Context(), gameID(r), pid)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameForViewer(g, pid))
}

// RollWeather handles POST /api/games/{id}/roll-weather
func (h *GameHandler) RollWeather(w http.ResponseWriter, r *http.Request) {
	pid := playerID(r)
	g, err := h.gameController.RollWeather(r.Context(), gameID(r), pid)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameForViewer(g, pid))
}

// UsePotion handles POST /api/games/{id}/use-potion
func (h *GameHandler) UsePotion(w http.ResponseWriter, r *http.Request) {
	pid := playerID(r)
	g, err := h.gameController.UsePotion(r.Context(), gameID(r), pid)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.GameForViewer(g, pid))
}
