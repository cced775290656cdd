package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/castello/castello-go/internal/model"
	"github.com/castello/castello-go/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeGameNotActive      = "GAME_NOT_ACTIVE"
	CodeGameAlreadyBegun   = "GAME_ALREADY_BEGUN"
	CodeNotEnoughPlayers   = "NOT_ENOUGH_PLAYERS"
	CodeNotAPlayer         = "NOT_A_PLAYER"
	CodeNotSelectionPhase  = "NOT_SELECTION_PHASE"
	CodeWrongRole          = "WRONG_ROLE"
	CodeAlreadySelected    = "ALREADY_SELECTED"
	CodeCardNotInHand      = "CARD_NOT_IN_HAND"
	CodeNotPreCombat       = "NOT_PRE_COMBAT"
	CodeNotInCombat        = "NOT_IN_COMBAT"
	CodeNoRollExpected     = "NO_ROLL_EXPECTED"
	CodeWeatherRolled      = "WEATHER_ROLLED"
	CodeNotWeatherPhase    = "NOT_WEATHER_PHASE"
	CodePotionNotEligible  = "POTION_NOT_ELIGIBLE"
	CodeNoPotionsLeft      = "NO_POTIONS_LEFT"
	CodePotionAlreadyUsed  = "POTION_ALREADY_USED"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrGameNotActive):
		return &httpError{http.StatusConflict, APIError{CodeGameNotActive, "Game is not active"}}
	case errors.Is(err, model.ErrGameAlreadyBegun):
		return &httpError{http.StatusConflict, APIError{CodeGameAlreadyBegun, "Game has already started or ended"}}
	case errors.Is(err, model.ErrNotEnoughPlayers):
		return &httpError{http.StatusConflict, APIError{CodeNotEnoughPlayers, "Need at least 2 players to start"}}
	case errors.Is(err, model.ErrNotAPlayer):
		return &httpError{http.StatusForbidden, APIError{CodeNotAPlayer, "You are not a player in this game"}}
	case errors.Is(err, model.ErrNotSelectionPhase):
		return &httpError{http.StatusConflict, APIError{CodeNotSelectionPhase, "Location selection is not in progress"}}
	case errors.Is(err, model.ErrWrongRoleForPhase):
		return &httpError{http.StatusForbidden, APIError{CodeWrongRole, "Your role does not act in this phase"}}
	case errors.Is(err, model.ErrAlreadySelected):
		return &httpError{http.StatusConflict, APIError{CodeAlreadySelected, "You have already played a card this raid"}}
	case errors.Is(err, model.ErrCardNotInHand):
		return &httpError{http.StatusBadRequest, APIError{CodeCardNotInHand, "That card is not in your hand"}}
	case errors.Is(err, model.ErrNotPreCombat):
		return &httpError{http.StatusConflict, APIError{CodeNotPreCombat, "The preparation window is not open"}}
	case errors.Is(err, model.ErrNotInCombat):
		return &httpError{http.StatusConflict, APIError{CodeNotInCombat, "No duel is in progress"}}
	case errors.Is(err, model.ErrNoRollExpected):
		return &httpError{http.StatusConflict, APIError{CodeNoRollExpected, "No roll is expected from you now"}}
	case errors.Is(err, model.ErrWeatherRolled):
		return &httpError{http.StatusConflict, APIError{CodeWeatherRolled, "The weather has already been rolled this raid"}}
	case errors.Is(err, model.ErrNotWeatherPhase):
		return &httpError{http.StatusConflict, APIError{CodeNotWeatherPhase, "The weather phase is not in progress"}}
	case errors.Is(err, model.ErrPotionNotEligible):
		return &httpError{http.StatusConflict, APIError{CodePotionNotEligible, "You are not about to enter a duel"}}
	case errors.Is(err, model.ErrNoPotionsLeft):
		return &httpError{http.StatusConflict, APIError{CodeNoPotionsLeft, "No potions left"}}
	case errors.Is(err, model.ErrPotionAlreadyUsed):
		return &httpError{http.StatusConflict, APIError{CodePotionAlreadyUsed, "You already drank a potion this raid"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
