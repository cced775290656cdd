package handler

import (
	"log/slog"
	"net/http"

	"github.com/castello/castello-go/internal/api/response"
	"github.com/castello/castello-go/internal/services/auth"
	"github.com/castello/castello-go/internal/storage"
)

// DevHandler handles development-only endpoints. It is only routed when the
// server is started with dev endpoints enabled; production deployments never
// mount it.
type DevHandler struct {
	storage     storage.Storage
	authService *auth.Service
	logger      *slog.Logger
}

// NewDevHandler creates a new dev handler
func NewDevHandler(storage storage.Storage, authService *auth.Service, logger *slog.Logger) *DevHandler {
	return &DevHandler{
		storage:     storage,
		authService: authService,
		logger:      logger,
	}
}

// Wipe handles POST /api/dev/wipe?confirm=YES. It destroys every user and
// game and invalidates all sessions, including the caller's.
func (h *DevHandler) Wipe(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "YES" {
		WriteError(w, NewInvalidRequestError("pass confirm=YES to wipe the database"))
		return
	}

	if err := h.storage.Wipe(r.Context()); err != nil {
		WriteError(w, err)
		return
	}
	h.authService.InvalidateAll()

	h.logger.Warn("database wiped via dev endpoint")
	response.JSON(w, http.StatusOK, response.WipeResponse{
		Status:  "ok",
		Message: "all users, games and sessions deleted",
	})
}
