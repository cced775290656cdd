package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/castello/castello-go/internal/api/handler"
	apimiddleware "github.com/castello/castello-go/internal/api/middleware"
	"github.com/castello/castello-go/internal/middleware"
	"github.com/castello/castello-go/internal/services/auth"
	"github.com/castello/castello-go/internal/services/game"
	"github.com/castello/castello-go/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	GameController *game.Controller

	// EnableDevEndpoints mounts the destructive /api/dev routes
	EnableDevEndpoints bool
	Storage            storage.Storage
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.GameController)

	authMiddleware := apimiddleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Unauthenticated routes
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Game routes (all require auth)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.List).Methods(http.MethodGet)
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{id}/join", gameHandler.Join).Methods(http.MethodPost)
	games.HandleFunc("/{id}/start", gameHandler.Start).Methods(http.MethodPost)
	games.HandleFunc("/{id}/select-location", gameHandler.SelectLocation).Methods(http.MethodPost)
	games.HandleFunc("/{id}/skip", gameHandler.Skip).Methods(http.MethodPost)
	games.HandleFunc("/{id}/roll", gameHandler.RollDice).Methods(http.MethodPost)
	games.HandleFunc("/{id}/roll-weather", gameHandler.RollWeather).Methods(http.MethodPost)
	games.HandleFunc("/{id}/use-potion", gameHandler.UsePotion).Methods(http.MethodPost)

	if cfg.EnableDevEndpoints {
		devHandler := handler.NewDevHandler(cfg.Storage, cfg.AuthService, cfg.Logger)
		dev := api.PathPrefix("/dev").Subrouter()
		dev.Use(authMiddleware)
		dev.HandleFunc("/wipe", devHandler.Wipe).Methods(http.MethodPost)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
