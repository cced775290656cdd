package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castello/castello-go/internal/api"
	"github.com/castello/castello-go/internal/api/response"
	"github.com/castello/castello-go/internal/factory"
	"github.com/castello/castello-go/internal/model"
	"github.com/castello/castello-go/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		AuthService:        app.AuthService,
		GameController:     app.GameController,
		EnableDevEndpoints: true,
		Storage:            app.Storage,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// signup registers a user and returns their auth token
func (ts *testServer) signup(t *testing.T, username string) response.AuthResponse {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username,
		"password": "password-" + username,
	}, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var out response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.NotEmpty(t, out.AuthToken)
	return out
}

// createGame creates a game as the given user and returns it
func (ts *testServer) createGame(t *testing.T, token string) model.Game {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/games", struct{}{}, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var g model.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &g))
	return g
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestSignupAndLogin(t *testing.T) {
	ts := newTestServer(t)

	auth := ts.signup(t, "alice")
	assert.Equal(t, "alice", auth.Username)
	assert.NotEmpty(t, auth.UserID)

	rr := ts.request(http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "password-alice",
	}, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, rr))
}

func TestSignupValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/auth/signup", map[string]string{"username": "alice"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, rr))

	rr = ts.request(http.MethodPost, "/api/auth/signup", map[string]string{"password": "x"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSignupDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "alice")

	rr := ts.request(http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "alice",
		"password": "another",
	}, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "USERNAME_EXISTS", errorCode(t, rr))
}

func TestGameRoutesRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/games", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/games", struct{}{}, "sess_bogus")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateAndListGames(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.signup(t, "alice")

	g := ts.createGame(t, alice.AuthToken)
	assert.Equal(t, model.GameStatusCreated, g.Status)
	assert.NotEmpty(t, g.ID)

	rr := ts.request(http.MethodGet, "/api/games", nil, alice.AuthToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var games []model.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &games))
	require.Len(t, games, 1)
	assert.Equal(t, g.ID, games[0].ID)
}

func TestGetGameNotFound(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.signup(t, "alice")

	rr := ts.request(http.MethodGet, "/api/games/nope", nil, alice.AuthToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "GAME_NOT_FOUND", errorCode(t, rr))
}

func TestJoinAndStartFlow(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.signup(t, "alice")
	bob := ts.signup(t, "bob")

	g := ts.createGame(t, alice.AuthToken)
	base := fmt.Sprintf("/api/games/%s", g.ID)

	// Starting with too few players is rejected
	rr := ts.request(http.MethodPost, base+"/join", struct{}{}, alice.AuthToken)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.request(http.MethodPost, base+"/start", struct{}{}, alice.AuthToken)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "NOT_ENOUGH_PLAYERS", errorCode(t, rr))

	rr = ts.request(http.MethodPost, base+"/join", struct{}{}, bob.AuthToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var joined response.JoinResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &joined))
	assert.Equal(t, bob.UserID, joined.PlayerID)
	assert.Len(t, joined.Game.Players, 2)

	rr = ts.request(http.MethodPost, base+"/start", struct{}{}, alice.AuthToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var started model.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &started))
	assert.Equal(t, model.GameStatusActive, started.Status)
	assert.Equal(t, model.PhaseWeather, started.Phase)

	// One vampire, rest hunters
	vampires := 0
	for _, p := range started.Players {
		if p.Role == model.RoleVampire {
			vampires++
		}
	}
	assert.Equal(t, 1, vampires)

	// Joining after start is rejected
	carol := ts.signup(t, "carol")
	rr = ts.request(http.MethodPost, base+"/join", struct{}{}, carol.AuthToken)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "GAME_ALREADY_BEGUN", errorCode(t, rr))
}

func TestSnapshotHidesOtherHands(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.signup(t, "alice")
	bob := ts.signup(t, "bob")

	g := ts.createGame(t, alice.AuthToken)
	base := fmt.Sprintf("/api/games/%s", g.ID)

	ts.request(http.MethodPost, base+"/join", struct{}{}, alice.AuthToken)
	ts.request(http.MethodPost, base+"/join", struct{}{}, bob.AuthToken)
	ts.request(http.MethodPost, base+"/start", struct{}{}, alice.AuthToken)

	rr := ts.request(http.MethodGet, base, nil, alice.AuthToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var snap model.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	for _, p := range snap.Players {
		if p.ID == model.PlayerID(alice.UserID) {
			assert.Len(t, p.Hand, 4)
		} else {
			assert.Empty(t, p.Hand)
		}
	}
}

func TestSelectLocationValidation(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.signup(t, "alice")

	g := ts.createGame(t, alice.AuthToken)
	base := fmt.Sprintf("/api/games/%s", g.ID)

	rr := ts.request(http.MethodPost, base+"/select-location", map[string]string{}, alice.AuthToken)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, rr))

	// Valid body against a game that has not started
	rr = ts.request(http.MethodPost, base+"/select-location", map[string]string{"card": "forest"}, alice.AuthToken)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "GAME_NOT_ACTIVE", errorCode(t, rr))
}

func TestDevWipe(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.signup(t, "alice")
	ts.createGame(t, alice.AuthToken)

	// Missing confirmation is rejected
	rr := ts.request(http.MethodPost, "/api/dev/wipe", nil, alice.AuthToken)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/dev/wipe?confirm=YES", nil, alice.AuthToken)
	require.Equal(t, http.StatusOK, rr.Code)

	var out response.WipeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, "ok", out.Status)

	// The caller's own session died with the wipe
	rr = ts.request(http.MethodGet, "/api/games", nil, alice.AuthToken)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestDevWipeNotMountedByDefault(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
	})
	ts := &testServer{handler: router, storage: app.Storage.(*memory.Storage)}
	alice := ts.signup(t, "alice")

	rr := ts.request(http.MethodPost, "/api/dev/wipe?confirm=YES", nil, alice.AuthToken)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
