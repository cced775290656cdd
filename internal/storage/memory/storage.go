package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/castello/castello-go/internal/model"
	"github.com/castello/castello-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
	games         map[model.GameID]*model.Game
	gameOrder     []model.GameID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]*model.User),
		usernameIndex: make(map[string]model.UserID),
		games:         make(map[model.GameID]*model.Game),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	s.usernameIndex[user.Username] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// Game operations
//
// Games go in and come out as copies. Snapshot fetches mutate the game via
// tick-on-read, so two concurrent readers must never hold the same value;
// this also matches the Redis backend, which round-trips JSON on every call.

func copyGame(game *model.Game) (*model.Game, error) {
	data, err := json.Marshal(game)
	if err != nil {
		return nil, err
	}
	var out model.Game
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	stored, err := copyGame(game)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[game.ID]; !ok {
		s.gameOrder = append(s.gameOrder, game.ID)
	}
	s.games[game.ID] = stored
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return copyGame(game)
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, 0, len(s.games))
	for _, id := range s.gameOrder {
		g, ok := s.games[id]
		if !ok {
			continue
		}
		copied, err := copyGame(g)
		if err != nil {
			return nil, err
		}
		games = append(games, copied)
	}
	return games, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	for i, gid := range s.gameOrder {
		if gid == id {
			s.gameOrder = append(s.gameOrder[:i], s.gameOrder[i+1:]...)
			break
		}
	}
	return nil
}

// Wipe removes everything

func (s *Storage) Wipe(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[model.UserID]*model.User)
	s.usernameIndex = make(map[string]model.UserID)
	s.games = make(map[model.GameID]*model.Game)
	s.gameOrder = nil
	return nil
}
