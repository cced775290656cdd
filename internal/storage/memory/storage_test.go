package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/castello/castello-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{
		ID:        "u-1",
		Username:  "alice",
		CreatedAt: time.Now(),
	}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "u-1")
	s.Require().NoError(err)
	s.Equal(user.ID, retrieved.ID)
	s.Equal(user.Username, retrieved.Username)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByUsername() {
	user := &model.User{ID: "u-1", Username: "alice"}
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("u-1"), retrieved.ID)

	_, err = s.storage.GetUserByUsername(s.ctx, "bob")
	s.ErrorIs(err, model.ErrUserNotFound)
}

// Game tests

func (s *StorageSuite) TestSaveAndGetGame() {
	game := &model.Game{
		ID:     "g-1",
		Status: model.GameStatusCreated,
	}

	err := s.storage.SaveGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "g-1")
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Equal(model.GameStatusCreated, retrieved.Status)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGetGameReturnsACopy() {
	game := &model.Game{
		ID:      "g-1",
		Status:  model.GameStatusActive,
		Players: []model.Player{{ID: "p-1", HP: 20}},
	}
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	first, err := s.storage.GetGame(s.ctx, "g-1")
	s.Require().NoError(err)
	first.Players[0].HP = 3
	first.History = append(first.History, model.HistoryEntry{Raid: 1, Text: "wounded"})

	second, err := s.storage.GetGame(s.ctx, "g-1")
	s.Require().NoError(err)
	s.Equal(20, second.Players[0].HP)
	s.Empty(second.History)
}

func (s *StorageSuite) TestSaveGameDetachesFromCaller() {
	game := &model.Game{ID: "g-1", Players: []model.Player{{ID: "p-1", HP: 20}}}
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))

	game.Players[0].HP = 0

	stored, err := s.storage.GetGame(s.ctx, "g-1")
	s.Require().NoError(err)
	s.Equal(20, stored.Players[0].HP)
}

func (s *StorageSuite) TestListGamesPreservesCreationOrder() {
	for _, id := range []model.GameID{"g-1", "g-2", "g-3"} {
		s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: id}))
	}
	// Re-saving must not duplicate or reorder
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "g-2"}))

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(games, 3)
	s.Equal(model.GameID("g-1"), games[0].ID)
	s.Equal(model.GameID("g-2"), games[1].ID)
	s.Equal(model.GameID("g-3"), games[2].ID)
}

func (s *StorageSuite) TestDeleteGame() {
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "g-1"}))

	err := s.storage.DeleteGame(s.ctx, "g-1")
	s.Require().NoError(err)

	_, err = s.storage.GetGame(s.ctx, "g-1")
	s.ErrorIs(err, model.ErrGameNotFound)

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
}

func (s *StorageSuite) TestWipe() {
	s.Require().NoError(s.storage.SaveUser(s.ctx, &model.User{ID: "u-1", Username: "alice"}))
	s.Require().NoError(s.storage.SaveGame(s.ctx, &model.Game{ID: "g-1"}))

	s.Require().NoError(s.storage.Wipe(s.ctx))

	_, err := s.storage.GetUser(s.ctx, "u-1")
	s.ErrorIs(err, model.ErrUserNotFound)
	_, err = s.storage.GetGame(s.ctx, "g-1")
	s.ErrorIs(err, model.ErrGameNotFound)
	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Empty(games)
}
