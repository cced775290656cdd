package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/castello/castello-go/internal/dependencies/mocks"
	"github.com/castello/castello-go/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	storage *memory.Storage
	clock   *mocks.MockClock
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.storage = memory.New()
	s.service = New(s.storage, s.clock, Config{SessionDuration: time.Hour})
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestSignupCreatesSession() {
	session, err := s.service.Signup(s.ctx, "alice", "hunter2hunter2")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.NotEmpty(session.UserID)
	s.Equal("alice", session.User.Username)
	s.Equal(s.clock.Now().Add(time.Hour), session.ExpiresAt)
}

func (s *ServiceSuite) TestSignupDuplicateUsername() {
	_, err := s.service.Signup(s.ctx, "alice", "password1")
	s.Require().NoError(err)

	_, err = s.service.Signup(s.ctx, "alice", "password2")
	s.ErrorIs(err, ErrUsernameExists)
}

func (s *ServiceSuite) TestLogin() {
	_, err := s.service.Signup(s.ctx, "alice", "correct-horse")
	s.Require().NoError(err)

	session, err := s.service.Login(s.ctx, "alice", "correct-horse")
	s.Require().NoError(err)
	s.Equal("alice", session.User.Username)
}

func (s *ServiceSuite) TestLoginWrongPassword() {
	_, err := s.service.Signup(s.ctx, "alice", "correct-horse")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "alice", "battery-staple")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginUnknownUser() {
	_, err := s.service.Login(s.ctx, "nobody", "whatever")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestValidateSession() {
	session, err := s.service.Signup(s.ctx, "alice", "password1")
	s.Require().NoError(err)

	validated, err := s.service.ValidateSession(s.ctx, session.Token)
	s.Require().NoError(err)
	s.Equal(session.UserID, validated.UserID)
}

func (s *ServiceSuite) TestValidateSessionUnknownToken() {
	_, err := s.service.ValidateSession(s.ctx, "sess_bogus")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionExpired() {
	session, err := s.service.Signup(s.ctx, "alice", "password1")
	s.Require().NoError(err)

	s.clock.Advance(time.Hour + time.Minute)

	_, err = s.service.ValidateSession(s.ctx, session.Token)
	s.ErrorIs(err, ErrInvalidSession)

	// The expired session is gone even if the clock rolls back
	s.clock.Advance(-2 * time.Hour)
	_, err = s.service.ValidateSession(s.ctx, session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionDeletedUser() {
	session, err := s.service.Signup(s.ctx, "alice", "password1")
	s.Require().NoError(err)

	// The account vanishes out from under the live session
	s.Require().NoError(s.storage.Wipe(s.ctx))

	_, err = s.service.ValidateSession(s.ctx, session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestInvalidateSession() {
	session, err := s.service.Signup(s.ctx, "alice", "password1")
	s.Require().NoError(err)

	s.service.InvalidateSession(session.Token)

	_, err = s.service.ValidateSession(s.ctx, session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestInvalidateAll() {
	a, err := s.service.Signup(s.ctx, "alice", "password1")
	s.Require().NoError(err)
	b, err := s.service.Signup(s.ctx, "bob", "password2")
	s.Require().NoError(err)

	s.service.InvalidateAll()

	_, err = s.service.ValidateSession(s.ctx, a.Token)
	s.ErrorIs(err, ErrInvalidSession)
	_, err = s.service.ValidateSession(s.ctx, b.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestSignupPersistsUser() {
	storage := memory.New()
	service := New(storage, s.clock, Config{})

	session, err := service.Signup(s.ctx, "alice", "password1")
	s.Require().NoError(err)

	user, err := storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(session.UserID, user.ID)
	s.NotEqual("password1", user.PasswordHash)
}
