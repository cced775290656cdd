// Package session holds the locally cached identity of the current user:
// credential, user id, username and the last-joined game. It is an advisory
// cache only; the server's player list remains the source of truth for "am I
// in this game".
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/castello/castello-go/internal/model"
)

// Identity is the session-scoped state threaded through the view-model
// functions. Zero value means unauthenticated.
type Identity struct {
	UserID        string       `json:"user_id"`
	Username      string       `json:"username"`
	AuthToken     string       `json:"auth_token"`
	CurrentGameID model.GameID `json:"current_game_id,omitempty"`
}

// Authenticated reports whether a credential is held
func (id Identity) Authenticated() bool {
	return id.AuthToken != ""
}

// PlayerID returns the user id as a game player id
func (id Identity) PlayerID() model.PlayerID {
	return model.PlayerID(id.UserID)
}

// Store persists an Identity to a single file. Set on login/signup, cleared
// on 401 or logout.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the default session file location
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".castello/session.json"
	}
	return filepath.Join(home, ".castello", "session.json")
}

// Load reads the stored identity. A missing file yields a zero Identity.
func (s *Store) Load() (Identity, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Identity{}, nil
		}
		return Identity{}, err
	}

	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return Identity{}, err
	}
	return id, nil
}

// Save writes the identity to disk
func (s *Store) Save(id Identity) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0600)
}

// Clear removes the stored identity. Clearing an absent file is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// SetGame updates only the current game id, preserving the credential
func (s *Store) SetGame(gameID model.GameID) error {
	id, err := s.Load()
	if err != nil {
		return err
	}
	id.CurrentGameID = gameID
	return s.Save(id)
}
