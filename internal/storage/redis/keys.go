package redis

import (
	"fmt"

	"github.com/castello/castello-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "castello"

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesIndexKey returns the Redis key for the LIST of game ids in creation
// order
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}
