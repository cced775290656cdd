package model

import "time"

// UserID uniquely identifies an account
type UserID string

// User is a registered account. The same id serves as the PlayerID inside
// any game the user joins.
type User struct {
	ID           UserID    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}
