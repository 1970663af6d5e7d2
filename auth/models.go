// Package auth handles user registration and login: credential issuance, the
// one place plaintext passwords are accepted, hashed and verified, and where
// session tokens are minted on success.
package auth

import "time"

// User is the users-table row as used by the authentication logic. The hashed
// password never serializes into responses.
type User struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
