package auth

import (
	"github.com/usguri/almoxarifado-go/validation"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Name     string `json:"name" example:"newuser"`
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"strongpassword123"`
}

// Validate declares the registration constraints. All violations are
// collected and reported together.
func (r RegisterRequest) Validate() error {
	return validation.Validate(
		validation.F("name", r.Name, validation.NonEmpty()),
		validation.F("email", r.Email, validation.Email()),
		validation.F("password", r.Password, validation.NonEmpty()),
	)
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"strongpassword123"`
}

// Validate declares the login constraints.
func (r LoginRequest) Validate() error {
	return validation.Validate(
		validation.F("email", r.Email, validation.NonEmpty()),
		validation.F("password", r.Password, validation.NonEmpty()),
	)
}

// AuthResponse is returned on successful registration or login: the user's
// public fields plus a fresh session token.
type AuthResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}
