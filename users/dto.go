package users

import (
	"time"

	"github.com/usguri/almoxarifado-go/validation"
)

// UserResponse is the full user projection returned to the user themselves.
type UserResponse struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateUserRequest carries the fields of a partial user update. Nil pointers
// mean "leave unchanged", so constraints only apply to the fields present.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" example:"newname"`
	Email    *string `json:"email,omitempty" example:"new@example.com"`
	Password *string `json:"password,omitempty" example:"newstrongpassword"`
}

// Validate declares the update constraints. Absent fields are not checked;
// present fields must each satisfy the same constraints as at registration,
// and all violations are reported together.
func (r UpdateUserRequest) Validate() error {
	var fields []validation.Field
	if r.Name != nil {
		fields = append(fields, validation.F("name", *r.Name, validation.NonEmpty()))
	}
	if r.Email != nil {
		fields = append(fields, validation.F("email", *r.Email, validation.Email()))
	}
	if r.Password != nil {
		fields = append(fields, validation.F("password", *r.Password, validation.NonEmpty()))
	}
	return validation.Validate(fields...)
}

// Profile is the public projection of a user, safe to serve without
// authentication.
type Profile struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
