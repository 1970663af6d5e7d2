// Package places implements the place catalog: a public CRUD surface over the
// places table with a unique name per place.
package places

import (
	"time"

	"github.com/usguri/almoxarifado-go/validation"
)

// Place is the places-table row. Description and image are nullable, so they
// are pointers and serialize as JSON null when absent.
type Place struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreatePlaceRequest is the payload for creating a place.
type CreatePlaceRequest struct {
	Name        string  `json:"name" example:"warehouse-3"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// Validate declares the creation constraints.
func (r CreatePlaceRequest) Validate() error {
	return validation.Validate(
		validation.F("name", r.Name, validation.NonEmpty()),
	)
}

// UpdatePlaceRequest carries the fields of a partial place update. Nil
// pointers mean "leave unchanged".
type UpdatePlaceRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// Validate declares the update constraints. Only fields present in the
// request are checked.
func (r UpdatePlaceRequest) Validate() error {
	var fields []validation.Field
	if r.Name != nil {
		fields = append(fields, validation.F("name", *r.Name, validation.NonEmpty()))
	}
	return validation.Validate(fields...)
}
