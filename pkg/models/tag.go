package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Tag labels workflows for filtering and grouping
type Tag struct {
	// ID is assigned by the server on creation
	ID string `json:"id,omitempty"`

	// Name of the tag
	Name string `json:"name"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Validate checks the required tag fields.
func (t Tag) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Name, validation.Required),
	)
}
