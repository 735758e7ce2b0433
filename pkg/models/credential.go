package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Credential represents stored credentials for a node type
type Credential struct {
	// ID is assigned by the server on creation
	ID string `json:"id,omitempty"`

	// Name of the credential
	Name string `json:"name"`

	// Type of credential, e.g. "httpBasicAuth"
	Type string `json:"type"`

	// Data holds the secret fields. The server never returns it, so it
	// is only populated on create requests.
	Data map[string]interface{} `json:"data,omitempty"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Validate checks the required credential fields.
func (c Credential) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Type, validation.Required),
	)
}

// CredentialSchema describes the expected data fields for a credential type
// as a JSON schema fragment.
type CredentialSchema struct {
	AdditionalProperties bool                   `json:"additionalProperties"`
	Type                 string                 `json:"type"`
	Properties           map[string]interface{} `json:"properties"`
	Required             []string               `json:"required,omitempty"`
}

// Validate checks that the schema carries its property map.
func (s CredentialSchema) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Properties, validation.NotNil),
	)
}
