package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// WorkflowList is a paginated page of workflows
type WorkflowList struct {
	// Data holds the workflows on this page. An empty page is valid.
	Data []Workflow `json:"data"`
	// NextCursor is the opaque cursor for the next page, empty on the last page
	NextCursor string `json:"nextCursor,omitempty"`
}

// Validate checks that the page carries a data array
func (l WorkflowList) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Data, validation.NotNil),
	)
}

// ExecutionList is a paginated page of executions
type ExecutionList struct {
	Data       []Execution `json:"data"`
	NextCursor string      `json:"nextCursor,omitempty"`
}

// Validate checks that the page carries a data array
func (l ExecutionList) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Data, validation.NotNil),
	)
}

// CredentialList is a paginated page of credentials
type CredentialList struct {
	Data       []Credential `json:"data"`
	NextCursor string       `json:"nextCursor,omitempty"`
}

// Validate checks that the page carries a data array
func (l CredentialList) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Data, validation.NotNil),
	)
}

// TagList is a paginated page of tags
type TagList struct {
	Data       []Tag  `json:"data"`
	NextCursor string `json:"nextCursor,omitempty"`
}

// Validate checks that the page carries a data array
func (l TagList) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Data, validation.NotNil),
	)
}
