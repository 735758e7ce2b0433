package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Execution statuses accepted by the executions list filter
const (
	ExecutionStatusError   = "error"
	ExecutionStatusSuccess = "success"
	ExecutionStatusWaiting = "waiting"
)

// Execution represents a single run of a workflow
type Execution struct {
	// ID of the execution. Execution IDs are numeric, unlike the
	// opaque string IDs of other resources.
	ID int64 `json:"id"`

	// Data holds the run data; only populated when the request asked
	// for it with includeData
	Data map[string]interface{} `json:"data,omitempty"`

	// Finished indicates the execution ran to completion
	Finished bool `json:"finished,omitempty"`

	// Mode the execution was started in, e.g. "manual", "trigger", "webhook"
	Mode string `json:"mode"`

	// RetryOf is the ID of the execution this one retries
	RetryOf *int64 `json:"retryOf,omitempty"`

	// RetrySuccessID is the ID of the retry that eventually succeeded
	RetrySuccessID *int64 `json:"retrySuccessId,omitempty"`

	// StartedAt is when the execution started
	StartedAt *time.Time `json:"startedAt,omitempty"`

	// StoppedAt is when the execution finished or was stopped
	StoppedAt *time.Time `json:"stoppedAt,omitempty"`

	// WorkflowID of the workflow that was executed
	WorkflowID int64 `json:"workflowId"`

	// WaitTill is set while a waiting execution is parked
	WaitTill *time.Time `json:"waitTill,omitempty"`

	// CustomData attached to the execution
	CustomData map[string]interface{} `json:"customData,omitempty"`
}

// Validate checks the required execution fields.
func (e Execution) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.ID, validation.Required),
		validation.Field(&e.Mode, validation.Required),
		validation.Field(&e.WorkflowID, validation.Required),
	)
}
