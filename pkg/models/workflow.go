// Package models defines the typed request and response shapes of the n8n
// REST API along with their validation rules.
package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Workflow represents an n8n workflow
type Workflow struct {
	// ID is assigned by the server on creation
	ID string `json:"id,omitempty"`

	// Name of the workflow
	Name string `json:"name"`

	// Nodes that make up the workflow
	Nodes []Node `json:"nodes"`

	// Connections between nodes, keyed by source node name and
	// connection type
	Connections Connections `json:"connections"`

	// Settings controlling workflow execution behavior
	Settings *WorkflowSettings `json:"settings,omitempty"`

	// StaticData persisted between executions
	StaticData map[string]interface{} `json:"staticData,omitempty"`

	// Active indicates whether the workflow is activated. Managed by
	// the server; ignored on create and update.
	Active bool `json:"active,omitempty"`

	// Tags attached to the workflow
	Tags []Tag `json:"tags,omitempty"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Validate checks that the workflow conforms to its declared shape. Nodes
// and connections must be present but may be empty.
func (w Workflow) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Name, validation.Required),
		validation.Field(&w.Nodes, validation.NotNil),
		validation.Field(&w.Connections, validation.NotNil),
	)
}

// Node is a single step in a workflow
type Node struct {
	// ID of the node within the workflow
	ID string `json:"id"`

	// Name displayed in the editor; connection targets refer to it
	Name string `json:"name"`

	// Type identifies the node implementation, e.g. "n8n-nodes-base.webhook"
	Type string `json:"type"`

	// TypeVersion of the node type. n8n uses fractional versions such
	// as 1.1, so this is a float on the wire.
	TypeVersion float64 `json:"typeVersion"`

	// Position of the node on the editor canvas as [x, y]
	Position []float64 `json:"position"`

	// Parameters configure the node instance
	Parameters map[string]interface{} `json:"parameters,omitempty"`

	// WebhookID is set by the server for webhook-backed nodes
	WebhookID string `json:"webhookId,omitempty"`

	// Disabled nodes are skipped during execution
	Disabled bool `json:"disabled,omitempty"`

	NotesInFlow bool   `json:"notesInFlow,omitempty"`
	Notes       string `json:"notes,omitempty"`

	ExecuteOnce      bool `json:"executeOnce,omitempty"`
	AlwaysOutputData bool `json:"alwaysOutputData,omitempty"`

	// Retry behavior when the node fails
	RetryOnFail      bool `json:"retryOnFail,omitempty"`
	MaxTries         int  `json:"maxTries,omitempty"`
	WaitBetweenTries int  `json:"waitBetweenTries,omitempty"`

	ContinueOnFail bool   `json:"continueOnFail,omitempty"`
	OnError        string `json:"onError,omitempty"`

	// Credentials referenced by the node, keyed by credential type
	Credentials map[string]interface{} `json:"credentials,omitempty"`
}

// Validate checks the required node fields.
func (n Node) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.ID, validation.Required),
		validation.Field(&n.Name, validation.Required),
		validation.Field(&n.Type, validation.Required),
		validation.Field(&n.TypeVersion, validation.Required),
		validation.Field(&n.Position, validation.NotNil),
	)
}

// Connection identifies the input of a downstream node.
type Connection struct {
	// Node is the name of the target node
	Node string `json:"node"`

	// Type of the target input, usually "main"
	Type string `json:"type"`

	// Index of the target input
	Index int `json:"index"`
}

// Connections maps a source node name to its outgoing links, grouped by
// connection type and source output index.
type Connections map[string]map[string][][]Connection

// WorkflowSettings controls how the server runs and records a workflow.
type WorkflowSettings struct {
	SaveExecutionProgress    bool   `json:"saveExecutionProgress,omitempty"`
	SaveManualExecutions     bool   `json:"saveManualExecutions,omitempty"`
	SaveDataErrorExecution   string `json:"saveDataErrorExecution,omitempty"`
	SaveDataSuccessExecution string `json:"saveDataSuccessExecution,omitempty"`

	// ExecutionTimeout in seconds; 0 means the server default
	ExecutionTimeout int `json:"executionTimeout,omitempty"`

	// ErrorWorkflow is the ID of a workflow to run when this one fails
	ErrorWorkflow string `json:"errorWorkflow,omitempty"`

	Timezone string `json:"timezone,omitempty"`

	// ExecutionOrder is "v0" (legacy) or "v1"
	ExecutionOrder string `json:"executionOrder,omitempty"`
}

// DefaultWorkflowSettings returns the settings n8n applies to new workflows.
func DefaultWorkflowSettings() *WorkflowSettings {
	return &WorkflowSettings{
		SaveExecutionProgress:    true,
		SaveManualExecutions:     true,
		SaveDataErrorExecution:   "all",
		SaveDataSuccessExecution: "all",
		ExecutionOrder:           "v1",
	}
}
