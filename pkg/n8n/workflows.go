package n8n

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tcmartin/n8nclient/pkg/models"
)

// DefaultListLimit is the page size used when a list call does not set one
const DefaultListLimit = 100

// ListOptions control paginated list calls
type ListOptions struct {
	// Limit caps the number of items returned. Zero means DefaultListLimit.
	Limit int

	// Cursor resumes a listing from a previous page's NextCursor
	Cursor string
}

func (o *ListOptions) query() url.Values {
	limit := DefaultListLimit
	cursor := ""
	if o != nil {
		if o.Limit > 0 {
			limit = o.Limit
		}
		cursor = o.Cursor
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	return q
}

// WorkflowsClient operates on the workflows of an n8n instance
type WorkflowsClient struct {
	client *Client
}

// workflowPayload is the wire shape of workflow create and update requests.
// The server rejects read-only fields such as id and active, so the payload
// carries only the writable ones, and nodes and connections are never
// serialized as null.
type workflowPayload struct {
	Name        string                   `json:"name"`
	Nodes       []models.Node            `json:"nodes"`
	Connections models.Connections       `json:"connections"`
	Settings    *models.WorkflowSettings `json:"settings,omitempty"`
	StaticData  map[string]interface{}   `json:"staticData,omitempty"`
}

func newWorkflowPayload(workflow *models.Workflow) *workflowPayload {
	p := &workflowPayload{
		Name:        workflow.Name,
		Nodes:       workflow.Nodes,
		Connections: workflow.Connections,
		Settings:    workflow.Settings,
		StaticData:  workflow.StaticData,
	}
	if p.Nodes == nil {
		p.Nodes = []models.Node{}
	}
	if p.Connections == nil {
		p.Connections = models.Connections{}
	}
	return p
}

// List returns one page of workflows. An empty page is not an error.
func (wc *WorkflowsClient) List(ctx context.Context, opts *ListOptions) (*models.WorkflowList, error) {
	data, err := wc.client.do(ctx, http.MethodGet, "/workflows", opts.query(), nil)
	if err != nil {
		return nil, err
	}

	var list models.WorkflowList
	if err := decode("workflow list", data, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get retrieves a workflow by ID. A missing workflow is reported as an
// APIError matching ErrNotFound.
func (wc *WorkflowsClient) Get(ctx context.Context, id string) (*models.Workflow, error) {
	data, err := wc.client.do(ctx, http.MethodGet, "/workflows/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var workflow models.Workflow
	if err := decode("workflow", data, &workflow); err != nil {
		return nil, err
	}
	return &workflow, nil
}

// Create creates a workflow and returns it with its server-assigned ID. The
// workflow is validated locally before anything is sent.
func (wc *WorkflowsClient) Create(ctx context.Context, workflow *models.Workflow) (*models.Workflow, error) {
	if err := validateWorkflow(workflow); err != nil {
		return nil, err
	}

	data, err := wc.client.do(ctx, http.MethodPost, "/workflows", nil, newWorkflowPayload(workflow))
	if err != nil {
		return nil, err
	}

	var created models.Workflow
	if err := decode("workflow", data, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces a workflow's writable fields and returns the updated
// workflow.
func (wc *WorkflowsClient) Update(ctx context.Context, id string, workflow *models.Workflow) (*models.Workflow, error) {
	if err := validateWorkflow(workflow); err != nil {
		return nil, err
	}

	data, err := wc.client.do(ctx, http.MethodPut, "/workflows/"+url.PathEscape(id), nil, newWorkflowPayload(workflow))
	if err != nil {
		return nil, err
	}

	var updated models.Workflow
	if err := decode("workflow", data, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a workflow. Deleting a workflow that does not exist is
// surfaced as an APIError matching ErrNotFound, never swallowed.
func (wc *WorkflowsClient) Delete(ctx context.Context, id string) error {
	_, err := wc.client.do(ctx, http.MethodDelete, "/workflows/"+url.PathEscape(id), nil, nil)
	return err
}

func validateWorkflow(workflow *models.Workflow) error {
	if workflow == nil {
		return &ValidationError{Resource: "workflow", Err: errors.New("workflow is nil")}
	}
	if err := workflow.Validate(); err != nil {
		return &ValidationError{Resource: "workflow", Err: err}
	}
	return nil
}
