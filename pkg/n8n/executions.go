package n8n

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tcmartin/n8nclient/pkg/models"
)

// ExecutionListOptions control execution list calls
type ExecutionListOptions struct {
	// Limit caps the number of items returned. Zero means DefaultListLimit.
	Limit int

	// Cursor resumes a listing from a previous page's NextCursor
	Cursor string

	// Status filters by execution status, one of the ExecutionStatus
	// constants. Empty means all statuses.
	Status string

	// WorkflowID restricts results to executions of one workflow
	WorkflowID string

	// IncludeData requests the full run data of each execution
	IncludeData bool
}

func (o *ExecutionListOptions) query() url.Values {
	limit := DefaultListLimit
	includeData := false
	cursor, status, workflowID := "", "", ""
	if o != nil {
		if o.Limit > 0 {
			limit = o.Limit
		}
		includeData = o.IncludeData
		cursor = o.Cursor
		status = o.Status
		workflowID = o.WorkflowID
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("includeData", strconv.FormatBool(includeData))
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	if status != "" {
		q.Set("status", status)
	}
	if workflowID != "" {
		q.Set("workflowId", workflowID)
	}
	return q
}

// ExecutionsClient operates on the executions of an n8n instance. Executions
// are created by the server as workflows run; the client can only list,
// inspect and delete them.
type ExecutionsClient struct {
	client *Client
}

// List returns one page of executions. An empty page is not an error.
func (ec *ExecutionsClient) List(ctx context.Context, opts *ExecutionListOptions) (*models.ExecutionList, error) {
	data, err := ec.client.do(ctx, http.MethodGet, "/executions", opts.query(), nil)
	if err != nil {
		return nil, err
	}

	var list models.ExecutionList
	if err := decode("execution list", data, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get retrieves an execution by its numeric ID. Set includeData to also
// fetch the run data.
func (ec *ExecutionsClient) Get(ctx context.Context, id int64, includeData bool) (*models.Execution, error) {
	q := url.Values{}
	q.Set("includeData", strconv.FormatBool(includeData))

	data, err := ec.client.do(ctx, http.MethodGet, "/executions/"+strconv.FormatInt(id, 10), q, nil)
	if err != nil {
		return nil, err
	}

	var execution models.Execution
	if err := decode("execution", data, &execution); err != nil {
		return nil, err
	}
	return &execution, nil
}

// Delete removes an execution
func (ec *ExecutionsClient) Delete(ctx context.Context, id int64) error {
	_, err := ec.client.do(ctx, http.MethodDelete, "/executions/"+strconv.FormatInt(id, 10), nil, nil)
	return err
}
