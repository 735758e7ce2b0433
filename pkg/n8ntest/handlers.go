package n8ntest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/tcmartin/n8nclient/pkg/models"
)

// paginate applies the limit and cursor query parameters to a collection of
// n items, returning the window bounds and the cursor for the next page.
func paginate(r *http.Request, n int) (start, end int, next string, err error) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return 0, 0, "", errors.New("invalid limit")
		}
	}

	if raw := r.URL.Query().Get("cursor"); raw != "" {
		start, err = decodeCursor(raw)
		if err != nil {
			return 0, 0, "", errors.New("invalid cursor")
		}
	}

	if start > n {
		start = n
	}
	end = start + limit
	if end < n {
		next = encodeCursor(end)
	} else {
		end = n
	}
	return start, end, next, nil
}

// workflowRequest is the accepted body of workflow create and update calls.
// Pointer and slice fields distinguish absent properties from empty ones.
type workflowRequest struct {
	Name        string                   `json:"name"`
	Nodes       []models.Node            `json:"nodes"`
	Connections *models.Connections      `json:"connections"`
	Settings    *models.WorkflowSettings `json:"settings"`
	StaticData  map[string]interface{}   `json:"staticData"`
}

// decodeWorkflowRequest parses and checks a workflow body, rejecting unknown
// properties the way the real server does.
func decodeWorkflowRequest(r *http.Request) (*workflowRequest, error) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req workflowRequest
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("request/body is not valid: %v", err)
	}
	if req.Name == "" {
		return nil, errors.New("request/body must have required property 'name'")
	}
	if req.Nodes == nil {
		return nil, errors.New("request/body must have required property 'nodes'")
	}
	if req.Connections == nil {
		return nil, errors.New("request/body must have required property 'connections'")
	}
	return &req, nil
}

func (s *Server) handleListWorkflows(w http.ResponseWriter, r *http.Request) {
	workflows := s.store.workflowSnapshot()
	start, end, next, err := paginate(r, len(workflows))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, models.WorkflowList{
		Data:       workflows[start:end],
		NextCursor: next,
	})
}

func (s *Server) handleCreateWorkflow(w http.ResponseWriter, r *http.Request) {
	req, err := decodeWorkflowRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now().UTC()
	workflow := models.Workflow{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Nodes:       req.Nodes,
		Connections: *req.Connections,
		Settings:    req.Settings,
		StaticData:  req.StaticData,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}
	if workflow.Settings == nil {
		workflow.Settings = models.DefaultWorkflowSettings()
	}

	writeJSON(w, http.StatusOK, s.store.addWorkflow(workflow))
}

func (s *Server) handleGetWorkflow(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	workflow, ok := s.store.getWorkflow(id)
	if !ok {
		writeError(w, http.StatusNotFound, "workflow not found")
		return
	}
	writeJSON(w, http.StatusOK, workflow)
}

func (s *Server) handleUpdateWorkflow(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	req, err := decodeWorkflowRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	workflow, ok := s.store.getWorkflow(id)
	if !ok {
		writeError(w, http.StatusNotFound, "workflow not found")
		return
	}

	now := time.Now().UTC()
	workflow.Name = req.Name
	workflow.Nodes = req.Nodes
	workflow.Connections = *req.Connections
	workflow.StaticData = req.StaticData
	workflow.UpdatedAt = &now
	if req.Settings != nil {
		workflow.Settings = req.Settings
	}

	s.store.replaceWorkflow(workflow)
	writeJSON(w, http.StatusOK, workflow)
}

func (s *Server) handleDeleteWorkflow(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	workflow, ok := s.store.deleteWorkflow(id)
	if !ok {
		writeError(w, http.StatusNotFound, "workflow not found")
		return
	}
	writeJSON(w, http.StatusOK, workflow)
}

func (s *Server) handleListExecutions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	status := query.Get("status")
	workflowID := query.Get("workflowId")
	includeData := query.Get("includeData") == "true"

	var filtered []models.Execution
	for _, e := range s.store.executionSnapshot() {
		if status != "" && executionStatus(e) != status {
			continue
		}
		if workflowID != "" && strconv.FormatInt(e.WorkflowID, 10) != workflowID {
			continue
		}
		if !includeData {
			e.Data = nil
		}
		filtered = append(filtered, e)
	}

	start, end, next, err := paginate(r, len(filtered))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page := filtered[start:end]
	if page == nil {
		page = []models.Execution{}
	}
	writeJSON(w, http.StatusOK, models.ExecutionList{
		Data:       page,
		NextCursor: next,
	})
}

// executionStatus derives the filterable status of a stored execution
func executionStatus(e models.Execution) string {
	switch {
	case e.WaitTill != nil:
		return models.ExecutionStatusWaiting
	case e.Finished:
		return models.ExecutionStatusSuccess
	default:
		return models.ExecutionStatusError
	}
}

func (s *Server) handleGetExecution(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "execution id must be numeric")
		return
	}

	execution, ok := s.store.getExecution(id)
	if !ok {
		writeError(w, http.StatusNotFound, "execution not found")
		return
	}
	if r.URL.Query().Get("includeData") != "true" {
		execution.Data = nil
	}
	writeJSON(w, http.StatusOK, execution)
}

func (s *Server) handleDeleteExecution(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "execution id must be numeric")
		return
	}

	execution, ok := s.store.deleteExecution(id)
	if !ok {
		writeError(w, http.StatusNotFound, "execution not found")
		return
	}
	writeJSON(w, http.StatusOK, execution)
}

// credentialRequest is the accepted body of credential create calls
type credentialRequest struct {
	Name string                 `json:"name"`
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

func (s *Server) handleListCredentials(w http.ResponseWriter, r *http.Request) {
	credentials := s.store.credentialSnapshot()
	start, end, next, err := paginate(r, len(credentials))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, models.CredentialList{
		Data:       credentials[start:end],
		NextCursor: next,
	})
}

func (s *Server) handleCreateCredential(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req credentialRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("request/body is not valid: %v", err))
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "request/body must have required property 'name'")
		return
	}
	if req.Type == "" {
		writeError(w, http.StatusBadRequest, "request/body must have required property 'type'")
		return
	}
	if len(req.Data) == 0 {
		writeError(w, http.StatusBadRequest, "request/body must have required property 'data'")
		return
	}

	// The secret data is accepted but never echoed back
	now := time.Now().UTC()
	credential := models.Credential{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Type:      req.Type,
		CreatedAt: &now,
		UpdatedAt: &now,
	}

	writeJSON(w, http.StatusOK, s.store.addCredential(credential))
}

func (s *Server) handleDeleteCredential(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	credential, ok := s.store.deleteCredential(id)
	if !ok {
		writeError(w, http.StatusNotFound, "credential not found")
		return
	}
	writeJSON(w, http.StatusOK, credential)
}

// credentialSchemas holds the data schemas served for known credential types
var credentialSchemas = map[string]models.CredentialSchema{
	"httpBasicAuth": {
		Type: "object",
		Properties: map[string]interface{}{
			"user":     map[string]interface{}{"type": "string"},
			"password": map[string]interface{}{"type": "string"},
		},
		Required: []string{"user", "password"},
	},
	"githubApi": {
		Type: "object",
		Properties: map[string]interface{}{
			"server":      map[string]interface{}{"type": "string"},
			"user":        map[string]interface{}{"type": "string"},
			"accessToken": map[string]interface{}{"type": "string"},
		},
		Required: []string{"server", "user", "accessToken"},
	},
}

func (s *Server) handleGetCredentialSchema(w http.ResponseWriter, r *http.Request) {
	credentialType := mux.Vars(r)["type"]
	schema, ok := credentialSchemas[credentialType]
	if !ok {
		writeError(w, http.StatusNotFound, "credential type not found")
		return
	}
	writeJSON(w, http.StatusOK, schema)
}

// tagRequest is the accepted body of tag create calls
type tagRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	tags := s.store.tagSnapshot()
	start, end, next, err := paginate(r, len(tags))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, models.TagList{
		Data:       tags[start:end],
		NextCursor: next,
	})
}

func (s *Server) handleCreateTag(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req tagRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("request/body is not valid: %v", err))
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "request/body must have required property 'name'")
		return
	}

	now := time.Now().UTC()
	tag, err := s.store.addTag(models.Tag{
		ID:        uuid.NewString(),
		Name:      req.Name,
		CreatedAt: &now,
		UpdatedAt: &now,
	})
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, tag)
}

func (s *Server) handleGetTag(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	tag, ok := s.store.getTag(id)
	if !ok {
		writeError(w, http.StatusNotFound, "tag not found")
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

func (s *Server) handleDeleteTag(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	tag, ok := s.store.deleteTag(id)
	if !ok {
		writeError(w, http.StatusNotFound, "tag not found")
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

func (s *Server) handleGenerateAudit(w http.ResponseWriter, r *http.Request) {
	// The body is optional; accepted options do not change the canned report
	var opts models.AuditOptions
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("request/body is not valid: %v", err))
			return
		}
	}

	writeJSON(w, http.StatusOK, models.Audit{
		Credentials: map[string]interface{}{
			"risk": "credentials",
			"sections": []interface{}{
				map[string]interface{}{
					"title":          "Credentials not used in any workflow",
					"description":    "These credentials are not used in any workflow.",
					"recommendation": "Consider deleting them.",
					"location":       []interface{}{},
				},
			},
		},
		Database: map[string]interface{}{
			"risk":     "database",
			"sections": []interface{}{},
		},
		Filesystem: map[string]interface{}{
			"risk":     "filesystem",
			"sections": []interface{}{},
		},
		Nodes: map[string]interface{}{
			"risk":     "nodes",
			"sections": []interface{}{},
		},
		Instance: map[string]interface{}{
			"risk":     "instance",
			"sections": []interface{}{},
		},
	})
}
