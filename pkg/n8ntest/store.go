package n8ntest

import (
	"encoding/base64"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tcmartin/n8nclient/pkg/models"
)

// store holds the fake instance state. Resources keep their insertion order
// so repeated list calls return stable pages.
type store struct {
	mu sync.RWMutex

	workflows   []models.Workflow
	executions  []models.Execution
	credentials []models.Credential
	tags        []models.Tag

	nextExecutionID int64
}

func newStore() *store {
	return &store{nextExecutionID: 1}
}

func (st *store) reset() {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.workflows = nil
	st.executions = nil
	st.credentials = nil
	st.tags = nil
	st.nextExecutionID = 1
}

func (st *store) addWorkflow(w models.Workflow) models.Workflow {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.workflows = append(st.workflows, w)
	return w
}

func (st *store) workflowSnapshot() []models.Workflow {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make([]models.Workflow, len(st.workflows))
	copy(out, st.workflows)
	return out
}

func (st *store) getWorkflow(id string) (models.Workflow, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	for _, w := range st.workflows {
		if w.ID == id {
			return w, true
		}
	}
	return models.Workflow{}, false
}

func (st *store) replaceWorkflow(updated models.Workflow) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	for i, w := range st.workflows {
		if w.ID == updated.ID {
			st.workflows[i] = updated
			return true
		}
	}
	return false
}

func (st *store) deleteWorkflow(id string) (models.Workflow, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for i, w := range st.workflows {
		if w.ID == id {
			st.workflows = append(st.workflows[:i], st.workflows[i+1:]...)
			return w, true
		}
	}
	return models.Workflow{}, false
}

func (st *store) addExecution(e models.Execution) models.Execution {
	st.mu.Lock()
	defer st.mu.Unlock()

	if e.ID == 0 {
		e.ID = st.nextExecutionID
		st.nextExecutionID++
	} else if e.ID >= st.nextExecutionID {
		st.nextExecutionID = e.ID + 1
	}
	st.executions = append(st.executions, e)
	return e
}

func (st *store) executionSnapshot() []models.Execution {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make([]models.Execution, len(st.executions))
	copy(out, st.executions)
	return out
}

func (st *store) getExecution(id int64) (models.Execution, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	for _, e := range st.executions {
		if e.ID == id {
			return e, true
		}
	}
	return models.Execution{}, false
}

func (st *store) deleteExecution(id int64) (models.Execution, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for i, e := range st.executions {
		if e.ID == id {
			st.executions = append(st.executions[:i], st.executions[i+1:]...)
			return e, true
		}
	}
	return models.Execution{}, false
}

func (st *store) addCredential(c models.Credential) models.Credential {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.credentials = append(st.credentials, c)
	return c
}

func (st *store) credentialSnapshot() []models.Credential {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make([]models.Credential, len(st.credentials))
	copy(out, st.credentials)
	return out
}

func (st *store) deleteCredential(id string) (models.Credential, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for i, c := range st.credentials {
		if c.ID == id {
			st.credentials = append(st.credentials[:i], st.credentials[i+1:]...)
			return c, true
		}
	}
	return models.Credential{}, false
}

func (st *store) addTag(t models.Tag) (models.Tag, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, existing := range st.tags {
		if existing.Name == t.Name {
			return models.Tag{}, errors.New("tag name already exists")
		}
	}
	st.tags = append(st.tags, t)
	return t, nil
}

func (st *store) tagSnapshot() []models.Tag {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make([]models.Tag, len(st.tags))
	copy(out, st.tags)
	return out
}

func (st *store) getTag(id string) (models.Tag, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	for _, t := range st.tags {
		if t.ID == id {
			return t, true
		}
	}
	return models.Tag{}, false
}

func (st *store) deleteTag(id string) (models.Tag, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for i, t := range st.tags {
		if t.ID == id {
			st.tags = append(st.tags[:i], st.tags[i+1:]...)
			return t, true
		}
	}
	return models.Tag{}, false
}

// SeedWorkflow stores a workflow directly, assigning an ID and timestamps
// when missing, and returns the stored copy.
func (s *Server) SeedWorkflow(w models.Workflow) models.Workflow {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if w.CreatedAt == nil {
		w.CreatedAt = &now
	}
	if w.UpdatedAt == nil {
		w.UpdatedAt = &now
	}
	if w.Nodes == nil {
		w.Nodes = []models.Node{}
	}
	if w.Connections == nil {
		w.Connections = models.Connections{}
	}
	return s.store.addWorkflow(w)
}

// SeedExecution stores an execution directly, assigning the next numeric ID
// when the given one is zero. Executions cannot be created through the API,
// so tests seed them here.
func (s *Server) SeedExecution(e models.Execution) models.Execution {
	if e.Mode == "" {
		e.Mode = "manual"
	}
	return s.store.addExecution(e)
}

// SeedCredential stores a credential directly, assigning an ID when missing.
// The secret data is dropped, as the real server never returns it.
func (s *Server) SeedCredential(c models.Credential) models.Credential {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.Data = nil
	return s.store.addCredential(c)
}

// SeedTag stores a tag directly, assigning an ID when missing
func (s *Server) SeedTag(t models.Tag) models.Tag {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	stored, err := s.store.addTag(t)
	if err != nil {
		return t
	}
	return stored
}

// encodeCursor builds the opaque pagination cursor for an offset
func encodeCursor(offset int) string {
	return base64.URLEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

// decodeCursor parses an opaque pagination cursor back into an offset
func decodeCursor(cursor string) (int, error) {
	raw, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return 0, err
	}
	offset, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, err
	}
	if offset < 0 {
		return 0, errors.New("negative cursor offset")
	}
	return offset, nil
}
