package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecution_Validate(t *testing.T) {
	t.Run("valid execution", func(t *testing.T) {
		e := Execution{ID: 42, Mode: "manual", WorkflowID: 7}
		assert.NoError(t, e.Validate())
	})

	t.Run("missing id", func(t *testing.T) {
		e := Execution{Mode: "manual", WorkflowID: 7}
		assert.Error(t, e.Validate())
	})

	t.Run("missing mode", func(t *testing.T) {
		e := Execution{ID: 42, WorkflowID: 7}
		assert.Error(t, e.Validate())
	})

	t.Run("missing workflow id", func(t *testing.T) {
		e := Execution{ID: 42, Mode: "manual"}
		assert.Error(t, e.Validate())
	})
}

func TestExecution_JSON(t *testing.T) {
	payload := `{
		"id": 1042,
		"finished": true,
		"mode": "trigger",
		"startedAt": "2023-10-09T10:11:34.000Z",
		"stoppedAt": "2023-10-09T10:11:35.000Z",
		"workflowId": 57,
		"data": {"resultData": {"runData": {}}}
	}`

	var e Execution
	require.NoError(t, json.Unmarshal([]byte(payload), &e))
	assert.Equal(t, int64(1042), e.ID)
	assert.Equal(t, int64(57), e.WorkflowID)
	assert.True(t, e.Finished)
	assert.Equal(t, "trigger", e.Mode)
	require.NotNil(t, e.StartedAt)
	assert.NotNil(t, e.Data)
}

func TestCredential_Validate(t *testing.T) {
	t.Run("valid credential", func(t *testing.T) {
		c := Credential{
			Name: "Joe's Github Creds",
			Type: "github",
			Data: map[string]interface{}{"token": "ada612vad6fa5df4adf5a5dsf4389adsf76da7s"},
		}
		assert.NoError(t, c.Validate())
	})

	t.Run("data is optional", func(t *testing.T) {
		// The server never returns the data field, so a credential
		// without it must still validate.
		c := Credential{ID: "c1", Name: "Joe's Github Creds", Type: "github"}
		assert.NoError(t, c.Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		c := Credential{Type: "github"}
		assert.Error(t, c.Validate())
	})

	t.Run("missing type", func(t *testing.T) {
		c := Credential{Name: "Joe's Github Creds"}
		assert.Error(t, c.Validate())
	})
}

func TestCredentialSchema_Validate(t *testing.T) {
	t.Run("valid schema", func(t *testing.T) {
		s := CredentialSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"user":     map[string]interface{}{"type": "string"},
				"password": map[string]interface{}{"type": "string"},
			},
			Required: []string{"user", "password"},
		}
		assert.NoError(t, s.Validate())
	})

	t.Run("nil properties", func(t *testing.T) {
		s := CredentialSchema{Type: "object"}
		assert.Error(t, s.Validate())
	})
}

func TestTag_Validate(t *testing.T) {
	t.Run("valid tag", func(t *testing.T) {
		assert.NoError(t, Tag{Name: "production"}.Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		assert.Error(t, Tag{ID: "t1"}.Validate())
	})
}

func TestLists_Validate(t *testing.T) {
	t.Run("empty data is valid", func(t *testing.T) {
		assert.NoError(t, WorkflowList{Data: []Workflow{}}.Validate())
		assert.NoError(t, ExecutionList{Data: []Execution{}}.Validate())
		assert.NoError(t, CredentialList{Data: []Credential{}}.Validate())
		assert.NoError(t, TagList{Data: []Tag{}}.Validate())
	})

	t.Run("nil data is invalid", func(t *testing.T) {
		assert.Error(t, WorkflowList{}.Validate())
		assert.Error(t, ExecutionList{}.Validate())
		assert.Error(t, CredentialList{}.Validate())
		assert.Error(t, TagList{}.Validate())
	})
}

func TestWorkflowList_JSON(t *testing.T) {
	payload := `{
		"data": [
			{"id": "w1", "name": "First", "nodes": [], "connections": {}},
			{"id": "w2", "name": "Second", "nodes": [], "connections": {}}
		],
		"nextCursor": "MTIzZTQ1NjctZTg5Yi0xMmQzLWE0NTYtNDI2NjE0MTc0MDAw"
	}`

	var list WorkflowList
	require.NoError(t, json.Unmarshal([]byte(payload), &list))
	require.Len(t, list.Data, 2)
	assert.Equal(t, "First", list.Data[0].Name)
	assert.Equal(t, "MTIzZTQ1NjctZTg5Yi0xMmQzLWE0NTYtNDI2NjE0MTc0MDAw", list.NextCursor)

	t.Run("last page has no cursor", func(t *testing.T) {
		var last ExecutionList
		require.NoError(t, json.Unmarshal([]byte(`{"data": []}`), &last))
		assert.NoError(t, last.Validate())
		assert.Empty(t, last.NextCursor)
	})
}
