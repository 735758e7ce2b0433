package n8n

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcmartin/n8nclient/pkg/config"
	"github.com/tcmartin/n8nclient/pkg/models"
	"github.com/tcmartin/n8nclient/pkg/n8ntest"
)

func TestExecutionsClient_List(t *testing.T) {
	srv := n8ntest.NewServer("test-key")
	defer srv.Close()
	client := testClient(t, srv)

	runData := map[string]interface{}{"resultData": map[string]interface{}{"runData": map[string]interface{}{}}}
	srv.SeedExecution(models.Execution{WorkflowID: 10, Mode: "trigger", Finished: true, Data: runData})
	srv.SeedExecution(models.Execution{WorkflowID: 10, Mode: "trigger"})
	srv.SeedExecution(models.Execution{WorkflowID: 20, Mode: "manual", Finished: true})

	t.Run("all executions", func(t *testing.T) {
		list, err := client.Executions.List(context.Background(), nil)
		require.NoError(t, err)
		assert.Len(t, list.Data, 3)
	})

	t.Run("filter by workflow", func(t *testing.T) {
		list, err := client.Executions.List(context.Background(), &ExecutionListOptions{WorkflowID: "20"})
		require.NoError(t, err)
		require.Len(t, list.Data, 1)
		assert.Equal(t, int64(20), list.Data[0].WorkflowID)
	})

	t.Run("filter by status", func(t *testing.T) {
		list, err := client.Executions.List(context.Background(), &ExecutionListOptions{
			Status: models.ExecutionStatusSuccess,
		})
		require.NoError(t, err)
		assert.Len(t, list.Data, 2)
	})

	t.Run("data omitted unless requested", func(t *testing.T) {
		list, err := client.Executions.List(context.Background(), nil)
		require.NoError(t, err)
		for _, e := range list.Data {
			assert.Nil(t, e.Data)
		}

		list, err = client.Executions.List(context.Background(), &ExecutionListOptions{
			WorkflowID:  "10",
			Status:      models.ExecutionStatusSuccess,
			IncludeData: true,
		})
		require.NoError(t, err)
		require.Len(t, list.Data, 1)
		assert.NotNil(t, list.Data[0].Data)
	})
}

func TestExecutionsClient_List_QueryParams(t *testing.T) {
	queryCh := make(chan string, 1)
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queryCh <- r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.ExecutionList{Data: []models.Execution{}})
	}))
	defer mockServer.Close()

	client, err := NewClient(&config.Config{BaseURL: mockServer.URL, APIKey: "k"})
	require.NoError(t, err)

	t.Run("defaults", func(t *testing.T) {
		_, err := client.Executions.List(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, "includeData=false&limit=100", <-queryCh)
	})

	t.Run("all filters", func(t *testing.T) {
		_, err := client.Executions.List(context.Background(), &ExecutionListOptions{
			Limit:       10,
			Cursor:      "c1",
			Status:      models.ExecutionStatusError,
			WorkflowID:  "42",
			IncludeData: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "cursor=c1&includeData=true&limit=10&status=error&workflowId=42", <-queryCh)
	})
}

func TestExecutionsClient_Get(t *testing.T) {
	srv := n8ntest.NewServer("test-key")
	defer srv.Close()
	client := testClient(t, srv)

	seeded := srv.SeedExecution(models.Execution{
		WorkflowID: 7,
		Mode:       "webhook",
		Finished:   true,
		Data:       map[string]interface{}{"resultData": map[string]interface{}{}},
	})

	t.Run("without data", func(t *testing.T) {
		got, err := client.Executions.Get(context.Background(), seeded.ID, false)
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, got.ID)
		assert.Equal(t, int64(7), got.WorkflowID)
		assert.Nil(t, got.Data)
	})

	t.Run("with data", func(t *testing.T) {
		got, err := client.Executions.Get(context.Background(), seeded.ID, true)
		require.NoError(t, err)
		assert.NotNil(t, got.Data)
	})

	t.Run("missing execution", func(t *testing.T) {
		_, err := client.Executions.Get(context.Background(), 99999, false)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestExecutionsClient_Delete(t *testing.T) {
	srv := n8ntest.NewServer("test-key")
	defer srv.Close()
	client := testClient(t, srv)

	seeded := srv.SeedExecution(models.Execution{WorkflowID: 7, Mode: "manual"})

	require.NoError(t, client.Executions.Delete(context.Background(), seeded.ID))

	_, err := client.Executions.Get(context.Background(), seeded.ID, false)
	assert.ErrorIs(t, err, ErrNotFound)

	err = client.Executions.Delete(context.Background(), seeded.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
