// Package blueprints loads workflow definitions from blueprint files and
// turns them into API-ready workflows. Blueprints are the JSON documents the
// n8n editor exports, or an equivalent YAML rendering of them.
package blueprints

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tcmartin/n8nclient/pkg/models"
	"github.com/tcmartin/n8nclient/pkg/n8n"
)

// Blueprint is a raw workflow definition as stored on disk
type Blueprint map[string]interface{}

// Load reads a blueprint file, picking the format by extension. JSON (.json)
// and YAML (.yaml, .yml) are supported.
func Load(path string) (Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprint file: %w", err)
	}

	var bp Blueprint
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &bp); err != nil {
			return nil, fmt.Errorf("failed to parse JSON blueprint: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &bp); err != nil {
			return nil, fmt.Errorf("failed to parse YAML blueprint: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported blueprint format %q", filepath.Ext(path))
	}

	return bp, nil
}

// ToWorkflow converts a blueprint into a validated workflow. Settings
// missing from the blueprint fall back to the server defaults.
func ToWorkflow(bp Blueprint) (*models.Workflow, error) {
	// Blueprints share the workflow wire format, so convert through it.
	// Unknown fields like the editor's pin data are dropped.
	data, err := json.Marshal(bp)
	if err != nil {
		return nil, fmt.Errorf("failed to encode blueprint: %w", err)
	}

	var workflow models.Workflow
	if err := json.Unmarshal(data, &workflow); err != nil {
		return nil, fmt.Errorf("failed to decode blueprint: %w", err)
	}

	if workflow.Settings == nil {
		workflow.Settings = models.DefaultWorkflowSettings()
	}

	if err := workflow.Validate(); err != nil {
		return nil, fmt.Errorf("invalid blueprint workflow: %w", err)
	}
	return &workflow, nil
}

// CreateWorkflow loads a blueprint file and creates its workflow on the
// instance. A non-empty name overrides the blueprint's own.
func CreateWorkflow(ctx context.Context, client *n8n.Client, path, name string) (*models.Workflow, error) {
	bp, err := Load(path)
	if err != nil {
		return nil, err
	}

	workflow, err := ToWorkflow(bp)
	if err != nil {
		return nil, err
	}

	if name != "" {
		workflow.Name = name
	}

	return client.Workflows.Create(ctx, workflow)
}
