// Package n8n provides a typed client for the n8n REST API.
//
// A Client is built from a config.Config and exposes one sub-client per
// resource family:
//
//	cfg := &config.Config{
//		BaseURL: "http://localhost:5678",
//		APIKey:  os.Getenv("N8N_API_KEY"),
//	}
//	client, err := n8n.NewClient(cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	page, err := client.Workflows.List(ctx, nil)
//
// Every call takes a context; cancelling it aborts the in-flight request.
// The client never retries, caches or follows pagination cursors on its
// own.
package n8n

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"

	"github.com/tcmartin/n8nclient/pkg/config"
)

// Version of the client library
const Version = "0.1.0"

// apiPrefix is the path prefix of the public REST API
const apiPrefix = "/api/v1"

// Client is a client for one n8n instance. Its configuration is fixed at
// construction and it is safe for concurrent use.
type Client struct {
	baseURL        string
	apiKey         string
	defaultHeaders map[string]string
	httpClient     *http.Client
	logger         hclog.Logger

	// Workflows operates on /workflows
	Workflows *WorkflowsClient

	// Executions operates on /executions
	Executions *ExecutionsClient

	// Credentials operates on /credentials
	Credentials *CredentialsClient

	// Tags operates on /tags
	Tags *TagsClient

	// Audit generates security audits via /audit
	Audit *AuditClient
}

// NewClient creates a client from the given configuration. The configuration
// is copied, so later changes to it do not affect the client.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = cfg.NewHTTPClient()
	}

	headers := make(map[string]string, len(cfg.DefaultHeaders))
	for key, value := range cfg.DefaultHeaders {
		headers[key] = value
	}

	c := &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/") + apiPrefix,
		apiKey:         cfg.APIKey,
		defaultHeaders: headers,
		httpClient:     httpClient,
		logger:         logger.Named("n8n"),
	}

	c.Workflows = &WorkflowsClient{client: c}
	c.Executions = &ExecutionsClient{client: c}
	c.Credentials = &CredentialsClient{client: c}
	c.Tags = &TagsClient{client: c}
	c.Audit = &AuditClient{client: c}

	return c, nil
}

// Ping verifies that the instance is reachable and the API key is accepted
// by listing workflows.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/workflows", nil, nil)
	return err
}

// Close releases idle connections held by the underlying HTTP client.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// do executes one API request. It joins the base URL with path, attaches the
// default and authentication headers, serializes body to JSON and returns
// the raw response body. Non-2xx responses become an APIError, transport
// failures a ConnectionError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "n8nclient/"+Version)
	for key, value := range c.defaultHeaders {
		req.Header.Set(key, value)
	}
	if c.apiKey != "" {
		req.Header.Set("X-N8N-API-KEY", c.apiKey)
	}

	c.logger.Debug("sending request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{URL: endpoint, Err: err}
	}

	c.logger.Debug("received response",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"content_length", len(respBody),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// decode unmarshals a response body into out and, when out knows how to
// validate itself, checks it against its declared shape. Failures are
// reported as a ValidationError naming the resource.
func decode(resource string, data []byte, out interface{}) error {
	if err := json.Unmarshal(data, out); err != nil {
		return &ValidationError{Resource: resource, Err: err}
	}
	if v, ok := out.(validation.Validatable); ok {
		if err := v.Validate(); err != nil {
			return &ValidationError{Resource: resource, Err: err}
		}
	}
	return nil
}
