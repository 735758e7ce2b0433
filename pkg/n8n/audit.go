package n8n

import (
	"context"
	"net/http"

	"github.com/tcmartin/n8nclient/pkg/models"
)

// AuditClient generates security audits for an n8n instance
type AuditClient struct {
	client *Client
}

// Generate runs a security audit and returns the report. Pass nil options to
// audit everything with the server defaults.
func (ac *AuditClient) Generate(ctx context.Context, opts *models.AuditOptions) (*models.Audit, error) {
	var body interface{}
	if opts != nil {
		body = opts
	}

	data, err := ac.client.do(ctx, http.MethodPost, "/audit", nil, body)
	if err != nil {
		return nil, err
	}

	var audit models.Audit
	if err := decode("audit", data, &audit); err != nil {
		return nil, err
	}
	return &audit, nil
}
