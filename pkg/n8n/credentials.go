package n8n

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/tcmartin/n8nclient/pkg/models"
)

// CredentialsClient operates on the credentials of an n8n instance
type CredentialsClient struct {
	client *Client
}

// credentialPayload is the wire shape of credential create requests
type credentialPayload struct {
	Name string                 `json:"name"`
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// List returns one page of credentials. The server never includes the secret
// data fields.
func (cc *CredentialsClient) List(ctx context.Context, opts *ListOptions) (*models.CredentialList, error) {
	data, err := cc.client.do(ctx, http.MethodGet, "/credentials", opts.query(), nil)
	if err != nil {
		return nil, err
	}

	var list models.CredentialList
	if err := decode("credential list", data, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Create stores a credential and returns it with its server-assigned ID.
// The secret data is required on create even though the server never echoes
// it back.
func (cc *CredentialsClient) Create(ctx context.Context, credential *models.Credential) (*models.Credential, error) {
	if credential == nil {
		return nil, &ValidationError{Resource: "credential", Err: errors.New("credential is nil")}
	}
	if err := credential.Validate(); err != nil {
		return nil, &ValidationError{Resource: "credential", Err: err}
	}
	if len(credential.Data) == 0 {
		return nil, &ValidationError{Resource: "credential", Err: errors.New("data cannot be empty")}
	}

	payload := &credentialPayload{
		Name: credential.Name,
		Type: credential.Type,
		Data: credential.Data,
	}

	data, err := cc.client.do(ctx, http.MethodPost, "/credentials", nil, payload)
	if err != nil {
		return nil, err
	}

	var created models.Credential
	if err := decode("credential", data, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete removes a credential
func (cc *CredentialsClient) Delete(ctx context.Context, id string) error {
	_, err := cc.client.do(ctx, http.MethodDelete, "/credentials/"+url.PathEscape(id), nil, nil)
	return err
}

// GetSchema returns the data schema of a credential type, e.g. "githubApi"
func (cc *CredentialsClient) GetSchema(ctx context.Context, credentialType string) (*models.CredentialSchema, error) {
	data, err := cc.client.do(ctx, http.MethodGet, "/credentials/schema/"+url.PathEscape(credentialType), nil, nil)
	if err != nil {
		return nil, err
	}

	var schema models.CredentialSchema
	if err := decode("credential schema", data, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}
