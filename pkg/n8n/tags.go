package n8n

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/tcmartin/n8nclient/pkg/models"
)

// TagsClient operates on the tags of an n8n instance
type TagsClient struct {
	client *Client
}

// tagPayload is the wire shape of tag create requests
type tagPayload struct {
	Name string `json:"name"`
}

// List returns one page of tags
func (tc *TagsClient) List(ctx context.Context, opts *ListOptions) (*models.TagList, error) {
	data, err := tc.client.do(ctx, http.MethodGet, "/tags", opts.query(), nil)
	if err != nil {
		return nil, err
	}

	var list models.TagList
	if err := decode("tag list", data, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Create creates a tag and returns it with its server-assigned ID
func (tc *TagsClient) Create(ctx context.Context, tag *models.Tag) (*models.Tag, error) {
	if tag == nil {
		return nil, &ValidationError{Resource: "tag", Err: errors.New("tag is nil")}
	}
	if err := tag.Validate(); err != nil {
		return nil, &ValidationError{Resource: "tag", Err: err}
	}

	data, err := tc.client.do(ctx, http.MethodPost, "/tags", nil, &tagPayload{Name: tag.Name})
	if err != nil {
		return nil, err
	}

	var created models.Tag
	if err := decode("tag", data, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Get retrieves a tag by ID
func (tc *TagsClient) Get(ctx context.Context, id string) (*models.Tag, error) {
	data, err := tc.client.do(ctx, http.MethodGet, "/tags/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var tag models.Tag
	if err := decode("tag", data, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// Delete removes a tag
func (tc *TagsClient) Delete(ctx context.Context, id string) error {
	_, err := tc.client.do(ctx, http.MethodDelete, "/tags/"+url.PathEscape(id), nil, nil)
	return err
}
