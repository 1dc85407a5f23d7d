package lintra

import (
	"context"
	"net/http"
	"net/url"

	"github.com/xavierca1/lintra-console/internal/entity"
)

type pipelineRequest struct {
	Name   string         `json:"name"`
	Stages []entity.Stage `json:"stages"`
}

func (c *Client) ListPipelines(ctx context.Context) ([]entity.Funnel, error) {
	var out []entity.Funnel
	if err := c.do(ctx, http.MethodGet, "/pipelines", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePipeline sends the whole draft; the answer carries server assigned stage ids.
func (c *Client) CreatePipeline(ctx context.Context, name string, stages []entity.Stage) (*entity.Funnel, error) {
	var out entity.Funnel
	if err := c.do(ctx, http.MethodPost, "/pipelines", pipelineRequest{Name: name, Stages: stages}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdatePipeline overwrites the stage list; stages missing from the list are deleted
// by the server.
func (c *Client) UpdatePipeline(ctx context.Context, id, name string, stages []entity.Stage) (*entity.Funnel, error) {
	var out entity.Funnel
	path := "/pipelines/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, pipelineRequest{Name: name, Stages: stages}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePipeline(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/pipelines/"+url.PathEscape(id), nil, nil)
}
