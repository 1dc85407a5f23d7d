package lintra

import (
	"context"
	"net/http"
	"net/url"

	"github.com/xavierca1/lintra-console/internal/entity"
)

func (c *Client) ListOpportunities(ctx context.Context, pipelineID string) ([]entity.Deal, error) {
	var raw []opportunityResponse
	if err := c.do(ctx, http.MethodGet, "/opportunities/pipeline/"+url.PathEscape(pipelineID), nil, &raw); err != nil {
		return nil, err
	}
	deals := make([]entity.Deal, 0, len(raw))
	for _, r := range raw {
		d := r.toDeal()
		if d.FunnelID == "" {
			d.FunnelID = pipelineID
		}
		deals = append(deals, d)
	}
	return deals, nil
}

func (c *Client) CreateOpportunity(ctx context.Context, in OpportunityInput) (*entity.Deal, error) {
	var raw opportunityResponse
	if err := c.do(ctx, http.MethodPost, "/opportunities/createOpportunity", in, &raw); err != nil {
		return nil, err
	}
	d := raw.toDeal()
	return &d, nil
}

func (c *Client) UpdateOpportunity(ctx context.Context, id string, in OpportunityInput) (*entity.Deal, error) {
	var raw opportunityResponse
	if err := c.do(ctx, http.MethodPut, "/opportunities/"+url.PathEscape(id), in, &raw); err != nil {
		return nil, err
	}
	d := raw.toDeal()
	return &d, nil
}

// MoveOpportunity sends only the new stage id.
func (c *Client) MoveOpportunity(ctx context.Context, id, stageID string) error {
	return c.do(ctx, http.MethodPut, "/opportunities/"+url.PathEscape(id), stagePatch{StageID: stageID}, nil)
}

func (c *Client) DeleteOpportunity(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/opportunities/"+url.PathEscape(id), nil, nil)
}
