package lintra

import (
	"context"
	"errors"
	"net/http"

	"github.com/xavierca1/lintra-console/internal/entity"
)

func (c *Client) ListUsers(ctx context.Context) ([]entity.User, error) {
	var out []entity.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListContacts(ctx context.Context) ([]entity.Contact, error) {
	var out []entity.Contact
	if err := c.do(ctx, http.MethodGet, "/contacts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Login stores the session cookie in the client's jar.
func (c *Client) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	var out LoginOutput
	if err := c.do(ctx, http.MethodPost, "/auth/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me probes the session. An unauthenticated session is (nil, nil), not an error.
func (c *Client) Me(ctx context.Context) (*entity.User, error) {
	var out entity.User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}
