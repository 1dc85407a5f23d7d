package lintra

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/xavierca1/lintra-console/internal/entity"
)

// ListPosts aceita tanto um array quanto o envelope {"posts": [...]}.
func (c *Client) ListPosts(ctx context.Context) ([]entity.Post, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &raw); err != nil {
		return nil, err
	}
	return decodePosts(raw), nil
}

func decodePosts(raw json.RawMessage) []entity.Post {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []entity.Post{}
	}
	if raw[0] == '[' {
		var posts []entity.Post
		if err := json.Unmarshal(raw, &posts); err == nil {
			return posts
		}
		return []entity.Post{}
	}
	var env postsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Posts == nil {
		return []entity.Post{}
	}
	return env.Posts
}

func (c *Client) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	var out entity.Post
	if err := c.do(ctx, http.MethodGet, "/posts/id/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePost(ctx context.Context, id string, in entity.PostInput) error {
	return c.do(ctx, http.MethodPut, "/posts/"+url.PathEscape(id), in, nil)
}

func (c *Client) SetPostStatus(ctx context.Context, id string, status entity.PostStatus) error {
	body := map[string]entity.PostStatus{"status": status}
	return c.do(ctx, http.MethodPut, "/posts/"+url.PathEscape(id), body, nil)
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListCategories(ctx context.Context) ([]entity.Category, error) {
	var out []entity.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
