package api

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophcards/internal/client/models"
)

func (c *Client) ListProgress(ctx context.Context, userID string) ([]models.ProgressEntry, error) {
	var out []models.ProgressEntry
	err := c.do(ctx, call{method: http.MethodGet, path: "/api/progress/user/" + segment(userID), auth: true}, &out)
	return out, err
}

func (c *Client) CreateProgress(ctx context.Context, p models.ProgressEntry) (models.ProgressEntry, error) {
	p.ID = ""
	out := p
	body := newCreateProgressRequest(p)
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/progress", body: body, auth: true}, &out); err != nil {
		return models.ProgressEntry{}, err
	}
	return out, nil
}

// UpdateProgress sends last_reviewed only when p.Reviewed is set; the backend
// then records its own time, mirrored locally in the result.
func (c *Client) UpdateProgress(ctx context.Context, id string, p models.ProgressEntry) (models.ProgressEntry, error) {
	now := time.Now().UTC()
	body := newUpdateProgressRequest(p, now)

	p.ID = id
	if p.Reviewed {
		p.LastReviewed = models.NewTimestamp(now)
		p.Reviewed = false
	}
	out := p
	if err := c.do(ctx, call{method: http.MethodPut, path: "/api/progress/" + segment(id), body: body, auth: true}, &out); err != nil {
		return models.ProgressEntry{}, err
	}
	return out, nil
}

func (c *Client) DeleteProgress(ctx context.Context, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/api/progress/" + segment(id), auth: true}, nil)
}
