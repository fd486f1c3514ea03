package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/gophcards/internal/client/models"
)

// GetSettings fails with ErrNotFound when the user never saved settings.
func (c *Client) GetSettings(ctx context.Context, userID string) (*models.Settings, error) {
	out := models.Settings{UserID: userID}
	if err := c.do(ctx, call{method: http.MethodGet, path: "/settings/" + segment(userID), auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSettings(ctx context.Context, s models.Settings) (*models.Settings, error) {
	out := s
	if err := c.do(ctx, call{method: http.MethodPost, path: "/settings", body: s, auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSettings writes the whole record for s.UserID.
func (c *Client) UpdateSettings(ctx context.Context, s models.Settings) (*models.Settings, error) {
	out := s
	if err := c.do(ctx, call{method: http.MethodPut, path: "/settings/" + segment(s.UserID), body: s, auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
