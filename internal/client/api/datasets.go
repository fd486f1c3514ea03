package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/gophcards/internal/client/models"
)

func (c *Client) ListDatasets(ctx context.Context, userID string) ([]models.Dataset, error) {
	var out []models.Dataset
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/datasets",
		query:  url.Values{"user_id": {userID}},
		auth:   true,
	}, &out)
	return out, err
}

// CreateDataset answers with the submitted dataset carrying the id assigned
// by the backend.
func (c *Client) CreateDataset(ctx context.Context, d models.Dataset) (models.Dataset, error) {
	d.ID = ""
	out := d
	body := createDatasetRequest{UserID: d.UserID, Name: d.Name, Description: d.Description}
	if err := c.do(ctx, call{method: http.MethodPost, path: "/datasets", body: body, auth: true}, &out); err != nil {
		return models.Dataset{}, err
	}
	return out, nil
}

func (c *Client) UpdateDataset(ctx context.Context, id string, d models.Dataset) (models.Dataset, error) {
	d.ID = id
	out := d
	body := updateDatasetRequest{Name: d.Name, Description: d.Description}
	if err := c.do(ctx, call{method: http.MethodPut, path: "/datasets/" + segment(id), body: body, auth: true}, &out); err != nil {
		return models.Dataset{}, err
	}
	return out, nil
}

func (c *Client) DeleteDataset(ctx context.Context, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/datasets/" + segment(id), auth: true}, nil)
}
