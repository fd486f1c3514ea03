package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/gophcards/internal/client/models"
)

func (c *Client) ListCards(ctx context.Context, datasetID string) ([]models.VocabularyCard, error) {
	var out []models.VocabularyCard
	err := c.do(ctx, call{method: http.MethodGet, path: "/datasets/" + segment(datasetID) + "/cards", auth: true}, &out)
	return out, err
}

func (c *Client) CreateCard(ctx context.Context, card models.VocabularyCard) (models.VocabularyCard, error) {
	card.ID = ""
	out := card
	if err := c.do(ctx, call{method: http.MethodPost, path: "/cards", body: card, auth: true}, &out); err != nil {
		return models.VocabularyCard{}, err
	}
	return out, nil
}

func (c *Client) UpdateCard(ctx context.Context, id string, card models.VocabularyCard) (models.VocabularyCard, error) {
	body := card
	body.ID = ""
	card.ID = id
	out := card
	if err := c.do(ctx, call{method: http.MethodPut, path: "/cards/" + segment(id), body: body, auth: true}, &out); err != nil {
		return models.VocabularyCard{}, err
	}
	return out, nil
}

func (c *Client) DeleteCard(ctx context.Context, id string) error {
	return c.do(ctx, call{method: http.MethodDelete, path: "/cards/" + segment(id), auth: true}, nil)
}

// GenerateFields asks the backend to suggest meanings, IPA, examples and audio
// for word. Nothing is persisted.
func (c *Client) GenerateFields(ctx context.Context, word string) (*models.GeneratedFields, error) {
	var out models.GeneratedFields
	body := map[string]string{"word": word}
	if err := c.do(ctx, call{method: http.MethodPost, path: "/cards/generate", body: body, auth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
