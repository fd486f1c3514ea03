package api

import (
	"time"

	"github.com/dmitrijs2005/gophcards/internal/client/models"
)

// Write bodies carry only the fields the backend reads for each route.

type createDatasetRequest struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateDatasetRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type createProgressRequest struct {
	UserID     string                `json:"user_id"`
	CardID     string                `json:"card_id"`
	DatasetID  string                `json:"dataset_id"`
	Status     models.ProgressStatus `json:"status,omitempty"`
	NextReview *models.Timestamp     `json:"next_review,omitempty"`
	Streak     int                   `json:"streak"`
	EaseFactor float64               `json:"ease_factor"`
	Interval   int                   `json:"interval"`
}

// updateProgressRequest leaves out last_reviewed unless a review is being
// recorded: the backend stamps its own clock whenever the key is present.
type updateProgressRequest struct {
	Status       models.ProgressStatus `json:"status,omitempty"`
	LastReviewed *models.Timestamp     `json:"last_reviewed,omitempty"`
	NextReview   *models.Timestamp     `json:"next_review"`
	Streak       int                   `json:"streak"`
	EaseFactor   float64               `json:"ease_factor"`
	Interval     int                   `json:"interval"`
}

func timestampOrNil(t models.Timestamp) *models.Timestamp {
	if t.IsZero() {
		return nil
	}
	return &t
}

func newCreateProgressRequest(p models.ProgressEntry) createProgressRequest {
	return createProgressRequest{
		UserID:     p.UserID,
		CardID:     p.CardID,
		DatasetID:  p.DatasetID,
		Status:     p.Status,
		NextReview: timestampOrNil(p.NextReview),
		Streak:     p.Streak,
		EaseFactor: p.EaseFactor,
		Interval:   p.Interval,
	}
}

func newUpdateProgressRequest(p models.ProgressEntry, now time.Time) updateProgressRequest {
	req := updateProgressRequest{
		Status:     p.Status,
		NextReview: timestampOrNil(p.NextReview),
		Streak:     p.Streak,
		EaseFactor: p.EaseFactor,
		Interval:   p.Interval,
	}
	if p.Reviewed {
		req.LastReviewed = &models.Timestamp{Time: now}
	}
	return req
}
