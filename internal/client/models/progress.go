package models

import (
	"encoding/json"
	"time"
)

type ProgressStatus string

const (
	StatusNew       ProgressStatus = "new"
	StatusLearning  ProgressStatus = "learning"
	StatusReview    ProgressStatus = "review"
	StatusCompleted ProgressStatus = "completed"
)

const (
	DefaultEaseFactor = 2.5
	DefaultInterval   = 1
)

// ProgressEntry is a user's review state for one card. The client stores
// the scheduling fields verbatim and never interprets them.
type ProgressEntry struct {
	ID           string         `json:"progress_id,omitempty"`
	UserID       string         `json:"user_id"`
	CardID       string         `json:"card_id"`
	DatasetID    string         `json:"dataset_id"`
	Status       ProgressStatus `json:"status"`
	LastReviewed Timestamp      `json:"last_reviewed"`
	NextReview   Timestamp      `json:"next_review"`
	Streak       int            `json:"streak"`
	EaseFactor   float64        `json:"ease_factor"`
	Interval     int            `json:"interval"`

	// Reviewed asks an update to record a review now.
	Reviewed bool `json:"-"`
}

// NewProgressEntry returns an entry with the backend's creation defaults.
func NewProgressEntry(userID, cardID, datasetID string) ProgressEntry {
	return ProgressEntry{
		UserID:     userID,
		CardID:     cardID,
		DatasetID:  datasetID,
		Status:     StatusNew,
		EaseFactor: DefaultEaseFactor,
		Interval:   DefaultInterval,
	}
}

func (p ProgressEntry) Key() string { return p.ID }

// DueBy reports whether a review is scheduled at or before t.
func (p ProgressEntry) DueBy(t time.Time) bool {
	return !p.NextReview.IsZero() && !p.NextReview.After(t)
}

func (p *ProgressEntry) UnmarshalJSON(b []byte) error {
	type plain ProgressEntry
	aux := struct {
		plain
		ProgressID   json.RawMessage `json:"progress_id"`
		UnderscoreID json.RawMessage `json:"_id"`
		ID           json.RawMessage `json:"id"`
	}{plain: plain(*p)}
	if aux.EaseFactor == 0 {
		aux.EaseFactor = DefaultEaseFactor
	}
	if aux.Interval == 0 {
		aux.Interval = DefaultInterval
	}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	id, err := pickID(aux.ProgressID, aux.UnderscoreID, aux.ID)
	if err != nil {
		return err
	}

	*p = ProgressEntry(aux.plain)
	if id != "" {
		p.ID = id
	}
	return nil
}
