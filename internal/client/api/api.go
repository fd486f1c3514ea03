// Package api is the client's access layer to the flashcard backend.
//
// Each operation issues exactly one HTTP request against the configured base
// URL, attaches the session token as a bearer credential when one is present,
// and decodes the JSON answer. Failures are logged and returned; there are no
// retries. Non-2xx answers come back as *Error, which unwraps to one of the
// package sentinels (ErrUnauthorized, ErrNotFound, ...).
package api

import (
	"context"

	"github.com/dmitrijs2005/gophcards/internal/client/models"
)

// API is the set of backend operations used by the session store and views.
type API interface {
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, username, password string) (*models.Session, error)
	GetUser(ctx context.Context, id string) (*models.User, error)

	ListDatasets(ctx context.Context, userID string) ([]models.Dataset, error)
	CreateDataset(ctx context.Context, d models.Dataset) (models.Dataset, error)
	UpdateDataset(ctx context.Context, id string, d models.Dataset) (models.Dataset, error)
	DeleteDataset(ctx context.Context, id string) error

	ListCards(ctx context.Context, datasetID string) ([]models.VocabularyCard, error)
	CreateCard(ctx context.Context, c models.VocabularyCard) (models.VocabularyCard, error)
	UpdateCard(ctx context.Context, id string, c models.VocabularyCard) (models.VocabularyCard, error)
	DeleteCard(ctx context.Context, id string) error
	GenerateFields(ctx context.Context, word string) (*models.GeneratedFields, error)

	ListProgress(ctx context.Context, userID string) ([]models.ProgressEntry, error)
	CreateProgress(ctx context.Context, p models.ProgressEntry) (models.ProgressEntry, error)
	UpdateProgress(ctx context.Context, id string, p models.ProgressEntry) (models.ProgressEntry, error)
	DeleteProgress(ctx context.Context, id string) error

	GetSettings(ctx context.Context, userID string) (*models.Settings, error)
	CreateSettings(ctx context.Context, s models.Settings) (*models.Settings, error)
	UpdateSettings(ctx context.Context, s models.Settings) (*models.Settings, error)
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenSource yields the bearer token to attach; "" means none.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }
