package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophcards/internal/client/models"
)

func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, call{method: http.MethodPost, path: pathRegister, body: req}, nil)
}

// Login exchanges credentials for a session. A 401 unwraps to
// ErrAuthentication.
func (c *Client) Login(ctx context.Context, username, password string) (*models.Session, error) {
	body := map[string]string{"username": username, "password": password}

	var s models.Session
	if err := c.do(ctx, call{method: http.MethodPost, path: pathLogin, body: body}, &s); err != nil {
		return nil, err
	}
	if s.Token == "" {
		c.log.Error(ctx, "login answer carries no token", "path", pathLogin)
		return nil, fmt.Errorf("%w: login answer carries no token", ErrServer)
	}
	return &s, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := c.do(ctx, call{method: http.MethodGet, path: "/user/" + segment(id), auth: true}, &u)
	if err != nil {
		return nil, err
	}
	if u.ID == "" {
		u.ID = id
	}
	return &u, nil
}
