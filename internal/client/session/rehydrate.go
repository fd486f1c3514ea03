package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gophcards/internal/client/api"
	sessionrepo "github.com/dmitrijs2005/gophcards/internal/client/repositories/session"
	"github.com/golang-jwt/jwt/v5"
)

// identity claims in lookup order
var identityClaims = []string{"sub", "user_id", "identity"}

// Rehydrate restores the session from a token left by a previous run.
//
// Tokens are opaque to the client. When one happens to be a JWT its claims
// are read without checking the signature (the client has no key) for the
// expiry and user id; otherwise the user id stored at login is used. The user
// is then fetched with that token. A rejected or expired token is discarded and ErrSessionInvalid is
// returned. When the backend cannot be reached the token is kept, the state
// becomes StateUnverified and the error wraps api.ErrUnavailable.
func (s *Store) Rehydrate(ctx context.Context) error {
	token, ok, err := s.repo.Get(ctx, sessionrepo.KeyToken)
	if err != nil {
		return fmt.Errorf("rehydrate: %w", err)
	}
	if !ok || token == "" {
		s.set("", nil, StateAnonymous)
		return nil
	}

	storedID, _, err := s.repo.Get(ctx, sessionrepo.KeyUserID)
	if err != nil {
		return fmt.Errorf("rehydrate: %w", err)
	}

	userID, err := s.identity(token, storedID)
	if err != nil {
		return s.invalidate(ctx, err)
	}

	s.set(token, nil, StateUnverified)

	user, err := s.auth.GetUser(ctx, userID)
	switch {
	case err == nil:
		s.set(token, user, StateAuthenticated)
		s.log.Info(ctx, "session restored", "user_id", user.ID)
		return nil
	case errors.Is(err, api.ErrUnauthorized), errors.Is(err, api.ErrNotFound):
		return s.invalidate(ctx, err)
	default:
		s.log.Warn(ctx, "could not verify stored session", "error", err)
		return fmt.Errorf("rehydrate: %w", err)
	}
}

func (s *Store) invalidate(ctx context.Context, cause error) error {
	s.log.Info(ctx, "discarding stored session", "reason", cause)
	if err := s.forget(ctx); err != nil {
		s.log.Error(ctx, "failed to clear stored token", "error", err)
	}
	s.set("", nil, StateAnonymous)
	return fmt.Errorf("%w: %v", ErrSessionInvalid, cause)
}

// forget removes the stored token and the user id it belongs to. The last
// username is kept for the login prompt.
func (s *Store) forget(ctx context.Context) error {
	return errors.Join(
		s.repo.Delete(ctx, sessionrepo.KeyToken),
		s.repo.Delete(ctx, sessionrepo.KeyUserID),
	)
}

// identity resolves the user id for token. JWT claims win over storedID and
// an expired JWT is rejected; any other token relies on storedID alone.
func (s *Store) identity(token, storedID string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		if storedID != "" {
			return storedID, nil
		}
		return "", fmt.Errorf("undecodable token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return "", fmt.Errorf("bad exp claim: %w", err)
	}
	if exp != nil && !exp.After(s.now()) {
		return "", errors.New("token expired")
	}

	if id := claimedID(claims); id != "" {
		return id, nil
	}
	if storedID != "" {
		return storedID, nil
	}
	return "", errors.New("token carries no identity")
}

func claimedID(claims jwt.MapClaims) string {
	for _, name := range identityClaims {
		switch v := claims[name].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case map[string]any:
			for _, key := range []string{"user_id", "_id", "id"} {
				if id, ok := v[key].(string); ok && id != "" {
					return id
				}
			}
		}
	}
	return ""
}
