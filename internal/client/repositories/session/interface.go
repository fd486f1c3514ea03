// Package session persists the client's session values (the auth token, the
// id of the user it belongs to and the last used username) in the local
// key/value table.
package session

import "context"

const (
	KeyToken    = "token"
	KeyUserID   = "user_id"
	KeyUsername = "username"
)

type Repository interface {
	// Get returns ("", false, nil) when the key is absent.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Replace swaps the whole table content for values atomically.
	Replace(ctx context.Context, values map[string]string) error
	Clear(ctx context.Context) error
}
