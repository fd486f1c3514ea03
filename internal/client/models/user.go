package models

import "encoding/json"

type User struct {
	ID       string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is what a successful login yields.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (u User) Key() string { return u.ID }

func (u *User) UnmarshalJSON(b []byte) error {
	type plain User
	aux := struct {
		plain
		UnderscoreID json.RawMessage `json:"_id"`
		UserID       json.RawMessage `json:"user_id"`
		ID           json.RawMessage `json:"id"`
	}{plain: plain(*u)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	id, err := pickID(aux.UnderscoreID, aux.UserID, aux.ID)
	if err != nil {
		return err
	}

	*u = User(aux.plain)
	if id != "" {
		u.ID = id
	}
	return nil
}
