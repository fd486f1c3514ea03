package models

import (
	"errors"
	"fmt"
	"time"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var ErrInvalidSettings = errors.New("invalid settings")

type Settings struct {
	UserID              string `json:"user_id"`
	LanguagePreference  string `json:"language_preference"`
	DailyGoal           int    `json:"daily_goal"`
	NotificationEnabled bool   `json:"notification_enabled"`
	NotificationTime    string `json:"notification_time"`
	Theme               string `json:"theme"`
}

func DefaultSettings(userID string) Settings {
	return Settings{
		UserID:              userID,
		LanguagePreference:  "en",
		DailyGoal:           20,
		NotificationEnabled: true,
		NotificationTime:    "09:00",
		Theme:               ThemeLight,
	}
}

func (s Settings) Validate() error {
	if s.DailyGoal < 0 {
		return fmt.Errorf("%w: daily_goal must not be negative", ErrInvalidSettings)
	}
	if s.Theme != ThemeLight && s.Theme != ThemeDark {
		return fmt.Errorf("%w: theme must be %q or %q", ErrInvalidSettings, ThemeLight, ThemeDark)
	}
	if _, _, err := s.ReminderClock(); err != nil {
		return err
	}
	return nil
}

// ReminderClock splits NotificationTime into hour and minute.
func (s Settings) ReminderClock() (hour, minute int, err error) {
	t, err := time.Parse("15:04", s.NotificationTime)
	if err != nil || len(s.NotificationTime) != 5 {
		return 0, 0, fmt.Errorf("%w: notification_time must be HH:MM", ErrInvalidSettings)
	}
	return t.Hour(), t.Minute(), nil
}
