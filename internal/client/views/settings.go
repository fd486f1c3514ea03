package views

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophcards/internal/client/api"
	"github.com/dmitrijs2005/gophcards/internal/client/models"
)

// SettingsView edits the user's singleton settings record. Edits made with
// "set" stay local until "save".
type SettingsView struct {
	env  *Env
	life lifecycle

	mu     sync.Mutex
	draft  models.Settings
	exists bool
	dirty  bool
}

var settingsFields = []Field[models.Settings]{
	TextField("language_preference",
		func(s models.Settings) string { return s.LanguagePreference },
		func(s *models.Settings, v string) { s.LanguagePreference = v }),
	IntField("daily_goal",
		func(s models.Settings) int { return s.DailyGoal },
		func(s *models.Settings, v int) { s.DailyGoal = v }),
	BoolField("notification_enabled",
		func(s models.Settings) bool { return s.NotificationEnabled },
		func(s *models.Settings, v bool) { s.NotificationEnabled = v }),
	TextField("notification_time",
		func(s models.Settings) string { return s.NotificationTime },
		func(s *models.Settings, v string) { s.NotificationTime = v }),
	TextField("theme",
		func(s models.Settings) string { return s.Theme },
		func(s *models.Settings, v string) { s.Theme = v }),
}

func NewSettingsView(env *Env) *SettingsView {
	return &SettingsView{env: env, draft: models.DefaultSettings(env.userID())}
}

func (v *SettingsView) Name() string { return "settings" }

func (v *SettingsView) Mount(ctx context.Context) error {
	v.life.start(ctx)
	return v.Load(ctx)
}

func (v *SettingsView) Unmount() { v.life.stop() }

// Load fetches the stored settings. A user without a record gets the
// defaults, created on the first save.
func (v *SettingsView) Load(ctx context.Context) error {
	ctx, cancel := v.life.bind(ctx)
	defer cancel()

	userID := v.env.userID()
	st, err := v.env.API.GetSettings(ctx, userID)
	switch {
	case errors.Is(err, api.ErrNotFound):
		v.replace(models.DefaultSettings(userID), false)
		return nil
	case err != nil:
		v.env.fail("Failed to load settings", err)
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if st.UserID == "" {
		st.UserID = userID
	}
	v.replace(*st, true)
	return nil
}

func (v *SettingsView) replace(st models.Settings, exists bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.draft, v.exists, v.dirty = st, exists, false
}

// Draft returns the settings as currently edited.
func (v *SettingsView) Draft() models.Settings {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.draft
}

func (v *SettingsView) Render() {
	st := v.Draft()
	v.env.printf("%s", describeItem(settingsFields, st))

	v.mu.Lock()
	dirty := v.dirty
	v.mu.Unlock()
	if dirty {
		v.env.printf("(unsaved changes, type save)")
	}
}

func (v *SettingsView) Help() string {
	return "list, set <field> <value>, edit, save, refresh"
}

// Set changes one field of the draft.
func (v *SettingsView) Set(name, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := setField(settingsFields, &v.draft, name, value); err != nil {
		return err
	}
	v.dirty = true
	return nil
}

// Save validates the draft, stores it (create on first save, update after)
// and reschedules reminders.
func (v *SettingsView) Save(ctx context.Context) error {
	ctx, cancel := v.life.bind(ctx)
	defer cancel()

	v.mu.Lock()
	st, exists := v.draft, v.exists
	v.mu.Unlock()

	if err := st.Validate(); err != nil {
		v.env.printf("%v", err)
		return err
	}

	var (
		saved *models.Settings
		err   error
	)
	if exists {
		saved, err = v.env.API.UpdateSettings(ctx, st)
	} else {
		saved, err = v.env.API.CreateSettings(ctx, st)
	}
	if err != nil {
		v.env.fail("Failed to save settings", err)
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	v.replace(*saved, true)
	v.env.printf("Settings saved.")

	if v.env.Reminders != nil {
		if err := v.env.Reminders.Schedule(saved.UserID, *saved); err != nil {
			v.env.fail("Failed to schedule reminders", err)
		}
	}
	return nil
}

func (v *SettingsView) Handle(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list", "l", "show":
		v.Render()
		return nil
	case "refresh":
		if err := v.Load(ctx); err != nil {
			return err
		}
		v.Render()
		return nil
	case "set":
		if len(args) < 2 {
			v.env.printf("Usage: set <field> <value>")
			return nil
		}
		if err := v.Set(args[0], strings.Join(args[1:], " ")); err != nil {
			v.env.printf("%v", err)
			return err
		}
		return nil
	case "edit":
		st := v.Draft()
		if err := fill(v.env.Prompt, settingsFields, &st); err != nil {
			return err
		}
		v.mu.Lock()
		v.draft, v.dirty = st, true
		v.mu.Unlock()
		return nil
	case "save":
		return v.Save(ctx)
	}
	return ErrUnknownCommand
}
