package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophcards/internal/client/api"
	"github.com/dmitrijs2005/gophcards/internal/client/media"
	"github.com/dmitrijs2005/gophcards/internal/client/models"
	"github.com/dmitrijs2005/gophcards/internal/client/router"
	"github.com/dmitrijs2005/gophcards/internal/client/session"
	"github.com/dmitrijs2005/gophcards/internal/client/views"
	"github.com/dmitrijs2005/gophcards/internal/logging"
)

// Session is what the App needs from the session store.
type Session interface {
	views.Session
	Logout(ctx context.Context) error
	State() session.State
	Subscribe(fn func(session.State)) func()
}

// Reminders is satisfied by reminder.Scheduler.
type Reminders interface {
	Schedule(userID string, st models.Settings) error
	Cancel()
	RunNow(ctx context.Context) (string, error)
}

type Deps struct {
	API       api.API
	Session   Session
	Router    *router.Router
	Media     media.Store
	Reminders Reminders
	In        io.Reader
	Out       io.Writer
	Log       logging.Logger
}

type App struct {
	api       api.API
	session   Session
	router    *router.Router
	reminders Reminders
	env       *views.Env
	reader    *bufio.Reader
	out       io.Writer
	log       logging.Logger

	current views.View
	path    string
	pending string
}

func NewApp(d Deps) *App {
	a := &App{
		api:       d.API,
		session:   d.Session,
		router:    d.Router,
		reminders: d.Reminders,
		reader:    bufio.NewReader(d.In),
		out:       d.Out,
		log:       d.Log,
	}
	a.env = &views.Env{
		API:       d.API,
		Session:   d.Session,
		Media:     d.Media,
		Reminders: d.Reminders,
		Prompt:    &terminalPrompt{reader: a.reader, out: d.Out},
		Out:       d.Out,
		Log:       d.Log,
		Navigate:  func(p string) { a.pending = p },
	}
	return a
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// Run shows the start page and runs the REPL until exit or end of input.
func (a *App) Run(ctx context.Context) {
	unsubscribe := a.session.Subscribe(func(st session.State) {
		a.onSessionChange(ctx, st)
	})
	defer unsubscribe()

	if a.session.State() == session.StateAuthenticated {
		a.onSessionChange(ctx, session.StateAuthenticated)
	}

	a.println("Welcome to gophcards (type 'help' for commands)")
	a.navigate(ctx, "/")

	runREPL(ctx, a, a.reader)

	if a.current != nil {
		a.current.Unmount()
	}
}

// navigate resolves p, swaps the mounted page and renders it.
func (a *App) navigate(ctx context.Context, p string) {
	res, err := a.router.Resolve(p)
	if err != nil {
		a.println("No such page:", router.Clean(p))
		return
	}
	if res.Redirected {
		a.println("Please log in first.")
	}

	v, err := views.New(a.env, res)
	if err != nil {
		a.log.Error(ctx, "failed to build view", "path", res.Path, "error", err)
		return
	}

	if a.current != nil {
		a.current.Unmount()
	}
	a.current = v
	a.path = res.Path

	// load errors are printed by the page
	_ = v.Mount(ctx)
	v.Render()
}

// flush performs a navigation requested by a page during the last command.
func (a *App) flush(ctx context.Context) {
	for a.pending != "" {
		p := a.pending
		a.pending = ""
		a.navigate(ctx, p)
	}
}

func (a *App) prompt() string {
	who := ""
	if u, ok := a.session.CurrentUser(); ok {
		who = " " + u.Username
	} else if a.session.State() == session.StateUnverified {
		who = " (offline)"
	}
	return fmt.Sprintf("gophcards%s %s> ", who, a.path)
}

func (a *App) logout(ctx context.Context) {
	if err := a.session.Logout(ctx); err != nil {
		a.println("Logout failed:", err)
		return
	}
	a.println("Logged out.")
	a.navigate(ctx, router.PathLogin)
}

// remind sends the reminder message right away.
func (a *App) remind(ctx context.Context) {
	if a.reminders == nil {
		a.println("Reminders are disabled.")
		return
	}
	if _, err := a.reminders.RunNow(ctx); err != nil {
		a.println("Reminder failed:", err)
	}
}

// onSessionChange keeps the reminder job in step with the session: a new
// session schedules it from the user's settings, leaving one cancels it.
func (a *App) onSessionChange(ctx context.Context, st session.State) {
	if a.reminders == nil {
		return
	}
	if st != session.StateAuthenticated {
		a.reminders.Cancel()
		return
	}

	u, ok := a.session.CurrentUser()
	if !ok {
		return
	}
	settings, err := a.api.GetSettings(ctx, u.ID)
	switch {
	case errors.Is(err, api.ErrNotFound):
		d := models.DefaultSettings(u.ID)
		settings = &d
	case err != nil:
		a.log.Warn(ctx, "reminders not scheduled", "error", err)
		return
	}
	if err := a.reminders.Schedule(u.ID, *settings); err != nil {
		a.log.Warn(ctx, "reminders not scheduled", "error", err)
	}
}
