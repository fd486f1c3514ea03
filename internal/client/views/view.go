package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/gophcards/internal/client/api"
	"github.com/dmitrijs2005/gophcards/internal/client/media"
	"github.com/dmitrijs2005/gophcards/internal/client/models"
	"github.com/dmitrijs2005/gophcards/internal/logging"
)

// ErrUnknownCommand is returned by Handle for commands the page does not
// understand; the REPL falls back to its global commands.
var ErrUnknownCommand = errors.New("unknown command")

// View is a mounted page.
type View interface {
	Name() string
	Mount(ctx context.Context) error
	Unmount()
	Render()
	Help() string
	Handle(ctx context.Context, cmd string, args []string) error
}

// Prompter collects form input from the user.
type Prompter interface {
	// Ask shows label and the current value; an empty answer keeps current.
	Ask(label, current string) (string, error)
	Password(label string) (string, error)
}

// Session is the part of the session store the pages use.
type Session interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
	CurrentUser() (*models.User, bool)
	LastUsername(ctx context.Context) string
}

// Reminders is satisfied by reminder.Scheduler.
type Reminders interface {
	Schedule(userID string, st models.Settings) error
}

// Env carries the collaborators shared by every page.
type Env struct {
	API       api.API
	Session   Session
	Media     media.Store
	Reminders Reminders
	Prompt    Prompter
	Out       io.Writer
	Log       logging.Logger
	// Navigate switches to another path after the current command.
	Navigate func(path string)
}

func (e *Env) printf(format string, args ...any) {
	fmt.Fprintf(e.Out, format+"\n", args...)
}

// fail prints a user-facing message for err. Cancellation is silent: it only
// happens when the user left the page.
func (e *Env) fail(what string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	e.Log.Warn(context.Background(), what, "error", err)
	e.printf("%s: %s", what, describe(err))
}

func (e *Env) userID() string {
	if u, ok := e.Session.CurrentUser(); ok {
		return u.ID
	}
	return ""
}

func (e *Env) navigate(path string) {
	if e.Navigate != nil {
		e.Navigate(path)
	}
}

func describe(err error) string {
	var apiErr *api.Error
	switch {
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, api.ErrUnavailable):
		return "backend is unreachable, try again later"
	case errors.Is(err, api.ErrUnauthorized):
		return "not authorized, please log in again"
	case errors.Is(err, api.ErrNotFound):
		return "not found"
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	default:
		return err.Error()
	}
}

// lifecycle owns the per-mount context.
type lifecycle struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

func (l *lifecycle) start(parent context.Context) context.Context {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	l.ctx, l.cancel = context.WithCancel(parent)
	return l.ctx
}

func (l *lifecycle) stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// context returns the mount context, or a cancelled one when unmounted.
func (l *lifecycle) context() context.Context {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.ctx == nil || l.cancel == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	return l.ctx
}

// bind ties a command context to the mount: it ends when either ends.
func (l *lifecycle) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	mount := l.context()
	ctx, cancel := context.WithCancel(ctx)
	if mount.Err() != nil {
		cancel()
	}
	stop := context.AfterFunc(mount, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
