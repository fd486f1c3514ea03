package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophcards/internal/client/api"
	"github.com/dmitrijs2005/gophcards/internal/client/config"
	"github.com/dmitrijs2005/gophcards/internal/client/localdb"
	"github.com/dmitrijs2005/gophcards/internal/client/media"
	"github.com/dmitrijs2005/gophcards/internal/client/reminder"
	sessionrepo "github.com/dmitrijs2005/gophcards/internal/client/repositories/session"
	"github.com/dmitrijs2005/gophcards/internal/client/router"
	"github.com/dmitrijs2005/gophcards/internal/client/session"
	"github.com/dmitrijs2005/gophcards/internal/logging"
)

// NewLogger builds the logger described by cfg. It writes to cfg.LogFile
// when set and to stderr otherwise, keeping stdout for the REPL. The returned
// closer releases the log file.
func NewLogger(cfg *config.Config) (logging.Logger, io.Closer, error) {
	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w, closer = f, f
	}

	l, err := logging.New(cfg.LogLevel, cfg.LogFormat, w)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return l, closer, nil
}

// NewMediaStore picks the audio store configured by media_backend.
func NewMediaStore(ctx context.Context, cfg *config.Config) (media.Store, error) {
	if cfg.MediaBackend == config.MediaS3 {
		return media.NewS3Store(ctx, media.S3Config{
			Endpoint:   cfg.S3Endpoint,
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			PresignTTL: cfg.S3PresignTTL,
		})
	}
	return media.NewFileStore(cfg.MediaDir)
}

// NewAppFromConfig wires the client from cfg: local database, API client, session
// store, router, media store and reminders. The stored session is
// rehydrated before returning; the returned cleanup closes what was opened.
func NewAppFromConfig(ctx context.Context, cfg *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, func(), error) {
	db, err := localdb.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing database: %w", err)
	}

	client := api.NewClient(cfg.APIBaseURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(log.With("component", "api")),
	)
	store := session.NewStore(client, sessionrepo.NewSQLiteRepository(db), log.With("component", "session"))
	client.SetTokenSource(store)

	if err := store.Rehydrate(ctx); err != nil {
		switch {
		case errors.Is(err, session.ErrSessionInvalid):
			fmt.Fprintln(out, "Your session has expired, please log in again.")
		case errors.Is(err, api.ErrUnavailable):
			fmt.Fprintln(out, "Backend is unreachable; your session will be checked on the next login.")
		default:
			log.Warn(ctx, "session not restored", "error", err)
		}
	}

	mediaStore, err := NewMediaStore(ctx, cfg)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	d := Deps{
		API:     client,
		Session: store,
		Router:  router.New(router.NewGuard(store)),
		Media:   mediaStore,
		In:      in,
		Out:     out,
		Log:     log,
	}

	var sched *reminder.Scheduler
	if cfg.RemindersEnabled {
		notifiers := []reminder.Notifier{reminder.NewConsoleNotifier(out)}
		if cfg.TelegramEnabled() {
			tg, err := reminder.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
			if err != nil {
				log.Warn(ctx, "telegram reminders disabled", "error", err)
			} else {
				notifiers = append(notifiers, tg)
			}
		}
		sched = reminder.New(client, log.With("component", "reminder"), notifiers...)
		d.Reminders = sched
	}

	cleanup := func() {
		if sched != nil {
			sched.Stop()
		}
		_ = db.Close()
	}
	return NewApp(d), cleanup, nil
}
