// Package reminder sends a daily "reviews due" message at the time the user
// picked in their settings.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophcards/internal/client/models"
	"github.com/dmitrijs2005/gophcards/internal/logging"
	"github.com/go-co-op/gocron"
)

const jobTag = "daily-reminder"

// ProgressSource lists the user's progress entries.
type ProgressSource interface {
	ListProgress(ctx context.Context, userID string) ([]models.ProgressEntry, error)
}

type Scheduler struct {
	cron      *gocron.Scheduler
	progress  ProgressSource
	notifiers []Notifier
	log       logging.Logger
	now       func() time.Time
	timeout   time.Duration

	mu       sync.Mutex
	userID   string
	settings models.Settings
	active   bool
}

func New(progress ProgressSource, log logging.Logger, notifiers ...Notifier) *Scheduler {
	return &Scheduler{
		cron:      gocron.NewScheduler(time.Local),
		progress:  progress,
		notifiers: notifiers,
		log:       log,
		now:       time.Now,
		timeout:   time.Minute,
	}
}

// Schedule (re)installs the daily job for userID according to st. A disabled
// notification setting just removes any existing job.
func (s *Scheduler) Schedule(userID string, st models.Settings) error {
	hour, minute, err := st.ReminderClock()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cron.Clear()
	s.userID = userID
	s.settings = st
	s.active = false

	if !st.NotificationEnabled || len(s.notifiers) == 0 {
		return nil
	}

	at := fmt.Sprintf("%02d:%02d", hour, minute)
	if _, err := s.cron.Every(1).Day().At(at).Tag(jobTag).Do(s.fire); err != nil {
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}
	s.cron.StartAsync()
	s.active = true

	s.log.Info(context.Background(), "reminder scheduled", "user_id", userID, "at", at)
	return nil
}

// Cancel removes the job, e.g. on logout.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cron.Clear()
	s.userID = ""
	s.active = false
}

// Stop shuts the scheduler down for good.
func (s *Scheduler) Stop() {
	s.Cancel()
	s.cron.Stop()
}

// NextRun reports when the reminder fires next; ok is false when none is
// scheduled.
func (s *Scheduler) NextRun() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return time.Time{}, false
	}
	for _, j := range s.cron.Jobs() {
		return j.NextRun(), true
	}
	return time.Time{}, false
}

func (s *Scheduler) fire() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.RunNow(ctx); err != nil {
		s.log.Error(ctx, "reminder failed", "error", err)
	}
}

// RunNow computes the due count and sends the message immediately. It returns
// the text sent.
func (s *Scheduler) RunNow(ctx context.Context) (string, error) {
	s.mu.Lock()
	userID, st := s.userID, s.settings
	s.mu.Unlock()

	if userID == "" {
		return "", errors.New("no user to remind")
	}

	entries, err := s.progress.ListProgress(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load progress: %w", err)
	}

	text := Message(DueToday(entries, s.now()), st.DailyGoal)

	var errs []error
	for _, n := range s.notifiers {
		if err := n.Notify(ctx, text); err != nil {
			errs = append(errs, err)
		}
	}
	return text, errors.Join(errs...)
}

// DueToday counts entries whose next review is before the end of now's day.
func DueToday(entries []models.ProgressEntry, now time.Time) int {
	y, m, d := now.Date()
	endOfDay := time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), now.Location())

	n := 0
	for _, e := range entries {
		if e.DueBy(endOfDay) {
			n++
		}
	}
	return n
}

// Message formats the reminder; the due count is capped at the daily goal
// when one is set.
func Message(due, goal int) string {
	if goal > 0 && due > goal {
		due = goal
	}
	if goal > 0 {
		return fmt.Sprintf("%d reviews due today (goal %d)", due, goal)
	}
	return fmt.Sprintf("%d reviews due today", due)
}
