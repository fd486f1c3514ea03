package views

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophcards/internal/client/api"
	"github.com/dmitrijs2005/gophcards/internal/client/models"
	"github.com/dmitrijs2005/gophcards/internal/client/store"
)

// Stats summarises the user's progress.
type Stats struct {
	Total      int
	Completed  int
	DueNow     int
	DailyGoal  int
	Percentage float64
}

// ComputeStats derives the dashboard numbers. Percentage is completed over
// total entries, 0 when there are none.
func ComputeStats(entries []models.ProgressEntry, goal int, now time.Time) Stats {
	st := Stats{Total: len(entries), DailyGoal: goal}
	for _, e := range entries {
		if e.Status == models.StatusCompleted {
			st.Completed++
		}
		if e.DueBy(now) {
			st.DueNow++
		}
	}
	if st.Total > 0 {
		st.Percentage = float64(st.Completed) * 100 / float64(st.Total)
	}
	return st
}

type DashboardView struct {
	env  *Env
	life lifecycle
	now  func() time.Time

	progress *store.List[models.ProgressEntry]
	datasets *store.List[models.Dataset]

	mu       sync.Mutex
	settings models.Settings
}

func NewDashboardView(env *Env) *DashboardView {
	return &DashboardView{
		env:      env,
		now:      time.Now,
		progress: store.NewList[models.ProgressEntry](),
		datasets: store.NewList[models.Dataset](),
		settings: models.DefaultSettings(env.userID()),
	}
}

func (v *DashboardView) Name() string { return "dashboard" }

func (v *DashboardView) Mount(ctx context.Context) error {
	v.life.start(ctx)
	return v.Load(ctx)
}

func (v *DashboardView) Unmount() { v.life.stop() }

// Load fetches progress, datasets and settings concurrently. Each result
// goes to its own store, so completion order does not matter. Missing
// settings fall back to the defaults.
func (v *DashboardView) Load(ctx context.Context) error {
	ctx, cancel := v.life.bind(ctx)
	defer cancel()

	userID := v.env.userID()

	var wg sync.WaitGroup
	errs := make([]error, 3)

	wg.Add(3)
	go func() {
		defer wg.Done()
		rev := v.progress.BeginLoad()
		entries, err := v.env.API.ListProgress(ctx, userID)
		if err != nil {
			errs[0] = err
			return
		}
		if ctx.Err() == nil {
			v.progress.Commit(rev, entries)
		}
	}()
	go func() {
		defer wg.Done()
		rev := v.datasets.BeginLoad()
		ds, err := v.env.API.ListDatasets(ctx, userID)
		if err != nil {
			errs[1] = err
			return
		}
		if ctx.Err() == nil {
			v.datasets.Commit(rev, ds)
		}
	}()
	go func() {
		defer wg.Done()
		st, err := v.env.API.GetSettings(ctx, userID)
		if errors.Is(err, api.ErrNotFound) {
			return
		}
		if err != nil {
			errs[2] = err
			return
		}
		if ctx.Err() == nil {
			v.mu.Lock()
			v.settings = *st
			v.mu.Unlock()
		}
	}()
	wg.Wait()

	what := []string{"progress", "datasets", "settings"}
	for i, err := range errs {
		if err != nil {
			v.env.fail("Failed to load "+what[i], err)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.Join(errs...)
}

func (v *DashboardView) Stats() Stats {
	v.mu.Lock()
	goal := v.settings.DailyGoal
	v.mu.Unlock()
	return ComputeStats(v.progress.Snapshot(), goal, v.now())
}

func (v *DashboardView) Render() {
	st := v.Stats()
	if u, ok := v.env.Session.CurrentUser(); ok {
		v.env.printf("Welcome, %s!", u.Username)
	}
	v.env.printf("Progress: %.0f%% completed (%d of %d)", st.Percentage, st.Completed, st.Total)
	v.env.printf("Reviews due now: %d", st.DueNow)
	v.env.printf("Daily goal: %d", st.DailyGoal)

	ds := v.datasets.Snapshot()
	v.env.printf("Datasets: %d", len(ds))
	for _, d := range ds {
		v.env.printf("  [%s] %s", d.ID, d.Name)
	}
}

func (v *DashboardView) Help() string {
	return "list, refresh"
}

func (v *DashboardView) Handle(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list", "l":
		v.Render()
		return nil
	case "refresh":
		err := v.Load(ctx)
		v.Render()
		return err
	}
	return ErrUnknownCommand
}
