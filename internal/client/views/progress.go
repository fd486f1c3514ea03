package views

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophcards/internal/client/models"
)

// ProgressView lists the current user's review progress.
type ProgressView struct {
	*ResourceView[models.ProgressEntry]
}

func NewProgressView(env *Env) *ProgressView {
	return &ProgressView{NewResourceView(env, progressSchema(env, env.userID()))}
}

func progressSchema(env *Env, userID string) Schema[models.ProgressEntry] {
	type P = models.ProgressEntry
	return Schema[P]{
		Name: "progress",
		Fields: []Field[P]{
			ReadOnly("id", func(p P) string { return p.ID }),
			TextField("card_id",
				func(p P) string { return p.CardID },
				func(p *P, v string) { p.CardID = v }),
			TextField("dataset_id",
				func(p P) string { return p.DatasetID },
				func(p *P, v string) { p.DatasetID = v }),
			TextField("status",
				func(p P) string { return string(p.Status) },
				func(p *P, v string) { p.Status = models.ProgressStatus(v) }),
			ReadOnly("last_reviewed", func(p P) string { return p.LastReviewed.String() }),
			TimeField("next_review",
				func(p P) models.Timestamp { return p.NextReview },
				func(p *P, v models.Timestamp) { p.NextReview = v }),
			IntField("streak",
				func(p P) int { return p.Streak },
				func(p *P, v int) { p.Streak = v }),
			FloatField("ease_factor",
				func(p P) float64 { return p.EaseFactor },
				func(p *P, v float64) { p.EaseFactor = v }),
			IntField("interval",
				func(p P) int { return p.Interval },
				func(p *P, v int) { p.Interval = v }),
			// true on edit records a review at the backend's clock
			BoolField("reviewed",
				func(p P) bool { return p.Reviewed },
				func(p *P, v bool) { p.Reviewed = v }),
		},
		Row: func(p P) string {
			return fmt.Sprintf("[%s] card %s: %s, next %s, streak %d", p.ID, p.CardID, p.Status, p.NextReview, p.Streak)
		},
		New: func() P { return models.NewProgressEntry(userID, "", "") },
		List: func(ctx context.Context) ([]P, error) {
			return env.API.ListProgress(ctx, userID)
		},
		Create: env.API.CreateProgress,
		Update: env.API.UpdateProgress,
		Delete: env.API.DeleteProgress,
	}
}
