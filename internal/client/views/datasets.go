package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophcards/internal/client/models"
	"github.com/dmitrijs2005/gophcards/internal/client/router"
)

// DatasetsView lists the current user's datasets.
type DatasetsView struct {
	*ResourceView[models.Dataset]
}

func NewDatasetsView(env *Env) *DatasetsView {
	userID := env.userID()
	return &DatasetsView{NewResourceView(env, datasetSchema(env, userID))}
}

func datasetSchema(env *Env, userID string) Schema[models.Dataset] {
	return Schema[models.Dataset]{
		Name: "datasets",
		Fields: []Field[models.Dataset]{
			ReadOnly("id", func(d models.Dataset) string { return d.ID }),
			TextField("name",
				func(d models.Dataset) string { return d.Name },
				func(d *models.Dataset, v string) { d.Name = v }),
			TextField("description",
				func(d models.Dataset) string { return d.Description },
				func(d *models.Dataset, v string) { d.Description = v }),
			ReadOnly("created_at", func(d models.Dataset) string { return d.CreatedAt.String() }),
		},
		Row: func(d models.Dataset) string {
			if d.Description == "" {
				return fmt.Sprintf("[%s] %s", d.ID, d.Name)
			}
			return fmt.Sprintf("[%s] %s: %s", d.ID, d.Name, d.Description)
		},
		New: func() models.Dataset { return models.Dataset{UserID: userID} },
		List: func(ctx context.Context) ([]models.Dataset, error) {
			return env.API.ListDatasets(ctx, userID)
		},
		Create: env.API.CreateDataset,
		Update: env.API.UpdateDataset,
		Delete: env.API.DeleteDataset,
	}
}

func (v *DatasetsView) Help() string {
	return v.ResourceView.Help() + ", open <id>"
}

func (v *DatasetsView) Handle(ctx context.Context, cmd string, args []string) error {
	if cmd != "open" {
		return v.ResourceView.Handle(ctx, cmd, args)
	}
	// a path is global navigation
	if len(args) > 0 && strings.HasPrefix(args[0], "/") {
		return ErrUnknownCommand
	}
	if len(args) == 0 {
		v.env.printf("Usage: open <id>")
		return nil
	}
	if _, ok := v.items.Get(args[0]); !ok {
		v.env.printf("No dataset with id %s.", args[0])
		return nil
	}
	v.env.navigate(router.VocabularyPath(args[0]))
	return nil
}
