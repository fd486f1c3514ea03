package views

import (
	"fmt"

	"github.com/dmitrijs2005/gophcards/internal/client/router"
)

// New builds the page a resolved route leads to.
func New(env *Env, res router.Resolution) (View, error) {
	switch res.Route.View {
	case router.ViewDashboard:
		return NewDashboardView(env), nil
	case router.ViewDatasets:
		return NewDatasetsView(env), nil
	case router.ViewVocabulary:
		return NewVocabularyView(env, res.Param(router.ParamDatasetID)), nil
	case router.ViewProgress:
		return NewProgressView(env), nil
	case router.ViewSettings:
		return NewSettingsView(env), nil
	case router.ViewLogin:
		return NewLoginView(env), nil
	case router.ViewRegister:
		return NewRegisterView(env), nil
	}
	return nil, fmt.Errorf("no view named %q", res.Route.View)
}
