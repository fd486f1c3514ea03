// Package router maps navigation paths onto views and applies the
// authentication guard before a view is mounted.
package router

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/dmitrijs2005/gophcards/internal/client/models"
	"github.com/go-chi/chi/v5"
)

var ErrNotFound = errors.New("no such page")

// Names of the views routes lead to.
const (
	ViewDashboard  = "dashboard"
	ViewDatasets   = "datasets"
	ViewVocabulary = "vocabulary"
	ViewProgress   = "progress"
	ViewSettings   = "settings"
	ViewLogin      = "login"
	ViewRegister   = "register"
)

const (
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
)

// ParamDatasetID is the URL parameter carrying a dataset id.
const ParamDatasetID = "datasetID"

type Route struct {
	Pattern string
	View    string
	Guarded bool
}

var defaultRoutes = []Route{
	{Pattern: "/", View: ViewDashboard, Guarded: true},
	{Pattern: "/dashboard", View: ViewDashboard, Guarded: true},
	{Pattern: "/datasets", View: ViewDatasets, Guarded: true},
	{Pattern: "/datasets/{datasetID}/cards", View: ViewVocabulary, Guarded: true},
	{Pattern: "/vocabulary/{datasetID}", View: ViewVocabulary, Guarded: true},
	{Pattern: "/progress", View: ViewProgress, Guarded: true},
	{Pattern: "/settings", View: ViewSettings, Guarded: true},
	{Pattern: PathLogin, View: ViewLogin},
	{Pattern: "/register", View: ViewRegister},
}

// Resolution is the outcome of resolving a path.
type Resolution struct {
	Path   string
	Route  Route
	Params map[string]string
	// Redirected is set when the guard replaced the requested route with
	// the login route. The requested destination is not kept.
	Redirected bool
}

func (r Resolution) Param(name string) string {
	return r.Params[name]
}

// UserSource is satisfied by the session store.
type UserSource interface {
	CurrentUser() (*models.User, bool)
}

// Guard allows guarded routes only while a user is present.
type Guard struct {
	users UserSource
}

func NewGuard(users UserSource) *Guard {
	return &Guard{users: users}
}

func (g *Guard) Allow(r Route) bool {
	if !r.Guarded {
		return true
	}
	_, ok := g.users.CurrentUser()
	return ok
}

// Router matches paths with a chi mux; it never touches the network.
type Router struct {
	mux    *chi.Mux
	routes map[string]Route
	guard  *Guard
}

func New(guard *Guard) *Router {
	r := &Router{
		mux:    chi.NewRouter(),
		routes: make(map[string]Route, len(defaultRoutes)),
		guard:  guard,
	}
	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	for _, route := range defaultRoutes {
		r.mux.Get(route.Pattern, noop)
		r.routes[route.Pattern] = route
	}
	return r
}

func (r *Router) Routes() []Route {
	out := make([]Route, len(defaultRoutes))
	copy(out, defaultRoutes)
	return out
}

// Resolve matches p and applies the guard.
func (r *Router) Resolve(p string) (Resolution, error) {
	p = Clean(p)

	rctx := chi.NewRouteContext()
	pattern := r.mux.Find(rctx, http.MethodGet, p)
	route, ok := r.routes[pattern]
	if pattern == "" || !ok {
		return Resolution{}, fmt.Errorf("%w: %s", ErrNotFound, p)
	}

	if !r.guard.Allow(route) {
		login := r.routes[PathLogin]
		return Resolution{Path: PathLogin, Route: login, Params: map[string]string{}, Redirected: true}, nil
	}

	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, k := range rctx.URLParams.Keys {
		params[k] = rctx.URLParams.Values[i]
	}

	return Resolution{Path: p, Route: route, Params: params}, nil
}

// Clean normalises user input such as "datasets/" into "/datasets".
func Clean(p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// VocabularyPath is the route showing the cards of a dataset.
func VocabularyPath(datasetID string) string {
	return "/vocabulary/" + datasetID
}
