package views

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/gophcards/internal/client/api"
	"github.com/dmitrijs2005/gophcards/internal/client/router"
)

const loginFailed = "Login failed. Please check your credentials."

type LoginView struct {
	env *Env
}

func NewLoginView(env *Env) *LoginView { return &LoginView{env: env} }

func (v *LoginView) Name() string                    { return "login" }
func (v *LoginView) Mount(ctx context.Context) error { return nil }
func (v *LoginView) Unmount()                        {}

func (v *LoginView) Render() {
	v.env.printf("Please log in (type login) or create an account (type register).")
}

func (v *LoginView) Help() string { return "login, register" }

func (v *LoginView) Handle(ctx context.Context, cmd string, args []string) error {
	if cmd != "login" {
		return ErrUnknownCommand
	}
	return v.Login(ctx, args)
}

// Login asks for credentials (the username may be given as an argument)
// and opens the dashboard on success.
func (v *LoginView) Login(ctx context.Context, args []string) error {
	username := ""
	if len(args) > 0 {
		username = args[0]
	} else {
		last := v.env.Session.LastUsername(ctx)
		answer, err := v.env.Prompt.Ask("username", last)
		if err != nil {
			return err
		}
		username = answer
		if username == "" {
			username = last
		}
	}
	username = strings.TrimSpace(username)
	if username == "" {
		v.env.printf("Username is required.")
		return nil
	}

	password, err := v.env.Prompt.Password("password")
	if err != nil {
		return err
	}

	if _, err := v.env.Session.Login(ctx, username, password); err != nil {
		if errors.Is(err, api.ErrAuthentication) || errors.Is(err, api.ErrValidation) {
			v.env.printf(loginFailed)
		} else {
			v.env.fail("Login failed", err)
		}
		return err
	}

	v.env.printf("Logged in as %s.", username)
	v.env.navigate(router.PathDashboard)
	return nil
}

type RegisterView struct {
	env *Env
}

func NewRegisterView(env *Env) *RegisterView { return &RegisterView{env: env} }

func (v *RegisterView) Name() string                    { return "register" }
func (v *RegisterView) Mount(ctx context.Context) error { return nil }
func (v *RegisterView) Unmount()                        {}

func (v *RegisterView) Render() {
	v.env.printf("Create an account (type register).")
}

func (v *RegisterView) Help() string { return "register" }

func (v *RegisterView) Handle(ctx context.Context, cmd string, args []string) error {
	if cmd != "register" {
		return ErrUnknownCommand
	}
	return v.Register(ctx)
}

// Register creates an account and sends the user to the login page.
func (v *RegisterView) Register(ctx context.Context) error {
	var req api.RegisterRequest
	var err error

	if req.Username, err = v.env.Prompt.Ask("username", ""); err != nil {
		return err
	}
	if req.Email, err = v.env.Prompt.Ask("email", ""); err != nil {
		return err
	}
	if req.Password, err = v.env.Prompt.Password("password"); err != nil {
		return err
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		v.env.printf("Username, email and password are required.")
		return nil
	}

	if err := v.env.API.Register(ctx, req); err != nil {
		v.env.fail("Registration failed", err)
		return err
	}

	v.env.printf("Registration successful. Please log in.")
	v.env.navigate(router.PathLogin)
	return nil
}
