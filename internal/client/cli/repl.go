package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophcards/internal/client/router"
	"github.com/dmitrijs2005/gophcards/internal/client/views"
)

const globalHelp = "go <path>, login, register, logout, remind, help, exit"

// runREPL reads commands from reader until EOF, "exit" or "quit". The
// mounted page gets the first chance at every command; the rest are global.
//
// Handler errors are not returned: pages print their own failures, so the
// loop only keeps going.
func runREPL(ctx context.Context, a *App, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		line, err := GetSimpleText(reader, a.prompt(), a.out)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				a.log.Error(ctx, "failed to read command", "error", err)
			}
			a.println()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			a.println("Bye!")
			return
		}

		a.dispatch(ctx, cmd, args)
		a.flush(ctx)
	}
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) {
	if a.current != nil && cmd != "help" {
		err := a.current.Handle(ctx, cmd, args)
		if !errors.Is(err, views.ErrUnknownCommand) {
			if err != nil {
				a.log.Debug(ctx, "command failed", "command", cmd, "error", err)
			}
			return
		}
	}

	switch cmd {
	case "help":
		if a.current != nil {
			a.println(fmt.Sprintf("%s: %s", a.current.Name(), a.current.Help()))
		}
		a.println("global:", globalHelp)

	case "go", "open":
		if len(args) == 0 {
			a.println("Usage: go <path>")
			return
		}
		a.navigate(ctx, args[0])

	case "login", "register":
		target := router.PathLogin
		if cmd == "register" {
			target = "/register"
		}
		a.navigate(ctx, target)
		if a.current != nil {
			_ = a.current.Handle(ctx, cmd, args)
		}

	case "logout":
		a.logout(ctx)

	case "remind":
		a.remind(ctx)

	default:
		a.println("Unknown command:", cmd)
	}
}
