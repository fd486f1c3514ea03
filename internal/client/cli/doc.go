// Package cli provides the interactive gophcards command-line client.
//
// App owns the navigation state: it resolves paths through the router (which
// applies the login guard), mounts the resulting page and feeds it the
// commands typed at the prompt. Commands a page does not handle fall through
// to the global set: help, go/open, login, register, logout, remind, exit.
//
// The REPL is started with App.Run(ctx), which blocks until the user exits
// or input ends.
package cli
