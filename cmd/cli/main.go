package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophcards/internal/buildinfo"
	"github.com/dmitrijs2005/gophcards/internal/client/cli"
	"github.com/dmitrijs2005/gophcards/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger, closer, err := cli.NewLogger(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closer.Close()

	app, cleanup, err := cli.NewAppFromConfig(ctx, cfg, logger, os.Stdin, os.Stdout)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		closer.Close()
		os.Exit(1)
	}
	defer cleanup()

	app.Run(ctx)

}
