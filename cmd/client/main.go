package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oguzhanozgokce/BootMobileSecure/internal/client"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/config"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/logger"
	"github.com/oguzhanozgokce/BootMobileSecure/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		return 2
	}

	log := logger.NewClientLogger("boot-mobile-secure-client", cfg.Log.File).WithLevel(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	app, err := client.NewApp(ctx, cfg, build, log, os.Stdin, os.Stdout)
	if err != nil {
		log.Error().Err(err).Msg("init client app error")
		fmt.Fprintf(os.Stderr, "init client app error: %v\n", err)
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Err(err).Msg("error closing local storage")
		}
	}()

	if err = app.Run(ctx, args); err != nil {
		switch {
		case errors.Is(err, client.ErrUsage):
			fmt.Fprintln(os.Stderr, err)
			return 2
		case errors.Is(err, client.ErrCommandFailed):
			return 1
		default:
			log.Error().Err(err).Msg("client run error")
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	return 0
}
