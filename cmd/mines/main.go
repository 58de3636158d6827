package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/app"
	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/game"
	"github.com/vancomm/minefield/internal/logging"
	"github.com/vancomm/minefield/internal/minefield"
	"github.com/vancomm/minefield/internal/session"
)

var configPath string

func init() {
	const usage = "config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
}

func main() {
	flag.Parse()

	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		logrus.Fatal("unable to load config: ", err)
	}

	log, err := logging.New(cfg.Log, cfg.Development, os.Stderr)
	if err != nil {
		logrus.Fatal("unable to set up logging: ", err)
	}
	for _, pkg := range []*logrus.Logger{minefield.Log, game.Log, session.Log} {
		logging.Adopt(pkg, log)
	}

	log.Info("starting up")
	log.WithFields(cfg.Fields()).Debug("config")

	if err := app.New(log, cfg).Start(mainCtx); err != nil {
		log.Fatal("exit reason: ", err)
	}
	log.Info("shut down")
}
