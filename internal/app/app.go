package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/middleware"
	"github.com/vancomm/minefield/internal/session"
)

type App struct {
	logger *logrus.Logger
	cfg    *config.Config
	router *http.ServeMux
	store  *session.Store
	ws     *config.WebSocket
}

func New(logger *logrus.Logger, cfg *config.Config) *App {
	app := &App{
		logger: logger,
		cfg:    cfg,
		router: http.NewServeMux(),
		store:  session.NewStore(cfg.Server.SessionTTL, cfg.Game.Seed),
		ws:     config.NewWebSocket(cfg.WebSocket),
	}
	app.loadRoutes()
	return app
}

func (a *App) Handler() http.Handler {
	var h http.Handler = a.router
	if base := strings.TrimSuffix(a.cfg.Server.BasePath, "/"); base != "" {
		h = http.StripPrefix(base, h)
	}
	return middleware.Wrap(
		h,
		middleware.Cors(a.cfg.Server.AllowedOrigins),
		middleware.Logging(a.logger),
	)
}

// Start serves until ctx is cancelled, then shuts the server down.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.cfg.Server.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.WithField("addr", a.cfg.Server.Addr).Info("server listening")
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		return a.store.Run(gCtx, a.cfg.Server.SweepInterval)
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownGrace)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
