// Command jobtrack runs the job-application tracker API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobtrack/jobtrack/internal/config"
	"github.com/jobtrack/jobtrack/internal/data"
	"github.com/jobtrack/jobtrack/internal/handler"
	"github.com/jobtrack/jobtrack/internal/middleware"
	"github.com/jobtrack/jobtrack/internal/notify"
	"github.com/jobtrack/jobtrack/internal/realtime"
	"github.com/jobtrack/jobtrack/internal/service"
	"github.com/jobtrack/jobtrack/pkg/email"
	"github.com/jobtrack/jobtrack/pkg/jwt"
	"github.com/jobtrack/jobtrack/pkg/logger"
	"github.com/jobtrack/jobtrack/pkg/worker"
)

var version = "dev"

// App holds the long-lived components of the process.
type App struct {
	conf    *config.Config
	logger  *logger.Logger
	data    *data.Data
	hub     *realtime.Hub
	pool    *worker.Pool
	server  *http.Server
	cleanup []func()
}

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	app, err := newApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}

	if err := app.run(); err != nil {
		app.logger.Errorf(context.Background(), "server exited with error: %v", err)
		app.shutdown()
		os.Exit(1)
	}
	app.shutdown()
}

// newApp builds the dependency graph from configuration.
func newApp(configPath string) (*App, error) {
	conf, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	log, logCleanup, err := logger.New(conf.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.SetVersion(version)

	app := &App{conf: conf, logger: log}
	app.cleanup = append(app.cleanup, logCleanup)

	d, err := data.New(conf.Data.MongoURI, conf.Data.Database, log)
	if err != nil {
		return nil, err
	}
	app.data = d

	sender, err := email.NewSender(conf.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize email sender: %w", err)
	}
	if sender == nil {
		log.Warn(context.Background(), "email delivery disabled: no provider configured")
	}

	app.hub = realtime.NewHub(log)
	app.pool = worker.NewPool(&worker.Config{
		MaxWorkers:  conf.Notify.Workers,
		QueueSize:   conf.Notify.QueueSize,
		TaskTimeout: time.Minute,
	})

	notifier := notify.NewDispatcher(app.hub, app.pool, sender, log)
	tokens := jwt.NewTokenManager(conf.Auth.JWTSecret, conf.Auth.TokenExpiry)
	svc := service.New(d, tokens, notifier, log)

	if conf.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middleware.Logging(log), gin.Recovery())

	h := handler.New(svc, app.hub, log)
	h.RegisterRoutes(engine, handler.Health(func(c *gin.Context) error {
		return d.Ping(c.Request.Context())
	}))

	config.Watch(func(c *config.Config) {
		log.Infof(context.Background(), "configuration reloaded")
		if c.Logger != nil {
			if _, err := log.Init(c.Logger); err != nil {
				log.Errorf(context.Background(), "failed to apply logger config: %v", err)
			}
		}
	})

	app.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", conf.Host, conf.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return app, nil
}

// run starts the hub, the worker pool and the HTTP server, and blocks
// until a shutdown signal arrives.
func (a *App) run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.hub.Run(ctx)
	a.pool.Start()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof(ctx, "%s listening on %s", a.conf.AppName, a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		a.logger.Infof(ctx, "received signal %s, shutting down", sig)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Errorf(ctx, "server shutdown error: %v", err)
	}

	cancel()
	a.pool.Stop(shutdownCtx)
	return nil
}

// shutdown releases remaining resources in reverse construction order.
func (a *App) shutdown() {
	if a.data != nil {
		if err := a.data.Close(); err != nil {
			a.logger.Errorf(context.Background(), "failed to close data layer: %v", err)
		}
	}
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i]()
	}
}
