package app

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/Anas-en/College-event-management/internal/config"
	"github.com/Anas-en/College-event-management/internal/domain"
	"github.com/Anas-en/College-event-management/internal/handler"
	"github.com/Anas-en/College-event-management/internal/middleware"
	"github.com/Anas-en/College-event-management/internal/notification"
	"github.com/Anas-en/College-event-management/internal/router"
	"github.com/Anas-en/College-event-management/internal/scheduler"
	"github.com/wb-go/wbf/logger"
)

type App struct {
	cfg        *config.Config
	log        logger.Logger
	core       *Core
	httpServer *http.Server
	scheduler  *scheduler.Scheduler
}

func New(cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg}

	log, err := NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	app.log = log

	n, err := notification.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, log)
	if err != nil {
		return nil, fmt.Errorf("init notifier: %w", err)
	}

	core, err := NewCore(context.Background(), cfg, log, n)
	if err != nil {
		return nil, fmt.Errorf("init core: %w", err)
	}
	app.core = core

	app.scheduler = scheduler.New(core.Events, cfg.Scheduler.Interval, log)

	h := handler.NewHandler(core.Events, core.Registrations)
	r := router.InitRouter(
		cfg.Gin.Mode,
		h,
		core.Metrics.Handler(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Recovery(log),
	)

	app.httpServer = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

// NewLogger builds the process logger from config.
func NewLogger(cfg *config.Config) (logger.Logger, error) {
	return logger.InitLogger(
		cfg.Logger.LogEngine(),
		"EventBoard",
		cfg.Gin.Mode,
		logger.WithLevel(cfg.Logger.LogLevel()),
	)
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res := a.core.Events.Bootstrap(ctx)
	a.log.LogAttrs(ctx, logger.InfoLevel, "events bootstrapped",
		logger.String("outcome", string(res.Outcome)),
		logger.Int("events", len(res.Events)),
	)
	if res.Outcome == domain.BootstrapFailed {
		go a.scheduler.Start(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.LogAttrs(ctx, logger.InfoLevel, "HTTP server starting",
			logger.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutdown signal received")
	case err := <-errCh:
		_ = a.core.Close()
		return err
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		a.cfg.Server.WriteTimeout,
	)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "HTTP server stopped")

	if err := a.core.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "storage closed")

	a.log.LogAttrs(context.Background(), logger.InfoLevel, "app stopped")

	return nil
}
