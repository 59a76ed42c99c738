package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/net/netutil"

	"kofi-relay/internal/domain/ports"
)

// SelfTester sends the diagnostic notification.
type SelfTester interface {
	SendTest(ctx context.Context) error
}

// Options controls the server lifecycle.
type Options struct {
	Addr            string
	MaxConnections  int
	ShutdownTimeout time.Duration
	// TestSchedule is a cron spec for periodic self-tests. Empty disables them.
	TestSchedule string
}

// App manages the lifecycle of the HTTP relay and the optional self-test scheduler.
type App struct {
	server   *http.Server
	cron     *cron.Cron
	tester   SelfTester
	logger   ports.Logger
	opts     Options
	listener net.Listener
}

// New constructs an App instance.
func New(handler http.Handler, tester SelfTester, logger ports.Logger, opts Options) *App {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 15 * time.Second
	}
	return &App{
		server: &http.Server{
			Addr:              opts.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		cron:   cron.New(),
		tester: tester,
		logger: logger,
		opts:   opts,
	}
}

// Listen binds the listener. Run calls it when it has not been called yet.
func (a *App) Listen() error {
	if a.listener != nil {
		return nil
	}
	ln, err := net.Listen("tcp", a.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.opts.Addr, err)
	}
	if a.opts.MaxConnections > 0 {
		ln = netutil.LimitListener(ln, a.opts.MaxConnections)
	}
	a.listener = ln
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (a *App) Addr() net.Addr {
	if a.listener == nil {
		return nil
	}
	return a.listener.Addr()
}

// Run serves until ctx is cancelled, then stops accepting connections and
// waits for in-flight requests to finish.
func (a *App) Run(ctx context.Context) error {
	if err := a.scheduleSelfTest(); err != nil {
		return err
	}
	if err := a.Listen(); err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info(ctx, "server listening", "addr", a.listener.Addr().String(), "max_connections", a.opts.MaxConnections)
		if err := a.server.Serve(a.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	if a.opts.TestSchedule != "" {
		a.logger.Info(ctx, "starting self-test scheduler", "cron", a.opts.TestSchedule)
		a.cron.Start()
	}

	select {
	case err, ok := <-serveErr:
		a.stopScheduler()
		if ok {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info(context.Background(), "shutting down server")
	a.stopScheduler()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.opts.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	a.logger.Info(context.Background(), "server stopped")
	return nil
}

func (a *App) scheduleSelfTest() error {
	if a.opts.TestSchedule == "" || a.tester == nil {
		return nil
	}
	_, err := a.cron.AddFunc(a.opts.TestSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := a.tester.SendTest(ctx); err != nil {
			a.logger.Error(ctx, "scheduled self-test failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid TEST_SCHEDULE %q: %w", a.opts.TestSchedule, err)
	}
	return nil
}

func (a *App) stopScheduler() {
	stopCtx := a.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
	}
}
