// Package app wires the shell's resources together for one launch:
// shared log buffer, process handle, supervisor and command surface,
// created at startup and torn down at exit.
package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"opencode-desktop/internal/commands"
	"opencode-desktop/internal/config"
	"opencode-desktop/internal/logbuf"
	"opencode-desktop/internal/shell"
	"opencode-desktop/internal/sidecar"
)

// updaterKey is injected at build time for signed release builds via
// -ldflags "-X opencode-desktop/internal/app.updaterKey=...". Update
// checking is enabled in the UI only when it is present.
var updaterKey string

// App owns the supervisor, the command surface and the shared state
// behind them.
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	collector  *logbuf.Collector
	handle     *sidecar.Handle
	window     *shell.HeadlessWindow
	supervisor *sidecar.Supervisor
	surface    *commands.Surface
}

// New assembles the application over the loaded configuration.
func New(cfg *config.Config, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	collector := logbuf.NewCollector(logger)
	handle := sidecar.NewHandle(logger)
	window := shell.NewHeadlessWindow(logger)
	dialog := shell.NewAlertDialog(sidecar.RecoveryCopyLogsAndExit, logger)

	supervisor := sidecar.New(cfg, collector, handle, dialog, window, logger)
	supervisor.UpdaterEnabled = updaterKey != ""

	surface := commands.NewSurface(collector, handle, shell.SystemClipboard{}, logger)
	supervisor.SetCopyLogs(surface.CopyLogsToClipboard)

	return &App{
		cfg:        cfg,
		logger:     logger,
		collector:  collector,
		handle:     handle,
		window:     window,
		supervisor: supervisor,
		surface:    surface,
	}
}

// Commands returns the surface the UI layer invokes.
func (a *App) Commands() *commands.Surface {
	return a.surface
}

// Run drives the launch sequence in the background and blocks until the
// application is told to exit, then terminates the owned sidecar. Exit
// signals cancel the supervisor's context, so a quit during the
// readiness wait unwinds cleanly instead of running into the timeout.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	launchErr := make(chan error, 1)
	go func() {
		launchErr <- a.supervisor.Run(ctx)
	}()

	var runErr error
	select {
	case err := <-launchErr:
		switch {
		case err != nil && ctx.Err() == nil:
			runErr = err
		case err == nil:
			// Launched; stay up until asked to exit.
			<-ctx.Done()
			a.logger.Info("Exit requested, shutting down")
		}
	case <-ctx.Done():
		a.logger.Info("Exit requested during startup")
		// Cancellation unblocks the launch goroutine; join it so the
		// handle state is settled before termination.
		<-launchErr
	}

	a.supervisor.Shutdown()
	return runErr
}
