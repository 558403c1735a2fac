package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"InfraDash/internal/api/router"
	"InfraDash/internal/app"
	"InfraDash/internal/pkg/logger"
)

var (
	cleanupMu    sync.Mutex
	cleanupFuncs []func()
)

// RegisterCleanupFunc registers fn to run after shutdown, in registration
// order
func RegisterCleanupFunc(fn func()) {
	cleanupMu.Lock()
	defer cleanupMu.Unlock()
	cleanupFuncs = append(cleanupFuncs, fn)
}

func runCleanup() {
	cleanupMu.Lock()
	funcs := cleanupFuncs
	cleanupFuncs = nil
	cleanupMu.Unlock()

	for _, fn := range funcs {
		fn()
	}
}

// HandleSignals sets up signal handling for graceful shutdown. SIGHUP
// triggers an immediate snapshot refresh.
func HandleSignals(application *app.Application, builder *router.Builder) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for {
		sig := <-sigChan
		switch sig {
		case syscall.SIGINT, syscall.SIGTERM:
			logger.Info("Received termination signal, shutting down...",
				logger.String("signal", sig.String()))

			builder.Shutdown()
			runCleanup()
			application.Shutdown()
			os.Exit(0)
		case syscall.SIGHUP:
			logger.Info("Received SIGHUP signal, refreshing status snapshot...")
			go func() {
				_ = builder.Controller().RefreshSnapshot(context.Background())
			}()
		}
	}
}
