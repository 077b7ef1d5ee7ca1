// boleto-server runs the HTTP extraction API and, when WATCH_DIR is set,
// the watch-folder worker in the same process.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dimviana/Gestor-de-Boleto/internal/app"
	"github.com/dimviana/Gestor-de-Boleto/internal/common"
)

func main() {
	logger := common.NewLogger(os.Stdout, common.ParseLevel(os.Getenv("LOG_LEVEL")), "json")

	cfg := common.LoadConfig()
	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Serve(gctx) })
	if cfg.Watch.Dir != "" {
		g.Go(func() error { return a.Watch(gctx, cfg.Watch.Dir) })
	} else {
		logger.Info("WATCH_DIR not set, folder watcher disabled")
	}

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("stopped")
}
