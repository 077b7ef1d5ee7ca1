// Package app wires configuration, the extraction engine and the outer
// surfaces (batch, watch folder, HTTP API) together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dimviana/Gestor-de-Boleto/constants"
	"github.com/dimviana/Gestor-de-Boleto/internal/cache"
	"github.com/dimviana/Gestor-de-Boleto/internal/common"
	"github.com/dimviana/Gestor-de-Boleto/internal/core"
	"github.com/dimviana/Gestor-de-Boleto/internal/core/async"
	"github.com/dimviana/Gestor-de-Boleto/internal/core/boleto"
	"github.com/dimviana/Gestor-de-Boleto/internal/core/textlayer"
	"github.com/dimviana/Gestor-de-Boleto/internal/export"
	"github.com/dimviana/Gestor-de-Boleto/internal/ingest"
	"github.com/dimviana/Gestor-de-Boleto/internal/server"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Config    *common.Config
	Logger    *slog.Logger
	Engine    *boleto.Engine
	Text      *textlayer.Extractor
	Processor *core.Processor
}

func New(cfg *common.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	engine, err := LoadEngine(cfg.Engine.FieldsFile, logger)
	if err != nil {
		return nil, err
	}
	text := textlayer.NewExtractor(textlayer.FromAppConfig(cfg.Text), logger)
	return &App{
		Config:    cfg,
		Logger:    logger,
		Engine:    engine,
		Text:      text,
		Processor: core.NewProcessor(logger, text, engine),
	}, nil
}

// LoadEngine returns the engine for the YAML specs at path, or the
// embedded default engine when path is empty.
func LoadEngine(path string, logger *slog.Logger) (*boleto.Engine, error) {
	if path == "" {
		return boleto.Default(), nil
	}
	spec, err := boleto.LoadSpecFile(path)
	if err != nil {
		return nil, common.WrapError(err, "load engine")
	}
	logger.Info("loaded field specs", "path", path, "fields", len(spec.Fields))
	return boleto.NewEngine(spec, logger)
}

// Batch processes every document under dir with up to workers concurrent
// extractions. Outcomes keep the scan order; repeated content and repeated
// barcodes come back as DUPLICATE.
func (a *App) Batch(ctx context.Context, dir string, workers int) ([]core.Outcome, ingest.DirStats, error) {
	refs, stats, err := ingest.NewScanner(a.Logger).ScanDirectory(ctx, dir, true)
	if err != nil {
		return nil, stats, err
	}
	if workers < 1 {
		workers = 1
	}

	outs := make([]core.Outcome, len(refs))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, ref := range refs {
		switch {
		case ref.Err != "":
			outs[i] = core.Outcome{File: ref.Path, Status: constants.OutcomeFailed, Error: ref.Err}
			continue
		case ref.Deduplicated:
			outs[i] = core.Outcome{File: ref.Path, SHA256: ref.HashHex, Status: constants.OutcomeDuplicate,
				Error: "same content as an earlier file"}
			continue
		}
		g.Go(func() error {
			out, err := a.Processor.ProcessFile(ctx, ref.Path)
			if err != nil {
				a.Logger.Warn("batch item failed", "path", ref.Path, "error", err)
			}
			out.File = ref.Path
			outs[i] = out
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return outs, stats, err
	}

	n := export.MarkDuplicates(outs)
	a.Logger.Info("batch finished", "dir", dir, "files", len(outs), "duplicate_barcodes", n)
	return outs, stats, nil
}

// Watch processes documents dropped into dir until ctx is done, then
// files each one into _processed or _failed.
func (a *App) Watch(ctx context.Context, dir string) error {
	if dir == "" {
		return common.NewAppError(common.CodeConfig, "watch directory is required", common.ErrInvalidInput)
	}
	events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       []string{dir},
		InitialScan: true,
		Debounce:    a.Config.Watch.Debounce,
		Logger:      a.Logger,
	})
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	mover := ingest.NewMover(a.Logger)
	dupes := export.NewDuplicateTracker()
	q := async.NewProcessorQueue(a.Processor, a.Logger,
		async.WithWorkers(a.Config.Watch.Workers),
		async.WithQueueSize(a.Config.Watch.QueueSize),
		async.WithOnDone(func(job async.Job, out core.Outcome, err error) {
			if err == nil {
				dupes.Check(&out)
			}
			if _, mErr := mover.Move(job.Path, out, err); mErr != nil {
				a.Logger.Error("failed to file document", "path", job.Path, "error", mErr)
			}
		}),
	)
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		q.Shutdown(sctx)
	}()

	a.Logger.Info("watching folder", "dir", dir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case p, ok := <-events:
			if !ok {
				return nil
			}
			if err := q.Enqueue(ctx, async.NewJob(p)); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				a.Logger.Error("failed to enqueue document", "path", p, "error", err)
			}
		case _, ok := <-errs:
			if !ok {
				errs = nil
			}
		}
	}
}

// Serve runs the HTTP API until ctx is done.
func (a *App) Serve(ctx context.Context) error {
	rc, err := cache.New(a.Config.Cache, a.Engine.Fingerprint(), a.Logger)
	if err != nil {
		return err
	}
	defer rc.Close()

	h := server.NewBoletoHandler(a.Processor, rc, a.Config.Server.MaxUploadBytes, a.Logger)
	srv := server.New(a.Config.Server, server.NewRouter(a.Config.Server, a.Config.Auth, h, a.Logger), a.Logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	return g.Wait()
}
