package main

import (
	"log/slog"

	"github.com/assetdesk/metagen/internal/api"
	"github.com/assetdesk/metagen/internal/batch"
	"github.com/assetdesk/metagen/internal/config"
	"github.com/assetdesk/metagen/internal/convert"
	"github.com/assetdesk/metagen/internal/events"
	"github.com/assetdesk/metagen/internal/generation"
	"github.com/assetdesk/metagen/internal/imageprep"
)

// application holds the fully wired pipeline behind the HTTP surface.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	handler *api.BatchHandler
}

// newApplication wires the pipeline components around the given describer and
// converter. The two boundary collaborators are injected so tests can run the
// full stack against stubs.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	describer generation.Describer,
	converter convert.SlideConverter,
) *application {
	imageCfg := imageprep.Config{
		MaxSide:     cfg.Image.MaxSide,
		JPEGQuality: cfg.Image.JPEGQuality,
	}

	decomposer := batch.NewDecomposer(converter, imageCfg, logger)
	worker := batch.NewWorker(describer, cfg.Batch.TransientRetries, logger)
	limiter := batch.NewLimiter(cfg.Batch.MaxConcurrent)
	coordinator := batch.NewCoordinator(worker, limiter, logger)
	registry := batch.NewRegistry()

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewLoggingHandler(logger))

	handler := api.NewBatchHandler(decomposer, coordinator, registry, emitter, cfg.Batch.MaxFiles, logger)

	return &application{
		config:  cfg,
		logger:  logger,
		handler: handler,
	}
}
