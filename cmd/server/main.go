// Package main implements the entry point for the asset metadata server,
// which decomposes uploaded images and presentations into tasks, generates
// bilingual metadata through the Gemini API, and exports the results as an
// XLSX workbook.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/assetdesk/metagen/internal/config"
	"github.com/assetdesk/metagen/internal/convert"
	"github.com/assetdesk/metagen/internal/platform/gemini"
	"github.com/assetdesk/metagen/internal/platform/logger"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and wires the pipeline components.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"max_files", cfg.Batch.MaxFiles,
		"max_concurrent", cfg.Batch.MaxConcurrent,
		"model", cfg.LLM.ModelName)

	describer, err := gemini.NewDescriber(context.Background(), appLogger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini describer: %w", err)
	}

	converter := convert.NewLibreOffice(cfg.Convert.SofficePath, appLogger)

	return newApplication(cfg, appLogger, describer, converter), nil
}
