// Package app wires configuration, clients, storage, and services together.
package app

import (
	"context"
	"fmt"

	"github.com/chartproof/chartproof/internal/clients/gemini"
	"github.com/chartproof/chartproof/internal/common"
	"github.com/chartproof/chartproof/internal/interfaces"
	"github.com/chartproof/chartproof/internal/services/analysis"
	"github.com/chartproof/chartproof/internal/services/grounding"
	"github.com/chartproof/chartproof/internal/services/users"
	"github.com/chartproof/chartproof/internal/storage"
)

// App holds the assembled application components.
type App struct {
	Config  *common.Config
	Logger  *common.Logger
	Storage interfaces.StorageManager

	Gemini    interfaces.GeminiClient
	Analysis  interfaces.AnalysisService
	Grounding interfaces.GroundingService
	Users     *users.Service
}

// New loads configuration and assembles the application.
func New(configPaths ...string) (*App, error) {
	config, err := common.LoadConfig(configPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	apiKey := common.ResolveGeminiAPIKey(config)
	geminiClient, err := gemini.NewClient(context.Background(), apiKey,
		gemini.WithModel(config.Clients.Gemini.Model),
		gemini.WithVisionModel(config.Clients.Gemini.VisionModel),
		gemini.WithTimeout(config.Clients.Gemini.GetTimeout()),
		gemini.WithRateLimit(config.Clients.Gemini.RateLimit),
		gemini.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	if !geminiClient.Configured() {
		logger.Warn().Msg("Gemini API key not configured; analysis requests will fail until one is provided")
	}

	groundingService := grounding.NewService(geminiClient, logger,
		grounding.WithCacheTTL(config.Grounding.GetCacheTTL()),
		grounding.WithMaxSources(config.Grounding.MaxSources),
	)

	analysisService := analysis.NewService(geminiClient, groundingService,
		storageManager.ReportStore(), logger)

	userService := users.NewService(storageManager.UserStore(), logger)

	return &App{
		Config:    config,
		Logger:    logger,
		Storage:   storageManager,
		Gemini:    geminiClient,
		Analysis:  analysisService,
		Grounding: groundingService,
		Users:     userService,
	}, nil
}

// Close releases application resources.
func (a *App) Close() {
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage")
		}
	}
}
