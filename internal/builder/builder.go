package builder

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/myebookchess-cloud/jyro-demo/internal/api"
	chatapi "github.com/myebookchess-cloud/jyro-demo/internal/api/chat"
	"github.com/myebookchess-cloud/jyro-demo/internal/config"
	"github.com/myebookchess-cloud/jyro-demo/internal/ingest"
	"github.com/myebookchess-cloud/jyro-demo/internal/integration/openai"
	"github.com/myebookchess-cloud/jyro-demo/internal/pkg/validator"
	"github.com/myebookchess-cloud/jyro-demo/internal/session"
	"github.com/myebookchess-cloud/jyro-demo/internal/usecase/chat"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Session store
	sessions := session.NewStore(cfg.SessionCfg, logger)
	logger.Info("Session store initialized", zap.Duration("ttl", cfg.SessionCfg.TTL))

	// Ingestion pipeline
	fetcher := ingest.NewSiteFetcher(cfg.FetchCfg, logger)
	extractor := ingest.NewPDFExtractor(logger)

	// Completion gateway (with mock support)
	var gateway chat.CompletionGateway
	if cfg.EnableMocks {
		logger.Info("Using mock completion gateway")
		gateway = openai.NewMockConnector(logger)
	} else {
		logger.Info("Using OpenAI completion gateway", zap.String("model", cfg.OpenAICfg.Model))
		gateway = openai.NewConnector(cfg.OpenAICfg, logger)
	}

	// Use case
	chatUC := chat.NewUsecase(
		sessions,
		fetcher,
		extractor,
		gateway,
		cfg.SiteContextMaxChars,
		cfg.DocumentContextMaxChars,
		logger,
	)
	logger.Info("Use cases initialized")

	// API handler + router
	reqValidator := validator.New(cfg.FileUploadCfg)
	chatHandler := chatapi.NewHandler(chatUC, reqValidator, cfg.FileUploadCfg)
	router := api.SetupRouter(chatHandler, logger)
	logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

func setupLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
