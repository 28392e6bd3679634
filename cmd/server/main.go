package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/macrolens/capture/config"
	httpDelivery "github.com/macrolens/capture/internal/delivery/http"
	"github.com/macrolens/capture/internal/domain"
	"github.com/macrolens/capture/internal/infrastructure/cache"
	"github.com/macrolens/capture/internal/infrastructure/files"
	"github.com/macrolens/capture/internal/infrastructure/recognition"
	"github.com/macrolens/capture/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting macrolens capture",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
	)

	// Infrastructure
	memoryCache := cache.NewMemoryCache(cache.DefaultCleanupInterval)
	defer memoryCache.Close()

	recognizer := timeoutRecognizer{
		next: recognition.NewTesseractRecognizer(recognition.TesseractConfig{
			Binary:   cfg.Recognition.TesseractBinary,
			Language: cfg.Recognition.Language,
			PSM:      cfg.Recognition.PSM,
		}, nil, logger),
		timeout: cfg.Recognition.Timeout,
	}
	barcodes := timeoutDecoder{
		next:    recognition.NewZbarDecoder(cfg.Recognition.ZbarBinary, nil, logger),
		timeout: cfg.Recognition.Timeout,
	}

	// Shared read-only tables
	lexicon := usecase.NewLexicon()
	catalog := usecase.NewMovementCatalog()
	detection := detectionConfig(cfg.Detection)

	fileService := usecase.NewFileService(
		files.NewSpreadsheetDecoder(logger),
		files.NewDocumentDecoder(logger),
		memoryCache,
		usecase.FileServiceConfig{
			MinRecoveredChars: cfg.Files.MinRecoveredChars,
			MinRunLength:      cfg.Files.MinRunLength,
			CacheTTL:          cfg.Cache.TTL,
		},
		logger,
	)
	nutritionService := usecase.NewNutritionService(
		recognizer,
		barcodes,
		lexicon,
		usecase.NewNutritionExtractor(),
		usecase.NutritionServiceConfig{Detection: detection},
		logger,
	)
	workoutService := usecase.NewWorkoutService(
		recognizer,
		lexicon,
		usecase.NewWorkoutParser(catalog),
		fileService,
		usecase.WorkoutServiceConfig{Detection: detection},
		logger,
	)
	visionDecoder, err := usecase.NewVisionDecoder(catalog)
	if err != nil {
		logger.Fatal("failed to build vision decoder", zap.Error(err))
	}

	handler := httpDelivery.NewHandler(
		nutritionService,
		workoutService,
		visionDecoder,
		httpDelivery.HandlerConfig{MaxUploadBytes: cfg.Files.MaxUploadBytes},
		logger,
	)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

// newLogger builds a development logger outside production
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Server.Environment != "production" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func detectionConfig(d config.DetectionConfig) usecase.DetectionConfig {
	weights := func(w config.WeightsConfig) usecase.SignalWeights {
		return usecase.SignalWeights{Structural: w.Structural, Keyword: w.Keyword, Completeness: w.Completeness}
	}
	return usecase.DetectionConfig{
		MinKeywordMatches: d.MinKeywordMatches,
		MinConfidence:     d.MinConfidence,
		BlockSaturation:   d.BlockSaturation,
		LengthSaturation:  d.LengthSaturation,
		KeywordSaturation: d.KeywordSaturation,
		NutritionWeights:  weights(d.NutritionWeights),
		WorkoutWeights:    weights(d.WorkoutWeights),
	}
}

// timeoutRecognizer bounds each recognition call
type timeoutRecognizer struct {
	next    domain.TextRecognizer
	timeout time.Duration
}

func (t timeoutRecognizer) Recognize(ctx context.Context, img domain.Image) (domain.TextRecognition, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	return t.next.Recognize(ctx, img)
}

// timeoutDecoder bounds each barcode decoding call
type timeoutDecoder struct {
	next    domain.BarcodeDecoder
	timeout time.Duration
}

func (t timeoutDecoder) Decode(ctx context.Context, img domain.Image) ([]domain.BarcodeCandidate, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	return t.next.Decode(ctx, img)
}
