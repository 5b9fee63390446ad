package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/hanifra/studycast/server/adapters/extract"
	"github.com/hanifra/studycast/server/adapters/tts"
	"github.com/hanifra/studycast/server/domain/repositories"
	"github.com/hanifra/studycast/server/internal/api"
	"github.com/hanifra/studycast/server/internal/artifacts"
	"github.com/hanifra/studycast/server/internal/config"
	"github.com/hanifra/studycast/server/internal/procrun"
	"github.com/hanifra/studycast/server/usecase"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.Load(logger)

	voices, err := config.LoadVoiceProfiles(cfg.VoicesFile, logger)
	if err != nil {
		logger.Fatal("Failed to load voice profiles", zap.Error(err))
	}

	// Artifact lifecycle: retain generated audio until downloaded or TTL.
	store, err := artifacts.NewManager(cfg.AudioDir, cfg.ArtifactTTL, logger)
	if err != nil {
		logger.Fatal("Failed to initialize artifact store", zap.Error(err))
	}
	defer store.Close()

	// One shared gate for all child processes.
	runner := procrun.NewRunner(cfg.MaxSubprocesses, logger)

	// Extraction backends, priority order: external tool, native parser,
	// heuristic scan.
	var external repositories.DocumentExtractor
	if cfg.ExtractorCommand != "" {
		tool, err := extract.NewExternalTool(cfg.ExtractorCommand, cfg.ExtractorTimeout, runner, logger)
		if err != nil {
			logger.Fatal("Invalid extractor command", zap.Error(err))
		}
		external = tool
	}
	library := extract.NewLibrary(logger)
	heuristic := extract.NewHeuristic(logger)

	// Synthesis backends: external tool with placeholder fallback.
	var primary repositories.SpeechSynthesizer
	if cfg.TTSCommand != "" {
		synth, err := tts.NewGoogleTTS(cfg.TTSCommand, cfg.TTSTimeout, runner, logger)
		if err != nil {
			logger.Fatal("Invalid tts command", zap.Error(err))
		}
		primary = synth
	}
	placeholder := tts.NewPlaceholder(logger)

	extractionService := usecase.NewExtractionService(external, library, heuristic, logger)
	synthesisService := usecase.NewSynthesisService(primary, placeholder, voices, store, cfg.MaxScriptChars, logger)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Initialize API routes
	api.InitRoutes(e, extractionService, synthesisService, store, cfg.MaxUploadBytes, logger)

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
