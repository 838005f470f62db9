package main

import (
	"log"
	"log/slog"

	"github.com/stagecrew/propshelf/internal/config"
	"github.com/stagecrew/propshelf/internal/db"
	"github.com/stagecrew/propshelf/internal/logging"
	"github.com/stagecrew/propshelf/internal/photostore/local"
	"github.com/stagecrew/propshelf/internal/service"
	"github.com/stagecrew/propshelf/internal/store"
	"github.com/stagecrew/propshelf/internal/vision"
	claudetag "github.com/stagecrew/propshelf/internal/vision/claude"
	ollamatag "github.com/stagecrew/propshelf/internal/vision/ollama"
	"github.com/stagecrew/propshelf/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	photoStore, err := local.NewLocalPhotoStore(cfg.UploadPath)
	if err != nil {
		logger.Error("failed to initialize photo store", "error", err)
		return
	}

	propStore := store.NewPropStore(database)
	locationStore := store.NewLocationStore(database)

	propService := service.NewPropService(propStore, photoStore, newTagger(cfg, logger), logger)
	locationService := service.NewLocationService(locationStore, logger)

	server := web.NewServer(propService, locationService, photoStore, cfg.AuthHeader, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

// newTagger builds the optional photo-tagging backend. Tagging is off unless
// TAG_BACKEND selects a backend.
func newTagger(cfg *config.Config, logger *slog.Logger) vision.Tagger {
	switch cfg.TagBackend {
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			logger.Error("CLAUDE_API_KEY is required when TAG_BACKEND=claude; tagging disabled")
			return nil
		}
		logger.Info("photo tagging enabled", "backend", "claude")
		return claudetag.NewClaudeTagger(cfg.ClaudeAPIKey, cfg.ClaudeModel)
	case "ollama":
		logger.Info("photo tagging enabled", "backend", "ollama", "model", cfg.OllamaModel)
		return ollamatag.NewOllamaTagger(cfg.OllamaHost, cfg.OllamaModel)
	case "":
		return nil
	default:
		logger.Warn("unknown TAG_BACKEND, photo tagging disabled", "backend", cfg.TagBackend)
		return nil
	}
}
