package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"lunabridge/internal/config"
	"lunabridge/internal/ghl"
	"lunabridge/internal/logger"
	"lunabridge/internal/server"
)

func main() {
	// Optional; production deploys supply real environment variables.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	if !cfg.HasCRMConfig() {
		log.Warn("GHL credentials are not configured, webhooks will be rejected")
	}

	crm := ghl.NewClient(cfg.GHLBaseURL, cfg.GHLAPIToken, cfg.GHLAPIVersion, cfg.GHLLocationID, log)
	srv := server.New(cfg, crm, log)

	log.Info("starting lunabridge",
		zap.String("port", cfg.Port),
		zap.Int("calendarRoutes", len(cfg.CalendarRoutes)),
		zap.Int("customFieldMappings", len(cfg.CustomFieldMap)),
		zap.Bool("eventFilter", cfg.EventFilterEnabled),
		zap.Bool("secretCheck", cfg.SecretCheckEnabled))

	if err := srv.Run(); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
