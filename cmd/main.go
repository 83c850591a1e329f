package main

import (
	"context"

	"formlink/formlink_go_form_service/airtable"
	"formlink/formlink_go_form_service/api"
	"formlink/formlink_go_form_service/config"
	"formlink/formlink_go_form_service/pkg/jaeger"
	"formlink/formlink_go_form_service/pkg/logger"
	"formlink/formlink_go_form_service/storage/postgres"
	"formlink/formlink_go_form_service/webhook"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	loggerLevel := logger.LevelDebug

	switch cfg.Environment {
	case config.DebugMode:
		loggerLevel = logger.LevelDebug
		gin.SetMode(gin.DebugMode)
	case config.TestMode:
		loggerLevel = logger.LevelDebug
		gin.SetMode(gin.TestMode)
	default:
		loggerLevel = logger.LevelInfo
		gin.SetMode(gin.ReleaseMode)
	}

	log := logger.NewLogger(cfg.ServiceName, loggerLevel)
	defer logger.Cleanup(log)

	closer, err := jaeger.Setup(cfg.ServiceName, cfg.JaegerHostPort)
	if err != nil {
		log.Error("jaeger.Setup", logger.Error(err))
	}

	if closer != nil {
		defer closer.Close()
	}

	pgStore, err := postgres.NewPostgres(context.Background(), cfg, log)
	if err != nil {
		log.Panic("postgres.NewPostgres", logger.Error(err))
	}
	defer pgStore.CloseDB()

	airtableClient := airtable.NewClient(cfg, log)

	engine := webhook.NewEngine(cfg, log, pgStore, airtableClient)
	defer engine.Stop()

	router := api.SetUpRouter(cfg, log, pgStore, airtableClient, engine)

	log.Info("HTTP: Server being started...", logger.String("port", cfg.HTTPPort))

	if err := router.Run(cfg.HTTPPort); err != nil {
		log.Panic("router.Run", logger.Error(err))
	}
}
