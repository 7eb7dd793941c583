package main

import (
	"github.com/joho/godotenv"

	"github.com/fooddelivery/marketplace-go/internal/devapi"
	"github.com/fooddelivery/marketplace-go/internal/infrastructure/config"
	"github.com/fooddelivery/marketplace-go/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	store := devapi.NewStore()
	store.Seed()

	e := devapi.NewRouter(store, cfg.DevAPI.JWTSecret, cfg.DevAPI.TokenTTL, log)
	log.Info().Str("port", cfg.DevAPI.Port).Msg("devapi listening")
	if err := e.Start(":" + cfg.DevAPI.Port); err != nil {
		log.Fatal().Err(err).Msg("devapi stopped")
	}
}
