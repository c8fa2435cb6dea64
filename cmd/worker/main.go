package main

import (
	"context"
	"log"
	"time"

	"github.com/roomify-labs/roomify-backend/config"
	"github.com/roomify-labs/roomify-backend/internal/auth"
	"github.com/roomify-labs/roomify-backend/internal/bootstrap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	kv, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer kv.Close()

	deps := bootstrap.RouterDeps{
		ServiceName:   "roomify-worker",
		Version:       cfg.App.Version,
		KV:            kv,
		RatePerSecond: cfg.Worker.RatePerSecond,
		RateBurst:     cfg.Worker.RateBurst,
	}

	if cfg.App.Environment == "production" {
		authClient, err := auth.InitializeFirebase(&cfg.Firebase)
		if err != nil {
			log.Fatalf("failed to initialize firebase auth: %v", err)
		}
		deps.AuthClient = authClient
	} else {
		log.Println("Running without Firebase auth (development identity fallback)")
	}

	r := bootstrap.BuildRouter(deps)

	log.Printf("roomify worker listening on :%s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
