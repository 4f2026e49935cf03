package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis is optional: it only backs the batch-resolution cache, so a nil
// client simply disables caching instead of failing startup.
var Redis *redis.Client

func ConnectRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("[INFO] REDIS_ADDR not set, batch resolution cache disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] Redis ping failed (%v), batch resolution cache disabled", err)
		return
	}

	Redis = client
	log.Println("[INFO] Redis connected.")
}
