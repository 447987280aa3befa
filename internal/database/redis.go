package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/toomanyjoshes/terminalchat/internal/config"
)

var Redis *redis.Client
var Ctx = context.Background()

func InitRedis() {
	if config.AppConfig.RedisAddr == "" {
		log.Println("Redis not configured, per-user rate limiting disabled")
		return
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	_, err := Redis.Ping(Ctx).Result()
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Per-user rate limiting disabled.", err)
		Redis = nil
	} else {
		log.Println("Connected to Redis successfully")
	}
}

// CheckRateLimit increments a per-user counter with a rolling window.
// Returns true when the caller is within the limit. With Redis absent the
// check always passes; the per-IP limiter still applies.
func CheckRateLimit(username string, limit int, duration time.Duration) (bool, error) {
	if Redis == nil {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:%s", username)
	count, err := Redis.Incr(Ctx, key).Result()
	if err != nil {
		return false, err
	}

	if count == 1 {
		Redis.Expire(Ctx, key, duration)
	}

	if count > int64(limit) {
		return false, nil
	}
	return true, nil
}
