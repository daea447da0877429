// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"furcare/config"

	"github.com/go-redis/redis/v8"
)

// LockClient is the Redis client backing the staff-day slot locks.
var LockClient *redis.Client

// InitLockClient initializes the Redis client for slot locking (using the lock DB from AppConfig).
func InitLockClient() {
	LockClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLockDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := LockClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Lock): %v", err)
	}
}

// GetLockClient returns the Redis client for slot locking.
func GetLockClient() *redis.Client {
	if LockClient == nil {
		InitLockClient()
	}
	return LockClient
}
