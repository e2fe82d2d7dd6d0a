// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"coladay/config"

	"github.com/go-redis/redis/v8"
)

var (
	// LedgerClient is the Redis client backing the reservation store and
	// the confirmation channel bridge.
	LedgerClient *redis.Client
)

// InitLedgerClient initializes the Redis client for the ledger (using DB from AppConfig).
func InitLedgerClient() {
	LedgerClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLedgerDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := LedgerClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Ledger): %v", err)
	}
}

// GetLedgerClient returns the Redis client for the ledger.
func GetLedgerClient() *redis.Client {
	if LedgerClient == nil {
		InitLedgerClient()
	}
	return LedgerClient
}
