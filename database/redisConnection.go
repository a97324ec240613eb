package database

import (
	"log"
	"os"

	"github.com/go-redis/redis/v8"
)

// RedisInstance returns the shared cache client, or nil when REDIS_ADDR is
// not configured. Callers must treat a nil client as "cache disabled".
func RedisInstance() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	log.Println("redis cache enabled at", addr)
	return client
}

var RedisClient *redis.Client = RedisInstance()
