// Package redis provides the Redis connection used for session state.
//
// Graceful fallback: if Redis is unavailable at startup, Init returns
// false and callers fall back to in-memory state instead of failing.
package redis

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis connection settings.
type Config struct {
	URL      string // redis://host:port
	Password string
	DB       int
}

var (
	client    *redis.Client
	connected bool
	mu        sync.RWMutex
)

// Init initializes the Redis connection. Returns true if connected.
func Init(cfg Config) bool {
	if cfg.URL == "" {
		log.Println("[Redis] URL not configured, skipping init")
		return false
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		log.Printf("[Redis] invalid URL: %v", err)
		return false
	}

	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	opts.DB = cfg.DB
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.MaxRetries = 3

	c := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		log.Printf("[Redis] connection failed: %v", err)
		return false
	}

	mu.Lock()
	client = c
	connected = true
	mu.Unlock()

	log.Println("[Redis] connected")
	return true
}

// Close closes the Redis connection.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if client != nil {
		client.Close()
		client = nil
		connected = false
		log.Println("[Redis] connection closed")
	}
}

// Client returns the Redis client, or nil if not available.
func Client() *redis.Client {
	mu.RLock()
	defer mu.RUnlock()
	if connected {
		return client
	}
	return nil
}

// IsAvailable checks if Redis is connected.
func IsAvailable() bool {
	mu.RLock()
	defer mu.RUnlock()
	return connected && client != nil
}
