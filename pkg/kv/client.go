// Package kv wraps the shared Redis backend used for cross-instance counters.
package kv

import (
	"fmt"

	"github.com/go-redis/redis/v8"
)

// ClientOption tweaks the parsed connection options.
type ClientOption func(*redis.Options)

// NewUniversalClient creates a client from a redis:// or rediss:// URL.
func NewUniversalClient(rawURL string, options ...ClientOption) (redis.UniversalClient, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("kv: parse redis url: %w", err)
	}
	for _, opt := range options {
		opt(opts)
	}

	return redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        []string{opts.Addr},
		DB:           opts.DB,
		Username:     opts.Username,
		Password:     opts.Password,
		TLSConfig:    opts.TLSConfig,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		MaxRetries:   opts.MaxRetries,
		PoolSize:     opts.PoolSize,
		MinIdleConns: opts.MinIdleConns,
	}), nil
}
