package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrCacheMiss = errors.New("cache miss")
	ErrCacheDown = errors.New("cache unavailable")
)

// Client is a thin JSON-over-redis cache. Every operation runs through a
// circuit breaker, so a dead redis degrades reads to cache misses instead of
// stalling each request on a timeout.
type Client struct {
	rdb     *redis.Client
	breaker *CircuitBreaker
	metrics *Metrics
	ctx     context.Context
}

type Config struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Addr:         "localhost:6379",
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		MinIdleConns: config.MinIdleConns,
		MaxRetries:   config.MaxRetries,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	})

	return &Client{
		rdb:     rdb,
		breaker: NewCircuitBreaker(nil),
		metrics: NewMetrics(),
		ctx:     context.Background(),
	}
}

func (c *Client) Set(key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	err = c.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(c.ctx, 3*time.Second)
		defer cancel()
		return c.rdb.Set(ctx, key, data, expiration).Err()
	})
	if err != nil {
		c.metrics.RecordError()
		if errors.Is(err, ErrCircuitBreakerOpen) {
			return ErrCacheDown
		}
		return fmt.Errorf("failed to set cache: %w", err)
	}

	c.metrics.RecordSet()
	return nil
}

func (c *Client) Get(key string, dest interface{}) error {
	var data string
	err := c.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(c.ctx, 3*time.Second)
		defer cancel()
		var err error
		data, err = c.rdb.Get(ctx, key).Result()
		if err == redis.Nil {
			// A miss is a normal outcome, not a breaker failure.
			data = ""
			return nil
		}
		return err
	})
	if err != nil {
		c.metrics.RecordError()
		if errors.Is(err, ErrCircuitBreakerOpen) {
			return ErrCacheDown
		}
		return fmt.Errorf("failed to get from cache: %w", err)
	}
	if data == "" {
		c.metrics.RecordMiss()
		return ErrCacheMiss
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		c.metrics.RecordError()
		return fmt.Errorf("failed to unmarshal cached data: %w", err)
	}

	c.metrics.RecordHit()
	return nil
}

func (c *Client) Delete(key string) error {
	err := c.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(c.ctx, 3*time.Second)
		defer cancel()
		return c.rdb.Del(ctx, key).Err()
	})
	if err == nil {
		c.metrics.RecordDelete()
	}
	return err
}

func (c *Client) DeletePattern(pattern string) error {
	return c.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(c.ctx, 10*time.Second)
		defer cancel()

		keys, err := c.rdb.Keys(ctx, pattern).Result()
		if err != nil {
			return fmt.Errorf("failed to get keys for pattern %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			return c.rdb.Del(ctx, keys...).Err()
		}
		return nil
	})
}

func (c *Client) Health() error {
	ctx, cancel := context.WithTimeout(c.ctx, 2*time.Second)
	defer cancel()

	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Stats() map[string]interface{} {
	counters := c.metrics.Snapshot()
	poolStats := c.rdb.PoolStats()

	return map[string]interface{}{
		"hits":          counters.Hits,
		"misses":        counters.Misses,
		"errors":        counters.Errors,
		"sets":          counters.Sets,
		"deletes":       counters.Deletes,
		"hit_rate":      c.metrics.HitRate(),
		"breaker":       c.breaker.GetStats(),
		"pool_hits":     poolStats.Hits,
		"pool_misses":   poolStats.Misses,
		"pool_timeouts": poolStats.Timeouts,
		"pool_total":    poolStats.TotalConns,
		"pool_idle":     poolStats.IdleConns,
	}
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
