package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"temple-backend/internal/config"
)

// Summary cache keys. Dashboard totals are the only cached computation;
// reports always hit the database.
const (
	summaryKeyFmt = "report:summary:%s" // as-on date
	summaryTTL    = 5 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection. A failed connection degrades
// gracefully: all cache calls become no-ops.
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetCachedSummary returns cached dashboard totals for the given date key.
func GetCachedSummary(ctx context.Context, asOn string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, fmt.Sprintf(summaryKeyFmt, asOn)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheSummary stores dashboard totals for 5 minutes.
func CacheSummary(ctx context.Context, asOn string, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, fmt.Sprintf(summaryKeyFmt, asOn), data, summaryTTL)
}

// InvalidateSummaries drops all cached dashboard totals. Called after every
// posting so totals never lag a committed transaction by more than a miss.
func InvalidateSummaries(ctx context.Context) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, "report:summary:*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
