package stats

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"askrelay/internal/config"
)

// OutcomesKey 结果计数 hash 的 key
const OutcomesKey = "askrelay:outcomes"

// RedisCounter 基于 Redis hash 的结果计数
type RedisCounter struct {
	client *redis.Client
}

// NewRedisCounter 创建计数器并验证连接
func NewRedisCounter(cfg *config.RedisConfig) (*RedisCounter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisCounter{client: client}, nil
}

// Incr 结果计数 +1
func (c *RedisCounter) Incr(ctx context.Context, outcome string) error {
	return c.client.HIncrBy(ctx, OutcomesKey, outcome, 1).Err()
}

// Counts 返回所有结果计数
func (c *RedisCounter) Counts(ctx context.Context) (map[string]int64, error) {
	raw, err := c.client.HGetAll(ctx, OutcomesKey).Result()
	if err != nil {
		return nil, err
	}
	return parseCounts(raw)
}

// Ping 检查连接
func (c *RedisCounter) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close 关闭连接
func (c *RedisCounter) Close() error {
	return c.client.Close()
}

func parseCounts(raw map[string]string) (map[string]int64, error) {
	counts := make(map[string]int64, len(raw))
	for k, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		counts[k] = n
	}
	return counts, nil
}
