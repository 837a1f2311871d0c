package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/marketingexpan-commits/meuexpansivo3-sub001/config"
)

// Client Redis 客户端封装
// 当前用于授课课时计算结果缓存；后续可扩展分布式锁等场景
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 授课课时缓存 ──

const taughtHoursPrefix = "taught:"

// taughtHoursKey 缓存键: taught:{classID}:{subject}:{periodID}
func taughtHoursKey(classID, subject, periodID string) string {
	return taughtHoursPrefix + classID + ":" + subject + ":" + periodID
}

// GetTaughtHours 读取缓存的课时值；未命中时返回 found=false
func (c *Client) GetTaughtHours(ctx context.Context, classID, subject, periodID string) (hours float64, found bool, err error) {
	val, err := c.rdb.Get(ctx, taughtHoursKey(classID, subject, periodID)).Result()
	if err == goredis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	hours, err = strconv.ParseFloat(val, 64)
	if err != nil {
		// 缓存值损坏：当作未命中，由调用方重算覆盖
		return 0, false, nil
	}
	return hours, true, nil
}

// SetTaughtHours 写入课时缓存
func (c *Client) SetTaughtHours(ctx context.Context, classID, subject, periodID string, hours float64, ttl time.Duration) error {
	val := strconv.FormatFloat(hours, 'f', -1, 64)
	return c.rdb.Set(ctx, taughtHoursKey(classID, subject, periodID), val, ttl).Err()
}

// InvalidateClass 删除某班级的全部课时缓存（课表或校历变更后调用）
func (c *Client) InvalidateClass(ctx context.Context, classID string) error {
	pattern := taughtHoursPrefix + classID + ":*"
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// InvalidateAll 删除全部课时缓存（全校范围校历事件变更后调用）
func (c *Client) InvalidateAll(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, taughtHoursPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// ── 速率限制 ──

// CheckRateLimit 基于有序集合的滑动窗口限流。
// 返回 true 表示本次请求在窗口配额内。
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	windowStart := now.Add(-window)

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	countCmd := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	if countCmd.Val() >= int64(limit) {
		return false, nil
	}

	pipe = c.rdb.TxPipeline()
	pipe.ZAdd(ctx, key, goredis.Z{
		Score:  float64(now.UnixNano()),
		Member: strconv.FormatInt(now.UnixNano(), 10),
	})
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return true, nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
