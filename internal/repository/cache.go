package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"shorturl-analytics/internal/model"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	linkCachePrefix = "shortlink:"
	// DefaultLinkCacheTTL 与原先跳转缓存保持一致
	DefaultLinkCacheTTL = 24 * time.Hour
)

// LinkCache 跳转解析用的缓存
// 未命中返回 nil, nil；缓存故障一律按未命中处理，不影响跳转
type LinkCache interface {
	Get(ctx context.Context, shortcode string) (*model.ShortURL, error)
	Set(ctx context.Context, link *model.ShortURL) error
}

var (
	_ LinkCache = (*RedisLinkCache)(nil)
	_ LinkCache = NoopLinkCache{}
)

// RedisLinkCache 基于 Redis 的 LinkCache
// 只缓存短链接的不可变字段，点击计数不进缓存，命中时 ClickCount 为 0
type RedisLinkCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// NewLinkCache rdb 为 nil 时返回空实现
func NewLinkCache(rdb *redis.Client, ttl time.Duration, logger *zap.SugaredLogger) LinkCache {
	if rdb == nil {
		return NoopLinkCache{}
	}
	if ttl <= 0 {
		ttl = DefaultLinkCacheTTL
	}
	return &RedisLinkCache{rdb: rdb, ttl: ttl, logger: logger.Named("link_cache")}
}

type cachedLink struct {
	Shortcode   string    `json:"shortcode"`
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"created_at"`
	Expiry      time.Time `json:"expiry"`
}

func (c *RedisLinkCache) Get(ctx context.Context, shortcode string) (*model.ShortURL, error) {
	data, err := c.rdb.Get(ctx, linkCachePrefix+shortcode).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warnw("读取缓存失败", "shortcode", shortcode, "error", err)
		}
		return nil, nil
	}

	var cached cachedLink
	if err := json.Unmarshal(data, &cached); err != nil {
		c.logger.Warnw("缓存数据无法解析", "shortcode", shortcode, "error", err)
		return nil, nil
	}

	return &model.ShortURL{
		Shortcode:   cached.Shortcode,
		OriginalURL: cached.OriginalURL,
		CreatedAt:   cached.CreatedAt,
		Expiry:      cached.Expiry,
	}, nil
}

func (c *RedisLinkCache) Set(ctx context.Context, link *model.ShortURL) error {
	data, err := json.Marshal(cachedLink{
		Shortcode:   link.Shortcode,
		OriginalURL: link.OriginalURL,
		CreatedAt:   link.CreatedAt,
		Expiry:      link.Expiry,
	})
	if err != nil {
		return nil
	}

	if err := c.rdb.Set(ctx, linkCachePrefix+link.Shortcode, data, c.ttl).Err(); err != nil {
		c.logger.Warnw("写入缓存失败", "shortcode", link.Shortcode, "error", err)
	}
	return nil
}

// NoopLinkCache 未配置 Redis 时使用
type NoopLinkCache struct{}

func (NoopLinkCache) Get(context.Context, string) (*model.ShortURL, error) { return nil, nil }

func (NoopLinkCache) Set(context.Context, *model.ShortURL) error { return nil }
