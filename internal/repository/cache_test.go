package repository

import (
	"context"
	"testing"
	"time"

	"shorturl-analytics/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func setupRedisCache(t *testing.T, mr *miniredis.Miniredis) LinkCache {
	t.Helper()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	cache := NewLinkCache(rdb, time.Hour, zaptest.NewLogger(t).Sugar())
	require.IsType(t, &RedisLinkCache{}, cache)
	return cache
}

func TestRedisLinkCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := setupRedisCache(t, mr)
	ctx := context.Background()

	created := time.Date(2026, 3, 1, 8, 0, 0, 123000000, time.UTC)
	link := newLink("rt", created)
	link.ClickCount = 7
	require.NoError(t, cache.Set(ctx, link))

	raw, err := mr.Get(linkCachePrefix + "rt")
	require.NoError(t, err)
	assert.NotContains(t, raw, "click_count")
	assert.Equal(t, time.Hour, mr.TTL(linkCachePrefix+"rt"))

	got, err := cache.Get(ctx, "rt")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "rt", got.Shortcode)
	assert.Equal(t, link.OriginalURL, got.OriginalURL)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.True(t, got.Expiry.Equal(created.Add(30*time.Minute)))
	// 计数不进缓存
	assert.Zero(t, got.ClickCount)
}

func TestRedisLinkCache_Miss(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := setupRedisCache(t, mr)

	got, err := cache.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisLinkCache_Expires(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := setupRedisCache(t, mr)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, newLink("ttl", time.Now().UTC())))
	mr.FastForward(time.Hour + time.Second)

	got, err := cache.Get(ctx, "ttl")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisLinkCache_CorruptPayloadIsMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := setupRedisCache(t, mr)

	require.NoError(t, mr.Set(linkCachePrefix+"bad", "{not json"))

	got, err := cache.Get(context.Background(), "bad")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisLinkCache_UnavailableIsMiss(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	cache := setupRedisCache(t, mr)
	ctx := context.Background()

	mr.Close()

	assert.NoError(t, cache.Set(ctx, newLink("down", time.Now().UTC())))
	got, err := cache.Get(ctx, "down")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisLinkCache_ServesLinkAfterClicks(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := setupRedisCache(t, mr)
	repo := NewLinkRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newLink("warm", time.Now().UTC())))
	stored, err := repo.FindByShortcode(ctx, "warm")
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, stored))

	require.NoError(t, repo.RecordClick(ctx, &model.ClickEvent{Shortcode: "warm", ClickedAt: time.Now().UTC(), Referrer: model.DirectReferrer}))

	cached, err := cache.Get(ctx, "warm")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, stored.OriginalURL, cached.OriginalURL)
	assert.Zero(t, cached.ClickCount)

	link, _, err := repo.LoadStats(ctx, "warm")
	require.NoError(t, err)
	assert.Equal(t, int64(1), link.ClickCount)
}
