package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"shorturl-analytics/internal/enrichment"
	"shorturl-analytics/internal/model"
	"shorturl-analytics/internal/repository"

	"github.com/samber/lo"
)

// ClickInput 一次跳转的访问信息，由接入层从请求中提取
type ClickInput struct {
	Shortcode string
	// Referrer 为空时记为 "direct"
	Referrer  string
	IPAddress string
	UserAgent string
}

// RedirectService 解析短码并记录点击
type RedirectService struct {
	store   Store
	cache   repository.LinkCache
	locator enrichment.Locator
	devices DeviceClassifier
	logger  Logger
	now     func() time.Time
}

// NewRedirectService cache 为 nil 时不使用缓存，locator 为 nil 时使用占位实现
func NewRedirectService(
	store Store,
	cache repository.LinkCache,
	locator enrichment.Locator,
	devices DeviceClassifier,
	logger Logger,
) *RedirectService {
	if cache == nil {
		cache = repository.NoopLinkCache{}
	}
	if locator == nil {
		locator = enrichment.StubLocator{}
	}
	if devices == nil {
		devices = enrichment.NewDeviceDetector()
	}

	return &RedirectService{
		store:   store,
		cache:   cache,
		locator: locator,
		devices: devices,
		logger:  logger,
		now:     time.Now,
	}
}

// Resolve 按短码查找短链接
// 不做过期判断，调用方需要自行比较 now 与 Expiry。
// 命中缓存时不带点击计数（ClickCount 为 0），计数以 StatsService 为准。
func (s *RedirectService) Resolve(ctx context.Context, code string) (*model.ShortURL, error) {
	if cached, _ := s.cache.Get(ctx, code); cached != nil {
		return cached, nil
	}

	link, err := s.store.FindByShortcode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Errorw("查询短链接失败", "shortcode", code, "error", err)
		return nil, storageError("查询短链接", err)
	}

	_ = s.cache.Set(ctx, link)
	return link, nil
}

// RecordClick 记录一次点击：写入点击记录并递增计数，二者在同一事务中完成
func (s *RedirectService) RecordClick(ctx context.Context, in ClickInput) error {
	click := &model.ClickEvent{
		Shortcode: in.Shortcode,
		ClickedAt: s.now().UTC(),
		Referrer:  lo.CoalesceOrEmpty(strings.TrimSpace(in.Referrer), model.DirectReferrer),
		IPAddress: in.IPAddress,
		UserAgent: in.UserAgent,
		Device:    s.devices.Detect(in.UserAgent),
		Location:  s.locator.Locate(in.IPAddress),
	}

	if err := s.store.RecordClick(ctx, click); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		s.logger.Errorw("记录点击失败", "shortcode", in.Shortcode, "error", err)
		return storageError("记录点击", err)
	}

	s.logger.Infow("点击已记录",
		"shortcode", click.Shortcode,
		"referrer", click.Referrer,
		"location", click.Location,
		"device", click.Device,
	)
	return nil
}
