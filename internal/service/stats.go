package service

import (
	"context"
	"errors"

	"shorturl-analytics/internal/model"
	"shorturl-analytics/internal/repository"

	"github.com/samber/lo"
)

// ClickSummary 统计结果中的单次点击
type ClickSummary struct {
	Timestamp string `json:"timestamp"`
	Referrer  string `json:"referrer"`
	Location  string `json:"location"`
	Device    string `json:"device,omitempty"`
}

// Stats 短链接的统计信息
// ClickCount 取自存储的计数，不由 Clicks 重新计算
type Stats struct {
	Shortcode   string         `json:"shortcode"`
	OriginalURL string         `json:"originalUrl"`
	CreatedAt   string         `json:"createdAt"`
	Expiry      string         `json:"expiry"`
	ClickCount  int64          `json:"clickCount"`
	Clicks      []ClickSummary `json:"clicks"`
}

// StatsService 只读的统计查询
type StatsService struct {
	store  Store
	logger Logger
}

func NewStatsService(store Store, logger Logger) *StatsService {
	return &StatsService{store: store, logger: logger}
}

// GetStats 返回短链接信息和按时间倒序排列的点击记录
func (s *StatsService) GetStats(ctx context.Context, code string) (*Stats, error) {
	link, clicks, err := s.store.LoadStats(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Errorw("查询统计失败", "shortcode", code, "error", err)
		return nil, storageError("查询统计", err)
	}

	if int64(len(clicks)) != link.ClickCount {
		s.logger.Warnw("点击计数与点击记录数不一致",
			"shortcode", code,
			"clickCount", link.ClickCount,
			"clickRows", len(clicks),
		)
	}

	stats := &Stats{
		Shortcode:   link.Shortcode,
		OriginalURL: link.OriginalURL,
		CreatedAt:   link.CreatedAt.UTC().Format(ISO8601),
		Expiry:      link.Expiry.UTC().Format(ISO8601),
		ClickCount:  link.ClickCount,
		Clicks: lo.Map(clicks, func(c model.ClickEvent, _ int) ClickSummary {
			return ClickSummary{
				Timestamp: c.ClickedAt.UTC().Format(ISO8601),
				Referrer:  lo.CoalesceOrEmpty(c.Referrer, model.DirectReferrer),
				Location:  c.Location,
				Device:    c.Device,
			}
		}),
	}

	s.logger.Infow("统计已查询",
		"shortcode", code,
		"clickCount", stats.ClickCount,
		"totalClicks", len(stats.Clicks),
	)
	return stats, nil
}
