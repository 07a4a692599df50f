package service

import (
	"context"

	"shorturl-analytics/internal/model"
)

// Logger 服务依赖的日志能力，*zap.SugaredLogger 直接满足
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
}

// Store 服务需要的持久化操作，由 repository.LinkRepository 实现
type Store interface {
	Exists(ctx context.Context, shortcode string) (bool, error)
	Create(ctx context.Context, link *model.ShortURL) error
	FindByShortcode(ctx context.Context, shortcode string) (*model.ShortURL, error)
	RecordClick(ctx context.Context, click *model.ClickEvent) error
	LoadStats(ctx context.Context, shortcode string) (*model.ShortURL, []model.ClickEvent, error)
}

// CodeGenerator 产生候选短码
type CodeGenerator interface {
	Generate() string
}

// DeviceClassifier 从 User-Agent 推导设备类型
type DeviceClassifier interface {
	Detect(userAgent string) string
}
