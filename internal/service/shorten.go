package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"shorturl-analytics/internal/model"
	"shorturl-analytics/internal/repository"
	"shorturl-analytics/internal/shortcode"
)

// ISO8601 过期时间的输出格式，毫秒精度，UTC 以 Z 结尾
const ISO8601 = "2006-01-02T15:04:05.000Z07:00"

// DefaultValidityMinutes 请求未指定有效期时使用
const DefaultValidityMinutes = 30

// MaxValidityMinutes time.Duration 能表示的最大分钟数
const MaxValidityMinutes = float64(math.MaxInt64 / int64(time.Minute))

// ShortenConfig 创建短链接的配置
type ShortenConfig struct {
	// BaseURL 拼接短链接用，例如 http://localhost:3000
	BaseURL string
	// MaxAttempts 自动生成短码的最大尝试次数
	MaxAttempts int
}

// CreateRequest 创建短链接的输入
type CreateRequest struct {
	OriginalURL     string
	// ValidityMinutes 有效期（分钟），可以是小数
	ValidityMinutes float64
	// CustomShortcode 为空时自动生成
	CustomShortcode string
}

// CreateResult 创建成功的输出
type CreateResult struct {
	ShortLink string `json:"shortLink"`
	Expiry    string `json:"expiry"`
	Shortcode string `json:"shortcode"`
}

// ShortenService 负责短链接的创建
type ShortenService struct {
	store     Store
	generator CodeGenerator
	cfg       ShortenConfig
	logger    Logger
	now       func() time.Time
}

func NewShortenService(store Store, generator CodeGenerator, cfg ShortenConfig, logger Logger) *ShortenService {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = shortcode.DefaultMaxAttempts
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &ShortenService{
		store:     store,
		generator: generator,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Create 创建短链接
//
// 自定义短码被占用返回 ErrShortcodeConflict；
// 自动生成在 MaxAttempts 次内找不到可用短码返回 ErrGenerationExhausted。
// 预检查只是快速路径，并发创建同一短码时由唯一索引决定谁成功。
func (s *ShortenService) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	if math.IsNaN(req.ValidityMinutes) || req.ValidityMinutes <= 0 || req.ValidityMinutes > MaxValidityMinutes {
		return nil, ErrInvalidValidity
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	link := &model.ShortURL{
		OriginalURL: req.OriginalURL,
		CreatedAt:   now,
		Expiry:      now.Add(time.Duration(req.ValidityMinutes * float64(time.Minute))),
	}

	var err error
	if req.CustomShortcode != "" {
		err = s.createCustom(ctx, link, req.CustomShortcode)
	} else {
		err = s.createGenerated(ctx, link)
	}
	if err != nil {
		s.logger.Errorw("创建短链接失败", "originalUrl", req.OriginalURL, "error", err)
		return nil, err
	}

	result := &CreateResult{
		ShortLink: s.cfg.BaseURL + "/" + link.Shortcode,
		Expiry:    link.Expiry.Format(ISO8601),
		Shortcode: link.Shortcode,
	}

	s.logger.Infow("短链接已创建",
		"shortcode", link.Shortcode,
		"originalUrl", link.OriginalURL,
		"expiry", result.Expiry,
	)
	return result, nil
}

func (s *ShortenService) createCustom(ctx context.Context, link *model.ShortURL, code string) error {
	if err := shortcode.ValidateCustom(code); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidShortcode, err)
	}

	exists, err := s.store.Exists(ctx, code)
	if err != nil {
		return storageError("检查短码", err)
	}
	if exists {
		return ErrShortcodeConflict
	}

	link.Shortcode = code
	if err := s.store.Create(ctx, link); err != nil {
		if errors.Is(err, repository.ErrDuplicateShortcode) {
			return ErrShortcodeConflict
		}
		return storageError("写入短链接", err)
	}
	return nil
}

func (s *ShortenService) createGenerated(ctx context.Context, link *model.ShortURL) error {
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		code := s.generator.Generate()

		exists, err := s.store.Exists(ctx, code)
		if err != nil {
			return storageError("检查短码", err)
		}
		if exists {
			s.logger.Debugw("短码冲突，重新生成", "shortcode", code, "attempt", attempt)
			continue
		}

		link.Shortcode = code
		err = s.store.Create(ctx, link)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateShortcode) {
			return storageError("写入短链接", err)
		}
		// 预检查之后被并发请求抢先写入
		s.logger.Debugw("短码写入冲突，重新生成", "shortcode", code, "attempt", attempt)
	}

	s.logger.Warnw("短码生成次数耗尽", "attempts", s.cfg.MaxAttempts)
	return ErrGenerationExhausted
}
