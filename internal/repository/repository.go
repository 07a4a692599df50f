package repository

import (
	"context"
	"errors"
	"strings"

	"shorturl-analytics/internal/model"

	"gorm.io/gorm"
)

var (
	// ErrNotFound 短码不存在
	ErrNotFound = errors.New("shortcode not found")
	// ErrDuplicateShortcode 插入时触发 urls.shortcode 唯一索引
	ErrDuplicateShortcode = errors.New("shortcode already exists")
)

// LinkRepository 是 urls / clicks 两张表唯一的读写入口
type LinkRepository struct {
	db *gorm.DB
}

// NewLinkRepository 创建仓储，db 由调用方注入并管理生命周期
func NewLinkRepository(db *gorm.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

// Exists 检查短码是否已被占用
func (r *LinkRepository) Exists(ctx context.Context, shortcode string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ShortURL{}).
		Where("shortcode = ?", shortcode).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 插入一条新的短链接，click_count 固定从 0 开始
func (r *LinkRepository) Create(ctx context.Context, link *model.ShortURL) error {
	link.ClickCount = 0
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		if isDuplicateKeyError(err) {
			return ErrDuplicateShortcode
		}
		return err
	}
	return nil
}

// FindByShortcode 按短码查询，已过期的记录同样返回
func (r *LinkRepository) FindByShortcode(ctx context.Context, shortcode string) (*model.ShortURL, error) {
	var link model.ShortURL
	err := r.db.WithContext(ctx).Where("shortcode = ?", shortcode).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

// RecordClick 在同一个事务里递增 click_count 并写入点击记录
// 短码不存在时返回 ErrNotFound，两张表都不会有写入
func (r *LinkRepository) RecordClick(ctx context.Context, click *model.ClickEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 先更新计数：拿到行锁，同时确认短码存在
		res := tx.Model(&model.ShortURL{}).
			Where("shortcode = ?", click.Shortcode).
			UpdateColumn("click_count", gorm.Expr("click_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		return tx.Create(click).Error
	})
}

// ListClicks 返回短码的全部点击记录，最近的在前
func (r *LinkRepository) ListClicks(ctx context.Context, shortcode string) ([]model.ClickEvent, error) {
	return listClicks(r.db.WithContext(ctx), shortcode)
}

// LoadStats 在一个只读事务里同时读取短链接和点击记录，
// 保证 click_count 与点击列表来自同一个快照
func (r *LinkRepository) LoadStats(ctx context.Context, shortcode string) (*model.ShortURL, []model.ClickEvent, error) {
	var (
		link   model.ShortURL
		clicks []model.ClickEvent
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("shortcode = ?", shortcode).First(&link).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var err error
		clicks, err = listClicks(tx, shortcode)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return &link, clicks, nil
}

func listClicks(db *gorm.DB, shortcode string) ([]model.ClickEvent, error) {
	var clicks []model.ClickEvent
	err := db.Where("shortcode = ?", shortcode).
		Order("clicked_at DESC").
		Order("id DESC").
		Find(&clicks).Error
	if err != nil {
		return nil, err
	}
	return clicks, nil
}

// isDuplicateKeyError 优先依赖 TranslateError，
// 没有开启翻译的连接退回到按驱动错误信息判断
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "duplicate entry")
}
