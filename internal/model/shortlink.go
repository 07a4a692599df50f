package model

import (
	"time"
)

// ShortURL 短链接映射，对应 urls 表
// 除 ClickCount 外创建后不再修改
type ShortURL struct {
	ID          uint      `gorm:"primarykey" json:"-"`
	Shortcode   string    `gorm:"column:shortcode;size:64;uniqueIndex;not null" json:"shortcode"`
	OriginalURL string    `gorm:"column:original_url;type:text;not null" json:"original_url"`
	CreatedAt   time.Time `gorm:"column:created_at;not null" json:"created_at"`
	Expiry      time.Time `gorm:"column:expiry;not null" json:"expiry"`
	ClickCount  int64     `gorm:"column:click_count;not null;default:0" json:"click_count"`
}

// TableName 指定表名
func (ShortURL) TableName() string {
	return "urls"
}

// IsExpired 判断在 now 时刻是否已过期（now > expiry）
// 过期只是读取时的判断，记录本身不会被删除
func (u *ShortURL) IsExpired(now time.Time) bool {
	return now.After(u.Expiry)
}
