package model

import (
	"time"
)

// DirectReferrer 没有来源时使用的默认值
const DirectReferrer = "direct"

// ClickEvent 一次成功跳转的点击记录，只追加不修改
type ClickEvent struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	Shortcode string    `gorm:"column:shortcode;size:64;not null;index" json:"shortcode"`
	ClickedAt time.Time `gorm:"column:clicked_at;not null;index" json:"clicked_at"`
	Referrer  string    `gorm:"column:referrer;type:text" json:"referrer"`
	IPAddress string    `gorm:"column:ip_address;size:45" json:"ip_address"`
	UserAgent string    `gorm:"column:user_agent;type:text" json:"user_agent"`
	Device    string    `gorm:"column:device;size:20" json:"device"`
	Location  string    `gorm:"column:location;size:100" json:"location"`
}

func (ClickEvent) TableName() string {
	return "clicks"
}
