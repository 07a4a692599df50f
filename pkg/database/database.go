package database

import (
	"fmt"
	"time"

	"shorturl-analytics/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config 数据库连接参数
type Config struct {
	Driver   string
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// Open 根据驱动类型建立连接并完成表迁移
func Open(cfg Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Driver {
	case "mysql":
		db, err = InitMySQL(cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.DSN)
	case "sqlite", "":
		db, err = InitSQLite(cfg.DSN)
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate 创建 urls 和 clicks 表
// urls.shortcode 上的唯一索引是短码唯一性的最终保证
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.ShortURL{}, &model.ClickEvent{}); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	return nil
}

// Close 关闭底层连接池
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		// 把驱动层的唯一键冲突翻译成 gorm.ErrDuplicatedKey
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}
