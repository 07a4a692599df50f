package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// 主配置结构
type Config struct {
	App       App       `yaml:"app"`
	Server    Server    `yaml:"server"`
	Database  DB        `yaml:"database"`
	Cache     Cache     `yaml:"cache"`
	Log       Log       `yaml:"log"`
	Shortener Shortener `yaml:"shortener"`
	Geo       Geo       `yaml:"geo"`
}

// 应用配置
type App struct {
	Name    string `yaml:"name"`
	Mode    string `yaml:"mode"`
	Version string `yaml:"version"`
}

// 服务器配置
type Server struct {
	Port            int `yaml:"port"`
	ReadTimeout     int `yaml:"read_timeout"`
	WriteTimeout    int `yaml:"write_timeout"`
	ShutdownTimeout int `yaml:"shutdown_timeout"`

	// TrustedProxies 允许通过 X-Forwarded-For 传递客户端地址的代理，为空时只看连接地址
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// 数据库配置，driver 为 mysql 或 sqlite
type DB struct {
	Driver   string `yaml:"driver"`
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// 缓存配置（Redis），host 为空时不启用
type Cache struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

// 日志配置
type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// 短链接配置
type Shortener struct {
	BaseURL         string `yaml:"base_url"`
	DefaultValidity int    `yaml:"default_validity"`
	MaxAttempts     int    `yaml:"max_attempts"`
}

// 地理位置配置，database 为空时使用占位定位
type Geo struct {
	Database string `yaml:"database"`
}

// 加载配置：YAML 文件 -> .env / 环境变量覆盖 -> 默认值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// .env 不存在时忽略
	_ = godotenv.Load()

	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Shortener.BaseURL, "BASE_URL")
	setInt(&c.Server.Port, "PORT")
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.DSN, "DB_DSN")
	setString(&c.Cache.Host, "REDIS_HOST")
	setInt(&c.Cache.Port, "REDIS_PORT")
	setString(&c.Cache.Password, "REDIS_PASSWORD")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Geo.Database, "GEOIP_DB")
	setList(&c.Server.TrustedProxies, "TRUSTED_PROXIES")
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "shorturl-analytics"
	}
	if c.App.Mode == "" {
		c.App.Mode = "development"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 5
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Driver == "sqlite" && c.Database.DSN == "" {
		c.Database.DSN = "./data/shorturl.db"
	}
	if c.Cache.Port == 0 {
		c.Cache.Port = 6379
	}
	if c.Cache.TTLMinutes == 0 {
		c.Cache.TTLMinutes = 24 * 60
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.File == "" {
		c.Log.File = "./logs/app.log"
	}
	if c.Log.MaxSize == 0 {
		c.Log.MaxSize = 10
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 5
	}
	if c.Log.MaxAge == 0 {
		c.Log.MaxAge = 30
	}
	if c.Shortener.BaseURL == "" {
		c.Shortener.BaseURL = "http://localhost:" + strconv.Itoa(c.Server.Port)
	}
	c.Shortener.BaseURL = strings.TrimRight(c.Shortener.BaseURL, "/")
	if c.Shortener.DefaultValidity <= 0 {
		c.Shortener.DefaultValidity = 30
	}
	if c.Shortener.MaxAttempts <= 0 {
		c.Shortener.MaxAttempts = 10
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			*dst = n
		}
	}
}

// setList 逗号分隔，空项忽略；变量存在但为空时清空列表
func setList(dst *[]string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = lo.Compact(lo.Map(strings.Split(v, ","), func(item string, _ int) string {
			return strings.TrimSpace(item)
		}))
	}
}
