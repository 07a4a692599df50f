package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"shorturl-analytics/internal/config"
	"shorturl-analytics/internal/enrichment"
	"shorturl-analytics/internal/handler"
	"shorturl-analytics/internal/middleware"
	"shorturl-analytics/internal/repository"
	"shorturl-analytics/internal/service"
	"shorturl-analytics/internal/shortcode"
	"shorturl-analytics/pkg/database"
	"shorturl-analytics/pkg/logger"
	"shorturl-analytics/pkg/redis"

	_ "shorturl-analytics/docs"

	"github.com/gin-gonic/gin"
	redisClient "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Short URL Analytics API
// @version 1.0
// @description 短链接生成、跳转与点击统计服务
// @host localhost:3000
// @BasePath /
func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("配置加载失败: %v", err))
	}

	if err := logger.InitLogger(logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		panic(fmt.Sprintf("日志初始化失败: %v", err))
	}
	defer func() {
		if err := logger.Logger.Sync(); err != nil {
			fmt.Println("日志同步失败:", err)
		}
	}()
	sugaredLogger := zap.S()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(database.Config{
		Driver:   cfg.Database.Driver,
		DSN:      cfg.Database.DSN,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
	})
	if err != nil {
		sugaredLogger.Fatalf("数据库初始化失败: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			sugaredLogger.Errorf("关闭数据库连接失败: %v", err)
		}
	}()
	sugaredLogger.Infow("✅ 数据库连接成功", "driver", cfg.Database.Driver)

	var rdb *redisClient.Client
	if cfg.Cache.Host != "" {
		rdb, err = redis.NewRedisClient(ctx, &redis.Options{
			Host: cfg.Cache.Host, Port: cfg.Cache.Port, Password: cfg.Cache.Password, DB: cfg.Cache.DB,
		})
		if err != nil {
			sugaredLogger.Warnf("缓存连接失败，跳转将直接查询数据库: %v", err)
			rdb = nil
		} else {
			defer func() {
				if err := rdb.Close(); err != nil {
					sugaredLogger.Errorf("关闭 Redis 连接失败: %v", err)
				}
			}()
			sugaredLogger.Info("✅ 缓存连接成功")
		}
	}

	generator := shortcode.NewGenerator()
	if err := generator.Probe(); err != nil {
		sugaredLogger.Fatalf("短码生成器不可用: %v", err)
	}

	var locator enrichment.Locator = enrichment.StubLocator{}
	if cfg.Geo.Database != "" {
		geo, err := enrichment.NewGeoIPLocator(cfg.Geo.Database)
		if err != nil {
			sugaredLogger.Warnf("GeoIP 数据库加载失败，使用占位定位: %v", err)
		} else {
			defer geo.Close()
			locator = geo
			sugaredLogger.Infow("✅ GeoIP 数据库已加载", "path", cfg.Geo.Database)
		}
	} else {
		sugaredLogger.Warn("未配置 GeoIP 数据库，点击位置为占位数据")
	}

	repo := repository.NewLinkRepository(db)
	cache := repository.NewLinkCache(rdb, time.Duration(cfg.Cache.TTLMinutes)*time.Minute, sugaredLogger)

	urlHandler := handler.NewShortLinkHandler(
		service.NewShortenService(repo, generator, service.ShortenConfig{
			BaseURL:     cfg.Shortener.BaseURL,
			MaxAttempts: cfg.Shortener.MaxAttempts,
		}, sugaredLogger.Named("shorten")),
		service.NewRedirectService(repo, cache, locator, enrichment.NewDeviceDetector(), sugaredLogger.Named("redirect")),
		service.NewStatsService(repo, sugaredLogger.Named("stats")),
		cfg.Shortener.DefaultValidity,
		sugaredLogger,
	)

	if cfg.App.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := handler.NewEngine(cfg.Server.TrustedProxies)
	if err != nil {
		sugaredLogger.Fatalf("可信代理配置无效: %v", err)
	}
	router.Use(middleware.GinZapRecovery(logger.Logger, true))
	router.Use(middleware.GinZapLogger(logger.Logger))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	urlHandler.RegisterRoutes(router)
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		sugaredLogger.Infof("🚀 服务启动成功, 访问 %s", cfg.Shortener.BaseURL)
		sugaredLogger.Infof("📚 Swagger 文档地址: http://localhost:%d/swagger/index.html", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugaredLogger.Fatalf("服务启动失败: %v", err)
		}
	}()

	<-ctx.Done()
	sugaredLogger.Info("正在关闭服务...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		sugaredLogger.Errorf("服务关闭失败: %v", err)
	}
}
