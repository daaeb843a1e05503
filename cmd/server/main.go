package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	stay_site "github.com/zuu3/stay-site"
	"github.com/zuu3/stay-site/config"
	"github.com/zuu3/stay-site/logger"
	"github.com/zuu3/stay-site/middleware"
	"github.com/zuu3/stay-site/service"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, "stay-site")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// 2. 初始化数据库连接
	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		zl.Fatal("数据库连接失败", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer func() { _ = rdb.Close() }()

	// 3. 初始化 Site Engine
	admins := service.ParseAdminPolicy(cfg.AdminEmails)
	engine := stay_site.NewEngine(
		stay_site.WithDB(db),
		stay_site.WithRDB(rdb),
		stay_site.WithLogger(zl),
		stay_site.WithAdminPolicy(admins),
		stay_site.WithIdentityProvider(service.NewDiscordProvider(service.DiscordConfig{
			ClientID:     cfg.DiscordClientID,
			ClientSecret: cfg.DiscordClientSecret,
			RedirectURL:  cfg.DiscordRedirectURL,
		})),
		stay_site.WithLocation(cfg.Location),
		stay_site.WithSiteURL(cfg.SiteURL),
		stay_site.WithSessionTTL(cfg.SessionTTL),
		stay_site.WithCookieSecure(cfg.CookieSecure),
	)
	defer engine.Close()

	// 建表失败不退出，store 会在下次操作前重试
	if err := engine.EnsureSchema(); err != nil {
		zl.Warn("ensure schema at startup failed", zap.Error(err))
	}

	// 4. 创建 Gin 路由
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.GinZapLogger(zl.Named("http")))
	if cfg.SwaggerEnabled {
		stay_site.RegisterSwagger(r, "/swagger/*any")
	}
	engine.RegisterRoutes(r)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("listening", zap.String("addr", cfg.Addr), zap.Int("admins", admins.Size()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 5. 优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("http shutdown failed", zap.Error(err))
	}
}
