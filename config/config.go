// Package config 从环境变量加载站点配置，启动时读取一次。
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config 站点后端全部配置
type Config struct {
	// --- 服务 ---
	Addr           string
	SiteURL        string
	Location       *time.Location
	LogLevel       string
	LogFormat      string
	SwaggerEnabled bool

	// --- MySQL ---
	MySQLDSN string

	// --- Redis ---
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// --- 管理员白名单（逗号分隔邮箱）---
	AdminEmails string

	// --- Discord OAuth ---
	DiscordClientID     string
	DiscordClientSecret string
	DiscordRedirectURL  string

	// --- Session ---
	SessionTTL   time.Duration
	CookieSecure bool
}

// Load 读取环境变量、应用默认值并校验必填项。
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	cfg.Addr = getEnvDefault("SITE_ADDR", ":8080")
	cfg.SiteURL = strings.TrimRight(getEnvDefault("SITE_URL", "https://stayrp.kro.kr"), "/")

	tz := getEnvDefault("SITE_TIMEZONE", "Asia/Seoul")
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("SITE_TIMEZONE: %w", err)
	}

	cfg.LogLevel = getEnvDefault("SITE_LOG_LEVEL", "info")
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("SITE_LOG_LEVEL: invalid value %q, allowed: debug, info, warn, error", cfg.LogLevel)
	}
	cfg.LogFormat = getEnvDefault("SITE_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return nil, fmt.Errorf("SITE_LOG_FORMAT: invalid value %q, allowed: json, console", cfg.LogFormat)
	}
	if cfg.SwaggerEnabled, err = getEnvBool("SWAGGER_ENABLED", false); err != nil {
		return nil, err
	}

	if cfg.MySQLDSN, err = getEnvRequired("MYSQL_DSN"); err != nil {
		return nil, err
	}
	if cfg.MySQLDSN, err = normalizeDSN(cfg.MySQLDSN); err != nil {
		return nil, err
	}

	cfg.RedisAddr = getEnvDefault("REDIS_ADDR", "127.0.0.1:6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	cfg.AdminEmails = os.Getenv("ADMIN_EMAILS")

	if cfg.DiscordClientID, err = getEnvRequired("DISCORD_CLIENT_ID"); err != nil {
		return nil, err
	}
	if cfg.DiscordClientSecret, err = getEnvRequired("DISCORD_CLIENT_SECRET"); err != nil {
		return nil, err
	}
	if cfg.DiscordRedirectURL, err = getEnvRequired("DISCORD_REDIRECT_URL"); err != nil {
		return nil, err
	}

	if cfg.SessionTTL, err = getEnvDuration("SESSION_TTL", 30*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL: must be positive")
	}
	if cfg.CookieSecure, err = getEnvBool("COOKIE_SECURE", true); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalizeDSN 强制 parseTime=true，DATETIME 列才能扫描进 time.Time
func normalizeDSN(dsn string) (string, error) {
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("MYSQL_DSN: %w", err)
	}
	mc.ParseTime = true
	return mc.FormatDSN(), nil
}

func getEnvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvRequired(key string) (string, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return "", fmt.Errorf("%s: required", key)
	}
	return v, nil
}

func getEnvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
