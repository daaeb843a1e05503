package stay_site

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/zuu3/stay-site/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Config struct {
	DB     *gorm.DB
	RDB    *redis.Client
	Logger *zap.Logger

	// AdminPolicy 管理员白名单，nil 时没有任何人是管理员
	AdminPolicy *service.AdminPolicy
	// IdentityProvider 外部登录（Discord），nil 时登录接口返回 503
	IdentityProvider service.IdentityProvider

	// Location 公告日期所用时区
	Location *time.Location
	// SiteURL sitemap/robots 里使用的站点绝对地址，不带结尾 /
	SiteURL string

	SessionTTL   time.Duration
	CookieSecure bool

	now func() time.Time
}

type Option func(*Config)

func WithDB(db *gorm.DB) Option {
	return func(c *Config) {
		c.DB = db
	}
}

func WithRDB(RDB *redis.Client) Option {
	return func(c *Config) {
		c.RDB = RDB
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

func WithAdminPolicy(p *service.AdminPolicy) Option {
	return func(c *Config) {
		c.AdminPolicy = p
	}
}

func WithIdentityProvider(p service.IdentityProvider) Option {
	return func(c *Config) {
		c.IdentityProvider = p
	}
}

func WithLocation(loc *time.Location) Option {
	return func(c *Config) {
		c.Location = loc
	}
}

func WithSiteURL(url string) Option {
	return func(c *Config) {
		c.SiteURL = url
	}
}

// WithSessionTTL session token 与 cookie 的有效期
func WithSessionTTL(ttl time.Duration) Option {
	return func(c *Config) {
		c.SessionTTL = ttl
	}
}

// WithCookieSecure 是否只在 HTTPS 下下发 session cookie（本地开发可关闭）
func WithCookieSecure(secure bool) Option {
	return func(c *Config) {
		c.CookieSecure = secure
	}
}

// withClock 测试用：固定时钟
func withClock(now func() time.Time) Option {
	return func(c *Config) {
		c.now = now
	}
}
