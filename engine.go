package stay_site

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zuu3/stay-site/middleware"
	"github.com/zuu3/stay-site/service"
	"go.uber.org/zap"
)

type SiteEngine struct {
	config *Config
	log    *zap.Logger

	NoticeService          *service.NoticeService
	PreRegistrationService *service.PreRegistrationService
	TokenService           *service.TokenService
	AuthService            *service.AuthService // 鉴权服务
	AdminPolicy            *service.AdminPolicy
	IdentityProvider       service.IdentityProvider
	WsServer               *WsServer
}

// NewEngine 创建实例
// 使用选项模式传入配置，Option回调。每次调用返回独立实例，进程内通常只建一个。
func NewEngine(opts ...Option) *SiteEngine {
	c := &Config{
		SiteURL:      "https://stayrp.kro.kr",
		CookieSecure: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.SiteURL = strings.TrimRight(c.SiteURL, "/")
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.AdminPolicy == nil {
		c.AdminPolicy = service.NewAdminPolicy(nil)
	}

	e := &SiteEngine{config: c, log: c.Logger}

	// 初始化 WS
	e.WsServer = NewWsServer(c.Logger.Named("ws"))
	go e.WsServer.Run()

	// 初始化基础 Service，注入广播回调
	baseService := &service.Service{
		DB:       c.DB,
		RDB:      c.RDB,
		Logger:   c.Logger.Named("service"),
		Notifier: e.WsServer.Broadcast,
		Location: c.Location,
		Now:      c.now,
	}

	e.NoticeService = service.NewNoticeService(baseService)
	e.PreRegistrationService = service.NewPreRegistrationService(baseService)
	e.TokenService = service.NewTokenService(c.RDB, c.SessionTTL)
	e.AuthService = service.NewAuthService(e.TokenService)
	e.AdminPolicy = c.AdminPolicy
	e.IdentityProvider = c.IdentityProvider

	if c.AdminPolicy.Size() == 0 {
		c.Logger.Warn("admin allow-list is empty, notice writes are disabled")
	}
	return e
}

// Close 停止 ws 广播
func (e *SiteEngine) Close() {
	e.WsServer.Close()
}

// SessionMiddleware 可选登录：解析 session 写入 gin.Context
func (e *SiteEngine) SessionMiddleware() gin.HandlerFunc {
	return middleware.GinSessionMiddleware(e.AuthService, e.log.Named("auth"))
}

// RequireAdmin 管理员白名单校验
func (e *SiteEngine) RequireAdmin() gin.HandlerFunc {
	return middleware.GinRequireAdmin(e.AdminPolicy)
}

// RegisterRoutes 挂载站点全部接口。调用方自行添加日志/恢复等全局中间件。
//
// 使用示例:
//
//	engine := stay_site.NewEngine(stay_site.WithDB(db), stay_site.WithRDB(rdb))
//	r := gin.New()
//	r.Use(gin.Recovery(), middleware.GinZapLogger(log))
//	engine.RegisterRoutes(r)
func (e *SiteEngine) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", e.GinHandleHealth)
	r.GET("/sitemap.xml", e.GinHandleSitemap)
	r.GET("/robots.txt", e.GinHandleRobots)

	session := e.SessionMiddleware()
	r.GET("/ws", session, e.GinHandleWS)

	api := r.Group("/api/v1", session)

	auth := api.Group("/auth")
	auth.GET("/discord/login", e.GinHandleDiscordLogin)
	auth.GET("/discord/callback", e.GinHandleDiscordCallback)
	auth.POST("/logout", e.GinHandleLogout)
	auth.GET("/session", e.GinHandleSession)

	notices := api.Group("/notices")
	notices.GET("", e.GinHandleListNotices)
	notices.GET("/:id", e.GinHandleGetNotice)
	admin := notices.Group("", e.RequireAdmin())
	admin.POST("", e.GinHandleCreateNotice)
	admin.PATCH("/:id", e.GinHandleUpdateNotice)
	admin.DELETE("/:id", e.GinHandleDeleteNotice)

	pre := api.Group("/pre-registration")
	pre.GET("", e.GinHandleGetPreRegistration)
	pre.POST("", middleware.GinRequireAuth(), e.GinHandleRegister)
}

// GinHandleWS 订阅站点事件
// @Summary 事件订阅
// @Description 升级为 WebSocket，接收 pre_registration.count / notice.* 事件
// @Tags 实时
// @Success 101 {string} string "Switching Protocols"
// @Router /ws [get]
func (e *SiteEngine) GinHandleWS(ctx *gin.Context) {
	userID := ""
	if id := middleware.GetIdentity(ctx); id != nil {
		userID = id.ExternalUserID
	}
	e.WsServer.ServeWS(ctx.Writer, ctx.Request, userID)
}
