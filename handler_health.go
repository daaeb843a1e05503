package stay_site

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HealthResp struct {
	DB    string `json:"db"`
	Redis string `json:"redis"`
}

const healthTimeout = 2 * time.Second

// GinHandleHealth 存活检查
// @Summary 健康检查
// @Description ping MySQL 与 Redis，任一失败返回 503
// @Tags 站点
// @Produce json
// @Success 200 {object} HealthResp "ok"
// @Failure 503 {object} HealthResp "依赖不可用"
// @Router /healthz [get]
func (e *SiteEngine) GinHandleHealth(ctx *gin.Context) {
	c, cancel := context.WithTimeout(ctx.Request.Context(), healthTimeout)
	defer cancel()

	resp := HealthResp{DB: "ok", Redis: "ok"}
	status := http.StatusOK

	if err := e.pingDB(c); err != nil {
		e.log.Warn("health: db ping failed", zap.Error(err))
		resp.DB = "down"
		status = http.StatusServiceUnavailable
	}
	if err := e.pingRedis(c); err != nil {
		e.log.Warn("health: redis ping failed", zap.Error(err))
		resp.Redis = "down"
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, resp)
}

func (e *SiteEngine) pingDB(ctx context.Context) error {
	if e.config.DB == nil {
		return errNotConfigured
	}
	sqlDB, err := e.config.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (e *SiteEngine) pingRedis(ctx context.Context) error {
	if e.config.RDB == nil {
		return errNotConfigured
	}
	return e.config.RDB.Ping(ctx).Err()
}
