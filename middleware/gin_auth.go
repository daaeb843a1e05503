package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zuu3/stay-site/response"
	"github.com/zuu3/stay-site/service"
	"go.uber.org/zap"
)

const (
	// ContextIdentityKey gin context 里保存 *service.Identity 的 key
	ContextIdentityKey = "identity"
	ContextTokenKey    = "token"
)

// GetIdentity 读取当前请求的身份；未登录返回 nil
func GetIdentity(c *gin.Context) *service.Identity {
	v, ok := c.Get(ContextIdentityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*service.Identity)
	return id
}

// GetToken 读取当前请求使用的 session token
func GetToken(c *gin.Context) string {
	return c.GetString(ContextTokenKey)
}

/*
	GinSessionMiddleware 解析会话但不强制登录：

- 优先从 Authorization: Bearer <token> 读取
- 其次 cookie stay_session，最后 query token
- 校验 token -> Identity（Redis）成功后写入 gin.Context；失败则按匿名处理

公开接口（公告列表、预约状态）挂这个；写接口再叠加 GinRequireAuth / GinRequireAdmin。
*/
func GinSessionMiddleware(auth *service.AuthService, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		if auth == nil {
			c.Next()
			return
		}
		id, token, err := auth.AuthenticateRequest(c.Request.Context(), c.Request)
		if err != nil {
			if token != "" && !errors.Is(err, service.ErrUnauthorized) {
				log.Warn("session lookup failed", zap.Error(err))
			}
			c.Next()
			return
		}
		c.Set(ContextIdentityKey, id)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

// GinRequireAuth 未登录直接 401，不进入后续 handler
func GinRequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetIdentity(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(response.CodeTokenInvalid, "unauthorized"))
			return
		}
		c.Next()
	}
}

// GinRequireAdmin 已登录但不在管理员白名单内返回 403；未登录返回 401
func GinRequireAdmin(policy *service.AdminPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := GetIdentity(c)
		if id == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(response.CodeTokenInvalid, "unauthorized"))
			return
		}
		if !policy.IsAdmin(id.Email) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(response.CodePermissionDeny, "permission denied"))
			return
		}
		c.Next()
	}
}
