package stay_site

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zuu3/stay-site/middleware"
	"github.com/zuu3/stay-site/response"
	"github.com/zuu3/stay-site/service"
	"go.uber.org/zap"
)

// -------------------- 登录 / 会话相关接口 --------------------

// SessionUser /auth/session 返回的当前用户
type SessionUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Image   string `json:"image"`
	IsAdmin bool   `json:"isAdmin"`
}

type SessionResp struct {
	User *SessionUser `json:"user"`
}

// safeRedirect 只接受站内路径，防止 open redirect
func safeRedirect(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, "\\") {
		return "/"
	}
	return p
}

// GinHandleDiscordLogin 跳转 Discord 授权页
// @Summary Discord 登录
// @Description 生成一次性 state 后 302 到 Discord 授权页
// @Tags 登录
// @Param redirect query string false "登录完成后跳回的站内路径"
// @Success 302 {string} string "跳转到 Discord"
// @Failure 503 {object} response.Response "未配置身份提供方"
// @Router /auth/discord/login [get]
func (e *SiteEngine) GinHandleDiscordLogin(ctx *gin.Context) {
	if e.IdentityProvider == nil {
		ctx.JSON(http.StatusServiceUnavailable, response.Error(response.CodeInternalError, "identity provider not configured"))
		return
	}
	state, err := e.TokenService.IssueState(ctx.Request.Context(), safeRedirect(ctx.Query("redirect")))
	if err != nil {
		e.log.Error("issue oauth state failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, response.Error(response.CodeInternalError, "internal error"))
		return
	}
	ctx.Redirect(http.StatusFound, e.IdentityProvider.AuthCodeURL(state))
}

// GinHandleDiscordCallback Discord 授权回调
// @Summary Discord 回调
// @Description 校验 state，使用 code 换取身份，下发 stay_session cookie 后跳回原页面
// @Tags 登录
// @Param code query string true "授权码"
// @Param state query string true "登录时生成的 state"
// @Success 302 {string} string "登录成功，跳回站内"
// @Failure 400 {object} response.Response "state 无效或已使用"
// @Failure 401 {object} response.Response "授权失败"
// @Failure 500 {object} response.Response "服务器错误"
// @Router /auth/discord/callback [get]
func (e *SiteEngine) GinHandleDiscordCallback(ctx *gin.Context) {
	if e.IdentityProvider == nil {
		ctx.JSON(http.StatusServiceUnavailable, response.Error(response.CodeInternalError, "identity provider not configured"))
		return
	}
	reqCtx := ctx.Request.Context()

	redirect, err := e.TokenService.ConsumeState(reqCtx, ctx.Query("state"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidState) {
			ctx.JSON(http.StatusBadRequest, response.Error(response.CodeParamError, "invalid oauth state"))
			return
		}
		e.log.Error("consume oauth state failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, response.Error(response.CodeInternalError, "internal error"))
		return
	}

	if reason := ctx.Query("error"); reason != "" {
		e.log.Info("discord authorization denied", zap.String("error", reason))
		ctx.JSON(http.StatusUnauthorized, response.Error(response.CodeTokenInvalid, "authorization denied"))
		return
	}

	id, err := e.IdentityProvider.Exchange(reqCtx, ctx.Query("code"))
	if err != nil {
		e.log.Warn("discord exchange failed", zap.Error(err))
		ctx.JSON(http.StatusUnauthorized, response.Error(response.CodeTokenInvalid, "authorization failed"))
		return
	}

	token, err := e.TokenService.CreateSession(reqCtx, id)
	if err != nil {
		e.log.Error("create session failed", zap.String("user_id", id.ExternalUserID), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, response.Error(response.CodeInternalError, "internal error"))
		return
	}

	e.log.Info("signed in", zap.String("user_id", id.ExternalUserID), zap.Bool("admin", e.AdminPolicy.IsAdmin(id.Email)))
	e.setSessionCookie(ctx, token, int(e.TokenService.TTL().Seconds()))
	ctx.Redirect(http.StatusFound, safeRedirect(redirect))
}

// GinHandleLogout 退出登录
// @Summary 退出登录
// @Description 注销当前 session token 并清除 cookie；all=1 时注销该用户全部设备。未登录也返回成功
// @Tags 登录
// @Produce json
// @Param all query string false "1 表示退出全部设备"
// @Success 200 {object} response.Response "成功"
// @Security SessionCookie
// @Router /auth/logout [post]
func (e *SiteEngine) GinHandleLogout(ctx *gin.Context) {
	token := middleware.GetToken(ctx)
	if token == "" {
		token = e.AuthService.ExtractToken(ctx.Request)
	}
	if id := middleware.GetIdentity(ctx); id != nil && ctx.Query("all") == "1" {
		if err := e.AuthService.RevokeAll(ctx.Request.Context(), id.ExternalUserID); err != nil {
			e.log.Warn("revoke all sessions failed", zap.String("user_id", id.ExternalUserID), zap.Error(err))
		}
	}
	if err := e.AuthService.RevokeToken(ctx.Request.Context(), token); err != nil {
		e.log.Warn("revoke session failed", zap.Error(err))
	}
	e.setSessionCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, response.Success(nil))
}

// GinHandleSession 当前会话
// @Summary 当前会话
// @Description 返回登录用户及是否管理员，未登录时 user 为 null
// @Tags 登录
// @Produce json
// @Success 200 {object} response.Response{data=SessionResp} "会话"
// @Router /auth/session [get]
func (e *SiteEngine) GinHandleSession(ctx *gin.Context) {
	id := middleware.GetIdentity(ctx)
	if id == nil {
		ctx.JSON(http.StatusOK, response.Success(SessionResp{}))
		return
	}
	ctx.JSON(http.StatusOK, response.Success(SessionResp{User: &SessionUser{
		ID:      id.ExternalUserID,
		Name:    id.Name,
		Email:   id.Email,
		Image:   id.Image,
		IsAdmin: e.AdminPolicy.IsAdmin(id.Email),
	}}))
}

func (e *SiteEngine) setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(service.SessionCookieName, token, maxAge, "/", "", e.config.CookieSecure, true)
}
