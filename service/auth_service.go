package service

import (
	"context"
	"net/http"
	"strings"
)

// SessionCookieName 登录后下发的 session cookie
const SessionCookieName = "stay_session"

// AuthService 提供“鉴权核心能力”，供中间件/handler 使用。
// - 解析 token（Bearer 优先，其次 cookie，最后 query）
// - 校验 token -> Identity（Redis）
// - 注销 token
type AuthService struct {
	token *TokenService
}

func NewAuthService(token *TokenService) *AuthService {
	return &AuthService{token: token}
}

// ExtractToken 从 HTTP 请求中提取 token：Authorization: Bearer > cookie stay_session > query token。
func (a *AuthService) ExtractToken(r *http.Request) string {
	if r == nil {
		return ""
	}

	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if ah != "" {
		parts := strings.SplitN(ah, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if c, err := r.Cookie(SessionCookieName); err == nil {
		if v := strings.TrimSpace(c.Value); v != "" {
			return v
		}
	}

	if r.URL != nil {
		return strings.TrimSpace(r.URL.Query().Get("token"))
	}
	return ""
}

// Authenticate 根据 token 获取身份。
func (a *AuthService) Authenticate(ctx context.Context, token string) (*Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrUnauthorized
	}
	return a.token.GetIdentity(ctx, token)
}

// AuthenticateRequest 从请求里抽 token 并鉴权。
func (a *AuthService) AuthenticateRequest(ctx context.Context, r *http.Request) (*Identity, string, error) {
	t := a.ExtractToken(r)
	id, err := a.Authenticate(ctx, t)
	return id, t, err
}

// RevokeAll 注销该身份在所有设备上的 token。
func (a *AuthService) RevokeAll(ctx context.Context, externalUserID string) error {
	externalUserID = strings.TrimSpace(externalUserID)
	if externalUserID == "" {
		return nil
	}
	return a.token.RevokeAllSessions(ctx, externalUserID)
}

// RevokeToken 注销单个 token。
func (a *AuthService) RevokeToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return a.token.RevokeSession(ctx, token)
}
