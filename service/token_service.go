package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	// 默认 session 过期时间
	defaultSessionTTL = 30 * 24 * time.Hour
	// OAuth state 有效期
	defaultStateTTL = 10 * time.Minute
)

// Identity 身份提供方换取到的本地会话身份
type Identity struct {
	ExternalUserID string `json:"id"`
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"` // 仅在身份提供方确认已验证时填写
	Image          string `json:"image,omitempty"`
}

// TokenService 负责 session token 与 OAuth state 的生成、存储、校验与注销。
// Redis Key 设计：
// - stay:session:{token} -> Identity JSON (String, TTL)
// - stay:user_sessions:{externalUserID} -> Set(token1, token2, ...)
// - stay:oauth_state:{state} -> 登录后跳转路径 (String, TTL，一次性)
type TokenService struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTokenService(rdb *redis.Client, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &TokenService{rdb: rdb, ttl: ttl}
}

func (s *TokenService) ensure() error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("redis client is nil")
	}
	return nil
}

// TTL session 有效期
func (s *TokenService) TTL() time.Duration { return s.ttl }

func (s *TokenService) sessionKey(token string) string {
	return "stay:session:" + token
}

func (s *TokenService) userSessionsKey(externalUserID string) string {
	return "stay:user_sessions:" + externalUserID
}

func (s *TokenService) stateKey(state string) string {
	return "stay:oauth_state:" + state
}

// GenerateToken 生成一个随机 token（不包含任何用户信息）。
func (s *TokenService) GenerateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// CreateSession 为身份生成新 token 并保存。
func (s *TokenService) CreateSession(ctx context.Context, id *Identity) (string, error) {
	if err := s.ensure(); err != nil {
		return "", err
	}
	if id == nil || id.ExternalUserID == "" {
		return "", ErrUnauthorized
	}
	token, err := s.GenerateToken()
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(id)
	if err != nil {
		return "", err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, s.sessionKey(token), payload, s.ttl)
	pipe.SAdd(ctx, s.userSessionsKey(id.ExternalUserID), token)
	// user set 的 TTL 略大于 session TTL，方便自动清理
	pipe.Expire(ctx, s.userSessionsKey(id.ExternalUserID), s.ttl+24*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return token, nil
}

// GetIdentity 根据 token 取身份；token 不存在/过期返回 ErrUnauthorized。
func (s *TokenService) GetIdentity(ctx context.Context, token string) (*Identity, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}
	val, err := s.rdb.Get(ctx, s.sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	var id Identity
	if err := json.Unmarshal(val, &id); err != nil {
		return nil, fmt.Errorf("corrupt session: %w", err)
	}
	if id.ExternalUserID == "" {
		return nil, ErrUnauthorized
	}
	return &id, nil
}

// RevokeSession 注销单个 token。
func (s *TokenService) RevokeSession(ctx context.Context, token string) error {
	if err := s.ensure(); err != nil {
		return err
	}
	if id, err := s.GetIdentity(ctx, token); err == nil {
		_ = s.rdb.SRem(ctx, s.userSessionsKey(id.ExternalUserID), token).Err()
	}
	return s.rdb.Del(ctx, s.sessionKey(token)).Err()
}

// RevokeAllSessions 注销某身份的全部 token。
func (s *TokenService) RevokeAllSessions(ctx context.Context, externalUserID string) error {
	if err := s.ensure(); err != nil {
		return err
	}
	tokens, err := s.rdb.SMembers(ctx, s.userSessionsKey(externalUserID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	pipe := s.rdb.TxPipeline()
	for _, t := range tokens {
		pipe.Del(ctx, s.sessionKey(t))
	}
	pipe.Del(ctx, s.userSessionsKey(externalUserID))
	_, err = pipe.Exec(ctx)
	return err
}

// IssueState 生成 OAuth state，并记录登录完成后的跳转路径。
func (s *TokenService) IssueState(ctx context.Context, redirect string) (string, error) {
	if err := s.ensure(); err != nil {
		return "", err
	}
	state, err := s.GenerateToken()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, s.stateKey(state), redirect, defaultStateTTL).Err(); err != nil {
		return "", err
	}
	return state, nil
}

// ConsumeState 校验并作废 state（只能使用一次），返回登记的跳转路径。
func (s *TokenService) ConsumeState(ctx context.Context, state string) (string, error) {
	if err := s.ensure(); err != nil {
		return "", err
	}
	if state == "" {
		return "", ErrInvalidState
	}
	key := s.stateKey(state)
	redirect, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrInvalidState
		}
		return "", err
	}
	// DEL 返回 1 的调用方才算消费成功，并发回调只有一个能通过
	n, err := s.rdb.Del(ctx, key).Result()
	if err != nil {
		return "", err
	}
	if n != 1 {
		return "", ErrInvalidState
	}
	return redirect, nil
}
