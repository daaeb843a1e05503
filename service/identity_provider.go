package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
)

// IdentityProvider 外部 OAuth 身份提供方：授权跳转 + code 换身份。
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*Identity, error)
}

// DiscordConfig Discord OAuth 应用配置。Endpoint/APIBase 为空时使用官方地址。
type DiscordConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Endpoint     oauth2.Endpoint
	APIBase      string
	Timeout      time.Duration
}

var discordEndpoint = oauth2.Endpoint{
	AuthURL:   "https://discord.com/oauth2/authorize",
	TokenURL:  "https://discord.com/api/oauth2/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

const discordAPIBase = "https://discord.com/api"

type discordUser struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Avatar     string `json:"avatar"`
	Email      string `json:"email"`
	Verified   bool   `json:"verified"`
}

type discordError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// DiscordProvider 通过 Discord 登录换取 subject id 与已验证邮箱。
type DiscordProvider struct {
	oauth2Config *oauth2.Config
	api          *resty.Client
	apiBase      string
}

func NewDiscordProvider(cfg DiscordConfig) *DiscordProvider {
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" || endpoint.TokenURL == "" {
		endpoint = discordEndpoint
	}
	apiBase := strings.TrimRight(cfg.APIBase, "/")
	if apiBase == "" {
		apiBase = discordAPIBase
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DiscordProvider{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"identify", "email"},
		},
		api:     resty.New().SetTimeout(timeout),
		apiBase: apiBase,
	}
}

func (p *DiscordProvider) AuthCodeURL(state string) string {
	return p.oauth2Config.AuthCodeURL(state)
}

// Exchange 用授权码换 access token，再拉取 /users/@me。
func (p *DiscordProvider) Exchange(ctx context.Context, code string) (*Identity, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrUnauthorized
	}
	tok, err := p.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("discord token exchange: %w", err)
	}

	var user discordUser
	var apiErr discordError
	resp, err := p.api.R().
		SetContext(ctx).
		SetAuthToken(tok.AccessToken).
		SetResult(&user).
		SetError(&apiErr).
		Get(p.apiBase + "/users/@me")
	if err != nil {
		return nil, fmt.Errorf("discord profile: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("discord profile: status %d: %s", resp.StatusCode(), apiErr.Message)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("discord profile: empty user id")
	}

	id := &Identity{ExternalUserID: user.ID, Name: user.GlobalName}
	if id.Name == "" {
		id.Name = user.Username
	}
	if user.Verified {
		id.Email = user.Email
	}
	if user.Avatar != "" {
		id.Image = fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", user.ID, user.Avatar)
	}
	return id, nil
}
