package config

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("MYSQL_DSN", "root:pw@tcp(127.0.0.1:3306)/stay?parseTime=true")
	t.Setenv("DISCORD_CLIENT_ID", "cid")
	t.Setenv("DISCORD_CLIENT_SECRET", "secret")
	t.Setenv("DISCORD_REDIRECT_URL", "http://localhost:8080/api/v1/auth/discord/callback")
	t.Setenv("SITE_TIMEZONE", "UTC")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "https://stayrp.kro.kr", cfg.SiteURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "127.0.0.1:6379", cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
	assert.False(t, cfg.SwaggerEnabled)
	assert.Equal(t, "", cfg.AdminEmails)
	assert.Equal(t, "UTC", cfg.Location.String())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SITE_URL", "https://example.kr/")
	t.Setenv("ADMIN_EMAILS", "a@stay.kr, b@stay.kr")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SESSION_TTL", "12h")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("SITE_LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://example.kr", cfg.SiteURL)
	assert.Equal(t, "a@stay.kr, b@stay.kr", cfg.AdminEmails)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]map[string]string{
		"missing dsn":       {"MYSQL_DSN": ""},
		"missing discord":   {"DISCORD_CLIENT_ID": ""},
		"bad redis db":      {"REDIS_DB": "x"},
		"bad ttl":           {"SESSION_TTL": "forever"},
		"negative ttl":      {"SESSION_TTL": "-1h"},
		"bad log level":     {"SITE_LOG_LEVEL": "trace"},
		"bad log format":    {"SITE_LOG_FORMAT": "xml"},
		"bad timezone":      {"SITE_TIMEZONE": "Mars/Olympus"},
		"bad cookie secure": {"COOKIE_SECURE": "maybe"},
		"bad dsn":           {"MYSQL_DSN": "root:pw@tcp(127.0.0.1:3306"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			setRequired(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_DSNForcesParseTime(t *testing.T) {
	for _, dsn := range []string{
		"root:pw@tcp(127.0.0.1:3306)/stay",
		"root:pw@tcp(127.0.0.1:3306)/stay?charset=utf8mb4&parseTime=false",
	} {
		setRequired(t)
		t.Setenv("MYSQL_DSN", dsn)

		cfg, err := Load()
		require.NoError(t, err, dsn)
		mc, err := mysql.ParseDSN(cfg.MySQLDSN)
		require.NoError(t, err)
		assert.True(t, mc.ParseTime, cfg.MySQLDSN)
		assert.Equal(t, "stay", mc.DBName)
		assert.Equal(t, "127.0.0.1:3306", mc.Addr)
		assert.Equal(t, "pw", mc.Passwd)
	}
}
