package stay_site

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zuu3/stay-site/response"
	"github.com/zuu3/stay-site/service"
)

func TestSafeRedirect(t *testing.T) {
	cases := map[string]string{
		"":                   "/",
		"/pre-registration":  "/pre-registration",
		"/notices?tag=Patch": "/notices?tag=Patch",
		"//evil.example":     "/",
		"https://evil.test":  "/",
		"/\\evil.example":    "/",
		"notices":            "/",
	}
	for in, want := range cases {
		assert.Equal(t, want, safeRedirect(in), in)
	}
}

func (env *testEnv) doWithCookie(method, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func sessionUser(t *testing.T, w *httptest.ResponseRecorder) *SessionUser {
	t.Helper()
	var resp SessionResp
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &resp))
	return resp.User
}

func TestAuth_DiscordFlow(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/auth/discord/login?redirect=/pre-registration", "", nil)
	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)

	w = env.do(http.MethodGet, "/api/v1/auth/discord/callback?code=good-code&state="+state, "", nil)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, "/pre-registration", w.Header().Get("Location"))

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == service.SessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 3600, cookie.MaxAge)

	u := sessionUser(t, env.doWithCookie(http.MethodGet, "/api/v1/auth/session", cookie))
	require.NotNil(t, u)
	assert.Equal(t, "user-42", u.ID)
	assert.Equal(t, "Kim", u.Name)
	assert.True(t, u.IsAdmin)

	// state 只能用一次
	w = env.do(http.MethodGet, "/api/v1/auth/discord/callback?code=good-code&state="+state, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.doWithCookie(http.MethodPost, "/api/v1/auth/logout", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, sessionUser(t, env.doWithCookie(http.MethodGet, "/api/v1/auth/session", cookie)))
}

func TestAuth_CallbackFailures(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/v1/auth/discord/callback?code=good-code&state=unknown", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeParamError, decode(t, w).Code)

	issue := func() string {
		w := env.do(http.MethodGet, "/api/v1/auth/discord/login?redirect=//evil.example", "", nil)
		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		return loc.Query().Get("state")
	}

	w = env.do(http.MethodGet, "/api/v1/auth/discord/callback?code=bad&state="+issue(), "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodGet, "/api/v1/auth/discord/callback?error=access_denied&state="+issue(), "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	env.provider.err = errors.New("discord down")
	w = env.do(http.MethodGet, "/api/v1/auth/discord/callback?code=good-code&state="+issue(), "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 跳转目标被清洗为站内根路径
	env.provider.err = nil
	w = env.do(http.MethodGet, "/api/v1/auth/discord/callback?code=good-code&state="+issue(), "", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestAuth_SessionNonAdminAndAnonymous(t *testing.T) {
	env := newTestEnv(t)

	assert.Nil(t, sessionUser(t, env.do(http.MethodGet, "/api/v1/auth/session", "", nil)))

	token := env.login(t, "user-7", "member@stay.kr")
	u := sessionUser(t, env.do(http.MethodGet, "/api/v1/auth/session", token, nil))
	require.NotNil(t, u)
	assert.False(t, u.IsAdmin)
	assert.Equal(t, "member@stay.kr", u.Email)

	// 未登录退出也成功
	w := env.do(http.MethodPost, "/api/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_NoProvider(t *testing.T) {
	env := newTestEnv(t)
	env.engine.IdentityProvider = nil

	w := env.do(http.MethodGet, "/api/v1/auth/discord/login", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAuth_LogoutAllDevices(t *testing.T) {
	env := newTestEnv(t)
	phone := env.login(t, "user-42", "")
	laptop := env.login(t, "user-42", "")
	other := env.login(t, "user-7", "")

	// 不带 all 只注销当前 token
	w := env.do(http.MethodPost, "/api/v1/auth/logout", phone, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, sessionUser(t, env.do(http.MethodGet, "/api/v1/auth/session", phone, nil)))
	require.NotNil(t, sessionUser(t, env.do(http.MethodGet, "/api/v1/auth/session", laptop, nil)))

	phone = env.login(t, "user-42", "")
	w = env.do(http.MethodPost, "/api/v1/auth/logout?all=1", phone, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, sessionUser(t, env.do(http.MethodGet, "/api/v1/auth/session", phone, nil)))
	assert.Nil(t, sessionUser(t, env.do(http.MethodGet, "/api/v1/auth/session", laptop, nil)))

	// 其他用户不受影响
	u := sessionUser(t, env.do(http.MethodGet, "/api/v1/auth/session", other, nil))
	require.NotNil(t, u)
	assert.Equal(t, "user-7", u.ID)
}
