package stay_site

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zuu3/stay-site/cons"
)

func TestSitemap_StaticAndNotices(t *testing.T) {
	env := newTestEnv(t)

	expectNoticeSchema(env.mock)
	env.mock.ExpectQuery(listNotices).WillReturnRows(sqlmock.NewRows(noticeColumns).
		AddRow("n2", cons.TagPatch, "2026.10.15", "B", "", "[]", fixedClock).
		AddRow("n1", cons.TagNotice, "2026.10.01", "A", "", "[]", fixedClock))

	w := env.do(http.MethodGet, "/sitemap.xml", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/xml"))

	body := w.Body.String()
	for _, loc := range []string{
		"https://stayrp.kro.kr/",
		"https://stayrp.kro.kr/notices",
		"https://stayrp.kro.kr/pre-registration",
		"https://stayrp.kro.kr/laws",
		"https://stayrp.kro.kr/notices/n2",
		"https://stayrp.kro.kr/notices/n1",
	} {
		assert.Contains(t, body, "<loc>"+loc+"</loc>")
	}
	assert.Contains(t, body, "<lastmod>2026-10-01</lastmod>")
	assert.Contains(t, body, "<lastmod>2026-10-15</lastmod>")
	assert.Contains(t, body, "<changefreq>daily</changefreq>")
	assert.Contains(t, body, "<priority>0.7</priority>")
	assert.Equal(t, 6, strings.Count(body, "<url>"))

	require.NoError(t, env.mock.ExpectationsWereMet())
}

func TestSitemap_StoreDown(t *testing.T) {
	env := newTestEnv(t)
	env.mock.ExpectExec("CREATE TABLE IF NOT EXISTS `stay_notice`").WillReturnError(errors.New("connection refused"))

	w := env.do(http.MethodGet, "/sitemap.xml", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, strings.Count(w.Body.String(), "<url>"))
}

func TestRobots(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/robots.txt", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User-agent: *")
	assert.Contains(t, w.Body.String(), "Sitemap: https://stayrp.kro.kr/sitemap.xml")
}
