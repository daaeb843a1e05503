package stay_site

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zuu3/stay-site/service"
	"go.uber.org/zap"
)

// 站点固定页面，公告详情页在此之后追加
var staticPaths = []string{"/", "/notices", "/pre-registration", "/laws"}

const (
	sitemapChangeFreq = "daily"
	sitemapPriority   = "0.7"
	sitemapXMLNS      = "http://www.sitemaps.org/schemas/sitemap/0.9"
)

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func (e *SiteEngine) now() time.Time {
	t := time.Now()
	if e.config.now != nil {
		t = e.config.now()
	}
	if e.config.Location != nil {
		t = t.In(e.config.Location)
	}
	return t
}

// buildSitemap 公告读取失败时仍返回固定页面
func (e *SiteEngine) buildSitemap() sitemapURLSet {
	today := e.now().Format("2006-01-02")
	set := sitemapURLSet{XMLNS: sitemapXMLNS}
	for _, p := range staticPaths {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        e.config.SiteURL + p,
			LastMod:    today,
			ChangeFreq: sitemapChangeFreq,
			Priority:   sitemapPriority,
		})
	}

	notices, err := e.NoticeService.ListNotices()
	if err != nil {
		e.log.Warn("sitemap: list notices failed, static routes only", zap.Error(err))
		return set
	}
	for _, n := range notices {
		u := sitemapURL{
			Loc:        e.config.SiteURL + "/notices/" + n.ID,
			ChangeFreq: sitemapChangeFreq,
			Priority:   sitemapPriority,
		}
		if t, err := time.Parse(service.NoticeDateLayout, n.Date); err == nil {
			u.LastMod = t.Format("2006-01-02")
		}
		set.URLs = append(set.URLs, u)
	}
	return set
}

// GinHandleSitemap sitemap.xml
// @Summary sitemap
// @Tags 站点
// @Produce xml
// @Success 200 {string} string "sitemap.xml"
// @Router /sitemap.xml [get]
func (e *SiteEngine) GinHandleSitemap(ctx *gin.Context) {
	body, err := xml.MarshalIndent(e.buildSitemap(), "", "  ")
	if err != nil {
		e.log.Error("marshal sitemap failed", zap.Error(err))
		ctx.Status(http.StatusInternalServerError)
		return
	}
	ctx.Data(http.StatusOK, "application/xml; charset=utf-8", append([]byte(xml.Header), body...))
}

// GinHandleRobots robots.txt
// @Summary robots.txt
// @Tags 站点
// @Produce plain
// @Success 200 {string} string "robots.txt"
// @Router /robots.txt [get]
func (e *SiteEngine) GinHandleRobots(ctx *gin.Context) {
	body := "User-agent: *\nAllow: /\n\nHost: " + e.config.SiteURL + "\nSitemap: " + e.config.SiteURL + "/sitemap.xml\n"
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}
