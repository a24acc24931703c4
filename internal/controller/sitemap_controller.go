package controller

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"kvizmajstor_backend/internal/repository"
	"kvizmajstor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SitemapController struct {
	QuizRepo *repository.QuizRepository
	BaseURL  string
}

func NewSitemapController(quizRepo *repository.QuizRepository, baseURL string) *SitemapController {
	return &SitemapController{
		QuizRepo: quizRepo,
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Sitemap serves a dynamically generated sitemap.xml with the landing page
// and one entry per quiz.
func (c *SitemapController) Sitemap(ctx *gin.Context) {
	ids, err := c.QuizRepo.ListIDs()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	urlSet := sitemapURLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: c.BaseURL + "/", ChangeFreq: "weekly", Priority: "1.0"},
		},
	}
	for _, id := range ids {
		urlSet.URLs = append(urlSet.URLs, sitemapURL{
			Loc:        fmt.Sprintf("%s/quiz/%s", c.BaseURL, id),
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}

	body, err := xml.MarshalIndent(urlSet, "", "  ")
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "application/xml", append([]byte(xml.Header), body...))
}
