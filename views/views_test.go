package views

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowergeoji/inkpress"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func testSite() inkpress.SiteConfig {
	return inkpress.SiteConfig{
		Title:       "Dev Notes",
		Description: "Things I learned",
		URL:         "https://example.com",
		Author:      inkpress.Author{Name: "Sam", Summary: "Writes code."},
		Social:      inkpress.Social{GitHub: "https://github.com/sam"},
		Embeds:      inkpress.Embeds{CommentsRepo: "sam/comments", CommentsTheme: "github-light"},
	}
}

func day(s string) time.Time {
	t, _ := time.Parse(inkpress.DateLayout, s)
	return t
}

func TestHomeListing(t *testing.T) {
	site := testSite()
	page := inkpress.ListPage{
		Site:           site,
		Meta:           inkpress.PageMeta{Title: "Dev Notes", URL: "https://example.com/"},
		Categories:     []string{"react", "go"},
		ActiveCategory: "go",
		Static:         true,
		Posts: []inkpress.ContentItem{
			{Slug: "/b/", Title: "Beta", Date: day("2024-02-01"), Modified: day("2024-03-01"), Category: "go", Description: "About beta"},
			{Slug: "/a/", Title: "Alpha & Co", Date: day("2024-01-01"), Category: "go"},
		},
	}

	html := render(t, Home(page))
	assert.Contains(t, html, "<title>Dev Notes</title>")
	assert.Contains(t, html, `<a class="active" href="/category/go/">Go</a>`)
	assert.Contains(t, html, `href="/category/react/">React</a>`)
	assert.Contains(t, html, `<a class="" href="/">All</a>`)
	assert.Contains(t, html, "Alpha &amp; Co")
	assert.Contains(t, html, "2024/02/01")
	assert.Contains(t, html, "updated 2024/03/01")
	assert.Contains(t, html, "About beta")
	assert.Contains(t, html, "Written by <strong>Sam</strong>")
	assert.NotContains(t, html, "No blog posts found.")
	assert.Contains(t, html, `"@type":"WebSite"`)
}

func TestHomeLiveLinks(t *testing.T) {
	page := inkpress.ListPage{Site: testSite(), Categories: []string{"web dev"}}
	html := render(t, Home(page))
	assert.Contains(t, html, `href="/?category=web`)
	assert.Contains(t, html, `<a class="active" href="/">All</a>`)
	assert.Contains(t, html, "No blog posts found.")
}

func TestPostPage(t *testing.T) {
	site := testSite()
	prev := inkpress.ContentItem{Slug: "/a/", Title: "Alpha", Date: day("2024-01-01")}
	item := inkpress.ContentItem{
		Slug:     "/b/",
		Title:    "Beta",
		Date:     day("2024-02-01"),
		Category: "go",
		Body:     "<p>Hello <em>world</em></p>",
	}
	page := inkpress.PostPage{
		Site:     site,
		Meta:     inkpress.PageMeta{Title: "Beta", URL: "https://example.com/b/", OGType: "article"},
		Item:     item,
		Previous: &prev,
		JSONLD:   inkpress.BlogPostingJsonLD(item, site),
	}

	html := render(t, Post(page))
	assert.Contains(t, html, `<h1 itemprop="headline">Beta</h1>`)
	assert.Contains(t, html, "<p>Hello <em>world</em></p>")
	assert.Contains(t, html, "February 01, 2024")
	assert.NotContains(t, html, "badge-updated")
	assert.Contains(t, html, `<a href="/a/" rel="prev">← Alpha</a>`)
	assert.NotContains(t, html, `rel="next"`)
	assert.Contains(t, html, `<section class="related" hidden>`)
	assert.Contains(t, html, `repo="sam/comments"`)
	assert.Contains(t, html, `"@type":"BlogPosting"`)
	assert.Contains(t, html, `<meta property="og:type" content="article">`)
	assert.NotContains(t, html, "kakao_ad_area")
}

func TestPostPageUpdatedAndRelated(t *testing.T) {
	site := testSite()
	site.Embeds = inkpress.Embeds{AdUnit: "DAN-1", AdWidth: 320, AdHeight: 100}
	item := inkpress.ContentItem{Slug: "/b/", Title: "Beta", Date: day("2024-02-01"), Modified: day("2024-05-10")}
	page := inkpress.PostPage{
		Site:    site,
		Item:    item,
		Related: []inkpress.ContentItem{{Slug: "/c/", Title: "Gamma", Date: day("2024-03-01")}},
	}

	html := render(t, Post(page))
	assert.Contains(t, html, "badge-updated")
	assert.Contains(t, html, "May 10, 2024")
	assert.Contains(t, html, `<section class="related">`)
	assert.Contains(t, html, "Gamma")
	assert.Contains(t, html, `data-ad-unit="DAN-1"`)
	assert.NotContains(t, html, "utteranc.es")
}

func TestErrorPages(t *testing.T) {
	v := New(testSite())
	assert.Contains(t, render(t, v.NotFound()), "Not Found")
	assert.Contains(t, render(t, v.ServerError()), "Internal Server Error")
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Web Dev", CategoryLabel("web dev"))
	assert.Equal(t, "React", CategoryLabel("react"))
}
