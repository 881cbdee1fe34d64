package inkpress

import (
	"bytes"
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedFixture() []ContentItem {
	a := item("a", "/blog/a/", "2024-01-01")
	a.Description = "About A"
	a.Excerpt = "excerpt A"
	b := item("b", "/blog/b/", "2024-03-01")
	b.Excerpt = "excerpt B"
	b.Modified = day("2024-04-15")
	c := item("c", "/blog/c/", "2024-02-01")
	d := item("d", "/blog/d/", "2024-05-01")
	d.Draft = true
	return []ContentItem{a, b, c, d}
}

func TestFeedEntries(t *testing.T) {
	entries := FeedEntries("https://example.com/", feedFixture())
	require.Len(t, entries, 3)

	assert.Equal(t, "https://example.com/blog/b/", entries[0].URL)
	assert.Equal(t, entries[0].URL, entries[0].GUID)
	assert.Equal(t, "excerpt B", entries[0].Description)
	assert.Equal(t, day("2024-03-01"), entries[0].PubDate)
	assert.Equal(t, day("2024-04-15"), entries[0].LastMod)

	assert.Equal(t, "https://example.com/blog/c/", entries[1].URL)
	assert.Equal(t, "", entries[1].Description)
	assert.Equal(t, entries[1].PubDate, entries[1].LastMod)

	assert.Equal(t, "About A", entries[2].Description)
}

func TestWriteRSS(t *testing.T) {
	cfg := SiteConfig{Title: "Blog", Description: "Notes", URL: "https://example.com"}
	var buf bytes.Buffer
	require.NoError(t, WriteRSS(&buf, cfg, FeedEntries(cfg.URL, feedFixture())))

	var doc struct {
		Version string `xml:"version,attr"`
		Channel struct {
			Title         string `xml:"title"`
			Link          string `xml:"link"`
			LastBuildDate string `xml:"lastBuildDate"`
			Items         []struct {
				Title   string `xml:"title"`
				Link    string `xml:"link"`
				PubDate string `xml:"pubDate"`
				GUID    struct {
					IsPermaLink string `xml:"isPermaLink,attr"`
					Value       string `xml:",chardata"`
				} `xml:"guid"`
			} `xml:"item"`
		} `xml:"channel"`
	}
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "2.0", doc.Version)
	assert.Equal(t, "Blog", doc.Channel.Title)
	assert.Equal(t, "https://example.com/", doc.Channel.Link)
	assert.Equal(t, day("2024-04-15").Format(time.RFC1123Z), doc.Channel.LastBuildDate)
	require.Len(t, doc.Channel.Items, 3)
	assert.Equal(t, "b", doc.Channel.Items[0].Title)
	assert.Equal(t, "https://example.com/blog/b/", doc.Channel.Items[0].GUID.Value)
	assert.Equal(t, "true", doc.Channel.Items[0].GUID.IsPermaLink)
	assert.NotContains(t, buf.String(), "/blog/d/")
}

func TestWriteRSSEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRSS(&buf, SiteConfig{Title: "Blog", URL: "https://example.com"}, nil))
	assert.Contains(t, buf.String(), "<channel>")
	assert.NotContains(t, buf.String(), "<item>")
	assert.NotContains(t, buf.String(), "lastBuildDate")
}

func TestSitemapEntries(t *testing.T) {
	entries := SitemapEntries("https://example.com", feedFixture())
	require.Len(t, entries, 3)
	assert.Equal(t, SitemapEntry{
		Loc:        "https://example.com/blog/b/",
		LastMod:    day("2024-04-15"),
		ChangeFreq: "daily",
		Priority:   0.7,
	}, entries[0])
	assert.Equal(t, day("2024-02-01"), entries[1].LastMod)
}

func TestWriteSitemap(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSitemap(&buf, SitemapEntries("https://example.com", feedFixture())))

	var doc struct {
		URLs []struct {
			Loc        string `xml:"loc"`
			LastMod    string `xml:"lastmod"`
			ChangeFreq string `xml:"changefreq"`
			Priority   string `xml:"priority"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.URLs, 3)
	assert.Equal(t, "https://example.com/blog/b/", doc.URLs[0].Loc)
	assert.Equal(t, "2024-04-15", doc.URLs[0].LastMod)
	assert.Equal(t, "daily", doc.URLs[0].ChangeFreq)
	assert.Equal(t, "0.7", doc.URLs[0].Priority)
	assert.Contains(t, buf.String(), `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
}

func TestFormatW3CDate(t *testing.T) {
	assert.Equal(t, "2024-01-02", FormatW3CDate(day("2024-01-02")))
	assert.Equal(t, "2024-01-02T03:04:05Z", FormatW3CDate(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)))
}

func TestPostURL(t *testing.T) {
	assert.Equal(t, "https://example.com/a/", PostURL("https://example.com/", "/a/"))
	assert.Equal(t, "https://example.com/a/", PostURL("https://example.com", "/a/"))
}
