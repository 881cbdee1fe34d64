package inkpress

import (
	"encoding/xml"
	"io"
	"strconv"
	"time"
)

// Sitemap defaults applied to every post entry.
const (
	SitemapChangeFreq = "daily"
	SitemapPriority   = 0.7
)

// SitemapEntry is one post as it appears in sitemap.xml.
type SitemapEntry struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq string
	Priority   float64
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// SitemapEntries returns one entry per published item, newest first.
func SitemapEntries(siteURL string, items []ContentItem) []SitemapEntry {
	posts := Published(items)
	sortNewestFirst(posts)
	entries := make([]SitemapEntry, 0, len(posts))
	for _, p := range posts {
		entries = append(entries, SitemapEntry{
			Loc:        PostURL(siteURL, p.Slug),
			LastMod:    LastModified(p),
			ChangeFreq: SitemapChangeFreq,
			Priority:   SitemapPriority,
		})
	}
	return entries
}

// WriteSitemap encodes entries as a sitemaps.org urlset.
func WriteSitemap(w io.Writer, entries []SitemapEntry) error {
	urls := make([]sitemapURL, 0, len(entries))
	for _, e := range entries {
		u := sitemapURL{Loc: e.Loc, ChangeFreq: e.ChangeFreq}
		if !e.LastMod.IsZero() {
			u.LastMod = FormatW3CDate(e.LastMod)
		}
		if e.Priority > 0 {
			u.Priority = strconv.FormatFloat(e.Priority, 'f', 1, 64)
		}
		urls = append(urls, u)
	}
	set := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(set)
}

// FormatW3CDate renders t as a plain date when it falls on midnight UTC and
// as a full RFC 3339 timestamp otherwise.
func FormatW3CDate(t time.Time) string {
	u := t.UTC()
	if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0 {
		return u.Format(DateLayout)
	}
	return u.Format(time.RFC3339)
}
