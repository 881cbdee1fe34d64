package inkpress

import (
	"encoding/xml"
	"io"
	"strings"
	"time"
)

// FeedEntry is one post as it appears in the RSS feed.
type FeedEntry struct {
	Title       string
	Description string
	URL         string
	GUID        string
	PubDate     time.Time
	LastMod     time.Time
}

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	Description string  `xml:"description"`
	PubDate     string  `xml:"pubDate"`
	GUID        rssGUID `xml:"guid"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// PostURL joins the site URL and a slug. Slugs already carry their leading
// and trailing slashes.
func PostURL(siteURL, slug string) string {
	return strings.TrimRight(siteURL, "/") + slug
}

// FeedEntries projects the published items into feed entries, newest first.
// The description falls back to the excerpt, then to "".
func FeedEntries(siteURL string, items []ContentItem) []FeedEntry {
	posts := Published(items)
	sortNewestFirst(posts)
	entries := make([]FeedEntry, 0, len(posts))
	for _, p := range posts {
		u := PostURL(siteURL, p.Slug)
		entries = append(entries, FeedEntry{
			Title:       p.DisplayTitle(),
			Description: p.Summary(),
			URL:         u,
			GUID:        u,
			PubDate:     p.Date,
			LastMod:     LastModified(p),
		})
	}
	return entries
}

// WriteRSS encodes entries as an RSS 2.0 document for the site.
func WriteRSS(w io.Writer, cfg SiteConfig, entries []FeedEntry) error {
	items := make([]rssItem, 0, len(entries))
	var newest time.Time
	for _, e := range entries {
		if e.LastMod.After(newest) {
			newest = e.LastMod
		}
		items = append(items, rssItem{
			Title:       e.Title,
			Link:        e.URL,
			Description: e.Description,
			PubDate:     e.PubDate.Format(time.RFC1123Z),
			GUID:        rssGUID{IsPermaLink: true, Value: e.GUID},
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       cfg.Title,
			Link:        BuildURL(cfg.URL),
			Description: cfg.Description,
			Items:       items,
		},
	}
	if !newest.IsZero() {
		feed.Channel.LastBuildDate = newest.Format(time.RFC1123Z)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(feed)
}
