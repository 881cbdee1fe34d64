package inkpress

import "time"

// DateLayout is the calendar-date form used in frontmatter, sitemaps and views.
const DateLayout = "2006-01-02"

// ContentItem is one published (or draft) post loaded from the content directory.
type ContentItem struct {
	ID          string
	Slug        string
	Title       string
	Date        time.Time
	Modified    time.Time // zero when the frontmatter has no modified date
	Category    string
	Related     string
	Draft       bool
	Description string
	Excerpt     string
	Body        string // rendered HTML
	SourcePath  string // relative to the content root
}

// DisplayTitle returns the title, or the slug when the post has none.
func (c ContentItem) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Slug
}

// Summary returns the description, falling back to the excerpt.
// Both missing yields "".
func (c ContentItem) Summary() string {
	if c.Description != "" {
		return c.Description
	}
	return c.Excerpt
}

// LastModified returns the modified date when set, otherwise the publish date.
// Sitemaps, feeds and the "updated" badge all go through this.
func LastModified(c ContentItem) time.Time {
	if c.Modified.IsZero() {
		return c.Date
	}
	return c.Modified
}

// WasUpdated reports whether the post carries a modified date distinct from its publish date.
func (c ContentItem) WasUpdated() bool {
	return !LastModified(c).Equal(c.Date)
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}

// ListPage is the view model for the home page and per-category listings.
type ListPage struct {
	Site           SiteConfig
	Meta           PageMeta
	Posts          []ContentItem
	Categories     []string
	ActiveCategory string
	Static         bool // category links point at /category/<slug>/ instead of ?category=
}

// CategoryHref returns the link for a category button. An empty label links to
// the unfiltered listing.
func (p ListPage) CategoryHref(label string) string {
	if label == "" {
		return "/"
	}
	if p.Static {
		return CategoryPath(label)
	}
	return "/?category=" + PathEscape(label)
}

// PostPage is the view model for a single post route.
type PostPage struct {
	Site     SiteConfig
	Meta     PageMeta
	Item     ContentItem
	Link     Link
	Previous *ContentItem
	Next     *ContentItem
	Related  []ContentItem
	JSONLD   string
}
