package inkpress

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// PathEscape escapes a string for use in a URL path or query value.
func PathEscape(s string) string {
	return url.QueryEscape(s)
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Title,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
	}
	if cfg.Author.Name != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author.Name,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJsonLD(item ContentItem, cfg SiteConfig) string {
	postURL := PostURL(cfg.URL, item.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      item.DisplayTitle(),
		"description":   item.Summary(),
		"datePublished": FormatW3CDate(item.Date),
		"dateModified":  FormatW3CDate(LastModified(item)),
		"url":           postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if cfg.Author.Name != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author.Name,
		}
	}
	if cfg.Title != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Title,
		}
	}
	if item.Category != "" {
		data["articleSection"] = item.Category
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
