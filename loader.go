package inkpress

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/araddon/dateparse"
	"gopkg.in/yaml.v3"

	"github.com/flowergeoji/inkpress/markdown"
)

// frontMatter mirrors the YAML block at the head of every post. Dates are
// decoded as text so that empty and null values can be told apart from
// malformed ones.
type frontMatter struct {
	Title       string `yaml:"title"`
	Date        string `yaml:"date"`
	Modified    string `yaml:"modified"`
	Category    string `yaml:"category"`
	Related     string `yaml:"related"`
	Draft       bool   `yaml:"draft"`
	Description string `yaml:"description"`
}

var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

var bodyRenderer = markdown.New()

// LoadContent reads every post under root. A missing root yields no items and
// no error: an empty site is still a valid site. Any malformed file, missing
// date, or slug collision between published items aborts the load.
func LoadContent(root string) ([]ContentItem, error) {
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var items []ContentItem
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if p != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsContentFile(name) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return &InvalidPathError{Path: p}
		}
		src, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", rel, err)
		}
		item, err := ParseItem(rel, src)
		if err != nil {
			return err
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := CheckSlugs(items); err != nil {
		return nil, err
	}
	return items, nil
}

// ParseItem builds a ContentItem from the file at rel (relative to the
// content root) with contents src.
func ParseItem(rel string, src []byte) (ContentItem, error) {
	slug, err := DeriveSlug(rel)
	if err != nil {
		return ContentItem{}, err
	}
	rel = filepath.ToSlash(rel)

	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(src), &fm, yamlFormat)
	if err != nil {
		return ContentItem{}, &FrontmatterError{Path: rel, Err: err}
	}

	date, err := parseDate(fm.Date)
	if err != nil {
		return ContentItem{}, &MissingRequiredFieldError{Path: rel, Field: "date", Err: err}
	}
	if date.IsZero() {
		return ContentItem{}, &MissingRequiredFieldError{Path: rel, Field: "date"}
	}
	modified, err := parseDate(fm.Modified)
	if err != nil {
		return ContentItem{}, fmt.Errorf("inkpress: %s: invalid modified date: %w", rel, err)
	}

	html, err := bodyRenderer.Render(body)
	if err != nil {
		return ContentItem{}, fmt.Errorf("inkpress: %s: render body: %w", rel, err)
	}

	return ContentItem{
		ID:          ItemID(rel),
		Slug:        slug,
		Title:       strings.TrimSpace(fm.Title),
		Date:        date,
		Modified:    modified,
		Category:    strings.TrimSpace(fm.Category),
		Related:     strings.TrimSpace(fm.Related),
		Draft:       fm.Draft,
		Description: strings.TrimSpace(fm.Description),
		Excerpt:     markdown.Excerpt(string(body), markdown.ExcerptLength),
		Body:        html,
		SourcePath:  rel,
	}, nil
}

// parseDate accepts any layout dateparse understands and normalizes the
// result to UTC, the zone the catalog stores. Blank input is the zero time,
// not an error.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" || s == "~" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// CheckSlugs fails with a DuplicateSlugError when two published items share a
// slug or a post claims the home page. Drafts never collide.
func CheckSlugs(items []ContentItem) error {
	owners := make(map[string][]string)
	for _, it := range items {
		if it.Draft {
			continue
		}
		owners[it.Slug] = append(owners[it.Slug], it.SourcePath)
	}
	slugs := make([]string, 0, len(owners))
	for s := range owners {
		slugs = append(slugs, s)
	}
	sort.Strings(slugs)
	for _, s := range slugs {
		paths := owners[s]
		if isReservedSlug(s) {
			return &DuplicateSlugError{Slug: s, Paths: append(paths, "(reserved route)")}
		}
		if len(paths) > 1 {
			sort.Strings(paths)
			return &DuplicateSlugError{Slug: s, Paths: paths}
		}
	}
	return nil
}

func isReservedSlug(s string) bool {
	return s == "/" || strings.HasPrefix(s, "/category/")
}
