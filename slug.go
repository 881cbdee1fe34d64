package inkpress

import (
	"path"
	"sort"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	goslug "github.com/gosimple/slug"
)

// contentExts lists the file extensions treated as posts.
var contentExts = []string{".md", ".mdx", ".markdown"}

// idNamespace scopes item IDs so they never collide with other SHA-1 UUIDs.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://inkpress/content"))

// IsContentFile reports whether name has a post extension.
func IsContentFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range contentExts {
		if ext == e {
			return true
		}
	}
	return false
}

// DeriveSlug maps a content-root-relative file path to its public URL path.
// The file path is the slug: only the extension and a trailing "index"
// segment are dropped, everything else (including case) is kept.
//
//	blog/hello-world/index.md -> /blog/hello-world/
//	blog/Go-Notes.mdx         -> /blog/Go-Notes/
func DeriveSlug(rel string) (string, error) {
	p := filepath.ToSlash(rel)
	if p == "" || path.IsAbs(p) || filepath.IsAbs(rel) {
		return "", &InvalidPathError{Path: rel}
	}
	p = path.Clean(p)
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return "", &InvalidPathError{Path: rel}
	}
	if IsContentFile(p) {
		p = strings.TrimSuffix(p, path.Ext(p))
	}
	if p == "index" {
		return "/", nil
	}
	p = strings.TrimSuffix(p, "/index")
	return "/" + p + "/", nil
}

// ItemID returns the stable identifier for the content file at rel.
func ItemID(rel string) string {
	return uuid.NewSHA1(idNamespace, []byte(path.Clean(filepath.ToSlash(rel)))).String()
}

// CategorySlug converts a category label to its URL-safe form.
func CategorySlug(label string) string {
	s := goslug.Make(label)
	if s == "" {
		s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(label), " ", "-"))
	}
	return s
}

// CategoryPath returns the listing route for a category label.
func CategoryPath(label string) string {
	return "/category/" + CategorySlug(label) + "/"
}

// CheckCategorySlugs fails with a DuplicateSlugError when two distinct labels
// map to the same listing route ("C" and "C++" both slugify to "c").
func CheckCategorySlugs(labels []string) error {
	owners := make(map[string][]string)
	for _, l := range labels {
		p := CategoryPath(l)
		if !contains(owners[p], l) {
			owners[p] = append(owners[p], l)
		}
	}
	routes := make([]string, 0, len(owners))
	for p := range owners {
		routes = append(routes, p)
	}
	sort.Strings(routes)
	for _, p := range routes {
		if ls := owners[p]; len(ls) > 1 {
			sort.Strings(ls)
			return &DuplicateSlugError{Slug: p, Paths: ls}
		}
	}
	return nil
}

func contains(vals []string, v string) bool {
	for _, s := range vals {
		if s == v {
			return true
		}
	}
	return false
}
