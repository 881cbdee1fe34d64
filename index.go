package inkpress

import "sort"

// Link holds the neighbours of a post in the publish-date chain. Empty IDs
// mark the ends of the chain.
type Link struct {
	PreviousID string
	NextID     string
}

// Index is the navigation view over the published posts of one build.
// It is immutable once built.
type Index struct {
	chain  []ContentItem // date ascending
	links  map[string]Link
	byID   map[string]int
	bySlug map[string]int
}

// BuildIndex drops drafts, orders the rest by date (oldest first, ID as the
// tie-breaker) and links each post to its neighbours.
func BuildIndex(items []ContentItem) *Index {
	chain := Published(items)
	sortChronological(chain)

	ix := &Index{
		chain:  chain,
		links:  make(map[string]Link, len(chain)),
		byID:   make(map[string]int, len(chain)),
		bySlug: make(map[string]int, len(chain)),
	}
	for i, it := range chain {
		var l Link
		if i > 0 {
			l.PreviousID = chain[i-1].ID
		}
		if i < len(chain)-1 {
			l.NextID = chain[i+1].ID
		}
		ix.links[it.ID] = l
		ix.byID[it.ID] = i
		ix.bySlug[it.Slug] = i
	}
	return ix
}

// Len returns the number of published posts.
func (ix *Index) Len() int { return len(ix.chain) }

// Chain returns the published posts oldest first.
func (ix *Index) Chain() []ContentItem {
	out := make([]ContentItem, len(ix.chain))
	copy(out, ix.chain)
	return out
}

// Newest returns the published posts newest first, the order used by
// listings and feeds.
func (ix *Index) Newest() []ContentItem {
	out := make([]ContentItem, len(ix.chain))
	for i, it := range ix.chain {
		out[len(ix.chain)-1-i] = it
	}
	return out
}

// Links returns a copy of the id -> neighbours mapping.
func (ix *Index) Links() map[string]Link {
	out := make(map[string]Link, len(ix.links))
	for k, v := range ix.links {
		out[k] = v
	}
	return out
}

// Link returns the neighbours of the post with the given ID.
func (ix *Index) Link(id string) (Link, bool) {
	l, ok := ix.links[id]
	return l, ok
}

// Get returns the published post with the given ID.
func (ix *Index) Get(id string) (ContentItem, bool) {
	i, ok := ix.byID[id]
	if !ok {
		return ContentItem{}, false
	}
	return ix.chain[i], true
}

// BySlug returns the published post served at slug.
func (ix *Index) BySlug(slug string) (ContentItem, bool) {
	i, ok := ix.bySlug[slug]
	if !ok {
		return ContentItem{}, false
	}
	return ix.chain[i], true
}

// Page assembles the post route for slug: neighbours, related posts and
// page metadata.
func (ix *Index) Page(cfg SiteConfig, slug string) (PostPage, bool) {
	item, ok := ix.BySlug(slug)
	if !ok {
		return PostPage{}, false
	}
	link := ix.links[item.ID]
	page := PostPage{
		Site:    cfg,
		Item:    item,
		Link:    link,
		Related: RelatedPosts(item, ix.chain),
		Meta: PageMeta{
			Title:       item.DisplayTitle(),
			Description: item.Summary(),
			URL:         PostURL(cfg.URL, item.Slug),
			OGType:      "article",
		},
		JSONLD: BlogPostingJsonLD(item, cfg),
	}
	if prev, ok := ix.Get(link.PreviousID); ok {
		page.Previous = &prev
	}
	if next, ok := ix.Get(link.NextID); ok {
		page.Next = &next
	}
	return page, true
}

// Listing assembles the home page, or a category page when category is set.
func (ix *Index) Listing(cfg SiteConfig, category string) ListPage {
	meta := PageMeta{
		Title:       cfg.Title,
		Description: cfg.Description,
		URL:         BuildURL(cfg.URL),
		OGType:      "website",
	}
	if category != "" {
		meta.Title = category + " | " + cfg.Title
		meta.URL = BuildURL(cfg.URL, "category", CategorySlug(category))
	}
	return ListPage{
		Site:           cfg,
		Meta:           meta,
		Posts:          FilterByCategory(ix.Newest(), category),
		Categories:     ix.categories(cfg),
		ActiveCategory: category,
	}
}

// categories returns the configured category buttons in their configured
// order, followed by any other category a published post uses. Every label a
// post can link to gets a listing page.
func (ix *Index) categories(cfg SiteConfig) []string {
	seen := make(map[string]bool, len(cfg.Categories))
	var out []string
	for _, c := range append(append([]string(nil), cfg.Categories...), Categories(ix.chain)...) {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func sortChronological(items []ContentItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.Before(items[j].Date)
		}
		return items[i].ID < items[j].ID
	})
}

// sortNewestFirst orders by date descending with ID ascending as the tie-breaker.
func sortNewestFirst(items []ContentItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.After(items[j].Date)
		}
		return items[i].ID < items[j].ID
	})
}
